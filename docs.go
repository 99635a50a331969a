// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// tokenverify provides packages which verify third party OAuth access tokens
// by asking the identity provider that issued them.
//
// See the facebook package.
package tokenverify
