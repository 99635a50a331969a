// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// AppSecretProof returns the appsecret_proof for an access token: the hex
// encoded HMAC-SHA256 of the token keyed by the app secret.
//
// See: https://developers.facebook.com/docs/graph-api/securing-requests
func AppSecretProof(secret ClientSecret, accessToken string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(accessToken))
	return hex.EncodeToString(mac.Sum(nil))
}
