// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
facebook is a package for verifying Facebook access tokens against the Graph
API.

A token is verified by fetching the profile of the user it was issued to. A
successful fetch returns the profile; anything else is reported as an error.

Primary types provided by the package

* Config: the profile endpoint, the optional list of profile fields to request
and the optional app secret used to sign requests with an appsecret_proof.

* Verifier: verifies access tokens using a Config. It makes exactly one
request per verification and never retries or caches.

* Profile: the profile returned by the Graph API, as decoded.

* ProviderError, RequestError and NetworkError: the errors a verification can
fail with. Use errors.As to inspect them, or errors.Is with ErrProviderError,
ErrRequestFailed and ErrNetwork.

* TestProvider: a local server emulating the Graph API profile endpoint for
tests.

Examples

* Verify an access token from the command line: examples/cli/
*/
package facebook
