// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names understood by the Graph API.
const (
	AppSecretProofParam = "appsecret_proof"
	FieldsParam         = "fields"
	AccessTokenParam    = "access_token"
)

// EndpointURL builds the profile request URL for accessToken. Parameters are
// appended in a fixed order: appsecret_proof (when the config has a client
// secret), fields (when the config has profile fields) and access_token. A
// query already present on the endpoint is preserved. The config is not
// modified.
func EndpointURL(c *Config, accessToken string) (string, error) {
	const op = "EndpointURL"
	if c == nil {
		return "", fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	u, err := url.Parse(c.EndpointURL)
	if err != nil {
		return "", fmt.Errorf("%s: unable to parse endpoint URL: %w", op, err)
	}

	params := make([]string, 0, 4)
	if u.RawQuery != "" {
		params = append(params, u.RawQuery)
	}
	if c.ClientSecret != "" {
		params = append(params, AppSecretProofParam+"="+url.QueryEscape(AppSecretProof(c.ClientSecret, accessToken)))
	}
	if fields := c.ProfileFields.String(); fields != "" {
		params = append(params, FieldsParam+"="+url.QueryEscape(fields))
	}
	params = append(params, AccessTokenParam+"="+url.QueryEscape(accessToken))

	u.RawQuery = strings.Join(params, "&")
	return u.String(), nil
}
