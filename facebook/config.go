// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
	sdkHttp "github.com/hashicorp/tokenverify/sdk/http"
)

// DefaultEndpointURL is the Graph API endpoint used to fetch the profile of
// the user an access token was issued to.
const DefaultEndpointURL = "https://graph.facebook.com/v2.7/me"

// ClientSecret is the app secret used to compute an appsecret_proof.
type ClientSecret string

// RedactedClientSecret is the redacted string or json for an app secret
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret
func (t ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret
func (t ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}

// ProfileFields is the list of profile fields requested from the Graph API.
// Elements may themselves be comma separated lists, so both
// ProfileFields{"email", "gender"} and ProfileFields{"email,gender"} request
// the same fields.
type ProfileFields []string

// String returns the fields as a single comma separated value. Empty elements
// are skipped.
func (f ProfileFields) String() string {
	nonEmpty := make([]string, 0, len(f))
	for _, v := range f {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	return strings.Join(nonEmpty, ",")
}

// ParseProfileFields splits a comma separated list of fields, trimming
// whitespace and dropping empty entries.
func ParseProfileFields(s string) ProfileFields {
	var fields ProfileFields
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			fields = append(fields, v)
		}
	}
	return fields
}

// Config represents the configuration for verifying access tokens against the
// Graph API.
type Config struct {
	// EndpointURL is the profile endpoint. It defaults to DefaultEndpointURL.
	EndpointURL string

	// ProfileFields is an optional list of fields to request. When empty the
	// provider returns its default field set.
	ProfileFields ProfileFields

	// ClientSecret is the optional app secret. When set, every request
	// carries an appsecret_proof.
	ClientSecret ClientSecret

	// ProviderCA is an optional CA cert to use when sending requests to the provider.
	ProviderCA string
}

// NewConfig composes a new config.
// Supported options:
//
//	WithEndpointURL
//	WithProfileFields
//	WithClientSecret
//	WithProviderCA
func NewConfig(opt ...Option) (*Config, error) {
	const op = "NewConfig"
	opts := getConfigOpts(opt...)
	c := &Config{
		EndpointURL:   opts.withEndpointURL,
		ProfileFields: opts.withProfileFields,
		ClientSecret:  opts.withClientSecret,
		ProviderCA:    opts.withProviderCA,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}
	return c, nil
}

// Validate the configuration. Every problem found is reported, not just the
// first one. It doesn't verify the endpoint is reachable.
func (c *Config) Validate() error {
	const op = "Config.Validate"
	if c == nil {
		return fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	var result *multierror.Error
	if c.EndpointURL == "" {
		result = multierror.Append(result, fmt.Errorf("%s: endpoint URL is empty: %w", op, ErrInvalidParameter))
	} else {
		u, err := url.Parse(c.EndpointURL)
		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("%s: endpoint URL %q is invalid: %s: %w", op, c.EndpointURL, err, ErrInvalidParameter))
		default:
			if u.Scheme != "https" && u.Scheme != "http" {
				result = multierror.Append(result, fmt.Errorf("%s: endpoint URL %q scheme is not http or https: %w", op, c.EndpointURL, ErrInvalidParameter))
			}
			if u.Host == "" {
				result = multierror.Append(result, fmt.Errorf("%s: endpoint URL %q has no host: %w", op, c.EndpointURL, ErrInvalidParameter))
			}
			if u.Fragment != "" {
				result = multierror.Append(result, fmt.Errorf("%s: endpoint URL %q must not have a fragment: %w", op, c.EndpointURL, ErrInvalidParameter))
			}
		}
	}
	return result.ErrorOrNil()
}

// HttpClient is a helper function that creates a new http client for the
// provider configured
func (c *Config) HttpClient() (*http.Client, error) {
	const op = "Config.HttpClient"
	client, err := sdkHttp.NewClient(c.ProviderCA)
	if err != nil {
		if errors.Is(err, sdkHttp.ErrInvalidCertificatePem) {
			return nil, fmt.Errorf("%s: could not parse CA PEM value: %w", op, ErrInvalidCACert)
		}
		return nil, fmt.Errorf("%s: could not get an http client: %w", op, err)
	}
	return client, nil
}

// HttpClientContext is a helper function that returns a new Context that
// carries the provided HTTP client. Verifier.Verify uses a client carried
// this way instead of its own. The key is the one used by the
// github.com/coreos/go-oidc and golang.org/x/oauth2 packages, so the returned
// context works for those packages as well.
func HttpClientContext(ctx context.Context, client *http.Client) context.Context {
	return sdkHttp.OidcClientContext(ctx, client)
}

// configOptions is the set of available options
type configOptions struct {
	withEndpointURL   string
	withProfileFields ProfileFields
	withClientSecret  ClientSecret
	withProviderCA    string
}

// configDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func configDefaults() configOptions {
	return configOptions{
		withEndpointURL: DefaultEndpointURL,
	}
}

// getConfigOpts gets the defaults and applies the opt overrides passed in.
func getConfigOpts(opt ...Option) configOptions {
	opts := configDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithEndpointURL provides an optional profile endpoint, overriding
// DefaultEndpointURL.
func WithEndpointURL(u string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withEndpointURL = u
		}
	}
}

// WithProfileFields provides an optional list of profile fields to request.
// Either individual names or a single comma separated string may be passed.
func WithProfileFields(fields ...string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withProfileFields = append(ProfileFields(nil), fields...)
		}
	}
}

// WithClientSecret provides an optional app secret used to sign requests
// with an appsecret_proof.
func WithClientSecret(secret ClientSecret) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withClientSecret = secret
		}
	}
}

// WithProviderCA provides an optional CA cert for the provider's config
func WithProviderCA(cert string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withProviderCA = cert
		}
	}
}
