// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Verifier verifies access tokens by fetching the profile of the user they
// were issued to. A Verifier is safe for concurrent use.
type Verifier struct {
	config Config
	client *http.Client
	logger hclog.Logger
}

// NewVerifier creates a Verifier. The config is validated and copied, so later
// changes to c don't affect the Verifier.
// Supported options:
//
//	WithHTTPClient
//	WithLogger
func NewVerifier(c *Config, opt ...Option) (*Verifier, error) {
	const op = "NewVerifier"
	if c == nil {
		return nil, fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: config is invalid: %w", op, err)
	}
	opts := getVerifierOpts(opt...)

	v := &Verifier{
		config: *c,
		client: opts.withHTTPClient,
		logger: opts.withLogger,
	}
	v.config.ProfileFields = append(ProfileFields(nil), c.ProfileFields...)

	if v.client == nil {
		client, err := c.HttpClient()
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
		v.client = client
	}
	if v.logger == nil {
		v.logger = hclog.NewNullLogger()
	}
	return v, nil
}

// Verify fetches the profile of the user accessToken was issued to. Exactly
// one request is made and it is never retried.
//
// On failure the error is one of:
//
//   - *NetworkError: the request could not be completed
//   - *ProviderError: the Graph API returned a structured error (invalid
//     token, invalid appsecret_proof, etc)
//   - *RequestError: the Graph API returned a failure without a structured
//     error, or a 200 whose body isn't a JSON object (null, an array or
//     non-JSON), since only an object can be returned as a Profile
//
// A malformed endpoint URL never reaches Verify: NewConfig and NewVerifier
// reject it with an error matching ErrInvalidParameter. *NetworkError covers
// endpoints that are well formed but can't be reached.
//
// A client carried by ctx (see HttpClientContext) is used instead of the
// Verifier's own client.
func (v *Verifier) Verify(ctx context.Context, accessToken string) (Profile, error) {
	const op = "Verifier.Verify"
	endpoint, err := EndpointURL(&v.config, accessToken)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("%s: unable to create request: %w", op, err)}
	}
	req.Header.Set("Accept", "application/json")

	v.logger.Trace("requesting profile",
		"op", op,
		"endpoint", redactedEndpoint(req.URL),
		"fields", v.config.ProfileFields.String(),
		"appsecret_proof", v.config.ClientSecret != "")

	resp, err := v.httpClient(ctx).Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactedEndpoint(req.URL)
		}
		v.logger.Debug("profile request failed", "op", op, "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		v.logger.Debug("unable to read profile response", "op", op, "error", err)
		return nil, &NetworkError{Err: err}
	}

	p, err := classifyResponse(resp.StatusCode, body)
	if err != nil {
		v.logger.Debug("profile request rejected", "op", op, "status", resp.StatusCode, "error", err)
		return nil, err
	}
	return p, nil
}

// VerifyTokenSource verifies the access token of the token produced by ts.
func (v *Verifier) VerifyTokenSource(ctx context.Context, ts oauth2.TokenSource) (Profile, error) {
	const op = "Verifier.VerifyTokenSource"
	if ts == nil {
		return nil, fmt.Errorf("%s: token source is nil: %w", op, ErrNilParameter)
	}
	t, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: unable to get token: %w", op, err)
	}
	if t.AccessToken == "" {
		return nil, fmt.Errorf("%s: access_token is empty: %w", op, ErrInvalidParameter)
	}
	return v.Verify(ctx, t.AccessToken)
}

func (v *Verifier) httpClient(ctx context.Context) *http.Client {
	if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && c != nil {
		return c
	}
	return v.client
}

// redactedEndpoint drops the query, which carries the access token.
func redactedEndpoint(u *url.URL) string {
	r := *u
	r.RawQuery = ""
	return r.String()
}

// graphResponseError is the error object of a Graph API error response, as
// written by the TestProvider.
type graphResponseError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode,omitempty"`
	FBTraceID string `json:"fbtrace_id"`
}

// classifyResponse turns a Graph API response into a Profile or an error.
// A failure body whose "error" member is a JSON object is a *ProviderError,
// whatever the types of the members inside it; anything else that doesn't
// match the expected shape is a *RequestError.
func classifyResponse(statusCode int, body []byte) (Profile, error) {
	requestErr := func() error {
		return &RequestError{
			Message:    RequestErrorMsg,
			StatusCode: statusCode,
			RawBody:    string(body),
		}
	}

	if statusCode == http.StatusOK {
		var p Profile
		if err := json.Unmarshal(body, &p); err != nil || p == nil {
			return nil, requestErr()
		}
		return p, nil
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, requestErr()
	}
	var fields map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(envelope.Error))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, requestErr()
	}
	return nil, &ProviderError{
		Message:    stringField(fields, "message"),
		Type:       stringField(fields, "type"),
		Code:       intField(fields, "code"),
		Subcode:    intField(fields, "error_subcode"),
		TraceID:    stringField(fields, "fbtrace_id"),
		StatusCode: statusCode,
	}
}

// stringField returns a string or number field as a string, and "" for
// anything else.
func stringField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// intField returns a number field, or a string holding one, as an int. Zero
// is returned for anything else.
func intField(fields map[string]interface{}, key string) int {
	var n json.Number
	switch v := fields[key].(type) {
	case json.Number:
		n = v
	case string:
		n = json.Number(strings.TrimSpace(v))
	default:
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}

// verifierOptions is the set of available options for NewVerifier
type verifierOptions struct {
	withHTTPClient *http.Client
	withLogger     hclog.Logger
}

func verifierDefaults() verifierOptions {
	return verifierOptions{}
}

// getVerifierOpts gets the defaults and applies the opt overrides passed in.
func getVerifierOpts(opt ...Option) verifierOptions {
	opts := verifierDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithHTTPClient provides an optional http client for the verifier. When not
// provided, one is created from the config's ProviderCA.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*verifierOptions); ok {
			o.withHTTPClient = c
		}
	}
}

// WithLogger provides an optional logger for the verifier
func WithLogger(l hclog.Logger) Option {
	return func(o interface{}) {
		if o, ok := o.(*verifierOptions); ok {
			o.withLogger = l
		}
	}
}
