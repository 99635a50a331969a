// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"bytes"
	"crypto/hmac"
	"encoding/json"
	"encoding/pem"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-uuid"
	"github.com/stretchr/testify/require"
)

const (
	// TestEndpointPath is the path the TestProvider serves profiles on.
	TestEndpointPath = "/v2.7/me"

	// TestValidAccessToken is the access token a TestProvider accepts unless
	// SetValidAccessToken is used.
	TestValidAccessToken = "validAccessToken"

	// TestClientSecret is the app secret a TestProvider checks
	// appsecret_proof against unless SetClientSecret is used.
	TestClientSecret ClientSecret = "clientSecret"
)

// TestOAuthException returns the error a TestProvider replies with for an
// unknown access token.
func TestOAuthException() *ProviderError {
	return &ProviderError{
		Message:    "Invalid OAuth access token.",
		Type:       "OAuthException",
		Code:       190,
		TraceID:    "XxXXXxXxX0x",
		StatusCode: http.StatusBadRequest,
	}
}

// TestGraphMethodException returns the error a TestProvider replies with for
// an appsecret_proof that doesn't match its client secret.
func TestGraphMethodException() *ProviderError {
	return &ProviderError{
		Message:    "Invalid appsecret_proof provided in the API argument",
		Type:       "GraphMethodException",
		Code:       100,
		TraceID:    "BQ95dZEb5lT",
		StatusCode: http.StatusBadRequest,
	}
}

// TestProvider is a local server emulating the Graph API profile endpoint,
// which makes writing tests much easier. It accepts a single access token,
// checks appsecret_proof when one is sent, narrows the profile to the
// requested fields and replies with Graph API style errors.
type TestProvider struct {
	httpServer *httptest.Server
	caCert     string

	mu                 sync.Mutex
	validAccessToken   string
	clientSecret       ClientSecret
	replyProfile       map[string]interface{}
	unstructuredStatus int
	unstructuredBody   string
	requestCount       int
	lastRawQuery       string
}

// StartTestProvider creates a disposable TLS TestProvider which is stopped
// when the test completes.
func StartTestProvider(t *testing.T) *TestProvider {
	t.Helper()
	require := require.New(t)

	id, err := uuid.GenerateUUID()
	require.NoError(err)

	p := &TestProvider{
		validAccessToken: TestValidAccessToken,
		clientSecret:     TestClientSecret,
		replyProfile: map[string]interface{}{
			"id":         id,
			"name":       "Alice Bob",
			"first_name": "Alice",
			"last_name":  "Bob",
			"email":      "alice@example.com",
			"gender":     "female",
			"locale":     "en_US",
		},
	}

	p.httpServer = httptest.NewUnstartedServer(p)
	p.httpServer.Config.ErrorLog = log.New(io.Discard, "", 0)
	p.httpServer.StartTLS()
	t.Cleanup(p.httpServer.Close)

	var buf bytes.Buffer
	err = pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: p.httpServer.Certificate().Raw})
	require.NoError(err)
	p.caCert = buf.String()

	return p
}

// Stop stops the running TestProvider.
func (p *TestProvider) Stop() {
	p.httpServer.Close()
}

// Addr returns the current base URL for the test provider's running webserver.
func (p *TestProvider) Addr() string { return p.httpServer.URL }

// EndpointURL returns the URL of the test provider's profile endpoint.
func (p *TestProvider) EndpointURL() string { return p.httpServer.URL + TestEndpointPath }

// CACert returns the pem-encoded CA certificate used by the test provider's
// HTTPS server.
func (p *TestProvider) CACert() string { return p.caCert }

// HTTPClient returns a client trusting the test provider's certificate.
func (p *TestProvider) HTTPClient() *http.Client { return p.httpServer.Client() }

// SetValidAccessToken configures the only access token the provider accepts.
func (p *TestProvider) SetValidAccessToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.validAccessToken = token
}

// SetClientSecret configures the app secret used to check appsecret_proof.
func (p *TestProvider) SetClientSecret(secret ClientSecret) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clientSecret = secret
}

// SetReplyProfile configures the full profile of the access token's user.
func (p *TestProvider) SetReplyProfile(profile map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replyProfile = profile
}

// ReplyProfile returns a copy of the full profile of the access token's user.
func (p *TestProvider) ReplyProfile() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make(map[string]interface{}, len(p.replyProfile))
	for k, v := range p.replyProfile {
		cp[k] = v
	}
	return cp
}

// SetUnstructuredError forces every response to have the given status and a
// plain text body. A zero status restores normal behavior.
func (p *TestProvider) SetUnstructuredError(status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unstructuredStatus = status
	p.unstructuredBody = body
}

// RequestCount returns the number of profile requests served.
func (p *TestProvider) RequestCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requestCount
}

// LastRawQuery returns the raw query of the last profile request served.
func (p *TestProvider) LastRawQuery() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRawQuery
}

// ServeHTTP implements the http.Handler interface.
func (p *TestProvider) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if req.URL.Path != TestEndpointPath {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "not found")
		return
	}
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = io.WriteString(w, "method not allowed")
		return
	}
	p.requestCount++
	p.lastRawQuery = req.URL.RawQuery

	if p.unstructuredStatus != 0 {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(p.unstructuredStatus)
		_, _ = io.WriteString(w, p.unstructuredBody)
		return
	}

	qv := req.URL.Query()
	accessToken := qv.Get(AccessTokenParam)
	if accessToken == "" || accessToken != p.validAccessToken {
		p.writeErrorResponse(w, TestOAuthException())
		return
	}
	if proof := qv.Get(AppSecretProofParam); proof != "" {
		want := AppSecretProof(p.clientSecret, accessToken)
		if !hmac.Equal([]byte(proof), []byte(want)) {
			p.writeErrorResponse(w, TestGraphMethodException())
			return
		}
	}

	profile := p.replyProfile
	if fields := qv.Get(FieldsParam); fields != "" {
		profile = map[string]interface{}{"id": p.replyProfile["id"]}
		for _, f := range strings.Split(fields, ",") {
			if v, ok := p.replyProfile[f]; ok {
				profile[f] = v
			}
		}
	}
	p.writeJSON(w, http.StatusOK, profile)
}

func (p *TestProvider) writeErrorResponse(w http.ResponseWriter, e *ProviderError) {
	body := map[string]interface{}{
		"error": graphResponseError{
			Message:   e.Message,
			Type:      e.Type,
			Code:      e.Code,
			Subcode:   e.Subcode,
			FBTraceID: e.TraceID,
		},
	}
	p.writeJSON(w, e.StatusCode, body)
}

func (p *TestProvider) writeJSON(w http.ResponseWriter, status int, out interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}
