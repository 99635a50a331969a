// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	t.Parallel()
	proof := AppSecretProof("secret", "token")
	tests := []struct {
		name        string
		config      *Config
		accessToken string
		want        string
		wantErr     bool
		wantIsErr   error
	}{
		{
			name:        "token-only",
			config:      &Config{EndpointURL: DefaultEndpointURL},
			accessToken: "token",
			want:        DefaultEndpointURL + "?access_token=token",
		},
		{
			name:        "fields-sequence",
			config:      &Config{EndpointURL: DefaultEndpointURL, ProfileFields: ProfileFields{"email", "gender"}},
			accessToken: "token",
			want:        DefaultEndpointURL + "?fields=email%2Cgender&access_token=token",
		},
		{
			name:        "fields-string",
			config:      &Config{EndpointURL: DefaultEndpointURL, ProfileFields: ProfileFields{"email,gender"}},
			accessToken: "token",
			want:        DefaultEndpointURL + "?fields=email%2Cgender&access_token=token",
		},
		{
			name:        "empty-fields",
			config:      &Config{EndpointURL: DefaultEndpointURL, ProfileFields: ProfileFields{""}},
			accessToken: "token",
			want:        DefaultEndpointURL + "?access_token=token",
		},
		{
			name:        "secret",
			config:      &Config{EndpointURL: DefaultEndpointURL, ClientSecret: "secret"},
			accessToken: "token",
			want:        DefaultEndpointURL + "?appsecret_proof=" + proof + "&access_token=token",
		},
		{
			name: "secret-and-fields",
			config: &Config{
				EndpointURL:   DefaultEndpointURL,
				ClientSecret:  "secret",
				ProfileFields: ProfileFields{"email"},
			},
			accessToken: "token",
			want:        DefaultEndpointURL + "?appsecret_proof=" + proof + "&fields=email&access_token=token",
		},
		{
			name:        "existing-query",
			config:      &Config{EndpointURL: "https://graph.example.com/me?locale=en_US"},
			accessToken: "token",
			want:        "https://graph.example.com/me?locale=en_US&access_token=token",
		},
		{
			name:        "escaped-token",
			config:      &Config{EndpointURL: DefaultEndpointURL},
			accessToken: "a b&c=d",
			want:        DefaultEndpointURL + "?access_token=a+b%26c%3Dd",
		},
		{
			name:      "nil-config",
			config:    nil,
			wantErr:   true,
			wantIsErr: ErrNilParameter,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := EndpointURL(tt.config, tt.accessToken)
			if tt.wantErr {
				require.Error(err)
				assert.Truef(errors.Is(err, tt.wantIsErr), "wanted \"%s\" but got \"%s\"", tt.wantIsErr, err)
				return
			}
			require.NoError(err)
			assert.Equal(tt.want, got)

			u, err := url.Parse(got)
			require.NoError(err)
			assert.Equal(tt.accessToken, u.Query().Get(AccessTokenParam))
		})
	}
}

func TestEndpointURL_doesNotModifyConfig(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	c := &Config{
		EndpointURL:   DefaultEndpointURL,
		ClientSecret:  "secret",
		ProfileFields: ProfileFields{"email", "gender"},
	}
	want := *c
	want.ProfileFields = append(ProfileFields(nil), c.ProfileFields...)

	first, err := EndpointURL(c, "token-1")
	require.NoError(err)
	second, err := EndpointURL(c, "token-2")
	require.NoError(err)
	assert.NotEqual(first, second)
	assert.Equal(&want, c)
}
