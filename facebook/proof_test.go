// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppSecretProof(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		secret      ClientSecret
		accessToken string
		want        string
	}{
		{
			name:        "test-provider-defaults",
			secret:      TestClientSecret,
			accessToken: TestValidAccessToken,
			want:        "9cc4b885f59a1210bc374d15335f3f3805574d689de607024409ac32c259adf0",
		},
		{
			name:        "rfc-style-vector",
			secret:      "key",
			accessToken: "The quick brown fox jumps over the lazy dog",
			want:        "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8",
		},
		{
			name:        "empty",
			secret:      "",
			accessToken: "",
			want:        "b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert := assert.New(t)
			got := AppSecretProof(tt.secret, tt.accessToken)
			assert.Equal(tt.want, got)
			assert.Equal(got, AppSecretProof(tt.secret, tt.accessToken))
		})
	}
	assert.NotEqual(t,
		AppSecretProof("secret-a", TestValidAccessToken),
		AppSecretProof("secret-b", TestValidAccessToken),
	)
}
