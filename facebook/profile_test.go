// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestProfile_ID(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	assert.Equal("10153", Profile{"id": "10153"}.ID())
	assert.Equal("", Profile{"id": 10153}.ID())
	assert.Equal("", Profile{}.ID())
	assert.Equal("", Profile(nil).ID())
}

func TestProfile_String(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	p := Profile{"email": "alice@example.com", "verified": true}

	got, ok := p.String("email")
	assert.True(ok)
	assert.Equal("alice@example.com", got)

	got, ok = p.String("verified")
	assert.False(ok)
	assert.Empty(got)

	got, ok = p.String("missing")
	assert.False(ok)
	assert.Empty(got)
}

func TestProfile_Locale(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		profile   Profile
		want      string
		wantErr   bool
		wantIsErr error
	}{
		{
			name:    "underscore",
			profile: Profile{"locale": "en_US"},
			want:    "en-US",
		},
		{
			name:    "hyphen",
			profile: Profile{"locale": "pt-BR"},
			want:    "pt-BR",
		},
		{
			name:      "missing",
			profile:   Profile{},
			wantErr:   true,
			wantIsErr: ErrInvalidProfile,
		},
		{
			name:      "not-a-string",
			profile:   Profile{"locale": 7},
			wantErr:   true,
			wantIsErr: ErrInvalidProfile,
		},
		{
			name:      "garbage",
			profile:   Profile{"locale": "not a locale!"},
			wantErr:   true,
			wantIsErr: ErrInvalidProfile,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := tt.profile.Locale()
			if tt.wantErr {
				require.Error(err)
				assert.Equal(language.Und, got)
				assert.Truef(errors.Is(err, tt.wantIsErr), "wanted \"%s\" but got \"%s\"", tt.wantIsErr, err)
				return
			}
			require.NoError(err)
			assert.Equal(tt.want, got.String())
		})
	}
}
