// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Profile is the user profile returned by the Graph API for a verified access
// token. It holds the response body as decoded, without any checks on its
// shape.
type Profile map[string]interface{}

// ID returns the profile's "id", or an empty string when it's missing or not
// a string.
func (p Profile) ID() string {
	s, _ := p.String("id")
	return s
}

// String returns the value of a string field and whether it was present as a
// string.
func (p Profile) String(field string) (string, bool) {
	v, ok := p[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Locale parses the profile's "locale" field (for example "en_US").
func (p Profile) Locale() (language.Tag, error) {
	const op = "Profile.Locale"
	s, ok := p.String("locale")
	if !ok || s == "" {
		return language.Und, fmt.Errorf("%s: locale is missing: %w", op, ErrInvalidProfile)
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%s: unable to parse locale %q: %s: %w", op, s, err, ErrInvalidProfile)
	}
	return tag, nil
}
