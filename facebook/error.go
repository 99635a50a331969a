// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package facebook

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilParameter     = errors.New("nil parameter")
	ErrInvalidCACert    = errors.New("invalid CA certificate")
	ErrInvalidProfile   = errors.New("invalid profile")

	// ErrProviderError matches a *ProviderError: the Graph API answered with a
	// structured error body.
	ErrProviderError = errors.New("graph api error")

	// ErrRequestFailed matches a *RequestError: the Graph API answered with a
	// failure status but no structured error body.
	ErrRequestFailed = errors.New("request failed")

	// ErrNetwork matches a *NetworkError: no response was received.
	ErrNetwork = errors.New("network error")
)

// RequestErrorMsg is the message of every RequestError.
const RequestErrorMsg = "Failed to fetch user profile"

// ProviderError is returned when the Graph API responds with a non-200 status
// and an error object such as:
//
//	{"error": {"message": "...", "type": "OAuthException", "code": 190, "fbtrace_id": "..."}}
type ProviderError struct {
	Message string
	Type    string
	Code    int

	// Subcode is the error_subcode of the response, zero when absent.
	Subcode int

	TraceID    string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Is reports whether target is ErrProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderError
}

// RequestError is returned when the Graph API responds with a non-200 status
// and a body that isn't a structured error. RawBody holds the body as received.
type RequestError struct {
	Message    string
	StatusCode int
	RawBody    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Is reports whether target is ErrRequestFailed.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// NetworkError is returned when the request to the Graph API could not be
// completed (DNS, connection, TLS, timeout, cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return ErrNetwork.Error()
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
