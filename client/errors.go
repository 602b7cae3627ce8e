package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by Login when the service rejects
	// the email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired is returned for any authenticated call that came
	// back 401. By the time a caller sees it the session has already been
	// torn down by the transport.
	ErrSessionExpired = errors.New("session expired")
)

// ConnectionError wraps a transport-level failure (DNS, refused connection,
// timeout). The service was never reached, so no response classification
// applies.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("service unreachable: %s", e.Err)
}

func (e *ConnectionError) Is(target error) bool {
	_, ok := target.(*ConnectionError)
	return ok
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// RateLimitError carries the human-readable reason the service attached to a
// 429 response, e.g. "Daily upload limit reached (2/day)...". The message is
// meant to be shown to the user verbatim.
type RateLimitError struct {
	Detail string
}

func (e *RateLimitError) Error() string {
	if e.Detail == "" {
		return "rate limited"
	}
	return e.Detail
}

func (e *RateLimitError) Is(target error) bool {
	_, ok := target.(*RateLimitError)
	return ok
}

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}
