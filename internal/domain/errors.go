package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the ways a sweep can fail.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrMissingAPIKey is returned when no API key could be resolved.
	// The request is never sent in that case.
	ErrMissingAPIKey = errors.New("sessionsweep: BACKEND_API_KEY is empty or unset")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("sessionsweep: invalid configuration")

	// ErrTransport is returned when the request could not be completed
	// (DNS, connect, TLS, timeout).
	ErrTransport = errors.New("sessionsweep: transport failure")

	// ErrUnexpectedStatus is returned when the server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("sessionsweep: unexpected status")
)

// StatusError carries the details of a non-2xx response.
type StatusError struct {
	StatusCode int
	// Excerpt is the leading part of the response body, if any.
	Excerpt string
}

func (e *StatusError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Excerpt)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }
