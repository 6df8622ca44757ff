package fitapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers an unreachable service and any non success HTTP status.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse is returned when a response body cannot be decoded,
	// or lacks fields the result views require.
	ErrMalformedResponse = errors.New("malformed response")
)

type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}
