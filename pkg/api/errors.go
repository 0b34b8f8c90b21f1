package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is in the chain of every error caused by a 401 response.
// Callers holding session state are expected to drop it when they see this.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	return e.err
}

// UserMessage is the server-provided message, if any.
func (e *Error) UserMessage() string {
	return e.Message
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// StatusCode returns the HTTP status behind err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
