// Package apperror defines the client-side error taxonomy shared by the
// CLI, the TUI and the MCP bridge.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected locally before any request is sent.
	ErrValidation = errors.New("validation error")
	// ErrNotAuthenticated means no bearer token is stored.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrNoDevice means no device has been selected for this client.
	ErrNoDevice = errors.New("no device selected")
)

type AppError struct {
	Err     error  // sentinel for errors.Is
	Message string // human-readable message
	Field   string // optional: input that caused the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Required(field string) *AppError {
	return Validation(field, fmt.Sprintf("%s is required", field))
}

// Messager is implemented by errors that carry a message safe to show to
// the user, such as server-reported application errors.
type Messager interface {
	UserMessage() string
}

// UserMessage picks the text to show for err: validation and server
// messages pass through, anything else becomes fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	var m Messager
	if errors.As(err, &m) {
		if msg := m.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
