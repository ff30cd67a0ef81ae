// Package apperr defines the error taxonomy shared by all services:
// precondition/validation failures, state errors, not-found and authorization
// errors. Errors carry a code for transport mapping and an optional structured
// details payload so callers can render an informative message.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnauthenticated Code = "unauthenticated"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeValidation      Code = "validation"
	CodeConflict        Code = "conflict"
	CodeState           Code = "state"
	CodeRateLimit       Code = "rate_limit"
	CodeInternal        Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	// Details is a structured payload surfaced to the caller, e.g. the reset
	// time of a rate limit or the reason of a prior duplicate report.
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error with the given code and message wrapping a cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WithDetails attaches a structured payload and returns the error.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// From extracts the *Error from err, or nil if it is not one.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
