package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an error for callers that must react to its kind.
type Code string

const (
	// CodeInvalidInput indicates a malformed request value.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeInvalidSessionState indicates an exam submission without a live exam session.
	CodeInvalidSessionState Code = "INVALID_SESSION_STATE"
	// CodeNotFound indicates a missing record.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized indicates a request without an authenticated learner.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeInternal is reported for every error that carries no code.
	CodeInternal Code = "INTERNAL"
)

// Error is a classified application error.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidInput creates an invalid input error.
func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// InvalidSession creates an invalid session state error.
func InvalidSession(msg string) *Error {
	return &Error{Code: CodeInvalidSessionState, Message: msg}
}

// NotFound creates a not found error for the given record kind.
func NotFound(kind string, id interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %v", kind, id)}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, Cause: cause}
}

// CodeOf returns the code of the first classified error in err's chain.
func CodeOf(err error) Code {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// MessageOf returns the message of a classified error, or fallback.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
