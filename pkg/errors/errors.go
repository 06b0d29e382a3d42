// Package errors provides structured error types for autogen.
//
// Every failure that reaches the user carries a machine-readable [Code] so the
// CLI can decide how to present it and tests can assert on the category
// without matching message text.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad version file, bad config)
//   - *_NOT_FOUND: Missing files or executables
//   - COMMAND_*: External process failures
//   - NOT_IMPLEMENTED, ALREADY_RELEASED: release pipeline refusals
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVersion, "bad version %q", raw)
//	if errors.Is(err, errors.ErrCodeInvalidVersion) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCommandFailed, origErr, "git push")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidVersion Code = "INVALID_VERSION"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"

	// Generated file errors
	ErrCodeMissingMarkers Code = "MISSING_MARKERS"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeCommandNotFound Code = "COMMAND_NOT_FOUND"

	// External process errors
	ErrCodeCommandFailed Code = "COMMAND_FAILED"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Release errors
	ErrCodeAlreadyReleased Code = "ALREADY_RELEASED"
	ErrCodeNotImplemented  Code = "NOT_IMPLEMENTED"
	ErrCodeAborted         Code = "ABORTED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
