// Package errors provides structured error types for the moodboard core and
// its hosts.
//
// Error codes are machine-readable so the CLI and HTTP API can map failures
// to exit codes and status codes without string matching:
//   - INVALID_*: caller precondition violations
//   - OUT_OF_RANGE: timeline navigation outside [-1, len-1]
//   - NOT_FOUND: unknown board or snapshot
//   - STORAGE_ERROR: persistence backend failures
//   - INTERNAL_ERROR: bugs
//
// Malformed item fields are never errors; they are defaulted by the size
// model.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfRange, "index %d outside [-1, %d]", i, n-1)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // leave state untouched
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidContainer Code = "INVALID_CONTAINER"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Navigation errors
	ErrCodeOutOfRange Code = "OUT_OF_RANGE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeStorage  Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RangeError reports a navigation index outside the timeline bounds.
// It is returned wrapped in an *Error with ErrCodeOutOfRange.
type RangeError struct {
	Index int // Requested index
	Len   int // Timeline length at the time of the request
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d outside [-1, %d]", e.Index, e.Len-1)
}

// OutOfRange builds the error returned by timeline navigation.
func OutOfRange(index, length int) *Error {
	re := &RangeError{Index: index, Len: length}
	return Wrap(ErrCodeOutOfRange, re, "cannot navigate timeline")
}
