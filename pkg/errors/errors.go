// Package errors provides structured error types for catalogprobe.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the library and the CLI
//   - Machine-readable error codes for mapping failures to probe states
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input, configuration, or document value failures
//   - *_NOT_FOUND: Lookup failures
//   - FETCH_FAILED: Any failed HTTP fetch (status, transport, or decode)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeKeyNotFound, "key %q not in catalog entry", key)
//	if errors.Is(err, errors.ErrCodeKeyNotFound) {
//	    // Handle lookup error
//	}
//
//	// Fetch failures carry the URL
//	err := &errors.FetchError{URL: u, Cause: origErr}
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"
	ErrCodeInvalidDate   Code = "INVALID_DATE"

	// Lookup errors
	ErrCodeKeyNotFound Code = "KEY_NOT_FOUND"

	// Network errors
	ErrCodeFetchFailed Code = "FETCH_FAILED"

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

// FetchError reports a failed HTTP fetch: a transport failure, a non-2xx
// status, too many redirects, or an undecodable body.
type FetchError struct {
	URL    string // Requested URL
	Status int    // HTTP status code, 0 if no response was received
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *FetchError) Code() Code { return ErrCodeFetchFailed }

type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a type with a Code
// method that matches.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// AsFetch returns the first *FetchError in err's chain.
func AsFetch(err error) (*FetchError, bool) {
	var fe *FetchError
	ok := errors.As(err, &fe)
	return fe, ok
}
