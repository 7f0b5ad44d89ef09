// Package errors provides structured error types for the heatmap pipeline.
//
// Every failure that aborts a render carries a machine-readable [Code] so the
// CLI can report a single, user-facing message and tests can assert on the
// category rather than on message text.
//
// # Error Codes
//
// The render-aborting categories are:
//   - LOAD_FAILURE: the dataset could not be fetched or decoded
//   - EMPTY_DATASET: the dataset holds zero records
//   - DEGENERATE_DOMAIN: a scale domain cannot be built (no spread, NaN, Inf)
//
// All three are raised before any output is written; partial charts are
// never produced.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyDataset, "dataset %s has no records", src)
//	if errors.Is(err, errors.ErrCodeEmptyDataset) {
//	    // Handle empty input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLoadFailure, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Render-aborting pipeline errors
	ErrCodeLoadFailure      Code = "LOAD_FAILURE"
	ErrCodeEmptyDataset     Code = "EMPTY_DATASET"
	ErrCodeDegenerateDomain Code = "DEGENERATE_DOMAIN"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidSource  Code = "INVALID_SOURCE"

	// Transport errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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
// The outermost *Error in the chain decides; a LOAD_FAILURE wrapping a
// NETWORK_ERROR reports LOAD_FAILURE only.
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
// For *Error types, returns the message without the code prefix and,
// when present, the innermost cause.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// Aborts reports whether err belongs to one of the categories that abort a
// render before output is written.
func Aborts(err error) bool {
	switch GetCode(err) {
	case ErrCodeLoadFailure, ErrCodeEmptyDataset, ErrCodeDegenerateDomain:
		return true
	}
	return false
}
