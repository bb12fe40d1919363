// Package errors provides the coded error type used across matrix.
//
// Every failure that crosses a package boundary is a *MatrixError carrying a
// stable ErrorCode, so callers and tests can branch on the code instead of
// matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Symlink errors
	ErrLink ErrorCode = "LINK"

	// Clone errors
	ErrClone        ErrorCode = "CLONE"
	ErrCloneTimeout ErrorCode = "CLONE_TIMEOUT"
	ErrToolMissing  ErrorCode = "TOOL_MISSING"

	// Workspace errors
	ErrWorkspace ErrorCode = "WORKSPACE"
	ErrManifest  ErrorCode = "MANIFEST"

	// Persistence errors
	ErrStore ErrorCode = "STORE"
)

// MatrixError represents a structured error with code and details
type MatrixError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MatrixError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MatrixError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MatrixError) Is(target error) bool {
	var targetErr *MatrixError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MatrixError with the given code and message
func New(code ErrorCode, message string) *MatrixError {
	return &MatrixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MatrixError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MatrixError {
	return &MatrixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MatrixError
func Wrap(err error, code ErrorCode, message string) *MatrixError {
	if err == nil {
		return nil
	}
	return &MatrixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MatrixError {
	if err == nil {
		return nil
	}
	return &MatrixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MatrixError) WithDetail(key string, value interface{}) *MatrixError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var matrixErr *MatrixError
	if errors.As(err, &matrixErr) {
		return matrixErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MatrixError
func GetErrorCode(err error) ErrorCode {
	var matrixErr *MatrixError
	if errors.As(err, &matrixErr) {
		return matrixErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MatrixError
func GetErrorDetails(err error) map[string]interface{} {
	var matrixErr *MatrixError
	if errors.As(err, &matrixErr) {
		return matrixErr.Details
	}
	return nil
}

// IsLinkError reports whether err is a symlink create/remove failure.
func IsLinkError(err error) bool {
	return IsErrorCode(err, ErrLink)
}

// IsCloneError reports whether err came from the clone path: a missing
// tool, a timeout or a failed clone invocation.
func IsCloneError(err error) bool {
	switch GetErrorCode(err) {
	case ErrClone, ErrCloneTimeout, ErrToolMissing:
		return true
	}
	return false
}
