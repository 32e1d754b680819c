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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Path errors
	ErrInvalidPath ErrorCode = "INVALID_PATH"

	// State errors: the operation was invoked while the filesystem is in the
	// wrong shape (already linked, not a link, another operation running...)
	ErrPrecondition ErrorCode = "PRECONDITION"

	// FileSystem errors
	ErrCopy       ErrorCode = "COPY"
	ErrLinkCreate ErrorCode = "LINK_CREATE"
	ErrIO         ErrorCode = "IO"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// SavelinkError represents a structured error with code and details
type SavelinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SavelinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SavelinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SavelinkError) Is(target error) bool {
	var targetErr *SavelinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SavelinkError with the given code and message
func New(code ErrorCode, message string) *SavelinkError {
	return &SavelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SavelinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SavelinkError {
	return &SavelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SavelinkError
func Wrap(err error, code ErrorCode, message string) *SavelinkError {
	if err == nil {
		return nil
	}
	return &SavelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SavelinkError {
	if err == nil {
		return nil
	}
	return &SavelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SavelinkError) WithDetail(key string, value interface{}) *SavelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var slErr *SavelinkError
	if errors.As(err, &slErr) {
		return slErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SavelinkError
func GetErrorCode(err error) ErrorCode {
	var slErr *SavelinkError
	if errors.As(err, &slErr) {
		return slErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SavelinkError
func GetErrorDetails(err error) map[string]interface{} {
	var slErr *SavelinkError
	if errors.As(err, &slErr) {
		return slErr.Details
	}
	return nil
}

// Message returns the human readable message of a SavelinkError without the
// code prefix, or err.Error() for any other error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var slErr *SavelinkError
	if errors.As(err, &slErr) {
		if slErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", slErr.Message, slErr.Wrapped)
		}
		return slErr.Message
	}
	return err.Error()
}
