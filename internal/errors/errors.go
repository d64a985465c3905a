package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Error code constants
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidArg   = "INVALID_ARGUMENT"
	CodeExternal     = "EXTERNAL_ERROR"
	CodeConflict     = "CONFLICT"          // Resource already exists (UNIQUE violation)
	CodeDependency   = "DEPENDENCY_ERROR"  // Foreign key constraint violation
	CodeNotAvailable = "NOT_AVAILABLE"     // Captions disabled or no track matches the language policy
	CodeTransient    = "TRANSIENT_ERROR"   // Rate limiting or network hiccup, safe to retry
	CodeExhausted    = "EXHAUSTED_SOURCES" // No acquisition path produced a transcript
)

// HasCode reports whether err (or anything it wraps) is an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotAvailable reports whether err is terminal for its source: the video has
// no captions matching policy and retrying cannot change the outcome.
func IsNotAvailable(err error) bool {
	return HasCode(err, CodeNotAvailable)
}

// IsTransient reports whether err is worth retrying with backoff.
func IsTransient(err error) bool {
	return HasCode(err, CodeTransient)
}
