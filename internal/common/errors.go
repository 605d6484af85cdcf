package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrInvalidInput marks caller precondition violations (no text, no image).
	// The pipeline is never invoked when this is returned.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBackendUnavailable marks transport-level failures reaching the
	// extraction backend: network error, auth failure, timeout.
	ErrBackendUnavailable = errors.New("extraction backend unavailable")
	// ErrBackendError marks a non-success response from the backend service.
	ErrBackendError = errors.New("extraction backend error")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
