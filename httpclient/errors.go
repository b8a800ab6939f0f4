package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"

	apperrors "github.com/kbukum/fetchkit/errors"
)

// ErrorCode classifies transport errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeValidation indicates the request could not be built.
	ErrCodeValidation
	// ErrCodeCanceled indicates the caller canceled the context.
	ErrCodeCanceled
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// appCode maps a transport error code onto the shared error codes.
func (c ErrorCode) appCode() apperrors.ErrorCode {
	switch c {
	case ErrCodeTimeout:
		return apperrors.ErrCodeTimeout
	case ErrCodeValidation:
		return apperrors.ErrCodeInvalidInput
	default:
		return apperrors.ErrCodeConnectionFailed
	}
}

// Error is a structured transport error with classification.
// It matches *errors.AppError targets with the corresponding code.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Method and Target identify the failed request.
	Method string
	Target string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("httpclient: %s: %s %s: %v", e.Code, e.Method, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the mapped code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*apperrors.AppError)
	return ok && t.Code == e.Code.appCode()
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(method, target string, err error) *Error {
	return &Error{Code: ErrCodeTimeout, Method: method, Target: target, Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(method, target string, err error) *Error {
	return &Error{Code: ErrCodeConnection, Method: method, Target: target, Retryable: true, Err: err}
}

// NewValidationError creates an error for a request that could not be built.
func NewValidationError(method, target string, err error) *Error {
	return &Error{Code: ErrCodeValidation, Method: method, Target: target, Err: err}
}

// classify wraps an error returned by http.Client.Do.
func classify(ctx context.Context, method, target string, err error) *Error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &Error{Code: ErrCodeCanceled, Method: method, Target: target, Err: err}
	}
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(method, target, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(method, target, err)
	}
	return NewConnectionError(method, target, err)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsCanceled checks if an error was caused by caller cancellation.
func IsCanceled(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCanceled
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
