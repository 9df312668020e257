// Package errors defines structured error types for the AI Muhasebi platform core.
// Errors carry a stable machine-readable code, an HTTP status for the interface
// layer, and optional metadata for logging and client responses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "internal_error"
	ErrCodeInvalidRequest  ErrorCode = "invalid_request"
	ErrCodeValidation      ErrorCode = "validation_error"
	ErrCodeNotFound        ErrorCode = "not_found"
	ErrCodeLimitExceeded   ErrorCode = "plan_limit_exceeded"
	ErrCodeUnavailable     ErrorCode = "service_unavailable"
	ErrCodeTenantRequired  ErrorCode = "tenant_required"
)

// AppError is a structured application error.
type AppError struct {
	Code       ErrorCode
	HTTPStatus int
	Message    string
	cause      error
	metadata   map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain support.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches a cause error to the chain.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithMetadata attaches a context key/value pair.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.metadata == nil {
		e.metadata = make(map[string]interface{})
	}
	e.metadata[key] = value
	return e
}

// Metadata returns all attached metadata.
func (e *AppError) Metadata() map[string]interface{} {
	return e.metadata
}

// New creates an AppError with the given code, HTTP status and message.
func New(code ErrorCode, httpStatus int, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// ================================================================================
// Predefined Constructors
// ================================================================================

// ErrNotFound reports a missing resource. Surfaced as HTTP 404; not retried.
func ErrNotFound(resource, id string) *AppError {
	return New(ErrCodeNotFound, http.StatusNotFound,
		fmt.Sprintf("%s not found: %s", resource, id)).
		WithMetadata("resource", resource).
		WithMetadata("id", id)
}

// ErrValidation reports a user-correctable request problem.
func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, http.StatusBadRequest, message)
}

// ErrInvalidRequest reports a malformed request.
func ErrInvalidRequest(message string) *AppError {
	return New(ErrCodeInvalidRequest, http.StatusBadRequest, message)
}

// ErrPlanLimitExceeded reports that a tenant has exhausted a plan ceiling.
// It is a validation-class failure: the user can resolve it by upgrading.
func ErrPlanLimitExceeded(metric string, limit int64) *AppError {
	return New(ErrCodeLimitExceeded, http.StatusForbidden,
		fmt.Sprintf("plan limit reached for %s (%d); upgrade your plan to continue", metric, limit)).
		WithMetadata("metric", metric).
		WithMetadata("limit", limit)
}

// ErrInternal reports an unexpected server-side failure.
func ErrInternal(message string) *AppError {
	return New(ErrCodeInternal, http.StatusInternalServerError, message)
}

// ErrUnavailable reports a temporarily unavailable dependency.
func ErrUnavailable(message string) *AppError {
	return New(ErrCodeUnavailable, http.StatusServiceUnavailable, message)
}

// ErrTenantRequired reports a request missing tenant scoping.
func ErrTenantRequired() *AppError {
	return New(ErrCodeTenantRequired, http.StatusBadRequest, "tenant id is required")
}

// ================================================================================
// Predicates
// ================================================================================

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation reports whether err is user-correctable (validation class,
// including plan limit denials).
func IsValidation(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == ErrCodeValidation ||
			appErr.Code == ErrCodeInvalidRequest ||
			appErr.Code == ErrCodeLimitExceeded
	}
	return false
}

// IsLimitExceeded reports whether err is a plan limit denial.
func IsLimitExceeded(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == ErrCodeLimitExceeded
	}
	return false
}

// HTTPStatus maps an error to its HTTP status, defaulting to 500.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Wrap converts a generic error into an internal AppError, preserving the cause.
func Wrap(err error, message string) *AppError {
	return ErrInternal(message).WithCause(err)
}
