// Package errors defines the domain error taxonomy. Every error kind carries
// an HTTP status and a stable business code; the mapping to responses lives
// in the delivery layer's error middleware, not here.
package errors

import (
	"net/http"

	"passport/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Credential-related errors.
	// ErrWrongPassword and ErrUserNotFound stay distinct kinds on purpose;
	// unifying them to prevent account enumeration is tracked as a hardening
	// item, not silently changed here.
	ErrWrongPassword = NewBaseError(
		http.StatusUnauthorized,
		"WRONG_PASSWORD",
		"Wrong password",
		"",
	)

	ErrCredentialDecode = NewBaseError(
		http.StatusInternalServerError,
		"CREDENTIAL_DECODE",
		"Stored credential could not be decoded",
		"",
	)

	// Token-related errors. Signature mismatch, expiry, missing token and
	// revocation all collapse into this single kind so callers cannot probe
	// why a token failed.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Invalid or expired session token, login again",
		"",
	)

	// Account-state errors share a status class but keep distinct messages.
	ErrAccountSuspended = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_SUSPENDED",
		"User is suspended",
		"",
	)

	ErrAccountDeleted = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_DELETED",
		"User is deleted",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Permission denied",
		"",
	)

	// User lookup and creation errors.
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No such user",
		"",
	)

	ErrDuplicateUser = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_USER",
		"This email is already registered",
		"",
	)

	// Password-reset errors. A missing ticket covers both "unknown" and
	// "already consumed" so resubmission reveals nothing.
	ErrResetExpired = NewBaseError(
		http.StatusBadRequest,
		"RESET_EXPIRED",
		"Password reset expired",
		"",
	)

	ErrResetVerification = NewBaseError(
		http.StatusBadRequest,
		"RESET_VERIFICATION",
		"Password reset could not be verified",
		"",
	)

	// Validation-related errors.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Collaborator connectivity errors.
	ErrDependency = NewBaseError(
		http.StatusServiceUnavailable,
		"DEPENDENCY_FAILURE",
		"A backing service is unavailable",
		"",
	)
)

// NewDependencyError wraps a collaborator connectivity fault with details for
// diagnostics while keeping the generic dependency kind for the caller.
func NewDependencyError(err error, message string) error {
	return errors.Wrap(ErrDependency.WithDetails(err.Error()), message)
}
