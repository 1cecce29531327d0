package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies where an error originated.
type Kind string

const (
	// KindValidation is raised locally before any backend call is made.
	KindValidation Kind = "validation"
	// KindAPI wraps a backend non-2xx answer or a transport failure.
	KindAPI Kind = "api"
	// KindInternal covers everything else.
	KindInternal Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches sentinel errors by code and message so wrapped copies still compare equal.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindAPI, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindAPI, Message: "You are not authorized, please log in again"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindAPI, Message: "You do not have permission to perform this action"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindAPI, Message: "Invalid phone or password"}
	ErrSessionExpired     = &AppError{Code: http.StatusUnauthorized, Kind: KindAPI, Message: "Session has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindAPI, Message: "Invalid token"}
	ErrPaidInvoiceDelete  = &AppError{Code: http.StatusConflict, Kind: KindValidation, Message: "Paid invoices cannot be deleted"}
	ErrSubmitInProgress   = &AppError{Code: http.StatusConflict, Kind: KindValidation, Message: "Invoice submission already in progress"}
	ErrDraftSubmitted     = &AppError{Code: http.StatusConflict, Kind: KindValidation, Message: "Invoice draft has already been submitted"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
	}
}

// NewAPIError creates an error describing a failed backend call
func NewAPIError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindAPI,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewRuleError creates a validation error carrying a single user-facing message
func NewRuleError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindValidation,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsValidation reports whether err was raised before reaching the backend
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindValidation
}

// IsUnauthorized reports whether err carries a 401 status
func IsUnauthorized(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
