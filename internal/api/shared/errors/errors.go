package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stegavault/stegavault/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeUnprocessable    ErrorCode = "unprocessable"
	ErrCodeTooManyRequests  ErrorCode = "too_many_requests"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeUpstreamError ErrorCode = "upstream_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// FromError maps an error from the core operations to an API error.
// Causes of server side failures are never exposed.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}

	message := domain.MessageOf(err)
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return NewValidationError(message)
	case domain.KindAuthentication:
		return NewUnauthorizedError(message)
	case domain.KindAuthorization:
		return NewForbiddenError(message)
	case domain.KindNotFound:
		return NewNotFoundError(message)
	case domain.KindConflict:
		return NewConflictError(message)
	case domain.KindCapacity, domain.KindIntegrity, domain.KindMalformed:
		return NewUnprocessableError(message)
	case domain.KindExternalIO:
		return NewUpstreamError("Upstream service failed")
	default:
		return NewInternalError("Internal server error")
	}
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return newError(http.StatusBadRequest, ErrCodeBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(http.StatusNotFound, ErrCodeNotFound, message, details...)
}

func NewValidationError(details ...string) *APIError {
	return newError(http.StatusBadRequest, ErrCodeValidationFailed, "Validation failed", details...)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(http.StatusUnauthorized, ErrCodeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newError(http.StatusForbidden, ErrCodeForbidden, message, details...)
}

func NewConflictError(message string, details ...string) *APIError {
	return newError(http.StatusConflict, ErrCodeConflict, message, details...)
}

func NewUnprocessableError(message string, details ...string) *APIError {
	return newError(http.StatusUnprocessableEntity, ErrCodeUnprocessable, message, details...)
}

func NewTooManyRequestsError(message string, details ...string) *APIError {
	return newError(http.StatusTooManyRequests, ErrCodeTooManyRequests, message, details...)
}

func NewUpstreamError(message string, details ...string) *APIError {
	return newError(http.StatusBadGateway, ErrCodeUpstreamError, message, details...)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(http.StatusInternalServerError, ErrCodeInternalError, message, details...)
}

func newError(status int, code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}
