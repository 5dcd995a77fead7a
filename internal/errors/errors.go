package errors

import (
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Request errors (400xx)
	ErrInvalidRequest   ErrorCode = "40001"
	ErrValidationFailed ErrorCode = "40002"

	// Resource errors (404xx)
	ErrProfileNotFound     ErrorCode = "40401"
	ErrPromotionNotFound   ErrorCode = "40402"
	ErrApplicationNotFound ErrorCode = "40403"

	// Conflict errors (409xx)
	ErrAlreadyApplied ErrorCode = "40901"

	// Precondition errors (422xx)
	ErrProfileRequired   ErrorCode = "42201"
	ErrPromotionClosed   ErrorCode = "42202"
	ErrNotInvited        ErrorCode = "42203"
	ErrInvalidTransition ErrorCode = "42204"

	// Server errors (500xx)
	ErrInternalServer ErrorCode = "50001"
)

// APIError represents a standardized API error
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ErrorResponse represents the error response format
type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id"`
}

// Common errors
var (
	ErrProfileNotFoundError = &APIError{
		Code:       ErrProfileNotFound,
		Message:    "Creator profile not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrPromotionNotFoundError = &APIError{
		Code:       ErrPromotionNotFound,
		Message:    "Promotion request not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrApplicationNotFoundError = &APIError{
		Code:       ErrApplicationNotFound,
		Message:    "Application not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrAlreadyAppliedError = &APIError{
		Code:       ErrAlreadyApplied,
		Message:    "Already applied to this promotion",
		HTTPStatus: http.StatusConflict,
	}

	ErrProfileRequiredError = &APIError{
		Code:       ErrProfileRequired,
		Message:    "A creator profile is required before applying",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrPromotionClosedError = &APIError{
		Code:       ErrPromotionClosed,
		Message:    "Promotion is not accepting applications",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrNotInvitedError = &APIError{
		Code:       ErrNotInvited,
		Message:    "Application is not in invited status",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrInternalServerError = &APIError{
		Code:       ErrInternalServer,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
	}
)

// NewValidationError creates a validation error with details
func NewValidationError(details any) *APIError {
	return &APIError{
		Code:       ErrValidationFailed,
		Message:    "Validation failed",
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:       ErrInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidTransitionError creates an error for a disallowed status change
func NewInvalidTransitionError(message string) *APIError {
	return &APIError{
		Code:       ErrInvalidTransition,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}
