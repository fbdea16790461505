package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response. Every error body
// carries a message field; the HTTP status is applied at render time.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrMalformedID    = New(http.StatusBadRequest, "MALFORMED_ID", "Malformed document id")

	// 401 Unauthorized: the presented credential is invalid, or the
	// authenticated identity does not match the requested scope
	ErrUnauthorized = New(http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")

	// 403 Forbidden: no credential presented at all
	ErrForbidden = New(http.StatusForbidden, "FORBIDDEN", "forbidden")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrValidation creates a validation error naming the offending field
func ErrValidation(field, message string) *APIError {
	return New(http.StatusBadRequest, "VALIDATION_FAILED", fmt.Sprintf("%s: %s", field, message))
}

// ErrStorage wraps a storage-level failure. The underlying message is
// surfaced in the response body; the process never crashes on these.
func ErrStorage(err error) *APIError {
	return New(http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
}
