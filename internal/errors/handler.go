package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// ErrorHandler provides centralized error handling: it logs the failure
// with request context and renders a JSON body carrying a message field.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to an APIError and responds with it.
// Non-API errors are treated as storage/internal failures.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	apiErr := toAPIError(err)

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("code", apiErr.ErrorCode),
		slog.Int("status", apiErr.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, apiErr)
}

// toAPIError maps an arbitrary error to a renderable APIError
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "request cancelled or timed out")
	}
	return ErrStorage(err)
}
