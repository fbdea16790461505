package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves liveness and health endpoints
type HealthHandler struct {
	version   string
	startedAt time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
		logger:    logger.With(slog.String("component", "health_handler")),
	}
}

// Home handles GET /: a plain-text liveness response
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Welcome to the travlog server"))
}

// Health handles GET /api/v1/health with a JSON status body
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
