package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "travlog/internal/errors"
	"travlog/internal/middleware"
	"travlog/internal/store"
)

// ServiceHandler handles the service-collection endpoints
type ServiceHandler struct {
	store        ServiceStore
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(st ServiceStore, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ServiceHandler {
	return &ServiceHandler{
		store:        st,
		logger:       logger.With(slog.String("component", "service_handler")),
		errorHandler: errorHandler,
	}
}

// List handles GET /api/v1/services
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, services)
}

// Search handles GET /api/v1/search?value=<substring>. No matches is
// an empty array, never an error.
func (h *ServiceHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("value")

	services, err := h.store.Search(r.Context(), term)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, services)
}

// ListByProvider handles GET /api/v1/user-services?email=<e>. The
// ownership guard limits the listing to the caller's own services.
func (h *ServiceHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.RequireOwner(w, r, h.errorHandler)
	if !ok {
		return
	}

	services, err := h.store.ListByProvider(r.Context(), email)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, services)
}

// Get handles GET /api/v1/services/{id}. A miss renders a null body
// with 200, distinct from a malformed id or a storage failure.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	svc, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	render.JSON(w, r, svc)
}

// Create handles POST /api/v1/services. The providerEmail is stored as
// supplied in the body; it is not cross-checked against any
// authenticated identity (see DESIGN.md).
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var svc store.Service
	if err := render.DecodeJSON(r.Body, &svc); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	result, err := h.store.Insert(r.Context(), svc)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// updateServiceRequest is the body of PUT /api/v1/services/{id}. The
// field names mirror what the frontend sends.
type updateServiceRequest struct {
	Area           string  `json:"area"`
	NewPrice       float64 `json:"newPrice"`
	NewPhoto       string  `json:"newPhoto"`
	NewName        string  `json:"newName"`
	NewDescription string  `json:"newDescription"`
}

// Update handles PUT /api/v1/services/{id}?email=<e>: a point replace
// of the mutable fields, owner-guarded. The owning providerEmail is
// never written.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.RequireOwner(w, r, h.errorHandler); !ok {
		return
	}

	var req updateServiceRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.store.Update(r.Context(), id, store.ServiceUpdate{
		ServiceName: req.NewName,
		Image:       req.NewPhoto,
		TourArea:    req.Area,
		Price:       req.NewPrice,
		Description: req.NewDescription,
	})
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// Delete handles DELETE /api/v1/services/{id}?email=<e>. Deleting an
// already-deleted id reports a zero count.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.RequireOwner(w, r, h.errorHandler); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// handleStoreError maps store errors onto API errors
func (h *ServiceHandler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrInvalidID) {
		h.errorHandler.HandleError(w, r, apierrors.ErrMalformedID)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}
