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

// BookingHandler handles the booking-collection endpoints. Every route
// here sits behind the authenticator; all but Create are additionally
// owner-guarded.
type BookingHandler struct {
	store        BookingStore
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(st BookingStore, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *BookingHandler {
	return &BookingHandler{
		store:        st,
		logger:       logger.With(slog.String("component", "booking_handler")),
		errorHandler: errorHandler,
	}
}

// Create handles POST /api/v1/booking. Authentication is required but
// there is no ownership guard: userEmail and providerEmail are stored
// as supplied in the body (see DESIGN.md).
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var bk store.Booking
	if err := render.DecodeJSON(r.Body, &bk); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	result, err := h.store.Insert(r.Context(), bk)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// ListByCustomer handles GET /api/v1/booking?email=<e>
func (h *BookingHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.RequireOwner(w, r, h.errorHandler)
	if !ok {
		return
	}

	bookings, err := h.store.ListByCustomer(r.Context(), email)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, bookings)
}

// ListByProvider handles GET /api/v1/orders?email=<e>: the bookings
// placed against the caller's services.
func (h *BookingHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.RequireOwner(w, r, h.errorHandler)
	if !ok {
		return
	}

	bookings, err := h.store.ListByProvider(r.Context(), email)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, bookings)
}

// UpdateStatus handles PUT /api/v1/update-status/{id}?email=<e>&status=<s>
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.RequireOwner(w, r, h.errorHandler); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	status := r.URL.Query().Get("status")

	result, err := h.store.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			h.errorHandler.HandleError(w, r, apierrors.ErrMalformedID)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}
