package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "travlog/internal/errors"
)

// AuthHandler handles token issuance and logout
type AuthHandler struct {
	tokens       TokenIssuer
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens TokenIssuer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AuthHandler {
	return &AuthHandler{
		tokens:       tokens,
		logger:       logger.With(slog.String("component", "auth_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// tokenRequest is the body of POST /api/v1/jwt
type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// messageResponse is the fixed-shape success body for auth endpoints
type messageResponse struct {
	Message string `json:"message"`
}

// CreateToken handles POST /api/v1/jwt: it signs a token asserting the
// posted email and delivers it in the token cookie. There is no user
// record check; the email is taken as the token subject.
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("email", "must be a valid email address"))
		return
	}

	tok, err := h.tokens.Issue(req.Email)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "token issued", slog.String("subject", req.Email))

	http.SetCookie(w, h.tokens.Cookie(tok))
	render.JSON(w, r, messageResponse{Message: "success"})
}

// Logout handles POST /api/v1/logout by clearing the token cookie.
// The token itself stays valid until expiry; there is no server-side
// revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.tokens.ClearCookie())
	render.JSON(w, r, messageResponse{Message: "cleared"})
}
