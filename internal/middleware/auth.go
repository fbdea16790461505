package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "travlog/internal/errors"
	"travlog/internal/token"
)

// identityKey is the context key for the authenticated identity
const identityKey contextKey = "identity"

// TokenVerifier verifies a token string and returns the identity it
// asserts. Implemented by token.Service.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// Authenticator returns middleware that authenticates a request from
// its token cookie. A missing cookie is Forbidden; a cookie that fails
// verification is Unauthorized. On success the verified identity (an
// email) is bound to the request context for downstream handlers.
func Authenticator(verifier TokenVerifier, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) func(next http.Handler) http.Handler {
	authLogger := logger.With(slog.String("component", "auth_middleware"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(token.CookieName)
			if err != nil {
				errorHandler.HandleError(w, r, apierrors.ErrForbidden)
				return
			}

			email, err := verifier.Verify(cookie.Value)
			if err != nil {
				authLogger.WarnContext(r.Context(), "token verification failed",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path),
				)
				errorHandler.HandleError(w, r, apierrors.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated identity bound by
// Authenticator, or "" when the request did not pass through it.
func IdentityFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(identityKey).(string); ok {
		return email
	}
	return ""
}

// RequireOwner is the per-endpoint authorization guard. It compares the
// authenticated identity against the identity the request claims via
// its email query parameter, with case-sensitive equality. On mismatch
// it renders Unauthorized and returns ok=false. The guard never looks
// at the request body; ownership fields in bodies are trusted as
// supplied (see DESIGN.md).
func RequireOwner(w http.ResponseWriter, r *http.Request, errorHandler *apierrors.ErrorHandler) (string, bool) {
	claimed := r.URL.Query().Get("email")
	authenticated := IdentityFromContext(r.Context())

	if authenticated == "" || claimed != authenticated {
		errorHandler.HandleError(w, r, apierrors.ErrUnauthorized)
		return "", false
	}
	return claimed, true
}
