package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "travlog/internal/errors"
	"travlog/internal/token"
)

type stubVerifier struct {
	email string
	err   error
}

func (v stubVerifier) Verify(string) (string, error) {
	return v.email, v.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthChain(verifier TokenVerifier, next http.Handler) http.Handler {
	logger := discardLogger()
	return Authenticator(verifier, apierrors.NewErrorHandler(logger), logger)(next)
}

func TestAuthenticator_MissingCookieIsForbidden(t *testing.T) {
	called := false
	handler := newAuthChain(stubVerifier{email: "a@x.com"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/v1/booking", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestAuthenticator_InvalidTokenIsUnauthorized(t *testing.T) {
	called := false
	handler := newAuthChain(stubVerifier{err: errors.New("bad signature")}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/v1/booking", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "tampered"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticator_ValidTokenBindsIdentity(t *testing.T) {
	var got string
	handler := newAuthChain(stubVerifier{email: "a@x.com"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/v1/booking", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "good"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", got)
}

func TestIdentityFromContext_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, IdentityFromContext(req.Context()))
}

func TestRequireOwner(t *testing.T) {
	errorHandler := apierrors.NewErrorHandler(discardLogger())

	tests := []struct {
		name       string
		identity   string
		query      string
		wantOK     bool
		wantStatus int
	}{
		{
			name:     "matching identity",
			identity: "a@x.com",
			query:    "email=a@x.com",
			wantOK:   true,
		},
		{
			name:       "mismatched identity",
			identity:   "a@x.com",
			query:      "email=b@x.com",
			wantOK:     false,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "case sensitive comparison",
			identity:   "a@x.com",
			query:      "email=A@X.COM",
			wantOK:     false,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing email parameter",
			identity:   "a@x.com",
			query:      "",
			wantOK:     false,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no identity in context",
			identity:   "",
			query:      "email=a@x.com",
			wantOK:     false,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/orders?"+tt.query, nil)
			if tt.identity != "" {
				req = reqWithIdentity(t, req, tt.identity)
			}
			rec := httptest.NewRecorder()

			email, ok := RequireOwner(rec, req, errorHandler)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.identity, email)
			} else {
				assert.Equal(t, tt.wantStatus, rec.Code)
			}
		})
	}
}

// reqWithIdentity runs the request through Authenticator with an
// always-valid verifier so the identity lands in the context exactly as
// production code would put it there.
func reqWithIdentity(t *testing.T, req *http.Request, email string) *http.Request {
	t.Helper()

	var captured *http.Request
	handler := newAuthChain(stubVerifier{email: email}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
	}))

	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "valid"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, captured)
	return captured
}
