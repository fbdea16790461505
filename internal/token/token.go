// Package token issues and verifies the signed, time-limited identity
// assertions carried in the token cookie. There is no server-side
// revocation: logout only clears the client cookie, and an issued token
// stays cryptographically valid until its natural expiry.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the token travels in, both directions
const CookieName = "token"

// ErrInvalidToken covers every verification failure: bad signature,
// malformed input, wrong algorithm, expired claims.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies identity tokens. Construct once at startup
// and inject; the signing key is read-only after that.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	production bool
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service with the given signing key and
// token lifetime. The production flag selects cookie attributes for
// cross-site deployment (Secure, SameSite=None).
func NewService(signingKey []byte, ttl time.Duration, issuer string, production bool, opts ...Option) *Service {
	s := &Service{
		signingKey: signingKey,
		ttl:        ttl,
		issuer:     issuer,
		production: production,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue produces a signed token asserting the given identity (an email)
// with a fixed expiry of the configured TTL.
func (s *Service) Issue(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify decodes a token and checks signature and expiry, returning the
// asserted identity. Any failure, including malformed input, returns an
// error wrapping ErrInvalidToken; Verify never panics.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// Cookie wraps an issued token in the response cookie the client sends
// back on subsequent requests.
func (s *Service) Cookie(tokenString string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.ttl / time.Second),
	}
	s.applyPolicy(c)
	return c
}

// ClearCookie instructs the client to drop the token cookie. This is
// the whole of logout; see the package comment on revocation.
func (s *Service) ClearCookie() *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	s.applyPolicy(c)
	return c
}

// applyPolicy sets the environment-dependent cookie attributes. The
// production frontend is served from another origin, so cookies must be
// SameSite=None and Secure there; development stays strict.
func (s *Service) applyPolicy(c *http.Cookie) {
	if s.production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteStrictMode
	}
}
