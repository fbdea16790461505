package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	return NewService([]byte("test-signing-key"), time.Hour, "travlog", false, opts...)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	tok, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	email, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestVerify_MalformedToken(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "garbage", input: "not-a-token"},
		{name: "wrong segment count", input: "a.b"},
		{name: "unsigned", input: "eyJhbGciOiJub25lIn0.eyJzdWIiOiJhQHguY29tIn0."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	svc := newTestService(t)
	other := NewService([]byte("some-other-key"), time.Hour, "travlog", false)

	tok, err := other.Issue("a@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, WithClock(func() time.Time { return issued }))

	tok, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	// Still valid just before expiry
	svcLater := newTestService(t, WithClock(func() time.Time { return issued.Add(59 * time.Minute) }))
	_, err = svcLater.Verify(tok)
	assert.NoError(t, err)

	// Invalid once past it
	svcExpired := newTestService(t, WithClock(func() time.Time { return issued.Add(61 * time.Minute) }))
	_, err = svcExpired.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCookie_DevelopmentPolicy(t *testing.T) {
	svc := newTestService(t)

	c := svc.Cookie("tok")
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestCookie_ProductionPolicy(t *testing.T) {
	svc := NewService([]byte("k"), time.Hour, "travlog", true)

	c := svc.Cookie("tok")
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

func TestClearCookie(t *testing.T) {
	svc := newTestService(t)

	c := svc.ClearCookie()
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}
