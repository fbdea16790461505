package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travlog/internal/middleware"
	"travlog/internal/shared/testutil"
	"travlog/internal/store"
)

func bookingRouter(t *testing.T, fake *testutil.FakeBookingStore) chi.Router {
	t.Helper()

	logger := testLogger()
	errorHandler := testErrorHandler()
	handler := NewBookingHandler(fake, logger, errorHandler)
	auth := middleware.Authenticator(testTokenService(), errorHandler, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/booking", handler.Create)
			r.Get("/booking", handler.ListByCustomer)
			r.Get("/orders", handler.ListByProvider)
			r.Put("/update-status/{id}", handler.UpdateStatus)
		})
	})
	return r
}

func TestBookingHandler_CreateRequiresAuthOnly(t *testing.T) {
	fake := testutil.NewFakeBookingStore()
	router := bookingRouter(t, fake)

	// The body's emails need not match the token identity: ownership
	// fields are trusted as supplied.
	body := `{"userEmail":"c@x.com","providerEmail":"p@x.com","status":"pending","serviceName":"City Tour","price":49.5}`

	t.Run("authenticated insert succeeds", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "POST", "/api/v1/booking", "someone-else@x.com", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		var result store.InsertResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.NotEmpty(t, result.InsertedID)

		stored := fake.Bookings[result.InsertedID]
		assert.Equal(t, "c@x.com", stored.UserEmail)
		assert.Equal(t, "pending", stored.Status)
	})

	t.Run("missing cookie is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/booking", strings.NewReader(body)))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestBookingHandler_ListByCustomerScoping(t *testing.T) {
	fake := testutil.NewFakeBookingStore()
	_, err := fake.Insert(context.Background(), store.Booking{UserEmail: "c@x.com", ProviderEmail: "p@x.com", Status: "pending"})
	require.NoError(t, err)
	_, err = fake.Insert(context.Background(), store.Booking{UserEmail: "other@x.com", ProviderEmail: "p@x.com", Status: "pending"})
	require.NoError(t, err)
	router := bookingRouter(t, fake)

	t.Run("own bookings returned", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "GET", "/api/v1/booking?email=c@x.com", "c@x.com", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var results []store.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "c@x.com", results[0].UserEmail)
	})

	t.Run("foreign email parameter is unauthorized regardless of body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "GET", "/api/v1/booking?email=other@x.com", "c@x.com", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookingHandler_OrdersScopedToProvider(t *testing.T) {
	fake := testutil.NewFakeBookingStore()
	_, err := fake.Insert(context.Background(), store.Booking{UserEmail: "c@x.com", ProviderEmail: "p@x.com", Status: "pending"})
	require.NoError(t, err)
	router := bookingRouter(t, fake)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "GET", "/api/v1/orders?email=p@x.com", "p@x.com", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var results []store.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "p@x.com", results[0].ProviderEmail)
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	fake := testutil.NewFakeBookingStore()
	created, err := fake.Insert(context.Background(), store.Booking{UserEmail: "c@x.com", ProviderEmail: "p@x.com", Status: "pending"})
	require.NoError(t, err)
	router := bookingRouter(t, fake)

	t.Run("existing booking gets new status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "PUT", "/api/v1/update-status/"+created.InsertedID+"?email=p@x.com&status=accepted", "p@x.com", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var result store.UpdateResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, int64(1), result.MatchedCount)
		assert.Equal(t, "accepted", fake.Bookings[created.InsertedID].Status)
	})

	t.Run("missing id upserts a status-only document", func(t *testing.T) {
		missing := "65f000000000000000000002"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "PUT", "/api/v1/update-status/"+missing+"?email=p@x.com&status=rejected", "p@x.com", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var result store.UpdateResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, missing, result.UpsertedID)

		upserted := fake.Bookings[missing]
		assert.Equal(t, "rejected", upserted.Status)
		assert.Empty(t, upserted.UserEmail)
		assert.Empty(t, upserted.ProviderEmail)
	})

	t.Run("malformed id is a local failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "PUT", "/api/v1/update-status/not-hex?email=p@x.com&status=accepted", "p@x.com", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("guard mismatch is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(t, "PUT", "/api/v1/update-status/"+created.InsertedID+"?email=p@x.com&status=accepted", "intruder@x.com", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
