package http

import (
	"context"
	nethttp "net/http"

	"travlog/internal/store"
)

// ServiceStore is the service-collection contract the handlers depend
// on. Implemented by store.ServiceStore; tests substitute fakes.
type ServiceStore interface {
	List(ctx context.Context) ([]store.Service, error)
	Search(ctx context.Context, term string) ([]store.Service, error)
	ListByProvider(ctx context.Context, email string) ([]store.Service, error)
	Get(ctx context.Context, id string) (*store.Service, error)
	Insert(ctx context.Context, svc store.Service) (*store.InsertResult, error)
	Update(ctx context.Context, id string, update store.ServiceUpdate) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
}

// BookingStore is the booking-collection contract the handlers depend
// on. Implemented by store.BookingStore.
type BookingStore interface {
	Insert(ctx context.Context, bk store.Booking) (*store.InsertResult, error)
	ListByCustomer(ctx context.Context, email string) ([]store.Booking, error)
	ListByProvider(ctx context.Context, email string) ([]store.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*store.UpdateResult, error)
}

// TokenIssuer issues tokens and builds the cookies that carry them.
// Implemented by token.Service.
type TokenIssuer interface {
	Issue(email string) (string, error)
	Cookie(tokenString string) *nethttp.Cookie
	ClearCookie() *nethttp.Cookie
}
