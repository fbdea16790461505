// Package testutil provides in-memory store fakes shared by handler
// and application tests. The fakes mirror the storage contract:
// get-by-id misses are (nil, nil), malformed ids wrap store.ErrInvalidID,
// repeat deletes count zero, and updates on missing ids upsert.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"travlog/internal/store"
)

// FakeServiceStore is an in-memory implementation of the service
// collection operations.
type FakeServiceStore struct {
	Services map[string]store.Service
	FailWith error
}

// NewFakeServiceStore creates an empty fake service store
func NewFakeServiceStore() *FakeServiceStore {
	return &FakeServiceStore{Services: map[string]store.Service{}}
}

func (f *FakeServiceStore) List(ctx context.Context) ([]store.Service, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	out := []store.Service{}
	for _, svc := range f.Services {
		out = append(out, svc)
	}
	return out, nil
}

func (f *FakeServiceStore) Search(ctx context.Context, term string) ([]store.Service, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	out := []store.Service{}
	for _, svc := range f.Services {
		if strings.Contains(strings.ToLower(svc.ServiceName), strings.ToLower(term)) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *FakeServiceStore) ListByProvider(ctx context.Context, email string) ([]store.Service, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	out := []store.Service{}
	for _, svc := range f.Services {
		if svc.ProviderEmail == email {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *FakeServiceStore) Get(ctx context.Context, id string) (*store.Service, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	svc, ok := f.Services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (f *FakeServiceStore) Insert(ctx context.Context, svc store.Service) (*store.InsertResult, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	svc.ID = primitive.NewObjectID()
	f.Services[svc.ID.Hex()] = svc
	return &store.InsertResult{InsertedID: svc.ID.Hex()}, nil
}

func (f *FakeServiceStore) Update(ctx context.Context, id string, update store.ServiceUpdate) (*store.UpdateResult, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}

	svc, ok := f.Services[id]
	if !ok {
		// Upsert: the created document holds only id plus the set fields
		f.Services[id] = store.Service{
			ID:          oid,
			ServiceName: update.ServiceName,
			Image:       update.Image,
			TourArea:    update.TourArea,
			Price:       update.Price,
			Description: update.Description,
		}
		return &store.UpdateResult{UpsertedID: id}, nil
	}

	svc.ServiceName = update.ServiceName
	svc.Image = update.Image
	svc.TourArea = update.TourArea
	svc.Price = update.Price
	svc.Description = update.Description
	f.Services[id] = svc
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *FakeServiceStore) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	if _, ok := f.Services[id]; !ok {
		return &store.DeleteResult{DeletedCount: 0}, nil
	}
	delete(f.Services, id)
	return &store.DeleteResult{DeletedCount: 1}, nil
}

// FakeBookingStore is an in-memory implementation of the booking
// collection operations.
type FakeBookingStore struct {
	Bookings map[string]store.Booking
	FailWith error
}

// NewFakeBookingStore creates an empty fake booking store
func NewFakeBookingStore() *FakeBookingStore {
	return &FakeBookingStore{Bookings: map[string]store.Booking{}}
}

func (f *FakeBookingStore) Insert(ctx context.Context, bk store.Booking) (*store.InsertResult, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	bk.ID = primitive.NewObjectID()
	f.Bookings[bk.ID.Hex()] = bk
	return &store.InsertResult{InsertedID: bk.ID.Hex()}, nil
}

func (f *FakeBookingStore) ListByCustomer(ctx context.Context, email string) ([]store.Booking, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	out := []store.Booking{}
	for _, bk := range f.Bookings {
		if bk.UserEmail == email {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (f *FakeBookingStore) ListByProvider(ctx context.Context, email string) ([]store.Booking, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	out := []store.Booking{}
	for _, bk := range f.Bookings {
		if bk.ProviderEmail == email {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (f *FakeBookingStore) UpdateStatus(ctx context.Context, id, status string) (*store.UpdateResult, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}

	bk, ok := f.Bookings[id]
	if !ok {
		// Upsert: the created document holds only _id and status
		f.Bookings[id] = store.Booking{ID: oid, Status: status}
		return &store.UpdateResult{UpsertedID: id}, nil
	}

	bk.Status = status
	f.Bookings[id] = bk
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
