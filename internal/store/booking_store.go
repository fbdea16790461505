package store

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingStore provides the typed operations over the booking
// collection. Bookings are inserted and status-updated, never deleted.
type BookingStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewBookingStore creates a booking store over the given collection
func NewBookingStore(coll *mongo.Collection, logger *slog.Logger) *BookingStore {
	return &BookingStore{
		coll:   coll,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

// Insert stores a new booking as given and returns the assigned id.
// The status defaults to whatever the caller supplied.
func (s *BookingStore) Insert(ctx context.Context, bk Booking) (*InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, bk)
	if err != nil {
		return nil, fmt.Errorf("inserting booking: %w", err)
	}

	s.logger.InfoContext(ctx, "booking inserted",
		slog.String("user", bk.UserEmail),
		slog.String("provider", bk.ProviderEmail),
	)

	return &InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

// ListByCustomer returns the bookings made by the given customer
func (s *BookingStore) ListByCustomer(ctx context.Context, email string) ([]Booking, error) {
	return s.find(ctx, bson.M{"userEmail": email})
}

// ListByProvider returns the bookings placed against the given
// provider's services ("orders").
func (s *BookingStore) ListByProvider(ctx context.Context, email string) ([]Booking, error) {
	return s.find(ctx, bson.M{"providerEmail": email})
}

// UpdateStatus sets the status field of the booking with the given id.
// Upsert semantics are preserved from the original system: a missing id
// creates a document holding only _id and status (see DESIGN.md).
func (s *BookingStore) UpdateStatus(ctx context.Context, id, status string) (*UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("updating booking status %s: %w", id, err)
	}

	return &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}, nil
}

// find runs a filter scan and collects the results
func (s *BookingStore) find(ctx context.Context, filter bson.M) ([]Booking, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("finding bookings: %w", err)
	}

	bookings := []Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("reading bookings: %w", err)
	}
	return bookings, nil
}
