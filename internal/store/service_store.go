package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceStore provides the typed operations over the service
// collection. All operations are single-document or single-collection
// scans; no transactions.
type ServiceStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewServiceStore creates a service store over the given collection
func NewServiceStore(coll *mongo.Collection, logger *slog.Logger) *ServiceStore {
	return &ServiceStore{
		coll:   coll,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// List returns every service in store-defined order. No matches is an
// empty slice, never an error.
func (s *ServiceStore) List(ctx context.Context) ([]Service, error) {
	return s.find(ctx, bson.M{})
}

// Search returns services whose serviceName contains term,
// case-insensitively. The term is quoted so regex metacharacters in
// user input match literally.
func (s *ServiceStore) Search(ctx context.Context, term string) ([]Service, error) {
	filter := bson.M{
		"serviceName": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"},
	}
	return s.find(ctx, filter)
}

// ListByProvider returns the services owned by the given provider
func (s *ServiceStore) ListByProvider(ctx context.Context, email string) ([]Service, error) {
	return s.find(ctx, bson.M{"providerEmail": email})
}

// Get returns a single service by id. A miss returns (nil, nil) so
// callers can answer with an empty payload; a malformed id returns
// ErrInvalidID.
func (s *ServiceStore) Get(ctx context.Context, id string) (*Service, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var svc Service
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding service %s: %w", id, err)
	}
	return &svc, nil
}

// Insert stores a new service as given, owner field included, and
// returns the assigned id.
func (s *ServiceStore) Insert(ctx context.Context, svc Service) (*InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("inserting service: %w", err)
	}

	s.logger.InfoContext(ctx, "service inserted",
		slog.String("provider", svc.ProviderEmail),
		slog.String("name", svc.ServiceName),
	)

	return &InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

// Update replaces the mutable fields of the service with the given id.
// Upsert semantics are preserved from the original system: updating a
// missing id creates a document holding only the mutable fields (see
// DESIGN.md).
func (s *ServiceStore) Update(ctx context.Context, id string, update ServiceUpdate) (*UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("updating service %s: %w", id, err)
	}

	return &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}, nil
}

// Delete removes the service with the given id. A repeat delete
// reports zero removed, not an error.
func (s *ServiceStore) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("deleting service %s: %w", id, err)
	}

	return &DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// find runs a filter scan and collects the results
func (s *ServiceStore) find(ctx context.Context, filter bson.M) ([]Service, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("finding services: %w", err)
	}

	services := []Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("reading services: %w", err)
	}
	return services, nil
}

// hexID renders an InsertedID/UpsertedID as hex, or "" when absent
func hexID(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
