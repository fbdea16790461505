// Package store is the data access layer: typed operations over the
// service and booking collections. Nothing else in the application
// touches storage.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"travlog/internal/config"
)

// ErrInvalidID marks a document id that is not valid ObjectID hex. It
// surfaces as a 400 at the endpoint boundary, never as a crash.
var ErrInvalidID = errors.New("invalid document id")

// Connect builds the Mongo client, verifies connectivity with a ping
// and returns it. The client is created once at startup and injected
// into the stores.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return client, nil
}

// parseID converts a hex id from a URL path into an ObjectID
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
