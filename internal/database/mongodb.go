package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the marketplace.
const (
	JobsCollection = "jobs"
	BidsCollection = "bids"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
// The client pins Stable API v1 in strict mode.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
	clientOpts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Store is the process-wide handle to the marketplace database. It is opened
// once at startup, shared by all requests and closed at shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri and selects the named database.
func Open(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	client, err := ConnectMongo(ctx, uri, timeout)
	if err != nil {
		return nil, err
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Collection returns the named collection of the selected database.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Ping checks that the deployment is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
