package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	UsersCollection   = "users"
	ReportsCollection = "reports"
)

// Connect establishes a MongoDB connection and verifies it with a ping.
// The returned client is injected into the repositories; no package-level
// handle exists.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(dctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes the registries rely on. The unique
// email index is the authoritative guard against duplicate registrations;
// the createdAt indexes back the sorted lists and recent-window queries.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ictx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	users := database.Collection(UsersCollection)
	if _, err := users.Indexes().CreateOne(ictx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("mongo: users email index: %w", err)
	}
	if _, err := users.Indexes().CreateOne(ictx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("mongo: users createdAt index: %w", err)
	}

	reports := database.Collection(ReportsCollection)
	if _, err := reports.Indexes().CreateOne(ictx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("mongo: reports createdAt index: %w", err)
	}

	return nil
}
