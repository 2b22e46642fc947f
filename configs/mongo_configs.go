package configs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ApplicantsCollection = "applicants"
	NotesCollection      = "notes"
	RatingsCollection    = "ratings"
)

func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the store relies on. Ratings are unique per (applicant, user).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(RatingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "applicant_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("applicant_user_unique"),
	})
	if err != nil {
		return fmt.Errorf("ratings index: %w", err)
	}

	_, err = db.Collection(NotesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "applicant_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("applicant_user_created"),
	})
	if err != nil {
		return fmt.Errorf("notes index: %w", err)
	}
	return nil
}
