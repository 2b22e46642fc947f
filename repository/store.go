package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid record id")
)

// Scoper runs a unit of store work with a handle that is released when fn returns.
type Scoper interface {
	Scoped(ctx context.Context, fn func(ctx context.Context) error) error
}

type MongoStore struct {
	client *mongo.Client
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{client: client}
}

// Scoped starts a driver session bound to ctx; the session is ended on every return path.
func (s *MongoStore) Scoped(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		return fn(sc)
	})
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if s, ok := res.InsertedID.(string); ok {
		return s
	}
	return ""
}
