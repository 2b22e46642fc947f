package repository

import (
	"context"
	"errors"
	"time"

	"rush-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NoteRepositoryInterface interface {
	FindNotes(ctx context.Context, userID string) ([]models.Note, error)
	FindNoteForApplicant(ctx context.Context, applicantID, userID string) (models.Note, error)
	CreateNote(ctx context.Context, note models.Note) (string, error)
	UpdateNoteContent(ctx context.Context, id, content string, at time.Time) error
}

type NoteRepository struct {
	collection *mongo.Collection
}

func NewNoteRepository(collection *mongo.Collection) *NoteRepository {
	return &NoteRepository{collection: collection}
}

// FindNotes lists notes oldest first. An empty userID lists every user's notes.
func (r *NoteRepository) FindNotes(ctx context.Context, userID string) ([]models.Note, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	notes := []models.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FindNoteForApplicant returns the oldest note on the applicant, optionally restricted to userID.
func (r *NoteRepository) FindNoteForApplicant(ctx context.Context, applicantID, userID string) (models.Note, error) {
	var note models.Note
	filter := bson.M{"applicant_id": applicantID}
	if userID != "" {
		filter["user_id"] = userID
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	err := r.collection.FindOne(ctx, filter, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return note, ErrNotFound
	}
	return note, err
}

func (r *NoteRepository) CreateNote(ctx context.Context, note models.Note) (string, error) {
	note.ID = ""
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	if note.Timestamp.IsZero() {
		note.Timestamp = note.CreatedAt
	}
	res, err := r.collection.InsertOne(ctx, note)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

func (r *NoteRepository) UpdateNoteContent(ctx context.Context, id, content string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"content": content, "timestamp": at}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(false))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
