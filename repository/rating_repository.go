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

type RatingRepositoryInterface interface {
	FindRating(ctx context.Context, applicantID, userID string) (models.Rating, error)
	FindRatingsByUser(ctx context.Context, userID string) ([]models.Rating, error)
	CreateRating(ctx context.Context, rating models.Rating) (string, error)
	UpdateRatingValue(ctx context.Context, id string, value models.RatingValue, at time.Time) error
	BulkUpsertRatings(ctx context.Context, ratings []models.Rating) (int64, error)
}

type RatingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(collection *mongo.Collection) *RatingRepository {
	return &RatingRepository{collection: collection}
}

func (r *RatingRepository) FindRating(ctx context.Context, applicantID, userID string) (models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"applicant_id": applicantID, "user_id": userID}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rating, ErrNotFound
	}
	return rating, err
}

func (r *RatingRepository) FindRatingsByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	ratings := []models.Rating{}
	if err = cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *RatingRepository) CreateRating(ctx context.Context, rating models.Rating) (string, error) {
	rating.ID = ""
	if rating.Timestamp.IsZero() {
		rating.Timestamp = time.Now().UTC()
	}
	res, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

func (r *RatingRepository) UpdateRatingValue(ctx context.Context, id string, value models.RatingValue, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"value": value, "timestamp": at}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpsertRatings writes all ratings in one ordered bulk request keyed by (applicant, user).
// It returns how many records were inserted or changed.
func (r *RatingRepository) BulkUpsertRatings(ctx context.Context, ratings []models.Rating) (int64, error) {
	if len(ratings) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, 0, len(ratings))
	for _, rating := range ratings {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"applicant_id": rating.ApplicantID, "user_id": rating.UserID}).
			SetUpdate(bson.M{"$set": bson.M{"value": rating.Value, "timestamp": rating.Timestamp}}).
			SetUpsert(true))
	}
	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, err
	}
	return res.UpsertedCount + res.ModifiedCount, nil
}
