package repository

import (
	"context"
	"errors"
	"time"

	"rush-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplicantRepositoryInterface interface {
	FindApplicants(ctx context.Context, ids []string) ([]models.Applicant, error)
	FindApplicantByID(ctx context.Context, id string) (models.Applicant, error)
	CreateApplicant(ctx context.Context, applicant models.Applicant) (models.Applicant, error)
	UpdateApplicant(ctx context.Context, id string, patch models.ApplicantPatch) error
	DeleteApplicant(ctx context.Context, id string) error
}

type ApplicantRepository struct {
	collection *mongo.Collection
}

func NewApplicantRepository(collection *mongo.Collection) *ApplicantRepository {
	return &ApplicantRepository{collection: collection}
}

// FindApplicants returns every applicant, or only those in ids when ids is non-empty.
// Ids that are not valid ObjectIDs cannot match and are skipped.
func (r *ApplicantRepository) FindApplicants(ctx context.Context, ids []string) ([]models.Applicant, error) {
	filter := bson.M{}
	if len(ids) > 0 {
		oids := make([]primitive.ObjectID, 0, len(ids))
		for _, id := range ids {
			if oid, err := objectID(id); err == nil {
				oids = append(oids, oid)
			}
		}
		if len(oids) == 0 {
			return []models.Applicant{}, nil
		}
		filter = bson.M{"_id": bson.M{"$in": oids}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	applicants := []models.Applicant{}
	if err = cursor.All(ctx, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

func (r *ApplicantRepository) FindApplicantByID(ctx context.Context, id string) (models.Applicant, error) {
	var applicant models.Applicant
	oid, err := objectID(id)
	if err != nil {
		return applicant, err
	}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&applicant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return applicant, ErrNotFound
	}
	return applicant, err
}

func (r *ApplicantRepository) CreateApplicant(ctx context.Context, applicant models.Applicant) (models.Applicant, error) {
	applicant.ID = ""
	applicant.CreatedAt = time.Now().UTC()

	res, err := r.collection.InsertOne(ctx, applicant)
	if err != nil {
		return models.Applicant{}, err
	}
	applicant.ID = insertedHex(res)
	return applicant, nil
}

func (r *ApplicantRepository) UpdateApplicant(ctx context.Context, id string, patch models.ApplicantPatch) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	setIf := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setIf("name", patch.Name)
	setIf("email", patch.Email)
	setIf("major", patch.Major)
	setIf("year", patch.Year)
	setIf("profile_photo_url", patch.ProfilePhotoURL)
	setIf("resume_url", patch.ResumeURL)
	setIf("portfolio_url", patch.PortfolioURL)

	if len(set) == 0 {
		// still report unknown ids
		_, err := r.FindApplicantByID(ctx, id)
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, options.Update().SetUpsert(false))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApplicantRepository) DeleteApplicant(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
