package repository

import (
	"context"
	"testing"

	"rush-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestApplicantRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find all decodes ids as hex", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		aliceID, bobID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: aliceID}, {Key: "name", Value: "Alice"}, {Key: "major", Value: "CS"}},
			bson.D{{Key: "_id", Value: bobID}, {Key: "name", Value: "Bob"}},
		))

		applicants, err := repo.FindApplicants(ctx, nil)
		require.NoError(mt, err)
		require.Len(mt, applicants, 2)
		assert.Equal(mt, aliceID.Hex(), applicants[0].ID)
		assert.Equal(mt, "CS", applicants[0].Major)
		assert.Equal(mt, "", applicants[1].Major)
	})

	mt.Run("empty collection yields empty slice", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		applicants, err := repo.FindApplicants(ctx, nil)
		require.NoError(mt, err)
		assert.NotNil(mt, applicants)
		assert.Len(mt, applicants, 0)
	})

	mt.Run("invalid ids never reach the server", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)

		applicants, err := repo.FindApplicants(ctx, []string{"nope", "also-nope"})
		require.NoError(mt, err)
		assert.Empty(mt, applicants)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.CreateApplicant(ctx, models.Applicant{Name: "Carol"})
		require.NoError(mt, err)
		assert.Len(mt, created.ID, 24)
		assert.False(mt, created.CreatedAt.IsZero())
	})

	mt.Run("update unknown id", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		name := "Dan"
		err := repo.UpdateApplicant(ctx, primitive.NewObjectID().Hex(), models.ApplicantPatch{Name: &name})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update malformed id", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		name := "Dan"
		err := repo.UpdateApplicant(ctx, "bad", models.ApplicantPatch{Name: &name})
		assert.ErrorIs(mt, err, ErrInvalidID)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.DeleteApplicant(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := NewApplicantRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindApplicantByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
