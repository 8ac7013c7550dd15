package store

import (
	"context"
	"testing"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func dueRepoFor(mt *mtest.T) *DueRepository {
	return &DueRepository{repo: NewMongoRepository[models.Due](mt.Coll)}
}

func TestMarkReturned(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("closes an open due", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := dueRepoFor(mt).MarkReturned(context.Background(), primitive.NewObjectID(), time.Now().UTC(), 4, models.DueStatusPending)

		assert.NoError(mt, err)
	})

	mt.Run("already closed due matches nothing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := dueRepoFor(mt).MarkReturned(context.Background(), primitive.NewObjectID(), time.Now().UTC(), 0, models.DueStatusPaid)

		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestSetStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown due", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := dueRepoFor(mt).SetStatus(context.Background(), primitive.NewObjectID(), models.DueStatusWaived)

		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}
