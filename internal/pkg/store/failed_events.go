package store

import (
	"context"
	"fmt"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/db"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FailedEventRepository is the dead-letter store for circulation audit events
// whose Kafka publish did not go through.
type FailedEventRepository struct {
	repo *MongoRepository[models.FailedEvent]
}

func NewFailedEventRepository() *FailedEventRepository {
	collection := db.MDB.Database.Collection(consts.FailedEventsCollection)
	mrepo := NewMongoRepository[models.FailedEvent](collection)
	return &FailedEventRepository{repo: mrepo}
}

func (r *FailedEventRepository) CreateFailedEvent(ctx context.Context, event models.FailedEvent) (primitive.ObjectID, error) {
	result, err := r.repo.Create(event)
	if err != nil {
		logger.Error(ctx, "FailedEvents : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("failed_events: error while inserting: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *FailedEventRepository) AllFailedEvents(ctx context.Context) ([]models.FailedEvent, error) {
	return r.repo.FindAll(bson.M{})
}

func (r *FailedEventRepository) DeleteFailedEvent(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.repo.Delete(bson.M{"_id": id})
	return err
}

func (r *FailedEventRepository) BumpAttempts(ctx context.Context, id primitive.ObjectID, attempts int32) error {
	_, err := r.repo.Update(bson.M{"_id": id}, bson.M{"attempts": attempts})
	return err
}
