package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/db"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DueRepository struct {
	repo *MongoRepository[models.Due]
}

func NewDueRepository() *DueRepository {
	collection := db.MDB.Database.Collection(consts.DuesCollection)
	mrepo := NewMongoRepository[models.Due](collection)
	return &DueRepository{repo: mrepo}
}

func (r *DueRepository) CreateDue(ctx context.Context, due models.Due) (primitive.ObjectID, error) {
	result, err := r.repo.Create(due)
	if err != nil {
		logger.Error(ctx, "Dues : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("dues: error while inserting: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *DueRepository) DueByID(ctx context.Context, dueId primitive.ObjectID) (*models.Due, error) {
	due, err := r.repo.Read(bson.M{"_id": dueId})
	if err != nil {
		return nil, err
	}
	return &due, nil
}

func (r *DueRepository) DuesByFilter(filter interface{}) ([]models.Due, error) {
	return r.repo.FindAll(filter)
}

func (r *DueRepository) CountDues(filter interface{}) (int64, error) {
	return r.repo.CountDocuments(filter)
}

// MarkReturned closes an open due. The returnDate guard in the filter makes
// the transition one way: a second return matches nothing and the caller gets
// ErrNoDocuments back, so the copy is handed back to inventory exactly once.
func (r *DueRepository) MarkReturned(ctx context.Context, dueId primitive.ObjectID, returnDate time.Time, fine int64, status models.DueStatus) error {
	filter := bson.M{"_id": dueId, "returnDate": nil}
	update := bson.M{
		"returnDate": returnDate,
		"fineAmount": fine,
		"status":     status,
	}

	result, err := r.repo.Update(filter, update)
	if err != nil {
		logger.Error(ctx, "Dues : Error while marking returned %v", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus changes the fine status only; fineAmount and returnDate are never
// touched here.
func (r *DueRepository) SetStatus(ctx context.Context, dueId primitive.ObjectID, status models.DueStatus) error {
	result, err := r.repo.Update(bson.M{"_id": dueId}, bson.M{"status": status})
	if err != nil {
		logger.Error(ctx, "Dues : Error while setting status %v", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *DueRepository) DeleteDue(ctx context.Context, dueId primitive.ObjectID) error {
	result, err := r.repo.Delete(bson.M{"_id": dueId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
