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
	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationRepository struct {
	repo *MongoRepository[models.Reservation]
}

func NewReservationRepository() *ReservationRepository {
	collection := db.MDB.Database.Collection(consts.ReservationsCollection)
	mrepo := NewMongoRepository[models.Reservation](collection)
	return &ReservationRepository{repo: mrepo}
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation models.Reservation) (primitive.ObjectID, error) {
	result, err := r.repo.Create(reservation)
	if err != nil {
		logger.Error(ctx, "Reservations : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("reservations: error while inserting: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *ReservationRepository) ReservationByID(ctx context.Context, reservationId primitive.ObjectID) (*models.Reservation, error) {
	reservation, err := r.repo.Read(bson.M{"_id": reservationId})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) ReservationsByFilter(filter interface{}) ([]models.Reservation, error) {
	return r.repo.FindAll(filter)
}

// PendingReservations are the records the notification sweep re-checks on
// every pass.
func (r *ReservationRepository) PendingReservations(ctx context.Context) ([]models.Reservation, error) {
	return r.repo.FindAll(bson.M{"notificationSent": false})
}

func (r *ReservationRepository) CountReservations(filter interface{}) (int64, error) {
	return r.repo.CountDocuments(filter)
}

func (r *ReservationRepository) MarkNotified(ctx context.Context, reservationId primitive.ObjectID) error {
	result, err := r.repo.Update(bson.M{"_id": reservationId}, bson.M{"notificationSent": true})
	if err != nil {
		logger.Error(ctx, "Reservations : Error while marking notified %v", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, reservationId primitive.ObjectID) error {
	result, err := r.repo.Delete(bson.M{"_id": reservationId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
