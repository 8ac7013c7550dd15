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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	repo *MongoRepository[models.MemberNotification]
}

func NewNotificationRepository() *NotificationRepository {
	collection := db.MDB.Database.Collection(consts.NotificationsCollection)
	mrepo := NewMongoRepository[models.MemberNotification](collection)
	return &NotificationRepository{repo: mrepo}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, notification models.MemberNotification) (primitive.ObjectID, error) {
	result, err := r.repo.Create(notification)
	if err != nil {
		logger.Error(ctx, "Notifications : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("notifications: error while inserting: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *NotificationRepository) NotificationsForMember(memberId primitive.ObjectID) ([]models.MemberNotification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.repo.FindAll(bson.M{"memberId": memberId}, opts)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationId, memberId primitive.ObjectID) error {
	result, err := r.repo.Update(bson.M{"_id": notificationId, "memberId": memberId}, bson.M{"read": true})
	if err != nil {
		logger.Error(ctx, "Notifications : Error while marking read %v", err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
