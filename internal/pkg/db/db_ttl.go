package db

import (
	"context"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateDbTtlIfNotExists keeps a TTL index on the notifications collection so
// old member notifications age out instead of accumulating forever. A stale
// index with a different expiry is dropped and recreated.
func CreateDbTtlIfNotExists() {
	if MDB == nil || MDB.Database == nil {
		logger.Info("Skipping TTL index setup: MongoDB is not connected")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := MDB.Database.Collection(consts.NotificationsCollection)

	indexField := "createdAt"
	ttlDuration := int32(configs.NOTIFICATION_TTL_IN_HOURS * 3600)

	indexesCursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("Failed to list indexes: %v", err)
		return
	}

	indexExists := false
	for indexesCursor.Next(ctx) {

		var index bson.M
		err := indexesCursor.Decode(&index)
		if err != nil {
			logger.Error("Error decoding index information:%v", err)
		}

		expiryValue, hasExpireOption := index["expireAfterSeconds"]

		if hasExpireOption {

			expiryTime := expiryValue.(int32)
			if expiryTime != ttlDuration {
				_, err := collection.Indexes().DropOne(ctx, index["name"].(string))
				if err != nil {
					logger.Error("could not drop index: %v", err)
				}
				indexExists = false
				logger.Info("TTL index deleted.")
				break
			} else {
				indexExists = true
				logger.Info("TTL index already exists.")
				break
			}
		}
	}

	if !indexExists {
		indexModel := mongo.IndexModel{
			Keys:    bson.D{{Key: indexField, Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(ttlDuration),
		}

		_, err := collection.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			logger.Error("Failed to create TTL index:%v", err)
		} else {
			logger.Info("TTL index created successfully.")
		}
	}

}
