package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/pubsub"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, notification models.MemberNotification) (primitive.ObjectID, error)
}

// NotificationService records a member notification durably and fans it out
// to the delivery topic. The durable record is authoritative; a Pub/Sub
// failure is logged, not propagated.
type NotificationService struct {
	notificationRepo NotificationRepo
	pubsubPublisher  pubsub.PubSubPublisherInterface
}

func NewNotificationService(notificationRepo NotificationRepo, pubsubPublisher pubsub.PubSubPublisherInterface) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		pubsubPublisher:  pubsubPublisher,
	}
}

// NotifyMember stores the notification for the member's portal feed and
// publishes the payload for out-of-band delivery.
func (h *NotificationService) NotifyMember(ctx context.Context, memberId primitive.ObjectID, event string, message string) error {
	notification := models.MemberNotification{
		MemberId:  memberId,
		Event:     event,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := h.notificationRepo.CreateNotification(ctx, notification); err != nil {
		logger.Error(ctx, "Failed to store notification for member %s: %v", memberId.Hex(), err)
		return err
	}

	logger.Info(ctx, "NotifyMember member: %v event: %v", memberId.Hex(), event)

	if err := h.sendNotificationToPubSub(ctx, notification); err != nil {
		logger.Error(ctx, "Failed to send notification to PubSub: %v", err)
	}

	return nil
}

func (h *NotificationService) sendNotificationToPubSub(ctx context.Context, notification models.MemberNotification) error {
	if h.pubsubPublisher == nil {
		return nil
	}

	payload := models.NotificationPayload{
		MemberId: notification.MemberId.Hex(),
		Event:    notification.Event,
		Message:  notification.Message,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	topicName := configs.PUBSUB_TOPIC

	// Separate timeout context so request cancellation does not drop the
	// publish mid-flight.
	pubsubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messageID, err := h.pubsubPublisher.Publish(pubsubCtx, topicName, payloadBytes, nil)
	if err != nil {
		return fmt.Errorf("failed to publish to pubsub: %w", err)
	}

	logger.Info(ctx, "Successfully published notification to topic %s with message ID: %s", topicName, messageID)
	return nil
}
