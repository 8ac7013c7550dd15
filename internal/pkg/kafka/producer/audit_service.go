package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KafkaPublisher is what the audit service needs from the producer.
type KafkaPublisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

type FailedEventRepo interface {
	CreateFailedEvent(ctx context.Context, event models.FailedEvent) (primitive.ObjectID, error)
	AllFailedEvents(ctx context.Context) ([]models.FailedEvent, error)
	DeleteFailedEvent(ctx context.Context, id primitive.ObjectID) error
	BumpAttempts(ctx context.Context, id primitive.ObjectID, attempts int32) error
}

// AuditService publishes circulation events to Kafka. A publish failure is
// never surfaced to the ledger operation that caused it; the event is
// dead-lettered and replayed through RetryFailedEvents.
type AuditService struct {
	publisher  KafkaPublisher
	failedRepo FailedEventRepo
}

func NewAuditService(publisher KafkaPublisher, failedRepo FailedEventRepo) *AuditService {
	return &AuditService{
		publisher:  publisher,
		failedRepo: failedRepo,
	}
}

func (s *AuditService) PublishCirculationEvent(ctx context.Context, event models.CirculationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "Audit : failed to marshal circulation event: %v", err)
		return err
	}

	if err := s.publisher.Publish(ctx, event.TransactionId, payload); err != nil {
		logger.Error(ctx, "Audit : publish failed for event %s, dead-lettering: %v", event.TransactionId, err)
		if _, dlErr := s.failedRepo.CreateFailedEvent(ctx, models.FailedEvent{
			Key:       event.TransactionId,
			Payload:   string(payload),
			Attempts:  1,
			CreatedAt: time.Now().UTC(),
		}); dlErr != nil {
			logger.Error(ctx, "Audit : dead-letter insert failed for event %s: %v", event.TransactionId, dlErr)
		}
		return err
	}

	return nil
}

// RetryFailedEvents replays dead-lettered events; successfully published
// events are pruned, the rest get their attempt count bumped.
func (s *AuditService) RetryFailedEvents(ctx context.Context) (retried int, failed int, err error) {
	events, err := s.failedRepo.AllFailedEvents(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, event := range events {
		if pubErr := s.publisher.Publish(ctx, event.Key, []byte(event.Payload)); pubErr != nil {
			logger.Error(ctx, "Audit : retry failed for event %s: %v", event.Key, pubErr)
			if bumpErr := s.failedRepo.BumpAttempts(ctx, event.FailedEventId, event.Attempts+1); bumpErr != nil {
				logger.Error(ctx, "Audit : attempt bump failed for event %s: %v", event.Key, bumpErr)
			}
			failed++
			continue
		}
		if delErr := s.failedRepo.DeleteFailedEvent(ctx, event.FailedEventId); delErr != nil {
			logger.Error(ctx, "Audit : pruning replayed event %s failed: %v", event.Key, delErr)
		}
		retried++
	}

	logger.Info(ctx, "Audit : retry pass complete, retried=%d failed=%d", retried, failed)
	return retried, failed, nil
}
