package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) CreateNotification(ctx context.Context, notification models.MemberNotification) (primitive.ObjectID, error) {
	args := m.Called(ctx, notification)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

type MockPubSubPublisher struct {
	mock.Mock
}

func (m *MockPubSubPublisher) Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error) {
	args := m.Called(ctx, topic, data, attributes)
	return args.String(0), args.Error(1)
}

func (m *MockPubSubPublisher) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPubSubPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestNotifyMember(t *testing.T) {
	memberId := primitive.NewObjectID()

	t.Run("stores the record and publishes the payload", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		publisher := new(MockPubSubPublisher)
		service := NewNotificationService(repo, publisher)

		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n models.MemberNotification) bool {
			return n.MemberId == memberId && n.Event == consts.EventDueIssued && !n.Read
		})).Return(primitive.NewObjectID(), nil)

		publisher.On("Publish", mock.Anything, mock.Anything, mock.MatchedBy(func(data []byte) bool {
			var payload models.NotificationPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return false
			}
			return payload.MemberId == memberId.Hex() && payload.Event == consts.EventDueIssued
		}), mock.Anything).Return("msg-1", nil)

		err := service.NotifyMember(context.Background(), memberId, consts.EventDueIssued, "You borrowed a book")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		publisher := new(MockPubSubPublisher)
		service := NewNotificationService(repo, publisher)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(primitive.NilObjectID, assert.AnError)

		err := service.NotifyMember(context.Background(), memberId, consts.EventDueReturned, "Return recorded")

		assert.Error(t, err)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pubsub failure does not fail the notification", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		publisher := new(MockPubSubPublisher)
		service := NewNotificationService(repo, publisher)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

		err := service.NotifyMember(context.Background(), memberId, consts.EventFineSettled, "Fine settled")

		assert.NoError(t, err)
	})

	t.Run("nil publisher still records durably", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		service := NewNotificationService(repo, nil)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)

		err := service.NotifyMember(context.Background(), memberId, consts.EventReservedBookAvailable, "Book available")

		assert.NoError(t, err)
	})
}
