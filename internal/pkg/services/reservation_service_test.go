package services

import (
	"context"
	"testing"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newReservationFixture() (*ReservationService, *MockBookRepo, *MockMemberRepo, *MockReservationRepo) {
	bookRepo := new(MockBookRepo)
	memberRepo := new(MockMemberRepo)
	reservationRepo := new(MockReservationRepo)
	service := NewReservationService(bookRepo, memberRepo, reservationRepo)
	return service, bookRepo, memberRepo, reservationRepo
}

func TestCreateReservation(t *testing.T) {
	bookId := primitive.NewObjectID()
	memberId := primitive.NewObjectID()

	t.Run("reserves an unavailable book", func(t *testing.T) {
		service, bookRepo, memberRepo, reservationRepo := newReservationFixture()

		memberRepo.On("MemberByFilter", mock.Anything).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BookByFilter", bson.M{"_id": bookId}).Return(&models.Book{BookId: bookId, AvailableCopies: 0}, nil)
		reservationRepo.On("CountReservations", mock.Anything).Return(int64(0), nil)
		reservationRepo.On("CreateReservation", mock.Anything, mock.AnythingOfType("models.Reservation")).Return(primitive.NewObjectID(), nil)

		reservation, err := service.CreateReservation(context.Background(), bookId, memberId)

		assert.NoError(t, err)
		assert.False(t, reservation.NotificationSent)
		assert.Equal(t, bookId, reservation.BookId.ID())
	})

	t.Run("a book with copies on the shelf cannot be reserved", func(t *testing.T) {
		service, bookRepo, memberRepo, reservationRepo := newReservationFixture()

		memberRepo.On("MemberByFilter", mock.Anything).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BookByFilter", mock.Anything).Return(&models.Book{BookId: bookId, AvailableCopies: 1}, nil)

		_, err := service.CreateReservation(context.Background(), bookId, memberId)

		assert.Error(t, err)
		assert.Equal(t, consts.ErrCodeValidation, err.(*models.CustomError).Code)
		reservationRepo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("one pending reservation per member per book", func(t *testing.T) {
		service, bookRepo, memberRepo, reservationRepo := newReservationFixture()

		memberRepo.On("MemberByFilter", mock.Anything).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BookByFilter", mock.Anything).Return(&models.Book{BookId: bookId, AvailableCopies: 0}, nil)
		reservationRepo.On("CountReservations", mock.Anything).Return(int64(1), nil)

		_, err := service.CreateReservation(context.Background(), bookId, memberId)

		assert.Error(t, err)
		reservationRepo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("unknown book", func(t *testing.T) {
		service, bookRepo, memberRepo, _ := newReservationFixture()

		memberRepo.On("MemberByFilter", mock.Anything).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BookByFilter", mock.Anything).Return(nil, mongo.ErrNoDocuments)

		_, err := service.CreateReservation(context.Background(), bookId, memberId)

		assert.ErrorIs(t, err, consts.ErrBookNotFound)
	})
}

func TestCancelReservation(t *testing.T) {
	service, _, _, reservationRepo := newReservationFixture()
	reservationId := primitive.NewObjectID()

	reservationRepo.On("DeleteReservation", mock.Anything, reservationId).Return(mongo.ErrNoDocuments)

	err := service.CancelReservation(context.Background(), reservationId)

	assert.ErrorIs(t, err, consts.ErrReservationNotFound)
}
