package services

import (
	"context"
	"errors"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationService manages waiting-list entries for unavailable books.
type ReservationService struct {
	bookRepo        BookRepo
	memberRepo      MemberRepo
	reservationRepo ReservationRepo
	now             func() time.Time
}

func NewReservationService(bookRepo BookRepo, memberRepo MemberRepo, reservationRepo ReservationRepo) *ReservationService {
	return &ReservationService{
		bookRepo:        bookRepo,
		memberRepo:      memberRepo,
		reservationRepo: reservationRepo,
		now:             time.Now,
	}
}

// CreateReservation places a member on the waiting list. A book with copies
// on the shelf cannot be reserved, and a member holds at most one pending
// reservation per book.
func (s *ReservationService) CreateReservation(ctx context.Context, bookId, memberId primitive.ObjectID) (*models.Reservation, error) {
	if _, err := s.memberRepo.MemberByFilter(bson.M{"_id": memberId}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrMemberNotFound
		}
		return nil, err
	}

	book, err := s.bookRepo.BookByFilter(bson.M{"_id": bookId})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrBookNotFound
		}
		return nil, err
	}
	if book.AvailableCopies > 0 {
		return nil, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: "book has available copies, borrow it instead of reserving",
		}
	}

	pending, err := s.reservationRepo.CountReservations(bson.M{
		"bookId":           bookId,
		"memberId":         memberId,
		"notificationSent": false,
	})
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: "member already holds a pending reservation for this book",
		}
	}

	reservation := models.Reservation{
		ReservationId:    primitive.NewObjectID(),
		MemberId:         models.Ref[models.Member](memberId),
		BookId:           models.Ref[models.Book](bookId),
		CreatedAt:        s.now().UTC(),
		NotificationSent: false,
	}

	if _, err := s.reservationRepo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) ListReservations(ctx context.Context, memberId *primitive.ObjectID) ([]models.Reservation, error) {
	filter := bson.M{}
	if memberId != nil {
		filter["memberId"] = *memberId
	}
	return s.reservationRepo.ReservationsByFilter(filter)
}

func (s *ReservationService) CancelReservation(ctx context.Context, reservationId primitive.ObjectID) error {
	if err := s.reservationRepo.DeleteReservation(ctx, reservationId); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return consts.ErrReservationNotFound
		}
		return err
	}
	return nil
}
