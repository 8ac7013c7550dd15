package services

import (
	"context"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository surfaces the services depend on; the store package satisfies all
// of them, tests substitute mocks.

type BookRepo interface {
	CreateBook(ctx context.Context, book models.Book) (primitive.ObjectID, error)
	BookByFilter(filter interface{}) (*models.Book, error)
	AllBooks(filter interface{}) ([]models.Book, error)
	UpdateBook(ctx context.Context, bookId primitive.ObjectID, update bson.M) error
	DeleteBook(ctx context.Context, bookId primitive.ObjectID) error
	BorrowCopy(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error)
	ReturnCopy(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error)
}

type DueRepo interface {
	CreateDue(ctx context.Context, due models.Due) (primitive.ObjectID, error)
	DueByID(ctx context.Context, dueId primitive.ObjectID) (*models.Due, error)
	DuesByFilter(filter interface{}) ([]models.Due, error)
	CountDues(filter interface{}) (int64, error)
	MarkReturned(ctx context.Context, dueId primitive.ObjectID, returnDate time.Time, fine int64, status models.DueStatus) error
	SetStatus(ctx context.Context, dueId primitive.ObjectID, status models.DueStatus) error
	DeleteDue(ctx context.Context, dueId primitive.ObjectID) error
}

type MemberRepo interface {
	CreateMember(ctx context.Context, member models.Member) (primitive.ObjectID, error)
	MemberByFilter(filter interface{}) (*models.Member, error)
	MemberByEmail(email string) (*models.Member, error)
	AllMembers(filter interface{}) ([]models.Member, error)
	UpdateMember(ctx context.Context, memberId primitive.ObjectID, update bson.M) error
	DeleteMember(ctx context.Context, memberId primitive.ObjectID) error
}

type ReservationRepo interface {
	CreateReservation(ctx context.Context, reservation models.Reservation) (primitive.ObjectID, error)
	ReservationByID(ctx context.Context, reservationId primitive.ObjectID) (*models.Reservation, error)
	ReservationsByFilter(filter interface{}) ([]models.Reservation, error)
	CountReservations(filter interface{}) (int64, error)
	DeleteReservation(ctx context.Context, reservationId primitive.ObjectID) error
}

type NotificationRepo interface {
	NotificationsForMember(memberId primitive.ObjectID) ([]models.MemberNotification, error)
	MarkRead(ctx context.Context, notificationId, memberId primitive.ObjectID) error
}

// Notifier dispatches a member notification (durable record + delivery topic).
type Notifier interface {
	NotifyMember(ctx context.Context, memberId primitive.ObjectID, event string, message string) error
}

// AuditPublisher emits circulation events to the audit stream.
type AuditPublisher interface {
	PublishCirculationEvent(ctx context.Context, event models.CirculationEvent) error
}

// SessionStore is the subset of the Redis adapter the session service uses.
type SessionStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Service interfaces consumed by the handlers.

type LedgerServiceInterface interface {
	Issue(ctx context.Context, bookId, memberId primitive.ObjectID) (*models.Due, error)
	ReturnItem(ctx context.Context, dueId primitive.ObjectID, fineOverride *int64) (*models.Due, error)
	SettleFine(ctx context.Context, dueId primitive.ObjectID, outcome models.DueStatus) (*models.Due, error)
	DeleteDue(ctx context.Context, dueId primitive.ObjectID) error
	GetDue(ctx context.Context, dueId primitive.ObjectID) (*models.Due, error)
	ListDues(ctx context.Context, memberId *primitive.ObjectID) ([]models.Due, error)
}

type CatalogServiceInterface interface {
	CreateBook(ctx context.Context, input CreateBookInput) (*models.Book, error)
	GetBook(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error)
	ListBooks(ctx context.Context, query BookQuery) ([]models.Book, error)
	UpdateBook(ctx context.Context, bookId primitive.ObjectID, input UpdateBookInput) (*models.Book, error)
	DeleteBook(ctx context.Context, bookId primitive.ObjectID) error
}

type MemberServiceInterface interface {
	CreateMember(ctx context.Context, input CreateMemberInput) (*models.Member, error)
	GetMember(ctx context.Context, memberId primitive.ObjectID) (*models.Member, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	UpdateMember(ctx context.Context, memberId primitive.ObjectID, input UpdateMemberInput) (*models.Member, error)
	DeleteMember(ctx context.Context, memberId primitive.ObjectID) error
}

type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, bookId, memberId primitive.ObjectID) (*models.Reservation, error)
	ListReservations(ctx context.Context, memberId *primitive.ObjectID) ([]models.Reservation, error)
	CancelReservation(ctx context.Context, reservationId primitive.ObjectID) error
}

type SessionServiceInterface interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	SessionByToken(ctx context.Context, token string) (*models.Session, error)
}
