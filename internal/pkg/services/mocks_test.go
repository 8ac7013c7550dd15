package services

import (
	"context"
	"sync"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) CreateBook(ctx context.Context, book models.Book) (primitive.ObjectID, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockBookRepo) BookByFilter(filter interface{}) (*models.Book, error) {
	args := m.Called(filter)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepo) AllBooks(filter interface{}) ([]models.Book, error) {
	args := m.Called(filter)
	if args.Get(0) != nil {
		return args.Get(0).([]models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepo) UpdateBook(ctx context.Context, bookId primitive.ObjectID, update bson.M) error {
	args := m.Called(ctx, bookId, update)
	return args.Error(0)
}

func (m *MockBookRepo) DeleteBook(ctx context.Context, bookId primitive.ObjectID) error {
	args := m.Called(ctx, bookId)
	return args.Error(0)
}

func (m *MockBookRepo) BorrowCopy(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error) {
	args := m.Called(ctx, bookId)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookRepo) ReturnCopy(ctx context.Context, bookId primitive.ObjectID) (*models.Book, error) {
	args := m.Called(ctx, bookId)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) CreateMember(ctx context.Context, member models.Member) (primitive.ObjectID, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockMemberRepo) MemberByFilter(filter interface{}) (*models.Member, error) {
	args := m.Called(filter)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepo) MemberByEmail(email string) (*models.Member, error) {
	args := m.Called(email)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepo) AllMembers(filter interface{}) ([]models.Member, error) {
	args := m.Called(filter)
	if args.Get(0) != nil {
		return args.Get(0).([]models.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepo) UpdateMember(ctx context.Context, memberId primitive.ObjectID, update bson.M) error {
	args := m.Called(ctx, memberId, update)
	return args.Error(0)
}

func (m *MockMemberRepo) DeleteMember(ctx context.Context, memberId primitive.ObjectID) error {
	args := m.Called(ctx, memberId)
	return args.Error(0)
}

type MockDueRepo struct {
	mock.Mock
}

func (m *MockDueRepo) CreateDue(ctx context.Context, due models.Due) (primitive.ObjectID, error) {
	args := m.Called(ctx, due)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDueRepo) DueByID(ctx context.Context, dueId primitive.ObjectID) (*models.Due, error) {
	args := m.Called(ctx, dueId)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Due), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDueRepo) DuesByFilter(filter interface{}) ([]models.Due, error) {
	args := m.Called(filter)
	if args.Get(0) != nil {
		return args.Get(0).([]models.Due), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDueRepo) CountDues(filter interface{}) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDueRepo) MarkReturned(ctx context.Context, dueId primitive.ObjectID, returnDate time.Time, fine int64, status models.DueStatus) error {
	args := m.Called(ctx, dueId, returnDate, fine, status)
	return args.Error(0)
}

func (m *MockDueRepo) SetStatus(ctx context.Context, dueId primitive.ObjectID, status models.DueStatus) error {
	args := m.Called(ctx, dueId, status)
	return args.Error(0)
}

func (m *MockDueRepo) DeleteDue(ctx context.Context, dueId primitive.ObjectID) error {
	args := m.Called(ctx, dueId)
	return args.Error(0)
}

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateReservation(ctx context.Context, reservation models.Reservation) (primitive.ObjectID, error) {
	args := m.Called(ctx, reservation)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockReservationRepo) ReservationByID(ctx context.Context, reservationId primitive.ObjectID) (*models.Reservation, error) {
	args := m.Called(ctx, reservationId)
	if args.Get(0) != nil {
		return args.Get(0).(*models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationRepo) ReservationsByFilter(filter interface{}) ([]models.Reservation, error) {
	args := m.Called(filter)
	if args.Get(0) != nil {
		return args.Get(0).([]models.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationRepo) CountReservations(filter interface{}) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepo) DeleteReservation(ctx context.Context, reservationId primitive.ObjectID) error {
	args := m.Called(ctx, reservationId)
	return args.Error(0)
}

// stubNotifier and stubAudit record that the async dispatch fired without
// racing the test's mock assertions.
type stubNotifier struct {
	mu     sync.Mutex
	events []string
	fired  chan struct{}
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{fired: make(chan struct{}, 16)}
}

func (s *stubNotifier) NotifyMember(ctx context.Context, memberId primitive.ObjectID, event string, message string) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.fired <- struct{}{}
	return nil
}

type stubAudit struct {
	mu     sync.Mutex
	events []models.CirculationEvent
	fired  chan struct{}
}

func newStubAudit() *stubAudit {
	return &stubAudit{fired: make(chan struct{}, 16)}
}

func (s *stubAudit) PublishCirculationEvent(ctx context.Context, event models.CirculationEvent) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.fired <- struct{}{}
	return nil
}
