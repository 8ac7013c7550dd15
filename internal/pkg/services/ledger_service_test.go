package services

import (
	"context"
	"testing"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newLedgerFixture() (*LedgerService, *MockBookRepo, *MockMemberRepo, *MockDueRepo, *stubNotifier, *stubAudit) {
	bookRepo := new(MockBookRepo)
	memberRepo := new(MockMemberRepo)
	dueRepo := new(MockDueRepo)
	notifier := newStubNotifier()
	audit := newStubAudit()

	service := NewLedgerService(bookRepo, memberRepo, dueRepo, notifier, audit)
	service.now = func() time.Time { return date("2024-03-01T00:00:00Z") }

	return service, bookRepo, memberRepo, dueRepo, notifier, audit
}

func waitFired(t *testing.T, fired chan struct{}) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected async dispatch to fire")
	}
}

func TestIssue(t *testing.T) {
	bookId := primitive.NewObjectID()
	memberId := primitive.NewObjectID()

	t.Run("issues a due with the configured loan period", func(t *testing.T) {
		service, bookRepo, memberRepo, dueRepo, notifier, audit := newLedgerFixture()

		memberRepo.On("MemberByFilter", bson.M{"_id": memberId}).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BorrowCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId, Title: "Dune", AvailableCopies: 2}, nil)
		dueRepo.On("CreateDue", mock.Anything, mock.AnythingOfType("models.Due")).Return(primitive.NewObjectID(), nil)

		due, err := service.Issue(context.Background(), bookId, memberId)

		assert.NoError(t, err)
		assert.Equal(t, date("2024-03-01T00:00:00Z"), due.IssueDate)
		assert.Equal(t, date("2024-03-15T00:00:00Z"), due.DueDate)
		assert.Nil(t, due.ReturnDate)
		assert.Equal(t, int64(0), due.FineAmount)
		assert.Equal(t, models.DueStatusPending, due.Status)

		waitFired(t, notifier.fired)
		waitFired(t, audit.fired)
		assert.Equal(t, consts.AuditDueIssued, audit.events[0].Event)
	})

	t.Run("rejects an unknown member before touching the book", func(t *testing.T) {
		service, bookRepo, memberRepo, _, _, _ := newLedgerFixture()

		memberRepo.On("MemberByFilter", bson.M{"_id": memberId}).Return(nil, mongo.ErrNoDocuments)

		_, err := service.Issue(context.Background(), bookId, memberId)

		assert.ErrorIs(t, err, consts.ErrMemberNotFound)
		bookRepo.AssertNotCalled(t, "BorrowCopy", mock.Anything, mock.Anything)
	})

	t.Run("propagates unavailability from the conditional decrement", func(t *testing.T) {
		service, bookRepo, memberRepo, dueRepo, _, _ := newLedgerFixture()

		memberRepo.On("MemberByFilter", mock.Anything).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BorrowCopy", mock.Anything, bookId).Return(nil, consts.ErrBookUnavailable)

		_, err := service.Issue(context.Background(), bookId, memberId)

		assert.ErrorIs(t, err, consts.ErrBookUnavailable)
		dueRepo.AssertNotCalled(t, "CreateDue", mock.Anything, mock.Anything)
	})

	t.Run("releases the claimed copy when the due insert fails", func(t *testing.T) {
		service, bookRepo, memberRepo, dueRepo, _, _ := newLedgerFixture()

		memberRepo.On("MemberByFilter", mock.Anything).Return(&models.Member{MemberId: memberId}, nil)
		bookRepo.On("BorrowCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId}, nil)
		dueRepo.On("CreateDue", mock.Anything, mock.Anything).Return(primitive.NilObjectID, assert.AnError)
		bookRepo.On("ReturnCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId}, nil)

		_, err := service.Issue(context.Background(), bookId, memberId)

		assert.Error(t, err)
		bookRepo.AssertCalled(t, "ReturnCopy", mock.Anything, bookId)
	})
}

func TestReturnItem(t *testing.T) {
	dueId := primitive.NewObjectID()
	bookId := primitive.NewObjectID()
	memberId := primitive.NewObjectID()

	openDue := func(dueDate time.Time) *models.Due {
		return &models.Due{
			DueId:     dueId,
			MemberId:  models.Ref[models.Member](memberId),
			BookId:    models.Ref[models.Book](bookId),
			IssueDate: dueDate.AddDate(0, 0, -14),
			DueDate:   dueDate,
			Status:    models.DueStatusPending,
		}
	}

	t.Run("on time return closes the due as paid with zero fine", func(t *testing.T) {
		service, bookRepo, _, dueRepo, _, audit := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(openDue(date("2024-03-05T00:00:00Z")), nil)
		dueRepo.On("MarkReturned", mock.Anything, dueId, date("2024-03-01T00:00:00Z"), int64(0), models.DueStatusPaid).Return(nil)
		bookRepo.On("ReturnCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId}, nil)

		due, err := service.ReturnItem(context.Background(), dueId, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), due.FineAmount)
		assert.Equal(t, models.DueStatusPaid, due.Status)
		assert.NotNil(t, due.ReturnDate)

		waitFired(t, audit.fired)
		assert.Equal(t, consts.AuditDueReturned, audit.events[0].Event)
	})

	t.Run("late return leaves a pending fine", func(t *testing.T) {
		service, bookRepo, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(openDue(date("2024-02-26T00:00:00Z")), nil)
		dueRepo.On("MarkReturned", mock.Anything, dueId, date("2024-03-01T00:00:00Z"), int64(4), models.DueStatusPending).Return(nil)
		bookRepo.On("ReturnCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId}, nil)

		due, err := service.ReturnItem(context.Background(), dueId, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), due.FineAmount)
		assert.Equal(t, models.DueStatusPending, due.Status)
	})

	t.Run("rejects a fine override that disagrees with the computed fine", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(openDue(date("2024-02-26T00:00:00Z")), nil)

		override := int64(2)
		_, err := service.ReturnItem(context.Background(), dueId, &override)

		assert.Error(t, err)
		assert.Equal(t, consts.ErrCodeValidation, err.(*models.CustomError).Code)
		dueRepo.AssertNotCalled(t, "MarkReturned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("accepts a matching fine override", func(t *testing.T) {
		service, bookRepo, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(openDue(date("2024-02-26T00:00:00Z")), nil)
		dueRepo.On("MarkReturned", mock.Anything, dueId, mock.Anything, int64(4), models.DueStatusPending).Return(nil)
		bookRepo.On("ReturnCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId}, nil)

		override := int64(4)
		due, err := service.ReturnItem(context.Background(), dueId, &override)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), due.FineAmount)
	})

	t.Run("second return of the same due is rejected", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		returnedAt := date("2024-02-28T00:00:00Z")
		due := openDue(date("2024-03-05T00:00:00Z"))
		due.ReturnDate = &returnedAt

		dueRepo.On("DueByID", mock.Anything, dueId).Return(due, nil)

		_, err := service.ReturnItem(context.Background(), dueId, nil)

		assert.ErrorIs(t, err, consts.ErrAlreadyReturned)
	})

	t.Run("concurrent return losing the guarded update is rejected", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(openDue(date("2024-03-05T00:00:00Z")), nil)
		dueRepo.On("MarkReturned", mock.Anything, dueId, mock.Anything, mock.Anything, mock.Anything).Return(mongo.ErrNoDocuments)

		_, err := service.ReturnItem(context.Background(), dueId, nil)

		assert.ErrorIs(t, err, consts.ErrAlreadyReturned)
	})

	t.Run("unknown due", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(nil, mongo.ErrNoDocuments)

		_, err := service.ReturnItem(context.Background(), dueId, nil)

		assert.ErrorIs(t, err, consts.ErrDueNotFound)
	})
}

func TestSettleFine(t *testing.T) {
	dueId := primitive.NewObjectID()
	returnedAt := date("2024-02-28T00:00:00Z")

	returnedDue := func(fine int64) *models.Due {
		return &models.Due{
			DueId:      dueId,
			MemberId:   models.Ref[models.Member](primitive.NewObjectID()),
			BookId:     models.Ref[models.Book](primitive.NewObjectID()),
			ReturnDate: &returnedAt,
			FineAmount: fine,
			Status:     models.DueStatusPending,
		}
	}

	t.Run("marks a pending fine paid", func(t *testing.T) {
		service, _, _, dueRepo, _, audit := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(returnedDue(4), nil)
		dueRepo.On("SetStatus", mock.Anything, dueId, models.DueStatusPaid).Return(nil)

		due, err := service.SettleFine(context.Background(), dueId, models.DueStatusPaid)

		assert.NoError(t, err)
		assert.Equal(t, models.DueStatusPaid, due.Status)

		waitFired(t, audit.fired)
		assert.Equal(t, consts.AuditFineSettled, audit.events[0].Event)
		assert.Equal(t, int64(4), audit.events[0].FineAmount)
	})

	t.Run("waives a fine", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(returnedDue(4), nil)
		dueRepo.On("SetStatus", mock.Anything, dueId, models.DueStatusWaived).Return(nil)

		due, err := service.SettleFine(context.Background(), dueId, models.DueStatusWaived)

		assert.NoError(t, err)
		assert.Equal(t, models.DueStatusWaived, due.Status)
	})

	t.Run("settling a zero fine records the outcome", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(returnedDue(0), nil)
		dueRepo.On("SetStatus", mock.Anything, dueId, models.DueStatusPaid).Return(nil)

		_, err := service.SettleFine(context.Background(), dueId, models.DueStatusPaid)

		assert.NoError(t, err)
	})

	t.Run("rejects an outcome outside paid or waived", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		_, err := service.SettleFine(context.Background(), dueId, models.DueStatusPending)

		assert.Error(t, err)
		assert.Equal(t, consts.ErrCodeValidation, err.(*models.CustomError).Code)
		dueRepo.AssertNotCalled(t, "DueByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects settlement before return", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		open := returnedDue(0)
		open.ReturnDate = nil
		dueRepo.On("DueByID", mock.Anything, dueId).Return(open, nil)

		_, err := service.SettleFine(context.Background(), dueId, models.DueStatusPaid)

		assert.Error(t, err)
		dueRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteDue(t *testing.T) {
	dueId := primitive.NewObjectID()
	bookId := primitive.NewObjectID()

	t.Run("open due restores the copy before deletion", func(t *testing.T) {
		service, bookRepo, _, dueRepo, _, audit := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(&models.Due{
			DueId:  dueId,
			BookId: models.Ref[models.Book](bookId),
			MemberId: models.Ref[models.Member](primitive.NewObjectID()),
		}, nil)
		bookRepo.On("ReturnCopy", mock.Anything, bookId).Return(&models.Book{BookId: bookId}, nil)
		dueRepo.On("DeleteDue", mock.Anything, dueId).Return(nil)

		err := service.DeleteDue(context.Background(), dueId)

		assert.NoError(t, err)
		bookRepo.AssertCalled(t, "ReturnCopy", mock.Anything, bookId)

		waitFired(t, audit.fired)
		assert.Equal(t, consts.AuditDueDeleted, audit.events[0].Event)
	})

	t.Run("closed due deletes without touching inventory", func(t *testing.T) {
		service, bookRepo, _, dueRepo, _, _ := newLedgerFixture()

		returnedAt := date("2024-02-28T00:00:00Z")
		dueRepo.On("DueByID", mock.Anything, dueId).Return(&models.Due{
			DueId:      dueId,
			BookId:     models.Ref[models.Book](bookId),
			MemberId:   models.Ref[models.Member](primitive.NewObjectID()),
			ReturnDate: &returnedAt,
		}, nil)
		dueRepo.On("DeleteDue", mock.Anything, dueId).Return(nil)

		err := service.DeleteDue(context.Background(), dueId)

		assert.NoError(t, err)
		bookRepo.AssertNotCalled(t, "ReturnCopy", mock.Anything, mock.Anything)
	})

	t.Run("unknown due", func(t *testing.T) {
		service, _, _, dueRepo, _, _ := newLedgerFixture()

		dueRepo.On("DueByID", mock.Anything, dueId).Return(nil, mongo.ErrNoDocuments)

		err := service.DeleteDue(context.Background(), dueId)

		assert.ErrorIs(t, err, consts.ErrDueNotFound)
	})
}
