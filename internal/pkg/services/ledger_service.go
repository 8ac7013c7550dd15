package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const asyncDispatchTimeout = 30 * time.Second

// LedgerService owns the due lifecycle: issue, return, settle, delete.
type LedgerService struct {
	bookRepo   BookRepo
	memberRepo MemberRepo
	dueRepo    DueRepo
	notifier   Notifier
	audit      AuditPublisher
	now        func() time.Time
}

func NewLedgerService(bookRepo BookRepo, memberRepo MemberRepo, dueRepo DueRepo, notifier Notifier, audit AuditPublisher) *LedgerService {
	return &LedgerService{
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		dueRepo:    dueRepo,
		notifier:   notifier,
		audit:      audit,
		now:        time.Now,
	}
}

// Issue lends one copy of a book to a member. The copy is claimed with a
// conditional decrement so two concurrent issues can never oversell the last
// copy. If the due record cannot be persisted the claimed copy is released.
func (s *LedgerService) Issue(ctx context.Context, bookId, memberId primitive.ObjectID) (*models.Due, error) {
	if _, err := s.memberRepo.MemberByFilter(bson.M{"_id": memberId}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrMemberNotFound
		}
		logger.Error(ctx, "failed to load member", "memberId", memberId.Hex(), "error", err)
		return nil, err
	}

	book, err := s.bookRepo.BorrowCopy(ctx, bookId)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now().UTC()
	due := models.Due{
		DueId:      primitive.NewObjectID(),
		MemberId:   models.Ref[models.Member](memberId),
		BookId:     models.Ref[models.Book](bookId),
		IssueDate:  issuedAt,
		DueDate:    issuedAt.AddDate(0, 0, configs.LOAN_PERIOD_DAYS),
		ReturnDate: nil,
		FineAmount: 0,
		Status:     models.DueStatusPending,
	}

	if _, err := s.dueRepo.CreateDue(ctx, due); err != nil {
		logger.Error(ctx, "failed to persist due, releasing claimed copy", "bookId", bookId.Hex(), "error", err)
		if _, releaseErr := s.bookRepo.ReturnCopy(ctx, bookId); releaseErr != nil {
			logger.Error(ctx, "failed to release claimed copy", "bookId", bookId.Hex(), "error", releaseErr)
		}
		return nil, err
	}

	s.dispatch(ctx, consts.AuditDueIssued, due, 0, consts.EventDueIssued,
		fmt.Sprintf("You borrowed %q, due back on %s", book.Title, due.DueDate.Format("2006-01-02")))

	return &due, nil
}

// ReturnItem closes an open due. The fine is derived from the due date and
// the clock; callers may pass the amount they expect to collect and the
// return is rejected when it disagrees with the computed fine.
func (s *LedgerService) ReturnItem(ctx context.Context, dueId primitive.ObjectID, fineOverride *int64) (*models.Due, error) {
	due, err := s.dueRepo.DueByID(ctx, dueId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrDueNotFound
		}
		return nil, err
	}
	if due.ReturnDate != nil {
		return nil, consts.ErrAlreadyReturned
	}

	returnedAt := s.now().UTC()
	fine := CalculateFine(due.DueDate, returnedAt, configs.FINE_PER_DAY)
	if fineOverride != nil && *fineOverride != fine {
		return nil, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: fmt.Sprintf("expected fine %d, got %d", fine, *fineOverride),
		}
	}

	status := models.DueStatusPending
	if fine == 0 {
		status = models.DueStatusPaid
	}

	if err := s.dueRepo.MarkReturned(ctx, dueId, returnedAt, fine, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrAlreadyReturned
		}
		logger.Error(ctx, "failed to mark due returned", "dueId", dueId.Hex(), "error", err)
		return nil, err
	}

	if _, err := s.bookRepo.ReturnCopy(ctx, due.BookId.ID()); err != nil {
		logger.Error(ctx, "failed to restore copy after return", "bookId", due.BookId.ID().Hex(), "error", err)
	}

	due.ReturnDate = &returnedAt
	due.FineAmount = fine
	due.Status = status

	s.dispatch(ctx, consts.AuditDueReturned, *due, fine, consts.EventDueReturned,
		fmt.Sprintf("Return recorded, fine owed: %d", fine))

	return due, nil
}

// SettleFine resolves the fine on a returned due as paid or waived. Settling
// a zero fine is a no-op on the balance but still records the outcome.
func (s *LedgerService) SettleFine(ctx context.Context, dueId primitive.ObjectID, outcome models.DueStatus) (*models.Due, error) {
	if outcome != models.DueStatusPaid && outcome != models.DueStatusWaived {
		return nil, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: fmt.Sprintf("outcome must be %q or %q", models.DueStatusPaid, models.DueStatusWaived),
		}
	}

	due, err := s.dueRepo.DueByID(ctx, dueId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrDueNotFound
		}
		return nil, err
	}
	if due.ReturnDate == nil {
		return nil, &models.CustomError{
			Code:    consts.ErrCodeValidation,
			Message: "cannot settle a fine before the book is returned",
		}
	}

	if err := s.dueRepo.SetStatus(ctx, dueId, outcome); err != nil {
		logger.Error(ctx, "failed to settle fine", "dueId", dueId.Hex(), "error", err)
		return nil, err
	}
	due.Status = outcome

	s.dispatch(ctx, consts.AuditFineSettled, *due, due.FineAmount, consts.EventFineSettled,
		fmt.Sprintf("Fine of %d marked %s", due.FineAmount, outcome))

	return due, nil
}

// DeleteDue removes a due record. An open due still holds a copy, so the
// inventory effect is reversed before the record goes away.
func (s *LedgerService) DeleteDue(ctx context.Context, dueId primitive.ObjectID) error {
	due, err := s.dueRepo.DueByID(ctx, dueId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return consts.ErrDueNotFound
		}
		return err
	}

	if due.Open() {
		if _, err := s.bookRepo.ReturnCopy(ctx, due.BookId.ID()); err != nil {
			logger.Error(ctx, "failed to restore copy before due deletion", "bookId", due.BookId.ID().Hex(), "error", err)
			return err
		}
	}

	if err := s.dueRepo.DeleteDue(ctx, dueId); err != nil {
		logger.Error(ctx, "failed to delete due", "dueId", dueId.Hex(), "error", err)
		return err
	}

	s.publishAudit(ctx, consts.AuditDueDeleted, *due, due.FineAmount)
	return nil
}

func (s *LedgerService) GetDue(ctx context.Context, dueId primitive.ObjectID) (*models.Due, error) {
	due, err := s.dueRepo.DueByID(ctx, dueId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, consts.ErrDueNotFound
		}
		return nil, err
	}
	return due, nil
}

func (s *LedgerService) ListDues(ctx context.Context, memberId *primitive.ObjectID) ([]models.Due, error) {
	filter := bson.M{}
	if memberId != nil {
		filter["memberId"] = *memberId
	}
	return s.dueRepo.DuesByFilter(filter)
}

// dispatch fans the side effects of a ledger mutation out on a detached
// context so a slow broker never blocks the caller.
func (s *LedgerService) dispatch(ctx context.Context, auditEvent string, due models.Due, fine int64, notifyEvent, message string) {
	s.publishAudit(ctx, auditEvent, due, fine)

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), asyncDispatchTimeout)
		defer cancel()
		if err := s.notifier.NotifyMember(notifyCtx, due.MemberId.ID(), notifyEvent, message); err != nil {
			logger.Error(notifyCtx, "failed to notify member", "dueId", due.DueId.Hex(), "error", err)
		}
	}()
}

func (s *LedgerService) publishAudit(ctx context.Context, auditEvent string, due models.Due, fine int64) {
	go func() {
		auditCtx, cancel := context.WithTimeout(context.Background(), asyncDispatchTimeout)
		defer cancel()
		event := models.CirculationEvent{
			TransactionId: primitive.NewObjectID().Hex(),
			Event:         auditEvent,
			DueId:         due.DueId.Hex(),
			BookId:        due.BookId.ID().Hex(),
			MemberId:      due.MemberId.ID().Hex(),
			FineAmount:    fine,
			OccurredAt:    s.now().UTC(),
		}
		if err := s.audit.PublishCirculationEvent(auditCtx, event); err != nil {
			logger.Error(auditCtx, "failed to publish circulation event", "event", auditEvent, "error", err)
		}
	}()
}
