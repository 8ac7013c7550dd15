package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/logger"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils/worker"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pendingReservationSource interface {
	PendingReservations(ctx context.Context) ([]models.Reservation, error)
	MarkNotified(ctx context.Context, reservationId primitive.ObjectID) error
}

type bookSource interface {
	BookByFilter(filter interface{}) (*models.Book, error)
}

type memberNotifier interface {
	NotifyMember(ctx context.Context, memberId primitive.ObjectID, event string, message string) error
}

// ReservationSweeper polls pending reservations and tells members when a
// reserved book is back on the shelf. Each reservation is notified at most
// once; the mark is written only after the notification is recorded.
type ReservationSweeper struct {
	reservations pendingReservationSource
	books        bookSource
	notifier     memberNotifier
	pool         *worker.WorkerPool
	interval     time.Duration
}

func NewReservationSweeper(reservations pendingReservationSource, books bookSource, notifier memberNotifier, pool *worker.WorkerPool) *ReservationSweeper {
	return &ReservationSweeper{
		reservations: reservations,
		books:        books,
		notifier:     notifier,
		pool:         pool,
		interval:     time.Duration(configs.RESERVATION_SWEEP_INTERVAL_SECONDS) * time.Second,
	}
}

// Start runs one sweep immediately, then on every tick until the context is
// cancelled.
func (s *ReservationSweeper) Start(ctx context.Context) {
	logger.Info(ctx, "reservation sweeper started", "interval", s.interval.String())

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "reservation sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep fans the pending reservations out over the worker pool. One bad
// record never stops the rest of the pass.
func (s *ReservationSweeper) Sweep(ctx context.Context) {
	pending, err := s.reservations.PendingReservations(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load pending reservations", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	for _, reservation := range pending {
		r := reservation
		s.pool.Submit(func() {
			if err := s.process(ctx, r); err != nil {
				logger.Error(ctx, "failed to process reservation", "reservationId", r.ReservationId.Hex(), "error", err)
			}
		})
	}
}

func (s *ReservationSweeper) process(ctx context.Context, reservation models.Reservation) error {
	book, err := s.books.BookByFilter(bson.M{"_id": reservation.BookId.ID()})
	if err != nil {
		return err
	}
	if book.AvailableCopies <= 0 {
		return nil
	}

	message := fmt.Sprintf("%q is available again, your reservation is ready", book.Title)
	if err := s.notifier.NotifyMember(ctx, reservation.MemberId.ID(), consts.EventReservedBookAvailable, message); err != nil {
		return err
	}

	return s.reservations.MarkNotified(ctx, reservation.ReservationId)
}
