package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
	"github.com/mdnaeem95/musollah-sub007/internal/notify"
)

// CancelStore is the slice of the schedule store cancellation needs.
type CancelStore interface {
	RecordsForDate(ctx context.Context, date domain.Date) ([]domain.NotificationRecord, error)
	RemoveDate(ctx context.Context, date domain.Date, now time.Time) ([]domain.NotificationRecord, error)
	Clear(ctx context.Context) error
}

// Canceller removes scheduled notifications and the store entries that
// track them. It runs before every reschedule and on user-triggered
// config changes. Both operations are idempotent: cancelling an
// already-cancelled id is a no-op.
type Canceller struct {
	notifier notify.Notifier
	store    CancelStore
	clock    Clock
	log      *zap.Logger
}

func NewCanceller(notifier notify.Notifier, store CancelStore, clock Clock, log *zap.Logger) *Canceller {
	return &Canceller{notifier: notifier, store: store, clock: clock, log: log}
}

// CancelAll cancels every platform notification and clears the store.
// Cooperative, not preemptive: an in-flight run is not interrupted and
// will repopulate the store when it commits.
func (c *Canceller) CancelAll(ctx context.Context) {
	if err := c.notifier.CancelAll(ctx); err != nil {
		c.log.Error("platform cancel-all failed", zap.Error(err))
	}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error("schedule store clear failed", zap.Error(err))
	}
}

// CancelForDate cancels only the records for one date, then rewrites the
// store's record list (and derived metadata) without them.
func (c *Canceller) CancelForDate(ctx context.Context, date domain.Date) {
	records, err := c.store.RecordsForDate(ctx, date)
	if err != nil {
		c.log.Error("reading records for date failed",
			zap.String("date", date.String()), zap.Error(err))
		return
	}
	for _, r := range records {
		if err := c.notifier.Cancel(ctx, r.ID); err != nil {
			c.log.Error("platform cancel failed",
				zap.String("id", r.ID), zap.Error(err))
		}
	}
	if _, err := c.store.RemoveDate(ctx, date, c.clock.Now().UTC()); err != nil {
		c.log.Error("removing date from store failed",
			zap.String("date", date.String()), zap.Error(err))
	}
}
