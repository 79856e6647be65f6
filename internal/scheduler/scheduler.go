package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
	"github.com/mdnaeem95/musollah-sub007/internal/notify"
	"github.com/mdnaeem95/musollah-sub007/internal/praytime"
)

// Resolver resolves one day's prayer times. praytime.Resolver implements
// it; tests substitute a fake.
type Resolver interface {
	Resolve(ctx context.Context, date domain.Date, c praytime.Coordinates) (domain.DailyPrayerTimes, error)
}

// Store is the slice of the schedule store the scheduler needs.
type Store interface {
	HasSufficientFutureCoverage(ctx context.Context, today domain.Date) (bool, error)
	Commit(ctx context.Context, records []domain.NotificationRecord, meta domain.ScheduleMetadata) error
}

// Config holds the window constants, injected at construction rather
// than scattered through the loop.
type Config struct {
	// LookaheadDays is how many calendar days one run schedules.
	LookaheadDays int
	// Location is the timezone prayer instants are computed in.
	Location *time.Location
}

// RunInput carries the caller-owned inputs of one scheduling run.
type RunInput struct {
	// Today optionally supplies pre-resolved times for the current day,
	// saving a resolve call. Ignored if its date is not today.
	Today    *domain.DailyPrayerTimes
	Settings domain.Settings
	Coords   praytime.Coordinates
	// Force skips the coverage gate so the window is always rebuilt.
	// Boot and settings changes set it. The permission check still
	// applies: a denied run leaves the existing window untouched.
	Force bool
}

// Scheduler populates the notification window: it resolves prayer times
// for each day in the lookahead, submits reminder and event
// notifications for un-muted prayers still in the future, and commits
// the resulting records to the store in one write.
type Scheduler struct {
	notifier  notify.Notifier
	resolver  Resolver
	store     Store
	canceller *Canceller
	clock     Clock
	log       *zap.Logger
	cfg       Config
}

func New(notifier notify.Notifier, resolver Resolver, store Store, canceller *Canceller, clock Clock, log *zap.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		notifier:  notifier,
		resolver:  resolver,
		store:     store,
		canceller: canceller,
		clock:     clock,
		log:       log,
		cfg:       cfg,
	}
}

// Run performs one scheduling pass. It is best-effort throughout: every
// failure degrades to fewer notifications, never to an error surfaced to
// the caller. Full-replace semantics: when the coverage gate (or Force)
// decides a run is needed, everything pending is cancelled and the whole
// window is recomputed.
func (s *Scheduler) Run(ctx context.Context, in RunInput) {
	now := s.clock.Now().In(s.cfg.Location)
	today := domain.DateOf(now)

	if !in.Force {
		ok, err := s.store.HasSufficientFutureCoverage(ctx, today)
		if err != nil {
			// Treat an unreadable gate as "insufficient" and reschedule.
			s.log.Warn("coverage check failed, rescheduling anyway", zap.Error(err))
		} else if ok {
			s.log.Debug("schedule coverage sufficient, skipping run",
				zap.String("today", today.String()))
			return
		}
	}

	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		s.log.Warn("notification permission check failed", zap.Error(err))
		return
	}
	if !granted {
		s.log.Info("notification permission not granted, nothing scheduled")
		return
	}

	s.canceller.CancelAll(ctx)

	muted := in.Settings.MutedSet()
	offset := time.Duration(in.Settings.ReminderOffsetMin) * time.Minute

	var records []domain.NotificationRecord
	for i := 0; i < s.cfg.LookaheadDays; i++ {
		date := today.AddDays(i)

		times, err := s.timesFor(ctx, i, date, in)
		if err != nil {
			// One bad day never aborts the rest of the window.
			s.log.Error("skipping day, prayer times unresolved",
				zap.String("date", date.String()), zap.Error(err))
			continue
		}

		for _, p := range domain.PrayerOrder {
			if muted[p] {
				continue
			}
			eventAt := times.At(p, s.cfg.Location)
			if !eventAt.After(now) {
				// Already passed today; no reminder, no event.
				continue
			}

			if offset > 0 {
				if remindAt := eventAt.Add(-offset); remindAt.After(now) {
					if rec, err := s.submit(ctx, p, date, domain.KindReminder, remindAt, eventAt, in.Settings); err != nil {
						s.log.Error("reminder submission failed",
							zap.String("date", date.String()),
							zap.String("prayer", string(p)),
							zap.Error(err))
					} else {
						records = append(records, rec)
					}
				}
			}

			if rec, err := s.submit(ctx, p, date, domain.KindEvent, eventAt, eventAt, in.Settings); err != nil {
				s.log.Error("event submission failed",
					zap.String("date", date.String()),
					zap.String("prayer", string(p)),
					zap.Error(err))
			} else {
				records = append(records, rec)
			}
		}
	}

	meta := domain.MetadataFor(records, s.clock.Now().UTC())
	if err := s.store.Commit(ctx, records, meta); err != nil {
		// Submitted notifications stay live; the store is out of sync
		// until the next successful run.
		s.log.Error("schedule store write failed", zap.Error(err))
		return
	}

	if meta.LastScheduledDate.IsZero() {
		s.log.Warn("scheduling run produced no notifications")
		return
	}
	s.log.Info("scheduling run complete",
		zap.Int("notifications", len(records)),
		zap.Int("days", len(meta.ScheduledDates)),
		zap.String("last_date", meta.LastScheduledDate.String()))
}

// timesFor returns the prayer times for day offset i, reusing the
// caller-supplied times for day 0 when they match today's date.
func (s *Scheduler) timesFor(ctx context.Context, i int, date domain.Date, in RunInput) (domain.DailyPrayerTimes, error) {
	if i == 0 && in.Today != nil {
		if in.Today.Date == date {
			return *in.Today, nil
		}
		s.log.Debug("supplied today times are stale, resolving",
			zap.String("supplied", in.Today.Date.String()),
			zap.String("today", date.String()))
	}
	return s.resolver.Resolve(ctx, date, in.Coords)
}

func (s *Scheduler) submit(ctx context.Context, p domain.Prayer, date domain.Date, kind domain.Kind, at, eventAt time.Time, settings domain.Settings) (domain.NotificationRecord, error) {
	n := notify.Notification{
		At: at,
		Payload: map[string]string{
			"prayer": string(p),
			"date":   date.String(),
			"kind":   string(kind),
		},
	}
	switch kind {
	case domain.KindReminder:
		n.Title = fmt.Sprintf("%s in %d minutes", p, settings.ReminderOffsetMin)
		n.Body = fmt.Sprintf("%s is at %s", p, eventAt.Format("15:04"))
	default:
		n.Title = fmt.Sprintf("It's time for %s", p)
		n.Body = eventAt.Format("15:04")
		n.Sound = settings.Sound
	}

	id, err := s.notifier.Schedule(ctx, n)
	if err != nil {
		return domain.NotificationRecord{}, err
	}
	return domain.NotificationRecord{
		ID:           id,
		Prayer:       p,
		Kind:         kind,
		ScheduledFor: at,
		Date:         date,
	}, nil
}
