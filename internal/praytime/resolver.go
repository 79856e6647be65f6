package praytime

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// ErrNotFound means a source has no entry for the requested date.
var ErrNotFound = errors.New("no prayer times for date")

// Coordinates is a geographic position for the computed source.
type Coordinates struct {
	Lat float64
	Lon float64
}

// SourceUnavailableError means both sources failed for one date. The
// scheduler catches it per day; one bad date never aborts the whole run.
type SourceUnavailableError struct {
	Date          domain.Date
	Authoritative error
	Computed      error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("prayer times unavailable for %s: authoritative: %v; computed: %v",
		e.Date, e.Authoritative, e.Computed)
}

// AuthoritativeSource is the curated, date-indexed dataset. It is
// location-independent: it represents the official published schedule.
type AuthoritativeSource interface {
	Lookup(ctx context.Context, date domain.Date) (domain.DailyPrayerTimes, error)
}

// ComputedSource derives prayer times from coordinates and date alone.
type ComputedSource interface {
	Lookup(ctx context.Context, date domain.Date, c Coordinates) (domain.DailyPrayerTimes, error)
}

// Resolver resolves the six canonical prayer instants for a date,
// preferring the authoritative dataset and falling back to computation.
type Resolver struct {
	auth AuthoritativeSource
	comp ComputedSource
	log  *zap.Logger
}

func NewResolver(auth AuthoritativeSource, comp ComputedSource, log *zap.Logger) *Resolver {
	return &Resolver{auth: auth, comp: comp, log: log}
}

// Resolve returns normalized prayer times for date. It fails with
// *SourceUnavailableError only when both sources fail.
func (r *Resolver) Resolve(ctx context.Context, date domain.Date, c Coordinates) (domain.DailyPrayerTimes, error) {
	times, authErr := r.auth.Lookup(ctx, date)
	if authErr == nil {
		return times, nil
	}
	if !errors.Is(authErr, ErrNotFound) {
		r.log.Warn("authoritative source failed, falling back",
			zap.String("date", date.String()), zap.Error(authErr))
	} else {
		r.log.Debug("no authoritative entry, falling back",
			zap.String("date", date.String()))
	}

	times, compErr := r.comp.Lookup(ctx, date, c)
	if compErr == nil {
		return times, nil
	}
	return domain.DailyPrayerTimes{}, &SourceUnavailableError{
		Date:          date,
		Authoritative: authErr,
		Computed:      compErr,
	}
}
