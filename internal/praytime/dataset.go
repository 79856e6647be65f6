package praytime

import (
	"context"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// RowProvider supplies raw dataset rows keyed by date. The storage layer
// implements it; rows keep the dataset's own (localized) field names.
type RowProvider interface {
	// Row returns the raw fields for date, or ok=false when the dataset
	// has no entry.
	Row(ctx context.Context, date domain.Date) (fields map[string]string, ok bool, err error)
}

// DatasetSource adapts a RowProvider into the authoritative source,
// normalizing field names on the way out.
type DatasetSource struct {
	rows RowProvider
}

func NewDatasetSource(rows RowProvider) *DatasetSource {
	return &DatasetSource{rows: rows}
}

func (s *DatasetSource) Lookup(ctx context.Context, date domain.Date) (domain.DailyPrayerTimes, error) {
	fields, ok, err := s.rows.Row(ctx, date)
	if err != nil {
		return domain.DailyPrayerTimes{}, err
	}
	if !ok {
		return domain.DailyPrayerTimes{}, ErrNotFound
	}
	return Normalize(date, fields)
}
