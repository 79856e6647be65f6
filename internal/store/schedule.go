package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// KV keys for the two scheduling blobs. They are always rewritten in one
// transaction so the record list and metadata can never drift apart.
const (
	recordsKey  = "schedule/records"
	metadataKey = "schedule/metadata"
)

// ScheduleStore persists which notifications are currently scheduled and
// a summary of the covered dates. It answers the "is rescheduling
// necessary" question without consulting the platform's live list.
type ScheduleStore struct {
	kv KV
	// coverageMin is the number of future dates the persisted schedule
	// must cover before a new run is considered redundant. A tunable
	// heuristic, not a semantic invariant.
	coverageMin int
}

func NewScheduleStore(kv KV, coverageMin int) *ScheduleStore {
	return &ScheduleStore{kv: kv, coverageMin: coverageMin}
}

// HasSufficientFutureCoverage reports whether the persisted schedule
// already covers at least the configured number of dates >= today. This
// is the idempotency gate hit on every trigger.
func (s *ScheduleStore) HasSufficientFutureCoverage(ctx context.Context, today domain.Date) (bool, error) {
	meta, err := s.Metadata(ctx)
	if err != nil {
		return false, err
	}
	return meta.FutureDates(today) >= s.coverageMin, nil
}

// Commit atomically replaces the record list and metadata.
// Last writer wins.
func (s *ScheduleStore) Commit(ctx context.Context, records []domain.NotificationRecord, meta domain.ScheduleMetadata) error {
	if records == nil {
		records = []domain.NotificationRecord{}
	}
	recBlob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	metaBlob, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return s.kv.SetAll(ctx, map[string]string{
		recordsKey:  string(recBlob),
		metadataKey: string(metaBlob),
	})
}

// Records returns every persisted notification record.
func (s *ScheduleStore) Records(ctx context.Context) ([]domain.NotificationRecord, error) {
	blob, ok, err := s.kv.Get(ctx, recordsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var records []domain.NotificationRecord
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return records, nil
}

// RecordsForDate returns the persisted records whose date matches.
func (s *ScheduleStore) RecordsForDate(ctx context.Context, date domain.Date) ([]domain.NotificationRecord, error) {
	all, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.NotificationRecord
	for _, r := range all {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

// Metadata returns the persisted schedule summary; the zero value when
// nothing has been committed yet.
func (s *ScheduleStore) Metadata(ctx context.Context) (domain.ScheduleMetadata, error) {
	blob, ok, err := s.kv.Get(ctx, metadataKey)
	if err != nil {
		return domain.ScheduleMetadata{}, err
	}
	if !ok {
		return domain.ScheduleMetadata{}, nil
	}
	var meta domain.ScheduleMetadata
	if err := json.Unmarshal([]byte(blob), &meta); err != nil {
		return domain.ScheduleMetadata{}, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return meta, nil
}

// RemoveDate rewrites the record list without the given date's records
// and recomputes metadata from what remains. It returns the removed
// records so their platform notifications can be cancelled.
func (s *ScheduleStore) RemoveDate(ctx context.Context, date domain.Date, now time.Time) ([]domain.NotificationRecord, error) {
	all, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	var kept, removed []domain.NotificationRecord
	for _, r := range all {
		if r.Date == date {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := s.Commit(ctx, kept, domain.MetadataFor(kept, now)); err != nil {
		return nil, err
	}
	return removed, nil
}

// Clear empties both the record list and the metadata.
func (s *ScheduleStore) Clear(ctx context.Context) error {
	return s.Commit(ctx, nil, domain.ScheduleMetadata{})
}
