package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// DatasetEntry is one row of the curated prayer-times dataset. Field
// names follow the dataset's own convention; normalization into the
// canonical shape happens in the resolver layer, never here.
type DatasetEntry struct {
	Date    string `json:"date"`
	Subuh   string `json:"subuh"`
	Syuruk  string `json:"syuruk"`
	Zohor   string `json:"zohor"`
	Asar    string `json:"asar"`
	Maghrib string `json:"maghrib"`
	Isyak   string `json:"isyak"`
}

// Dataset is the date-indexed authoritative prayer-times table.
type Dataset struct {
	db *DB
}

func NewDataset(db *DB) *Dataset {
	return &Dataset{db: db}
}

// Row returns the raw localized fields for date, ok=false on a miss.
// Implements the resolver's RowProvider contract.
func (d *Dataset) Row(ctx context.Context, date domain.Date) (map[string]string, bool, error) {
	var e DatasetEntry
	err := d.db.sql.QueryRowContext(ctx, `
		SELECT subuh, syuruk, zohor, asar, maghrib, isyak
		FROM prayer_times
		WHERE date = ?`,
		date.String(),
	).Scan(&e.Subuh, &e.Syuruk, &e.Zohor, &e.Asar, &e.Maghrib, &e.Isyak)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return map[string]string{
		"subuh":   e.Subuh,
		"syuruk":  e.Syuruk,
		"zohor":   e.Zohor,
		"asar":    e.Asar,
		"maghrib": e.Maghrib,
		"isyak":   e.Isyak,
	}, true, nil
}

// Seed upserts entries into the dataset. Existing dates are replaced so
// corrected schedules win over stale seeds.
func (d *Dataset) Seed(ctx context.Context, entries []DatasetEntry) error {
	tx, err := d.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := domain.ParseDate(e.Date); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed entry: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO prayer_times (date, subuh, syuruk, zohor, asar, maghrib, isyak)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET
				subuh   = excluded.subuh,
				syuruk  = excluded.syuruk,
				zohor   = excluded.zohor,
				asar    = excluded.asar,
				maghrib = excluded.maghrib,
				isyak   = excluded.isyak`,
			e.Date, e.Subuh, e.Syuruk, e.Zohor, e.Asar, e.Maghrib, e.Isyak,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed %s: %w", e.Date, err)
		}
	}
	return tx.Commit()
}

// SeedJSON decodes a JSON array of entries and seeds it.
func (d *Dataset) SeedJSON(ctx context.Context, blob []byte) (int, error) {
	var entries []DatasetEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return 0, fmt.Errorf("decode dataset: %w", err)
	}
	if err := d.Seed(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Count returns the number of dates in the dataset.
func (d *Dataset) Count(ctx context.Context) (int, error) {
	var n int
	err := d.db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM prayer_times`).Scan(&n)
	return n, err
}
