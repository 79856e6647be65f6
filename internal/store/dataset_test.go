package store

import (
	"context"
	"testing"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

func TestDatasetSeedAndRow(t *testing.T) {
	db := openTestDB(t)
	ds := NewDataset(db)
	ctx := context.Background()

	entries := []DatasetEntry{
		{Date: "2026-08-29", Subuh: "05:39", Syuruk: "07:01", Zohor: "13:07", Asar: "16:18", Maghrib: "19:10", Isyak: "20:20"},
		{Date: "2026-08-30", Subuh: "05:39", Syuruk: "07:01", Zohor: "13:06", Asar: "16:17", Maghrib: "19:09", Isyak: "20:19"},
	}
	if err := ds.Seed(ctx, entries); err != nil {
		t.Fatalf("seed: %v", err)
	}

	d, _ := domain.ParseDate("2026-08-29")
	fields, ok, err := ds.Row(ctx, d)
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if !ok {
		t.Fatal("expected a row")
	}
	if fields["zohor"] != "13:07" {
		t.Fatalf("got %v", fields)
	}

	missing, _ := domain.ParseDate("2030-01-01")
	if _, ok, err := ds.Row(ctx, missing); err != nil || ok {
		t.Fatalf("want miss, got ok=%v err=%v", ok, err)
	}
}

func TestDatasetSeedUpsertsCorrections(t *testing.T) {
	db := openTestDB(t)
	ds := NewDataset(db)
	ctx := context.Background()

	if err := ds.Seed(ctx, []DatasetEntry{
		{Date: "2026-08-29", Subuh: "05:39", Syuruk: "07:01", Zohor: "13:07", Asar: "16:18", Maghrib: "19:10", Isyak: "20:20"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := ds.Seed(ctx, []DatasetEntry{
		{Date: "2026-08-29", Subuh: "05:40", Syuruk: "07:01", Zohor: "13:07", Asar: "16:18", Maghrib: "19:10", Isyak: "20:20"},
	}); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	d, _ := domain.ParseDate("2026-08-29")
	fields, _, err := ds.Row(ctx, d)
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if fields["subuh"] != "05:40" {
		t.Fatalf("correction lost: %v", fields)
	}
	n, err := ds.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 row, got %d", n)
	}
}

func TestDatasetSeedRejectsBadDate(t *testing.T) {
	db := openTestDB(t)
	ds := NewDataset(db)

	err := ds.Seed(context.Background(), []DatasetEntry{{Date: "29/08/2026"}})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestSeedJSONDecodesEmbeddedShape(t *testing.T) {
	db := openTestDB(t)
	ds := NewDataset(db)

	blob := []byte(`[{"date":"2026-09-01","subuh":"05:38","syuruk":"07:00","zohor":"13:05","asar":"16:16","maghrib":"19:07","isyak":"20:17"}]`)
	n, err := ds.SeedJSON(context.Background(), blob)
	if err != nil {
		t.Fatalf("seed json: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1, got %d", n)
	}
}

func TestKVSetAllIsAtomicReplace(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SetAll(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("setall: %v", err)
	}
	v, ok, err := db.Get(ctx, "a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}
	if err := db.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := db.Get(ctx, "a"); ok {
		t.Fatal("a should be gone")
	}
	// Deleting again is a no-op.
	if err := db.Delete(ctx, "a"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
