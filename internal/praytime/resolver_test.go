package praytime

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

type fakeAuth struct {
	times domain.DailyPrayerTimes
	err   error
	calls int
}

func (f *fakeAuth) Lookup(_ context.Context, _ domain.Date) (domain.DailyPrayerTimes, error) {
	f.calls++
	return f.times, f.err
}

type fakeComp struct {
	times domain.DailyPrayerTimes
	err   error
	calls int
}

func (f *fakeComp) Lookup(_ context.Context, _ domain.Date, _ Coordinates) (domain.DailyPrayerTimes, error) {
	f.calls++
	return f.times, f.err
}

func sampleTimes(t *testing.T, date string) domain.DailyPrayerTimes {
	t.Helper()
	d, err := domain.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return domain.DailyPrayerTimes{
		Date: d,
		Times: map[domain.Prayer]domain.Minutes{
			domain.Fajr:    5*60 + 39,
			domain.Sunrise: 7*60 + 3,
			domain.Dhuhr:   13*60 + 10,
			domain.Asr:     16*60 + 31,
			domain.Maghrib: 19*60 + 14,
			domain.Isha:    20*60 + 26,
		},
	}
}

func TestResolvePrefersAuthoritative(t *testing.T) {
	auth := &fakeAuth{times: sampleTimes(t, "2026-08-29")}
	comp := &fakeComp{}
	r := NewResolver(auth, comp, zap.NewNop())

	got, err := r.Resolve(context.Background(), auth.times.Date, Coordinates{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Times[domain.Fajr] != 5*60+39 {
		t.Fatalf("got %v", got.Times[domain.Fajr])
	}
	if comp.calls != 0 {
		t.Fatal("computed source should not be consulted")
	}
}

func TestResolveFallsBackOnMiss(t *testing.T) {
	comp := &fakeComp{times: sampleTimes(t, "2026-08-29")}
	r := NewResolver(&fakeAuth{err: ErrNotFound}, comp, zap.NewNop())

	got, err := r.Resolve(context.Background(), comp.times.Date, Coordinates{Lat: 1.35, Lon: 103.82})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if comp.calls != 1 {
		t.Fatalf("computed calls: got %d", comp.calls)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("fallback result invalid: %v", err)
	}
}

func TestResolveFallsBackOnAuthoritativeError(t *testing.T) {
	comp := &fakeComp{times: sampleTimes(t, "2026-08-29")}
	r := NewResolver(&fakeAuth{err: errors.New("db locked")}, comp, zap.NewNop())

	if _, err := r.Resolve(context.Background(), comp.times.Date, Coordinates{}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestResolveFailsOnlyWhenBothSourcesFail(t *testing.T) {
	date, _ := domain.ParseDate("2026-08-29")
	r := NewResolver(&fakeAuth{err: ErrNotFound}, &fakeComp{err: errors.New("boom")}, zap.NewNop())

	_, err := r.Resolve(context.Background(), date, Coordinates{})
	var unavailable *SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("want SourceUnavailableError, got %v", err)
	}
	if unavailable.Date != date {
		t.Fatalf("want %s, got %s", date, unavailable.Date)
	}
}

func TestNormalizeMapsLocalizedFieldNames(t *testing.T) {
	date, _ := domain.ParseDate("2026-08-29")
	got, err := Normalize(date, map[string]string{
		"subuh":   "05:39",
		"syuruk":  "07:03",
		"zohor":   "13:10",
		"asar":    "16:31",
		"maghrib": "19:14",
		"isyak":   "20:26",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Times[domain.Isha] != 20*60+26 {
		t.Fatalf("isha: got %s", got.Times[domain.Isha])
	}
	loc, _ := time.LoadLocation("Asia/Singapore")
	at := got.At(domain.Maghrib, loc)
	if at.Hour() != 19 || at.Minute() != 14 {
		t.Fatalf("maghrib instant: got %s", at)
	}
}

func TestNormalizeRejectsIncompleteShape(t *testing.T) {
	date, _ := domain.ParseDate("2026-08-29")
	if _, err := Normalize(date, map[string]string{"subuh": "05:39"}); err == nil {
		t.Fatal("expected error for missing prayers")
	}
	if _, err := Normalize(date, map[string]string{"lunch": "12:00"}); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
