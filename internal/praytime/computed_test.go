package praytime

import (
	"context"
	"testing"
	"time"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

var singapore = Coordinates{Lat: 1.3521, Lon: 103.8198}

func solarLookup(t *testing.T, date string) domain.DailyPrayerTimes {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	times, err := NewSolarSource(loc).Lookup(context.Background(), d, singapore)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return times
}

func TestSolarTimesAreChronological(t *testing.T) {
	times := solarLookup(t, "2026-08-29")
	prev := domain.Minutes(-1)
	for _, p := range domain.PrayerOrder {
		m := times.Times[p]
		if m <= prev {
			t.Fatalf("%s (%s) not after previous (%s)", p, m, prev)
		}
		prev = m
	}
}

// Plausibility windows for Singapore, generous enough to hold year-round.
func TestSolarTimesPlausibleForSingapore(t *testing.T) {
	for _, date := range []string{"2026-03-15", "2026-08-29", "2026-12-21"} {
		times := solarLookup(t, date)
		checks := []struct {
			p        domain.Prayer
			min, max domain.Minutes
		}{
			{domain.Fajr, 4*60 + 30, 6 * 60},
			{domain.Sunrise, 6 * 60, 7*60 + 40},
			{domain.Dhuhr, 12*60 + 40, 13*60 + 30},
			{domain.Asr, 15*60 + 50, 17 * 60},
			{domain.Maghrib, 18*60 + 40, 19*60 + 30},
			{domain.Isha, 19*60 + 50, 20*60 + 45},
		}
		for _, c := range checks {
			got := times.Times[c.p]
			if got < c.min || got > c.max {
				t.Fatalf("%s %s: got %s, want within %s..%s", date, c.p, got, c.min, c.max)
			}
		}
	}
}

func TestSolarLookupRejectsBadCoordinates(t *testing.T) {
	loc := time.UTC
	d, _ := domain.ParseDate("2026-08-29")
	if _, err := NewSolarSource(loc).Lookup(context.Background(), d, Coordinates{Lat: 91}); err == nil {
		t.Fatal("expected error for latitude 91")
	}
}

func TestSolarLookupFailsInPolarNight(t *testing.T) {
	loc := time.UTC
	d, _ := domain.ParseDate("2026-12-21")
	// Longyearbyen: the sun never approaches the horizon in December.
	_, err := NewSolarSource(loc).Lookup(context.Background(), d, Coordinates{Lat: 78.22, Lon: 15.63})
	if err == nil {
		t.Fatal("expected error at polar latitude in winter")
	}
}
