package domain

import (
	"fmt"
	"strings"
	"time"
)

// Prayer is one of the six canonical daily prayer names.
type Prayer string

const (
	Fajr    Prayer = "Fajr"
	Sunrise Prayer = "Sunrise"
	Dhuhr   Prayer = "Dhuhr"
	Asr     Prayer = "Asr"
	Maghrib Prayer = "Maghrib"
	Isha    Prayer = "Isha"
)

// PrayerOrder lists the six canonical prayers in chronological order.
// Scheduling iterates this slice, never a map, so submission order is stable.
var PrayerOrder = []Prayer{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// ParsePrayer matches a user-supplied name (canonical or Malay) to a
// canonical Prayer. Matching is case-insensitive.
func ParsePrayer(s string) (Prayer, error) {
	for canonical, aliases := range prayerAliases {
		for _, a := range aliases {
			if strings.EqualFold(s, a) {
				return canonical, nil
			}
		}
	}
	return "", fmt.Errorf("unknown prayer %q", s)
}

// prayerAliases maps each canonical prayer to the names it may appear
// under, including the localized dataset names.
var prayerAliases = map[Prayer][]string{
	Fajr:    {"fajr", "subuh"},
	Sunrise: {"sunrise", "syuruk", "shuruk"},
	Dhuhr:   {"dhuhr", "zohor", "zuhur"},
	Asr:     {"asr", "asar"},
	Maghrib: {"maghrib"},
	Isha:    {"isha", "isyak", "isya"},
}

// MutedSet is the set of prayer names suppressed by user configuration.
type MutedSet map[Prayer]bool

// NewMutedSet builds a MutedSet from canonical prayer names.
func NewMutedSet(prayers ...Prayer) MutedSet {
	m := make(MutedSet, len(prayers))
	for _, p := range prayers {
		m[p] = true
	}
	return m
}

// Names returns the muted prayers in canonical order.
func (m MutedSet) Names() []Prayer {
	var out []Prayer
	for _, p := range PrayerOrder {
		if m[p] {
			out = append(out, p)
		}
	}
	return out
}

// DailyPrayerTimes holds the six prayer instants for one calendar date,
// expressed as minutes since local midnight. Immutable once resolved.
type DailyPrayerTimes struct {
	Date  Date
	Times map[Prayer]Minutes
}

// Validate returns an error unless all six canonical prayers are present.
// A shape that skips validation here can silently drop prayers downstream,
// so every source must call it after normalization.
func (d DailyPrayerTimes) Validate() error {
	for _, p := range PrayerOrder {
		if _, ok := d.Times[p]; !ok {
			return fmt.Errorf("prayer times for %s missing %s", d.Date, p)
		}
	}
	return nil
}

// At returns the wall-clock instant of prayer p on the day's date in loc.
func (d DailyPrayerTimes) At(p Prayer, loc *time.Location) time.Time {
	return d.Date.At(d.Times[p], loc)
}
