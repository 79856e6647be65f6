package praytime

import (
	"fmt"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// Normalize converts a raw source row (field name -> "HH:MM") into the
// canonical six-key shape. Sources disagree on naming ("Fajr" vs the
// dataset's "subuh"); every source must pass through here before its
// output reaches the scheduler, or mismatched names silently drop
// prayers.
func Normalize(date domain.Date, fields map[string]string) (domain.DailyPrayerTimes, error) {
	out := domain.DailyPrayerTimes{
		Date:  date,
		Times: make(map[domain.Prayer]domain.Minutes, len(domain.PrayerOrder)),
	}
	for name, clock := range fields {
		p, err := domain.ParsePrayer(name)
		if err != nil {
			return domain.DailyPrayerTimes{}, fmt.Errorf("normalize %s: %w", date, err)
		}
		m, err := domain.ParseClock(clock)
		if err != nil {
			return domain.DailyPrayerTimes{}, fmt.Errorf("normalize %s %s: %w", date, name, err)
		}
		out.Times[p] = m
	}
	if err := out.Validate(); err != nil {
		return domain.DailyPrayerTimes{}, err
	}
	return out, nil
}
