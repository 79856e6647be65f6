package domain

import "time"

// Kind distinguishes the two notifications generated per prayer.
type Kind string

const (
	// KindReminder is the optional early warning, offset minutes before
	// the prayer instant.
	KindReminder Kind = "reminder"
	// KindEvent is the notification at the prayer instant itself.
	KindEvent Kind = "event"
)

// NotificationRecord tracks one notification submitted to the platform
// notifier. At most one record exists per (date, prayer, kind).
type NotificationRecord struct {
	ID           string    `json:"id"`
	Prayer       Prayer    `json:"prayer"`
	Kind         Kind      `json:"kind"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Date         Date      `json:"date"`
}

// ScheduleMetadata summarizes the persisted schedule. Single row,
// overwritten atomically together with the record list after each run.
type ScheduleMetadata struct {
	LastScheduledDate Date      `json:"last_scheduled_date"`
	ScheduledDates    []Date    `json:"scheduled_dates"`
	ScheduledCount    int       `json:"scheduled_count"`
	LastUpdated       time.Time `json:"last_updated"`
}

// FutureDates counts dates in ScheduledDates that are today or later.
func (m ScheduleMetadata) FutureDates(today Date) int {
	n := 0
	for _, d := range m.ScheduledDates {
		if !d.Before(today) {
			n++
		}
	}
	return n
}

// MetadataFor derives fresh metadata from a record list.
func MetadataFor(records []NotificationRecord, now time.Time) ScheduleMetadata {
	seen := make(map[Date]bool)
	var dates []Date
	var last Date
	for _, r := range records {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
		if last.Before(r.Date) {
			last = r.Date
		}
	}
	return ScheduleMetadata{
		LastScheduledDate: last,
		ScheduledDates:    dates,
		ScheduledCount:    len(records),
		LastUpdated:       now,
	}
}
