package assets

import _ "embed"

// PrayerTimesSG is the curated MUIS-style prayer-times dataset seeded
// into the database on startup. Field names follow the dataset's own
// (localized) convention.
//
//go:embed prayer_times_sg.json
var PrayerTimesSG []byte
