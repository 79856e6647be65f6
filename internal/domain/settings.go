package domain

import "fmt"

// Settings are the user-owned scheduling inputs: how early to remind,
// which prayers to suppress, and which alert sound to use. The scheduler
// reads them per run; it never mutates them.
type Settings struct {
	ReminderOffsetMin int      `json:"reminder_offset_min"`
	Muted             []Prayer `json:"muted"`
	Sound             string   `json:"sound"`
}

// MutedSet converts the muted list into a lookup set.
func (s Settings) MutedSet() MutedSet {
	return NewMutedSet(s.Muted...)
}

// WithMuted returns a copy with p added to the muted list (no-op if
// already present).
func (s Settings) WithMuted(p Prayer) Settings {
	if s.MutedSet()[p] {
		return s
	}
	out := s
	out.Muted = append(append([]Prayer(nil), s.Muted...), p)
	return out
}

// WithUnmuted returns a copy with p removed from the muted list.
func (s Settings) WithUnmuted(p Prayer) Settings {
	out := s
	out.Muted = nil
	for _, m := range s.Muted {
		if m != p {
			out.Muted = append(out.Muted, m)
		}
	}
	return out
}

// Validate bounds the reminder offset. Zero disables reminders.
func (s Settings) Validate() error {
	if s.ReminderOffsetMin < 0 || s.ReminderOffsetMin > 120 {
		return fmt.Errorf("reminder offset %d out of range (0..120)", s.ReminderOffsetMin)
	}
	return nil
}
