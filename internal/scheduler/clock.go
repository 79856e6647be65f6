package scheduler

import "time"

// Clock abstracts wall-clock time so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
