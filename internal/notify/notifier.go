package notify

import (
	"context"
	"time"
)

// Notification is one platform notification to be delivered at At.
type Notification struct {
	Title   string
	Body    string
	Payload map[string]string
	At      time.Time
	// Sound is the alert sound identifier; empty means silent.
	Sound string
}

// Notifier is the platform notification surface. Exactly one
// implementation is selected at composition time; the scheduler never
// branches on the platform inline.
type Notifier interface {
	// RequestPermission reports whether the delivery channel is usable.
	// A false result is not an error; scheduling simply becomes a no-op.
	RequestPermission(ctx context.Context) (bool, error)
	// Schedule registers n for delivery and returns its id.
	Schedule(ctx context.Context, n Notification) (string, error)
	// Cancel removes a pending notification. Cancelling an unknown or
	// already-fired id is a no-op.
	Cancel(ctx context.Context, id string) error
	// CancelAll removes every pending notification.
	CancelAll(ctx context.Context) error
	// ListPending returns the ids of notifications not yet delivered.
	ListPending(ctx context.Context) ([]string, error)
}
