package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender delivers a notification at its trigger instant. Implementations
// decide the channel (Telegram, log).
type Sender interface {
	// Ready reports whether the channel can deliver at all.
	Ready(ctx context.Context) (bool, error)
	Deliver(n Notification) error
}

// TimerNotifier implements Notifier with in-process timers. Timers do
// not survive a restart; the boot reschedule rebuilds the whole window
// from scratch, which also supersedes whatever the store held.
type TimerNotifier struct {
	sender Sender
	log    *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerNotifier(sender Sender, log *zap.Logger) *TimerNotifier {
	return &TimerNotifier{
		sender: sender,
		log:    log,
		timers: make(map[string]*time.Timer),
	}
}

func (t *TimerNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return t.sender.Ready(ctx)
}

// Schedule arms a timer for n. An instant already in the past fires
// immediately; the scheduler filters past instants before it gets here.
func (t *TimerNotifier) Schedule(_ context.Context, n Notification) (string, error) {
	id := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.timers[id] = time.AfterFunc(time.Until(n.At), func() {
		t.fire(id, n)
	})
	return id, nil
}

func (t *TimerNotifier) fire(id string, n Notification) {
	t.mu.Lock()
	delete(t.timers, id)
	t.mu.Unlock()

	if err := t.sender.Deliver(n); err != nil {
		t.log.Error("notification delivery failed",
			zap.String("id", id),
			zap.String("title", n.Title),
			zap.Error(err))
	}
}

func (t *TimerNotifier) Cancel(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
	return nil
}

func (t *TimerNotifier) CancelAll(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	return nil
}

func (t *TimerNotifier) ListPending(_ context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.timers))
	for id := range t.timers {
		ids = append(ids, id)
	}
	return ids, nil
}
