package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes notifications to the log instead of a real channel.
// Used in dry-run mode and local development.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Ready(_ context.Context) (bool, error) {
	return true, nil
}

func (s *LogSender) Deliver(n Notification) error {
	s.log.Info("notification",
		zap.String("title", n.Title),
		zap.String("body", n.Body),
		zap.String("sound", n.Sound),
		zap.Time("at", n.At),
		zap.Any("payload", n.Payload))
	return nil
}
