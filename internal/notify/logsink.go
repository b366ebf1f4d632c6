package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSink is used when no mail transport is configured: it records what
// would have been sent and reports success.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink { return &LogSink{log: log} }

func (s *LogSink) Send(_ context.Context, msg Message) error {
	s.log.Info("email transport not configured, skipping send",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
