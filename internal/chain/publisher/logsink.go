package publisher

import (
	"context"
	"log/slog"

	"auditarmor/internal/chain"
)

// LogSink writes announcements to a structured logger so the service log
// records every tip even without a broker.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (l *LogSink) Name() string { return "log" }

func (l *LogSink) Publish(ctx context.Context, entry chain.Entry) error {
	l.logger.InfoContext(ctx, "chain tip advanced",
		"event", entry.Event,
		"hash", entry.Hash,
		"previous_hash", entry.PreviousHash,
		"timestamp", entry.Timestamp,
	)
	return nil
}
