package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the log instead of the desktop. It suits
// hosts without a session bus.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs each request.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Init is a no-op.
func (s *LogSink) Init(context.Context) error { return nil }

// Uninit is a no-op.
func (s *LogSink) Uninit() error { return nil }

// Notify logs the request.
func (s *LogSink) Notify(ctx context.Context, req Request) error {
	s.logger.InfoContext(ctx, "notification",
		"title", req.Title,
		"message", req.Message,
		"urgency", req.Urgency.String(),
		"icon", req.Icon,
	)
	return nil
}
