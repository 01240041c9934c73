package email

import (
	"context"
	"log/slog"
)

// LogSender logs emails instead of sending them.
// Useful for development and testing.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-based sender; a nil logger means slog.Default().
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Provider() string { return "log" }

func (s *LogSender) IsConfigured() bool { return true }

// Send logs the email details.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "EMAIL (dev mode - not actually sent)",
		"from", msg.From,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
