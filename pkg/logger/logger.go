package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init so packages can log during tests.
var Log *slog.Logger = slog.Default()

func Init(level string) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
