package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

func parseLevel(level string) slog.Level {
	switch level {
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

// Init configures the process-wide logger. Format is "json" or "text";
// level is one of debug, info, warn, error.
func Init(format, level string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("text", "debug")
	}
	return defaultLogger
}
