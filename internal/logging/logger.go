// Package logging initializes the application-wide structured logger.
package logging

import (
	"log/slog"
	"os"
)

// Logger is the application-wide structured logger instance.
var Logger *slog.Logger

// InitLogger initializes the global logger with the specified level and format.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func InitLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// base falls back to the process default before InitLogger has run.
func base() *slog.Logger {
	if Logger != nil {
		return Logger
	}
	return slog.Default()
}

// WithUser returns a logger with user_id field.
func WithUser(userID string) *slog.Logger {
	return base().With("user_id", userID)
}

// WithMovie returns a logger with tmdb_id field.
func WithMovie(tmdbID int) *slog.Logger {
	return base().With("tmdb_id", tmdbID)
}

// WithError returns a logger with error field.
func WithError(err error) *slog.Logger {
	return base().With("error", err)
}
