// Package logging provides structured logging utilities.
//
// Logs are formatted in Maven-style with colors:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a structured logger for the given level.
func NewLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: lvl,
	}

	// Use Maven-style handler for better readability
	handler := NewMavenHandler(os.Stdout, opts)

	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger with a system prefix (e.g., "api", "roster", "ftp").
// This is useful for creating scoped loggers that can be injected into other layers.
func NewLoggerWithSystem(level, system string) *slog.Logger {
	return NewLogger(level).With("system", system)
}
