// Package logging provides structured logging for the reconciliation
// service.
//
// Logs are formatted as bracketed console lines with colors when
// attached to a terminal:
//
//	[LEVEL] [SCOPE] [HH:MM:SS] message key=value
package logging

import (
	"log/slog"
	"os"

	"github.com/amajor13/sme-recon-mvp/internal/infrastructure/config"
)

// NewLogger creates a structured logger based on config
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := NewConsoleHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// NewLoggerWithScope creates a logger with a scope prefix (e.g. "api",
// "recon", "cli"), useful for telling subsystems apart in shared output.
func NewLoggerWithScope(cfg config.LoggingConfig, scope string) *slog.Logger {
	return NewLogger(cfg).With("scope", scope)
}
