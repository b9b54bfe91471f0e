// Package logging provides structured logging utilities built on log/slog.
// It offers constructors with consistent configuration and helpers for
// propagating loggers and request IDs through contexts.
package logging

import (
	"context"
	"log/slog"
	"os"

	"news-digest/internal/handler/http/requestid"
)

// levelFromEnv maps the LOG_LEVEL environment variable to a slog.Level.
// Supported values: debug, info, warn, error. Default: info.
func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
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

// NewLogger creates a new structured logger with JSON output.
// The log level is controlled via the LOG_LEVEL environment variable.
func NewLogger() *slog.Logger {
	level := levelFromEnv()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		// Add source code location for warn and error levels
		AddSource: level <= slog.LevelWarn,
	})
	return slog.New(handler)
}

// NewTextLogger creates a new structured logger with human-readable text
// output, intended for local development and the one-shot CLI.
func NewTextLogger() *slog.Logger {
	level := levelFromEnv()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// WithRequestID returns a logger that includes the request ID from the
// context, enabling request tracing across log entries.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

type contextKey string

const loggerContextKey contextKey = "logger"

// FromContext retrieves the logger from the context, falling back to the
// default logger when none is stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}
