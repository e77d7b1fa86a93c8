package splatpack

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with splatpack-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCount adds a gaussian-count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogEncode logs one encoding run.
func (l *Logger) LogEncode(ctx context.Context, count, width, height, bytes int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"count", count,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "encode completed",
		"count", count,
		"plane_width", width,
		"plane_height", height,
		"archive_bytes", bytes,
		"elapsed", elapsed,
	)
}
