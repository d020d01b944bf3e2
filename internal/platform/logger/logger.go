package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/directions-api/internal/config"
)

type contextKey struct{}

// New builds the application's JSON logger from cfg. The logger is returned
// to the caller and never installed as the slog default, so components only
// log through the handle they are given.
//
// An unrecognized level falls back to info and is reported through the new
// logger itself.
func New(cfg config.ServerConfig, w io.Writer) *slog.Logger {
	level, ok := parseLevel(cfg.LogLevel)

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}
	return logger
}

// parseLevel maps a case-insensitive level name to a slog level.
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the request-scoped logger stored in ctx, if any.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	l, ok := ctx.Value(contextKey{}).(*slog.Logger)
	return l, ok && l != nil
}

// FromContextOrDefault returns the request-scoped logger, or fallback when
// ctx carries none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := FromContext(ctx); ok {
		return l
	}
	return fallback
}
