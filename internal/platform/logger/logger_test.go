// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/directions-api/internal/config"
	"github.com/phrazzld/directions-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level        string
		debugEnabled bool
		infoEnabled  bool
		errorEnabled bool
	}{
		{"debug", true, true, true},
		{"DEBUG", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l := logger.New(config.ServerConfig{LogLevel: tt.level}, buf)

			ctx := context.Background()
			assert.Equal(t, tt.debugEnabled, l.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoEnabled, l.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.errorEnabled, l.Enabled(ctx, slog.LevelError))
			assert.Empty(t, buf.String(), "a valid level should not produce a warning")
		})
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	buf := &logger.TestLogBuffer{}
	l := logger.New(config.ServerConfig{LogLevel: "verbose"}, buf)

	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	logger.AssertLogContains(t, buf, "invalid log level configured")
	logger.AssertLogField(t, buf, "configured_level", "verbose")
}

func TestNew_DoesNotReplaceDefault(t *testing.T) {
	t.Parallel()

	before := slog.Default()
	_ = logger.New(config.ServerConfig{LogLevel: "debug"}, &logger.TestLogBuffer{})
	assert.Same(t, before, slog.Default())
}

func TestNew_WritesJSON(t *testing.T) {
	t.Parallel()

	buf := &logger.TestLogBuffer{}
	l := logger.New(config.ServerConfig{LogLevel: "info"}, buf)
	l.Info("route computed", slog.String("profile", "driving-car"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "route computed", entries[0]["msg"])
	assert.Equal(t, "driving-car", entries[0]["profile"])
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	fallback, _ := logger.NewTestLogger(t)
	scoped, buf := logger.NewTestLogger(t)
	scoped = scoped.With(slog.String("trace_id", "abc"))

	_, ok := logger.FromContext(context.Background())
	assert.False(t, ok)
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))

	ctx := logger.WithLogger(context.Background(), scoped)
	got, ok := logger.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, scoped, got)

	logger.FromContextOrDefault(ctx, fallback).Debug("inside request")
	logger.AssertLogField(t, buf, "trace_id", "abc")
}
