// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/productgen/internal/config"
	"github.com/phrazzld/productgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		name        string
		level       string
		wantDebug   bool
		wantInfo    bool
		wantWarning bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true, wantWarning: true},
		{name: "info", level: "info", wantInfo: true, wantWarning: true},
		{name: "upper case warn", level: "WARN", wantWarning: true},
		{name: "invalid defaults to info", level: "verbose", wantInfo: true, wantWarning: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level, Port: 8080}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tc.wantDebug, strings.Contains(out, "debug message"))
			assert.Equal(t, tc.wantInfo, strings.Contains(out, "info message"))
			assert.Equal(t, tc.wantWarning, strings.Contains(out, "warn message"))
			assert.Same(t, l, slog.Default())
		})
	}
}

func TestSetupWithWriter_JSONFields(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	l.Info("generation started", "task", "title")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "generation started", entries[0]["msg"])
	assert.Equal(t, "title", entries[0]["task"])
	assert.Equal(t, "productgen", entries[0]["service"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel(" Error ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, level)

	level, ok = logger.ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fallback, _ := logger.GetTestLogger(t)

	assert.Nil(t, logger.FromContext(ctx))
	assert.Same(t, fallback, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(ctx, nil))

	scoped, buf := logger.GetTestLogger(t)
	ctx = logger.WithLogger(ctx, scoped)
	assert.Same(t, scoped, logger.FromContext(ctx))
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))

	logger.FromContext(ctx).Info("scoped message")
	logger.AssertLogContains(t, buf, "scoped message")

	assert.Empty(t, logger.RequestIDFromContext(ctx))
	ctx = logger.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", logger.RequestIDFromContext(ctx))
}
