package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewStructuredLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	level := slog.LevelDebug
	logger := NewStructuredLogger("bbinstall", "v1.2.3", Options{Level: &level, JSON: true, Output: &buf})

	logger.Debug("directory created", "path", "/p/cache")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "directory created", entry["msg"])
	assert.Equal(t, "bbinstall", entry["module"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "/p/cache", entry["path"])
}

func TestNewStructuredLogger_LevelFiltersDebug(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	var buf bytes.Buffer
	logger := NewStructuredLogger("bbinstall", "dev", Options{Output: &buf})

	logger.Info("skipped")
	logger.Warn("unknown option")

	out := buf.String()
	assert.NotContains(t, out, "skipped")
	assert.True(t, strings.Contains(out, "unknown option"), "expected warn entry, got %q", out)
}

func TestSetDefaultStructuredLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv("LOG_LEVEL", "error")

	SetDefaultStructuredLogger("bbinstall", "dev")

	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}
