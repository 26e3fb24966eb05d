package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json output honours the level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "warn", "json")
		require.NoError(t, err)

		logger.Info("dropped")
		logger.Warn("kept", "table", "article")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
		assert.Equal(t, "kept", rec["msg"])
		assert.Equal(t, "article", rec["table"])
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "info", "text")
		require.NoError(t, err)

		logger.Info("hello", "k", "v")
		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("unknown format is an error", func(t *testing.T) {
		t.Parallel()
		_, err := NewLogger(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})
}
