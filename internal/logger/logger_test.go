package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("nonsense"))
}

func TestNew_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn, "prod")

	log.Info("dropped")
	log.Warn("kept", slog.Int("id", 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, float64(3), entry["id"])
}

func TestNew_TextInDev(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "dev")

	log.Debug("hello", slog.String("k", "v"))

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k=v")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(out))))
}
