package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zephyrtronium/calc/internal/config"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig().Logging
	cfg.Level = "info"
	log, _, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown", zap.String("expr", "1+2"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "1+2")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig().Logging
	cfg.Level = "debug"
	cfg.Format = "json"
	log, _, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	log.Debug("evaluated", zap.Float64("result", 3))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "evaluated", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, 3.0, entry["result"])
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	var buf bytes.Buffer
	cfg := config.DefaultConfig().Logging
	cfg.Level = "info"
	cfg.Output = "file"
	cfg.FilePath = path
	log, _, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	log.Info("to the file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
	assert.Zero(t, buf.Len(), "file output wrote to stderr")
}

func TestNewNone(t *testing.T) {
	cfg := config.DefaultConfig().Logging
	cfg.Output = "none"
	cfg.Level = "nonsense"
	log, closer, err := New(cfg)
	require.NoError(t, err)
	log.Error("discarded")
	assert.NoError(t, closer())
}

func TestCloseReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	cfg := config.DefaultConfig().Logging
	cfg.Level = "info"
	cfg.Output = "file"
	cfg.FilePath = path
	log, closer, err := newLogger(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info("before close")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	// A second close is harmless.
	assert.NoError(t, closer())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.LoggingConfig)
		want   string
	}{
		{name: "level", modify: func(c *config.LoggingConfig) { c.Level = "loud" }, want: "logging level"},
		{name: "file path", modify: func(c *config.LoggingConfig) { c.Output = "both" }, want: "needs a file path"},
		{name: "output", modify: func(c *config.LoggingConfig) { c.Output = "printer" }, want: "unknown logging output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig().Logging
			tt.modify(&cfg)
			_, _, err := newLogger(cfg, &strings.Builder{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
