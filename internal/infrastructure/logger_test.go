package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarretangbazo/economics-senior-thesis/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}
}

func TestCreateLogger_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "pipeline.log")

	logger, err := createLogger(config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("processing started", slog.Int("files", 3))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"processing started"`)
	assert.Contains(t, string(data), `"files":3`)
}

func TestCreateLogger_ConsoleDefault(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "console",
	})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
