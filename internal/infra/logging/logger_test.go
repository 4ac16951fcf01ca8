package logging

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_WritesFormattedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "issues.log")
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Slog().With(CategoryKey, "api").Info("request", "method", "GET", "status", 200, "query", "a b")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(content)
	assert.Contains(t, line, "[INFO] [api] request")
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "status=200")
	assert.Contains(t, line, `query="a b"`)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLogger_DefaultCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.log")
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Slog().Warn("config warning", "detail", "unknown section: theme")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[WARN] [app] config warning")
}

func TestLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.log")
	logger := New(path, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	log := logger.Slog()
	log.Debug("debug message")
	log.Info("info message")
	log.Error("error message", "error", errors.New("boom"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "[ERROR]")
	assert.Contains(t, string(content), "error=boom")
}

func TestLogger_Groups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.log")
	logger := New(path, slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	logger.Slog().WithGroup("list").Debug("reload", "page", 2, slog.Group("filters", "status", "Open"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "list.page=2")
	assert.Contains(t, string(content), "list.filters.status=Open")
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)
	logger.Slog().Error("dropped")
	assert.NoError(t, logger.Close())
}

func TestLogger_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.log")
	logger := New(path, slog.LevelInfo)

	logger.Slog().Info("first")
	require.NoError(t, logger.Close())

	// Writing after Close reopens the file.
	logger.Slog().Info("second")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first")
	assert.Contains(t, string(content), "second")
	assert.Equal(t, path, logger.Path())
}
