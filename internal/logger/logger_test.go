package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.WithWidget("battery").Warn("probe slow")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "battery", entry["widget"])
	assert.Equal(t, "probe slow", entry["message"])
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	log.Error(errors.New("no such binary"), "dependency check failed")

	assert.Contains(t, buf.String(), "no such binary")
	assert.Contains(t, buf.String(), "dependency check failed")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger

	log.Info("ignored")
	log.Error(errors.New("x"), "ignored")
	assert.Nil(t, log.WithWidget("battery"))
	assert.Nil(t, log.WithFields(map[string]any{"k": "v"}))
}

func TestNewFileLoggerCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "powerkit.log")

	log, err := NewFileLogger(path, "info")
	require.NoError(t, err)
	log.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
