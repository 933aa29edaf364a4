package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewJSONConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Format: "JSON", Console: &buf})
	require.NoError(t, err)

	ForResolution(log, "github", "github.com").Info("resolved", KeyCategory, "repo")
	log.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "resolved", entry["msg"])
	assert.Equal(t, "github", entry[KeyProvider])
	assert.Equal(t, "github.com", entry[KeyHost])
	assert.Equal(t, "repo", entry[KeyCategory])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestScopeHelpers(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Console: &buf})
	require.NoError(t, err)

	ForComponent(log, "worker").Info("a")
	ForPlugin(log, "reddit").Info("b")

	out := buf.String()
	assert.Contains(t, out, "component=worker")
	assert.Contains(t, out, "plugin=reddit")
}

func TestNewWritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")
	log, err := New(Options{Console: &bytes.Buffer{}, Dir: dir})
	require.NoError(t, err)

	log.Info("to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Local().Format(dayLayout)+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestDailyFileRotates(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 23, 59, 0, 0, time.Local)
	f, err := openDailyFile(dir, func() time.Time { return now })
	require.NoError(t, err)

	_, err = f.Write([]byte("first\n"))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = f.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	first, err := os.ReadFile(filepath.Join(dir, "2026-03-01.log"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "2026-03-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))
	assert.Equal(t, "second\n", string(second))

	_, err = f.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestCloseWithoutFile(t *testing.T) {
	var nilLogger *Logger
	assert.NoError(t, nilLogger.Close())

	log, err := New(Options{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.NoError(t, log.Close())
}
