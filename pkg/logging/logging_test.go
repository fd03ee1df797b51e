package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, got, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo},
	}

	for _, test := range tests {
		if got := test.level.SlogLevel(); got != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, got, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	level, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Info("test-subsystem", "test message %d", 42)
	Error("test-subsystem", errors.New("boom"), "failed")

	output := buf.String()
	assert.Contains(t, output, "test message 42")
	assert.Contains(t, output, "subsystem=test-subsystem")
	assert.Contains(t, output, "error=boom")
}

func TestCLILevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
}

func TestInitForShell(t *testing.T) {
	ch := InitForShell(LevelWarn)
	defer func() {
		var buf bytes.Buffer
		InitForCLI(LevelInfo, &buf)
	}()

	Info("Shell", "filtered")
	Warn("Shell", "kept %s", "warning")

	select {
	case entry := <-ch:
		assert.Equal(t, LevelWarn, entry.Level)
		assert.Equal(t, "Shell", entry.Subsystem)
		assert.Equal(t, "kept warning", entry.Message)
	case <-time.After(time.Second):
		t.Fatal("expected a log entry on the shell channel")
	}

	CloseShellChannel()
	_, open := <-ch
	assert.False(t, open, "channel should be closed")
}

func TestLogEntry_String(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2024, 1, 1, 10, 11, 12, 0, time.UTC),
		Level:     LevelError,
		Subsystem: "Runner",
		Message:   "launch failed",
		Err:       errors.New("no such file"),
	}

	line := entry.String()
	assert.True(t, strings.HasPrefix(line, "10:11:12 ERROR [Runner] launch failed"))
	assert.True(t, strings.HasSuffix(line, ": no such file"))
}
