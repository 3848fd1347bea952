package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"ERROR", LevelError, false},
		{"invalid", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error %d", 42)

	out := buf.String()
	require.NotContains(t, out, "debug message")
	require.NotContains(t, out, "info message")
	require.Contains(t, out, "[WARN] warn message")
	require.Contains(t, out, "[ERROR] error 42")
}

func TestLogger_EnvVars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oli.log")
	t.Setenv("OLI_LOG_LEVEL", "debug")
	t.Setenv("OLI_LOG_FILE", path)

	l := New()
	require.Equal(t, LevelDebug, l.level)

	l.Debug("slot query %s", "2026-03-15")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "[DEBUG] slot query 2026-03-15")

	// Closing twice is harmless and later writes are dropped.
	require.NoError(t, l.Close())
	l.Error("after close")
}

func TestLogger_Configure(t *testing.T) {
	t.Setenv("OLI_LOG_LEVEL", "")
	t.Setenv("OLI_LOG_FILE", "")

	l := New()
	require.Error(t, l.Configure("loud", ""))
	require.Equal(t, LevelInfo, l.level)

	path := filepath.Join(t.TempDir(), "oli.log")
	require.NoError(t, l.Configure("error", path))
	defer func() { _ = l.Close() }()

	l.Warn("dropped")
	l.Error("kept")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(content), "dropped")
	require.Contains(t, string(content), "kept")

	require.Error(t, l.Configure("", filepath.Join(t.TempDir(), "missing", "dir", "oli.log")))
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)

	Debug("debug %s", "test")
	Info("info %s", "test")
	Warn("warn %s", "test")
	Error("error %s", "test")

	out := buf.String()
	for _, want := range []string{"debug test", "info test", "warn test", "error test"} {
		require.Contains(t, out, want)
	}
}
