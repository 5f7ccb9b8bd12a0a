package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Configure("info", "json", &buf)

	slog.Info("test message", "key", "value")

	output := buf.String()
	require.Contains(t, output, `"msg":"test message"`)
	require.Contains(t, output, `"key":"value"`)
}

func TestConfigure_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	Configure("debug", "text", &buf)

	slog.Debug("debug message")

	require.Contains(t, buf.String(), "debug message")
}

func TestConfigure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure("warn", "text", &buf)

	slog.Info("info message")
	slog.Warn("warn message")

	output := buf.String()
	require.NotContains(t, output, "info message")
	require.Contains(t, output, "warn message")
}

func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	require.Equal(t, slog.LevelInfo, parseLevel("shouting"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
}
