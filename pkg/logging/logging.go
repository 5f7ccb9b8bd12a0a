// Package logging configures the process-wide slog logger used by the CLI
// and, at debug level, by the scanners.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Configure installs the global slog logger. level is one of "debug",
// "info", "warn" (or "warning"), "error" (anything else falls back to
// info); format is
// "json" for structured output or "text" for human-readable output.
// output defaults to stderr when nil.
func Configure(level, format string, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
