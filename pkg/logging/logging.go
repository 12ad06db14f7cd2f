// Package logging configures structured logging for log/slog.
//
// Text output goes through tint for colored, human-readable lines; JSON output
// uses the standard slog JSON handler for log collectors.
//
// Usage:
//
//	logging.Setup("info", "text")   // colored logs at INFO
//	logging.Setup("debug", "json")  // JSON logs at DEBUG
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger writing to stderr.
func Setup(level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, ParseLevel(level), format)))
}

// NewHandler builds a handler for the given format: "json" for JSON,
// anything else for tint's colored text.
func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, warn and error to their slog levels; anything else is INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
