// Package logger builds the structured logger used across the app.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output format for logs
type Format string

const (
	// FormatJSON outputs logs in JSON format (production default)
	FormatJSON Format = "json"
	// FormatText outputs logs in human-readable text format
	FormatText Format = "text"
)

// New creates a logger writing to w. Level is one of debug, info, warn,
// error (default info); format is json or text (default json).
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch ParseFormat(format) {
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// FromEnv creates a stdout logger from LOG_LEVEL and LOG_FORMAT
func FromEnv() *slog.Logger {
	return New(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// ParseLevel maps a level name to a slog level
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat maps a format name to a Format
func ParseFormat(s string) Format {
	if strings.ToLower(strings.TrimSpace(s)) == "text" {
		return FormatText
	}
	return FormatJSON
}

// SetDefault sets the given logger as the default slog logger
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
