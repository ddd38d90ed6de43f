// Package logging builds the structured loggers used by the addressbook CLI
// and storage backend. Loggers are plain *slog.Logger values; level and
// format come from configuration or the ADDRESSBOOK_LOG_LEVEL and
// ADDRESSBOOK_LOG_FORMAT environment variables.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables consulted when no explicit value is configured.
const (
	EnvLevel  = "ADDRESSBOOK_LOG_LEVEL"
	EnvFormat = "ADDRESSBOOK_LOG_FORMAT"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultLevel keeps the CLI quiet unless something goes wrong.
const DefaultLevel = slog.LevelWarn

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
// An empty name yields DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a logger writing to w. Empty level or format fall back to the
// environment, then to DefaultLevel and FormatText.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if format == "" {
		format = os.Getenv(EnvFormat)
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(h), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
