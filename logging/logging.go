// Package logging builds the application's structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel converts a config level name into a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New returns a text logger at level. When file is set, records are appended
// to it; otherwise they go to fallback, which may be nil to discard them.
// The returned close function releases the file and is always safe to call.
func New(file, level string, fallback io.Writer) (*slog.Logger, func() error, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	options := &slog.HandlerOptions{Level: parsed}
	noop := func() error { return nil }

	if file == "" {
		if fallback == nil {
			return slog.New(slog.DiscardHandler), noop, nil
		}
		return slog.New(slog.NewTextHandler(fallback, options)), noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	logFile, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return slog.New(slog.NewTextHandler(logFile, options)), logFile.Close, nil
}
