// Package logging builds the application's slog logger: text output to
// stderr or to a size-rotated file, with credential attributes redacted.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level     string
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// New returns a logger and the closer of its output. The closer is a no-op
// when logging to stderr. An unknown level logs a warning and uses info.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, levelErr := ParseLevel(opts.Level)

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		writer, err := NewRotatingWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, nil, err
		}
		out, closer = writer, writer
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	logger := slog.New(NewRedactingHandler(handler))
	if levelErr != nil {
		logger.Warn("logging: using info level", "error", levelErr)
	}
	return logger, closer, nil
}

// ParseLevel maps debug/info/warn/error to a slog level; empty means info.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}

func NewRotatingWriter(file string, maxSizeMB, maxFiles int) (*lumberjack.Logger, error) {
	if file == "" {
		return nil, fmt.Errorf("rotation file path must not be empty")
	}

	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxFiles,
		Compress:   false,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
