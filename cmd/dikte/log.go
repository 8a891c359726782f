package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/dikte/internal/config"
)

// setupLogger installs the default slog logger. The TUI owns the terminal,
// so records go to a file.
func setupLogger(cfg config.LogConfig) (func(), error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	path := config.DefaultLogPath()
	if cfg.File != nil && strings.TrimSpace(*cfg.File) != "" {
		path = *cfg.File
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.SetDefault(newLogger(f, level))
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(value *string) (slog.Level, error) {
	if value == nil {
		return slog.LevelInfo, nil
	}
	switch strings.ToLower(strings.TrimSpace(*value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug, info, warn, error)", *value)
	}
}
