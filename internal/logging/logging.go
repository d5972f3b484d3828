// Package logging sets up board's file logger. The terminal belongs to the
// UI, so everything goes to a rotating log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DebugEnabled reports whether BOARD_DEBUG is set
func DebugEnabled() bool {
	return os.Getenv("BOARD_DEBUG") != ""
}

// New returns a logger writing to path. Debug output is enabled when debug
// is true or BOARD_DEBUG is set. The returned closer flushes the file.
func New(path string, debug bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return NewWriter(w, debug), w, nil
}

// NewWriter returns a text logger writing to w.
func NewWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug || DebugEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
