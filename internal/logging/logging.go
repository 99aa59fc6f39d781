// Package logging builds the file-backed slog logger shared by the CLI and
// the dashboard. The dashboard owns the terminal, so nothing is written to
// stderr once the program starts.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger wraps a slog.Logger with the file it writes to and the level
// variable that can be changed at runtime.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
	file  *os.File
}

// New opens (or creates) the log file at path in append mode.
func New(path, level string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriter(f, level)
	l.file = f
	return l, nil
}

// NewWriter builds a logger on an arbitrary writer.
func NewWriter(w io.Writer, level string) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{
		Logger: slog.New(handler),
		Level:  lv,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard, "info")
}

// SetLevel switches between info and debug.
func (l *Logger) SetLevel(level string) {
	l.Level.Set(ParseLevel(level))
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps "debug" to slog.LevelDebug and everything else to Info.
func ParseLevel(level string) slog.Level {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
