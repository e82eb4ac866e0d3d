// Package logger wraps slog.Logger with the field names used across codexdb.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop discards everything.
func Noop() *Logger {
	return NewTextLogger(io.Discard, slog.Level(1000))
}

// FromConfig builds a stderr logger from the textual level and format
// found in the config file. Unknown values fall back to info / text.
func FromConfig(level, format string) *Logger {
	lvl := ParseLevel(level)
	if strings.EqualFold(format, "json") {
		return NewJSONLogger(os.Stderr, lvl)
	}
	return NewTextLogger(os.Stderr, lvl)
}

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

// WithSource tags every entry with the catalog source being used.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{Logger: l.Logger.With("source", source)}
}

// LogLoad reports the outcome of loading a catalog.
func (l *Logger) LogLoad(source string, records int, missing bool, err error) {
	switch {
	case err != nil:
		l.Error("catalog load failed", "source", source, "error", err)
	case missing:
		l.Info("catalog not found, starting empty", "source", source)
	default:
		l.Info("catalog loaded", "source", source, "records", records)
	}
}

// LogSave reports the outcome of saving a catalog.
func (l *Logger) LogSave(source string, records int, err error) {
	if err != nil {
		l.Error("catalog save failed", "source", source, "error", err)
		return
	}
	l.Info("catalog saved", "source", source, "records", records)
}
