// Package logger provides structured logging functionality
package logger

import (
	"log/slog"
	"os"
	"sync"
)

// Logger wraps slog.Logger for application-wide logging
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// New creates a new structured logger
func New(cfg Config) *Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithComponent returns a logger with a component attribute
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With("component", component),
	}
}

// WithRun returns a logger with run context attributes
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{
		Logger: l.With("run_id", runID),
	}
}

// WithTrack returns a logger with a track title attribute
func (l *Logger) WithTrack(title string) *Logger {
	return &Logger{
		Logger: l.With("track", title),
	}
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Default returns the shared default logger
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(Config{
			Level:  "info",
			Format: "text",
		})
	})
	return defaultLogger
}
