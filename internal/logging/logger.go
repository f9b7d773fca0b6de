// Package logging holds the process-wide structured logger.
//
// Call Init once at startup; GetLogger falls back to a WARN level text
// logger on stderr when Init was never called, so packages may log from
// tests without setup. Stdout is never used: it belongs to the REPL.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
	logFile  *os.File
)

type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

type Config struct {
	Level      LogLevel
	OutputPath string // empty for stderr
	Format     string // "json" or "text"
}

func ParseLevel(s string) (LogLevel, error) {
	switch lvl := LogLevel(strings.ToUpper(s)); lvl {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return lvl, nil
	default:
		return "", fmt.Errorf("unknown log level: %s", s)
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Init replaces the global logger. A previously opened log file is closed.
func Init(config Config) error {
	var writer io.Writer = os.Stderr
	var file *os.File

	if config.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o750); err != nil {
			return err
		}
		f, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		writer = f
		file = f
	}

	opts := &slog.HandlerOptions{Level: config.Level.slogLevel()}
	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logger = slog.New(handler)
	logFile = file
	return nil
}

// Close releases the log file, if any, and resets to the default logger.
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	var err error
	if logFile != nil {
		err = logFile.Close()
		logFile = nil
	}
	logger = nil
	return err
}

func GetLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return logger
}

func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

func WithTable(path string) *slog.Logger {
	return GetLogger().With("table", path)
}
