// Package logutil provides a structured logging abstraction built on top of slog.
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger (the CLI's --debug flag does this)
//   - Set ENTRA_DEBUG=true in the environment
//
// Logs go to stderr so they never mix with command output on stdout.
package logutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
)

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "ENTRA_DEBUG"

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	currentLevel           = LevelInfo
	isStructured           = false
	outputWriter io.Writer = os.Stderr
)

func init() {
	SetupLogger(false, false)
}

// SetupLogger configures the global logger.
//
// When debug is true, debug-level messages are emitted. When structured is
// true, logs are JSON-formatted; otherwise a human-readable text format is
// used. Safe for concurrent use.
func SetupLogger(debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	if debug {
		currentLevel = LevelDebug
	} else {
		currentLevel = LevelInfo
	}
	isStructured = structured
	outputWriter = os.Stderr

	rebuildLocked()
}

// SetupLoggerWithWriter configures the logger with a custom writer.
// This is useful for testing or redirecting logs.
func SetupLoggerWithWriter(w io.Writer, debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	if debug {
		currentLevel = LevelDebug
	} else {
		currentLevel = LevelInfo
	}
	isStructured = structured
	outputWriter = w

	rebuildLocked()
}

// rebuildLocked recreates the global logger. Caller must hold mu.
func rebuildLocked() {
	level := slog.LevelInfo
	if currentLevel == LevelDebug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isStructured {
		handler = slog.NewJSONHandler(outputWriter, opts)
	} else {
		handler = slog.NewTextHandler(outputWriter, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// IsDebugEnabled returns true if debug logging is enabled, either
// programmatically or via the ENTRA_DEBUG environment variable.
func IsDebugEnabled() bool {
	mu.RLock()
	level := currentLevel
	mu.RUnlock()
	return level == LevelDebug || os.Getenv(EnvDebug) == "true"
}

// Debug logs a debug message with optional key-value pairs.
// Debug messages are only logged when debug mode is enabled.
func Debug(msg string, args ...any) {
	if IsDebugEnabled() {
		Logger().Debug(msg, args...)
	}
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// Logger returns the underlying slog.Logger for advanced usage.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}
