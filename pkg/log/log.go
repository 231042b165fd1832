// Package log provides a simple leveled logger built on top of the standard
// library's slog package.
//
// By default, it configures a global logger writing JSON (or text if
// LOG_FORMAT=text) to os.Stderr. The log level is controlled globally via
// SetLevel() and is typically initialized from flags or config in the root
// command. Use SetOutput() to redirect log output in tests; it returns a
// function to restore the original writer.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	logger        *slog.Logger
	globalLeveler           = &slog.LevelVar{} // dynamic level changes without rebuilding handlers
	outputWriter  io.Writer = os.Stderr

	// ErrInvalidLogLevel indicates an invalid log level string was provided.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")
)

func init() {
	globalLeveler.Set(slog.LevelInfo)
	configureLogger()
}

// configureLogger sets up the logger from the current global state
// (outputWriter and globalLeveler).
func configureLogger() {
	opts := &slog.HandlerOptions{Level: globalLeveler}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "text" {
		handler = slog.NewTextHandler(outputWriter, opts)
	} else {
		handler = slog.NewJSONHandler(outputWriter, opts)
	}
	logger = slog.New(handler)
}

// SetOutput changes the output destination for the logger.
// It returns a function that restores the original output writer.
// This is primarily intended for testing.
func SetOutput(w io.Writer) (restore func()) {
	originalWriter := outputWriter
	outputWriter = w
	configureLogger()
	return func() {
		outputWriter = originalWriter
		configureLogger()
	}
}

// Debug logs a debug message with optional key-value pairs
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Level is a log level type compatible with slog.Level, providing a stable
// API for the rest of the codebase.
type Level int8

// Log level definitions.
const (
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SetLevel changes the log level at runtime.
func SetLevel(level Level) {
	globalLeveler.Set(slog.Level(level))
}

// CurrentLevel returns the current log level.
func CurrentLevel() Level {
	return Level(globalLeveler.Level())
}

// ParseLevel parses a string and returns the corresponding Level.
// On parse failure it returns LevelInfo along with ErrInvalidLogLevel.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLogLevel, levelStr)
	}
}
