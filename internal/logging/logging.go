// Package logging provides structured logging for inkwell components.
//
// Logger wraps a zerolog.Logger, so call sites use zerolog's event API:
//
//	log := logging.Default().WithComponent("highlight")
//	log.Warn().Err(err).Int("line", i).Msg("parse failed")
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity level of a log message.
type LogLevel = zerolog.Level

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug = zerolog.DebugLevel
	// LevelInfo is for general informational messages.
	LevelInfo = zerolog.InfoLevel
	// LevelWarn is for warning messages.
	LevelWarn = zerolog.WarnLevel
	// LevelError is for error messages.
	LevelError = zerolog.ErrorLevel
)

// ParseLevel parses a level name. Unknown names yield LevelInfo.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config configures the logger.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Console selects human-readable output instead of JSON.
	Console bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger provides structured logging.
type Logger struct {
	zerolog.Logger
}

// New creates a new logger with the given configuration.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	zl := zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
	return &Logger{Logger: zl}
}

// Nop returns a logger that discards all output.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With().Interface(key, value).Logger()}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With().Str("component", component).Logger()}
}

// SetLevel returns a copy of the logger with a new minimum level.
func (l *Logger) SetLevel(level LogLevel) *Logger {
	return &Logger{Logger: l.Level(level)}
}

// defaultLogger is the process-wide logger instance.
var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Default returns the process-wide logger, creating one with
// DefaultConfig on first use.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(DefaultConfig())
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
// Should be called early in application startup.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// OrDefault returns l, or the process-wide logger when l is nil.
func OrDefault(l *Logger) *Logger {
	if l == nil {
		return Default()
	}
	return l
}
