// Package logger provides a small logging interface for ledmon components.
// Packages log through Logger without depending on a concrete backend; the
// default backend writes structured records with log/slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// DebugEnv enables debug records when set to any non-empty value.
const DebugEnv = "LEDMON_DEBUG"

var (
	debugForced atomic.Bool
	outputMu    sync.Mutex
	output      io.Writer = os.Stderr
)

// SetDebug forces debug records on regardless of LEDMON_DEBUG.
func SetDebug(on bool) {
	debugForced.Store(on)
}

// DebugEnabled reports whether debug records are emitted.
func DebugEnabled() bool {
	return debugForced.Load() || os.Getenv(DebugEnv) != ""
}

// SetOutput redirects every env logger created afterwards, and the ones already
// created, to w.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

type lockedWriter struct{}

func (lockedWriter) Write(p []byte) (int, error) {
	outputMu.Lock()
	defer outputMu.Unlock()
	return output.Write(p)
}

// envLogger implements Logger on top of slog. Debug records are only written
// when DebugEnabled reports true.
type envLogger struct {
	component string
	slog      *slog.Logger
}

// NewEnvLogger creates a logger tagging every record with component=<component>.
func NewEnvLogger(component string) Logger {
	h := slog.NewTextHandler(lockedWriter{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := slog.New(h)
	if component != "" {
		l = l.With(slog.String("component", component))
	}
	return &envLogger{component: component, slog: l}
}

func (l *envLogger) log(level slog.Level, format string, args ...interface{}) {
	l.slog.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if DebugEnabled() {
		l.log(slog.LevelDebug, format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.log(slog.LevelInfo, format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing. It is safe for concurrent
// use; read Messages only after the code under test has finished logging.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	return l.Count(level) > 0
}

// Count returns how many messages were logged at the given level.
func (l *BufferLogger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.Messages {
		if m.Level == level {
			n++
		}
	}
	return n
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewEnvLogger("")
)

// Default returns the package-level logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// For returns a component logger. When the default logger has been replaced
// (tests, --quiet) the replacement is returned unchanged.
func For(component string) Logger {
	d := Default()
	if _, ok := d.(*envLogger); ok {
		return NewEnvLogger(component)
	}
	return d
}
