package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig = "CONFIG" // invalid or missing configuration, fatal at startup
	ErrSensor = "SENSOR" // a telemetry category could not be read this tick
	ErrSink   = "SINK"   // the matrix daemon could not be reached or rejected a frame
	ErrRender = "RENDER" // a frame could not be drawn or encoded
	ErrLock   = "LOCK"   // another ledmon instance holds the lock
)

// Error is a structured error carrying a code, a one-line message, an optional
// remediation hint, and the underlying cause. It prints as:
//
//	✗ <What failed>
//
//	  <Why it failed>
//
//	  <How to fix it>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrSensor.
// Most wrapped errors at runtime come from telemetry reads.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSensor,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Field creates a CONFIG error for a single offending configuration field.
func Field(path, problem, suggestion string) *Error {
	return &Error{
		Code:       ErrConfig,
		Message:    fmt.Sprintf("%s: %s", path, problem),
		Suggestion: suggestion,
	}
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Short returns the message and cause on a single line, for log records.
func (e *Error) Short() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var lmErr *Error
	if errors.As(err, &lmErr) {
		return lmErr.Code == code
	}
	return false
}

// Brief renders any error on one line. Structured errors use Short; other
// errors use their own text.
func Brief(err error) string {
	if err == nil {
		return ""
	}
	var lmErr *Error
	if errors.As(err, &lmErr) {
		return lmErr.Short()
	}
	return err.Error()
}
