package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Field represents a structured logging field as a key/value pair.
// Fields are passed to Logger methods to attach structured context to
// log events without committing to a specific logging backend.
type Field struct {
	// Key is the field name.
	Key string
	// Value is the field value; supported types are handled natively by
	// adapters, everything else falls back to a generic representation.
	Value any
}

// String creates a Field holding a string value.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates a Field holding an int value.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates a Field holding an int64 value.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a Field holding a uint64 value.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a Field holding a float64 value.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a Field holding a bool value.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates a Field holding an error under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the unified logging interface used across components.
// It decouples callers from the underlying logging implementation.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...Field)
	// Warn logs a message at warn level with optional structured fields.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level with the given error and
	// optional structured fields.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted message at info level (log.Printf compatibility).
	Printf(format string, args ...any)
	// Println logs its arguments at info level (log.Println compatibility).
	Println(args ...any)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// Verify interface compliance.
var _ Logger = (*ZerologAdapter)(nil)

// NewZerologAdapter creates a ZerologAdapter wrapping the given zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a Logger writing JSON events to w, tagged with the given
// component name.
func NewLogger(w io.Writer, component string) Logger {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates a Logger writing human-readable output to stderr.
func NewDefaultLogger() Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return &ZerologAdapter{logger: zl}
}

// NewRotatingFileLogger creates a Logger writing JSON events to a
// size-rotated file. Rotation keeps at most maxBackups files of maxSizeMB
// megabytes each.
func NewRotatingFileLogger(path, component string, maxSizeMB, maxBackups int) Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	return NewLogger(w, component)
}

// applyFields attaches structured fields to a zerolog event, dispatching on
// the concrete value type.
func applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case bool:
			ev = ev.Bool(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// Debug logs a message at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Warn logs a message at warn level.
func (a *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(a.logger.Warn(), fields).Msg(msg)
}

// Error logs a message at error level with the given error attached.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (a *ZerologAdapter) Printf(format string, args ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Println logs its arguments at info level.
func (a *ZerologAdapter) Println(args ...any) {
	a.logger.Info().Msg(fmt.Sprintln(args...))
}

// StdLoggerAdapter adapts a standard library *log.Logger to the Logger
// interface. Fields are appended as key=value pairs after the message.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// Verify interface compliance.
var _ Logger = (*StdLoggerAdapter)(nil)

// NewStdLoggerAdapter creates a StdLoggerAdapter wrapping the given logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// formatFields renders fields as " key=value ..." for plain-text output.
func formatFields(fields []Field) string {
	out := ""
	for _, f := range fields {
		out += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	return out
}

// Debug logs a message at debug level.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs a message at info level.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Warn logs a message at warn level.
func (a *StdLoggerAdapter) Warn(msg string, fields ...Field) {
	a.logger.Printf("[WARN] %s%s", msg, formatFields(fields))
}

// Error logs a message at error level.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	a.logger.Printf("[ERROR] %s error=%v%s", msg, err, formatFields(fields))
}

// Printf logs a formatted message at info level.
func (a *StdLoggerAdapter) Printf(format string, args ...any) {
	a.logger.Printf("[INFO] "+format, args...)
}

// Println logs its arguments at info level.
func (a *StdLoggerAdapter) Println(args ...any) {
	a.logger.Printf("[INFO] %s", fmt.Sprintln(args...))
}
