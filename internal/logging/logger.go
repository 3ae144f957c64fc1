package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates an error field with the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
// It supports structured fields as well as the printf-style methods some
// third-party libraries expect.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Printf(format string, v ...any)
	Println(v ...any)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	l zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{l: l}
}

// NewLogger creates a ZerologAdapter writing JSON lines to w, tagged with a
// component field.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	l := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{l: l}
}

// NewDefaultLogger creates the standard process logger writing to stderr.
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr, "primecalc")
}

// Debug logs a message at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	ev := z.l.Debug()
	applyFields(ev, fields)
	ev.Msg(msg)
}

// Info logs a message at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	ev := z.l.Info()
	applyFields(ev, fields)
	ev.Msg(msg)
}

// Error logs a message at error level with an attached error.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	ev := z.l.Error().AnErr("error", err)
	applyFields(ev, fields)
	ev.Msg(msg)
}

// Printf logs a formatted message at info level.
func (z *ZerologAdapter) Printf(format string, v ...any) {
	z.l.Info().Msgf(format, v...)
}

// Println logs its arguments at info level, space-separated.
func (z *ZerologAdapter) Println(v ...any) {
	z.l.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// applyFields attaches structured fields to a zerolog event, dispatching on
// the concrete value type.
func applyFields(ev *zerolog.Event, fields []Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev.Str(f.Key, v)
		case int:
			ev.Int(f.Key, v)
		case int64:
			ev.Int64(f.Key, v)
		case uint64:
			ev.Uint64(f.Key, v)
		case float64:
			ev.Float64(f.Key, v)
		case bool:
			ev.Bool(f.Key, v)
		case error:
			ev.AnErr(f.Key, v)
		default:
			ev.Interface(f.Key, v)
		}
	}
}

// StdLoggerAdapter adapts the standard library log.Logger to the Logger
// interface. It exists as a dependency-free fallback for tests and tooling.
type StdLoggerAdapter struct {
	l *log.Logger
}

// NewStdLoggerAdapter wraps an existing standard library logger.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{l: l}
}

// Debug logs a message with a [DEBUG] prefix.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	s.l.Println(appendFields("[DEBUG] "+msg, fields))
}

// Info logs a message with an [INFO] prefix.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	s.l.Println(appendFields("[INFO] "+msg, fields))
}

// Error logs a message with an [ERROR] prefix and the attached error.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	line := "[ERROR] " + msg
	if err != nil {
		line += " error=" + err.Error()
	}
	s.l.Println(appendFields(line, fields))
}

// Printf logs a formatted message.
func (s *StdLoggerAdapter) Printf(format string, v ...any) {
	s.l.Printf(format, v...)
}

// Println logs its arguments.
func (s *StdLoggerAdapter) Println(v ...any) {
	s.l.Println(v...)
}

// appendFields renders fields as key=value pairs after the message.
func appendFields(msg string, fields []Field) string {
	var b strings.Builder
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
