package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("key", "value"), "key", "value"},
		{"Int", Int("count", 42), "count", 42},
		{"Int64", Int64("big", int64(-7)), "big", int64(-7)},
		{"Uint64", Uint64("n", 12345678901234567890), "n", uint64(12345678901234567890)},
		{"Float64", Float64("duration", 3.14159), "duration", 3.14159},
		{"Bool", Bool("flag", true), "flag", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}

	t.Run("Err uses the error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})
}

// TestNewLogger verifies the component field and message appear in output.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-component")

	logger.Info("hello")
	output := buf.String()

	if !strings.Contains(output, "test-component") {
		t.Errorf("output should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("output should include message, got: %s", output)
	}
}

// TestZerologAdapter_Info tests structured field rendering at info level.
func TestZerologAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{"no fields", "test message", nil, []string{"test message", "info"}},
		{"string field", "user login", []Field{String("user", "alice")}, []string{"user login", "alice"}},
		{"multiple fields", "request processed", []Field{String("method", "GET"), Int("status", 200)}, []string{"request processed", "GET", "200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Error tests error-level output with attached errors.
func TestZerologAdapter_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Error("operation failed", errors.New("connection refused"), Int("retry", 3))

	output := buf.String()
	for _, want := range []string{"operation failed", "connection refused", "error", "3"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestZerologAdapter_Debug requires the debug level to be enabled on the
// wrapped logger.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	logger := NewZerologAdapter(zl)

	logger.Debug("debug message", String("key", "value"))

	output := buf.String()
	if !strings.Contains(output, "debug message") || !strings.Contains(output, "debug") {
		t.Errorf("debug output incomplete, got: %s", output)
	}
}

// TestZerologAdapter_PrintfPrintln tests the printf-style compatibility methods.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("formatted %s %d", "message", 42)
	if !strings.Contains(buf.String(), "formatted message 42") {
		t.Errorf("Printf should format message, got: %s", buf.String())
	}

	buf.Reset()
	logger.Println("hello", "world")
	if !strings.Contains(buf.String(), "hello world") {
		t.Errorf("Println should join arguments, got: %s", buf.String())
	}
}

// TestApplyFields exercises all supported field value types.
func TestApplyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "str", Value: "hello"}, "hello"},
		{"int", Field{Key: "num", Value: 42}, "42"},
		{"int64", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"bool", Field{Key: "flag", Value: true}, "true"},
		{"error", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"interface", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Info("test", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestStdLoggerAdapter tests the stdlib fallback adapter.
func TestStdLoggerAdapter(t *testing.T) {
	t.Run("Info has prefix and fields", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

		adapter.Info("user action", String("user", "bob"))

		output := buf.String()
		for _, want := range []string{"[INFO]", "user action", "user", "bob"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("Error includes the cause", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

		adapter.Error("db failed", errors.New("timeout"), String("db", "mysql"))

		output := buf.String()
		for _, want := range []string{"[ERROR]", "db failed", "timeout", "mysql"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("Debug has prefix", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

		adapter.Debug("trace", Int("line", 42))

		output := buf.String()
		if !strings.Contains(output, "[DEBUG]") || !strings.Contains(output, "42") {
			t.Errorf("debug output incomplete, got: %s", output)
		}
	})
}

// TestLoggerInterface verifies both adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = NewDefaultLogger()
}
