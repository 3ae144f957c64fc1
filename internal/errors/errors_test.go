package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// TestArgumentError_Message verifies the expected-type message format used at
// the call boundary.
func TestArgumentError_Message(t *testing.T) {
	tests := []struct {
		expected string
		want     string
	}{
		{"Number", "Number expected"},
		{"String and Number", "String and Number expected"},
		{"Array", "Array expected"},
		{"Number and callback", "Number and callback expected"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			err := NewArgumentError(tt.expected)
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

// TestIsArgumentError verifies detection through wrapping.
func TestIsArgumentError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		if !IsArgumentError(NewArgumentError("Number")) {
			t.Error("IsArgumentError should be true for ArgumentError")
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := WrapError(NewArgumentError("Array"), "calling sumArray")
		if !IsArgumentError(wrapped) {
			t.Error("IsArgumentError should see through wrapping")
		}
	})

	t.Run("other error", func(t *testing.T) {
		if IsArgumentError(errors.New("boom")) {
			t.Error("IsArgumentError should be false for unrelated errors")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if IsArgumentError(nil) {
			t.Error("IsArgumentError(nil) should be false")
		}
	})
}

// TestConfigError verifies message formatting.
func TestConfigError(t *testing.T) {
	err := NewConfigError("invalid workers: %d", -1)
	if err.Error() != "invalid workers: -1" {
		t.Errorf("Error() = %q", err.Error())
	}
}

// TestWrapError verifies %w wrapping semantics.
func TestWrapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil) should be nil")
		}
	})

	t.Run("preserves chain", func(t *testing.T) {
		base := errors.New("base")
		wrapped := WrapError(base, "while doing %s", "work")
		if !errors.Is(wrapped, base) {
			t.Error("wrapped error should match base via errors.Is")
		}
		want := "while doing work: base"
		if wrapped.Error() != want {
			t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
		}
	})
}

// TestIsContextError verifies both context error kinds are recognized.
func TestIsContextError(t *testing.T) {
	if !IsContextError(context.Canceled) {
		t.Error("context.Canceled should be a context error")
	}
	if !IsContextError(context.DeadlineExceeded) {
		t.Error("context.DeadlineExceeded should be a context error")
	}
	if !IsContextError(fmt.Errorf("wrapped: %w", context.Canceled)) {
		t.Error("wrapped context errors should be recognized")
	}
	if IsContextError(errors.New("other")) {
		t.Error("unrelated errors are not context errors")
	}
}

// TestExitCodeFor maps error classes to exit codes.
func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"argument", NewArgumentError("Number"), ExitErrorArgument},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
