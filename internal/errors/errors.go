package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes reported to the OS. ExitCodeFor maps errors onto
// these values.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorArgument = 3   // argument-type error at the call boundary
	ExitErrorConfig   = 4   // invalid flags or environment
	ExitErrorCanceled = 130 // interrupted, conventionally 128+SIGINT
)

// ArgumentError is the single call-boundary error kind: a required argument
// is missing or of the wrong shape/type. The message names the expected
// type(s), e.g. "Number expected" or "String and Number expected".
//
// Argument errors are always raised synchronously at the call site, even for
// asynchronous entry points; they are never delivered through a completion
// notification.
type ArgumentError struct {
	// Expected names the expected type or type tuple, e.g. "Number" or
	// "String and Number".
	Expected string
}

// Error returns the error message for an ArgumentError.
//
// Returns:
//   - string: The error message string, e.g. "Number expected".
func (e ArgumentError) Error() string { return e.Expected + " expected" }

// NewArgumentError creates an ArgumentError naming the expected type.
//
// Parameters:
//   - expected: The expected type description, e.g. "Number".
//
// Returns:
//   - error: A new ArgumentError instance.
func NewArgumentError(expected string) error {
	return ArgumentError{Expected: expected}
}

// IsArgumentError reports whether err is (or wraps) an ArgumentError.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error chain contains an ArgumentError.
func IsArgumentError(err error) bool {
	var argErr ArgumentError
	return errors.As(err, &argErr)
}

// ConfigError means the user gave the program an invalid flag, value, or
// combination of modes. The program cannot proceed but nothing failed.
type ConfigError struct {
	Message string
}

// Error returns the configuration error message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a fmt.Sprintf format and args.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments for the format string.
//
// Returns:
//   - error: The resulting ConfigError value.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// WrapError adds context to err with %w so the chain stays visible to
// errors.Is and errors.As. A nil err returns nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code that should be
// reported to the OS. A nil error maps to ExitSuccess.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case IsArgumentError(err):
		return ExitErrorArgument
	default:
		var cfgErr ConfigError
		if errors.As(err, &cfgErr) {
			return ExitErrorConfig
		}
		return ExitErrorGeneric
	}
}
