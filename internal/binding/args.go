package binding

import (
	"math"

	apperrors "github.com/primecalc/primecalc/internal/errors"
)

// Argument coercion for the dynamically-typed call surface. Each helper
// returns an ArgumentError naming the expected type tuple when the argument
// is missing or of the wrong shape; the message is shared across all
// arguments of a function, matching the original boundary's behavior.

// uintArg extracts args[i] as an unsigned integer. Any Go numeric kind is
// accepted as long as it is non-negative and integral.
func uintArg(args []any, i int, expected string) (uint64, error) {
	if i >= len(args) {
		return 0, apperrors.NewArgumentError(expected)
	}
	switch v := args[i].(type) {
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, apperrors.NewArgumentError(expected)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, apperrors.NewArgumentError(expected)
		}
		return uint64(v), nil
	case int32:
		if v < 0 {
			return 0, apperrors.NewArgumentError(expected)
		}
		return uint64(v), nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint64 {
			return 0, apperrors.NewArgumentError(expected)
		}
		return uint64(v), nil
	default:
		return 0, apperrors.NewArgumentError(expected)
	}
}

// stringArg extracts args[i] as a string.
func stringArg(args []any, i int, expected string) (string, error) {
	if i >= len(args) {
		return "", apperrors.NewArgumentError(expected)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", apperrors.NewArgumentError(expected)
	}
	return s, nil
}

// arrayArg extracts args[i] as a sequence. []float64 is accepted as a
// convenience for hosts that already hold homogeneous numeric slices.
func arrayArg(args []any, i int, expected string) ([]any, error) {
	if i >= len(args) {
		return nil, apperrors.NewArgumentError(expected)
	}
	switch v := args[i].(type) {
	case []any:
		return v, nil
	case []float64:
		xs := make([]any, len(v))
		for j, f := range v {
			xs[j] = f
		}
		return xs, nil
	default:
		return nil, apperrors.NewArgumentError(expected)
	}
}
