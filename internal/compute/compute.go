// Package compute holds the pure computation routines exposed through the
// binding layer: primality testing, prime counting, Fibonacci, a demo hash,
// and array summation. None of them touch shared state; each call owns its
// working memory for its lifetime.
package compute

import "fmt"

// MaxSafeInteger is the largest integer magnitude exactly representable in a
// standard double-precision float (2^53 - 1). Results above this boundary
// must cross to the host as an exact arbitrary-precision representation to
// avoid silent precision loss.
const MaxSafeInteger = 1<<53 - 1

// IsPrime reports whether n is prime using odd trial division up to
// floor(sqrt(n)) inclusive. Deterministic, O(sqrt(n)), no allocation.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	// i*i <= n avoids a float sqrt and the rounding questions that come
	// with it at the top of the uint64 range.
	for i := uint64(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CountPrimes returns the number of primes in [2, max]. O(max * sqrt(max)).
func CountPrimes(max uint64) uint64 {
	var count uint64
	for i := uint64(2); i <= max; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}

// HashPassword computes a toy multiplicative accumulator over s, repeated
// iterations times, rendered as a 16-digit lowercase hex string.
//
// This is NOT a cryptographic hash. It exists solely to demonstrate string
// marshalling across the host boundary; never use it for real credential
// storage. Use argon2 or bcrypt for anything real.
func HashPassword(s string, iterations uint64) string {
	var hash uint64
	for iter := uint64(0); iter < iterations; iter++ {
		for i := 0; i < len(s); i++ {
			hash = hash*31 + uint64(s[i]) + uint64(i)
		}
	}
	return fmt.Sprintf("%016x", hash)
}

// SumArray sums the numeric elements of xs. Non-numeric elements are
// silently skipped, matching the host-side contract for mixed arrays.
func SumArray(xs []any) float64 {
	var sum float64
	for _, x := range xs {
		if f, ok := AsNumber(x); ok {
			sum += f
		}
	}
	return sum
}

// AsNumber converts any Go numeric value reachable through the binding layer
// to a float64. The second return is false for non-numeric values.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
