package compute

import "strconv"

// maxSafeFibIndex is the largest n for which F(n) fits within MaxSafeInteger.
// F(78) = 8944394323791464 < 2^53-1 < F(79) = 14472334024676221.
const maxSafeFibIndex = 78

// Fibonacci returns F(n) as a value safe to hand to a double-based host:
// a float64 while the result is at most MaxSafeInteger, and the exact
// decimal string beyond that boundary.
//
// The recurrence is accumulated iteratively for n steps; the large path runs
// on arbitrary-precision integers (math/big by default, GMP with the gmp
// build tag) so it is exact, never a rounded float.
func Fibonacci(n uint64) any {
	if n <= maxSafeFibIndex {
		return float64(fibSmall(n))
	}
	return fibExact(n)
}

// FibonacciString returns the exact decimal representation of F(n)
// regardless of magnitude.
func FibonacciString(n uint64) string {
	if n <= maxSafeFibIndex {
		return strconv.FormatUint(fibSmall(n), 10)
	}
	return fibExact(n)
}

// fibSmall computes F(n) in machine words. Only valid for
// n <= maxSafeFibIndex, where the result fits both uint64 and the
// safe-integer range of a float64.
func fibSmall(n uint64) uint64 {
	if n <= 1 {
		return n
	}
	a, b := uint64(0), uint64(1)
	for i := uint64(2); i <= n; i++ {
		a, b = b, a+b
	}
	return b
}
