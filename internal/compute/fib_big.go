//go:build !gmp

package compute

import "math/big"

// fibExact computes F(n) with math/big, returning the exact decimal string.
// The loop reuses its two accumulators; each call owns its memory.
func fibExact(n uint64) string {
	if n <= 1 {
		return big.NewInt(int64(n)).String()
	}
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b.String()
}
