package binding

import (
	"github.com/primecalc/primecalc/internal/compute"
	apperrors "github.com/primecalc/primecalc/internal/errors"
	"github.com/primecalc/primecalc/internal/worker"
)

// Expected-type messages for the call surface. Each function carries one
// message covering its whole argument tuple.
const (
	expectNumber         = "Number"
	expectStringNumber   = "String and Number"
	expectArray          = "Array"
	expectNumberCallback = "Number and callback"
)

// callbackArg extracts args[i] as a completion callback.
func callbackArg(args []any, i int, expected string) (worker.CountCallback, error) {
	if i >= len(args) {
		return nil, apperrors.NewArgumentError(expected)
	}
	switch v := args[i].(type) {
	case worker.CountCallback:
		return v, nil
	case func(error, uint64):
		return worker.CountCallback(v), nil
	default:
		return nil, apperrors.NewArgumentError(expected)
	}
}

// mustRegister panics on registration failure. The default table is built
// from constant names at startup, so a failure is a programming error.
func mustRegister(m *Module, name string, fn Func) {
	if err := m.Register(name, fn); err != nil {
		panic(err)
	}
}

// NewDefaultModule builds the standard export table backed by the given pool
// for asynchronous work. Completion callbacks are delivered through disp.
func NewDefaultModule(pool *worker.Pool, disp worker.Dispatcher) *Module {
	m := NewModule()

	mustRegister(m, "countPrimes", func(args []any) (any, error) {
		max, err := uintArg(args, 0, expectNumber)
		if err != nil {
			return nil, err
		}
		return compute.CountPrimes(max), nil
	})

	mustRegister(m, "isPrime", func(args []any) (any, error) {
		n, err := uintArg(args, 0, expectNumber)
		if err != nil {
			return nil, err
		}
		return compute.IsPrime(n), nil
	})

	mustRegister(m, "fibonacci", func(args []any) (any, error) {
		n, err := uintArg(args, 0, expectNumber)
		if err != nil {
			return nil, err
		}
		return compute.Fibonacci(n), nil
	})

	mustRegister(m, "hashPassword", func(args []any) (any, error) {
		password, err := stringArg(args, 0, expectStringNumber)
		if err != nil {
			return nil, err
		}
		iterations, err := uintArg(args, 1, expectStringNumber)
		if err != nil {
			return nil, err
		}
		return compute.HashPassword(password, iterations), nil
	})

	mustRegister(m, "sumArray", func(args []any) (any, error) {
		xs, err := arrayArg(args, 0, expectArray)
		if err != nil {
			return nil, err
		}
		return compute.SumArray(xs), nil
	})

	mustRegister(m, "countPrimesAsync", func(args []any) (any, error) {
		max, err := uintArg(args, 0, expectNumberCallback)
		if err != nil {
			return nil, err
		}
		onDone, err := callbackArg(args, 1, expectNumberCallback)
		if err != nil {
			return nil, err
		}
		worker.CountPrimesAsync(pool, disp, max, onDone)
		return nil, nil
	})

	mustRegister(m, "countPrimesPromise", func(args []any) (any, error) {
		max, err := uintArg(args, 0, expectNumber)
		if err != nil {
			return nil, err
		}
		return worker.CountPrimesPromise(pool, max), nil
	})

	return m
}
