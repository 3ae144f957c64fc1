package binding

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/primecalc/primecalc/internal/errors"
	"github.com/primecalc/primecalc/internal/worker"
)

func newTestModule(t *testing.T) (*Module, *worker.Loop) {
	t.Helper()
	pool := worker.NewPool(2)
	t.Cleanup(pool.Close)
	loop := worker.NewLoop()
	t.Cleanup(loop.Close)
	return NewDefaultModule(pool, loop), loop
}

// wantArgumentError asserts that err is an ArgumentError with the exact
// message the call surface promises.
func wantArgumentError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want ArgumentError %q, got nil", message)
	}
	var argErr apperrors.ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("want ArgumentError, got %T: %v", err, err)
	}
	if err.Error() != message {
		t.Errorf("error message = %q, want %q", err.Error(), message)
	}
}

func TestDefaultModuleExports(t *testing.T) {
	m, _ := newTestModule(t)

	want := []string{
		"countPrimes", "countPrimesAsync", "countPrimesPromise",
		"fibonacci", "hashPassword", "isPrime", "sumArray",
	}
	got := m.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCountPrimesCall(t *testing.T) {
	m, _ := newTestModule(t)

	t.Run("counts primes", func(t *testing.T) {
		v, err := m.Call("countPrimes", uint64(100))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != uint64(25) {
			t.Errorf("countPrimes(100) = %v, want 25", v)
		}
	})

	t.Run("accepts float arguments", func(t *testing.T) {
		v, err := m.Call("countPrimes", float64(10))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != uint64(4) {
			t.Errorf("countPrimes(10.0) = %v, want 4", v)
		}
	})

	t.Run("rejects missing argument", func(t *testing.T) {
		_, err := m.Call("countPrimes")
		wantArgumentError(t, err, "Number expected")
	})

	t.Run("rejects non-number", func(t *testing.T) {
		_, err := m.Call("countPrimes", "ten")
		wantArgumentError(t, err, "Number expected")
	})

	t.Run("rejects negative number", func(t *testing.T) {
		_, err := m.Call("countPrimes", -5)
		wantArgumentError(t, err, "Number expected")
	})

	t.Run("rejects fractional number", func(t *testing.T) {
		_, err := m.Call("countPrimes", 10.5)
		wantArgumentError(t, err, "Number expected")
	})
}

func TestIsPrimeCall(t *testing.T) {
	m, _ := newTestModule(t)

	v, err := m.Call("isPrime", uint64(17))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if v != true {
		t.Errorf("isPrime(17) = %v, want true", v)
	}

	_, err = m.Call("isPrime", []any{17})
	wantArgumentError(t, err, "Number expected")
}

func TestFibonacciCall(t *testing.T) {
	m, _ := newTestModule(t)

	t.Run("small result is numeric", func(t *testing.T) {
		v, err := m.Call("fibonacci", uint64(10))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != float64(55) {
			t.Errorf("fibonacci(10) = %v (%T), want 55.0", v, v)
		}
	})

	t.Run("large result is decimal string", func(t *testing.T) {
		v, err := m.Call("fibonacci", uint64(100))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != "354224848179261915075" {
			t.Errorf("fibonacci(100) = %v, want 354224848179261915075", v)
		}
	})

	t.Run("rejects non-number", func(t *testing.T) {
		_, err := m.Call("fibonacci", nil)
		wantArgumentError(t, err, "Number expected")
	})
}

func TestHashPasswordCall(t *testing.T) {
	m, _ := newTestModule(t)

	t.Run("hashes with given rounds", func(t *testing.T) {
		v, err := m.Call("hashPassword", "hunter2", uint64(1000))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		s, ok := v.(string)
		if !ok || len(s) != 16 {
			t.Errorf("hashPassword() = %v (%T), want 16-char string", v, v)
		}
	})

	t.Run("rejects missing iterations", func(t *testing.T) {
		_, err := m.Call("hashPassword", "hunter2")
		wantArgumentError(t, err, "String and Number expected")
	})

	t.Run("rejects swapped arguments", func(t *testing.T) {
		_, err := m.Call("hashPassword", uint64(1000), "hunter2")
		wantArgumentError(t, err, "String and Number expected")
	})
}

func TestSumArrayCall(t *testing.T) {
	m, _ := newTestModule(t)

	t.Run("sums numeric elements", func(t *testing.T) {
		v, err := m.Call("sumArray", []any{1.0, 2.0, 3.0})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != float64(6) {
			t.Errorf("sumArray = %v, want 6", v)
		}
	})

	t.Run("skips non-numeric elements", func(t *testing.T) {
		v, err := m.Call("sumArray", []any{1.0, "two", 3.0, nil, true})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != float64(4) {
			t.Errorf("sumArray = %v, want 4", v)
		}
	})

	t.Run("accepts float slices", func(t *testing.T) {
		v, err := m.Call("sumArray", []float64{1.5, 2.5})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != float64(4) {
			t.Errorf("sumArray = %v, want 4", v)
		}
	})

	t.Run("rejects non-array", func(t *testing.T) {
		_, err := m.Call("sumArray", 42)
		wantArgumentError(t, err, "Array expected")
	})
}

func TestCountPrimesAsyncCall(t *testing.T) {
	t.Run("delivers result through the loop", func(t *testing.T) {
		m, _ := newTestModule(t)

		done := make(chan uint64, 1)
		cb := worker.CountCallback(func(err error, count uint64) {
			if err != nil {
				t.Errorf("callback error = %v", err)
			}
			done <- count
		})

		v, err := m.Call("countPrimesAsync", uint64(100), cb)
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if v != nil {
			t.Errorf("countPrimesAsync returned %v, want nil", v)
		}

		select {
		case count := <-done:
			if count != 25 {
				t.Errorf("count = %d, want 25", count)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("callback never delivered")
		}
	})

	t.Run("accepts a plain function callback", func(t *testing.T) {
		m, _ := newTestModule(t)

		done := make(chan uint64, 1)
		_, err := m.Call("countPrimesAsync", uint64(10), func(err error, count uint64) {
			done <- count
		})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}

		select {
		case count := <-done:
			if count != 4 {
				t.Errorf("count = %d, want 4", count)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("callback never delivered")
		}
	})

	t.Run("rejects missing callback", func(t *testing.T) {
		m, _ := newTestModule(t)
		_, err := m.Call("countPrimesAsync", uint64(100))
		wantArgumentError(t, err, "Number and callback expected")
	})

	t.Run("rejects non-callback second argument", func(t *testing.T) {
		m, _ := newTestModule(t)
		_, err := m.Call("countPrimesAsync", uint64(100), "notafunc")
		wantArgumentError(t, err, "Number and callback expected")
	})

	t.Run("rejects non-number with callback error message", func(t *testing.T) {
		m, _ := newTestModule(t)
		_, err := m.Call("countPrimesAsync", "ten", worker.CountCallback(func(error, uint64) {}))
		wantArgumentError(t, err, "Number and callback expected")
	})
}

func TestCountPrimesPromiseCall(t *testing.T) {
	m, _ := newTestModule(t)

	t.Run("returns an awaitable future", func(t *testing.T) {
		v, err := m.Call("countPrimesPromise", uint64(1000))
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		fut, ok := v.(*worker.Future)
		if !ok {
			t.Fatalf("countPrimesPromise returned %T, want *worker.Future", v)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result, err := fut.Await(ctx)
		if err != nil {
			t.Fatalf("Await() error = %v", err)
		}
		if result != uint64(168) {
			t.Errorf("countPrimesPromise(1000) = %v, want 168", result)
		}
	})

	t.Run("rejects non-number", func(t *testing.T) {
		_, err := m.Call("countPrimesPromise", true)
		wantArgumentError(t, err, "Number expected")
	})
}
