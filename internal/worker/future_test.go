package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// TestFuture_SettleOnce verifies the single-resolution invariant under
// concurrent settle attempts.
func TestFuture_SettleOnce(t *testing.T) {
	f := NewFuture()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				f.settle(i, nil)
			} else {
				f.settle(nil, errors.New("loser"))
			}
		}()
	}
	wg.Wait()

	value, err, settled := f.Peek()
	if !settled {
		t.Fatal("future should be settled")
	}
	// Exactly one of value/err won; both set would violate the contract.
	if value != nil && err != nil {
		t.Errorf("future carries both value (%v) and error (%v)", value, err)
	}

	// A second read observes the identical outcome.
	v2, e2, _ := f.Peek()
	if v2 != value || !errors.Is(e2, err) && e2 != err {
		t.Error("outcome changed between reads")
	}
}

// TestFuture_Await verifies blocking resolution.
func TestFuture_Await(t *testing.T) {
	f := NewFuture()

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.settle(uint64(4), nil)
	}()

	value, err := f.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if value.(uint64) != 4 {
		t.Errorf("Await value = %v, want 4", value)
	}
}

// TestFuture_AwaitContext verifies a context deadline releases the waiter
// without settling the future.
func TestFuture_AwaitContext(t *testing.T) {
	f := NewFuture()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Await error = %v, want DeadlineExceeded", err)
	}

	if _, _, settled := f.Peek(); settled {
		t.Error("context expiry must not settle the future")
	}

	// A late settle is still observable.
	f.settle("late", nil)
	value, err := f.Await(context.Background())
	if err != nil || value != "late" {
		t.Errorf("late outcome = (%v, %v), want (late, nil)", value, err)
	}
}

// TestFuture_Peek verifies the non-blocking probe.
func TestFuture_Peek(t *testing.T) {
	f := NewFuture()
	if _, _, settled := f.Peek(); settled {
		t.Error("fresh future should not report settled")
	}

	f.settle(nil, errors.New("boom"))
	_, err, settled := f.Peek()
	if !settled || err == nil {
		t.Error("Peek should observe the rejection")
	}
}
