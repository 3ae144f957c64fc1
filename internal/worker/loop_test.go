package worker

import (
	"sync"
	"testing"
	"time"
)

// TestLoop_SerialDelivery verifies that dispatched functions run one at a
// time, in dispatch order, on a single goroutine.
func TestLoop_SerialDelivery(t *testing.T) {
	loop := NewLoop()

	var mu sync.Mutex
	var order []int
	running := 0
	maxRunning := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		loop.Dispatch(func() {
			defer wg.Done()
			mu.Lock()
			running++
			if running > maxRunning {
				maxRunning = running
			}
			order = append(order, i)
			running--
			mu.Unlock()
		})
	}
	wg.Wait()
	loop.Close()

	if maxRunning != 1 {
		t.Errorf("loop ran %d deliveries concurrently, want 1", maxRunning)
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("delivery order[%d] = %d, want %d", i, got, i)
		}
	}
}

// TestLoop_CloseDrains verifies queued deliveries run before Close returns.
func TestLoop_CloseDrains(t *testing.T) {
	loop := NewLoop()

	var mu sync.Mutex
	delivered := 0
	for i := 0; i < 20; i++ {
		loop.Dispatch(func() {
			mu.Lock()
			delivered++
			mu.Unlock()
		})
	}
	loop.Close()

	mu.Lock()
	defer mu.Unlock()
	if delivered != 20 {
		t.Errorf("delivered = %d before Close returned, want 20", delivered)
	}
}

// TestLoop_DispatchAfterClose verifies late dispatches are dropped, not
// deadlocked.
func TestLoop_DispatchAfterClose(t *testing.T) {
	loop := NewLoop()
	loop.Close()

	done := make(chan struct{})
	go func() {
		loop.Dispatch(func() { t.Error("delivery after Close must not run") })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch after Close blocked")
	}
}

// TestLoop_CloseIdempotent verifies repeated Close calls are safe.
func TestLoop_CloseIdempotent(t *testing.T) {
	loop := NewLoop()
	loop.Close()
	loop.Close()
}

// TestDispatcherFunc verifies the function adapter.
func TestDispatcherFunc(t *testing.T) {
	called := false
	var d Dispatcher = DispatcherFunc(func(fn func()) { fn(); called = true })
	d.Dispatch(func() {})
	if !called {
		t.Error("DispatcherFunc should invoke the wrapped function")
	}
}
