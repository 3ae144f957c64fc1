package worker

import (
	"context"
	"sync"
)

// Future is a one-shot completion cell. It settles exactly once with either
// a value or an error — never both, never twice — regardless of how many
// goroutines race to settle it.
type Future struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

// NewFuture creates an unsettled Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// settle records the outcome and releases waiters. Calls after the first
// are silently dropped; single-resolution is the cell's whole contract.
func (f *Future) settle(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed once the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done, whichever comes
// first. A context error does not settle the future; the computation keeps
// running and a later Await can still observe its outcome.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.value, f.err
	}
}

// Peek reports the outcome without blocking. settled is false while the
// computation is still in flight.
func (f *Future) Peek() (value any, err error, settled bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		return nil, nil, false
	}
}
