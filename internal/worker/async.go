package worker

import (
	"context"

	"github.com/primecalc/primecalc/internal/compute"
)

// CountCallback receives the completion of an asynchronous prime count:
// err nil and the count on success, the error otherwise. It fires exactly
// once per job, including when the count is zero.
type CountCallback func(err error, count uint64)

// CountPrimesAsync schedules prime counting on the pool and returns
// immediately. The callback is invoked exactly once on disp — never
// synchronously within the submitting call stack, and never on the worker
// goroutine.
//
// Argument validation happens at the binding layer before this call; by the
// time a job exists, the only failure left is pool rejection, which is
// still delivered through the callback to preserve the exactly-once
// invariant.
func CountPrimesAsync(pool *Pool, disp Dispatcher, max uint64, onDone CountCallback) *Job {
	job := pool.Submit("countPrimes", func(context.Context) (any, error) {
		return compute.CountPrimes(max), nil
	})

	go func() {
		value, err := job.Future().Await(context.Background())
		disp.Dispatch(func() {
			if err != nil {
				onDone(err, 0)
				return
			}
			onDone(nil, value.(uint64))
		})
	}()

	return job
}

// CountPrimesPromise schedules prime counting on the pool and returns the
// unresolved Future immediately. The computation never runs synchronously
// inside this call, even for trivially small inputs; the future resolves
// with a uint64 count once the worker finishes.
func CountPrimesPromise(pool *Pool, max uint64) *Future {
	job := pool.Submit("countPrimes", func(context.Context) (any, error) {
		return compute.CountPrimes(max), nil
	})
	return job.Future()
}
