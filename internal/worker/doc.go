// Package worker implements the asynchronous offload shim: a process-wide
// pool of worker goroutines that runs computations off the caller's
// execution context and delivers exactly one completion notification per
// job, either through a one-shot Future or through a callback dispatched
// back onto the caller's loop.
//
// There is deliberately no cancellation, retry, or inter-job coordination:
// once queued, a job runs to completion, and jobs share no mutable state.
package worker
