package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"

	"github.com/primecalc/primecalc/internal/logging"
)

// ErrPoolClosed is the rejection error for jobs submitted after Close.
var ErrPoolClosed = errors.New("worker pool is closed")

var tracer = otel.Tracer("primecalc/worker")

// Pool is the process-wide set of worker execution contexts. It is created
// once at startup, passed explicitly to job-submission calls (no ambient
// global), and torn down at process exit via Close.
//
// Concurrency is capped with a weighted semaphore rather than a fixed
// goroutine set: jobs are rare and long, so paying a goroutine per job and
// gating on the semaphore keeps the queue implicit in the scheduler.
type Pool struct {
	sem *semaphore.Weighted
	log logging.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// PoolOption configures a Pool during construction.
type PoolOption func(*Pool)

// WithLogger sets the pool's logger.
func WithLogger(log logging.Logger) PoolOption {
	return func(p *Pool) { p.log = log }
}

// NewPool creates a pool allowing up to workers concurrent jobs.
// workers <= 0 selects runtime.NumCPU().
func NewPool(workers int, opts ...PoolOption) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{sem: semaphore.NewWeighted(int64(workers))}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logging.NewDefaultLogger()
	}
	return p
}

// Submit hands a computation to the pool and returns its Job immediately.
// The caller's control flow never blocks on the computation; the outcome is
// observable only through the job's Future.
//
// Submitting to a closed pool yields a job in the Rejected state whose
// future is already settled with ErrPoolClosed.
func (p *Pool) Submit(name string, run func(context.Context) (any, error)) *Job {
	job := newJob(name, run)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		job.setState(JobRejected)
		job.future.settle(nil, ErrPoolClosed)
		jobsTotal.WithLabelValues("rejected").Inc()
		return job
	}
	p.wg.Add(1)
	p.mu.Unlock()

	job.setState(JobQueued)
	jobsActive.Inc()

	go p.execute(job)
	return job
}

// execute runs a single job to completion on a worker goroutine. No
// cancellation: once queued, the computation always finishes and settles
// the future exactly once.
func (p *Pool) execute(job *Job) {
	defer p.wg.Done()
	defer jobsActive.Dec()

	// The semaphore context is never canceled, so Acquire can only succeed.
	_ = p.sem.Acquire(context.Background(), 1)
	defer p.sem.Release(1)

	job.setState(JobRunning)

	ctx, span := tracer.Start(context.Background(), "worker.job")
	span.SetAttributes(attribute.String("job.name", job.Name()))

	start := time.Now()
	value, err := job.run(ctx)
	elapsed := time.Since(start)

	jobDuration.Observe(elapsed.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		jobsTotal.WithLabelValues("error").Inc()
		p.log.Error("job failed", err, logging.String("job", job.Name()))
	} else {
		jobsTotal.WithLabelValues("success").Inc()
		p.log.Debug("job completed",
			logging.String("job", job.Name()),
			logging.Float64("seconds", elapsed.Seconds()))
	}
	span.End()

	job.setState(JobCompleted)
	job.future.settle(value, err)
}

// Close marks the pool closed and waits for all in-flight jobs to finish.
// Later Submit calls are rejected. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}
