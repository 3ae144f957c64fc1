package worker

import (
	"context"
	"sync/atomic"
)

// JobState tracks a pending job through its lifecycle. The only paths are
// Created → Queued → Running → Completed and Created → Rejected; there is
// no cancellation state.
type JobState int32

const (
	// JobCreated is the initial state, before the pool accepts the job.
	JobCreated JobState = iota
	// JobQueued means the pool accepted the job and it awaits a worker.
	JobQueued
	// JobRunning means a worker goroutine is executing the computation.
	JobRunning
	// JobCompleted is terminal: the completion notification has been settled.
	JobCompleted
	// JobRejected is terminal: the job was refused before scheduling
	// (e.g. submitted to a closed pool) and its future carries the error.
	JobRejected
)

// String returns the state name for logs and dashboards.
func (s JobState) String() string {
	switch s {
	case JobCreated:
		return "created"
	case JobQueued:
		return "queued"
	case JobRunning:
		return "running"
	case JobCompleted:
		return "completed"
	case JobRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Job is a pending unit of background work: the captured computation plus
// the one-shot completion cell. The pool owns the job for its lifetime;
// callers hold only the Future.
type Job struct {
	name   string
	run    func(context.Context) (any, error)
	state  atomic.Int32
	future *Future
}

func newJob(name string, run func(context.Context) (any, error)) *Job {
	return &Job{name: name, run: run, future: NewFuture()}
}

// Name identifies the computation for logs, traces, and metrics.
func (j *Job) Name() string { return j.name }

// State returns the job's current lifecycle state.
func (j *Job) State() JobState { return JobState(j.state.Load()) }

// Future returns the job's completion cell.
func (j *Job) Future() *Future { return j.future }

func (j *Job) setState(s JobState) { j.state.Store(int32(s)) }
