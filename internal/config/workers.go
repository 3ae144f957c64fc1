package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (PRIMECALC_WORKERS)
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveWorkers fills in the worker pool size based on hardware
// characteristics when it is still at its zero default, preserving any
// user-specified value.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkerCount()
	}
	return cfg
}

// EstimateWorkerCount provides a heuristic worker pool size without running
// benchmarks. The routines are CPU-bound, so going past the physical core
// count only adds scheduling overhead.
func EstimateWorkerCount() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 8:
		return numCPU - 1
	default:
		return numCPU - 2
	}
}
