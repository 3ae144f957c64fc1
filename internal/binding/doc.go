// Package binding is the host-facing call surface: a registry of named
// functions taking dynamically-typed arguments, the way a scripting runtime
// sees native code. It owns argument marshalling and validation; the
// underlying computations live in internal/compute, and background
// scheduling in internal/worker.
package binding
