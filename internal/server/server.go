// Package server exposes the function registry over an HTTP API with
// Prometheus instrumentation, security headers, and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/primecalc/primecalc/internal/binding"
	apperrors "github.com/primecalc/primecalc/internal/errors"
	"github.com/primecalc/primecalc/internal/logging"
	"github.com/primecalc/primecalc/internal/sysmon"
	"github.com/primecalc/primecalc/internal/worker"
)

// Server timeouts. Compute-heavy calls run under the request context, so the
// write timeout bounds the largest accepted input.
const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 2 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

// Server serves the function registry over HTTP.
type Server struct {
	addr     string
	module   *binding.Module
	metrics  *Metrics
	security SecurityConfig
	logger   logging.Logger
}

// NewServer creates a server for the given module. The security
// configuration caps input magnitude and controls CORS.
func NewServer(addr string, module *binding.Module, security SecurityConfig, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		module:   module,
		metrics:  NewMetrics(),
		security: security,
		logger:   logger,
	}
}

// Routes returns the fully wired handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/call/{fn}", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleCall)))
	mux.HandleFunc("GET /api/v1/functions", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleFunctions)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return apperrors.WrapError(err, "http server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "http server shutdown failed")
	}
	s.logger.Info("http server stopped")
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

// callResponse is the JSON envelope for a successful call.
type callResponse struct {
	Function   string  `json:"function"`
	Result     any     `json:"result"`
	DurationMS float64 `json:"duration_ms"`
}

// errorResponse is the JSON envelope for a failed call.
type errorResponse struct {
	Error string `json:"error"`
}

// handleCall invokes a registered function with arguments taken from the
// query string. The asynchronous callback variant has no HTTP shape; its
// future-based sibling covers the API surface.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	fn := r.PathValue("fn")

	if fn == "countPrimesAsync" {
		s.writeError(w, http.StatusBadRequest,
			"countPrimesAsync is callback-based; use countPrimesPromise over HTTP")
		return
	}

	args, err := s.parseArgs(fn, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := s.module.Call(fn, args...)
	if err != nil {
		status := http.StatusBadRequest
		if !apperrors.IsArgumentError(err) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err.Error())
		return
	}

	// The promise variant hands back a future; resolve it under the
	// request context so a disconnect abandons the wait.
	if fut, ok := result.(*worker.Future); ok {
		result, err = fut.Await(r.Context())
		if err != nil {
			s.writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}

	s.writeJSON(w, http.StatusOK, callResponse{
		Function:   fn,
		Result:     result,
		DurationMS: float64(time.Since(start).Microseconds()) / 1000.0,
	})
}

// handleFunctions lists the registered export names.
func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"functions": s.module.List()})
}

// handleHealth implements a liveness probe with a host resource snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := sysmon.Sample()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"cpu_percent": snap.CPUPercent,
		"mem_percent": snap.MemPercent,
		"goroutines":  snap.Goroutines,
	})
}

// handleMetrics serves Prometheus metrics. Read-only.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("metrics rejected", logging.String("method", r.Method))
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// ─────────────────────────────────────────────────────────────────────────────
// Argument Parsing
// ─────────────────────────────────────────────────────────────────────────────

// parseArgs maps query parameters to the positional arguments of fn.
// Unknown names fall through with no arguments so the registry reports them.
func (s *Server) parseArgs(fn string, r *http.Request) ([]any, error) {
	q := r.URL.Query()

	switch fn {
	case "countPrimes", "isPrime", "fibonacci", "countPrimesPromise":
		n, err := s.uintParam("n", q.Get("n"))
		if err != nil {
			return nil, err
		}
		return []any{n}, nil

	case "hashPassword":
		iterations, err := s.uintParam("iterations", q.Get("iterations"))
		if err != nil {
			return nil, err
		}
		return []any{q.Get("s"), iterations}, nil

	case "sumArray":
		raw := q.Get("xs")
		if raw == "" {
			return []any{[]any{}}, nil
		}
		parts := strings.Split(raw, ",")
		xs := make([]any, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if f, err := strconv.ParseFloat(p, 64); err == nil {
				xs = append(xs, f)
			} else {
				// Non-numeric entries stay in the array; the sum
				// skips them.
				xs = append(xs, p)
			}
		}
		return []any{xs}, nil

	default:
		return nil, nil
	}
}

// uintParam parses a numeric query parameter and enforces the configured
// input cap.
func (s *Server) uintParam(name, raw string) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	if n > s.security.MaxNValue {
		return 0, fmt.Errorf("value %d exceeds the maximum of %d", n, s.security.MaxNValue)
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Instrumentation
// ─────────────────────────────────────────────────────────────────────────────

// statusRecorder captures the response status for metrics labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware tracks active requests, totals and latency around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Response Helpers
// ─────────────────────────────────────────────────────────────────────────────

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.logger.Debug("request rejected",
		logging.Int("status", status), logging.String("reason", msg))
	s.writeJSON(w, status, errorResponse{Error: msg})
}
