// Package config defines the application configuration and its resolution
// chain: CLI flags take priority over environment variables, which take
// priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/primecalc/primecalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "PRIMECALC_"

// Default configuration values.
const (
	DefaultTimeout = 5 * time.Minute
	DefaultAddr    = ":8080"
	DefaultMaxN    = 1_000_000_000
)

// ─────────────────────────────────────────────────────────────────────────────
// Configuration Structure
// ─────────────────────────────────────────────────────────────────────────────

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// Fn is the function to invoke in one-shot mode, with Args as its
	// raw positional arguments. Empty when a host mode flag is set.
	Fn   string
	Args []string

	// Workers is the worker pool size. Zero selects an adaptive default
	// based on the host hardware.
	Workers int

	// Timeout bounds the whole run.
	Timeout time.Duration

	// Addr is the HTTP listen address for --serve.
	Addr string

	// MaxN caps the accepted input magnitude on the HTTP surface.
	MaxN uint64

	// Host modes. At most one of Serve, REPL, TUI is set.
	Serve bool
	REPL  bool
	TUI   bool

	// Async makes one-shot countPrimes go through the callback path.
	Async bool

	Quiet   bool
	Verbose bool
	NoColor bool
}

// ─────────────────────────────────────────────────────────────────────────────
// Parsing and Validation
// ─────────────────────────────────────────────────────────────────────────────

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags not explicitly set.
// Returns flag.ErrHelp when help was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	config := AppConfig{
		Timeout: DefaultTimeout,
		Addr:    DefaultAddr,
		MaxN:    DefaultMaxN,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&config.Workers, "workers", 0, "Worker pool size (0 = adaptive)")
	fs.IntVar(&config.Workers, "w", 0, "Worker pool size (short form)")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Global timeout (e.g. 30s, 5m)")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "HTTP listen address for --serve")
	fs.Uint64Var(&config.MaxN, "max-n", DefaultMaxN, "Maximum accepted input on the HTTP API")
	fs.BoolVar(&config.Serve, "serve", false, "Run the HTTP API server")
	fs.BoolVar(&config.REPL, "repl", false, "Run the interactive REPL")
	fs.BoolVar(&config.TUI, "tui", false, "Run the terminal dashboard")
	fs.BoolVar(&config.Async, "async", false, "Use the callback path for countPrimes")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&config.Quiet, "q", false, "Suppress progress output (short form)")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging (short form)")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options] [function [args...]]\n\n", programName)
		fmt.Fprintf(errWriter, "Functions: countPrimes, isPrime, fibonacci, hashPassword, sumArray,\n")
		fmt.Fprintf(errWriter, "           countPrimesPromise\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config, err
	}

	applyEnvOverrides(&config, fs)

	if rest := fs.Args(); len(rest) > 0 {
		config.Fn = rest[0]
		config.Args = rest[1:]
	}

	if err := validate(&config); err != nil {
		return config, err
	}
	return ApplyAdaptiveWorkers(config), nil
}

// validate rejects configurations that cannot be acted on.
func validate(config *AppConfig) error {
	if config.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %v", config.Timeout)
	}
	if config.Workers < 0 {
		return apperrors.NewConfigError("workers must be non-negative, got %d", config.Workers)
	}
	if config.MaxN == 0 {
		return apperrors.NewConfigError("max-n must be positive")
	}

	modes := 0
	for _, on := range []bool{config.Serve, config.REPL, config.TUI} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("at most one of --serve, --repl, --tui may be set")
	}
	if modes > 0 && config.Fn != "" {
		return apperrors.NewConfigError("function %q cannot be combined with a host mode flag", config.Fn)
	}
	if config.Async && config.Fn != "countPrimes" {
		return apperrors.NewConfigError("--async applies only to countPrimes")
	}
	return nil
}
