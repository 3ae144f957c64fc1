// Package app wires configuration, the worker pool, and the function
// registry into the four run modes: one-shot call, REPL, HTTP server, and
// TUI dashboard.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/primecalc/primecalc/internal/binding"
	"github.com/primecalc/primecalc/internal/cli"
	"github.com/primecalc/primecalc/internal/config"
	apperrors "github.com/primecalc/primecalc/internal/errors"
	"github.com/primecalc/primecalc/internal/logging"
	"github.com/primecalc/primecalc/internal/server"
	"github.com/primecalc/primecalc/internal/tui"
	"github.com/primecalc/primecalc/internal/ui"
	"github.com/primecalc/primecalc/internal/worker"
)

// Application represents the primecalc application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "primecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Logger == nil {
		a.Logger = logging.NewDefaultLogger()
	}

	pool := worker.NewPool(a.Config.Workers, worker.WithLogger(a.Logger))
	defer pool.Close()

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.TUI:
		return tui.Run(ctx, pool, a.Config, Version)
	case a.Config.Serve:
		return a.runServe(ctx, pool)
	case a.Config.REPL:
		return a.runREPL(pool, out)
	case a.Config.Fn != "":
		return a.runCall(ctx, pool, out)
	default:
		fmt.Fprintln(a.ErrWriter, "no function given; try --repl, --serve, --tui, or <function> <args>")
		return apperrors.ExitErrorConfig
	}
}

// runServe runs the HTTP API until the context is canceled.
func (a *Application) runServe(ctx context.Context, pool *worker.Pool) int {
	loop := worker.NewLoop()
	defer loop.Close()

	module := binding.NewDefaultModule(pool, loop)

	security := server.DefaultSecurityConfig()
	security.MaxNValue = a.Config.MaxN

	srv := server.NewServer(a.Config.Addr, module, security, a.Logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		a.Logger.Error("server terminated", err)
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}

// runREPL runs the interactive session until the user exits.
func (a *Application) runREPL(pool *worker.Pool, out io.Writer) int {
	loop := worker.NewLoop()
	defer loop.Close()

	module := binding.NewDefaultModule(pool, loop)

	repl := cli.NewREPL(module, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Quiet:   a.Config.Quiet,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
