package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/primecalc/primecalc/internal/binding"
	"github.com/primecalc/primecalc/internal/cli"
	apperrors "github.com/primecalc/primecalc/internal/errors"
	"github.com/primecalc/primecalc/internal/ui"
	"github.com/primecalc/primecalc/internal/worker"
)

// runCall executes a single function call and prints the result.
func (a *Application) runCall(ctx context.Context, pool *worker.Pool, out io.Writer) int {
	loop := worker.NewLoop()
	defer loop.Close()

	module := binding.NewDefaultModule(pool, loop)

	fn := a.Config.Fn
	if fn == "countPrimes" && a.Config.Async {
		fn = "countPrimesAsync"
	}

	switch fn {
	case "countPrimesAsync":
		return a.callAsync(ctx, module, out)
	case "countPrimesPromise":
		return a.callPromise(ctx, module, out)
	default:
		return a.callSync(module, fn, out)
	}
}

// callSync invokes a function on the calling goroutine.
func (a *Application) callSync(module *binding.Module, fn string, out io.Writer) int {
	start := time.Now()
	result, err := module.Call(fn, buildArgs(fn, a.Config.Args)...)
	if err != nil {
		a.printError(err)
		return apperrors.ExitCodeFor(err)
	}
	a.printResult(out, result, time.Since(start))
	return apperrors.ExitSuccess
}

// callAsync routes the count through the callback path. The completion loop
// delivers the callback, so the call site only waits for the signal.
func (a *Application) callAsync(ctx context.Context, module *binding.Module, out io.Writer) int {
	start := time.Now()
	done := make(chan int, 1)

	_, err := module.Call("countPrimesAsync", append(buildArgs("countPrimesAsync", a.Config.Args),
		func(err error, count uint64) {
			if err != nil {
				a.printError(err)
				done <- apperrors.ExitCodeFor(err)
				return
			}
			a.printResult(out, count, time.Since(start))
			done <- apperrors.ExitSuccess
		})...)
	if err != nil {
		a.printError(err)
		return apperrors.ExitCodeFor(err)
	}

	select {
	case code := <-done:
		return code
	case <-ctx.Done():
		a.printError(ctx.Err())
		return apperrors.ExitCodeFor(ctx.Err())
	}
}

// callPromise routes the count through the future path, waiting with a
// spinner unless quiet mode is on.
func (a *Application) callPromise(ctx context.Context, module *binding.Module, out io.Writer) int {
	start := time.Now()
	v, err := module.Call("countPrimesPromise", buildArgs("countPrimesPromise", a.Config.Args)...)
	if err != nil {
		a.printError(err)
		return apperrors.ExitCodeFor(err)
	}
	fut := v.(*worker.Future)

	var result any
	if a.Config.Quiet {
		result, err = fut.Await(ctx)
	} else {
		result, err = cli.AwaitWithSpinner(ctx, fut, "counting primes...")
	}
	if err != nil {
		a.printError(err)
		return apperrors.ExitCodeFor(err)
	}
	a.printResult(out, result, time.Since(start))
	return apperrors.ExitSuccess
}

// buildArgs converts raw positional strings to the argument types fn expects.
// Values that do not parse pass through as strings so the call boundary
// reports the type mismatch itself.
func buildArgs(fn string, raw []string) []any {
	switch fn {
	case "countPrimes", "isPrime", "fibonacci", "countPrimesAsync", "countPrimesPromise":
		if len(raw) == 0 {
			return nil
		}
		return []any{parseNumberOrKeep(raw[0])}

	case "hashPassword":
		args := make([]any, 0, 2)
		if len(raw) > 0 {
			args = append(args, raw[0])
		}
		if len(raw) > 1 {
			args = append(args, parseNumberOrKeep(raw[1]))
		}
		return args

	case "sumArray":
		if len(raw) == 0 {
			return nil
		}
		parts := strings.Split(strings.Join(raw, ","), ",")
		xs := make([]any, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			xs = append(xs, parseNumberOrKeep(p))
		}
		return []any{xs}

	default:
		args := make([]any, len(raw))
		for i, r := range raw {
			args[i] = parseNumberOrKeep(r)
		}
		return args
	}
}

// parseNumberOrKeep parses a decimal value, keeping the raw string when it is
// not numeric.
func parseNumberOrKeep(raw string) any {
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// printResult writes a result value with its timing.
func (a *Application) printResult(out io.Writer, result any, duration time.Duration) {
	if a.Config.Quiet {
		fmt.Fprintln(out, cli.FormatValue(result))
		return
	}
	fmt.Fprintf(out, "%s%s%s  %s(%s)%s\n",
		ui.ColorGreen(), cli.FormatValue(result), ui.ColorReset(),
		ui.ColorGrey(), cli.FormatExecutionDuration(duration), ui.ColorReset())
}

// printError reports a failed call on the error stream.
func (a *Application) printError(err error) {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
