// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive use of the function registry, along with terminal
// formatting helpers shared with the one-shot command path.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/primecalc/primecalc/internal/binding"
	"github.com/primecalc/primecalc/internal/ui"
	"github.com/primecalc/primecalc/internal/worker"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each call.
	Timeout time.Duration
	// Quiet disables the wait spinner on asynchronous calls.
	Quiet bool
}

// REPL represents an interactive calculator session over the function
// registry.
type REPL struct {
	config REPLConfig
	module *binding.Module
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance bound to the given module.
func NewREPL(module *binding.Module, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		module: module,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"primecalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🧮 Prime Calculator - Interactive Mode%s                %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scount <n>%s      - Count primes below n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sprime <n>%s      - Test whether n is prime\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfib <n>%s        - Compute the n-th Fibonacci number\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shash <s> <k>%s   - Hash string s with k rounds\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssum <x,y,..>%s   - Sum the numeric entries of a list\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sasync <n>%s      - Count primes via the callback path\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spromise <n>%s    - Count primes via the future path\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s           - List registered functions\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "count", "c":
		r.cmdNumeric("countPrimes", args)
	case "prime", "p":
		r.cmdNumeric("isPrime", args)
	case "fib", "f":
		r.cmdNumeric("fibonacci", args)
	case "hash":
		r.cmdHash(args)
	case "sum":
		r.cmdSum(args)
	case "async":
		r.cmdAsync(args)
	case "promise":
		r.cmdPromise(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Try to interpret as a number for a quick prime count
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.call("countPrimes", n)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdNumeric handles commands taking a single numeric argument.
func (r *REPL) cmdNumeric(fn string, args []string) {
	n, ok := r.parseNumber(args)
	if !ok {
		return
	}
	r.call(fn, n)
}

// cmdHash handles the "hash" command.
func (r *REPL) cmdHash(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: hash <string> <iterations>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	iterations, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[1], ui.ColorReset())
		return
	}
	r.call("hashPassword", args[0], iterations)
}

// cmdSum handles the "sum" command. Non-numeric entries pass through and are
// skipped by the sum itself.
func (r *REPL) cmdSum(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: sum <x,y,z>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	parts := strings.Split(strings.Join(args, ","), ",")
	xs := make([]any, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			xs = append(xs, f)
		} else {
			xs = append(xs, p)
		}
	}
	r.call("sumArray", xs)
}

// cmdAsync handles the "async" command. The callback arrives on the
// completion loop, so the prompt waits for it before continuing.
func (r *REPL) cmdAsync(args []string) {
	n, ok := r.parseNumber(args)
	if !ok {
		return
	}

	start := time.Now()
	done := make(chan struct{})
	_, err := r.module.Call("countPrimesAsync", n, func(err error, count uint64) {
		defer close(done)
		if err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		r.printResult(strconv.FormatUint(count, 10), time.Since(start))
	})
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	<-done
}

// cmdPromise handles the "promise" command.
func (r *REPL) cmdPromise(args []string) {
	n, ok := r.parseNumber(args)
	if !ok {
		return
	}

	v, err := r.module.Call("countPrimesPromise", n)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fut := v.(*worker.Future)

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	var result any
	if r.config.Quiet {
		result, err = fut.Await(ctx)
	} else {
		result, err = AwaitWithSpinner(ctx, fut, fmt.Sprintf("counting primes below %d...", n))
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.printResult(FormatValue(result), time.Since(start))
}

// cmdList lists the registered functions.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sRegistered functions:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.module.List() {
		fmt.Fprintf(r.out, "  %s%s%s\n", ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	quiet := "no"
	if r.config.Quiet {
		quiet = "yes"
	}
	fmt.Fprintf(r.out, "  Quiet:      %s%s%s\n", ui.ColorCyan(), quiet, ui.ColorReset())
	fmt.Fprintf(r.out, "  Functions:  %s%d%s\n", ui.ColorCyan(), len(r.module.List()), ui.ColorReset())
	fmt.Fprintln(r.out)
}

// call invokes a registered function and prints the outcome.
func (r *REPL) call(fn string, args ...any) {
	start := time.Now()
	result, err := r.module.Call(fn, args...)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.printResult(FormatValue(result), time.Since(start))
}

// parseNumber extracts a single numeric argument.
func (r *REPL) parseNumber(args []string) (uint64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: <command> <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return n, true
}

// printResult displays a result value with its timing.
func (r *REPL) printResult(value string, duration time.Duration) {
	fmt.Fprintf(r.out, "%s= %s%s  %s(%s)%s\n",
		ui.ColorGreen(), value, ui.ColorReset(),
		ui.ColorGrey(), FormatExecutionDuration(duration), ui.ColorReset())
}
