// Package tui implements the terminal dashboard: an interactive prompt over
// the function registry with live job history and system resource gauges.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/primecalc/primecalc/internal/binding"
	"github.com/primecalc/primecalc/internal/cli"
	"github.com/primecalc/primecalc/internal/config"
	apperrors "github.com/primecalc/primecalc/internal/errors"
	"github.com/primecalc/primecalc/internal/sysmon"
	"github.com/primecalc/primecalc/internal/worker"
)

// Messages exchanged with the update loop.
type (
	// TickMsg drives periodic resource sampling.
	TickMsg time.Time

	// SysStatsMsg carries a system resource snapshot.
	SysStatsMsg sysmon.Stats

	// JobDoneMsg reports a finished job back to its history entry.
	JobDoneMsg struct {
		ID       int
		Result   string
		Err      error
		Duration time.Duration
	}
)

// Job entry states.
const (
	entryRunning = iota
	entryDone
	entryFailed
)

// jobEntry is one row in the job history panel.
type jobEntry struct {
	id       int
	label    string
	state    int
	result   string
	duration time.Duration
}

// maxHistory bounds the job history panel.
const maxHistory = 12

// Model is the root bubbletea model for the dashboard.
type Model struct {
	input   textinput.Model
	entries []jobEntry
	nextID  int

	module *binding.Module
	ref    *programRef

	cfg       config.AppConfig
	version   string
	stats     sysmon.Stats
	startTime time.Time

	width  int
	height int
}

// NewModel creates the dashboard model. The function registry is built with
// the update loop as its completion dispatcher, so asynchronous callbacks
// land between keystrokes rather than on worker goroutines.
func NewModel(pool *worker.Pool, cfg config.AppConfig, version string) Model {
	ref := &programRef{}

	ti := textinput.New()
	ti.Placeholder = "count 1000000 | prime 104729 | fib 90 | async 500000 | sum 1,2,3"
	ti.Prompt = "❯ "
	ti.PromptStyle = promptStyle
	ti.Focus()

	return Model{
		input:     ti,
		module:    binding.NewDefaultModule(pool, &teaLoop{ref: ref}),
		ref:       ref,
		cfg:       cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(), sampleSysStatsCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			cmd := m.submit()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.width - 6
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.stats = sysmon.Stats(msg)
		return m, nil

	case completionMsg:
		// Run the bridged callback off the update goroutine; it re-enters
		// through Send.
		return m, func() tea.Msg {
			msg.run()
			return nil
		}

	case JobDoneMsg:
		for i := range m.entries {
			if m.entries[i].id != msg.ID {
				continue
			}
			m.entries[i].duration = msg.Duration
			if msg.Err != nil {
				m.entries[i].state = entryFailed
				m.entries[i].result = msg.Err.Error()
			} else {
				m.entries[i].state = entryDone
				m.entries[i].result = msg.Result
			}
			break
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the prompt line and launches the matching call.
func (m *Model) submit() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return nil
	}

	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		return tea.Quit

	case "count", "c":
		n, ok := m.numericArg(args, line)
		if !ok {
			return nil
		}
		return m.startPromise(n)

	case "async", "a":
		n, ok := m.numericArg(args, line)
		if !ok {
			return nil
		}
		m.startAsync(n)
		return nil

	case "prime", "p":
		n, ok := m.numericArg(args, line)
		if !ok {
			return nil
		}
		return m.startCall(fmt.Sprintf("isPrime(%d)", n), "isPrime", n)

	case "fib", "f":
		n, ok := m.numericArg(args, line)
		if !ok {
			return nil
		}
		return m.startCall(fmt.Sprintf("fibonacci(%d)", n), "fibonacci", n)

	case "hash":
		if len(args) != 2 {
			m.addFailed(line, "usage: hash <string> <iterations>")
			return nil
		}
		iterations, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			m.addFailed(line, "invalid iteration count")
			return nil
		}
		return m.startCall(fmt.Sprintf("hashPassword(%q, %d)", args[0], iterations),
			"hashPassword", args[0], iterations)

	case "sum":
		if len(args) == 0 {
			m.addFailed(line, "usage: sum <x,y,z>")
			return nil
		}
		xs := parseList(strings.Join(args, ","))
		return m.startCall(fmt.Sprintf("sumArray(%s)", strings.Join(args, ",")), "sumArray", xs)

	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			return m.startPromise(n)
		}
		m.addFailed(line, "unknown command")
		return nil
	}
}

// numericArg parses the single numeric argument of a command.
func (m *Model) numericArg(args []string, line string) (uint64, bool) {
	if len(args) == 0 {
		m.addFailed(line, "missing argument")
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		m.addFailed(line, "invalid number")
		return 0, false
	}
	return n, true
}

// addEntry appends a running history entry and returns its id.
func (m *Model) addEntry(label string) int {
	id := m.nextID
	m.nextID++
	m.entries = append(m.entries, jobEntry{id: id, label: label, state: entryRunning})
	if len(m.entries) > maxHistory {
		m.entries = m.entries[len(m.entries)-maxHistory:]
	}
	return id
}

// addFailed records an input that never became a job.
func (m *Model) addFailed(label, reason string) {
	id := m.addEntry(label)
	for i := range m.entries {
		if m.entries[i].id == id {
			m.entries[i].state = entryFailed
			m.entries[i].result = reason
		}
	}
}

// startCall runs a registry call on a command goroutine.
func (m *Model) startCall(label, fn string, args ...any) tea.Cmd {
	id := m.addEntry(label)
	module := m.module
	start := time.Now()
	return func() tea.Msg {
		v, err := module.Call(fn, args...)
		return JobDoneMsg{
			ID:       id,
			Result:   cli.FormatValue(v),
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// startPromise counts primes through the future path and awaits it on a
// command goroutine.
func (m *Model) startPromise(n uint64) tea.Cmd {
	id := m.addEntry(fmt.Sprintf("countPrimes(%d)", n))
	start := time.Now()
	v, err := m.module.Call("countPrimesPromise", n)
	if err != nil {
		return func() tea.Msg {
			return JobDoneMsg{ID: id, Err: err, Duration: time.Since(start)}
		}
	}
	fut := v.(*worker.Future)
	return func() tea.Msg {
		result, err := fut.Await(context.Background())
		return JobDoneMsg{
			ID:       id,
			Result:   cli.FormatValue(result),
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// startAsync counts primes through the callback path. The completion arrives
// via the teaLoop bridge.
func (m *Model) startAsync(n uint64) {
	id := m.addEntry(fmt.Sprintf("countPrimesAsync(%d)", n))
	ref := m.ref
	start := time.Now()
	_, err := m.module.Call("countPrimesAsync", n, func(err error, count uint64) {
		msg := JobDoneMsg{ID: id, Err: err, Duration: time.Since(start)}
		if err == nil {
			msg.Result = strconv.FormatUint(count, 10)
		}
		ref.Send(msg)
	})
	if err != nil {
		m.addFailed(fmt.Sprintf("countPrimesAsync(%d)", n), err.Error())
	}
}

// parseList splits a comma-separated list, keeping non-numeric entries as
// strings so the sum skips them.
func parseList(raw string) []any {
	parts := strings.Split(raw, ",")
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
	return xs
}

// ─────────────────────────────────────────────────────────────────────────────
// Rendering
// ─────────────────────────────────────────────────────────────────────────────

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := headerStyle.Render("🧮 primecalc dashboard") +
		" " + versionStyle.Render(m.version) +
		" " + versionStyle.Render(fmt.Sprintf("up %s", time.Since(m.startTime).Round(time.Second)))

	jobs := m.renderJobs()
	stats := m.renderStats()
	input := promptStyle.Render("") + m.input.View()
	footer := footerKeyStyle.Render("enter") + footerDescStyle.Render(" run  ") +
		footerKeyStyle.Render("esc") + footerDescStyle.Render(" quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, jobs, stats, input, footer)
}

// renderJobs renders the job history panel.
func (m Model) renderJobs() string {
	if len(m.entries) == 0 {
		return panelStyle.Width(m.width - 2).Render(metricLabelStyle.Render("no jobs yet"))
	}

	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		var line string
		switch e.state {
		case entryRunning:
			line = jobRunningStyle.Render("… " + e.label)
		case entryDone:
			line = jobSuccessStyle.Render("✓ "+e.label) +
				" = " + metricValueStyle.Render(e.result) +
				" " + metricLabelStyle.Render("("+cli.FormatExecutionDuration(e.duration)+")")
		case entryFailed:
			line = jobErrorStyle.Render("✗ " + e.label + "  " + e.result)
		}
		lines = append(lines, line)
	}
	return panelStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// renderStats renders the resource gauge line.
func (m Model) renderStats() string {
	return metricLabelStyle.Render("cpu ") + metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.stats.CPUPercent)) +
		metricLabelStyle.Render("  mem ") + metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.stats.MemPercent)) +
		metricLabelStyle.Render("  goroutines ") + metricValueStyle.Render(strconv.Itoa(m.stats.Goroutines)) +
		metricLabelStyle.Render("  workers ") + metricValueStyle.Render(strconv.Itoa(m.cfg.Workers))
}

// ─────────────────────────────────────────────────────────────────────────────
// Entry Point and Commands
// ─────────────────────────────────────────────────────────────────────────────

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, pool *worker.Pool, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(pool, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge callbacks can Send.
	model.ref.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after one second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample())
	}
}
