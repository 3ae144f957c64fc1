package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/primecalc/primecalc/internal/worker"
)

// programRef holds the tea.Program behind a lock. Models are copied on
// every Update, so worker goroutines need one stable pointer they can
// send messages through.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram stores the program reference. Safe for concurrent use.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. A nil program drops the message,
// which covers sends racing program startup or arriving after exit.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// completionMsg carries a completion callback into the update loop.
type completionMsg struct {
	run func()
}

// teaLoop adapts the bubbletea program to the worker completion dispatcher:
// callbacks scheduled by finished jobs arrive as messages on the program's
// update loop instead of running on worker goroutines.
type teaLoop struct {
	ref *programRef
}

// Verify interface compliance.
var _ worker.Dispatcher = (*teaLoop)(nil)

// Dispatch forwards fn to the update loop as a completionMsg.
func (l *teaLoop) Dispatch(fn func()) {
	l.ref.Send(completionMsg{run: fn})
}
