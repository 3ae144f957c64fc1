package worker

import "sync"

// Dispatcher delivers completion callbacks on the caller's execution
// context. Worker goroutines never invoke caller code directly; they hand
// the invocation to a Dispatcher so result handling cannot race caller-side
// state.
type Dispatcher interface {
	// Dispatch schedules fn to run on the dispatcher's context. fn must be
	// invoked at most once and never on the calling goroutine.
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Dispatch calls the underlying function.
func (d DispatcherFunc) Dispatch(fn func()) { d(fn) }

// loopBuffer sizes the delivery channel. Completions are tiny closures;
// a modest buffer keeps worker goroutines from blocking on a busy loop.
const loopBuffer = 64

// Loop is a single-goroutine Dispatcher: every dispatched function runs
// serially on the loop goroutine, in dispatch order. It stands in for the
// host runtime's event loop when primecalc itself is the host.
type Loop struct {
	tasks chan func()
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates and starts a delivery loop. Callers must Close it when
// the surrounding scope ends.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), loopBuffer),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.stop:
			// Drain deliveries already queued; nothing new can arrive.
			for {
				select {
				case fn := <-l.tasks:
					fn()
				default:
					return
				}
			}
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Dispatch queues fn for serial execution on the loop goroutine. Dispatches
// after Close are dropped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case <-l.stop:
	case l.tasks <- fn:
	}
}

// Close stops the loop after draining queued deliveries and waits for the
// loop goroutine to exit. Close is idempotent.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}
