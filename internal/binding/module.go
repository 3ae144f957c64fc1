package binding

import (
	"fmt"
	"sort"
	"sync"
)

// Func is a host-callable function: dynamically-typed arguments in, one
// value or one error out. Implementations validate their arguments before
// computing anything; a validation failure must produce no partial result.
type Func func(args []any) (any, error)

// Module is a registry of host-callable functions, the Go analogue of a
// native addon's export table.
type Module struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewModule creates an empty module.
func NewModule() *Module {
	return &Module{funcs: make(map[string]Func)}
}

// Register adds a function under the given export name. Registering a
// duplicate name is a programming error and fails loudly.
func (m *Module) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("function name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("function %q must not be nil", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.funcs[name]; exists {
		return fmt.Errorf("function %q is already registered", name)
	}
	m.funcs[name] = fn
	return nil
}

// Get returns the function registered under name.
func (m *Module) Get(name string) (Func, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.funcs[name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return fn, nil
}

// List returns all export names in sorted order for consistent,
// reproducible listings.
func (m *Module) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.funcs))
	for name := range m.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the named function with the given arguments.
func (m *Module) Call(name string, args ...any) (any, error) {
	fn, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	return fn(args)
}
