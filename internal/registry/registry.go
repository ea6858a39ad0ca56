// Package registry holds guarded callables by name and dispatches
// dynamic invocations to them.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/arpegio/posonly/internal/guard"
)

// Registry is a thread-safe name-to-callable table.
type Registry struct {
	mu     sync.RWMutex
	guards map[string]*guard.Guard
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{guards: make(map[string]*guard.Guard)}
}

// Register adds a guarded callable. Registering the same name twice is an
// error.
func (r *Registry) Register(g *guard.Guard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.guards[g.Name()]; dup {
		return fmt.Errorf("registry: `%s` is already registered", g.Name())
	}
	r.guards[g.Name()] = g
	return nil
}

// Get returns the guard registered under name.
func (r *Registry) Get(name string) (*guard.Guard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.guards[name]
	return g, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.guards))
	for name := range r.guards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes the named callable through its guard.
func (r *Registry) Dispatch(ctx context.Context, name string, args []any, kwargs map[string]any) (any, error) {
	g, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("registry: no callable named `%s`", name)
	}
	return g.Call(ctx, args, kwargs)
}
