// Package registry tracks every persistence key registered by a store so
// bulk operations can find them without scanning storage.
package registry

import (
	"sort"
	"sync"
)

// Registry is a set of storage key names. It only grows; entries live as
// long as the Registry.
type Registry struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// New creates an empty registry
func New() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Add records name. Adding an existing name is a no-op.
func (r *Registry) Add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = struct{}{}
}

// Has reports whether name was registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

// All returns every registered name, sorted
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
