package registry

import (
	"sync"
)

// Registry holds the binding kinds known to a logic editor, in registration order.
// It is safe for concurrent use; each editor should own its instance.
type Registry struct {
	mu    sync.RWMutex
	kinds []Kind
	index map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// NewDefault creates a registry pre-loaded with the built-in kinds.
func NewDefault() *Registry {
	r := New()
	for _, k := range Builtins() {
		r.Register(k)
	}
	return r
}

// Register adds a kind to the registry.
// If a kind with the same name exists, it is overwritten in place and keeps its position.
func (r *Registry) Register(k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.index[k.Name]; ok {
		r.kinds[i] = k
		return
	}
	r.index[k.Name] = len(r.kinds)
	r.kinds = append(r.kinds, k)
}

// Unregister removes the kind with the given name. It reports whether it existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[name]
	if !ok {
		return false
	}
	r.kinds = append(r.kinds[:i:i], r.kinds[i+1:]...)
	delete(r.index, name)
	for j := i; j < len(r.kinds); j++ {
		r.index[r.kinds[j].Name] = j
	}
	return true
}

// ByName looks a kind up by its unique name.
func (r *Registry) ByName(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Kind{}, false
	}
	return r.kinds[i], true
}

// All returns a snapshot of the registered kinds in registration order.
func (r *Registry) All() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Properties returns the distinct properties bound by the registered kinds.
func (r *Registry) Properties() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.kinds))
	var out []string
	for _, k := range r.kinds {
		if k.Property != "" && !seen[k.Property] {
			seen[k.Property] = true
			out = append(out, k.Property)
		}
	}
	return out
}
