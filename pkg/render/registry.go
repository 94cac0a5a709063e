package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps a presentation name to the MessageRenderer that draws
// validation messages for it. SinksFor looks names up here.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]MessageRenderer
}

// NewRegistry returns a registry with no renderers.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]MessageRenderer),
	}
}

// Register stores renderer under its Name(). A name can be taken once.
func (r *Registry) Register(renderer MessageRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister is Register for built-in renderers, which never collide.
func (r *Registry) MustRegister(renderer MessageRenderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get wraps ErrRendererNotFound for unknown names.
func (r *Registry) Get(name string) (MessageRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// List returns the renderer names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is taken.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
