package plugin

import (
	"fmt"
	"sync"

	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// Registry manages plugin registration and hook dispatch. Registration order
// is execution order, which in turn decides who wins destination collisions
// in the file collection (last registered wins).
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	byName  map[string]struct{}
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]struct{})}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	metadata := p.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered", metadata.Name)
	}
	r.byName[metadata.Name] = struct{}{}
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// RunOnConfig invokes every plugin's OnConfig hook in order, stopping at the
// first failure.
func (r *Registry) RunOnConfig(ctx *Context) error {
	for _, p := range r.Plugins() {
		if err := p.OnConfig(ctx); err != nil {
			return NewError(p.Metadata().Name, "on_config", err)
		}
	}
	return nil
}

// RunOnFiles invokes every plugin's OnFiles hook in order against the given
// collection, stopping at the first failure.
func (r *Registry) RunOnFiles(ctx *Context, files *site.Collection) error {
	for _, p := range r.Plugins() {
		if err := p.OnFiles(ctx, files); err != nil {
			return NewError(p.Metadata().Name, "on_files", err)
		}
	}
	return nil
}

// RunOnServe invokes every plugin's OnServe hook in order with the injected
// watch registration capability.
func (r *Registry) RunOnServe(ctx *Context, watch WatchFunc) error {
	for _, p := range r.Plugins() {
		if err := p.OnServe(ctx, watch); err != nil {
			return NewError(p.Metadata().Name, "on_serve", err)
		}
	}
	return nil
}
