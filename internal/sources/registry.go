package sources

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jonesrussell/goleads/internal/logger"
)

// Registry manages all registered portal sources.
type Registry struct {
	mu       sync.RWMutex
	sources  map[string]Source
	disabled map[string]bool
	logger   logger.Logger
}

// NewRegistry creates an empty source registry.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		sources:  make(map[string]Source),
		disabled: make(map[string]bool),
		logger:   log,
	}
}

// Register adds a source. Duplicate names are an error.
func (r *Registry) Register(src Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := src.Name()
	if _, exists := r.sources[name]; exists {
		return fmt.Errorf("source already registered: %s", name)
	}
	r.sources[name] = src

	r.logger.Info("source registered",
		logger.String("source", name),
		logger.String("kind", string(src.Kind())),
	)
	return nil
}

// Disable marks a source as excluded from Enabled().
func (r *Registry) Disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[name] = true
}

// Get returns a source by name.
func (r *Registry) Get(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.sources[name]
	return src, ok
}

// List returns all sources sorted by name.
func (r *Registry) List() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(string) bool { return true })
}

// Enabled returns all sources not disabled, sorted by name.
func (r *Registry) Enabled() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(name string) bool { return !r.disabled[name] })
}

// IsEnabled reports whether a named source will be harvested.
func (r *Registry) IsEnabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sources[name]
	return ok && !r.disabled[name]
}

// sorted must be called with the lock held.
func (r *Registry) sorted(keep func(string) bool) []Source {
	out := make([]Source, 0, len(r.sources))
	for name, src := range r.sources {
		if keep(name) {
			out = append(out, src)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
