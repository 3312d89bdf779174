package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/picogrid/cosim-input/pkg/assembler"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/store"
)

// Registry keeps named configuration snapshots for one session
type Registry struct {
	mu      sync.RWMutex
	configs map[string]models.Configuration
	order   []string
	current string
}

// New creates an empty configuration registry
func New() *Registry {
	return &Registry{
		configs: make(map[string]models.Configuration),
	}
}

// Save stores a deep copy of cfg under name, replacing any existing entry in place.
// The saved copy carries name as its config_name and becomes the current selection.
func (r *Registry) Save(name string, cfg models.Configuration) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("config_name", "a configuration name is required before saving")
	}

	snapshot := cfg.Clone()
	snapshot.System.ConfigName = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.configs[name] = snapshot
	r.current = name
	return nil
}

// Get returns a deep copy of the named snapshot
func (r *Registry) Get(name string) (models.Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, exists := r.configs[name]
	if !exists {
		return models.Configuration{}, notFound(name)
	}
	return cfg.Clone(), nil
}

// Load copies the named snapshot into fs as committed values and makes it current.
// Open editors are not touched and keep their drafts.
func (r *Registry) Load(name string, fs *store.FieldStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, exists := r.configs[name]
	if !exists {
		return notFound(name)
	}

	assembler.Apply(fs, cfg)
	fs.Set(store.KeyConfigName, name)
	r.current = name
	return nil
}

// Delete removes the named snapshot, clearing the current selection if it pointed there
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[name]; !exists {
		return notFound(name)
	}

	delete(r.configs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.current == name {
		r.current = ""
	}
	return nil
}

// List returns all stored names in insertion order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Current returns the name last saved or loaded, or "" when none is selected.
// It is informational only.
func (r *Registry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

// Len returns the number of stored configurations
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.configs)
}

func notFound(name string) error {
	return fmt.Errorf("configuration %q: %w", name, models.ErrNotFound)
}
