package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrAlreadyRegistered indicates an attempt to register a duplicate key.
var ErrAlreadyRegistered = errors.New("setting already registered")

// Registry maintains known-setting definitions indexed by key.
type Registry struct {
	mu         sync.RWMutex
	settings   map[string]*Setting
	categories map[string][]*Setting
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		settings:   make(map[string]*Setting),
		categories: make(map[string][]*Setting),
	}
}

// Register adds a setting definition. Registering the same key twice is an
// error.
func (r *Registry) Register(setting Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[setting.Key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, setting.Key)
	}

	s := &setting
	r.settings[setting.Key] = s
	r.categories[setting.Category] = append(r.categories[setting.Category], s)

	return nil
}

// MustRegister registers a setting and panics on error. Used for the
// built-in definitions.
func (r *Registry) MustRegister(setting Setting) {
	if err := r.Register(setting); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for key, or nil if the key is unknown.
func (r *Registry) Lookup(key string) *Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings[key]
}

// Has reports whether key has a definition.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.settings[key]
	return exists
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.settings)
}

// Validate checks value against the definition for key. Unknown keys pass:
// the profile holds plenty of settings the registry has no opinion on.
func (r *Registry) Validate(key, value string) error {
	s := r.Lookup(key)
	if s == nil {
		return nil
	}
	return s.Validate(value)
}

// All returns every definition sorted by key.
func (r *Registry) All() []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Setting, 0, len(r.settings))
	for _, s := range r.settings {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// Category returns all definitions in the named category.
func (r *Registry) Category(name string) []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := r.categories[name]
	result := make([]*Setting, len(settings))
	copy(result, settings)
	return result
}

// Categories returns all category names sorted.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.categories))
	for c := range r.categories {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}

// Search finds definitions whose key, description, or category contains the
// query, case-insensitively. An empty category matches all categories.
func (r *Registry) Search(query, category string) []*Setting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(query)
	var result []*Setting

	for _, s := range r.settings {
		if category != "" && s.Category != category {
			continue
		}
		if matches(s, query) {
			result = append(result, s)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

func matches(s *Setting, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Key), query) ||
		strings.Contains(strings.ToLower(s.Description), query) ||
		strings.Contains(strings.ToLower(s.Category), query)
}
