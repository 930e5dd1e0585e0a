// Package preset defines named bundles of settings that are applied to the
// profile in one step.
//
// The built-in catalog carries tuned graphics/audio bundles derived from
// real profile analysis. Users can add their own presets as TOML files in
// the presets directory; a user preset with the ID of a built-in one
// replaces it.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/fieldtuner/fieldtuner/internal/app"
	"github.com/fieldtuner/fieldtuner/internal/config/store"
)

// ErrNotFound indicates the requested preset ID is not in the catalog.
var ErrNotFound = errors.New("preset not found")

// Preset is a named bundle of setting values.
type Preset struct {
	// ID is the stable identifier used on the command line and in files.
	ID string `toml:"id"`

	// Name is the human-readable title.
	Name string `toml:"name"`

	// Description explains what the preset optimizes for.
	Description string `toml:"description"`

	// Settings maps profile keys to the values this preset applies.
	Settings map[string]string `toml:"settings"`

	// Builtin is true for presets shipped with the tool.
	Builtin bool `toml:"-"`
}

// Validate checks that the preset is usable.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("preset: empty id")
	}
	if len(p.Settings) == 0 {
		return fmt.Errorf("preset %q: no settings", p.ID)
	}
	return nil
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(log *app.Logger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log.WithComponent("preset")
		}
	}
}

// Catalog is the set of known presets, built-in plus user-defined.
// All methods are safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	log     *app.Logger
	presets map[string]Preset
	order   []string
}

// NewCatalog creates a catalog pre-seeded with the built-in presets.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		log:     app.NullLogger,
		presets: make(map[string]Preset),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, p := range Builtin() {
		c.put(p)
	}
	return c
}

// Add inserts or replaces a preset by ID.
func (c *Catalog) Add(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.put(p)
	c.mu.Unlock()
	return nil
}

// put must be called with the lock held (or during construction).
func (c *Catalog) put(p Preset) {
	if _, exists := c.presets[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.presets[p.ID] = p
}

// LoadDir reads every *.toml file in dir as one preset each and adds it
// to the catalog. A missing directory is fine; a malformed file is
// skipped with a warning so one bad preset cannot hide the rest.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read presets dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		p, err := loadFile(path)
		if err != nil {
			c.log.Warn("skipping preset %s: %v", name, err)
			continue
		}
		c.mu.Lock()
		c.put(p)
		c.mu.Unlock()
		c.log.Debug("loaded user preset %q from %s", p.ID, name)
	}
	return nil
}

// loadFile parses a single preset file. A file without an explicit id
// uses its base name.
func loadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return Preset{}, err
	}
	if strings.TrimSpace(p.ID) == "" {
		p.ID = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Get returns the preset with the given ID.
func (c *Catalog) Get(id string) (Preset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.presets[id]
	return p, ok
}

// All returns the presets in catalog order: built-ins first, then user
// presets in load order.
func (c *Catalog) All() []Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Preset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.presets[id])
	}
	return out
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.presets)
}

// Apply stages the preset's settings in the store. The store validates
// every value before anything is staged, and the change notifications are
// tagged "preset:<id>".
func (c *Catalog) Apply(id string, st *store.Store) error {
	p, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err := st.Apply(p.Settings, "preset:"+id); err != nil {
		return fmt.Errorf("apply preset %q: %w", id, err)
	}
	c.log.Info("applied preset %q (%d settings)", id, len(p.Settings))
	return nil
}
