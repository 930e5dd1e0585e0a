package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fieldtuner/fieldtuner/internal/app"
)

// favoritesVersion is written to the favorites file so a future format
// change can migrate old files.
const favoritesVersion = "2.0"

// favoritesFile is the on-disk JSON shape.
type favoritesFile struct {
	Favorites []string `json:"favorites"`
	Version   string   `json:"version"`
}

// Favorites is the user's starred setting keys, persisted as JSON.
// Mutations are written through to disk immediately. All methods are safe
// for concurrent use.
type Favorites struct {
	mu   sync.RWMutex
	path string
	set  map[string]bool
	log  *app.Logger
}

// LoadFavorites reads the favorites file at path. A missing file yields
// an empty set; an unreadable or malformed file also yields an empty set,
// with a warning, so a corrupted file never blocks startup.
func LoadFavorites(path string, log *app.Logger) *Favorites {
	if log == nil {
		log = app.NullLogger
	}
	f := &Favorites{
		path: path,
		set:  make(map[string]bool),
		log:  log.WithComponent("favorites"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn("read favorites: %v", err)
		}
		return f
	}

	var file favoritesFile
	if err := json.Unmarshal(data, &file); err != nil {
		f.log.Warn("favorites file malformed, starting empty: %v", err)
		return f
	}
	for _, key := range file.Favorites {
		f.set[key] = true
	}
	return f
}

// Contains reports whether key is a favorite.
func (f *Favorites) Contains(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.set[key]
}

// All returns the favorite keys, sorted.
func (f *Favorites) All() []string {
	f.mu.RLock()
	keys := make([]string, 0, len(f.set))
	for key := range f.set {
		keys = append(keys, key)
	}
	f.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of favorites.
func (f *Favorites) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.set)
}

// Add stars a key and persists the set. Adding an existing favorite is a
// no-op.
func (f *Favorites) Add(key string) error {
	f.mu.Lock()
	if f.set[key] {
		f.mu.Unlock()
		return nil
	}
	f.set[key] = true
	f.mu.Unlock()
	return f.save()
}

// Remove unstars a key and persists the set. Removing an absent key is a
// no-op.
func (f *Favorites) Remove(key string) error {
	f.mu.Lock()
	if !f.set[key] {
		f.mu.Unlock()
		return nil
	}
	delete(f.set, key)
	f.mu.Unlock()
	return f.save()
}

// Toggle flips a key's favorite state and reports the new state.
func (f *Favorites) Toggle(key string) (bool, error) {
	if f.Contains(key) {
		return false, f.Remove(key)
	}
	return true, f.Add(key)
}

// Clear removes all favorites and persists the empty set.
func (f *Favorites) Clear() error {
	f.mu.Lock()
	f.set = make(map[string]bool)
	f.mu.Unlock()
	return f.save()
}

func (f *Favorites) save() error {
	file := favoritesFile{
		Favorites: f.All(),
		Version:   favoritesVersion,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	f.log.Debug("saved %d favorites", len(file.Favorites))
	return nil
}
