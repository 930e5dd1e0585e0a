// Package store holds the in-memory view of a profile file and mediates
// every read and write of it.
//
// The store keeps both the parsed key/value entries and the exact original
// bytes of the file. Edits only touch the in-memory entries; Save rewrites
// the file from the original bytes so that unedited lines survive
// byte-for-byte. Every save is preceded by a backup and performed as an
// atomic replace.
package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fieldtuner/fieldtuner/internal/app"
	"github.com/fieldtuner/fieldtuner/internal/backup"
	"github.com/fieldtuner/fieldtuner/internal/config/notify"
	"github.com/fieldtuner/fieldtuner/internal/config/profsave"
	"github.com/fieldtuner/fieldtuner/internal/config/registry"
)

// Errors returned by store operations.
var (
	// ErrNotLoaded indicates an operation that needs a loaded profile.
	ErrNotLoaded = errors.New("no profile loaded")

	// ErrKeyNotFound indicates the requested key is not in the profile.
	ErrKeyNotFound = errors.New("key not found")

	// ErrSaveBlocked indicates a pre-save check refused the write.
	ErrSaveBlocked = errors.New("save blocked")

	// ErrPartialParse indicates the loaded binary profile decoded only
	// partially; saving would rewrite the file without the undecoded
	// records, so the write is refused.
	ErrPartialParse = errors.New("profile parsed partially, saving would drop undecoded records")
)

// PreSaveCheck runs before any write to the profile. A non-nil error
// aborts the save. The application wires game-running and file-lock
// probes through this hook.
type PreSaveCheck func() error

// SourceUser marks changes made through Set and Apply without an explicit
// source. SourceReload marks entries refreshed from disk.
const (
	SourceUser   = "user"
	SourceReload = "reload"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(log *app.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log.WithComponent("store")
		}
	}
}

// WithRegistry sets the registry used to validate values before they are
// accepted. Without a registry all values pass.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Store) { s.reg = reg }
}

// WithNotifier sets the notifier informed of changes and reloads.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithBackups sets the backup manager consulted before every save.
// Without a manager, Save writes with no safety copy.
func WithBackups(m *backup.Manager) Option {
	return func(s *Store) { s.backups = m }
}

// WithPreSaveCheck appends a check run before every save, in order.
func WithPreSaveCheck(check PreSaveCheck) Option {
	return func(s *Store) {
		if check != nil {
			s.checks = append(s.checks, check)
		}
	}
}

// Store is the authoritative in-memory copy of one profile file.
// All methods are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	log      *app.Logger
	reg      *registry.Registry
	notifier *notify.Notifier
	backups  *backup.Manager
	checks   []PreSaveCheck

	path     string
	raw      []byte
	entries  map[string]string
	order    []string
	strategy profsave.Strategy
	partial  bool
	dirty    map[string]bool
}

// New creates an empty store. Load must be called before values can be
// read or written.
func New(opts ...Option) *Store {
	s := &Store{
		log:     app.NullLogger,
		entries: make(map[string]string),
		dirty:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the profile at path and parses it, replacing any previously
// loaded state. Unparseable content is not an error: the store then holds
// zero entries but retains the raw bytes, so a later save cannot destroy
// the file.
func (s *Store) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	s.LoadBytes(path, raw)
	return nil
}

// LoadBytes installs raw as the profile content for path. Used by Load
// and by tests that construct profiles in memory.
func (s *Store) LoadBytes(path string, raw []byte) {
	res := profsave.Parse(raw)

	s.mu.Lock()
	s.path = path
	s.raw = append([]byte(nil), raw...)
	s.entries = res.Entries
	s.order = res.Order
	s.strategy = res.Strategy
	s.partial = res.Partial
	s.dirty = make(map[string]bool)
	s.mu.Unlock()

	if res.Partial {
		s.log.Warn("profile %s decoded partially: edits can be staged but not saved", path)
	}

	s.log.Info("loaded %s: %d entries via %s strategy", path, res.Len(), res.Strategy)
	if s.notifier != nil {
		s.notifier.NotifyReload(SourceReload)
	}
}

// Reload re-reads the profile from disk, discarding unsaved edits.
func (s *Store) Reload() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()
	if path == "" {
		return ErrNotLoaded
	}
	return s.Load(path)
}

// Loaded reports whether a profile has been loaded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path != ""
}

// SourcePath returns the path of the loaded profile, or "".
func (s *Store) SourcePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Strategy returns the parsing strategy that produced the current entries.
func (s *Store) Strategy() profsave.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// Partial reports whether the loaded profile decoded only partially.
// A partial profile can be read and edited in memory but refuses Save.
func (s *Store) Partial() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partial
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns the keys in their order of first appearance.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Lookup returns the value for key and whether it is present.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.entries[key]
	return val, ok
}

// Get returns the value for key, or def when the key is absent.
func (s *Store) Get(key, def string) string {
	if val, ok := s.Lookup(key); ok {
		return val
	}
	return def
}

// Set validates and stages a single value. The profile file is not
// touched until Save. Setting a key absent from the profile adds it at
// the end.
func (s *Store) Set(key, value string) error {
	return s.set(key, value, SourceUser)
}

// Apply validates all values first and stages them only if every one
// passes, so a bad preset cannot half-apply. Source tags the resulting
// change notifications.
func (s *Store) Apply(values map[string]string, source string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if s.reg != nil {
		var errs []error
		for _, key := range keys {
			if err := s.reg.Validate(key, values[key]); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
	}

	for _, key := range keys {
		if err := s.set(key, values[key], source); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) set(key, value, source string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrKeyNotFound)
	}
	if s.reg != nil {
		if err := s.reg.Validate(key, value); err != nil {
			return err
		}
	}

	s.mu.Lock()
	if s.path == "" {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	old, existed := s.entries[key]
	if existed && old == value {
		s.mu.Unlock()
		return nil
	}
	s.entries[key] = value
	if !existed {
		s.order = append(s.order, key)
	}
	s.dirty[key] = true
	s.mu.Unlock()

	s.log.Debug("set %s = %s (was %q)", key, value, old)
	if s.notifier != nil {
		s.notifier.NotifySet(key, old, value, source)
	}
	return nil
}

// Dirty reports whether there are staged edits not yet saved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dirty) > 0
}

// ChangedKeys returns the keys edited since the last load or save,
// sorted.
func (s *Store) ChangedKeys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.dirty))
	for key := range s.dirty {
		keys = append(keys, key)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Save writes the staged entries back to the profile. The write sequence
// is: run pre-save checks, snapshot the current file through the backup
// manager, rewrite the original bytes with the staged values, replace the
// file atomically, then re-read it from disk so the in-memory state
// reflects exactly what landed.
func (s *Store) Save() error {
	s.mu.RLock()
	path := s.path
	raw := s.raw
	strategy := s.strategy
	partial := s.partial
	entries := make(map[string]string, len(s.entries))
	for key, val := range s.entries {
		entries[key] = val
	}
	order := append([]string(nil), s.order...)
	s.mu.RUnlock()

	if path == "" {
		return ErrNotLoaded
	}
	if partial {
		// Regenerating the file from a partial decode would destroy every
		// record the parser could not read. Nothing safe can be written.
		return fmt.Errorf("%w: %w", ErrSaveBlocked, ErrPartialParse)
	}

	for _, check := range s.checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveBlocked, err)
		}
	}

	if s.backups != nil {
		if _, err := s.backups.Create(""); err != nil && !errors.Is(err, backup.ErrSourceMissing) {
			return fmt.Errorf("pre-save backup: %w", err)
		}
	}

	var content []byte
	switch strategy {
	case profsave.StrategyText, profsave.StrategyFallback:
		content = profsave.Serialize(raw, entries)
		content = profsave.AppendMissing(content, entries, order)
	case profsave.StrategyBinary, profsave.StrategyHybrid:
		// Line substitution cannot edit binary records. The game reads
		// the text form too, so a binary-origin profile is regenerated
		// as text; the pre-save backup keeps the binary original.
		content = profsave.AppendMissing(nil, entries, order)
	default:
		// Nothing parsed. The original bytes are preserved untouched;
		// any keys staged since load are appended after them.
		content = profsave.AppendMissing(raw, entries, order)
	}

	if err := backup.AtomicWrite(path, content); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	s.log.Info("saved %s (%d entries, %d changed)", path, len(entries), len(s.ChangedKeys()))

	// Re-read from disk so raw bytes and entries match the saved file.
	return s.Load(path)
}
