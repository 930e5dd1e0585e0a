// Package watcher reports external changes to the profile file so the
// settings store can reload values modified by the game itself.
//
// The watcher monitors the file's parent directory rather than the file,
// because the game (and this tool's own atomic saves) replace the profile
// via rename, which drops inode-level watches. Bursts of events are
// coalesced with a debounce interval before a change is reported.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fieldtuner/fieldtuner/internal/app"
)

// ErrPathNotExist is returned when the file to watch does not exist.
var ErrPathNotExist = errors.New("watcher: path does not exist")

// DefaultDebounce is the interval used to coalesce event bursts when no
// explicit interval is configured.
const DefaultDebounce = 300 * time.Millisecond

// Change describes a detected modification of the watched file.
type Change struct {
	// Path is the absolute path of the watched file.
	Path string

	// Removed is true when the file disappeared rather than changed.
	// A subsequent recreation is reported as a regular change.
	Removed bool

	// Time is when the change was reported, after debouncing.
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the coalescing interval for event bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(log *app.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log.WithComponent("watcher")
		}
	}
}

// Watcher watches a single file for external modification.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	path     string // absolute path of the watched file
	debounce time.Duration
	log      *app.Logger

	changes chan Change
	closeCh chan struct{}
	done    sync.WaitGroup
	closed  bool
}

// New creates a watcher for path and starts delivering changes. The file
// must exist when the watcher is created.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: DefaultDebounce,
		log:      app.NullLogger,
		changes:  make(chan Change, 16),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w.done.Add(1)
	go w.processLoop()

	w.log.Debug("watching %s (debounce %s)", absPath, w.debounce)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns the channel on which debounced changes are delivered.
// The channel is closed when the watcher is closed.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops the watcher and closes the change channel. Close is
// idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	close(w.changes)
	return err
}

// processLoop reads raw fsnotify events, filters them down to the watched
// file, and emits a single Change per debounce window.
func (w *Watcher) processLoop() {
	defer w.done.Done()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending Change
	)

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matches(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// A rename immediately followed by a create is an
				// atomic replace, not a removal. The stat when the
				// debounce window elapses settles it.
				pending = Change{Path: w.path, Removed: true}
			} else {
				pending = Change{Path: w.path}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if pending.Removed {
				if _, err := os.Stat(w.path); err == nil {
					pending.Removed = false
				}
			}
			pending.Time = time.Now()
			w.log.Debug("change detected: %s (removed=%v)", pending.Path, pending.Removed)
			select {
			case w.changes <- pending:
			case <-w.closeCh:
				return
			}
			pending = Change{}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

// matches reports whether an event path refers to the watched file.
func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}
