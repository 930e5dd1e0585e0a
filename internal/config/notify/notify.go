// Package notify provides change notification for profile settings.
//
// The presentation layer subscribes here to react to edits, preset
// application, and reloads without the store knowing who is listening.
// Delivery is synchronous: the tool's mutations are user-driven and serial,
// so observers run inline on the mutating call.
package notify

import (
	"sync"
)

// ChangeType represents the type of settings change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the whole profile was reloaded or restored;
	// observers should discard any per-key state they hold.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents one settings change event.
type Change struct {
	// Key is the setting key that changed. Empty for reload events.
	Key string

	// Type is the type of change.
	Type ChangeType

	// Old is the previous value ("" when the key was absent).
	Old string

	// New is the new value.
	New string

	// Source identifies what caused the change ("user", "preset:balanced",
	// "script", "restore", ...).
	Source string
}

// Observer is called when a settings change occurs.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	key      string
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s)
	}
}

// Notifier manages settings change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Observers that receive every change.
	global map[uint64]Observer

	// Observers keyed by the setting they watch.
	byKey map[string]map[uint64]Observer

	nextID uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		global: make(map[uint64]Observer),
		byKey:  make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.global[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeKey registers an observer for changes to one setting key.
// Key observers also receive reload events, since a reload may have changed
// any setting.
func (n *Notifier) SubscribeKey(key string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.byKey[key] == nil {
		n.byKey[key] = make(map[uint64]Observer)
	}
	n.byKey[key][id] = observer

	return &Subscription{id: id, key: key, notifier: n}
}

// Notify delivers a change to all relevant observers, synchronously, in
// unspecified order.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.global))
	for _, o := range n.global {
		observers = append(observers, o)
	}
	if change.Type == ChangeReload {
		for _, keyed := range n.byKey {
			for _, o := range keyed {
				observers = append(observers, o)
			}
		}
	} else if keyed := n.byKey[change.Key]; keyed != nil {
		for _, o := range keyed {
			observers = append(observers, o)
		}
	}
	n.mu.RUnlock()

	// Observers run outside the lock so they can subscribe/unsubscribe.
	for _, o := range observers {
		o(change)
	}
}

// NotifySet is a convenience for set changes.
func (n *Notifier) NotifySet(key, oldValue, newValue, source string) {
	n.Notify(Change{Key: key, Type: ChangeSet, Old: oldValue, New: newValue, Source: source})
}

// NotifyReload is a convenience for reload changes.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

func (n *Notifier) unsubscribe(s *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, s.id)
	if keyed := n.byKey[s.key]; keyed != nil {
		delete(keyed, s.id)
		if len(keyed) == 0 {
			delete(n.byKey, s.key)
		}
	}
}
