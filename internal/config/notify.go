package config

import (
	"slices"
	"sync"
)

// ChangeType classifies a Change.
type ChangeType int

const (
	ChangeSet ChangeType = iota
	ChangeDelete
	// ChangeReload replaces the whole section; Change.Key is empty.
	ChangeReload
)

var changeTypeNames = [...]string{"set", "delete", "reload"}

func (c ChangeType) String() string {
	if c < 0 || int(c) >= len(changeTypeNames) {
		return "unknown"
	}
	return changeTypeNames[c]
}

// Change describes one mutation of the store. OldValue and NewValue are nil
// when the key was absent before or after the change.
type Change struct {
	Key      string
	Type     ChangeType
	OldValue any
	NewValue any
	Source   string
}

// Observer receives changes synchronously on the mutating goroutine.
type Observer func(change Change)

// Subscription is the handle returned by Store.Subscribe.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe detaches the observer. Calling it again is a no-op.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.remove(s.id)
	}
}

type observerEntry struct {
	id  uint64
	obs Observer
}

type notifier struct {
	mu      sync.Mutex
	entries []observerEntry
	lastID  uint64
}

func newNotifier() *notifier {
	return &notifier{}
}

func (n *notifier) subscribe(obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lastID++
	n.entries = append(n.entries, observerEntry{id: n.lastID, obs: obs})
	return &Subscription{id: n.lastID, notifier: n}
}

func (n *notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = slices.DeleteFunc(n.entries, func(e observerEntry) bool { return e.id == id })
}

func (n *notifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// notify runs observers in subscription order on a snapshot, so an observer
// may unsubscribe itself.
func (n *notifier) notify(change Change) {
	n.mu.Lock()
	snapshot := slices.Clone(n.entries)
	n.mu.Unlock()

	for _, e := range snapshot {
		e.obs(change)
	}
}
