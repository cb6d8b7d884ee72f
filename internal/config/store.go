package config

import (
	"reflect"
	"sync"
)

// Store is a thread-safe, observable Reader holding the section values.
type Store struct {
	mu       sync.RWMutex
	values   map[string]any
	notifier *notifier
}

// NewStore creates a store seeded with values (which may be nil).
func NewStore(values map[string]any) *Store {
	s := &Store{
		values:   make(map[string]any, len(values)),
		notifier: newNotifier(),
	}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Lookup implements Reader.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Settings returns a snapshot of the current settings.
func (s *Store) Settings() Settings {
	return Read(s)
}

// Snapshot returns a copy of the raw values.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set stores value under key and notifies observers if it changed.
func (s *Store) Set(key string, value any, source string) {
	s.mu.Lock()
	old, existed := s.values[key]
	if existed && reflect.DeepEqual(old, value) {
		s.mu.Unlock()
		return
	}
	s.values[key] = value
	s.mu.Unlock()

	s.notifier.notify(Change{Key: key, Type: ChangeSet, OldValue: old, NewValue: value, Source: source})
}

// Delete removes key and notifies observers if it was present.
func (s *Store) Delete(key, source string) {
	s.mu.Lock()
	old, existed := s.values[key]
	if !existed {
		s.mu.Unlock()
		return
	}
	delete(s.values, key)
	s.mu.Unlock()

	s.notifier.notify(Change{Key: key, Type: ChangeDelete, OldValue: old, Source: source})
}

// Replace swaps in a whole new section and sends a single reload
// notification if anything differs.
func (s *Store) Replace(values map[string]any, source string) {
	next := make(map[string]any, len(values))
	for k, v := range values {
		next[k] = v
	}

	s.mu.Lock()
	if reflect.DeepEqual(s.values, next) {
		s.mu.Unlock()
		return
	}
	s.values = next
	s.mu.Unlock()

	s.notifier.notify(Change{Type: ChangeReload, Source: source})
}

// Subscribe registers an observer for every change.
func (s *Store) Subscribe(observer Observer) *Subscription {
	return s.notifier.subscribe(observer)
}

// ObserverCount returns the number of registered observers.
func (s *Store) ObserverCount() int {
	return s.notifier.count()
}
