package statusbar

import (
	"sync"

	"github.com/dshills/projectname/internal/config"
)

// State is a snapshot of an item.
type State struct {
	Text     string
	Visible  bool
	Align    config.Align
	Priority int
}

// Widget is the surface the Presenter drives.
type Widget interface {
	SetText(text string)
	Show()
	Hide()
}

// Item is a single status bar entry.
//
// Alignment and priority are fixed at creation. Item is safe for concurrent
// use so renderers may read it from other goroutines.
type Item struct {
	mu       sync.Mutex
	state    State
	disposed bool
	onChange func(State)
}

// NewItem creates a hidden, empty item.
func NewItem(align config.Align, priority int) *Item {
	return &Item{state: State{Align: align, Priority: priority}}
}

// OnChange registers fn to be called with the new state after every change.
// fn runs on the goroutine that made the change.
func (it *Item) OnChange(fn func(State)) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.onChange = fn
}

// State returns a snapshot of the item.
func (it *Item) State() State {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.state
}

// Text returns the current text.
func (it *Item) Text() string {
	return it.State().Text
}

// Visible reports whether the item is shown.
func (it *Item) Visible() bool {
	return it.State().Visible
}

// SetText replaces the text.
func (it *Item) SetText(text string) {
	it.update(func(s *State) { s.Text = text })
}

// Show makes the item visible.
func (it *Item) Show() {
	it.update(func(s *State) { s.Visible = true })
}

// Hide makes the item invisible.
func (it *Item) Hide() {
	it.update(func(s *State) { s.Visible = false })
}

// Dispose hides the item and detaches it. Later calls are ignored.
func (it *Item) Dispose() {
	it.update(func(s *State) {
		s.Text = ""
		s.Visible = false
	})
	it.mu.Lock()
	it.disposed = true
	it.onChange = nil
	it.mu.Unlock()
}

// Disposed reports whether Dispose has been called.
func (it *Item) Disposed() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.disposed
}

func (it *Item) update(fn func(*State)) {
	it.mu.Lock()
	if it.disposed {
		it.mu.Unlock()
		return
	}
	prev := it.state
	fn(&it.state)
	next := it.state
	onChange := it.onChange
	it.mu.Unlock()

	if onChange != nil && next != prev {
		onChange(next)
	}
}
