// Package workspace models the host editor's workspace: an ordered list of
// root folders plus the currently focused document. Changes are published on
// the event bus so listeners can subscribe and unsubscribe at will.
package workspace

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/dshills/projectname/internal/event"
)

// Event topics published by the workspace.
const (
	TopicFoldersChanged      event.Topic = "workspace.folders.changed"
	TopicActiveEditorChanged event.Topic = "editor.active.changed"
)

const eventSource = "workspace"

// Common errors.
var (
	ErrFolderNotFound = errors.New("folder not found in workspace")
	ErrFolderExists   = errors.New("folder already in workspace")
	ErrInvalidPath    = errors.New("invalid folder path")
)

// Folder represents a single root folder in the workspace.
type Folder struct {
	// Name is the display name for the folder.
	Name string
	// Path is the root path of the folder.
	Path string
}

// NewFolder builds a folder for path, naming it after its last element
// when name is empty.
func NewFolder(path, name string) (Folder, error) {
	if path == "" {
		return Folder{}, ErrInvalidPath
	}
	clean := filepath.Clean(path)
	if name == "" {
		name = filepath.Base(clean)
	}
	return Folder{Name: name, Path: clean}, nil
}

// FoldersChanged is the payload of TopicFoldersChanged.
type FoldersChanged struct {
	Added   []Folder
	Removed []Folder
}

// ActiveEditorChanged is the payload of TopicActiveEditorChanged.
type ActiveEditorChanged struct {
	// Path is the focused document, empty when Active is false.
	Path   string
	Active bool
}

// Workspace holds folders and the active document.
// It is safe for concurrent use.
type Workspace struct {
	mu        sync.RWMutex
	folders   []Folder
	active    string
	hasActive bool

	bus event.Bus
}

// New creates an empty workspace publishing on bus (which may be nil).
func New(bus event.Bus) *Workspace {
	return &Workspace{bus: bus}
}

// Folders returns a copy of the folders in order.
func (w *Workspace) Folders() []Folder {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Folder, len(w.folders))
	copy(out, w.folders)
	return out
}

// FolderCount returns the number of folders.
func (w *Workspace) FolderCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.folders)
}

// ActiveDocument returns the focused document path, if any.
func (w *Workspace) ActiveDocument() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active, w.hasActive
}

// AddFolder appends a folder.
func (w *Workspace) AddFolder(f Folder) error {
	if f.Path == "" {
		return ErrInvalidPath
	}
	f.Path = filepath.Clean(f.Path)

	w.mu.Lock()
	for _, existing := range w.folders {
		if existing.Path == f.Path {
			w.mu.Unlock()
			return ErrFolderExists
		}
	}
	w.folders = append(w.folders, f)
	w.mu.Unlock()

	w.publish(TopicFoldersChanged, FoldersChanged{Added: []Folder{f}})
	return nil
}

// RemoveFolder removes the folder rooted at path.
func (w *Workspace) RemoveFolder(path string) error {
	clean := filepath.Clean(path)

	w.mu.Lock()
	idx := -1
	for i, f := range w.folders {
		if f.Path == clean {
			idx = i
			break
		}
	}
	if idx < 0 {
		w.mu.Unlock()
		return ErrFolderNotFound
	}
	removed := w.folders[idx]
	w.folders = append(w.folders[:idx], w.folders[idx+1:]...)
	w.mu.Unlock()

	w.publish(TopicFoldersChanged, FoldersChanged{Removed: []Folder{removed}})
	return nil
}

// SetFolders replaces all folders. Nothing is published when the list is
// unchanged.
func (w *Workspace) SetFolders(folders []Folder) {
	next := make([]Folder, len(folders))
	copy(next, folders)

	w.mu.Lock()
	if equalFolders(w.folders, next) {
		w.mu.Unlock()
		return
	}
	change := diffFolders(w.folders, next)
	w.folders = next
	w.mu.Unlock()

	w.publish(TopicFoldersChanged, change)
}

// SetActiveDocument focuses the document at path.
func (w *Workspace) SetActiveDocument(path string) {
	w.mu.Lock()
	if w.hasActive && w.active == path {
		w.mu.Unlock()
		return
	}
	w.active, w.hasActive = path, true
	w.mu.Unlock()

	w.publish(TopicActiveEditorChanged, ActiveEditorChanged{Path: path, Active: true})
}

// ClearActiveDocument records that no document is focused.
func (w *Workspace) ClearActiveDocument() {
	w.mu.Lock()
	if !w.hasActive {
		w.mu.Unlock()
		return
	}
	w.active, w.hasActive = "", false
	w.mu.Unlock()

	w.publish(TopicActiveEditorChanged, ActiveEditorChanged{})
}

func (w *Workspace) publish(t event.Topic, payload any) {
	if w.bus == nil {
		return
	}
	// Subscriber errors do not undo the change.
	_ = w.bus.Publish(context.Background(), event.New(t, payload, eventSource))
}

func equalFolders(a, b []Folder) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func diffFolders(prev, next []Folder) FoldersChanged {
	var change FoldersChanged
	inPrev := make(map[Folder]bool, len(prev))
	for _, f := range prev {
		inPrev[f] = true
	}
	inNext := make(map[Folder]bool, len(next))
	for _, f := range next {
		inNext[f] = true
		if !inPrev[f] {
			change.Added = append(change.Added, f)
		}
	}
	for _, f := range prev {
		if !inNext[f] {
			change.Removed = append(change.Removed, f)
		}
	}
	return change
}
