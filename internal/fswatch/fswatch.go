// Package fswatch watches individual files for changes using fsnotify.
//
// The parent directory is watched rather than the file itself so that
// editors that save by writing a temp file and renaming it over the
// original are still observed. Bursts of events are debounced into a single
// callback.
package fswatch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

var (
	// ErrWatcherClosed is returned when the watcher has been closed.
	ErrWatcherClosed = errors.New("file watcher is closed")

	// ErrAlreadyWatching is returned when the path is already watched.
	ErrAlreadyWatching = errors.New("path is already being watched")
)

// ChangeFunc is called with the absolute path of a changed file.
type ChangeFunc func(path string)

// ErrorFunc is called with errors reported by fsnotify.
type ErrorFunc func(err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the callback for watcher errors.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reports changes to a set of files.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	files    map[string]ChangeFunc
	dirs     map[string]int
	timers   map[string]*time.Timer
	debounce time.Duration
	onError  ErrorFunc

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		files:    make(map[string]ChangeFunc),
		dirs:     make(map[string]int),
		timers:   make(map[string]*time.Timer),
		debounce: DefaultDebounce,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts reporting changes to path. The file itself need not exist
// yet, but its directory must.
func (w *Watcher) Watch(path string, fn ChangeFunc) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[absPath]; ok {
		return ErrAlreadyWatching
	}

	if _, err := os.Stat(dir); err != nil {
		return err
	}
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = fn
	return nil
}

// Unwatch stops reporting changes to path.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[absPath]; !ok {
		return nil
	}
	delete(w.files, absPath)
	if t, ok := w.timers[absPath]; ok {
		t.Stop()
		delete(w.timers, absPath)
	}

	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.watcher.Remove(dir)
	}
	return nil
}

// Close stops the watcher. It is safe to call Close multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(filepath.Clean(ev.Name))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// schedule (re)starts the debounce timer for a watched file.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	fn, ok := w.files[path]
	if !ok {
		return
	}

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		closed := w.closed
		w.mu.Unlock()

		if !closed {
			fn(path)
		}
	})
}
