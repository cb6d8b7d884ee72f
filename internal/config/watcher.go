package config

import (
	"github.com/dshills/projectname/internal/fswatch"
	"github.com/dshills/projectname/internal/logging"
)

// FileSource keeps a Store in sync with a settings file.
type FileSource struct {
	path    string
	store   *Store
	loader  *Loader
	watcher *fswatch.Watcher
	logger  *logging.Logger
}

// NewFileSource creates a FileSource. Call Load for the initial read and
// Watch to follow later edits.
func NewFileSource(path string, store *Store, logger *logging.Logger) *FileSource {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FileSource{
		path:   path,
		store:  store,
		loader: NewLoader(),
		logger: logger.WithComponent("config"),
	}
}

// Path returns the watched settings file.
func (f *FileSource) Path() string {
	return f.path
}

// Load reads the file and replaces the store contents. A missing file
// yields an empty section, so every key falls back to its default.
func (f *FileSource) Load() error {
	values, err := f.loader.Load(f.path)
	if err != nil {
		return err
	}
	f.store.Replace(values, f.path)
	return nil
}

// Watch reloads the store whenever the file changes. Parse errors keep the
// previous values and are logged.
func (f *FileSource) Watch(w *fswatch.Watcher) error {
	if err := w.Watch(f.path, f.reload); err != nil {
		return err
	}
	f.watcher = w
	return nil
}

// Close stops following the file.
func (f *FileSource) Close() error {
	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Unwatch(f.path)
	f.watcher = nil
	return err
}

func (f *FileSource) reload(string) {
	if err := f.Load(); err != nil {
		f.logger.Warn("reload failed, keeping previous settings: %v", err)
		return
	}
	f.logger.Debug("reloaded %s", f.path)
}
