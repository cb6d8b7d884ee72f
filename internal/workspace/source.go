package workspace

import (
	"github.com/dshills/projectname/internal/fswatch"
	"github.com/dshills/projectname/internal/logging"
)

// FileSource keeps a Workspace's folders in sync with a .code-workspace
// file.
type FileSource struct {
	path      string
	workspace *Workspace
	watcher   *fswatch.Watcher
	logger    *logging.Logger
}

// NewFileSource creates a FileSource for path feeding ws.
func NewFileSource(path string, ws *Workspace, logger *logging.Logger) *FileSource {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FileSource{
		path:      path,
		workspace: ws,
		logger:    logger.WithComponent("workspace"),
	}
}

// Path returns the workspace file path.
func (f *FileSource) Path() string {
	return f.path
}

// Load reads the file and replaces the workspace folders.
func (f *FileSource) Load() error {
	folders, err := LoadFile(f.path)
	if err != nil {
		return err
	}
	f.workspace.SetFolders(folders)
	return nil
}

// Watch reloads the folders whenever the file changes. Unreadable or
// invalid files keep the previous folders and are logged.
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
		f.logger.Warn("reload failed, keeping previous folders: %v", err)
		return
	}
	f.logger.Debug("reloaded %s", f.path)
}
