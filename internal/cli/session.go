package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/event"
	"github.com/dshills/projectname/internal/fswatch"
	"github.com/dshills/projectname/internal/logging"
	"github.com/dshills/projectname/internal/workspace"
)

// session is the host model a command runs against: settings store,
// workspace and the bus connecting them.
type session struct {
	bus       event.Bus
	store     *config.Store
	workspace *workspace.Workspace
	logger    *logging.Logger

	configSource    *config.FileSource
	workspaceSource *workspace.FileSource
	bridge          *config.Subscription
	watcher         *fswatch.Watcher
}

func newSession(opts *options, logger *logging.Logger) (*session, error) {
	s := &session{
		bus:    event.NewBus(),
		store:  config.NewStore(nil),
		logger: logger,
	}
	s.workspace = workspace.New(s.bus)
	s.bridge = config.PublishChanges(s.store, s.bus, logger)

	if opts.configPath != "" {
		s.configSource = config.NewFileSource(opts.configPath, s.store, logger)
		if err := s.configSource.Load(); err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
	}

	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		s.store.Set(k, v, "flag")
	}

	if err := s.loadWorkspace(opts.workspacePath); err != nil {
		return nil, err
	}

	if opts.activePath != "" {
		abs, err := filepath.Abs(opts.activePath)
		if err != nil {
			return nil, fmt.Errorf("resolving active document: %w", err)
		}
		s.workspace.SetActiveDocument(abs)
	}

	return s, nil
}

func (s *session) loadWorkspace(path string) error {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving workspace: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("opening workspace: %w", err)
	}

	if info.IsDir() {
		folder, err := workspace.NewFolder(abs, "")
		if err != nil {
			return err
		}
		s.workspace.SetFolders([]workspace.Folder{folder})
		return nil
	}

	s.workspaceSource = workspace.NewFileSource(abs, s.workspace, s.logger)
	return s.workspaceSource.Load()
}

// watch follows the settings and workspace files, when they were given.
func (s *session) watch() error {
	if s.configSource == nil && s.workspaceSource == nil {
		return nil
	}

	w, err := fswatch.New(fswatch.WithErrorHandler(func(err error) {
		s.logger.WithComponent("fswatch").Warn("%v", err)
	}))
	if err != nil {
		return err
	}
	s.watcher = w

	if s.configSource != nil {
		if err := s.configSource.Watch(w); err != nil {
			return fmt.Errorf("watching settings: %w", err)
		}
	}
	if s.workspaceSource != nil {
		if err := s.workspaceSource.Watch(w); err != nil {
			return fmt.Errorf("watching workspace: %w", err)
		}
	}
	return nil
}

func (s *session) close() {
	if s.configSource != nil {
		if err := s.configSource.Close(); err != nil {
			s.logger.Debug("closing settings source: %v", err)
		}
	}
	if s.workspaceSource != nil {
		if err := s.workspaceSource.Close(); err != nil {
			s.logger.Debug("closing workspace source: %v", err)
		}
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.bridge.Unsubscribe()
	s.bus.Close()
}

// parseOverrides turns key=value pairs into setting values. alignPriority
// is parsed as an integer; everything else stays a string.
func parseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimPrefix(strings.TrimSpace(key), config.Section+".")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", pair)
		}
		if key == config.KeyAlignPriority {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
			}
			out[key] = n
			continue
		}
		out[key] = value
	}
	return out, nil
}
