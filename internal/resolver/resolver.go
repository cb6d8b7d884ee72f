// Package resolver derives the project name from workspace folders or from
// the output of a configured shell command.
package resolver

import (
	"context"
	"strings"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/logging"
	"github.com/dshills/projectname/internal/process"
	"github.com/dshills/projectname/internal/workspace"
)

// Name is an optional project name.
type Name struct {
	Value   string
	Present bool
}

// Absent is the missing name.
func Absent() Name {
	return Name{}
}

// Named returns a present name.
func Named(value string) Name {
	return Name{Value: value, Present: true}
}

// Displayable reports whether the name should be shown.
func (n Name) Displayable() bool {
	return n.Present && n.Value != ""
}

// String returns the value, or "<absent>".
func (n Name) String() string {
	if !n.Present {
		return "<absent>"
	}
	return n.Value
}

// Host exposes the workspace state the resolver reads.
// *workspace.Workspace satisfies it.
type Host interface {
	Folders() []workspace.Folder
	ActiveDocument() (string, bool)
}

// Resolver computes project names.
type Resolver struct {
	config config.Reader
	host   Host
	runner process.Runner
	logger *logging.Logger
}

// New creates a resolver. A nil logger discards diagnostics.
func New(cfg config.Reader, host Host, runner process.Runner, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{
		config: cfg,
		host:   host,
		runner: runner,
		logger: logger.WithComponent("resolver"),
	}
}

// Resolve computes the name for the current settings and calls done with it.
//
// With source none or folderName, done is called before Resolve returns.
// With commandOutput, the command runs on its own goroutine and done is
// called from there. When the command setting is empty, done is not called.
func (r *Resolver) Resolve(ctx context.Context, done func(Name)) {
	switch config.ReadSource(r.config) {
	case config.SourceFolderName:
		path, ok := r.host.ActiveDocument()
		done(ByFolder(r.host.Folders(), path, ok))
	case config.SourceCommandOutput:
		line := config.Get(r.config, config.KeyCommand, config.DefaultCommand)
		if line == "" {
			return
		}
		cmd := process.Command{Line: line, Dir: WorkingDir(r.host.Folders())}
		process.Start(ctx, r.runner, cmd, func(res process.Result) {
			done(r.fromResult(res))
		})
	default:
		done(Absent())
	}
}

// ByFolder picks the name from the folder list.
//
// A single folder gives its name. With several folders, the first one whose
// path is a string prefix of the active document's path wins. The match is
// not aware of path segments, so "/foo" also matches "/foobar/x".
func ByFolder(folders []workspace.Folder, active string, hasActive bool) Name {
	switch {
	case len(folders) == 1:
		return Named(folders[0].Name)
	case len(folders) > 1 && hasActive:
		for _, f := range folders {
			if strings.HasPrefix(active, f.Path) {
				return Named(f.Name)
			}
		}
	}
	return Absent()
}

// WorkingDir returns the directory commands run in: the first folder's
// path, or "" for the process default.
func WorkingDir(folders []workspace.Folder) string {
	if len(folders) == 0 {
		return ""
	}
	return folders[0].Path
}

func (r *Resolver) fromResult(res process.Result) Name {
	if err := res.Err(); err != nil {
		r.logger.WithField("run", res.ID).Warn("command failed: %v", err)
		return Named("")
	}
	return Named(res.FirstLine())
}
