package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem abstracts reading settings files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads the section from TOML or YAML settings files.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader over the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads path and returns the section values.
// Returns nil, nil if the file doesn't exist.
func (l *Loader) Load(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return l.Parse(path, data)
}

// Parse decodes data according to the extension of name.
func (l *Loader) Parse(name string, data []byte) (map[string]any, error) {
	var doc map[string]any

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			perr := &ParseError{Path: name, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: name, Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	return extractSection(doc)
}

// extractSection pulls the section out of a decoded document. Both a nested
// table and top-level dotted keys are accepted; dotted keys win.
func extractSection(doc map[string]any) (map[string]any, error) {
	out := make(map[string]any)

	if raw, ok := doc[Section]; ok && raw != nil {
		table, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrInvalidSection, raw)
		}
		for k, v := range table {
			out[k] = v
		}
	}

	prefix := Section + "."
	for k, v := range doc {
		if key, ok := strings.CutPrefix(k, prefix); ok && key != "" {
			out[key] = v
		}
	}

	return out, nil
}
