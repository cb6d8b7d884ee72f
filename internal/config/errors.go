package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for settings files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalidSection is returned when the section is not a table.
	ErrInvalidSection = errors.New("config: " + Section + " is not a table")
)

// ParseError locates a syntax error in a settings file. Line and Column are
// zero when the decoder does not report a position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
