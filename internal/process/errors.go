package process

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the process package.
var (
	// ErrEmptyCommand is returned when the command line is blank.
	ErrEmptyCommand = errors.New("empty command")

	// ErrStderrOutput marks a command that exited cleanly but wrote to stderr.
	ErrStderrOutput = errors.New("command wrote to stderr")
)

// ExitError reports a command that exited with a nonzero status or wrote to
// stderr.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

// Error implements error.
func (e *ExitError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if e.ExitCode == 0 {
		return fmt.Sprintf("command %q wrote to stderr: %s", e.Command, stderr)
	}
	if stderr == "" {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, stderr)
}

// Is reports ErrStderrOutput for a clean exit with stderr output.
func (e *ExitError) Is(target error) bool {
	return target == ErrStderrOutput && e.ExitCode == 0 && e.Stderr != ""
}
