package process

//go:generate mockgen -source=runner.go -destination=mocks/runner.gen.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Command describes a single shell invocation.
type Command struct {
	// Line is the command line passed to the shell.
	Line string
	// Dir is the working directory. Empty means the process default.
	Dir string
}

// Result is the outcome of running a Command.
type Result struct {
	// ID uniquely identifies the run.
	ID string
	// Command is the command that produced this result.
	Command Command
	// Stdout and Stderr hold everything the command wrote.
	Stdout string
	Stderr string
	// ExitCode is the exit status, or -1 when the command never ran to exit.
	ExitCode int
	// StartErr is set when the shell could not be spawned or was cut short
	// by its context.
	StartErr error
	// Duration is the wall time from spawn to exit.
	Duration time.Duration
}

// Err returns the failure of the run, if any. A run fails when it could not
// be spawned, exited nonzero, or wrote anything to stderr.
func (r Result) Err() error {
	if r.StartErr != nil {
		return r.StartErr
	}
	if r.ExitCode != 0 || r.Stderr != "" {
		return &ExitError{Command: r.Command.Line, ExitCode: r.ExitCode, Stderr: r.Stderr}
	}
	return nil
}

// FirstLine returns the first line of stdout with surrounding whitespace
// removed.
func (r Result) FirstLine() string {
	line, _, _ := strings.Cut(r.Stdout, "\n")
	return strings.TrimSpace(line)
}

// Runner runs commands.
type Runner interface {
	// Run executes cmd and blocks until it exits or ctx is done.
	Run(ctx context.Context, cmd Command) Result
}

// waitDelay bounds how long Run waits for output pipes after the shell is
// killed by its context.
const waitDelay = time.Second

// ShellRunner runs commands through the platform shell.
type ShellRunner struct {
	timeout time.Duration
	env     []string
}

// Option configures a ShellRunner.
type Option func(*ShellRunner)

// WithTimeout bounds every run. Zero (the default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *ShellRunner) {
		r.timeout = d
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(r *ShellRunner) {
		r.env = append(r.env, env...)
	}
}

// NewShellRunner creates a ShellRunner.
func NewShellRunner(opts ...Option) *ShellRunner {
	r := &ShellRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements Runner.
func (r *ShellRunner) Run(ctx context.Context, cmd Command) Result {
	res := Result{ID: uuid.New().String(), Command: cmd, ExitCode: -1}

	if strings.TrimSpace(cmd.Line) == "" {
		res.StartErr = ErrEmptyCommand
		return res
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	name, args := shellCommand(cmd.Line)
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	if len(r.env) > 0 {
		c.Env = append(c.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err == nil {
		res.ExitCode = 0
		return res
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.StartErr = fmt.Errorf("run %q: %w", cmd.Line, ctxErr)
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res
	}

	res.StartErr = fmt.Errorf("start %q: %w", cmd.Line, err)
	return res
}

// Start runs cmd on r in a new goroutine and passes the result to done.
// done runs on that goroutine.
func Start(ctx context.Context, r Runner, cmd Command, done func(Result)) {
	go func() {
		done(r.Run(ctx, cmd))
	}()
}
