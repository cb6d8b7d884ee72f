//go:build !windows

package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellRunner_Stdout(t *testing.T) {
	r := NewShellRunner()
	res := r.Run(context.Background(), Command{Line: "printf 'MyProj\\nignored second line\\n'"})

	require.NoError(t, res.Err())
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "MyProj", res.FirstLine())
	assert.NotEmpty(t, res.ID)
}

func TestShellRunner_UniqueIDs(t *testing.T) {
	r := NewShellRunner()
	a := r.Run(context.Background(), Command{Line: "true"})
	b := r.Run(context.Background(), Command{Line: "true"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestShellRunner_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644))

	res := NewShellRunner().Run(context.Background(), Command{Line: "ls marker.txt", Dir: dir})
	require.NoError(t, res.Err())
	assert.Equal(t, "marker.txt", res.FirstLine())
}

func TestShellRunner_NonzeroExit(t *testing.T) {
	res := NewShellRunner().Run(context.Background(), Command{Line: "exit 3"})

	assert.Equal(t, 3, res.ExitCode)
	assert.NoError(t, res.StartErr)

	var exitErr *ExitError
	require.ErrorAs(t, res.Err(), &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.NotErrorIs(t, res.Err(), ErrStderrOutput)
}

func TestShellRunner_StderrIsFailure(t *testing.T) {
	res := NewShellRunner().Run(context.Background(), Command{Line: "echo ok; echo warn >&2"})

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "ok", res.FirstLine())
	assert.ErrorIs(t, res.Err(), ErrStderrOutput)
	assert.Contains(t, res.Err().Error(), "warn")
}

func TestShellRunner_MissingDirectory(t *testing.T) {
	res := NewShellRunner().Run(context.Background(), Command{
		Line: "true",
		Dir:  filepath.Join(t.TempDir(), "missing"),
	})

	require.Error(t, res.StartErr)
	assert.Equal(t, -1, res.ExitCode)
}

func TestShellRunner_EmptyCommand(t *testing.T) {
	res := NewShellRunner().Run(context.Background(), Command{Line: "  "})
	assert.ErrorIs(t, res.Err(), ErrEmptyCommand)
}

func TestShellRunner_Timeout(t *testing.T) {
	r := NewShellRunner(WithTimeout(50 * time.Millisecond))
	res := r.Run(context.Background(), Command{Line: "sleep 5"})

	assert.ErrorIs(t, res.Err(), context.DeadlineExceeded)
	assert.Less(t, res.Duration, 5*time.Second)
}

func TestShellRunner_Env(t *testing.T) {
	r := NewShellRunner(WithEnv("PROJECT_NAME_TEST=from-env"))
	res := r.Run(context.Background(), Command{Line: "echo $PROJECT_NAME_TEST"})

	require.NoError(t, res.Err())
	assert.Equal(t, "from-env", res.FirstLine())
}

func TestStart(t *testing.T) {
	done := make(chan Result, 1)
	Start(context.Background(), NewShellRunner(), Command{Line: "echo async"}, func(r Result) {
		done <- r
	})

	select {
	case res := <-done:
		assert.Equal(t, "async", res.FirstLine())
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not complete")
	}
}

func TestResult_FirstLine(t *testing.T) {
	tests := []struct {
		stdout string
		want   string
	}{
		{"", ""},
		{"  name  ", "name"},
		{"name\r\nrest", "name"},
		{"\nsecond", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Result{Stdout: tt.stdout}.FirstLine(), "stdout %q", tt.stdout)
	}
}

func TestExitError_Message(t *testing.T) {
	err := &ExitError{Command: "x", ExitCode: 2}
	assert.Equal(t, `command "x" exited with code 2`, err.Error())

	err = &ExitError{Command: "x", ExitCode: 0, Stderr: "oops\n"}
	assert.Equal(t, `command "x" wrote to stderr: oops`, err.Error())
	assert.True(t, errors.Is(err, ErrStderrOutput))
}
