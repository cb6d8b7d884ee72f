package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/logging"
	"github.com/dshills/projectname/internal/statusbar"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestResolve_FolderName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "myproj")
	require.NoError(t, os.Mkdir(dir, 0o755))

	out, _, err := execute(t, "resolve", "--workspace", dir)
	require.NoError(t, err)
	assert.Equal(t, "myproj\n", out)
}

func TestResolve_StyleAndTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "myproj")
	require.NoError(t, os.Mkdir(dir, 0o755))

	out, _, err := execute(t, "resolve", "-w", dir,
		"--set", "textStyle=uppercase",
		"--set", "projectNameInStatusBar.template=<${project-name}>")
	require.NoError(t, err)
	assert.Equal(t, "<MYPROJ>\n", out)
}

func TestResolve_ConfigFile(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, "settings.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[projectNameInStatusBar]\nsource = \"none\"\n"), 0o644))

	out, _, err := execute(t, "resolve", "-w", root, "-c", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestResolve_WorkspaceFileWithActiveDocument(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "b"), 0o755))
	wsFile := filepath.Join(root, "p.code-workspace")
	require.NoError(t, os.WriteFile(wsFile,
		[]byte(`{"folders":[{"path":"a","name":"Alpha"},{"path":"b","name":"Beta"}]}`), 0o644))

	out, _, err := execute(t, "resolve", "-w", wsFile, "--active", filepath.Join(root, "b", "file.ts"))
	require.NoError(t, err)
	assert.Equal(t, "Beta\n", out)

	out, _, err = execute(t, "resolve", "-w", wsFile)
	require.NoError(t, err)
	assert.Empty(t, out, "no active document in a multi-folder workspace")
}

func TestResolve_Command(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh syntax")
	}
	out, _, err := execute(t, "resolve", "-w", t.TempDir(),
		"--set", "source=commandOutput",
		"--set", "command=printf 'MyProj\\nignored second line\\n'")
	require.NoError(t, err)
	assert.Equal(t, "MyProj\n", out)
}

func TestResolve_FailingCommandLogs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh syntax")
	}
	out, errOut, err := execute(t, "resolve", "-w", t.TempDir(),
		"--set", "source=commandOutput",
		"--set", "command=exit 2")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "command failed")
}

func TestResolve_EmptyCommand(t *testing.T) {
	out, errOut, err := execute(t, "resolve", "-w", t.TempDir(), "--set", "source=commandOutput")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no command configured")
}

func TestResolve_Width(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	require.NoError(t, os.Mkdir(dir, 0o755))

	out, _, err := execute(t, "resolve", "-w", dir, "--width", "12", "--set", "align=left")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "proj"), "got %q", out)
	assert.Contains(t, out, "proj        ")
}

func TestResolve_MissingWorkspace(t *testing.T) {
	_, _, err := execute(t, "resolve", "-w", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides([]string{
		"source=commandOutput",
		"projectNameInStatusBar.alignPriority=7",
		"command=git rev-parse --show-toplevel | xargs basename",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		config.KeySource:        "commandOutput",
		config.KeyAlignPriority: 7,
		config.KeyCommand:       "git rev-parse --show-toplevel | xargs basename",
	}, got)

	_, err = parseOverrides([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseOverrides([]string{"alignPriority=high"})
	assert.Error(t, err)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "error: boom")
}

func TestBarStyle(t *testing.T) {
	style, err := barStyle("")
	require.NoError(t, err)
	assert.Equal(t, statusbar.DefaultTerminalStyle, style)

	style, err = barStyle("Navy")
	require.NoError(t, err)
	assert.Equal(t, statusbar.DefaultTerminalStyle.Background(tcell.ColorNavy), style)

	style, err = barStyle("#102030")
	require.NoError(t, err)
	assert.Equal(t, statusbar.DefaultTerminalStyle.Background(tcell.NewHexColor(0x102030)), style)

	_, err = barStyle("not-a-color")
	assert.Error(t, err)
}

func TestWatch_RejectsUnknownBarColor(t *testing.T) {
	_, _, err := execute(t, "watch", "-w", t.TempDir(), "--bar-color", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bar-color")
}

func TestSession_CloseDetachesFileSources(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, "settings.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[projectNameInStatusBar]\nsource = \"folderName\"\n"), 0o644))
	wsFile := filepath.Join(root, "p.code-workspace")
	require.NoError(t, os.WriteFile(wsFile, []byte(`{"folders":[{"path":"."}]}`), 0o644))

	s, err := newSession(&options{configPath: cfg, workspacePath: wsFile}, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.watch())
	s.close()

	// A source still attached would report the closed watcher here.
	assert.NoError(t, s.configSource.Close())
	assert.NoError(t, s.workspaceSource.Close())
}
