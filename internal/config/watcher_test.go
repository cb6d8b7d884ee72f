package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/projectname/internal/fswatch"
)

func TestFileSource_LoadMissingFileUsesDefaults(t *testing.T) {
	store := NewStore(map[string]any{KeySource: "none"})
	src := NewFileSource(filepath.Join(t.TempDir(), "settings.toml"), store, nil)

	require.NoError(t, src.Load())
	assert.Equal(t, DefaultSettings(), store.Settings())
}

func TestFileSource_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[projectNameInStatusBar]\nsource = \"none\"\n"), 0o644))

	store := NewStore(nil)
	src := NewFileSource(path, store, nil)
	require.NoError(t, src.Load())
	assert.Equal(t, SourceNone, store.Settings().Source)

	w, err := fswatch.New(fswatch.WithDebounce(10 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	reloaded := make(chan struct{}, 4)
	store.Subscribe(func(c Change) {
		if c.Type == ChangeReload {
			reloaded <- struct{}{}
		}
	})

	require.NoError(t, src.Watch(w))
	require.NoError(t, os.WriteFile(path, []byte("[projectNameInStatusBar]\nsource = \"commandOutput\"\n"), 0o644))

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, SourceCommandOutput, store.Settings().Source)
	assert.NoError(t, src.Close())
}
