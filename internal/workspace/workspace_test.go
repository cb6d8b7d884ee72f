package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/projectname/internal/event"
)

func collect(t *testing.T, bus event.Bus, topic event.Topic) *[]event.Event {
	t.Helper()
	var got []event.Event
	_, err := bus.Subscribe(topic, func(_ context.Context, ev event.Event) error {
		got = append(got, ev)
		return nil
	})
	require.NoError(t, err)
	return &got
}

func TestNewFolder(t *testing.T) {
	f, err := NewFolder("/w/alpha/", "")
	require.NoError(t, err)
	assert.Equal(t, Folder{Name: "alpha", Path: "/w/alpha"}, f)

	f, err = NewFolder("/w/alpha", "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", f.Name)

	_, err = NewFolder("", "x")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestWorkspace_AddRemoveFolder(t *testing.T) {
	bus := event.NewBus()
	events := collect(t, bus, TopicFoldersChanged)
	ws := New(bus)

	require.NoError(t, ws.AddFolder(Folder{Name: "Alpha", Path: "/w/a"}))
	require.NoError(t, ws.AddFolder(Folder{Name: "Beta", Path: "/w/b"}))
	assert.ErrorIs(t, ws.AddFolder(Folder{Name: "Dup", Path: "/w/a/"}), ErrFolderExists)
	assert.ErrorIs(t, ws.AddFolder(Folder{Name: "Empty"}), ErrInvalidPath)
	assert.Equal(t, 2, ws.FolderCount())

	require.NoError(t, ws.RemoveFolder("/w/a"))
	assert.ErrorIs(t, ws.RemoveFolder("/w/a"), ErrFolderNotFound)
	assert.Equal(t, []Folder{{Name: "Beta", Path: "/w/b"}}, ws.Folders())

	require.Len(t, *events, 3)
	last := (*events)[2].Payload.(FoldersChanged)
	assert.Equal(t, []Folder{{Name: "Alpha", Path: "/w/a"}}, last.Removed)
}

func TestWorkspace_SetFolders(t *testing.T) {
	bus := event.NewBus()
	events := collect(t, bus, TopicFoldersChanged)
	ws := New(bus)

	a := Folder{Name: "Alpha", Path: "/w/a"}
	b := Folder{Name: "Beta", Path: "/w/b"}
	c := Folder{Name: "Gamma", Path: "/w/c"}

	ws.SetFolders([]Folder{a, b})
	ws.SetFolders([]Folder{a, b})
	ws.SetFolders([]Folder{b, c})

	require.Len(t, *events, 2)
	change := (*events)[1].Payload.(FoldersChanged)
	assert.Equal(t, []Folder{c}, change.Added)
	assert.Equal(t, []Folder{a}, change.Removed)
	assert.Equal(t, []Folder{b, c}, ws.Folders())
}

func TestWorkspace_FoldersReturnsCopy(t *testing.T) {
	ws := New(nil)
	ws.SetFolders([]Folder{{Name: "Alpha", Path: "/w/a"}})

	got := ws.Folders()
	got[0].Name = "changed"
	assert.Equal(t, "Alpha", ws.Folders()[0].Name)
}

func TestWorkspace_ActiveDocument(t *testing.T) {
	bus := event.NewBus()
	events := collect(t, bus, TopicActiveEditorChanged)
	ws := New(bus)

	_, ok := ws.ActiveDocument()
	assert.False(t, ok)

	ws.SetActiveDocument("/w/b/file.ts")
	ws.SetActiveDocument("/w/b/file.ts")
	path, ok := ws.ActiveDocument()
	assert.True(t, ok)
	assert.Equal(t, "/w/b/file.ts", path)

	ws.ClearActiveDocument()
	ws.ClearActiveDocument()
	_, ok = ws.ActiveDocument()
	assert.False(t, ok)

	require.Len(t, *events, 2)
	assert.Equal(t, ActiveEditorChanged{Path: "/w/b/file.ts", Active: true}, (*events)[0].Payload)
	assert.Equal(t, ActiveEditorChanged{}, (*events)[1].Payload)
}
