package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/event"
	"github.com/dshills/projectname/internal/workspace"
)

func folders(names ...string) []workspace.Folder {
	out := make([]workspace.Folder, 0, len(names))
	for _, n := range names {
		out = append(out, workspace.Folder{Name: n, Path: "/w/" + n})
	}
	return out
}

type managerFixture struct {
	bus     event.Bus
	store   *config.Store
	ws      *workspace.Workspace
	manager *SubscriptionManager

	folderFired int
	editorFired int
}

func newManagerFixture(source string, folderNames ...string) *managerFixture {
	f := &managerFixture{
		bus:   event.NewBus(),
		store: config.NewStore(map[string]any{config.KeySource: source}),
	}
	f.ws = workspace.New(f.bus)
	f.ws.SetFolders(folders(folderNames...))
	f.manager = NewSubscriptionManager(
		f.bus, f.store, f.ws,
		func(fn func()) { fn() },
		func() { f.folderFired++ },
		func() { f.editorFired++ },
		nil,
	)
	return f
}

func (f *managerFixture) counts() (int, int) {
	return f.bus.Count(workspace.TopicFoldersChanged), f.bus.Count(workspace.TopicActiveEditorChanged)
}

func TestSubscriptionManager_Invariant(t *testing.T) {
	f := newManagerFixture("folderName", "a", "b", "c")

	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{Folders: true, Editor: true}, f.manager.State())
	folderSubs, editorSubs := f.counts()
	assert.Equal(t, 1, folderSubs)
	assert.Equal(t, 1, editorSubs)

	f.manager.Reconcile()
	folderSubs, editorSubs = f.counts()
	assert.Equal(t, 1, folderSubs, "reconcile must not duplicate subscriptions")
	assert.Equal(t, 1, editorSubs)

	f.store.Set(config.KeySource, "none", "test")
	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{}, f.manager.State())
	folderSubs, editorSubs = f.counts()
	assert.Zero(t, folderSubs)
	assert.Zero(t, editorSubs)

	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{}, f.manager.State())
}

func TestSubscriptionManager_EditorFollowsFolderCount(t *testing.T) {
	f := newManagerFixture("commandOutput", "a")

	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{Folders: true}, f.manager.State())

	f.ws.SetFolders(folders("a", "b"))
	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{Folders: true, Editor: true}, f.manager.State())

	f.ws.SetFolders(nil)
	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{Folders: true}, f.manager.State())
	_, editorSubs := f.counts()
	assert.Zero(t, editorSubs)
}

func TestSubscriptionManager_HandlersFire(t *testing.T) {
	f := newManagerFixture("folderName", "a", "b")
	f.manager.Reconcile()

	f.ws.SetFolders(folders("a", "b", "c"))
	f.ws.SetActiveDocument("/w/b/x")

	assert.Equal(t, 1, f.folderFired)
	assert.Equal(t, 1, f.editorFired)
}

func TestSubscriptionManager_Release(t *testing.T) {
	f := newManagerFixture("folderName", "a", "b")
	f.manager.Reconcile()
	f.manager.Release()
	f.manager.Release()

	assert.Equal(t, SubscriptionState{}, f.manager.State())
	require.NoError(t, f.bus.Publish(context.Background(),
		event.New(workspace.TopicFoldersChanged, workspace.FoldersChanged{}, "test")))
	assert.Zero(t, f.folderFired)
}

func TestSubscriptionManager_ClosedBus(t *testing.T) {
	f := newManagerFixture("folderName", "a", "b")
	f.bus.Close()

	f.manager.Reconcile()
	assert.Equal(t, SubscriptionState{}, f.manager.State())
}
