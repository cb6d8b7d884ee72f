package app

import (
	"context"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/event"
	"github.com/dshills/projectname/internal/logging"
	"github.com/dshills/projectname/internal/workspace"
)

// FolderCounter reports how many workspace folders are open.
type FolderCounter interface {
	FolderCount() int
}

// SubscriptionState reports which optional subscriptions are held.
type SubscriptionState struct {
	Folders bool
	Editor  bool
}

// SubscriptionManager keeps the workspace-folder and active-editor
// subscriptions consistent with the settings and the workspace shape.
//
// The folder subscription exists iff the source is not none. The editor
// subscription exists iff the source is not none and more than one folder is
// open. All methods must be called from the loop; bus handlers re-post onto
// it through dispatch.
type SubscriptionManager struct {
	bus      event.Bus
	config   config.Reader
	folders  FolderCounter
	dispatch func(func())
	logger   *logging.Logger

	onFoldersChanged func()
	onEditorChanged  func()

	folderSub event.Subscription
	editorSub event.Subscription
}

// NewSubscriptionManager creates a manager holding no subscriptions.
// onFoldersChanged and onEditorChanged run through dispatch when the
// corresponding events fire.
func NewSubscriptionManager(
	bus event.Bus,
	cfg config.Reader,
	folders FolderCounter,
	dispatch func(func()),
	onFoldersChanged, onEditorChanged func(),
	logger *logging.Logger,
) *SubscriptionManager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SubscriptionManager{
		bus:              bus,
		config:           cfg,
		folders:          folders,
		dispatch:         dispatch,
		onFoldersChanged: onFoldersChanged,
		onEditorChanged:  onEditorChanged,
		logger:           logger.WithComponent("subscriptions"),
	}
}

// Reconcile creates or releases subscriptions to match the current settings
// and folder count. Calling it again with unchanged inputs does nothing.
func (m *SubscriptionManager) Reconcile() {
	if config.ReadSource(m.config) == config.SourceNone {
		m.release(&m.folderSub)
		m.release(&m.editorSub)
		return
	}

	if m.folderSub == nil {
		m.folderSub = m.subscribe(workspace.TopicFoldersChanged, m.onFoldersChanged)
	}

	if m.folders.FolderCount() > 1 {
		if m.editorSub == nil {
			m.editorSub = m.subscribe(workspace.TopicActiveEditorChanged, m.onEditorChanged)
		}
	} else {
		m.release(&m.editorSub)
	}
}

// Release drops both subscriptions.
func (m *SubscriptionManager) Release() {
	m.release(&m.folderSub)
	m.release(&m.editorSub)
}

// State reports the subscriptions currently held.
func (m *SubscriptionManager) State() SubscriptionState {
	return SubscriptionState{
		Folders: m.folderSub != nil,
		Editor:  m.editorSub != nil,
	}
}

func (m *SubscriptionManager) subscribe(topic event.Topic, fn func()) event.Subscription {
	sub, err := m.bus.Subscribe(topic, func(context.Context, event.Event) error {
		m.dispatch(fn)
		return nil
	})
	if err != nil {
		m.logger.Warn("subscribe %s: %v", topic, err)
		return nil
	}
	m.logger.Debug("subscribed to %s", topic)
	return sub
}

func (m *SubscriptionManager) release(sub *event.Subscription) {
	if *sub == nil {
		return
	}
	if err := m.bus.Unsubscribe(*sub); err != nil {
		m.logger.Debug("unsubscribe %s: %v", (*sub).Topic(), err)
	} else {
		m.logger.Debug("unsubscribed from %s", (*sub).Topic())
	}
	*sub = nil
}
