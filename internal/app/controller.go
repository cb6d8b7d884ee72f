package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/event"
	"github.com/dshills/projectname/internal/logging"
	"github.com/dshills/projectname/internal/process"
	"github.com/dshills/projectname/internal/resolver"
	"github.com/dshills/projectname/internal/statusbar"
)

// Host is the workspace the controller observes.
// *workspace.Workspace satisfies it.
type Host interface {
	resolver.Host
	FolderCounter
}

// Options configures a Controller.
type Options struct {
	// Config supplies the projectNameInStatusBar settings.
	Config config.Reader
	// Bus carries config.changed and workspace events.
	Bus event.Bus
	// Host is the workspace.
	Host Host
	// Runner runs commands. Defaults to a process.ShellRunner.
	Runner process.Runner
	// Logger is the diagnostic channel. Defaults to a discarding logger.
	Logger *logging.Logger
	// OnItem is called on the loop with the widget right after it is
	// created, before the first refresh.
	OnItem func(*statusbar.Item)
}

// Controller owns the status bar item and wires configuration and workspace
// events to the subscription manager and the presenter.
//
// Every handler, reconcile, refresh and command completion runs on the
// controller's loop.
type Controller struct {
	opts   Options
	loop   *Loop
	logger *logging.Logger

	mu     sync.Mutex
	active bool
	ctx    context.Context
	cancel context.CancelFunc

	// Owned by the loop.
	item      *statusbar.Item
	presenter *statusbar.Presenter
	subs      *SubscriptionManager
	configSub event.Subscription
	released  bool
}

// NewController creates an inactive controller.
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Runner == nil {
		opts.Runner = process.NewShellRunner()
	}
	return &Controller{
		opts:   opts,
		loop:   NewLoop(opts.Logger),
		logger: opts.Logger.WithComponent("controller"),
	}
}

// Activate starts the loop, creates the item with the alignment and priority
// configured at this moment, registers the configuration listener and runs
// the first reconcile and refresh. It returns once that work is done.
//
// On error, including ctx ending before activation completes, everything
// set up so far is released and the controller stays inactive.
func (c *Controller) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrAlreadyActive
	}
	c.active = true
	c.loop = NewLoop(c.opts.Logger)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	loop := c.loop
	c.mu.Unlock()

	loop.Start()

	errc := make(chan error, 1)
	loop.Post(func() { errc <- c.activate() })

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		c.shutdown()
		return err
	}
	return nil
}

func (c *Controller) activate() error {
	c.released = false
	settings := config.Read(c.opts.Config)
	c.item = statusbar.NewItem(settings.Align, settings.AlignPriority)
	if c.opts.OnItem != nil {
		c.opts.OnItem(c.item)
	}

	r := resolver.New(c.opts.Config, c.opts.Host, c.opts.Runner, c.opts.Logger)
	c.presenter = statusbar.NewPresenter(c.opts.Config, r, c.item, c.post)
	c.subs = NewSubscriptionManager(
		c.opts.Bus,
		c.opts.Config,
		c.opts.Host,
		c.post,
		c.reconcileAndRefresh,
		c.Refresh,
		c.opts.Logger,
	)

	sub, err := c.opts.Bus.Subscribe(config.TopicChanged, func(context.Context, event.Event) error {
		c.post(c.reconcileAndRefresh)
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", config.TopicChanged, err)
	}
	c.configSub = sub

	c.logger.Debug("activated: align=%s priority=%d", settings.Align, settings.AlignPriority)
	c.reconcileAndRefresh()
	return nil
}

// Deactivate releases the configuration listener, both subscriptions and the
// item, cancels running commands and stops the loop.
func (c *Controller) Deactivate() error {
	if !c.Active() {
		return ErrNotActive
	}
	c.shutdown()
	return nil
}

// shutdown runs deactivate after any task already queued, so a half-finished
// activate is undone too.
func (c *Controller) shutdown() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	cancel, loop := c.cancel, c.loop
	c.mu.Unlock()

	done := make(chan struct{})
	if loop.Post(func() {
		defer close(done)
		c.deactivate()
	}) {
		<-done
	}

	cancel()
	loop.Stop()
}

func (c *Controller) deactivate() {
	if c.configSub != nil {
		_ = c.opts.Bus.Unsubscribe(c.configSub)
		c.configSub = nil
	}
	if c.subs != nil {
		c.subs.Release()
	}
	if c.item != nil {
		c.item.Dispose()
	}
	c.released = true
	c.logger.Debug("deactivated")
}

// Reconcile runs the subscription manager. Must be called on the loop.
func (c *Controller) Reconcile() {
	if c.released {
		return
	}
	c.subs.Reconcile()
}

// Refresh re-resolves the name and updates the item. Must be called on the
// loop.
func (c *Controller) Refresh() {
	if c.released {
		return
	}
	c.presenter.Refresh(c.ctx)
}

func (c *Controller) reconcileAndRefresh() {
	c.Reconcile()
	c.Refresh()
}

// Post schedules fn on the loop.
func (c *Controller) Post(fn func()) bool {
	return c.currentLoop().Post(fn)
}

// Flush waits for every task posted so far to run.
func (c *Controller) Flush(ctx context.Context) error {
	return c.currentLoop().Flush(ctx)
}

func (c *Controller) currentLoop() *Loop {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop
}

// Active reports whether the controller is between Activate and Deactivate.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Item returns the status bar item, or nil before activation.
func (c *Controller) Item() *statusbar.Item {
	if !c.Active() {
		return c.item
	}
	loop := c.currentLoop()
	var it *statusbar.Item
	done := make(chan struct{})
	if !loop.Post(func() {
		it = c.item
		close(done)
	}) {
		return c.item
	}
	select {
	case <-done:
	case <-loop.Done():
	}
	return it
}

// Subscriptions reports which optional subscriptions are held.
func (c *Controller) Subscriptions() SubscriptionState {
	var st SubscriptionState
	if !c.Active() {
		return st
	}
	loop := c.currentLoop()
	done := make(chan struct{})
	if !loop.Post(func() {
		if c.subs != nil {
			st = c.subs.State()
		}
		close(done)
	}) {
		return st
	}
	select {
	case <-done:
	case <-loop.Done():
	}
	return st
}

func (c *Controller) post(fn func()) {
	if !c.currentLoop().Post(fn) {
		c.logger.Debug("dropped task: loop stopped")
	}
}
