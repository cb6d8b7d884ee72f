// Package app runs the status bar controller: a single event loop that owns
// the widget and the event subscriptions, fed by the configuration store,
// the workspace and command completions.
package app

import (
	"context"
	"sync"

	"github.com/dshills/projectname/internal/logging"
)

// Loop runs posted tasks one at a time on a single goroutine.
//
// Posting never blocks: the queue is unbounded so tasks may post further
// tasks. Tasks still queued when the loop stops are dropped.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once

	logger *logging.Logger
}

// NewLoop creates a loop. Call Start to run it.
func NewLoop(logger *logging.Logger) *Loop {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loop{
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger.WithComponent("loop"),
	}
}

// Start runs the loop on a new goroutine. Later calls are no-ops.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

// Post queues fn. It returns false when the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Flush waits until every task posted before it has run.
// It must not be called from the loop goroutine.
func (l *Loop) Flush(ctx context.Context) error {
	ch := make(chan struct{})
	if !l.Post(func() { close(ch) }) {
		return ErrLoopStopped
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Stop ends the loop after the running task and waits for it to exit.
// It must not be called from the loop goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.quit)
	})

	// A loop that was never started has nothing to wait for.
	l.startOnce.Do(func() { close(l.done) })
	<-l.done
}

// Done is closed when the loop has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}

		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			l.exec(fn)
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panic: %v", r)
		}
	}()
	fn()
}
