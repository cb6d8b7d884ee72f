package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// HandlerFunc processes a delivered event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Bus is the event bus interface.
type Bus interface {
	// Publish delivers the event synchronously to every active subscription
	// whose pattern matches the event topic.
	Publish(ctx context.Context, ev Event) error

	// Subscribe registers fn for events matching the topic pattern.
	Subscribe(pattern Topic, fn HandlerFunc) (Subscription, error)

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Count returns the number of active subscriptions registered with
	// exactly this pattern.
	Count(pattern Topic) int

	// Stats returns current bus statistics.
	Stats() Stats

	// Close removes all subscriptions and rejects further use.
	Close()
}

// Stats contains bus counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// bus is the default Bus implementation.
type bus struct {
	mu     sync.RWMutex
	subs   map[string]*subscription
	order  []string
	closed bool

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus() Bus {
	return &bus{subs: make(map[string]*subscription)}
}

// Publish sends an event to all matching subscriptions in registration order.
// Handler errors and panics do not stop delivery; they are joined and returned.
func (b *bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	matched := make([]*subscription, 0, len(b.order))
	for _, id := range b.order {
		sub := b.subs[id]
		if sub.IsActive() && ev.Topic.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	// Handlers run outside the lock so they may subscribe or unsubscribe.
	var errs []error
	for _, sub := range matched {
		if !sub.IsActive() {
			continue
		}
		if err := b.dispatch(ctx, sub, ev); err != nil {
			errs = append(errs, err)
			continue
		}
		b.eventsDelivered.Add(1)
	}

	return errors.Join(errs...)
}

func (b *bus) dispatch(ctx context.Context, sub *subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = &PanicError{
				SubscriptionID: sub.id,
				Topic:          ev.Topic,
				Value:          r,
				Stack:          string(debug.Stack()),
			}
		}
	}()

	if herr := sub.handler(ctx, ev); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{SubscriptionID: sub.id, Topic: ev.Topic, Err: herr}
	}
	return nil
}

// Subscribe creates a new subscription for the given topic pattern.
// This method is safe to call concurrently.
func (b *bus) Subscribe(pattern Topic, fn HandlerFunc) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	sub := newSubscription(uuid.NewString(), pattern, fn)
	b.subs[sub.id] = sub
	b.order = append(b.order, sub.id)
	return sub, nil
}

// Unsubscribe removes a subscription.
// This method is safe to call concurrently.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub.ID()]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(b.subs, sub.ID())
	for i, id := range b.order {
		if id == sub.ID() {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of active subscriptions for an exact pattern.
func (b *bus) Count(pattern Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, sub := range b.subs {
		if sub.pattern == pattern && sub.IsActive() {
			n++
		}
	}
	return n
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}

// Close cancels every subscription. Subsequent calls are no-ops.
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.Cancel()
	}
	b.subs = make(map[string]*subscription)
	b.order = nil
}
