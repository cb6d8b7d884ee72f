package event

import "sync/atomic"

// Subscription is the handle returned by Bus.Subscribe.
type Subscription interface {
	ID() string
	// Topic is the pattern given to Subscribe.
	Topic() Topic
	IsActive() bool
	// Cancel stops delivery without removing the subscription from the bus.
	Cancel()
}

type subscription struct {
	id      string
	pattern Topic
	handler HandlerFunc
	dead    atomic.Bool
}

func newSubscription(id string, pattern Topic, h HandlerFunc) *subscription {
	return &subscription{id: id, pattern: pattern, handler: h}
}

func (s *subscription) ID() string     { return s.id }
func (s *subscription) Topic() Topic   { return s.pattern }
func (s *subscription) IsActive() bool { return !s.dead.Load() }
func (s *subscription) Cancel()        { s.dead.Store(true) }
