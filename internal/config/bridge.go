package config

import (
	"context"

	"github.com/dshills/projectname/internal/event"
	"github.com/dshills/projectname/internal/logging"
)

// TopicChanged is published on the bus for every store change. The payload
// is a Change.
const TopicChanged event.Topic = "config.changed"

// PublishChanges forwards every change of store to bus as a TopicChanged
// event. Unsubscribe the result to stop forwarding.
func PublishChanges(store *Store, bus event.Bus, logger *logging.Logger) *Subscription {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("config")

	return store.Subscribe(func(change Change) {
		ev := event.New(TopicChanged, change, "config")
		if err := bus.Publish(context.Background(), ev); err != nil {
			logger.Warn("publish %s: %v", TopicChanged, err)
		}
	})
}
