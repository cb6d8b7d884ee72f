package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single published notification. Handlers must not mutate Payload.
type Event struct {
	ID        string
	Topic     Topic
	Source    string
	Payload   any
	Timestamp time.Time
}

// New stamps a fresh event with a unique ID and the current time.
func New(t Topic, payload any, source string) Event {
	return Event{
		ID:        uuid.NewString(),
		Topic:     t,
		Source:    source,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}
