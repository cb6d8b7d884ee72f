package event

import (
	"errors"
	"fmt"
)

var (
	ErrBusClosed            = errors.New("event: bus closed")
	ErrInvalidTopic         = errors.New("event: invalid topic")
	ErrInvalidSubscription  = errors.New("event: nil subscription")
	ErrSubscriptionNotFound = errors.New("event: unknown subscription")
	ErrNilHandler           = errors.New("event: nil handler")

	// ErrHandlerPanic matches every PanicError.
	ErrHandlerPanic = errors.New("event: handler panicked")
)

// HandlerError reports a handler that returned an error during Publish.
type HandlerError struct {
	SubscriptionID string
	Topic          Topic
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("event: %s handler %s: %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// PanicError reports a handler that panicked during Publish. Stack holds the
// goroutine stack at the point of recovery.
type PanicError struct {
	SubscriptionID string
	Topic          Topic
	Value          any
	Stack          string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("event: %s handler %s panicked: %v", e.Topic, e.SubscriptionID, e.Value)
}

func (e *PanicError) Is(target error) bool { return target == ErrHandlerPanic }
