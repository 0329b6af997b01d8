package event

import "errors"

// Sentinel errors for the event bus.
var (
	// ErrBusClosed is returned when subscribing to a closed bus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrInvalidTopic is returned when a topic is empty.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidSubscription is returned when a nil subscription is
	// passed to Unsubscribe.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when unsubscribing a
	// subscription the bus no longer holds.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
