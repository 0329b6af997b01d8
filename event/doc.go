// Package event provides the synchronous publish/subscribe bus the builder
// core emits domain events through.
//
// # Delivery
//
// Emit invokes every current subscriber for a topic in registration order,
// on the calling goroutine. Each handler invocation is individually
// isolated: a panicking handler is recovered and logged at the bus boundary
// and never prevents the remaining handlers from running or propagates back
// to the emitter.
//
// # Idempotent subscription
//
// Subscribing the same function twice for the same topic is a no-op; the
// existing subscription is returned. Unsubscribing the last handler for a
// topic frees its slot.
//
// # Debouncing
//
// Topics marked debounced via WithDebounced do not deliver immediately.
// Each emit stores the payload and (re)starts the topic's timer; only the
// most recent payload survives, delivered once the configured delay elapses
// with no further emits. The delay is per bus, not per call.
package event
