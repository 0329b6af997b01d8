package event

import (
	"reflect"
	"sync"

	"github.com/bep/debounce"
	"github.com/google/uuid"
)

// Topic names an event channel, e.g. "item.added".
type Topic string

// HandlerFunc receives an event payload.
type HandlerFunc func(payload any)

// Subscription is a handle to one registered handler.
type Subscription struct {
	id    string
	topic Topic
	fn    HandlerFunc
	fnPtr uintptr
}

// ID returns the subscription's unique id.
func (s *Subscription) ID() string { return s.id }

// Topic returns the topic the subscription listens on.
func (s *Subscription) Topic() Topic { return s.topic }

// Bus dispatches events to subscribers synchronously and in registration
// order. It is safe for concurrent use, though the builder core drives it
// single-threaded by contract.
type Bus struct {
	mu     sync.Mutex
	config busConfig
	subs   map[Topic][]*Subscription
	byID   map[string]*Subscription

	// Debounce state, keyed by topic.
	debouncers map[Topic]func(func())
	pending    map[Topic]any
	closed     bool
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Bus{
		config:     config,
		subs:       make(map[Topic][]*Subscription),
		byID:       make(map[string]*Subscription),
		debouncers: make(map[Topic]func(func())),
		pending:    make(map[Topic]any),
	}
}

// Subscribe registers a handler for a topic. Registering the same function
// for the same topic twice is a no-op returning the existing subscription.
func (b *Bus) Subscribe(topic Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	ptr := reflect.ValueOf(fn).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	for _, existing := range b.subs[topic] {
		if existing.fnPtr == ptr {
			return existing, nil
		}
	}

	sub := &Subscription{
		id:    uuid.NewString(),
		topic: topic,
		fn:    fn,
		fnPtr: ptr,
	}
	b.subs[topic] = append(b.subs[topic], sub)
	b.byID[sub.id] = sub
	return sub, nil
}

// Unsubscribe removes a subscription. Removing the last subscription for a
// topic frees the topic's slot.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byID[sub.id]; !ok {
		return ErrSubscriptionNotFound
	}
	b.removeLocked(sub)
	return nil
}

// Off removes the subscription registered for this exact function on this
// topic, if any.
func (b *Bus) Off(topic Topic, fn HandlerFunc) {
	if fn == nil {
		return
	}
	ptr := reflect.ValueOf(fn).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[topic] {
		if sub.fnPtr == ptr {
			b.removeLocked(sub)
			return
		}
	}
}

// removeLocked deletes a subscription from both indexes. Caller holds the
// lock.
func (b *Bus) removeLocked(sub *Subscription) {
	subs := b.subs[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.topic]) == 0 {
		delete(b.subs, sub.topic)
	}
	delete(b.byID, sub.id)
}

// Emit delivers a payload to all current subscribers of the topic. For a
// debounced topic the payload is parked and the topic's timer restarted;
// only the most recent payload is delivered when the timer fires.
func (b *Bus) Emit(topic Topic, payload any) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}

	if b.config.debounced[topic] {
		b.pending[topic] = payload
		d, ok := b.debouncers[topic]
		if !ok {
			d = debounce.New(b.config.debounceDelay)
			b.debouncers[topic] = d
		}
		b.mu.Unlock()
		d(func() { b.flush(topic) })
		return
	}

	subs := b.snapshotLocked(topic)
	b.mu.Unlock()

	b.dispatch(topic, payload, subs)
}

// flush delivers the latest parked payload for a debounced topic. Runs on
// the debounce timer goroutine.
func (b *Bus) flush(topic Topic) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	payload, ok := b.pending[topic]
	delete(b.pending, topic)
	subs := b.snapshotLocked(topic)
	b.mu.Unlock()

	if !ok {
		return
	}
	b.dispatch(topic, payload, subs)
}

// snapshotLocked copies the subscriber list so handlers that subscribe or
// unsubscribe mid-dispatch do not perturb the current delivery. Caller
// holds the lock.
func (b *Bus) snapshotLocked(topic Topic) []*Subscription {
	subs := b.subs[topic]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*Subscription, len(subs))
	copy(out, subs)
	return out
}

// dispatch invokes handlers in registration order. A panicking handler is
// logged and swallowed so it cannot block the rest or reach the emitter.
func (b *Bus) dispatch(topic Topic, payload any, subs []*Subscription) {
	for _, sub := range subs {
		b.invoke(topic, payload, sub)
	}
}

func (b *Bus) invoke(topic Topic, payload any, sub *Subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.config.logger.Error("event handler panicked",
				"topic", string(topic),
				"subscription", sub.id,
				"panic", r)
		}
	}()
	sub.fn(payload)
}

// SubscriberCount returns the number of handlers registered for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// Close drops all subscriptions and any pending debounced payloads. Emits
// after Close are silently ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[Topic][]*Subscription)
	b.byID = make(map[string]*Subscription)
	b.pending = make(map[Topic]any)
	b.debouncers = make(map[Topic]func(func()))
}
