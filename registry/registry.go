package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/history"
	"github.com/dshills/gridcore/store"
)

// Entry is one shared {store, history} pair plus its reference bookkeeping.
type Entry struct {
	Store   store.Store
	History *history.Manager

	refCount  int
	instances map[string]struct{}
}

// RefCount returns the number of attached instances.
func (e *Entry) RefCount() int { return e.refCount }

// Instances returns the attached instance ids, sorted.
func (e *Entry) Instances() []string {
	out := make([]string, 0, len(e.instances))
	for id := range e.instances {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for lifecycle warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxHistory sets the history capacity for newly created entries.
func WithMaxHistory(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxHistory = n
		}
	}
}

// Registry is a reference-counted map from sharing key to shared state.
// Same key means one shared document; distinct keys are fully isolated.
type Registry struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	logger     *slog.Logger
	maxHistory int
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:    make(map[string]*Entry),
		logger:     slog.Default(),
		maxHistory: history.DefaultMaxHistory,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the entry for key, creating it with refCount 0 when
// absent. initial seeds the new store's document and is ignored when the
// key already exists; nil initial seeds an empty canvases mapping.
func (r *Registry) GetOrCreate(key string, initial *document.Document) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		return e
	}

	e := &Entry{
		Store:     store.New(initial, store.WithLogger(r.logger)),
		History:   history.NewManager(r.maxHistory),
		instances: make(map[string]struct{}),
	}
	r.entries[key] = e
	return e
}

// Get returns the entry for key, or false when the key is unknown or was
// disposed. Callers must recreate disposed keys via GetOrCreate.
func (r *Registry) Get(key string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	return e, ok
}

// AddInstance records an instance attachment and increments the reference
// count. Unknown keys warn and do nothing.
func (r *Registry) AddInstance(key, instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		r.logger.Warn("add instance for unknown sharing key", "key", key, "instance", instanceID)
		return
	}
	if _, dup := e.instances[instanceID]; dup {
		r.logger.Warn("instance already attached", "key", key, "instance", instanceID)
		return
	}
	e.instances[instanceID] = struct{}{}
	e.refCount++
}

// RemoveInstance removes an instance attachment and decrements the
// reference count. When the count reaches zero the entry is disposed
// synchronously. Over-release (unknown key, or an instance that was never
// attached or already detached) is clamped and logged, never an error:
// instances may detach after a sibling disposed the key.
func (r *Registry) RemoveInstance(key, instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		r.logger.Warn("remove instance for unknown sharing key", "key", key, "instance", instanceID)
		return
	}
	if _, attached := e.instances[instanceID]; !attached {
		r.logger.Warn("remove instance that is not attached", "key", key, "instance", instanceID)
		return
	}
	delete(e.instances, instanceID)
	e.refCount--
	if e.refCount <= 0 {
		r.disposeLocked(key, e)
	}
}

// Dispose forcibly removes a key regardless of its reference count.
func (r *Registry) Dispose(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return
	}
	if e.refCount > 0 {
		r.logger.Warn("disposing sharing key with attached instances",
			"key", key, "refCount", e.refCount)
	}
	r.disposeLocked(key, e)
}

// disposeLocked releases the entry's store subscriptions, clears its undo
// history and deletes the key. Caller holds the lock.
func (r *Registry) disposeLocked(key string, e *Entry) {
	e.Store.Close()
	e.History.Clear()
	delete(r.entries, key)
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Keys returns the live sharing keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
