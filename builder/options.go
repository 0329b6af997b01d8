package builder

import (
	"context"
	"log/slog"
	"time"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
	"github.com/dshills/gridcore/registry"
)

// BeforeDeleteHook is consulted before an item deletion is finalized.
// Returning false vetoes the deletion; returning an error aborts it and
// surfaces the error to the caller. The hook may block (e.g. awaiting a
// user confirmation); the deletion's mutation and command push are deferred
// until it resolves.
type BeforeDeleteHook func(ctx context.Context, item *document.Item) (bool, error)

// Option configures a Builder.
type Option func(*config)

// config contains construction-time configuration for a builder.
type config struct {
	instanceID      string
	sharingKey      string
	registry        *registry.Registry
	initial         *document.Document
	maxHistory      int
	logger          *slog.Logger
	beforeDelete    BeforeDeleteHook
	debouncedTopics []event.Topic
	debounceDelay   time.Duration
}

// defaultConfig returns sensible defaults. The instance id is generated at
// construction when not supplied.
func defaultConfig() config {
	return config{
		maxHistory: 0, // manager default
		logger:     slog.Default(),
	}
}

// WithInstanceID sets the id this builder registers under when sharing.
func WithInstanceID(id string) Option {
	return func(c *config) {
		if id != "" {
			c.instanceID = id
		}
	}
}

// WithSharing attaches the builder to the shared document registered under
// key in the given registry. Builders constructed with the same registry
// and key edit one logical document.
func WithSharing(reg *registry.Registry, key string) Option {
	return func(c *config) {
		c.registry = reg
		c.sharingKey = key
	}
}

// WithInitialDocument seeds the document. In shared mode it only applies
// when this builder is the first to register its key.
func WithInitialDocument(doc *document.Document) Option {
	return func(c *config) {
		c.initial = doc
	}
}

// WithMaxHistory bounds the undo history for a standalone builder. Shared
// builders inherit the registry's setting.
func WithMaxHistory(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxHistory = n
		}
	}
}

// WithLogger sets the logger for the builder, its stores and its bus.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBeforeDelete installs the deletion approval hook.
func WithBeforeDelete(hook BeforeDeleteHook) Option {
	return func(c *config) {
		c.beforeDelete = hook
	}
}

// WithDebouncedTopics marks bus topics as debounced.
func WithDebouncedTopics(topics ...event.Topic) Option {
	return func(c *config) {
		c.debouncedTopics = append(c.debouncedTopics, topics...)
	}
}

// WithDebounceDelay sets the bus debounce window.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.debounceDelay = d
		}
	}
}
