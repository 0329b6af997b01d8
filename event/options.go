package event

import (
	"log/slog"
	"time"
)

// DefaultDebounceDelay is the delay applied to debounced topics when no
// override is configured.
const DefaultDebounceDelay = 300 * time.Millisecond

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	// debounced marks topics whose delivery is deferred and collapsed.
	debounced map[Topic]bool

	// debounceDelay is the per-bus debounce window.
	debounceDelay time.Duration

	// logger receives swallowed handler panics.
	logger *slog.Logger
}

// defaultBusConfig returns sensible default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		debounced:     make(map[Topic]bool),
		debounceDelay: DefaultDebounceDelay,
		logger:        slog.Default(),
	}
}

// WithDebounced marks topics as debounced.
func WithDebounced(topics ...Topic) BusOption {
	return func(c *busConfig) {
		for _, t := range topics {
			c.debounced[t] = true
		}
	}
}

// WithDebounceDelay sets the debounce window for all debounced topics.
func WithDebounceDelay(d time.Duration) BusOption {
	return func(c *busConfig) {
		if d > 0 {
			c.debounceDelay = d
		}
	}
}

// WithLogger sets the logger for handler diagnostics.
func WithLogger(logger *slog.Logger) BusOption {
	return func(c *busConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
