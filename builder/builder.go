package builder

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
	"github.com/dshills/gridcore/history"
	"github.com/dshills/gridcore/store"
)

// Sentinel errors for builder construction and operations.
var (
	// ErrNilRegistry is returned when WithSharing is given a nil registry.
	ErrNilRegistry = errors.New("sharing requires a registry")

	// ErrUnknownViewport is returned when SetViewport names a breakpoint
	// that does not exist.
	ErrUnknownViewport = errors.New("unknown viewport")

	// ErrBuilderClosed is returned when operating on a closed builder.
	ErrBuilderClosed = errors.New("builder is closed")

	// ErrInvalidCanvasID is returned for an empty canvas id.
	ErrInvalidCanvasID = errors.New("canvas id cannot be empty")
)

// Builder is one UI instance's handle on a grid document. Construct with
// New from whatever composition root wires the embedding application; the
// core never reads ambient globals.
type Builder struct {
	cfg        config
	instanceID string

	// st is the unified document interface: a routed store in shared
	// mode, the view store itself otherwise.
	st   store.Store
	view store.Store

	history *history.Manager
	bus     *event.Bus
	logger  *slog.Logger

	mu         sync.Mutex
	components map[string]any
	closed     bool
}

// New creates a builder. Without WithSharing the builder owns a standalone
// document; with it, the builder joins (or creates) the shared document
// under its key and registers itself as an instance.
func New(opts ...Option) (*Builder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.instanceID == "" {
		cfg.instanceID = uuid.NewString()
	}
	if cfg.sharingKey != "" && cfg.registry == nil {
		return nil, ErrNilRegistry
	}

	busOpts := []event.BusOption{event.WithLogger(cfg.logger)}
	if len(cfg.debouncedTopics) > 0 {
		busOpts = append(busOpts, event.WithDebounced(cfg.debouncedTopics...))
	}
	if cfg.debounceDelay > 0 {
		busOpts = append(busOpts, event.WithDebounceDelay(cfg.debounceDelay))
	}

	b := &Builder{
		cfg:        cfg,
		instanceID: cfg.instanceID,
		bus:        event.NewBus(busOpts...),
		logger:     cfg.logger,
		components: make(map[string]any),
	}

	if cfg.sharingKey != "" {
		entry := cfg.registry.GetOrCreate(cfg.sharingKey, cfg.initial)
		cfg.registry.AddInstance(cfg.sharingKey, cfg.instanceID)

		b.view = store.New(newViewDocument(), store.WithLogger(cfg.logger))
		b.st = store.NewRouted(entry.Store, b.view)
		b.history = entry.History
		return b, nil
	}

	doc := cfg.initial
	if doc == nil {
		doc = document.New()
	}
	seedViewDefaults(doc)

	b.view = store.New(doc, store.WithLogger(cfg.logger))
	b.st = b.view
	b.history = history.NewManager(cfg.maxHistory)
	return b, nil
}

// newViewDocument builds the per-instance view state for a sharing
// builder. Its canvases map is never consulted; the routed store serves
// canvases from the shared side.
func newViewDocument() *document.Document {
	doc := document.New()
	seedViewDefaults(doc)
	return doc
}

// seedViewDefaults fills in view state a fresh instance needs to render.
func seedViewDefaults(doc *document.Document) {
	if doc.CurrentViewport == "" {
		doc.CurrentViewport = document.DefaultViewport
	}
	if doc.Breakpoints == nil {
		doc.Breakpoints = document.DefaultBreakpoints()
	}
}

// InstanceID returns the id this builder registers under when sharing.
func (b *Builder) InstanceID() string {
	return b.instanceID
}

// SharingKey returns the sharing key, or "" for a standalone builder.
func (b *Builder) SharingKey() string {
	return b.cfg.sharingKey
}

// State returns the live document. Read-only by contract: mutation goes
// through operations.
func (b *Builder) State() *document.Document {
	return b.st.Get()
}

// Store exposes the unified store for change subscriptions.
func (b *Builder) Store() store.Store {
	return b.st
}

// Events exposes the builder's event bus.
func (b *Builder) Events() *event.Bus {
	return b.bus
}

// CanUndo reports whether an undo is available.
func (b *Builder) CanUndo() bool {
	return b.history.CanUndo()
}

// CanRedo reports whether a redo is available.
func (b *Builder) CanRedo() bool {
	return b.history.CanRedo()
}

// Undo reverses the most recent operation. A no-op when nothing is
// undoable.
func (b *Builder) Undo() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.history.Undo(); err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return nil
		}
		b.emitError("undo", err)
		return err
	}
	b.emitHistory()
	b.bus.Emit(event.TopicStateChanged, event.StateChanged{Reason: "undo"})
	return nil
}

// Redo reapplies the most recently undone operation. A no-op when nothing
// is redoable.
func (b *Builder) Redo() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.history.Redo(); err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			return nil
		}
		b.emitError("redo", err)
		return err
	}
	b.emitHistory()
	b.bus.Emit(event.TopicStateChanged, event.StateChanged{Reason: "redo"})
	return nil
}

// Close detaches the builder. A sharing builder deregisters its instance,
// disposing the shared state if it was the last; a standalone builder
// closes its own store. Idempotent.
func (b *Builder) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	if b.cfg.sharingKey != "" {
		b.cfg.registry.RemoveInstance(b.cfg.sharingKey, b.instanceID)
	}
	b.view.Close()
	b.bus.Close()
}

// checkOpen guards operations on a closed builder.
func (b *Builder) checkOpen() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBuilderClosed
	}
	return nil
}

// push records an applied command and refreshes the reactive history
// flags.
func (b *Builder) push(cmd history.Command) {
	b.history.Push(cmd)
	b.emitHistory()
}

// emitHistory publishes the current undo/redo availability.
func (b *Builder) emitHistory() {
	b.bus.Emit(event.TopicHistoryChanged, event.HistoryChanged{
		CanUndo: b.history.CanUndo(),
		CanRedo: b.history.CanRedo(),
	})
}

// emitError routes an operational error to the observability channel.
func (b *Builder) emitError(op string, err error) {
	b.logger.Debug("builder operation failed", "op", op, "error", err)
	b.bus.Emit(event.TopicError, event.ErrorEvent{Op: op, Err: err})
}
