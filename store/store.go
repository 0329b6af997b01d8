package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/gridcore/document"
)

// Field names one replaceable top-level slot of the document.
type Field string

const (
	FieldCanvases     Field = "canvases"
	FieldItemCounter  Field = "itemCounter"
	FieldSelection    Field = "selection"
	FieldActiveCanvas Field = "activeCanvas"
	FieldViewport     Field = "viewport"
	FieldShowGrid     Field = "showGrid"
	FieldBreakpoints  Field = "breakpoints"
)

// Sentinel errors for store operations.
var (
	// ErrUnknownField is returned for a Field the store does not route.
	ErrUnknownField = errors.New("unknown store field")

	// ErrFieldType is returned when a Replace value has the wrong type
	// for its field.
	ErrFieldType = errors.New("wrong value type for store field")

	// ErrStoreClosed is returned when mutating a disposed store.
	ErrStoreClosed = errors.New("store is closed")
)

// ChangeFunc is invoked after a qualifying field replacement with the new
// and old values of that field.
type ChangeFunc func(newValue, oldValue any)

// Store holds a typed document and notifies on structural replacement.
type Store interface {
	// Get returns the live document. Callers must not mutate it in
	// place; they copy the field they change and publish via Replace.
	Get() *document.Document

	// Replace swaps one top-level field for a new value and notifies
	// that field's watchers with (new, old).
	Replace(field Field, value any) error

	// OnChange registers a watcher for a field. The returned function
	// unsubscribes it.
	OnChange(field Field, fn ChangeFunc) (unsubscribe func())

	// Logger exposes the store's logger so collaborators mutating
	// through it log to the same sink.
	Logger() *slog.Logger

	// Close releases all subscriptions. Further Replace calls fail with
	// ErrStoreClosed; Get keeps returning the final document.
	Close()
}

// Option configures a store.
type Option func(*docStore)

// WithLogger sets the logger used for watcher diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *docStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type watcher struct {
	id uint64
	fn ChangeFunc
}

type docStore struct {
	mu       sync.Mutex
	doc      *document.Document
	watchers map[Field][]watcher
	nextID   uint64
	closed   bool
	logger   *slog.Logger
}

// New creates a store seeded with the given document. A nil initial
// document seeds an empty one (no canvases).
func New(initial *document.Document, opts ...Option) Store {
	if initial == nil {
		initial = document.New()
	}
	if initial.Canvases == nil {
		initial.Canvases = make(map[string]*document.Canvas)
	}
	s := &docStore{
		doc:      initial,
		watchers: make(map[Field][]watcher),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *docStore) Get() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *docStore) Logger() *slog.Logger {
	return s.logger
}

// Replace swaps the field, then invokes watchers outside the lock so a
// watcher reading the store does not deadlock.
func (s *docStore) Replace(field Field, value any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}

	old, err := s.swap(field, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	watchers := make([]watcher, len(s.watchers[field]))
	copy(watchers, s.watchers[field])
	s.mu.Unlock()

	for _, w := range watchers {
		w.fn(value, old)
	}
	return nil
}

// swap assigns the new value and returns the previous one. Caller holds the
// lock.
func (s *docStore) swap(field Field, value any) (any, error) {
	switch field {
	case FieldCanvases:
		v, ok := value.(map[string]*document.Canvas)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects map[string]*document.Canvas", ErrFieldType, field)
		}
		old := s.doc.Canvases
		s.doc.Canvases = v
		return old, nil
	case FieldItemCounter:
		v, ok := value.(int)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects int", ErrFieldType, field)
		}
		old := s.doc.ItemCounter
		s.doc.ItemCounter = v
		return old, nil
	case FieldSelection:
		v, ok := value.(document.Selection)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects document.Selection", ErrFieldType, field)
		}
		old := s.doc.Selection
		s.doc.Selection = v
		return old, nil
	case FieldActiveCanvas:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects string", ErrFieldType, field)
		}
		old := s.doc.ActiveCanvasID
		s.doc.ActiveCanvasID = v
		return old, nil
	case FieldViewport:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects string", ErrFieldType, field)
		}
		old := s.doc.CurrentViewport
		s.doc.CurrentViewport = v
		return old, nil
	case FieldShowGrid:
		v, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects bool", ErrFieldType, field)
		}
		old := s.doc.ShowGrid
		s.doc.ShowGrid = v
		return old, nil
	case FieldBreakpoints:
		v, ok := value.(map[string]document.Breakpoint)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects map[string]document.Breakpoint", ErrFieldType, field)
		}
		old := s.doc.Breakpoints
		s.doc.Breakpoints = v
		return old, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (s *docStore) OnChange(field Field, fn ChangeFunc) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	s.watchers[field] = append(s.watchers[field], watcher{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		ws := s.watchers[field]
		for i, w := range ws {
			if w.id == id {
				s.watchers[field] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		if len(s.watchers[field]) == 0 {
			delete(s.watchers, field)
		}
	}
}

func (s *docStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.watchers = make(map[Field][]watcher)
}
