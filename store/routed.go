package store

import (
	"log/slog"

	"github.com/dshills/gridcore/document"
)

// routed presents one unified document interface over two backing stores:
// shared data fields dispatch to the registry-owned store, everything else
// to the per-instance view store.
type routed struct {
	shared Store
	view   Store
}

// NewRouted creates a routing store over a shared store and a per-instance
// view store. Closing the routed store closes only the view side; the
// shared side belongs to the registry.
func NewRouted(shared, view Store) Store {
	return &routed{shared: shared, view: view}
}

// isShared reports whether a field lives in the shared store. The item id
// counter travels with the canvases so ids stay unique across every
// instance of a sharing group.
func isShared(field Field) bool {
	return field == FieldCanvases || field == FieldItemCounter
}

func (r *routed) route(field Field) Store {
	if isShared(field) {
		return r.shared
	}
	return r.view
}

// Get returns a merged document. Canvases is the live shared map, not a
// copy: instances of the same sharing group see each other's mutations
// through it.
func (r *routed) Get() *document.Document {
	shared := r.shared.Get()
	view := r.view.Get()
	return &document.Document{
		Canvases:        shared.Canvases,
		ItemCounter:     shared.ItemCounter,
		Selection:       view.Selection,
		ActiveCanvasID:  view.ActiveCanvasID,
		CurrentViewport: view.CurrentViewport,
		ShowGrid:        view.ShowGrid,
		Breakpoints:     view.Breakpoints,
	}
}

func (r *routed) Replace(field Field, value any) error {
	return r.route(field).Replace(field, value)
}

func (r *routed) OnChange(field Field, fn ChangeFunc) func() {
	return r.route(field).OnChange(field, fn)
}

func (r *routed) Logger() *slog.Logger {
	return r.shared.Logger()
}

func (r *routed) Close() {
	r.view.Close()
}
