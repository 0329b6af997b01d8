package command

import (
	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/store"
)

// Store is the slice of the reactive store commands mutate through. Both
// the standalone store and the routed shared store satisfy it.
type Store = store.Store

// replaceCanvases publishes a new canvases map through the store.
func replaceCanvases(st Store, canvases map[string]*document.Canvas) error {
	return st.Replace(store.FieldCanvases, canvases)
}

// clearSelectionIfItem clears the selection when the given item is the one
// currently selected. Both selection fields change together.
func clearSelectionIfItem(st Store, itemID string) {
	doc := st.Get()
	if doc.SelectedItemID == itemID && itemID != "" {
		_ = st.Replace(store.FieldSelection, document.Selection{})
	}
}

// clearSelectionIfCanvas clears the selection when the selected item lives
// on the given canvas.
func clearSelectionIfCanvas(st Store, canvasID string) {
	doc := st.Get()
	if doc.SelectedCanvasID == canvasID && canvasID != "" {
		_ = st.Replace(store.FieldSelection, document.Selection{})
	}
}
