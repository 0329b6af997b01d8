package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/store"
)

// newTestStore seeds a store with one canvas holding the given items. The
// canvas z-index counter is left one past the highest item.
func newTestStore(canvasID string, items ...*document.Item) store.Store {
	doc := document.New()
	cv := document.NewCanvas()
	cv.Items = items
	cv.ZIndexCounter = len(items) + 1
	doc.Canvases[canvasID] = cv
	doc.ItemCounter = len(items)
	return store.New(doc)
}

func newItem(id, canvasID string, zIndex int) *document.Item {
	return &document.Item{
		ID:       id,
		CanvasID: canvasID,
		Type:     "text",
		Name:     "text",
		Layouts: map[string]document.LayoutConfig{
			"desktop": {
				X: document.Float(0), Y: document.Float(0),
				Width: document.Float(4), Height: document.Float(2),
				Customized: true,
			},
		},
		ZIndex: zIndex,
		Config: map[string]any{},
	}
}

func itemIDs(cv *document.Canvas) []string {
	out := make([]string, len(cv.Items))
	for i, it := range cv.Items {
		out[i] = it.ID
	}
	return out
}

func TestAddItemUndoRemovesAndRedoReappends(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)

	cmd := NewAddItem(st, item, "main")

	require.NoError(t, cmd.Undo())
	assert.Empty(t, st.Get().Canvases["main"].Items)

	require.NoError(t, cmd.Redo())
	items := st.Get().Canvases["main"].Items
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ID)
	assert.NotSame(t, item, items[0], "redo appends a fresh clone")
}

func TestAddItemUndoClearsSelection(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	require.NoError(t, st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   "item-1",
		SelectedCanvasID: "main",
	}))

	cmd := NewAddItem(st, item, "main")
	require.NoError(t, cmd.Undo())
	assert.True(t, st.Get().Selection.IsZero())
}

func TestAddItemMissingReferencesAreNoops(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	cmd := NewAddItem(st, item, "main")

	// Redo while the item is still present changes nothing.
	require.NoError(t, cmd.Redo())
	assert.Len(t, st.Get().Canvases["main"].Items, 1)

	// Undo after the canvas vanished is silent.
	require.NoError(t, st.Replace(store.FieldCanvases, map[string]*document.Canvas{}))
	require.NoError(t, cmd.Undo())
}

func TestDeleteItemRestoresOriginalIndex(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	c := newItem("item-3", "main", 3)
	st := newTestStore("main", a, b, c)

	cmd := NewDeleteItem(st, b, "main", 1)
	require.NoError(t, cmd.Redo())
	assert.Equal(t, []string{"item-1", "item-3"}, itemIDs(st.Get().Canvases["main"]))

	require.NoError(t, cmd.Undo())
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, itemIDs(st.Get().Canvases["main"]))
}

func TestDeleteItemUndoFallsBackToAppend(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)

	cmd := NewDeleteItem(st, b, "main", 1)
	require.NoError(t, cmd.Redo())

	// The sequence shrank below the captured index in the meantime.
	require.NoError(t, st.Replace(store.FieldCanvases, map[string]*document.Canvas{
		"main": document.NewCanvas(),
	}))

	require.NoError(t, cmd.Undo())
	assert.Equal(t, []string{"item-2"}, itemIDs(st.Get().Canvases["main"]))
}

func TestDeleteItemRedoClearsSelection(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	require.NoError(t, st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   "item-1",
		SelectedCanvasID: "main",
	}))

	cmd := NewDeleteItem(st, item, "main", 0)
	require.NoError(t, cmd.Redo())
	assert.True(t, st.Get().Selection.IsZero())
}

func TestDeleteItemSelectionOfOtherItemSurvives(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)
	require.NoError(t, st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   "item-2",
		SelectedCanvasID: "main",
	}))

	cmd := NewDeleteItem(st, a, "main", 0)
	require.NoError(t, cmd.Redo())
	assert.Equal(t, "item-2", st.Get().SelectedItemID)
}

func TestUpdateItemUndoRestoresSnapshot(t *testing.T) {
	item := newItem("item-1", "main", 1)
	item.Config = map[string]any{"color": "red"}
	st := newTestStore("main", item)

	cmd := NewUpdateItem(st, "main", item, document.ItemPatch{
		Name:   document.String("Header"),
		Config: map[string]any{"color": "blue", "bold": true},
	})
	require.NoError(t, cmd.Redo())

	updated := st.Get().Canvases["main"].Items[0]
	assert.Equal(t, "Header", updated.Name)
	assert.Equal(t, "blue", updated.Config["color"])
	assert.Equal(t, true, updated.Config["bold"])

	require.NoError(t, cmd.Undo())
	restored := st.Get().Canvases["main"].Items[0]
	assert.Equal(t, "text", restored.Name)
	assert.Equal(t, "red", restored.Config["color"])
	assert.NotContains(t, restored.Config, "bold")
}

func TestUpdateItemReplacesReference(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	before := st.Get().Canvases["main"]

	cmd := NewUpdateItem(st, "main", item, document.ItemPatch{Name: document.String("x")})
	require.NoError(t, cmd.Redo())

	after := st.Get().Canvases["main"]
	assert.NotSame(t, before, after, "every mutation publishes a fresh canvas reference")
	assert.NotSame(t, before.Items[0], after.Items[0])
}

func TestUpdateItemMissingItemIsNoop(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	cmd := NewUpdateItem(st, "main", item, document.ItemPatch{Name: document.String("x")})

	require.NoError(t, st.Replace(store.FieldCanvases, map[string]*document.Canvas{
		"main": document.NewCanvas(),
	}))
	require.NoError(t, cmd.Redo())
	require.NoError(t, cmd.Undo())
	assert.Empty(t, st.Get().Canvases["main"].Items)
}
