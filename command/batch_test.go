package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/store"
)

func TestBatchAddUndoRedo(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)

	notifications := 0
	st.OnChange(store.FieldCanvases, func(any, any) { notifications++ })

	cmd := NewBatchAdd(st, []*document.Item{a, b})

	require.NoError(t, cmd.Undo())
	assert.Empty(t, st.Get().Canvases["main"].Items)
	assert.Equal(t, 1, notifications, "batch undo is one reassignment")

	require.NoError(t, cmd.Redo())
	assert.Equal(t, []string{"item-1", "item-2"}, itemIDs(st.Get().Canvases["main"]))
	assert.Equal(t, 2, notifications, "batch redo is one reassignment")
}

func TestBatchAddIsAtomic(t *testing.T) {
	doc := document.New()
	cvA := document.NewCanvas()
	a := newItem("item-1", "a", 1)
	cvA.Items = []*document.Item{a}
	doc.Canvases["a"] = cvA
	cvB := document.NewCanvas()
	b := newItem("item-2", "b", 1)
	cvB.Items = []*document.Item{b}
	doc.Canvases["b"] = cvB
	st := store.New(doc)

	cmd := NewBatchAdd(st, []*document.Item{a, b})

	// One canvas vanished: the whole undo is a no-op, not a partial one.
	canvases := document.CopyCanvases(st.Get().Canvases)
	delete(canvases, "b")
	require.NoError(t, st.Replace(store.FieldCanvases, canvases))

	require.NoError(t, cmd.Undo())
	require.Len(t, st.Get().Canvases["a"].Items, 1)
}

func TestBatchDeleteCapturesAndRestoresIndexes(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	c := newItem("item-3", "main", 3)
	st := newTestStore("main", a, b, c)

	cmd := NewBatchDelete(st, []string{"item-3", "item-1"})
	require.Equal(t, 2, cmd.Len())
	assert.Equal(t, []string{"item-3", "item-1"}, cmd.ItemIDs())
	assert.Equal(t, []string{"main", "main"}, cmd.CanvasIDs())

	require.NoError(t, cmd.Redo())
	assert.Equal(t, []string{"item-2"}, itemIDs(st.Get().Canvases["main"]))

	require.NoError(t, cmd.Undo())
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, itemIDs(st.Get().Canvases["main"]))
}

func TestBatchDeleteSkipsMissingIDs(t *testing.T) {
	a := newItem("item-1", "main", 1)
	st := newTestStore("main", a)

	cmd := NewBatchDelete(st, []string{"item-1", "item-9"})
	assert.Equal(t, 1, cmd.Len())
	assert.Equal(t, []string{"item-1"}, cmd.ItemIDs())
}

func TestBatchDeleteRedoClearsSelection(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)
	require.NoError(t, st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   "item-2",
		SelectedCanvasID: "main",
	}))

	cmd := NewBatchDelete(st, []string{"item-1", "item-2"})
	require.NoError(t, cmd.Redo())
	assert.True(t, st.Get().Selection.IsZero())
}

func TestBatchUpdateConfigUndoRedo(t *testing.T) {
	a := newItem("item-1", "main", 1)
	a.Config = map[string]any{"color": "red"}
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)

	notifications := 0
	st.OnChange(store.FieldCanvases, func(any, any) { notifications++ })

	cmd := NewBatchUpdateConfig(st, map[string]map[string]any{
		"item-1": {"color": "blue"},
		"item-2": {"size": 12},
	})
	require.Equal(t, 2, cmd.Len())

	require.NoError(t, cmd.Redo())
	doc := st.Get()
	assert.Equal(t, "blue", doc.Canvases["main"].Items[0].Config["color"])
	assert.Equal(t, 12, doc.Canvases["main"].Items[1].Config["size"])
	assert.Equal(t, 1, notifications)

	require.NoError(t, cmd.Undo())
	doc = st.Get()
	assert.Equal(t, "red", doc.Canvases["main"].Items[0].Config["color"])
	assert.NotContains(t, doc.Canvases["main"].Items[1].Config, "size")
	assert.Equal(t, 2, notifications)
}

func TestBatchUpdateConfigMergePreservesOtherKeys(t *testing.T) {
	a := newItem("item-1", "main", 1)
	a.Config = map[string]any{"color": "red", "size": 10}
	st := newTestStore("main", a)

	cmd := NewBatchUpdateConfig(st, map[string]map[string]any{
		"item-1": {"size": 14},
	})
	require.NoError(t, cmd.Redo())

	config := st.Get().Canvases["main"].Items[0].Config
	assert.Equal(t, "red", config["color"])
	assert.Equal(t, 14, config["size"])
}

func TestBatchUpdateConfigSkipsMissingItems(t *testing.T) {
	a := newItem("item-1", "main", 1)
	st := newTestStore("main", a)

	cmd := NewBatchUpdateConfig(st, map[string]map[string]any{
		"item-1": {"k": "v"},
		"item-9": {"k": "v"},
	})
	assert.Equal(t, 1, cmd.Len())
}
