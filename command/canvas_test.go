package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
	"github.com/dshills/gridcore/store"
)

func TestAddCanvasRedoUndo(t *testing.T) {
	st := store.New(nil)
	bus := event.NewBus()

	var topics []event.Topic
	_, err := bus.Subscribe(event.TopicCanvasAdded, func(any) { topics = append(topics, event.TopicCanvasAdded) })
	require.NoError(t, err)
	_, err = bus.Subscribe(event.TopicCanvasRemoved, func(any) { topics = append(topics, event.TopicCanvasRemoved) })
	require.NoError(t, err)

	cmd := NewAddCanvas(st, bus, "main")
	require.NoError(t, cmd.Redo())

	cv, ok := st.Get().Canvases["main"]
	require.True(t, ok)
	assert.Empty(t, cv.Items)
	assert.Equal(t, 1, cv.ZIndexCounter)

	require.NoError(t, cmd.Undo())
	assert.NotContains(t, st.Get().Canvases, "main")
	assert.Equal(t, []event.Topic{event.TopicCanvasAdded, event.TopicCanvasRemoved}, topics)
}

func TestAddCanvasExistingIsNoop(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)

	cmd := NewAddCanvas(st, nil, "main")
	require.NoError(t, cmd.Redo())
	require.Len(t, st.Get().Canvases["main"].Items, 1, "existing canvas is not replaced")
}

func TestAddCanvasUndoClearsSelectionOnCanvas(t *testing.T) {
	st := store.New(nil)
	cmd := NewAddCanvas(st, nil, "main")
	require.NoError(t, cmd.Redo())
	require.NoError(t, st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   "item-1",
		SelectedCanvasID: "main",
	}))

	require.NoError(t, cmd.Undo())
	assert.True(t, st.Get().Selection.IsZero())
}

func TestRemoveCanvasRestoresFullSnapshot(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)
	canvases := document.CopyCanvases(st.Get().Canvases)
	withBg := canvases["main"].WithItems(canvases["main"].Items)
	withBg.Background = "dots"
	canvases["main"] = withBg
	require.NoError(t, st.Replace(store.FieldCanvases, canvases))

	cmd := NewRemoveCanvas(st, nil, "main")
	require.NotNil(t, cmd)

	require.NoError(t, cmd.Redo())
	assert.NotContains(t, st.Get().Canvases, "main")

	require.NoError(t, cmd.Undo())
	restored := st.Get().Canvases["main"]
	require.NotNil(t, restored)
	assert.Equal(t, []string{"item-1", "item-2"}, itemIDs(restored))
	assert.Equal(t, 3, restored.ZIndexCounter)
	assert.Equal(t, "dots", restored.Background)
}

func TestRemoveCanvasMissingReturnsNil(t *testing.T) {
	st := store.New(nil)
	assert.Nil(t, NewRemoveCanvas(st, nil, "ghost"))
}

func TestRemoveCanvasRedoClearsSelection(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	require.NoError(t, st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   "item-1",
		SelectedCanvasID: "main",
	}))

	cmd := NewRemoveCanvas(st, nil, "main")
	require.NotNil(t, cmd)
	require.NoError(t, cmd.Redo())
	assert.True(t, st.Get().Selection.IsZero())
}

func TestSetCanvasBackground(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)

	cmd := NewSetCanvasBackground(st, "main", "", "grid")
	require.NoError(t, cmd.Redo())
	assert.Equal(t, "grid", st.Get().Canvases["main"].Background)
	require.Len(t, st.Get().Canvases["main"].Items, 1, "items survive a background change")

	require.NoError(t, cmd.Undo())
	assert.Equal(t, "", st.Get().Canvases["main"].Background)
}
