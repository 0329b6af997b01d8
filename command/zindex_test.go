package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
	"github.com/dshills/gridcore/store"
)

func TestChangeZIndexSingle(t *testing.T) {
	item := newItem("item-1", "main", 1)
	st := newTestStore("main", item)
	bus := event.NewBus()

	var got []event.ZIndexChange
	_, err := bus.Subscribe(event.TopicZIndexChanged, func(payload any) {
		got = append(got, payload.(event.ZIndexChange))
	})
	require.NoError(t, err)

	cmd := NewChangeZIndex(st, bus,
		[]event.ZIndexChange{{ItemID: "item-1", CanvasID: "main", OldZIndex: 1, NewZIndex: 2}},
		map[string]int{"main": 3},
	)

	require.NoError(t, cmd.Redo())
	assert.Equal(t, 2, st.Get().Canvases["main"].Items[0].ZIndex)
	assert.Equal(t, 3, st.Get().Canvases["main"].ZIndexCounter)

	require.NoError(t, cmd.Undo())
	assert.Equal(t, 1, st.Get().Canvases["main"].Items[0].ZIndex)
	assert.Equal(t, 3, st.Get().Canvases["main"].ZIndexCounter, "undo never lowers the counter")

	// Events report the actual transition direction both ways.
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].OldZIndex)
	assert.Equal(t, 2, got[0].NewZIndex)
	assert.Equal(t, 2, got[1].OldZIndex)
	assert.Equal(t, 1, got[1].NewZIndex)
}

func TestChangeZIndexBatchEmitsBatchTopic(t *testing.T) {
	a := newItem("item-1", "main", 1)
	b := newItem("item-2", "main", 2)
	st := newTestStore("main", a, b)
	bus := event.NewBus()

	batches := 0
	_, err := bus.Subscribe(event.TopicZIndexBatch, func(payload any) {
		batches++
		assert.Len(t, payload.(event.ZIndexBatchChanged).Changes, 2)
	})
	require.NoError(t, err)

	cmd := NewChangeZIndex(st, bus, []event.ZIndexChange{
		{ItemID: "item-1", CanvasID: "main", OldZIndex: 1, NewZIndex: 2},
		{ItemID: "item-2", CanvasID: "main", OldZIndex: 2, NewZIndex: 1},
	}, nil)

	require.NoError(t, cmd.Redo())
	doc := st.Get()
	assert.Equal(t, 2, doc.Canvases["main"].Items[0].ZIndex)
	assert.Equal(t, 1, doc.Canvases["main"].Items[1].ZIndex)
	assert.Equal(t, 1, batches)
}

func TestChangeZIndexIsAtomic(t *testing.T) {
	a := newItem("item-1", "main", 1)
	st := newTestStore("main", a)

	cmd := NewChangeZIndex(st, nil, []event.ZIndexChange{
		{ItemID: "item-1", CanvasID: "main", OldZIndex: 1, NewZIndex: 5},
		{ItemID: "item-9", CanvasID: "main", OldZIndex: 2, NewZIndex: 6},
	}, nil)

	require.NoError(t, cmd.Redo())
	assert.Equal(t, 1, st.Get().Canvases["main"].Items[0].ZIndex, "missing entry makes the whole change a no-op")
}

func TestChangeZIndexCounterNeverRegresses(t *testing.T) {
	item := newItem("item-1", "main", 7)
	st := newTestStore("main", item)
	canvases := document.CopyCanvases(st.Get().Canvases)
	high := canvases["main"].WithItems(canvases["main"].Items)
	high.ZIndexCounter = 10
	canvases["main"] = high
	require.NoError(t, st.Replace(store.FieldCanvases, canvases))

	cmd := NewChangeZIndex(st, nil,
		[]event.ZIndexChange{{ItemID: "item-1", CanvasID: "main", OldZIndex: 7, NewZIndex: 8}},
		map[string]int{"main": 9},
	)
	require.NoError(t, cmd.Redo())
	assert.Equal(t, 10, st.Get().Canvases["main"].ZIndexCounter)
}
