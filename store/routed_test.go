package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridcore/document"
)

func newRoutedPair() (Store, Store, Store) {
	shared := New(nil)
	view := New(nil)
	return NewRouted(shared, view), shared, view
}

func TestRoutedSharedFieldsGoToSharedStore(t *testing.T) {
	routed, shared, view := newRoutedPair()

	canvases := map[string]*document.Canvas{"main": document.NewCanvas()}
	require.NoError(t, routed.Replace(FieldCanvases, canvases))
	require.NoError(t, routed.Replace(FieldItemCounter, 7))

	assert.Contains(t, shared.Get().Canvases, "main")
	assert.Equal(t, 7, shared.Get().ItemCounter)
	assert.NotContains(t, view.Get().Canvases, "main")
	assert.Equal(t, 0, view.Get().ItemCounter)
}

func TestRoutedViewFieldsStayLocal(t *testing.T) {
	routed, shared, view := newRoutedPair()

	require.NoError(t, routed.Replace(FieldViewport, "mobile"))
	require.NoError(t, routed.Replace(FieldShowGrid, true))
	require.NoError(t, routed.Replace(FieldSelection, document.Selection{
		SelectedItemID:   "item-1",
		SelectedCanvasID: "main",
	}))

	assert.Equal(t, "mobile", view.Get().CurrentViewport)
	assert.True(t, view.Get().ShowGrid)
	assert.Equal(t, "item-1", view.Get().SelectedItemID)

	assert.Equal(t, "", shared.Get().CurrentViewport)
	assert.False(t, shared.Get().ShowGrid)
}

func TestRoutedGetMergesBothSides(t *testing.T) {
	routed, shared, _ := newRoutedPair()

	require.NoError(t, routed.Replace(FieldCanvases, map[string]*document.Canvas{"main": document.NewCanvas()}))
	require.NoError(t, routed.Replace(FieldItemCounter, 3))
	require.NoError(t, routed.Replace(FieldViewport, "tablet"))

	doc := routed.Get()
	assert.Contains(t, doc.Canvases, "main")
	assert.Equal(t, 3, doc.ItemCounter)
	assert.Equal(t, "tablet", doc.CurrentViewport)

	// The merged document serves the live shared map, not a copy: a second
	// instance of the sharing group sees the same canvases.
	sharedMap := shared.Get().Canvases
	mergedMap := doc.Canvases
	assert.Equal(t, len(sharedMap), len(mergedMap))
	sharedMap["probe"] = document.NewCanvas()
	assert.Contains(t, mergedMap, "probe")
}

func TestRoutedOnChangeRoutesByField(t *testing.T) {
	routed, shared, _ := newRoutedPair()

	canvasCalls, viewportCalls := 0, 0
	routed.OnChange(FieldCanvases, func(any, any) { canvasCalls++ })
	routed.OnChange(FieldViewport, func(any, any) { viewportCalls++ })

	// A shared-side replace from a sibling instance reaches the routed
	// subscriber.
	require.NoError(t, shared.Replace(FieldCanvases, map[string]*document.Canvas{}))
	require.NoError(t, routed.Replace(FieldViewport, "mobile"))

	assert.Equal(t, 1, canvasCalls)
	assert.Equal(t, 1, viewportCalls)
}

func TestRoutedCloseLeavesSharedOpen(t *testing.T) {
	routed, shared, view := newRoutedPair()
	routed.Close()

	assert.ErrorIs(t, view.Replace(FieldViewport, "mobile"), ErrStoreClosed)
	assert.NoError(t, shared.Replace(FieldItemCounter, 1))
}
