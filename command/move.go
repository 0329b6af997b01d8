package command

import (
	"fmt"

	"github.com/dshills/gridcore/document"
)

// MoveSpec captures everything a MoveItem command needs: where the item
// came from, where it went, and the layout it had before the move.
type MoveSpec struct {
	ItemID       string
	FromCanvasID string
	ToCanvasID   string

	// Viewport is the breakpoint whose layout the move edits.
	Viewport string

	// BeforeLayout is the item's layout for Viewport before the move.
	BeforeLayout document.LayoutConfig

	// Target position, with optional resize tracking.
	ToX, ToY          float64
	ToWidth, ToHeight *float64
	FromZIndex        int
	ToZIndex          int

	// FromIndex is the item's original index in the source canvas.
	FromIndex int

	// ToCounter, when positive, advances the target canvas's z-index
	// counter on redo so the move's z-index came from the monotonic
	// source. Undo leaves counters alone; they are non-decreasing.
	ToCounter int
}

// MoveItem moves an item within or across canvases.
//
// Delete-style contract: constructed before the move, capturing the source
// index and layout; the caller applies the move by invoking Redo. Redo
// appends to the target canvas (no index preservation needed); Undo
// restores the item to its captured index in the source canvas, searching
// the target canvas first and then all canvases as a lenient fallback for
// deleted-canvas edge cases.
type MoveItem struct {
	st   Store
	spec MoveSpec
}

// NewMoveItem captures a move about to be applied.
func NewMoveItem(st Store, spec MoveSpec) *MoveItem {
	spec.BeforeLayout = document.CloneLayouts(map[string]document.LayoutConfig{
		spec.Viewport: spec.BeforeLayout,
	})[spec.Viewport]
	return &MoveItem{st: st, spec: spec}
}

// Redo locates the item in the source canvas, removes it, applies the
// target position and z-index, and appends it to the target canvas.
func (c *MoveItem) Redo() error {
	doc := c.st.Get()
	from, okFrom := doc.Canvases[c.spec.FromCanvasID]
	to, okTo := doc.Canvases[c.spec.ToCanvasID]
	if !okFrom || !okTo {
		c.st.Logger().Debug("redo move: canvas missing",
			"from", c.spec.FromCanvasID, "to", c.spec.ToCanvasID)
		return nil
	}

	if c.spec.FromCanvasID == c.spec.ToCanvasID {
		return c.applyInPlace(from, c.targetLayout, c.spec.ToZIndex, c.spec.ToCanvasID)
	}

	items, removed := document.RemoveItemByID(from.Items, c.spec.ItemID)
	if removed == nil {
		c.st.Logger().Debug("redo move: item missing", "item", c.spec.ItemID)
		return nil
	}

	moved := document.CloneItem(removed)
	moved.CanvasID = c.spec.ToCanvasID
	moved.ZIndex = c.spec.ToZIndex
	c.setLayout(moved, c.targetLayout(moved))

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.spec.FromCanvasID] = from.WithItems(items)
	target := to.WithItems(append(append([]*document.Item{}, to.Items...), moved))
	if c.spec.ToCounter > target.ZIndexCounter {
		target.ZIndexCounter = c.spec.ToCounter
	}
	canvases[c.spec.ToCanvasID] = target
	return replaceCanvases(c.st, canvases)
}

// Undo restores the item to its source canvas at its original index with
// its original position and z-index.
func (c *MoveItem) Undo() error {
	doc := c.st.Get()

	// The item should be on the target canvas; fall back to scanning all
	// canvases so a canvas deleted while holding moved items does not
	// strand the undo. The fallback indicates a consistency violation, so
	// it is logged as a warning rather than silently absorbed.
	currentCanvasID := c.spec.ToCanvasID
	cv, ok := doc.Canvases[currentCanvasID]
	if !ok || cv.IndexOf(c.spec.ItemID) < 0 {
		foundID, _, found := doc.FindItem(c.spec.ItemID)
		if found == nil {
			c.st.Logger().Debug("undo move: item missing", "item", c.spec.ItemID)
			return nil
		}
		c.st.Logger().Warn("undo move: item not on expected canvas",
			"item", c.spec.ItemID, "expected", currentCanvasID, "actual", foundID)
		currentCanvasID = foundID
		cv = doc.Canvases[currentCanvasID]
	}

	source, ok := doc.Canvases[c.spec.FromCanvasID]
	if !ok {
		c.st.Logger().Debug("undo move: source canvas missing", "canvas", c.spec.FromCanvasID)
		return nil
	}

	if currentCanvasID == c.spec.FromCanvasID && c.spec.FromCanvasID == c.spec.ToCanvasID {
		return c.applyInPlace(cv, c.sourceLayout, c.spec.FromZIndex, c.spec.FromCanvasID)
	}

	items, removed := document.RemoveItemByID(cv.Items, c.spec.ItemID)
	if removed == nil {
		return nil
	}

	restored := document.CloneItem(removed)
	restored.CanvasID = c.spec.FromCanvasID
	restored.ZIndex = c.spec.FromZIndex
	c.setLayout(restored, c.sourceLayout(restored))

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[currentCanvasID] = cv.WithItems(items)
	// Re-read the source through the copy in case the fallback found the
	// item already back on its source canvas.
	src := canvases[c.spec.FromCanvasID]
	if src == nil {
		src = source
	}
	canvases[c.spec.FromCanvasID] = src.WithItems(document.InsertItemAt(src.Items, restored, c.spec.FromIndex))
	return replaceCanvases(c.st, canvases)
}

// applyInPlace updates layout and z-index without reordering, for
// same-canvas moves.
func (c *MoveItem) applyInPlace(cv *document.Canvas, layout func(*document.Item) document.LayoutConfig, zIndex int, canvasID string) error {
	doc := c.st.Get()
	idx := cv.IndexOf(c.spec.ItemID)
	if idx < 0 {
		c.st.Logger().Debug("move: item missing", "item", c.spec.ItemID)
		return nil
	}

	updated := document.CloneItem(cv.Items[idx])
	updated.ZIndex = zIndex
	c.setLayout(updated, layout(updated))

	items := append([]*document.Item{}, cv.Items...)
	items[idx] = updated
	canvases := document.CopyCanvases(doc.Canvases)
	canvases[canvasID] = cv.WithItems(items)
	return replaceCanvases(c.st, canvases)
}

// targetLayout builds the post-move layout for the viewport, preserving
// whatever size the item had unless the move tracked a resize.
func (c *MoveItem) targetLayout(it *document.Item) document.LayoutConfig {
	layout := it.Layouts[c.spec.Viewport]
	layout.X = document.Float(c.spec.ToX)
	layout.Y = document.Float(c.spec.ToY)
	if c.spec.ToWidth != nil {
		layout.Width = document.Float(*c.spec.ToWidth)
	}
	if c.spec.ToHeight != nil {
		layout.Height = document.Float(*c.spec.ToHeight)
	}
	layout.Customized = true
	return layout
}

// sourceLayout restores the captured pre-move layout.
func (c *MoveItem) sourceLayout(*document.Item) document.LayoutConfig {
	return document.CloneLayouts(map[string]document.LayoutConfig{
		c.spec.Viewport: c.spec.BeforeLayout,
	})[c.spec.Viewport]
}

func (c *MoveItem) setLayout(it *document.Item, layout document.LayoutConfig) {
	if it.Layouts == nil {
		it.Layouts = make(map[string]document.LayoutConfig)
	}
	it.Layouts[c.spec.Viewport] = layout
}

// Description returns a human-readable description.
func (c *MoveItem) Description() string {
	if c.spec.FromCanvasID == c.spec.ToCanvasID {
		return fmt.Sprintf("Move %s", c.spec.ItemID)
	}
	return fmt.Sprintf("Move %s from %s to %s", c.spec.ItemID, c.spec.FromCanvasID, c.spec.ToCanvasID)
}
