package command

import (
	"fmt"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
)

// AddCanvas creates a canvas entry and removes it on undo. Emits
// canvas.added / canvas.removed so external metadata owners can
// resynchronize.
//
// Delete-style contract: constructed before the canvas exists; the caller
// applies it by invoking Redo.
type AddCanvas struct {
	st       Store
	bus      *event.Bus
	canvasID string
}

// NewAddCanvas captures a canvas creation about to be applied.
func NewAddCanvas(st Store, bus *event.Bus, canvasID string) *AddCanvas {
	return &AddCanvas{st: st, bus: bus, canvasID: canvasID}
}

// Redo creates the canvas entry with an empty item list and a fresh
// z-index counter.
func (c *AddCanvas) Redo() error {
	doc := c.st.Get()
	if _, exists := doc.Canvases[c.canvasID]; exists {
		return nil
	}

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = document.NewCanvas()
	if err := replaceCanvases(c.st, canvases); err != nil {
		return err
	}
	c.emit(event.TopicCanvasAdded, event.CanvasAdded{CanvasID: c.canvasID})
	return nil
}

// Undo deletes the canvas entry.
func (c *AddCanvas) Undo() error {
	doc := c.st.Get()
	if _, exists := doc.Canvases[c.canvasID]; !exists {
		c.st.Logger().Debug("undo add canvas: canvas missing", "canvas", c.canvasID)
		return nil
	}

	clearSelectionIfCanvas(c.st, c.canvasID)

	canvases := document.CopyCanvases(doc.Canvases)
	delete(canvases, c.canvasID)
	if err := replaceCanvases(c.st, canvases); err != nil {
		return err
	}
	c.emit(event.TopicCanvasRemoved, event.CanvasRemoved{CanvasID: c.canvasID})
	return nil
}

func (c *AddCanvas) emit(topic event.Topic, payload any) {
	if c.bus != nil {
		c.bus.Emit(topic, payload)
	}
}

// Description returns a human-readable description.
func (c *AddCanvas) Description() string {
	return fmt.Sprintf("Add canvas %s", c.canvasID)
}

// RemoveCanvas deletes a canvas and restores it exactly on undo, items and
// z-index counter included.
//
// Delete-style contract: constructed before the deletion so the full
// canvas snapshot can be captured; the caller applies it by invoking Redo.
type RemoveCanvas struct {
	st       Store
	bus      *event.Bus
	canvasID string
	snapshot *document.Canvas
}

// NewRemoveCanvas captures a full deep snapshot of the canvas about to be
// removed. Returns nil if the canvas does not exist.
func NewRemoveCanvas(st Store, bus *event.Bus, canvasID string) *RemoveCanvas {
	doc := st.Get()
	cv, ok := doc.Canvases[canvasID]
	if !ok {
		st.Logger().Debug("remove canvas: canvas missing", "canvas", canvasID)
		return nil
	}
	return &RemoveCanvas{
		st:       st,
		bus:      bus,
		canvasID: canvasID,
		snapshot: document.CloneCanvas(cv),
	}
}

// Redo deletes the canvas, clearing the selection if it pointed there.
func (c *RemoveCanvas) Redo() error {
	doc := c.st.Get()
	if _, exists := doc.Canvases[c.canvasID]; !exists {
		c.st.Logger().Debug("redo remove canvas: canvas missing", "canvas", c.canvasID)
		return nil
	}

	clearSelectionIfCanvas(c.st, c.canvasID)

	canvases := document.CopyCanvases(doc.Canvases)
	delete(canvases, c.canvasID)
	if err := replaceCanvases(c.st, canvases); err != nil {
		return err
	}
	c.emit(event.TopicCanvasRemoved, event.CanvasRemoved{CanvasID: c.canvasID})
	return nil
}

// Undo restores the captured snapshot under its original key.
func (c *RemoveCanvas) Undo() error {
	doc := c.st.Get()
	if _, exists := doc.Canvases[c.canvasID]; exists {
		return nil
	}

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = document.CloneCanvas(c.snapshot)
	if err := replaceCanvases(c.st, canvases); err != nil {
		return err
	}
	c.emit(event.TopicCanvasAdded, event.CanvasAdded{CanvasID: c.canvasID})
	return nil
}

func (c *RemoveCanvas) emit(topic event.Topic, payload any) {
	if c.bus != nil {
		c.bus.Emit(topic, payload)
	}
}

// Description returns a human-readable description.
func (c *RemoveCanvas) Description() string {
	return fmt.Sprintf("Remove canvas %s", c.canvasID)
}

// SetCanvasBackground changes a canvas's background setting.
//
// Delete-style contract: constructed before the change with both values;
// the caller applies it by invoking Redo.
type SetCanvasBackground struct {
	st       Store
	canvasID string
	oldValue string
	newValue string
}

// NewSetCanvasBackground captures a background change about to be applied.
func NewSetCanvasBackground(st Store, canvasID, oldValue, newValue string) *SetCanvasBackground {
	return &SetCanvasBackground{
		st:       st,
		canvasID: canvasID,
		oldValue: oldValue,
		newValue: newValue,
	}
}

// Redo applies the new background.
func (c *SetCanvasBackground) Redo() error {
	return c.set(c.newValue)
}

// Undo restores the old background.
func (c *SetCanvasBackground) Undo() error {
	return c.set(c.oldValue)
}

func (c *SetCanvasBackground) set(value string) error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("set background: canvas missing", "canvas", c.canvasID)
		return nil
	}

	updated := cv.WithItems(cv.Items)
	updated.Background = value
	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = updated
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *SetCanvasBackground) Description() string {
	return fmt.Sprintf("Set background of %s", c.canvasID)
}
