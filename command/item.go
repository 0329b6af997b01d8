package command

import (
	"fmt"

	"github.com/dshills/gridcore/document"
)

// AddItem undoes and reapplies the placement of one new item.
//
// Add-style contract: constructed after the item is already in the store.
// Undo filters the item out by id (clearing the selection if it was
// selected); Redo re-clones the stored snapshot and appends it. Append, not
// index-restore: the item is "new" again on redo.
type AddItem struct {
	st       Store
	item     *document.Item
	canvasID string
}

// NewAddItem captures a deep clone of an already-applied item.
func NewAddItem(st Store, item *document.Item, canvasID string) *AddItem {
	return &AddItem{
		st:       st,
		item:     document.CloneItem(item),
		canvasID: canvasID,
	}
}

// Undo removes the item from its canvas.
func (c *AddItem) Undo() error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("undo add: canvas missing", "canvas", c.canvasID)
		return nil
	}
	items, removed := document.RemoveItemByID(cv.Items, c.item.ID)
	if removed == nil {
		c.st.Logger().Debug("undo add: item missing", "item", c.item.ID)
		return nil
	}

	clearSelectionIfItem(c.st, c.item.ID)

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = cv.WithItems(items)
	return replaceCanvases(c.st, canvases)
}

// Redo appends a fresh clone of the captured item to its canvas.
func (c *AddItem) Redo() error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("redo add: canvas missing", "canvas", c.canvasID)
		return nil
	}
	if cv.IndexOf(c.item.ID) >= 0 {
		return nil
	}

	items := append(append([]*document.Item{}, cv.Items...), document.CloneItem(c.item))
	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = cv.WithItems(items)
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *AddItem) Description() string {
	return fmt.Sprintf("Add %s to %s", c.item.ID, c.canvasID)
}

// DeleteItem removes one item and restores it at its original position.
//
// Delete-style contract: constructed before the removal, capturing the
// item's index within the canvas sequence. The caller applies the deletion
// by invoking Redo.
type DeleteItem struct {
	st       Store
	item     *document.Item
	canvasID string
	index    int
}

// NewDeleteItem captures a deep clone of the item about to be removed plus
// its original array index.
func NewDeleteItem(st Store, item *document.Item, canvasID string, index int) *DeleteItem {
	return &DeleteItem{
		st:       st,
		item:     document.CloneItem(item),
		canvasID: canvasID,
		index:    index,
	}
}

// Undo re-inserts the clone at its captured index, falling back to append
// when the sequence shrank in the meantime.
func (c *DeleteItem) Undo() error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("undo delete: canvas missing", "canvas", c.canvasID)
		return nil
	}
	if cv.IndexOf(c.item.ID) >= 0 {
		return nil
	}

	items := document.InsertItemAt(cv.Items, document.CloneItem(c.item), c.index)
	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = cv.WithItems(items)
	return replaceCanvases(c.st, canvases)
}

// Redo removes the item again by id, clearing the selection if needed.
func (c *DeleteItem) Redo() error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("redo delete: canvas missing", "canvas", c.canvasID)
		return nil
	}
	items, removed := document.RemoveItemByID(cv.Items, c.item.ID)
	if removed == nil {
		c.st.Logger().Debug("redo delete: item missing", "item", c.item.ID)
		return nil
	}

	clearSelectionIfItem(c.st, c.item.ID)

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = cv.WithItems(items)
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *DeleteItem) Description() string {
	return fmt.Sprintf("Delete %s from %s", c.item.ID, c.canvasID)
}

// UpdateItem applies and reverts a partial item update.
//
// Delete-style contract: constructed before the update, capturing the old
// item snapshot; the caller applies the update by invoking Redo.
type UpdateItem struct {
	st       Store
	canvasID string
	itemID   string
	before   *document.Item
	patch    document.ItemPatch
}

// NewUpdateItem captures the pre-update snapshot and the partial update.
func NewUpdateItem(st Store, canvasID string, before *document.Item, patch document.ItemPatch) *UpdateItem {
	return &UpdateItem{
		st:       st,
		canvasID: canvasID,
		itemID:   before.ID,
		before:   document.CloneItem(before),
		patch:    patch,
	}
}

// Undo re-applies the old snapshot.
func (c *UpdateItem) Undo() error {
	return c.replaceWith(document.CloneItem(c.before))
}

// Redo re-applies the partial update on top of the current item.
func (c *UpdateItem) Redo() error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("redo update: canvas missing", "canvas", c.canvasID)
		return nil
	}
	idx := cv.IndexOf(c.itemID)
	if idx < 0 {
		c.st.Logger().Debug("redo update: item missing", "item", c.itemID)
		return nil
	}
	return c.replaceWith(document.ApplyPatch(cv.Items[idx], c.patch))
}

// replaceWith swaps the item at its current position for the given value.
func (c *UpdateItem) replaceWith(item *document.Item) error {
	doc := c.st.Get()
	cv, ok := doc.Canvases[c.canvasID]
	if !ok {
		c.st.Logger().Debug("update: canvas missing", "canvas", c.canvasID)
		return nil
	}
	idx := cv.IndexOf(c.itemID)
	if idx < 0 {
		c.st.Logger().Debug("update: item missing", "item", c.itemID)
		return nil
	}

	items := append([]*document.Item{}, cv.Items...)
	items[idx] = item
	canvases := document.CopyCanvases(doc.Canvases)
	canvases[c.canvasID] = cv.WithItems(items)
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *UpdateItem) Description() string {
	return fmt.Sprintf("Update %s", c.itemID)
}
