package command

import (
	"fmt"
	"sort"

	"github.com/dshills/gridcore/document"
)

// BatchAdd undoes and reapplies a bulk item placement as one store
// reassignment, so observers re-render once instead of once per item.
//
// Add-style contract: constructed after all items are already applied.
// Atomic: if any referenced canvas is missing at undo/redo time the whole
// command is a no-op.
type BatchAdd struct {
	st    Store
	items []*document.Item
}

// NewBatchAdd captures deep clones of already-applied items. Each item's
// CanvasID names the canvas it belongs to.
func NewBatchAdd(st Store, items []*document.Item) *BatchAdd {
	clones := make([]*document.Item, 0, len(items))
	for _, it := range items {
		clones = append(clones, document.CloneItem(it))
	}
	return &BatchAdd{st: st, items: clones}
}

// Undo removes every item in the batch in one reassignment.
func (c *BatchAdd) Undo() error {
	doc := c.st.Get()
	for _, it := range c.items {
		cv, ok := doc.Canvases[it.CanvasID]
		if !ok || cv.IndexOf(it.ID) < 0 {
			c.st.Logger().Debug("undo batch add: entry missing", "item", it.ID, "canvas", it.CanvasID)
			return nil
		}
	}

	canvases := document.CopyCanvases(doc.Canvases)
	for _, it := range c.items {
		cv := canvases[it.CanvasID]
		items, _ := document.RemoveItemByID(cv.Items, it.ID)
		canvases[it.CanvasID] = cv.WithItems(items)
		clearSelectionIfItem(c.st, it.ID)
	}
	return replaceCanvases(c.st, canvases)
}

// Redo re-appends fresh clones of every item in one reassignment.
func (c *BatchAdd) Redo() error {
	doc := c.st.Get()
	for _, it := range c.items {
		if _, ok := doc.Canvases[it.CanvasID]; !ok {
			c.st.Logger().Debug("redo batch add: canvas missing", "canvas", it.CanvasID)
			return nil
		}
	}

	canvases := document.CopyCanvases(doc.Canvases)
	for _, it := range c.items {
		cv := canvases[it.CanvasID]
		if cv.IndexOf(it.ID) >= 0 {
			continue
		}
		canvases[it.CanvasID] = cv.WithItems(append(append([]*document.Item{}, cv.Items...), document.CloneItem(it)))
	}
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *BatchAdd) Description() string {
	return fmt.Sprintf("Add %d items", len(c.items))
}

// batchDeleteEntry is one captured deletion: the clone, its canvas, and its
// original array index.
type batchDeleteEntry struct {
	item     *document.Item
	canvasID string
	index    int
}

// BatchDelete removes a group of items and restores them at their original
// positions, all as one store reassignment per direction.
//
// Delete-style contract: constructed before the removal; the caller applies
// it by invoking Redo.
type BatchDelete struct {
	st      Store
	entries []batchDeleteEntry
}

// NewBatchDelete captures clones and indexes for the items about to be
// removed. Items must still be present in the store.
func NewBatchDelete(st Store, itemIDs []string) *BatchDelete {
	doc := st.Get()
	entries := make([]batchDeleteEntry, 0, len(itemIDs))
	for _, id := range itemIDs {
		canvasID, index, item := doc.FindItem(id)
		if item == nil {
			st.Logger().Debug("batch delete: item missing", "item", id)
			continue
		}
		entries = append(entries, batchDeleteEntry{
			item:     document.CloneItem(item),
			canvasID: canvasID,
			index:    index,
		})
	}
	return &BatchDelete{st: st, entries: entries}
}

// Len returns the number of deletions the batch captured.
func (c *BatchDelete) Len() int { return len(c.entries) }

// ItemIDs returns the captured item ids in order.
func (c *BatchDelete) ItemIDs() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.item.ID
	}
	return out
}

// CanvasIDs returns the captured canvas id per item, parallel to ItemIDs.
func (c *BatchDelete) CanvasIDs() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.canvasID
	}
	return out
}

// Undo re-inserts every clone at its captured index, lowest index first so
// later insertions land after earlier ones.
func (c *BatchDelete) Undo() error {
	doc := c.st.Get()
	for _, e := range c.entries {
		if _, ok := doc.Canvases[e.canvasID]; !ok {
			c.st.Logger().Debug("undo batch delete: canvas missing", "canvas", e.canvasID)
			return nil
		}
	}

	ordered := make([]batchDeleteEntry, len(c.entries))
	copy(ordered, c.entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].index < ordered[j].index
	})

	canvases := document.CopyCanvases(doc.Canvases)
	for _, e := range ordered {
		cv := canvases[e.canvasID]
		if cv.IndexOf(e.item.ID) >= 0 {
			continue
		}
		canvases[e.canvasID] = cv.WithItems(document.InsertItemAt(cv.Items, document.CloneItem(e.item), e.index))
	}
	return replaceCanvases(c.st, canvases)
}

// Redo removes every item again in one reassignment.
func (c *BatchDelete) Redo() error {
	doc := c.st.Get()
	canvases := document.CopyCanvases(doc.Canvases)
	for _, e := range c.entries {
		cv, ok := canvases[e.canvasID]
		if !ok {
			c.st.Logger().Debug("redo batch delete: canvas missing", "canvas", e.canvasID)
			return nil
		}
		items, removed := document.RemoveItemByID(cv.Items, e.item.ID)
		if removed == nil {
			continue
		}
		clearSelectionIfItem(c.st, e.item.ID)
		canvases[e.canvasID] = cv.WithItems(items)
	}
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *BatchDelete) Description() string {
	return fmt.Sprintf("Delete %d items", len(c.entries))
}

// batchConfigEntry holds the before/after config for one item.
type batchConfigEntry struct {
	canvasID string
	itemID   string
	before   map[string]any
	after    map[string]any
}

// BatchUpdateConfig applies and reverts config updates for a group of items
// as one store reassignment.
//
// Delete-style contract: constructed before the update, capturing every
// item's current config; the caller applies it by invoking Redo.
type BatchUpdateConfig struct {
	st      Store
	entries []batchConfigEntry
}

// NewBatchUpdateConfig captures before/after config pairs for the given
// item ids. Patches merge key-by-key into the existing config.
func NewBatchUpdateConfig(st Store, patches map[string]map[string]any) *BatchUpdateConfig {
	doc := st.Get()
	entries := make([]batchConfigEntry, 0, len(patches))
	for id, patch := range patches {
		canvasID, _, item := doc.FindItem(id)
		if item == nil {
			st.Logger().Debug("batch config: item missing", "item", id)
			continue
		}
		after := document.CloneConfig(item.Config)
		if after == nil {
			after = make(map[string]any, len(patch))
		}
		for k, v := range document.CloneConfig(patch) {
			after[k] = v
		}
		entries = append(entries, batchConfigEntry{
			canvasID: canvasID,
			itemID:   id,
			before:   document.CloneConfig(item.Config),
			after:    after,
		})
	}
	return &BatchUpdateConfig{st: st, entries: entries}
}

// Len returns the number of updates the batch captured.
func (c *BatchUpdateConfig) Len() int { return len(c.entries) }

// Undo restores every captured before-config in one reassignment.
func (c *BatchUpdateConfig) Undo() error {
	return c.apply(func(e batchConfigEntry) map[string]any { return e.before })
}

// Redo reapplies every captured after-config in one reassignment.
func (c *BatchUpdateConfig) Redo() error {
	return c.apply(func(e batchConfigEntry) map[string]any { return e.after })
}

func (c *BatchUpdateConfig) apply(pick func(batchConfigEntry) map[string]any) error {
	doc := c.st.Get()
	for _, e := range c.entries {
		cv, ok := doc.Canvases[e.canvasID]
		if !ok || cv.IndexOf(e.itemID) < 0 {
			c.st.Logger().Debug("batch config: entry missing", "item", e.itemID, "canvas", e.canvasID)
			return nil
		}
	}

	canvases := document.CopyCanvases(doc.Canvases)
	for _, e := range c.entries {
		cv := canvases[e.canvasID]
		idx := cv.IndexOf(e.itemID)
		updated := document.CloneItem(cv.Items[idx])
		updated.Config = document.CloneConfig(pick(e))
		items := append([]*document.Item{}, cv.Items...)
		items[idx] = updated
		canvases[e.canvasID] = cv.WithItems(items)
	}
	return replaceCanvases(c.st, canvases)
}

// Description returns a human-readable description.
func (c *BatchUpdateConfig) Description() string {
	return fmt.Sprintf("Update config of %d items", len(c.entries))
}
