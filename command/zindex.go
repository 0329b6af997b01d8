package command

import (
	"fmt"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
)

// ChangeZIndex applies and reverts a set of z-index reassignments as one
// atomic step: a single tuple for bring-to-front style changes, several for
// multi-item swaps from reorder operations. It emits zindex.changed for a
// single tuple and zindex.batch otherwise.
//
// Delete-style contract: constructed with old/new tuples before the change;
// the caller applies it by invoking Redo.
type ChangeZIndex struct {
	st      Store
	bus     *event.Bus
	changes []event.ZIndexChange

	// counters optionally advances per-canvas z-index counters on redo so
	// a bring-to-front issues its value from the monotonic source. Undo
	// leaves counters alone; they are non-decreasing by invariant.
	counters map[string]int
}

// NewChangeZIndex captures a z-index change about to be applied. counters
// may be nil when no counter advance is needed.
func NewChangeZIndex(st Store, bus *event.Bus, changes []event.ZIndexChange, counters map[string]int) *ChangeZIndex {
	captured := make([]event.ZIndexChange, len(changes))
	copy(captured, changes)
	return &ChangeZIndex{st: st, bus: bus, changes: captured, counters: counters}
}

// Redo applies every new z-index and advances canvas counters.
func (c *ChangeZIndex) Redo() error {
	return c.apply(func(ch event.ZIndexChange) int { return ch.NewZIndex }, true)
}

// Undo restores every old z-index. Counters stay where they are.
func (c *ChangeZIndex) Undo() error {
	return c.apply(func(ch event.ZIndexChange) int { return ch.OldZIndex }, false)
}

// apply performs all tuples as one store reassignment, or none at all when
// any referenced item is gone.
func (c *ChangeZIndex) apply(pick func(event.ZIndexChange) int, advanceCounters bool) error {
	doc := c.st.Get()
	for _, ch := range c.changes {
		cv, ok := doc.Canvases[ch.CanvasID]
		if !ok || cv.IndexOf(ch.ItemID) < 0 {
			c.st.Logger().Debug("zindex: entry missing", "item", ch.ItemID, "canvas", ch.CanvasID)
			return nil
		}
	}

	canvases := document.CopyCanvases(doc.Canvases)
	for _, ch := range c.changes {
		cv := canvases[ch.CanvasID]
		idx := cv.IndexOf(ch.ItemID)
		updated := document.CloneItem(cv.Items[idx])
		updated.ZIndex = pick(ch)
		items := append([]*document.Item{}, cv.Items...)
		items[idx] = updated
		canvases[ch.CanvasID] = cv.WithItems(items)
	}
	if advanceCounters {
		for canvasID, counter := range c.counters {
			cv, ok := canvases[canvasID]
			if !ok || cv.ZIndexCounter >= counter {
				continue
			}
			updated := cv.WithItems(cv.Items)
			updated.ZIndexCounter = counter
			canvases[canvasID] = updated
		}
	}
	if err := replaceCanvases(c.st, canvases); err != nil {
		return err
	}

	c.emit(pick)
	return nil
}

// emit reports the transition that just happened: on undo the old and new
// values swap roles.
func (c *ChangeZIndex) emit(pick func(event.ZIndexChange) int) {
	if c.bus == nil {
		return
	}
	applied := make([]event.ZIndexChange, len(c.changes))
	for i, ch := range c.changes {
		to := pick(ch)
		from := ch.OldZIndex
		if to == ch.OldZIndex {
			from = ch.NewZIndex
		}
		applied[i] = event.ZIndexChange{
			ItemID:    ch.ItemID,
			CanvasID:  ch.CanvasID,
			OldZIndex: from,
			NewZIndex: to,
		}
	}
	if len(applied) == 1 {
		c.bus.Emit(event.TopicZIndexChanged, applied[0])
		return
	}
	c.bus.Emit(event.TopicZIndexBatch, event.ZIndexBatchChanged{Changes: applied})
}

// Description returns a human-readable description.
func (c *ChangeZIndex) Description() string {
	if len(c.changes) == 1 {
		return fmt.Sprintf("Change z-index of %s", c.changes[0].ItemID)
	}
	return fmt.Sprintf("Change z-index of %d items", len(c.changes))
}
