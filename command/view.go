package command

import (
	"fmt"

	"github.com/dshills/gridcore/store"
)

// SetViewport switches the current viewport between breakpoints.
//
// Delete-style contract: constructed with both values before the change;
// the caller applies it by invoking Redo. Viewport is per-instance view
// state, so in shared mode this only affects the instance that ran it.
type SetViewport struct {
	st          Store
	oldViewport string
	newViewport string
}

// NewSetViewport captures a viewport change about to be applied.
func NewSetViewport(st Store, oldViewport, newViewport string) *SetViewport {
	return &SetViewport{st: st, oldViewport: oldViewport, newViewport: newViewport}
}

// Redo applies the new viewport.
func (c *SetViewport) Redo() error {
	return c.st.Replace(store.FieldViewport, c.newViewport)
}

// Undo restores the old viewport.
func (c *SetViewport) Undo() error {
	return c.st.Replace(store.FieldViewport, c.oldViewport)
}

// Description returns a human-readable description.
func (c *SetViewport) Description() string {
	return fmt.Sprintf("Switch viewport to %s", c.newViewport)
}

// ToggleGrid flips the grid visibility flag.
//
// Delete-style contract: constructed with the pre-toggle value; the caller
// applies it by invoking Redo.
type ToggleGrid struct {
	st     Store
	before bool
}

// NewToggleGrid captures a grid toggle about to be applied.
func NewToggleGrid(st Store, before bool) *ToggleGrid {
	return &ToggleGrid{st: st, before: before}
}

// Redo sets the flipped value.
func (c *ToggleGrid) Redo() error {
	return c.st.Replace(store.FieldShowGrid, !c.before)
}

// Undo restores the original value.
func (c *ToggleGrid) Undo() error {
	return c.st.Replace(store.FieldShowGrid, c.before)
}

// Description returns a human-readable description.
func (c *ToggleGrid) Description() string {
	if c.before {
		return "Hide grid"
	}
	return "Show grid"
}
