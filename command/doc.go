// Package command implements the concrete undoable commands of the builder
// core. Each command is a self-contained snapshot-based undo/redo unit
// operating on a reactive store.
//
// # Construction-order contract
//
// Add-style commands are constructed after their forward effect is already
// applied to the store; their constructors only capture snapshots.
// Delete-style and move-style commands are constructed before the removal,
// so they can capture the item's original array index; the caller then
// applies the forward effect by invoking Redo once. Every command type
// documents which side of this contract it is on.
//
// # Snapshots
//
// Commands never hold live references into the document: captured items and
// canvases are deep clones, and clones are re-cloned on every redo so a
// restored item cannot alias command state.
//
// # Referential misses
//
// If a referenced canvas or item no longer exists when undo or redo runs,
// the command returns nil without partial mutation. These misses arise from
// legitimate interleavings of undo/redo with deletion elsewhere and are
// logged at debug level only.
package command
