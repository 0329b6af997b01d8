// Package document defines the data model for a grid builder document.
//
// A Document is the full editable state for one builder instance or one
// shared group of instances: a set of canvases, each holding an ordered
// sequence of placed items, plus view state (selection, active canvas,
// viewport, grid visibility, breakpoints).
//
// # Canvases and items
//
// Items are placed on canvases. Item order within a canvas is the z-render
// tiebreak and is preserved exactly across undo. Each canvas carries a
// monotonically non-decreasing ZIndexCounter that issues new and
// bring-to-front z-index values.
//
// # Identifiers
//
// Item ids use the format "item-N" where N comes from the document's
// monotonic ItemCounter. Ids are never reused, even after deletion or undo.
//
// # Cloning
//
// Commands must never hold live references into the document. CloneItem,
// CloneCanvas and CloneDocument perform explicit recursive value clones,
// including free-form item config, so captured snapshots cannot be mutated
// from elsewhere.
package document
