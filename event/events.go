package event

import "github.com/dshills/gridcore/document"

// Domain topics emitted by the builder core. Each topic carries the payload
// type of the same name, so subscribers can assert without guessing.
const (
	TopicItemAdded        Topic = "item.added"
	TopicItemRemoved      Topic = "item.removed"
	TopicItemUpdated      Topic = "item.updated"
	TopicItemMoved        Topic = "item.moved"
	TopicSelectionChanged Topic = "selection.changed"
	TopicViewportChanged  Topic = "viewport.changed"
	TopicGridVisibility   Topic = "grid.visibility"
	TopicCanvasAdded      Topic = "canvas.added"
	TopicCanvasRemoved    Topic = "canvas.removed"
	TopicCanvasUpdated    Topic = "canvas.updated"
	TopicZIndexChanged    Topic = "zindex.changed"
	TopicZIndexBatch      Topic = "zindex.batch"
	TopicHistoryChanged   Topic = "history.changed"
	TopicStateChanged     Topic = "state.changed"
	TopicError            Topic = "error"
)

// ItemAdded is the payload for TopicItemAdded. Item is a clone; mutating it
// does not touch the document.
type ItemAdded struct {
	Item     *document.Item
	CanvasID string
}

// ItemRemoved is the payload for TopicItemRemoved.
type ItemRemoved struct {
	ItemID   string
	CanvasID string
}

// ItemUpdated is the payload for TopicItemUpdated.
type ItemUpdated struct {
	ItemID   string
	CanvasID string
	Updates  document.ItemPatch
}

// ItemMoved is the payload for TopicItemMoved.
type ItemMoved struct {
	ItemID       string
	FromCanvasID string
	ToCanvasID   string
}

// SelectionChanged is the payload for TopicSelectionChanged. Both fields
// empty means the selection was cleared.
type SelectionChanged struct {
	ItemID   string
	CanvasID string
}

// ViewportChanged is the payload for TopicViewportChanged.
type ViewportChanged struct {
	OldViewport string
	NewViewport string
}

// GridVisibilityChanged is the payload for TopicGridVisibility.
type GridVisibilityChanged struct {
	Visible bool
}

// CanvasAdded is the payload for TopicCanvasAdded.
type CanvasAdded struct {
	CanvasID string
}

// CanvasRemoved is the payload for TopicCanvasRemoved.
type CanvasRemoved struct {
	CanvasID string
}

// CanvasUpdated is the payload for TopicCanvasUpdated.
type CanvasUpdated struct {
	CanvasID string
}

// ZIndexChange is one z-index reassignment. ChangeZIndex commands carry a
// list of these and deliver them as a single change or a batch depending on
// cardinality.
type ZIndexChange struct {
	ItemID    string
	CanvasID  string
	OldZIndex int
	NewZIndex int
}

// ZIndexBatchChanged is the payload for TopicZIndexBatch.
type ZIndexBatchChanged struct {
	Changes []ZIndexChange
}

// HistoryChanged is the payload for TopicHistoryChanged, emitted after
// every push, undo, redo and clear so callers can surface the flags
// reactively.
type HistoryChanged struct {
	CanUndo bool
	CanRedo bool
}

// StateChanged is the payload for TopicStateChanged, fired after whole-state
// transitions: undo, redo, import, reset.
type StateChanged struct {
	Reason string
}

// ErrorEvent is the payload for TopicError, the observability channel for
// errors that are by policy invisible to end users.
type ErrorEvent struct {
	Op  string
	Err error
}
