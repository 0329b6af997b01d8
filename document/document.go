package document

import "fmt"

// LayoutMode controls how item positions resolve for a breakpoint.
type LayoutMode string

const (
	// LayoutModeStack stacks items vertically, ignoring stored coordinates.
	LayoutModeStack LayoutMode = "stack"
	// LayoutModeManual uses the stored coordinates directly.
	LayoutModeManual LayoutMode = "manual"
	// LayoutModeInherit resolves through the breakpoint named by InheritFrom.
	LayoutModeInherit LayoutMode = "inherit"
)

// Breakpoint describes one responsive viewport.
type Breakpoint struct {
	MinWidth    int        `json:"minWidth"`
	LayoutMode  LayoutMode `json:"layoutMode" validate:"omitempty,oneof=stack manual inherit"`
	InheritFrom string     `json:"inheritFrom,omitempty"`
}

// LayoutConfig is an item's placement for one breakpoint.
// Coordinates are grid units, not pixels. A nil coordinate means the value
// is derived by layout-mode resolution rather than stored. Customized
// indicates the stored values are authoritative for this breakpoint.
type LayoutConfig struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
	Customized bool     `json:"customized"`
}

// Item is one placed component instance.
type Item struct {
	ID       string                  `json:"id" validate:"required"`
	CanvasID string                  `json:"canvasId"`
	Type     string                  `json:"type" validate:"required"`
	Name     string                  `json:"name"`
	Layouts  map[string]LayoutConfig `json:"layouts"`
	ZIndex   int                     `json:"zIndex"`
	Config   map[string]any          `json:"config,omitempty"`
}

// Canvas is an independent placement surface.
type Canvas struct {
	Items         []*Item `json:"items" validate:"dive,required"`
	ZIndexCounter int     `json:"zIndexCounter"`
	Background    string  `json:"background,omitempty"`
}

// Selection identifies the item being edited. Both fields are always empty
// or always set together; the zero value means nothing is selected.
type Selection struct {
	SelectedItemID   string `json:"selectedItemId,omitempty"`
	SelectedCanvasID string `json:"selectedCanvasId,omitempty"`
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.SelectedItemID == "" && s.SelectedCanvasID == ""
}

// Document is the full editable state for one builder instance or shared
// group. Canvases and ItemCounter are shared data; the remaining fields are
// per-instance view state. The wire shape equals the in-memory shape.
type Document struct {
	Canvases    map[string]*Canvas `json:"canvases" validate:"dive,required"`
	ItemCounter int                `json:"itemCounter"`
	Selection
	ActiveCanvasID  string                `json:"activeCanvasId,omitempty"`
	CurrentViewport string                `json:"currentViewport,omitempty"`
	ShowGrid        bool                  `json:"showGrid"`
	Breakpoints     map[string]Breakpoint `json:"breakpoints,omitempty"`
}

// New creates an empty document with no canvases.
func New() *Document {
	return &Document{
		Canvases: make(map[string]*Canvas),
	}
}

// NewCanvas creates an empty canvas. The z-index counter starts at 1 so the
// first item placed gets z-index 1.
func NewCanvas() *Canvas {
	return &Canvas{
		Items:         []*Item{},
		ZIndexCounter: 1,
	}
}

// DefaultBreakpoints returns the standard desktop/tablet/mobile set used to
// seed a fresh instance's view state.
func DefaultBreakpoints() map[string]Breakpoint {
	return map[string]Breakpoint{
		"desktop": {MinWidth: 1024, LayoutMode: LayoutModeManual},
		"tablet":  {MinWidth: 768, LayoutMode: LayoutModeInherit, InheritFrom: "desktop"},
		"mobile":  {MinWidth: 0, LayoutMode: LayoutModeStack},
	}
}

// DefaultViewport is the viewport a fresh instance starts on.
const DefaultViewport = "desktop"

// FormatItemID renders the canonical id for the nth item of a document.
func FormatItemID(n int) string {
	return fmt.Sprintf("item-%d", n)
}

// Float returns a pointer to v, for populating nullable layout coordinates.
func Float(v float64) *float64 {
	return &v
}

// FindItem locates an item by id across all canvases. It returns the owning
// canvas id, the item's index within that canvas, and the item itself.
func (d *Document) FindItem(itemID string) (canvasID string, index int, item *Item) {
	for cid, cv := range d.Canvases {
		if cv == nil {
			continue
		}
		for i, it := range cv.Items {
			if it != nil && it.ID == itemID {
				return cid, i, it
			}
		}
	}
	return "", -1, nil
}

// IndexOf returns the index of the item with the given id, or -1.
func (c *Canvas) IndexOf(itemID string) int {
	for i, it := range c.Items {
		if it != nil && it.ID == itemID {
			return i
		}
	}
	return -1
}

// CopyCanvases returns a shallow copy of a canvases map. Canvas pointers are
// shared; callers replace the entries they mutate.
func CopyCanvases(canvases map[string]*Canvas) map[string]*Canvas {
	out := make(map[string]*Canvas, len(canvases))
	for k, v := range canvases {
		out[k] = v
	}
	return out
}

// WithItems returns a copy of the canvas holding the given item slice.
// Counter and background carry over unless changed afterwards.
func (c *Canvas) WithItems(items []*Item) *Canvas {
	return &Canvas{
		Items:         items,
		ZIndexCounter: c.ZIndexCounter,
		Background:    c.Background,
	}
}

// RemoveItemByID returns a new slice with the item filtered out, plus the
// removed item. The second return is nil when the id was not present.
func RemoveItemByID(items []*Item, itemID string) ([]*Item, *Item) {
	for i, it := range items {
		if it != nil && it.ID == itemID {
			out := make([]*Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out, it
		}
	}
	return items, nil
}

// InsertItemAt returns a new slice with the item inserted at index. An out
// of range index falls back to append, preserving the restore-on-undo
// contract when the surrounding sequence shrank in the meantime.
func InsertItemAt(items []*Item, item *Item, index int) []*Item {
	if index < 0 || index > len(items) {
		index = len(items)
	}
	out := make([]*Item, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	out = append(out, items[index:]...)
	return out
}
