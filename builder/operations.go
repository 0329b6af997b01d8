package builder

import (
	"context"
	"fmt"

	"github.com/dshills/gridcore/command"
	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
	"github.com/dshills/gridcore/store"
)

// AddItem places a new component on a canvas at the given grid position.
// A missing canvas is created on the fly so the first item of an empty
// document just works. Returns the placed item with its generated id.
func (b *Builder) AddItem(canvasID, componentType string, x, y, width, height float64) (*document.Item, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if canvasID == "" {
		return nil, ErrInvalidCanvasID
	}

	doc := b.st.Get()
	n := doc.ItemCounter + 1

	target := document.NewCanvas()
	if cv, ok := doc.Canvases[canvasID]; ok {
		target = cv.WithItems(cv.Items)
	}
	z := target.ZIndexCounter

	item := &document.Item{
		ID:       document.FormatItemID(n),
		CanvasID: canvasID,
		Type:     componentType,
		Name:     componentType,
		Layouts:  b.newItemLayouts(doc, x, y, width, height),
		ZIndex:   z,
		Config:   map[string]any{},
	}

	target = target.WithItems(append(append([]*document.Item{}, target.Items...), item))
	target.ZIndexCounter = z + 1

	canvases := document.CopyCanvases(doc.Canvases)
	canvases[canvasID] = target

	if err := b.st.Replace(store.FieldItemCounter, n); err != nil {
		return nil, err
	}
	if err := b.st.Replace(store.FieldCanvases, canvases); err != nil {
		return nil, err
	}

	b.push(command.NewAddItem(b.st, item, canvasID))
	b.bus.Emit(event.TopicItemAdded, event.ItemAdded{
		Item:     document.CloneItem(item),
		CanvasID: canvasID,
	})
	return item, nil
}

// newItemLayouts writes a layout entry for every known breakpoint using
// the supplied rect. Only the current viewport's entry is customized; the
// rest resolve through layout-mode inheritance until edited.
func (b *Builder) newItemLayouts(doc *document.Document, x, y, width, height float64) map[string]document.LayoutConfig {
	viewport := doc.CurrentViewport
	if viewport == "" {
		viewport = document.DefaultViewport
	}

	layouts := make(map[string]document.LayoutConfig, len(doc.Breakpoints)+1)
	write := func(name string) {
		layouts[name] = document.LayoutConfig{
			X:          document.Float(x),
			Y:          document.Float(y),
			Width:      document.Float(width),
			Height:     document.Float(height),
			Customized: name == viewport,
		}
	}
	for name := range doc.Breakpoints {
		write(name)
	}
	if _, ok := layouts[viewport]; !ok {
		write(viewport)
	}
	return layouts
}

// RemoveItem deletes an item. When a before-delete hook is installed the
// deletion waits on its decision: a veto leaves the document untouched.
// A missing item is a silent no-op.
func (b *Builder) RemoveItem(ctx context.Context, itemID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	doc := b.st.Get()
	canvasID, index, item := doc.FindItem(itemID)
	if item == nil {
		b.logger.Debug("remove: item missing", "item", itemID)
		return nil
	}

	if b.cfg.beforeDelete != nil {
		approved, err := b.cfg.beforeDelete(ctx, document.CloneItem(item))
		if err != nil {
			b.emitError("removeItem", err)
			return fmt.Errorf("before-delete hook: %w", err)
		}
		if !approved {
			return nil
		}
		// Recapture position: state may have moved while the hook waited.
		canvasID, index, item = b.st.Get().FindItem(itemID)
		if item == nil {
			return nil
		}
	}

	cmd := command.NewDeleteItem(b.st, item, canvasID, index)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	b.bus.Emit(event.TopicItemRemoved, event.ItemRemoved{ItemID: itemID, CanvasID: canvasID})
	return nil
}

// UpdateItem applies a partial update to an item. An empty patch or a
// missing item is a silent no-op.
func (b *Builder) UpdateItem(itemID string, patch document.ItemPatch) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if patch.IsZero() {
		return nil
	}

	doc := b.st.Get()
	canvasID, _, item := doc.FindItem(itemID)
	if item == nil {
		b.logger.Debug("update: item missing", "item", itemID)
		return nil
	}

	cmd := command.NewUpdateItem(b.st, canvasID, item, patch)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	b.bus.Emit(event.TopicItemUpdated, event.ItemUpdated{
		ItemID:   itemID,
		CanvasID: canvasID,
		Updates:  patch,
	})
	return nil
}

// MoveItem moves an item to a new grid position, optionally across
// canvases. A cross-canvas move appends to the target and takes a fresh
// z-index from its counter; a same-canvas move updates position only. A
// missing item or target canvas is a silent no-op.
func (b *Builder) MoveItem(itemID, toCanvasID string, x, y float64) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if toCanvasID == "" {
		return ErrInvalidCanvasID
	}

	doc := b.st.Get()
	fromCanvasID, index, item := doc.FindItem(itemID)
	if item == nil {
		b.logger.Debug("move: item missing", "item", itemID)
		return nil
	}
	target, ok := doc.Canvases[toCanvasID]
	if !ok {
		b.logger.Debug("move: target canvas missing", "canvas", toCanvasID)
		return nil
	}

	viewport := doc.CurrentViewport
	if viewport == "" {
		viewport = document.DefaultViewport
	}

	spec := command.MoveSpec{
		ItemID:       itemID,
		FromCanvasID: fromCanvasID,
		ToCanvasID:   toCanvasID,
		Viewport:     viewport,
		BeforeLayout: item.Layouts[viewport],
		ToX:          x,
		ToY:          y,
		FromZIndex:   item.ZIndex,
		ToZIndex:     item.ZIndex,
		FromIndex:    index,
	}
	if fromCanvasID != toCanvasID {
		spec.ToZIndex = target.ZIndexCounter
		spec.ToCounter = target.ZIndexCounter + 1
	}

	cmd := command.NewMoveItem(b.st, spec)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	b.bus.Emit(event.TopicItemMoved, event.ItemMoved{
		ItemID:       itemID,
		FromCanvasID: fromCanvasID,
		ToCanvasID:   toCanvasID,
	})
	return nil
}

// ItemSpec describes one item for a bulk AddItems call.
type ItemSpec struct {
	CanvasID string
	Type     string
	Name     string
	X, Y     float64
	Width    float64
	Height   float64
	Config   map[string]any
}

// AddItems places a group of items as one atomic action: a single store
// reassignment, a single batch command, one event per item. Missing
// canvases are created on the fly.
func (b *Builder) AddItems(specs []ItemSpec) ([]*document.Item, error) {
	if err := b.checkOpen(); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}
	for _, spec := range specs {
		if spec.CanvasID == "" {
			return nil, ErrInvalidCanvasID
		}
	}

	doc := b.st.Get()
	canvases := document.CopyCanvases(doc.Canvases)
	n := doc.ItemCounter
	created := make([]*document.Item, 0, len(specs))

	for _, spec := range specs {
		target := document.NewCanvas()
		if cv, ok := canvases[spec.CanvasID]; ok {
			target = cv.WithItems(cv.Items)
		}
		z := target.ZIndexCounter
		n++

		name := spec.Name
		if name == "" {
			name = spec.Type
		}
		item := &document.Item{
			ID:       document.FormatItemID(n),
			CanvasID: spec.CanvasID,
			Type:     spec.Type,
			Name:     name,
			Layouts:  b.newItemLayouts(doc, spec.X, spec.Y, spec.Width, spec.Height),
			ZIndex:   z,
			Config:   document.CloneConfig(spec.Config),
		}
		if item.Config == nil {
			item.Config = map[string]any{}
		}

		target = target.WithItems(append(append([]*document.Item{}, target.Items...), item))
		target.ZIndexCounter = z + 1
		canvases[spec.CanvasID] = target
		created = append(created, item)
	}

	if err := b.st.Replace(store.FieldItemCounter, n); err != nil {
		return nil, err
	}
	if err := b.st.Replace(store.FieldCanvases, canvases); err != nil {
		return nil, err
	}

	b.push(command.NewBatchAdd(b.st, created))
	for _, item := range created {
		b.bus.Emit(event.TopicItemAdded, event.ItemAdded{
			Item:     document.CloneItem(item),
			CanvasID: item.CanvasID,
		})
	}
	return created, nil
}

// RemoveItems deletes a group of items as one atomic action. The
// before-delete hook, when installed, is consulted per item; vetoed items
// stay. Missing ids are skipped silently.
func (b *Builder) RemoveItems(ctx context.Context, itemIDs []string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	approved := itemIDs
	if b.cfg.beforeDelete != nil {
		doc := b.st.Get()
		approved = make([]string, 0, len(itemIDs))
		for _, id := range itemIDs {
			_, _, item := doc.FindItem(id)
			if item == nil {
				continue
			}
			ok, err := b.cfg.beforeDelete(ctx, document.CloneItem(item))
			if err != nil {
				b.emitError("removeItems", err)
				return fmt.Errorf("before-delete hook: %w", err)
			}
			if ok {
				approved = append(approved, id)
			}
		}
	}

	cmd := command.NewBatchDelete(b.st, approved)
	if cmd.Len() == 0 {
		return nil
	}
	itemIDs = cmd.ItemIDs()
	canvasIDs := cmd.CanvasIDs()

	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	for i, id := range itemIDs {
		b.bus.Emit(event.TopicItemRemoved, event.ItemRemoved{ItemID: id, CanvasID: canvasIDs[i]})
	}
	return nil
}

// UpdateItemsConfig merges config patches into a group of items as one
// atomic action. Missing ids are skipped silently.
func (b *Builder) UpdateItemsConfig(patches map[string]map[string]any) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	cmd := command.NewBatchUpdateConfig(b.st, patches)
	if cmd.Len() == 0 {
		return nil
	}
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	for id, patch := range patches {
		canvasID, _, item := b.st.Get().FindItem(id)
		if item == nil {
			continue
		}
		b.bus.Emit(event.TopicItemUpdated, event.ItemUpdated{
			ItemID:   id,
			CanvasID: canvasID,
			Updates:  document.ItemPatch{Config: patch},
		})
	}
	return nil
}

// AddCanvas creates an empty canvas. Adding an existing canvas is a
// silent no-op.
func (b *Builder) AddCanvas(canvasID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if canvasID == "" {
		return ErrInvalidCanvasID
	}
	if _, exists := b.st.Get().Canvases[canvasID]; exists {
		return nil
	}

	cmd := command.NewAddCanvas(b.st, b.bus, canvasID)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	return nil
}

// RemoveCanvas deletes a canvas with everything on it. Undo restores the
// canvas exactly, items and z-index counter included. A missing canvas is
// a silent no-op.
func (b *Builder) RemoveCanvas(canvasID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	cmd := command.NewRemoveCanvas(b.st, b.bus, canvasID)
	if cmd == nil {
		return nil
	}
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	return nil
}

// SetCanvasBackground changes a canvas's background setting. A missing
// canvas or an unchanged value is a silent no-op.
func (b *Builder) SetCanvasBackground(canvasID, background string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	doc := b.st.Get()
	cv, ok := doc.Canvases[canvasID]
	if !ok {
		b.logger.Debug("set background: canvas missing", "canvas", canvasID)
		return nil
	}
	if cv.Background == background {
		return nil
	}

	cmd := command.NewSetCanvasBackground(b.st, canvasID, cv.Background, background)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	b.bus.Emit(event.TopicCanvasUpdated, event.CanvasUpdated{CanvasID: canvasID})
	return nil
}

// BringToFront gives an item the next z-index from its canvas's counter.
func (b *Builder) BringToFront(itemID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	doc := b.st.Get()
	canvasID, _, item := doc.FindItem(itemID)
	if item == nil {
		b.logger.Debug("bring to front: item missing", "item", itemID)
		return nil
	}

	newZ := doc.Canvases[canvasID].ZIndexCounter
	return b.changeZIndex(
		[]event.ZIndexChange{{ItemID: itemID, CanvasID: canvasID, OldZIndex: item.ZIndex, NewZIndex: newZ}},
		map[string]int{canvasID: newZ + 1},
	)
}

// SendToBack pushes an item below every other item on its canvas.
func (b *Builder) SendToBack(itemID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	doc := b.st.Get()
	canvasID, _, item := doc.FindItem(itemID)
	if item == nil {
		b.logger.Debug("send to back: item missing", "item", itemID)
		return nil
	}

	minZ := item.ZIndex
	for _, it := range doc.Canvases[canvasID].Items {
		if it.ZIndex < minZ {
			minZ = it.ZIndex
		}
	}
	if item.ZIndex == minZ {
		return nil
	}
	return b.changeZIndex(
		[]event.ZIndexChange{{ItemID: itemID, CanvasID: canvasID, OldZIndex: item.ZIndex, NewZIndex: minZ - 1}},
		nil,
	)
}

// SetZIndex assigns an explicit z-index to an item and keeps the canvas
// counter ahead of it.
func (b *Builder) SetZIndex(itemID string, zIndex int) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	doc := b.st.Get()
	canvasID, _, item := doc.FindItem(itemID)
	if item == nil {
		b.logger.Debug("set z-index: item missing", "item", itemID)
		return nil
	}
	if item.ZIndex == zIndex {
		return nil
	}
	return b.changeZIndex(
		[]event.ZIndexChange{{ItemID: itemID, CanvasID: canvasID, OldZIndex: item.ZIndex, NewZIndex: zIndex}},
		map[string]int{canvasID: zIndex + 1},
	)
}

func (b *Builder) changeZIndex(changes []event.ZIndexChange, counters map[string]int) error {
	cmd := command.NewChangeZIndex(b.st, b.bus, changes, counters)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	return nil
}

// SetViewport switches the current viewport. The name must be a known
// breakpoint. Per-instance: in shared mode other instances keep their own
// viewport.
func (b *Builder) SetViewport(name string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	doc := b.st.Get()
	if _, ok := doc.Breakpoints[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownViewport, name)
	}
	old := doc.CurrentViewport
	if old == name {
		return nil
	}

	cmd := command.NewSetViewport(b.st, old, name)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	b.bus.Emit(event.TopicViewportChanged, event.ViewportChanged{
		OldViewport: old,
		NewViewport: name,
	})
	return nil
}

// ToggleGrid flips the grid display flag.
func (b *Builder) ToggleGrid() error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	before := b.st.Get().ShowGrid
	cmd := command.NewToggleGrid(b.st, before)
	if err := cmd.Redo(); err != nil {
		return err
	}
	b.push(cmd)
	b.bus.Emit(event.TopicGridVisibility, event.GridVisibilityChanged{Visible: !before})
	return nil
}

// SelectItem marks an item as the editing target. Selection is view state:
// not undoable, never shared. A missing item is a silent no-op.
func (b *Builder) SelectItem(itemID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	canvasID, _, item := b.st.Get().FindItem(itemID)
	if item == nil {
		b.logger.Debug("select: item missing", "item", itemID)
		return nil
	}

	if err := b.st.Replace(store.FieldSelection, document.Selection{
		SelectedItemID:   itemID,
		SelectedCanvasID: canvasID,
	}); err != nil {
		return err
	}
	b.bus.Emit(event.TopicSelectionChanged, event.SelectionChanged{ItemID: itemID, CanvasID: canvasID})
	return nil
}

// ClearSelection drops the current selection, if any.
func (b *Builder) ClearSelection() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if b.st.Get().Selection.IsZero() {
		return nil
	}

	if err := b.st.Replace(store.FieldSelection, document.Selection{}); err != nil {
		return err
	}
	b.bus.Emit(event.TopicSelectionChanged, event.SelectionChanged{})
	return nil
}

// SetActiveCanvas tracks interaction focus. Independent of selection and
// not undoable.
func (b *Builder) SetActiveCanvas(canvasID string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	return b.st.Replace(store.FieldActiveCanvas, canvasID)
}
