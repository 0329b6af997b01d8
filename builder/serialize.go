package builder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/gridcore/document"
	"github.com/dshills/gridcore/event"
	"github.com/dshills/gridcore/store"
)

// Serialization errors.
var (
	// ErrInvalidState is returned by ImportState for malformed input.
	ErrInvalidState = errors.New("invalid state payload")
)

// viewOnlyPaths are the document fields that belong to the instance, not
// the shared document. A sharing builder strips them from exports so the
// payload round-trips cleanly between instances with different view state.
var viewOnlyPaths = []string{
	"selectedItemId",
	"selectedCanvasId",
	"activeCanvasId",
	"currentViewport",
	"showGrid",
	"breakpoints",
}

// ExportState serializes the current document to pretty-printed JSON. A
// sharing builder exports only the shared document fields.
func (b *Builder) ExportState() (string, error) {
	if err := b.checkOpen(); err != nil {
		return "", err
	}

	doc := document.CloneDocument(b.st.Get())
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("export state: %w", err)
	}

	if b.cfg.sharingKey != "" {
		for _, path := range viewOnlyPaths {
			raw, err = sjson.DeleteBytes(raw, path)
			if err != nil {
				return "", fmt.Errorf("export state: %w", err)
			}
		}
	}
	return string(pretty.Pretty(raw)), nil
}

// ImportState replaces the document with a previously exported payload.
// The payload is validated before anything is touched; on any failure the
// current state is untouched. A successful import clears the undo history.
// The item counter only moves forward so ids stay unique across imports.
func (b *Builder) ImportState(payload string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	if !gjson.Valid(payload) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidState)
	}
	canvases := gjson.Get(payload, "canvases")
	if !canvases.Exists() || !canvases.IsObject() {
		return fmt.Errorf("%w: missing canvases object", ErrInvalidState)
	}

	doc := document.New()
	if err := json.Unmarshal([]byte(payload), doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	current := b.st.Get()
	counter := doc.ItemCounter
	if current.ItemCounter > counter {
		counter = current.ItemCounter
	}

	if err := b.st.Replace(store.FieldCanvases, doc.Canvases); err != nil {
		return err
	}
	if err := b.st.Replace(store.FieldItemCounter, counter); err != nil {
		return err
	}

	if b.cfg.sharingKey == "" {
		seedViewDefaults(doc)
		if err := b.st.Replace(store.FieldViewport, doc.CurrentViewport); err != nil {
			return err
		}
		if err := b.st.Replace(store.FieldShowGrid, doc.ShowGrid); err != nil {
			return err
		}
		if err := b.st.Replace(store.FieldBreakpoints, doc.Breakpoints); err != nil {
			return err
		}
		if err := b.st.Replace(store.FieldActiveCanvas, doc.ActiveCanvasID); err != nil {
			return err
		}
		if err := b.st.Replace(store.FieldSelection, doc.Selection); err != nil {
			return err
		}
	}

	b.history.Clear()
	b.emitHistory()
	b.bus.Emit(event.TopicStateChanged, event.StateChanged{Reason: "import"})
	return nil
}

// Reset drops all canvases, selection and history, returning the builder
// to an empty document. The item counter resets too; a fresh document has
// no ids to collide with.
func (b *Builder) Reset() error {
	if err := b.checkOpen(); err != nil {
		return err
	}

	if err := b.st.Replace(store.FieldCanvases, map[string]*document.Canvas{}); err != nil {
		return err
	}
	if err := b.st.Replace(store.FieldItemCounter, 0); err != nil {
		return err
	}
	if err := b.st.Replace(store.FieldSelection, document.Selection{}); err != nil {
		return err
	}

	b.history.Clear()
	b.emitHistory()
	b.bus.Emit(event.TopicStateChanged, event.StateChanged{Reason: "reset"})
	return nil
}
