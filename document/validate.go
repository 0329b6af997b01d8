package document

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDocument is returned when a document fails structural
// validation, typically during import.
var ErrInvalidDocument = errors.New("invalid document")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural invariants a document must satisfy before
// it can replace the current state: canvases present, every item carries an
// id and type, canvas back-references match their map key, the selection
// pair is both-set or both-empty, and no two items share an id.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if d.Canvases == nil {
		return fmt.Errorf("%w: missing canvases", ErrInvalidDocument)
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if (d.SelectedItemID == "") != (d.SelectedCanvasID == "") {
		return fmt.Errorf("%w: selection must set item and canvas together", ErrInvalidDocument)
	}
	seen := make(map[string]string)
	for canvasID, cv := range d.Canvases {
		if canvasID == "" {
			return fmt.Errorf("%w: empty canvas id", ErrInvalidDocument)
		}
		for _, it := range cv.Items {
			if it.CanvasID != canvasID {
				return fmt.Errorf("%w: item %q claims canvas %q but lives in %q",
					ErrInvalidDocument, it.ID, it.CanvasID, canvasID)
			}
			if prev, dup := seen[it.ID]; dup {
				return fmt.Errorf("%w: item id %q appears in canvases %q and %q",
					ErrInvalidDocument, it.ID, prev, canvasID)
			}
			seen[it.ID] = canvasID
		}
	}
	return nil
}
