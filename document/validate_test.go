package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() *Document {
	doc := New()
	doc.Canvases["main"] = &Canvas{
		Items:         []*Item{testItem("item-1", "main")},
		ZIndexCounter: 2,
	}
	doc.ItemCounter = 1
	return doc
}

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	require.NoError(t, validDoc().Validate())
	require.NoError(t, New().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"nil canvases", func(d *Document) { d.Canvases = nil }},
		{"item without id", func(d *Document) {
			d.Canvases["main"].Items[0].ID = ""
		}},
		{"item without type", func(d *Document) {
			d.Canvases["main"].Items[0].Type = ""
		}},
		{"selection item without canvas", func(d *Document) {
			d.Selection = Selection{SelectedItemID: "item-1"}
		}},
		{"selection canvas without item", func(d *Document) {
			d.Selection = Selection{SelectedCanvasID: "main"}
		}},
		{"canvas back-reference mismatch", func(d *Document) {
			d.Canvases["main"].Items[0].CanvasID = "other"
		}},
		{"duplicate item id across canvases", func(d *Document) {
			d.Canvases["side"] = &Canvas{Items: []*Item{testItem("item-1", "side")}}
		}},
		{"empty canvas id", func(d *Document) {
			d.Canvases[""] = &Canvas{Items: []*Item{}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)
			err := doc.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestValidateNilDocument(t *testing.T) {
	var doc *Document
	assert.ErrorIs(t, doc.Validate(), ErrInvalidDocument)
}
