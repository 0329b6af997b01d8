package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemPatchIsZero(t *testing.T) {
	assert.True(t, ItemPatch{}.IsZero())
	assert.False(t, ItemPatch{Name: String("x")}.IsZero())
	assert.False(t, ItemPatch{ZIndex: Int(3)}.IsZero())
	assert.False(t, ItemPatch{Config: map[string]any{"k": 1}}.IsZero())
	assert.False(t, ItemPatch{Layouts: map[string]LayoutConfig{"desktop": {}}}.IsZero())
}

func TestApplyPatchScalars(t *testing.T) {
	it := testItem("item-1", "main")

	out := ApplyPatch(it, ItemPatch{Name: String("Header"), ZIndex: Int(9)})
	require.NotNil(t, out)
	assert.Equal(t, "Header", out.Name)
	assert.Equal(t, 9, out.ZIndex)

	// The original is untouched.
	assert.Equal(t, "text", it.Name)
	assert.Equal(t, 1, it.ZIndex)
}

func TestApplyPatchConfigMergesByKey(t *testing.T) {
	it := testItem("item-1", "main")
	it.Config = map[string]any{"color": "red", "size": 12}

	out := ApplyPatch(it, ItemPatch{Config: map[string]any{"size": 14, "bold": true}})
	assert.Equal(t, "red", out.Config["color"])
	assert.Equal(t, 14, out.Config["size"])
	assert.Equal(t, true, out.Config["bold"])
	assert.Equal(t, 12, it.Config["size"])
}

func TestApplyPatchLayoutReplacesWholesale(t *testing.T) {
	it := testItem("item-1", "main")

	out := ApplyPatch(it, ItemPatch{Layouts: map[string]LayoutConfig{
		"desktop": {X: Float(8), Y: Float(8)},
	}})

	layout := out.Layouts["desktop"]
	assert.Equal(t, 8.0, *layout.X)
	assert.Nil(t, layout.Width, "unspecified coordinates do not survive a wholesale replace")
	assert.False(t, layout.Customized)

	// Untouched breakpoints keep their layouts.
	it.Layouts["tablet"] = LayoutConfig{X: Float(1)}
	out = ApplyPatch(it, ItemPatch{Layouts: map[string]LayoutConfig{"desktop": {}}})
	assert.Equal(t, 1.0, *out.Layouts["tablet"].X)
}

func TestApplyPatchNilItem(t *testing.T) {
	assert.Nil(t, ApplyPatch(nil, ItemPatch{Name: String("x")}))
}

func TestApplyPatchOnNilConfig(t *testing.T) {
	it := &Item{ID: "item-1", Type: "text"}
	out := ApplyPatch(it, ItemPatch{Config: map[string]any{"k": "v"}})
	require.NotNil(t, out.Config)
	assert.Equal(t, "v", out.Config["k"])
}
