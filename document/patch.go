package document

// ItemPatch is a partial update to an item. Nil fields are left unchanged;
// Config entries merge key-by-key into the existing config; Layouts entries
// replace the layout for their breakpoint wholesale.
type ItemPatch struct {
	Name    *string                 `json:"name,omitempty"`
	ZIndex  *int                    `json:"zIndex,omitempty"`
	Config  map[string]any          `json:"config,omitempty"`
	Layouts map[string]LayoutConfig `json:"layouts,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p ItemPatch) IsZero() bool {
	return p.Name == nil && p.ZIndex == nil && len(p.Config) == 0 && len(p.Layouts) == 0
}

// ApplyPatch returns a patched deep copy of the item. The original is never
// mutated.
func ApplyPatch(it *Item, patch ItemPatch) *Item {
	out := CloneItem(it)
	if out == nil {
		return nil
	}
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.ZIndex != nil {
		out.ZIndex = *patch.ZIndex
	}
	if len(patch.Config) > 0 {
		if out.Config == nil {
			out.Config = make(map[string]any, len(patch.Config))
		}
		for k, v := range patch.Config {
			out.Config[k] = cloneValue(v)
		}
	}
	if len(patch.Layouts) > 0 {
		if out.Layouts == nil {
			out.Layouts = make(map[string]LayoutConfig, len(patch.Layouts))
		}
		for k, v := range CloneLayouts(patch.Layouts) {
			out.Layouts[k] = v
		}
	}
	return out
}

// String returns a pointer to s, for populating patch fields.
func String(s string) *string {
	return &s
}

// Int returns a pointer to n, for populating patch fields.
func Int(n int) *int {
	return &n
}
