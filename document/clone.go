package document

// CloneItem returns a deep copy of an item, including its layouts and
// free-form config. Commands capture snapshots through this rather than a
// serialize round-trip so nil maps and non-JSON values survive intact.
func CloneItem(it *Item) *Item {
	if it == nil {
		return nil
	}
	out := &Item{
		ID:       it.ID,
		CanvasID: it.CanvasID,
		Type:     it.Type,
		Name:     it.Name,
		ZIndex:   it.ZIndex,
	}
	if it.Layouts != nil {
		out.Layouts = CloneLayouts(it.Layouts)
	}
	if it.Config != nil {
		out.Config = cloneMap(it.Config)
	}
	return out
}

// CloneLayouts deep-copies a layouts map, re-pointering the nullable
// coordinates.
func CloneLayouts(layouts map[string]LayoutConfig) map[string]LayoutConfig {
	out := make(map[string]LayoutConfig, len(layouts))
	for k, v := range layouts {
		out[k] = LayoutConfig{
			X:          cloneFloat(v.X),
			Y:          cloneFloat(v.Y),
			Width:      cloneFloat(v.Width),
			Height:     cloneFloat(v.Height),
			Customized: v.Customized,
		}
	}
	return out
}

// CloneCanvas returns a deep copy of a canvas and all of its items.
func CloneCanvas(c *Canvas) *Canvas {
	if c == nil {
		return nil
	}
	out := &Canvas{
		Items:         make([]*Item, 0, len(c.Items)),
		ZIndexCounter: c.ZIndexCounter,
		Background:    c.Background,
	}
	for _, it := range c.Items {
		out.Items = append(out.Items, CloneItem(it))
	}
	return out
}

// CloneDocument returns a deep copy of the full document.
func CloneDocument(d *Document) *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Canvases:        make(map[string]*Canvas, len(d.Canvases)),
		ItemCounter:     d.ItemCounter,
		Selection:       d.Selection,
		ActiveCanvasID:  d.ActiveCanvasID,
		CurrentViewport: d.CurrentViewport,
		ShowGrid:        d.ShowGrid,
	}
	for k, v := range d.Canvases {
		out.Canvases[k] = CloneCanvas(v)
	}
	if d.Breakpoints != nil {
		out.Breakpoints = make(map[string]Breakpoint, len(d.Breakpoints))
		for k, v := range d.Breakpoints {
			out.Breakpoints[k] = v
		}
	}
	return out
}

// CloneConfig deep-copies a free-form config map.
func CloneConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	return cloneMap(config)
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// cloneValue recursively copies the value shapes that appear in item config:
// maps, slices and scalars. Anything else is copied by value.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
