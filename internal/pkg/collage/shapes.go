package collage

// The two persisted representations of a composition diverge: drafts store
// the placement attributes flat on each item, published collages nest them
// under "layout". Both shapes predate this codebase and existing records
// must keep loading, so the shapes are bridged here instead of unified.
// Missing attributes are legal in either shape and normalize to the
// documented defaults.

// DraftItem is one layer in the draft shape (shape A, flat attributes).
type DraftItem struct {
	ImageURL string   `json:"imageUrl"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Flipped  *bool    `json:"flipped,omitempty"`
}

// Layout carries the nested placement block of the published shape.
type Layout struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`
}

// CollageItem is one layer in the published-collage shape (shape B,
// placement nested under layout).
type CollageItem struct {
	ImageURL string   `json:"imageUrl"`
	Layout   *Layout  `json:"layout,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Flipped  *bool    `json:"flipped,omitempty"`
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrBool(v bool) *bool        { return &v }

// Normalized returns a copy of the item with every absent attribute filled
// with its default. Applying it twice yields the same result.
func (it DraftItem) Normalized() DraftItem {
	return DraftItem{
		ImageURL: it.ImageURL,
		X:        ptrFloat(floatOr(it.X, DefaultX)),
		Y:        ptrFloat(floatOr(it.Y, DefaultY)),
		Width:    ptrFloat(floatOr(it.Width, DefaultWidth)),
		Height:   ptrFloat(floatOr(it.Height, DefaultHeight)),
		Rotation: ptrFloat(floatOr(it.Rotation, DefaultRotation)),
		ZIndex:   ptrInt(intOr(it.ZIndex, DefaultZIndex)),
		Opacity:  ptrFloat(floatOr(it.Opacity, DefaultOpacity)),
		Flipped:  ptrBool(boolOr(it.Flipped, false)),
	}
}

// Layer converts the item into the canonical in-memory representation.
func (it DraftItem) Layer() Layer {
	n := it.Normalized()
	return Layer{
		ImageURL: n.ImageURL,
		X:        *n.X,
		Y:        *n.Y,
		Width:    *n.Width,
		Height:   *n.Height,
		Rotation: *n.Rotation,
		ZIndex:   *n.ZIndex,
		Opacity:  *n.Opacity,
		Flipped:  *n.Flipped,
	}
}

// Normalized returns a copy of the item with the layout block present and
// every absent attribute filled with its default.
func (it CollageItem) Normalized() CollageItem {
	layout := it.Layout
	if layout == nil {
		layout = &Layout{}
	}
	return CollageItem{
		ImageURL: it.ImageURL,
		Layout: &Layout{
			X:        ptrFloat(floatOr(layout.X, DefaultX)),
			Y:        ptrFloat(floatOr(layout.Y, DefaultY)),
			Width:    ptrFloat(floatOr(layout.Width, DefaultWidth)),
			Height:   ptrFloat(floatOr(layout.Height, DefaultHeight)),
			Rotation: ptrFloat(floatOr(layout.Rotation, DefaultRotation)),
			ZIndex:   ptrInt(intOr(layout.ZIndex, DefaultZIndex)),
		},
		Opacity: ptrFloat(floatOr(it.Opacity, DefaultOpacity)),
		Flipped: ptrBool(boolOr(it.Flipped, false)),
	}
}

// Layer converts the item into the canonical in-memory representation.
func (it CollageItem) Layer() Layer {
	n := it.Normalized()
	return Layer{
		ImageURL: n.ImageURL,
		X:        *n.Layout.X,
		Y:        *n.Layout.Y,
		Width:    *n.Layout.Width,
		Height:   *n.Layout.Height,
		Rotation: *n.Layout.Rotation,
		ZIndex:   *n.Layout.ZIndex,
		Opacity:  *n.Opacity,
		Flipped:  *n.Flipped,
	}
}

// FromDraftItems hydrates a composition from the draft shape.
func FromDraftItems(items []DraftItem) Composition {
	out := make(Composition, 0, len(items))
	for _, it := range items {
		out = append(out, it.Layer())
	}
	return out
}

// FromCollageItems hydrates a composition from the published shape.
func FromCollageItems(items []CollageItem) Composition {
	out := make(Composition, 0, len(items))
	for _, it := range items {
		out = append(out, it.Layer())
	}
	return out
}

// ToDraftItems serializes a composition into the draft shape with all
// defaults filled.
func ToDraftItems(c Composition) []DraftItem {
	out := make([]DraftItem, 0, len(c))
	for _, l := range c {
		out = append(out, DraftItem{
			ImageURL: l.ImageURL,
			X:        ptrFloat(l.X),
			Y:        ptrFloat(l.Y),
			Width:    ptrFloat(l.Width),
			Height:   ptrFloat(l.Height),
			Rotation: ptrFloat(l.Rotation),
			ZIndex:   ptrInt(l.ZIndex),
			Opacity:  ptrFloat(l.Opacity),
			Flipped:  ptrBool(l.Flipped),
		})
	}
	return out
}

// ToCollageItems serializes a composition into the published shape with
// all defaults filled.
func ToCollageItems(c Composition) []CollageItem {
	out := make([]CollageItem, 0, len(c))
	for _, l := range c {
		out = append(out, CollageItem{
			ImageURL: l.ImageURL,
			Layout: &Layout{
				X:        ptrFloat(l.X),
				Y:        ptrFloat(l.Y),
				Width:    ptrFloat(l.Width),
				Height:   ptrFloat(l.Height),
				Rotation: ptrFloat(l.Rotation),
				ZIndex:   ptrInt(l.ZIndex),
			},
			Opacity: ptrFloat(l.Opacity),
			Flipped: ptrBool(l.Flipped),
		})
	}
	return out
}
