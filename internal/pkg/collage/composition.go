package collage

// Composition is the ordered layer sequence of one collage-in-progress.
// Order is the stacking order; duplicates of the same image are allowed.
// Every mutation returns a fresh slice and leaves the receiver untouched,
// because history snapshots keep referencing older sequences.
type Composition []Layer

// Clone returns an independent copy of the composition.
func (c Composition) Clone() Composition {
	if c == nil {
		return Composition{}
	}
	out := make(Composition, len(c))
	copy(out, c)
	return out
}

// Append returns a new composition with the layer added at the end. New
// layers render on top by virtue of array order, not via zIndex.
func (c Composition) Append(layer Layer) Composition {
	out := make(Composition, len(c), len(c)+1)
	copy(out, c)
	return append(out, layer)
}

// AppendAll returns a new composition with all given layers added at the end.
func (c Composition) AppendAll(layers []Layer) Composition {
	out := make(Composition, len(c), len(c)+len(layers))
	copy(out, c)
	return append(out, layers...)
}

// RemoveAt returns a new composition without the layer at index. All later
// indices shift down by one; the caller is responsible for clearing any
// selection that addressed the old indices.
func (c Composition) RemoveAt(index int) Composition {
	out := make(Composition, 0, len(c)-1)
	out = append(out, c[:index]...)
	return append(out, c[index+1:]...)
}

// ReplaceAt returns a new composition where the layer at index is replaced
// by updater(old). All other entries are copied unchanged.
func (c Composition) ReplaceAt(index int, updater func(Layer) Layer) Composition {
	out := c.Clone()
	out[index] = updater(out[index])
	return out
}

// InBounds reports whether index addresses a layer of the composition.
func (c Composition) InBounds(index int) bool {
	return index >= 0 && index < len(c)
}
