package collage

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLayerNotFound is returned when an operation addresses an index
	// outside the current composition.
	ErrLayerNotFound = errors.New("collage: no layer at index")
	// ErrLayerChanged is returned when a background removal resolves but
	// the addressed layer no longer holds the image the removal was
	// started for (the composition shifted underneath the async call).
	ErrLayerChanged = errors.New("collage: layer changed while background removal was running")
	// ErrNoImage is returned when a layer without an image URL is handed
	// to background removal.
	ErrNoImage = errors.New("collage: layer has no image url")
	// ErrNoRemover is returned when background removal is requested on an
	// editor that was opened without a remover configured.
	ErrNoRemover = errors.New("collage: no background remover configured")
)

// NoSelection marks the absence of a selected layer.
const NoSelection = -1

// BackgroundRemover produces a new durable image URL for the given source
// image with its background removed. Implemented by bgremoval.Service.
type BackgroundRemover interface {
	RemoveFrom(ctx context.Context, imageURL string) (string, error)
}

// Editor owns the live state of one editing session: the current
// composition, its undo/redo history and the transient layer selection.
// Edit operations serialize on an internal mutex so that concurrent
// requests against the same session behave like the single-threaded event
// model they emulate; only background removal releases the mutex while its
// network round trips are in flight.
type Editor struct {
	mu        sync.Mutex
	history   *History
	selection int
	remover   BackgroundRemover
}

// NewEditor starts an editing session over the given initial composition.
func NewEditor(initial Composition, remover BackgroundRemover) *Editor {
	return &Editor{
		history:   NewHistory(initial),
		selection: NoSelection,
		remover:   remover,
	}
}

// Current returns a copy of the currently displayed composition.
func (e *Editor) Current() Composition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Current().Clone()
}

// Selection returns the selected layer index, or NoSelection.
func (e *Editor) Selection() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// Select marks the layer at index as selected.
func (e *Editor) Select(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.history.Current().InBounds(index) {
		return ErrLayerNotFound
	}
	e.selection = index
	return nil
}

// Deselect clears the selection (outside-click contract).
func (e *Editor) Deselect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = NoSelection
}

// CanUndo reports whether the session has something to undo.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether the session has something to redo.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// HistoryLen returns the number of recorded snapshots.
func (e *Editor) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Len()
}

// AddLayer appends a fresh layer for the given image and commits.
func (e *Editor) AddLayer(imageURL string) Composition {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.history.Current().Append(NewLayer(imageURL))
	e.history.Commit(next)
	return next.Clone()
}

// AddCollageLayers bulk-imports the layers of an existing published
// collage. Every imported layer starts at the origin with default size, as
// a single history entry.
func (e *Editor) AddCollageLayers(items []CollageItem) Composition {
	e.mu.Lock()
	defer e.mu.Unlock()
	layers := make([]Layer, 0, len(items))
	for _, it := range items {
		l := it.Layer()
		l.X = DefaultX
		l.Y = DefaultY
		l.Width = DefaultWidth
		l.Height = DefaultHeight
		layers = append(layers, l)
	}
	next := e.history.Current().AppendAll(layers)
	e.history.Commit(next)
	return next.Clone()
}

// replace applies updater to the layer at index and commits the result.
func (e *Editor) replace(index int, updater func(Layer) Layer) (Composition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.history.Current()
	if !cur.InBounds(index) {
		return nil, ErrLayerNotFound
	}
	next := cur.ReplaceAt(index, updater)
	e.history.Commit(next)
	return next.Clone(), nil
}

// MoveLayer commits the final position of a drag gesture.
func (e *Editor) MoveLayer(index int, x, y float64) (Composition, error) {
	return e.replace(index, func(l Layer) Layer {
		return l.WithPosition(x, y)
	})
}

// ResizeLayer commits the final size of a resize gesture, clamped to the
// interactive bounds.
func (e *Editor) ResizeLayer(index int, width, height float64) (Composition, error) {
	return e.replace(index, func(l Layer) Layer {
		return l.WithSize(ClampSize(width), ClampSize(height))
	})
}

// FlipLayer toggles the horizontal mirror of the layer.
func (e *Editor) FlipLayer(index int) (Composition, error) {
	return e.replace(index, Layer.FlippedCopy)
}

// RotateLayer rotates the layer by another 90 degrees.
func (e *Editor) RotateLayer(index int) (Composition, error) {
	return e.replace(index, Layer.Rotated)
}

// SetOpacity commits a new opacity for the layer. Every call is its own
// history entry; slider-driven clients send one request per change event,
// so every intermediate value stays individually undoable.
func (e *Editor) SetOpacity(index int, value float64) (Composition, error) {
	return e.replace(index, func(l Layer) Layer {
		return l.WithOpacity(ClampOpacity(value))
	})
}

// RemoveLayer removes the layer at index and clears the selection, since
// all later indices shift and a stale selection would address a different
// layer.
func (e *Editor) RemoveLayer(index int) (Composition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.history.Current()
	if !cur.InBounds(index) {
		return nil, ErrLayerNotFound
	}
	next := cur.RemoveAt(index)
	e.history.Commit(next)
	e.selection = NoSelection
	return next.Clone(), nil
}

// Undo steps the session back one edit. Undoing past the initial state is
// a no-op.
func (e *Editor) Undo() (Composition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.history.Undo()
	return c.Clone(), ok
}

// Redo re-applies the most recently undone edit, if any.
func (e *Editor) Redo() (Composition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.history.Redo()
	return c.Clone(), ok
}

// RemoveBackground runs the asynchronous background-removal pipeline for
// the layer at index: fetch the image, transform it, store the result,
// then swap the layer's URL and commit. The mutex is released while the
// network calls run, so other edits proceed meanwhile. Before committing,
// the layer at the captured index must still hold the captured URL;
// otherwise the commit is aborted with ErrLayerChanged rather than
// overwriting whatever layer shifted into its place. An already uploaded
// result is acceptable garbage in that case, nothing is rolled back.
func (e *Editor) RemoveBackground(ctx context.Context, index int) (Composition, error) {
	if e.remover == nil {
		return nil, ErrNoRemover
	}
	e.mu.Lock()
	cur := e.history.Current()
	if !cur.InBounds(index) {
		e.mu.Unlock()
		return nil, ErrLayerNotFound
	}
	srcURL := cur[index].ImageURL
	if srcURL == "" {
		e.mu.Unlock()
		return nil, ErrNoImage
	}
	e.mu.Unlock()

	newURL, err := e.remover.RemoveFrom(ctx, srcURL)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	cur = e.history.Current()
	if !cur.InBounds(index) || cur[index].ImageURL != srcURL {
		return nil, ErrLayerChanged
	}
	next := cur.ReplaceAt(index, func(l Layer) Layer {
		return l.WithImageURL(newURL)
	})
	e.history.Commit(next)
	return next.Clone(), nil
}
