package collage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemover lets tests control the outcome of the background-removal
// round trip and interleave other edits while it is "in flight".
type fakeRemover struct {
	mu      sync.Mutex
	result  string
	err     error
	called  int
	during  func()
	gotURLs []string
}

func (f *fakeRemover) RemoveFrom(_ context.Context, imageURL string) (string, error) {
	f.mu.Lock()
	f.called++
	f.gotURLs = append(f.gotURLs, imageURL)
	during := f.during
	f.mu.Unlock()
	if during != nil {
		during()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func TestEditorAddLayer(t *testing.T) {
	e := NewEditor(nil, nil)

	got := e.AddLayer("a.png")

	require.Len(t, got, 1)
	assert.Equal(t, NewLayer("a.png"), got[0])
	assert.Equal(t, 2, e.HistoryLen())
}

func TestEditorMoveUndoRedo(t *testing.T) {
	e := NewEditor(nil, nil)
	e.AddLayer("a.png")

	got, err := e.MoveLayer(0, 50, 75)
	require.NoError(t, err)
	assert.Equal(t, float64(50), got[0].X)
	assert.Equal(t, float64(75), got[0].Y)
	assert.Equal(t, 3, e.HistoryLen())

	undone, ok := e.Undo()
	assert.True(t, ok)
	assert.Equal(t, float64(0), undone[0].X)
	assert.Equal(t, float64(0), undone[0].Y)
	assert.Equal(t, 2, e.HistoryLen())

	redone, ok := e.Redo()
	assert.True(t, ok)
	assert.Equal(t, float64(50), redone[0].X)
	assert.Equal(t, float64(75), redone[0].Y)
	assert.Equal(t, 3, e.HistoryLen())
}

func TestEditorRemoveLayerClearsSelection(t *testing.T) {
	e := NewEditor(comp("a.png", "b.png", "c.png"), nil)
	require.NoError(t, e.Select(1))

	got, err := e.RemoveLayer(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "c.png"}, urls(got))
	assert.Equal(t, NoSelection, e.Selection())
	assert.Equal(t, 2, e.HistoryLen())
}

func TestEditorIndexValidation(t *testing.T) {
	e := NewEditor(comp("a.png"), nil)

	_, err := e.MoveLayer(3, 0, 0)
	assert.ErrorIs(t, err, ErrLayerNotFound)
	_, err = e.RemoveLayer(-1)
	assert.ErrorIs(t, err, ErrLayerNotFound)
	assert.ErrorIs(t, e.Select(5), ErrLayerNotFound)
	_, err = e.ResizeLayer(1, 60, 60)
	assert.ErrorIs(t, err, ErrLayerNotFound)
	_, err = e.FlipLayer(1)
	assert.ErrorIs(t, err, ErrLayerNotFound)
	_, err = e.RotateLayer(1)
	assert.ErrorIs(t, err, ErrLayerNotFound)
	_, err = e.SetOpacity(1, 0.5)
	assert.ErrorIs(t, err, ErrLayerNotFound)
	// failed operations must not grow the history
	assert.Equal(t, 1, e.HistoryLen())
}

func TestEditorLayerEditsCommitIndividually(t *testing.T) {
	e := NewEditor(comp("a.png"), nil)

	_, err := e.MoveLayer(0, 10, 20)
	require.NoError(t, err)
	got, err := e.FlipLayer(0)
	require.NoError(t, err)
	assert.True(t, got[0].Flipped)
	got, err = e.RotateLayer(0)
	require.NoError(t, err)
	assert.Equal(t, float64(90), got[0].Rotation)
	assert.Equal(t, 4, e.HistoryLen())

	// a fresh edit after undo discards the redo branch
	_, ok := e.Undo()
	require.True(t, ok)
	assert.True(t, e.CanRedo())
	_, err = e.SetOpacity(0, 0.4)
	require.NoError(t, err)
	assert.False(t, e.CanRedo())
}

func TestEditorResizeClamps(t *testing.T) {
	e := NewEditor(comp("a.png"), nil)

	got, err := e.ResizeLayer(0, 10, 900)
	require.NoError(t, err)
	assert.Equal(t, float64(50), got[0].Width)
	assert.Equal(t, float64(300), got[0].Height)
}

func TestEditorOpacityUndoable(t *testing.T) {
	e := NewEditor(comp("a.png"), nil)

	got, err := e.SetOpacity(0, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 0.3, got[0].Opacity)

	undone, ok := e.Undo()
	assert.True(t, ok)
	assert.Equal(t, float64(1), undone[0].Opacity)
}

func TestEditorAddCollageLayersResetsPlacement(t *testing.T) {
	e := NewEditor(comp("a.png"), nil)
	items := []CollageItem{
		{ImageURL: "x.png", Layout: &Layout{X: ptrFloat(400), Width: ptrFloat(250)}, Flipped: ptrBool(true)},
		{ImageURL: "y.png"},
	}

	got := e.AddCollageLayers(items)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a.png", "x.png", "y.png"}, urls(got))
	// imported layers start at the origin with default size, appearance
	// attributes survive the import
	assert.Equal(t, float64(0), got[1].X)
	assert.Equal(t, float64(100), got[1].Width)
	assert.True(t, got[1].Flipped)
	// one history entry for the whole bulk import
	assert.Equal(t, 2, e.HistoryLen())
}

func TestEditorRemoveBackgroundSwapsURL(t *testing.T) {
	remover := &fakeRemover{result: "https://cdn.example/processed/1.png"}
	e := NewEditor(comp("a.png", "b.png"), remover)

	got, err := e.RemoveBackground(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/processed/1.png", got[1].ImageURL)
	assert.Equal(t, "a.png", got[0].ImageURL)
	assert.Equal(t, []string{"b.png"}, remover.gotURLs)
	assert.Equal(t, 2, e.HistoryLen())
}

func TestEditorRemoveBackgroundFailureLeavesStateUntouched(t *testing.T) {
	remover := &fakeRemover{err: errors.New("service unavailable")}
	e := NewEditor(comp("a.png"), remover)

	_, err := e.RemoveBackground(context.Background(), 0)

	assert.Error(t, err)
	assert.Equal(t, 1, e.HistoryLen())
	assert.Equal(t, "a.png", e.Current()[0].ImageURL)
}

// If the composition shifts while the removal is in flight, the commit is
// aborted instead of overwriting whatever layer moved into the captured
// index.
func TestEditorRemoveBackgroundAbortsOnShift(t *testing.T) {
	remover := &fakeRemover{result: "processed.png"}
	e := NewEditor(comp("a.png", "b.png"), remover)
	remover.during = func() {
		_, err := e.RemoveLayer(0) // b.png shifts into index 0... and index 1 is gone
		require.NoError(t, err)
	}

	_, err := e.RemoveBackground(context.Background(), 1)

	assert.ErrorIs(t, err, ErrLayerChanged)
	cur := e.Current()
	require.Len(t, cur, 1)
	assert.Equal(t, "b.png", cur[0].ImageURL)
}

func TestEditorRemoveBackgroundEmptyURL(t *testing.T) {
	e := NewEditor(Composition{{ImageURL: ""}}, &fakeRemover{})

	_, err := e.RemoveBackground(context.Background(), 0)

	assert.ErrorIs(t, err, ErrNoImage)
}

// Scenario: add, move, undo, redo against the documented history lengths.
func TestEditorScenarioHistoryLengths(t *testing.T) {
	e := NewEditor(Composition{}, nil)

	e.AddLayer("a.png")
	assert.Equal(t, 2, e.HistoryLen())

	_, err := e.MoveLayer(0, 50, 75)
	require.NoError(t, err)
	assert.Equal(t, 3, e.HistoryLen())

	_, ok := e.Undo()
	assert.True(t, ok)
	assert.Equal(t, 2, e.HistoryLen())
	assert.True(t, e.CanRedo())

	_, ok = e.Redo()
	assert.True(t, ok)
	assert.Equal(t, 3, e.HistoryLen())
	assert.False(t, e.CanRedo())
}
