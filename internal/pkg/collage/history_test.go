package collage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryStartsAtFloor(t *testing.T) {
	h := NewHistory(comp("a.png"))

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.RedoLen())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, []string{"a.png"}, urls(h.Current()))
}

func TestHistoryUndoFloorIsNoop(t *testing.T) {
	h := NewHistory(comp("a.png"))

	cur, ok := h.Undo()
	assert.False(t, ok)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, []string{"a.png"}, urls(cur))
}

func TestHistoryRedoCeilingIsNoop(t *testing.T) {
	h := NewHistory(comp("a.png"))
	h.Commit(comp("a.png", "b.png"))

	cur, ok := h.Redo()
	assert.False(t, ok)
	assert.Equal(t, []string{"a.png", "b.png"}, urls(cur))
}

func TestHistoryUndoRedoInverse(t *testing.T) {
	initial := comp()
	h := NewHistory(initial)

	states := []Composition{
		comp("a.png"),
		comp("a.png", "b.png"),
		comp("a.png", "b.png", "c.png"),
	}
	for _, s := range states {
		h.Commit(s)
	}
	assert.Equal(t, 4, h.Len())

	// n undos return to the initial state
	for range states {
		h.Undo()
	}
	assert.Equal(t, 1, h.Len())
	assert.Len(t, h.Current(), 0)
	assert.Equal(t, 3, h.RedoLen())

	// n redos return to the state after the last commit
	for range states {
		h.Redo()
	}
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, urls(h.Current()))
	assert.Equal(t, 0, h.RedoLen())
}

func TestHistoryCommitClearsRedo(t *testing.T) {
	h := NewHistory(comp("a.png"))
	h.Commit(comp("a.png", "b.png"))
	h.Commit(comp("a.png", "b.png", "c.png"))

	h.Undo()
	h.Undo()
	assert.Equal(t, 2, h.RedoLen())

	h.Commit(comp("a.png", "x.png"))
	assert.Equal(t, 0, h.RedoLen())
	assert.False(t, h.CanRedo())

	// redo stays empty until the next undo
	_, ok := h.Redo()
	assert.False(t, ok)
	h.Undo()
	assert.Equal(t, 1, h.RedoLen())
}

// Snapshots taken before an edit must not change when later edits build on
// top of them.
func TestHistorySnapshotsAreIsolated(t *testing.T) {
	base := comp("a.png")
	h := NewHistory(base)

	next := h.Current().ReplaceAt(0, func(l Layer) Layer { return l.WithPosition(50, 75) })
	h.Commit(next)

	prev, ok := h.Undo()
	assert.True(t, ok)
	assert.Equal(t, float64(0), prev[0].X)
	assert.Equal(t, float64(0), prev[0].Y)

	cur, ok := h.Redo()
	assert.True(t, ok)
	assert.Equal(t, float64(50), cur[0].X)
	assert.Equal(t, float64(75), cur[0].Y)
}
