package collage

// History is the linear undo/redo engine over composition snapshots.
// history[0] is always the initially loaded state and the last entry is
// always the currently displayed state. The redo stack only holds entries
// popped off by Undo and is wiped entirely by the next Commit.
type History struct {
	history []Composition
	redo    []Composition
}

// NewHistory starts a history with the given initial state as its floor.
func NewHistory(initial Composition) *History {
	return &History{
		history: []Composition{initial.Clone()},
		redo:    nil,
	}
}

// Current returns the currently displayed state.
func (h *History) Current() Composition {
	return h.history[len(h.history)-1]
}

// Commit records next as the new current state and clears the redo branch.
// This is the only way forward progress is recorded.
func (h *History) Commit(next Composition) {
	h.history = append(h.history, next)
	h.redo = nil
}

// Undo steps back one snapshot and returns the new current state. Undoing
// with only the initial state present is a safe no-op (ok is false).
func (h *History) Undo() (Composition, bool) {
	if len(h.history) <= 1 {
		return h.Current(), false
	}
	last := h.history[len(h.history)-1]
	h.history = h.history[:len(h.history)-1]
	h.redo = append(h.redo, last)
	return h.Current(), true
}

// Redo re-applies the most recently undone snapshot. With an empty redo
// stack it is a no-op (ok is false).
func (h *History) Redo() (Composition, bool) {
	if len(h.redo) == 0 {
		return h.Current(), false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.history = append(h.history, next)
	return next, true
}

// CanUndo reports whether a step back is possible.
func (h *History) CanUndo() bool {
	return len(h.history) > 1
}

// CanRedo reports whether an undone step can be re-applied.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Len returns the number of recorded snapshots including the initial one.
func (h *History) Len() int {
	return len(h.history)
}

// RedoLen returns the number of snapshots available for redo.
func (h *History) RedoLen() int {
	return len(h.redo)
}
