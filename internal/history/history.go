// Package history keeps bounded undo and redo stacks of whole-day snapshots.
// Snapshots are deep copies, so callers may keep mutating the day they passed
// in.
package history

import "worktimer/internal/model"

const maxDepth = 50

// History is an in-memory, per-session undo log. It is never persisted;
// restarting the program starts with empty stacks.
type History struct {
	undo []model.DayData
	redo []model.DayData
}

func New() *History {
	return &History{}
}

// Push records the day state as it was before a mutation. Any redo states
// are discarded, and the oldest undo state is evicted once the stack is
// full.
func (h *History) Push(day *model.DayData) {
	if len(h.undo) >= maxDepth {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, day.Clone())
	h.redo = h.redo[:0]
}

// Undo trades the current state for the most recent snapshot, saving current
// on the redo stack. Nil means there is nothing to undo.
func (h *History) Undo(current *model.DayData) *model.DayData {
	if len(h.undo) == 0 {
		return nil
	}
	h.redo = append(h.redo, current.Clone())
	restored := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return &restored
}

// Redo reverses the most recent Undo. Nil means there is nothing to redo.
func (h *History) Redo(current *model.DayData) *model.DayData {
	if len(h.redo) == 0 {
		return nil
	}
	h.undo = append(h.undo, current.Clone())
	restored := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return &restored
}

func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Clear drops both stacks, used when the viewed date changes or an external
// reload invalidates the snapshots.
func (h *History) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
