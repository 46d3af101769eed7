package engine

import "github.com/jinzhu/copier"

const DefaultHistoryLimit = 50

// History keeps full scene snapshots for undo/redo. Both stacks are bounded;
// the oldest entry is dropped once the limit is reached.
type History struct {
	past   [][]Part
	future [][]Part
	limit  int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records parts as the state to return to and clears the redo stack.
func (h *History) Push(parts []Part) {
	h.past = h.capped(append(h.past, snapshot(parts)))
	h.future = nil
}

// Undo swaps current for the most recent past snapshot.
func (h *History) Undo(current []Part) ([]Part, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = h.capped(append(h.future, snapshot(current)))
	return snapshot(prev), true
}

// Redo mirrors Undo.
func (h *History) Redo(current []Part) ([]Part, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = h.capped(append(h.past, snapshot(current)))
	return snapshot(next), true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (past, future int) {
	return len(h.past), len(h.future)
}

func (h *History) Reset() {
	h.past = nil
	h.future = nil
}

// SetLimit changes the bound, trimming the oldest entries if needed.
func (h *History) SetLimit(limit int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h.limit = limit
	h.past = h.capped(h.past)
	h.future = h.capped(h.future)
}

func (h *History) capped(stack [][]Part) [][]Part {
	if over := len(stack) - h.limit; over > 0 {
		stack = append([][]Part(nil), stack[over:]...)
	}
	return stack
}

// snapshot deep-copies parts so later edits cannot reach into history.
func snapshot(parts []Part) []Part {
	out := make([]Part, 0, len(parts))
	if err := copier.CopyWithOption(&out, &parts, copier.Option{DeepCopy: true}); err != nil || len(out) != len(parts) {
		out = out[:0]
		for _, p := range parts {
			out = append(out, p.Clone())
		}
	}
	return out
}
