package playlist

const maxHistorySize = 50

// QueueHistory keeps snapshots of queue states for undo/redo.
type QueueHistory struct {
	states  [][]Track
	current int
}

func NewQueueHistory() *QueueHistory {
	return &QueueHistory{
		states:  make([][]Track, 0),
		current: -1,
	}
}

// Push records a new state, discarding any redo states beyond the current
// position.
func (h *QueueHistory) Push(tracks []Track) {
	state := make([]Track, len(tracks))
	copy(state, tracks)

	h.states = h.states[:h.current+1]
	h.states = append(h.states, state)
	h.current++

	if len(h.states) > maxHistorySize {
		h.states = h.states[1:]
		h.current--
	}
}

// Undo steps back and returns the previous state, or nil if there is none.
func (h *QueueHistory) Undo() []Track {
	if !h.CanUndo() {
		return nil
	}
	h.current--
	state := make([]Track, len(h.states[h.current]))
	copy(state, h.states[h.current])
	return state
}

// Redo steps forward and returns the next state, or nil if there is none.
func (h *QueueHistory) Redo() []Track {
	if !h.CanRedo() {
		return nil
	}
	h.current++
	state := make([]Track, len(h.states[h.current]))
	copy(state, h.states[h.current])
	return state
}

func (h *QueueHistory) CanUndo() bool {
	return h.current > 0
}

func (h *QueueHistory) CanRedo() bool {
	return h.current+1 < len(h.states)
}
