package playlist

import "testing"

func makeTracks(titles ...string) []Track {
	tracks := make([]Track, len(titles))
	for i, title := range titles {
		tracks[i] = Track{ID: int64(i + 1), Title: title}
	}
	return tracks
}

func assertTitles(t *testing.T, tracks []Track, want ...string) {
	t.Helper()
	if len(tracks) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(tracks), len(want))
	}
	for i, title := range want {
		if tracks[i].Title != title {
			t.Errorf("track %d: got %q, want %q", i, tracks[i].Title, title)
		}
	}
}

func TestPlaylist_AddRemove(t *testing.T) {
	p := NewPlaylist()
	p.Add(makeTracks("a", "b", "c")...)

	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	if !p.Remove(1) {
		t.Fatal("Remove(1) returned false")
	}
	assertTitles(t, p.Tracks(), "a", "c")

	if p.Remove(5) {
		t.Error("Remove(5) should return false")
	}
	if p.Remove(-1) {
		t.Error("Remove(-1) should return false")
	}
}

func TestPlaylist_TracksReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(makeTracks("a", "b")...)

	tracks := p.Tracks()
	tracks[0].Title = "mutated"

	if p.Track(0).Title != "a" {
		t.Error("mutating the returned slice changed the playlist")
	}
}

func TestPlaylist_Track(t *testing.T) {
	p := NewPlaylist()
	p.Add(makeTracks("a")...)

	if got := p.Track(0); got == nil || got.Title != "a" {
		t.Errorf("Track(0) = %v", got)
	}
	if p.Track(1) != nil {
		t.Error("Track(1) should be nil")
	}
	if p.Track(-1) != nil {
		t.Error("Track(-1) should be nil")
	}
}

func TestPlaylist_Move(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want []string
		ok   bool
	}{
		{"forward", 0, 2, []string{"b", "c", "a"}, true},
		{"backward", 2, 0, []string{"c", "a", "b"}, true},
		{"same", 1, 1, []string{"a", "b", "c"}, true},
		{"from out of bounds", 3, 0, []string{"a", "b", "c"}, false},
		{"to out of bounds", 0, 3, []string{"a", "b", "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlaylist()
			p.Add(makeTracks("a", "b", "c")...)

			if got := p.Move(tt.from, tt.to); got != tt.ok {
				t.Fatalf("Move(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.ok)
			}
			assertTitles(t, p.Tracks(), tt.want...)
		})
	}
}

func TestPlaylist_Clear(t *testing.T) {
	p := NewPlaylist()
	p.Add(makeTracks("a", "b")...)
	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Len() after Clear = %d", p.Len())
	}
}

func TestQueueHistory_UndoRedo(t *testing.T) {
	h := NewQueueHistory()

	if h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh history should allow neither undo nor redo")
	}
	if h.Undo() != nil {
		t.Error("Undo on empty history should return nil")
	}

	h.Push(makeTracks("a"))
	h.Push(makeTracks("a", "b"))
	h.Push(makeTracks("a", "b", "c"))

	state := h.Undo()
	assertTitles(t, state, "a", "b")

	state = h.Undo()
	assertTitles(t, state, "a")

	if h.CanUndo() {
		t.Error("CanUndo should be false at the oldest state")
	}

	state = h.Redo()
	assertTitles(t, state, "a", "b")

	// Pushing discards the redo branch.
	h.Push(makeTracks("x"))
	if h.CanRedo() {
		t.Error("CanRedo should be false after Push")
	}
	state = h.Undo()
	assertTitles(t, state, "a", "b")
}

func TestQueueHistory_DeepCopies(t *testing.T) {
	h := NewQueueHistory()
	tracks := makeTracks("a")
	h.Push(tracks)
	h.Push(makeTracks("a", "b"))

	tracks[0].Title = "mutated"

	state := h.Undo()
	if state[0].Title != "a" {
		t.Error("history state shares memory with the pushed slice")
	}
}

func TestQueueHistory_MaxSize(t *testing.T) {
	h := NewQueueHistory()
	for i := 0; i < maxHistorySize+10; i++ {
		h.Push(makeTracks("a"))
	}
	if len(h.states) != maxHistorySize {
		t.Errorf("history kept %d states, want %d", len(h.states), maxHistorySize)
	}
}
