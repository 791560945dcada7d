package playlist

import "testing"

func queueWith(titles ...string) *PlayingQueue {
	q := NewPlayingQueue()
	q.Add(makeTracks(titles...)...)
	return q
}

func TestPlayingQueue_Empty(t *testing.T) {
	q := NewPlayingQueue()

	if q.Current() != nil {
		t.Error("Current() on empty queue should be nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.HasNext() || q.HasPrevious() {
		t.Error("empty queue should have neither next nor previous")
	}
	if q.Next() != nil {
		t.Error("Next() on empty queue should be nil")
	}
	if q.Previous() != nil {
		t.Error("Previous() on empty queue should be nil")
	}
}

func TestPlayingQueue_NextPrevious(t *testing.T) {
	q := queueWith("a", "b", "c")

	// Position is unset until something plays.
	if got := q.Next(); got == nil || got.Title != "a" {
		t.Fatalf("first Next() = %v", got)
	}
	if got := q.Next(); got == nil || got.Title != "b" {
		t.Fatalf("second Next() = %v", got)
	}
	if got := q.Previous(); got == nil || got.Title != "a" {
		t.Fatalf("Previous() = %v", got)
	}
	if q.HasPrevious() {
		t.Error("HasPrevious at index 0 should be false")
	}

	q.JumpTo(2)
	if q.HasNext() {
		t.Error("HasNext at last index should be false")
	}
	if q.Next() != nil {
		t.Error("Next() past the end should be nil")
	}
	if got := q.Current(); got == nil || got.Title != "c" {
		t.Errorf("Current() after failed Next = %v", got)
	}
}

func TestPlayingQueue_JumpTo(t *testing.T) {
	q := queueWith("a", "b", "c")

	if got := q.JumpTo(1); got == nil || got.Title != "b" {
		t.Fatalf("JumpTo(1) = %v", got)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	if q.JumpTo(3) != nil {
		t.Error("JumpTo(3) should be nil")
	}
	if q.CurrentIndex() != 1 {
		t.Error("failed JumpTo should not move the position")
	}
}

func TestPlayingQueue_AddAndPlay(t *testing.T) {
	q := queueWith("a", "b")
	q.JumpTo(0)

	got := q.AddAndPlay(makeTracks("c", "d")...)
	if got == nil || got.Title != "c" {
		t.Fatalf("AddAndPlay() = %v", got)
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
	}
	if q.Len() != 4 {
		t.Errorf("Len() = %d, want 4", q.Len())
	}

	if q.AddAndPlay() != nil {
		t.Error("AddAndPlay with no tracks should be nil")
	}
}

func TestPlayingQueue_Replace(t *testing.T) {
	q := queueWith("a", "b")
	q.JumpTo(1)

	got := q.Replace(makeTracks("x", "y", "z"))
	if got == nil || got.Title != "x" {
		t.Fatalf("Replace() = %v", got)
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}

	if q.Replace(nil) != nil {
		t.Error("Replace(nil) should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() after empty Replace = %d, want -1", q.CurrentIndex())
	}
}

func TestPlayingQueue_RemoveAt(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		remove    int
		wantIndex int
		wantTitle string
	}{
		{"before current", 2, 0, 1, "c"},
		{"after current", 0, 2, 0, "a"},
		{"current, successor takes over", 1, 1, 1, "c"},
		{"current at end", 2, 2, 1, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queueWith("a", "b", "c")
			q.JumpTo(tt.current)

			if !q.RemoveAt(tt.remove) {
				t.Fatalf("RemoveAt(%d) returned false", tt.remove)
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
			if got := q.Current(); got == nil || got.Title != tt.wantTitle {
				t.Errorf("Current() = %v, want title %q", got, tt.wantTitle)
			}
		})
	}

	q := queueWith("a")
	if q.RemoveAt(1) {
		t.Error("RemoveAt out of bounds should return false")
	}
}

func TestPlayingQueue_RemoveLastTrack(t *testing.T) {
	q := queueWith("a")
	q.JumpTo(0)

	if !q.RemoveAt(0) {
		t.Fatal("RemoveAt(0) returned false")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil after removing the only track")
	}
}

func TestPlayingQueue_Move(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		from      int
		to        int
		wantIndex int
	}{
		{"move current", 0, 0, 2, 2},
		{"across current forward", 2, 0, 2, 1},
		{"across current backward", 0, 2, 0, 1},
		{"unrelated", 0, 1, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := queueWith("a", "b", "c")
			q.JumpTo(tt.current)
			playing := q.Current().Title

			if !q.Move(tt.from, tt.to) {
				t.Fatalf("Move(%d, %d) returned false", tt.from, tt.to)
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
			if got := q.Current(); got == nil || got.Title != playing {
				t.Errorf("playing track changed: got %v, want title %q", got, playing)
			}
		})
	}
}

func TestPlayingQueue_SetIndex(t *testing.T) {
	q := queueWith("a", "b")

	q.SetIndex(1)
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", q.CurrentIndex())
	}
	q.SetIndex(5)
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() after out of bounds SetIndex = %d, want -1", q.CurrentIndex())
	}
}

func TestPlayingQueue_IDs(t *testing.T) {
	q := queueWith("a", "b", "c")

	ids := q.IDs()
	want := []int64{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("IDs() len = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
