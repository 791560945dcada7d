package cursor

import "testing"

func TestMoveClampsToList(t *testing.T) {
	c := New(2)

	c.Move(-3, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("Pos() = %d after moving above the top, want 0", c.Pos())
	}

	c.Move(100, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("Pos() = %d after moving past the end, want 9", c.Pos())
	}
}

func TestMoveOnEmptyListIsNoOp(t *testing.T) {
	c := New(2)
	c.Move(1, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("cursor moved on empty list: pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestScrollKeepsMargin(t *testing.T) {
	c := New(2)

	// Walk down until the viewport has to scroll.
	for range 5 {
		c.Move(1, 20, 6)
	}
	if c.Pos() != 5 {
		t.Fatalf("Pos() = %d, want 5", c.Pos())
	}
	if got, want := c.Offset(), 2; got != want {
		t.Errorf("Offset() = %d, want %d", got, want)
	}

	// Walking back up scrolls once the selection nears the top edge.
	for range 3 {
		c.Move(-1, 20, 6)
	}
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}
	if got, want := c.Offset(), 0; got != want {
		t.Errorf("Offset() = %d, want %d", got, want)
	}
}

func TestJumpScrollsIntoView(t *testing.T) {
	c := New(2)

	c.Jump(15, 20, 6)
	if c.Pos() != 15 {
		t.Fatalf("Pos() = %d, want 15", c.Pos())
	}
	if c.Offset() > 15 || c.Offset()+6 <= 15 {
		t.Errorf("selection not visible: offset=%d height=6 pos=15", c.Offset())
	}

	// Offset never exceeds listLen-height, even at the end of the list.
	c.Jump(19, 20, 6)
	if got, want := c.Offset(), 14; got != want {
		t.Errorf("Offset() = %d, want %d", got, want)
	}
}

func TestClampToBounds(t *testing.T) {
	c := New(2)
	c.Jump(9, 10, 5)

	if !c.ClampToBounds(4) {
		t.Error("expected clamp to report a change after the list shrank")
	}
	if c.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", c.Pos())
	}

	if c.ClampToBounds(10) {
		t.Error("clamp reported a change when the position was already valid")
	}

	if !c.ClampToBounds(0) {
		t.Error("expected clamp to reset on an emptied list")
	}
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("cursor not reset: pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		wantPos int
	}{
		{"down", []string{"j", "j", "down"}, 3},
		{"up clamps at top", []string{"k"}, 0},
		{"end", []string{"G"}, 19},
		{"home after end", []string{"G", "g"}, 0},
		{"half page down", []string{"ctrl+d"}, 3},
		{"half page up from end", []string{"G", "ctrl+u"}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2)
			for _, k := range tt.keys {
				if !c.HandleKey(k, 20, 6) {
					t.Fatalf("HandleKey(%q) = false, want true", k)
				}
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}

	c := New(2)
	if c.HandleKey("x", 20, 6) {
		t.Error("HandleKey(\"x\") = true, want false for an unhandled key")
	}
}

func TestResetAfterScroll(t *testing.T) {
	c := New(2)
	c.Jump(15, 20, 6)
	c.Reset()
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Reset left pos=%d offset=%d", c.Pos(), c.Offset())
	}
}
