package queuepanel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/playback"
)

func testTracks() []playback.Track {
	return []playback.Track{
		{ID: 1, Title: "So What", Artist: "Miles Davis"},
		{ID: 2, Title: "Freddie Freeloader", Artist: "Miles Davis"},
		{ID: 3, Title: "Blue in Green", Artist: "Miles Davis"},
	}
}

func newTestPanel() Model {
	m := New()
	m.SetSize(60, 12)
	m.SetFocused(true)
	m.SetQueue(testTracks(), 0)
	return m
}

func TestJumpToTrack(t *testing.T) {
	m := newTestPanel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a jump command")
	}
	jump, ok := cmd().(JumpToTrackMsg)
	if !ok {
		t.Fatalf("expected JumpToTrackMsg, got %T", cmd())
	}
	if jump.Index != 1 {
		t.Errorf("jump index = %d, want 1", jump.Index)
	}
}

func TestRemoveTrack(t *testing.T) {
	m := newTestPanel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("expected a remove command")
	}
	remove, ok := cmd().(RemoveTrackMsg)
	if !ok {
		t.Fatalf("expected RemoveTrackMsg, got %T", cmd())
	}
	if remove.Index != 0 {
		t.Errorf("remove index = %d, want 0", remove.Index)
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := newTestPanel()
	m.SetFocused(false)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("unfocused panel must not emit commands")
	}
}

func TestEmptyQueue(t *testing.T) {
	m := New()
	m.SetSize(60, 12)
	m.SetFocused(true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on an empty queue must emit nothing")
	}

	view := m.View()
	if !strings.Contains(view, "Queue (0/0)") {
		t.Errorf("expected empty queue header, got:\n%s", view)
	}
}

func TestSetQueueClampsCursor(t *testing.T) {
	m := newTestPanel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	// Queue shrinks below the cursor position
	m.SetQueue(testTracks()[:1], 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	jump := cmd().(JumpToTrackMsg)
	if jump.Index != 0 {
		t.Errorf("cursor not clamped, jump index = %d", jump.Index)
	}
}

func TestViewShowsCurrentPosition(t *testing.T) {
	m := newTestPanel()
	m.SetQueue(testTracks(), 1)

	view := m.View()
	if !strings.Contains(view, "Queue (2/3)") {
		t.Errorf("expected position header, got:\n%s", view)
	}
	if !strings.Contains(view, "Freddie Freeloader") {
		t.Error("expected track titles in view")
	}
}
