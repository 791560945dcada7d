package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func shown() Model {
	m := New()
	m.SetSize(80, 24)
	m.Show("Full rescan", "Re-read tags for every file?", "rescan")
	return m
}

func TestConfirm(t *testing.T) {
	m := shown()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a result command")
	}
	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", cmd())
	}
	if !res.Confirmed {
		t.Error("enter should confirm")
	}
	if res.Context != "rescan" {
		t.Errorf("context = %v, want rescan", res.Context)
	}
	if m.Active() {
		t.Error("dialog should close after answering")
	}
}

func TestDecline(t *testing.T) {
	for _, key := range []string{"esc", "n"} {
		m := shown()
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		m, cmd := m.Update(msg)
		res := cmd().(ResultMsg)
		if res.Confirmed {
			t.Errorf("%s should decline", key)
		}
		if m.Active() {
			t.Errorf("dialog still active after %s", key)
		}
	}
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New()
	m.SetSize(80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("inactive dialog must not emit results")
	}
	if m.View() != "" {
		t.Error("inactive dialog must render nothing")
	}
}

func TestViewShowsQuestion(t *testing.T) {
	m := shown()
	view := m.View()
	if !strings.Contains(view, "Full rescan") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "Re-read tags for every file?") {
		t.Error("expected message in view")
	}
}
