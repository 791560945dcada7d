// Package confirm provides a yes/no confirmation popup.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/test99500/musium/internal/ui"
	"github.com/test99500/musium/internal/ui/popup"
	"github.com/test99500/musium/internal/ui/styles"
)

// ResultMsg is emitted when the dialog is answered. Context is whatever was
// passed to Show, so the app can tell apart concurrent confirmations.
type ResultMsg struct {
	Confirmed bool
	Context   any
}

// Model is a yes/no confirmation popup.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

// New creates an inactive confirmation dialog.
func New() Model {
	return Model{}
}

// Show arms the dialog with a question.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Reset clears the dialog.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

// Active reports whether the dialog is shown.
func (m Model) Active() bool {
	return m.active
}

// Update answers the dialog: enter or y confirms, esc or n declines.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "enter", "y", "Y":
		m.active = false
		ctx := m.context
		return m, func() tea.Msg { return ResultMsg{Confirmed: true, Context: ctx} }

	case "esc", "n", "N":
		m.active = false
		ctx := m.context
		return m, func() tea.Msg { return ResultMsg{Confirmed: false, Context: ctx} }
	}
	return m, nil
}

// View renders the dialog centered in the terminal.
func (m Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	s := styles.T().S()
	content := s.Title.Render(m.title) + "\n\n" +
		s.Base.Render(m.message) + "\n\n" +
		s.Subtle.Render("enter/y confirm · esc/n cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(0, 2).
		Render(content)

	return popup.Center(box, m.Width(), m.Height())
}
