// Package helpbindings renders a scrollable popup listing the key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/test99500/musium/internal/keymap"
	"github.com/test99500/musium/internal/ui"
	"github.com/test99500/musium/internal/ui/popup"
	"github.com/test99500/musium/internal/ui/styles"
)

// CloseMsg is emitted when the popup is dismissed.
type CloseMsg struct{}

// Contexts in display order.
var categoryOrder = []string{"global", "library", "playback", "queue"}

var categoryLabels = map[string]string{
	"global":   "Global",
	"library":  "Library",
	"playback": "Playback",
	"queue":    "Queue",
}

// Model holds the help popup state.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help popup over the full default key map.
func New() Model {
	m := Model{}
	for _, ctx := range categoryOrder {
		m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
	}
	return m
}

// Update scrolls the popup or closes it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View renders the popup centered in the terminal.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	s := styles.T().S()
	lines := m.contentLines()

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	visible := m.visibleHeight()
	start := min(m.scrollOffset, len(lines))
	end := min(start+visible, len(lines))
	visibleLines := lines[start:end]

	for i, line := range visibleLines {
		if w := lipgloss.Width(line); w < maxWidth {
			visibleLines[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	content := s.Title.Render("Help") + "\n\n" +
		strings.Join(visibleLines, "\n") + "\n\n" +
		s.Subtle.Render(m.footer(len(lines)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(0, 2).
		Render(content)

	return popup.Center(box, m.Width(), m.Height())
}

// contentLines builds one line per binding with category headings.
func (m Model) contentLines() []string {
	s := styles.T().S()

	maxKeyWidth := 0
	for _, b := range m.bindings {
		if w := len(keyLabel(b.Keys)); w > maxKeyWidth {
			maxKeyWidth = w
		}
	}

	var lines []string
	currentContext := ""
	for _, b := range m.bindings {
		if b.Context != currentContext {
			if currentContext != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines, s.Heading.Render(label))
			currentContext = b.Context
		}

		key := keyLabel(b.Keys)
		padded := key + strings.Repeat(" ", maxKeyWidth-len(key))
		lines = append(lines, s.Playing.Render(padded)+"  "+s.Base.Render(b.Description))
	}
	return lines
}

// keyLabel joins an action's keys, showing space readably.
func keyLabel(keys []string) string {
	shown := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			continue // "space" alias covers it
		}
		shown = append(shown, k)
	}
	return strings.Join(shown, ", ")
}

func (m Model) footer(total int) string {
	if total <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// Popup chrome: border, title, footer and their spacing.
	return max(m.Height()-8, 5)
}

func (m Model) maxScroll() int {
	total := len(m.contentLines())
	if total <= m.visibleHeight() {
		return 0
	}
	return total - m.visibleHeight()
}
