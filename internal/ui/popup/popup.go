// Package popup renders centered overlay boxes.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/test99500/musium/internal/ui/styles"
)

// Dialog is a simple centered popup with title, content, and footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Width   int // 0 = auto-fit content
}

// New creates a new dialog.
func New() *Dialog {
	return &Dialog{}
}

// Render returns the dialog as a string centered in the terminal.
func (p *Dialog) Render(termWidth, termHeight int) string {
	t := styles.T()

	contentWidth := p.Width
	if contentWidth == 0 {
		contentWidth = maxLineWidth(p.Content)
		if w := lipgloss.Width(p.Title); w > contentWidth {
			contentWidth = w
		}
		if w := lipgloss.Width(p.Footer); w > contentWidth {
			contentWidth = w
		}
		contentWidth += 2
	}
	if maxWidth := termWidth - 4; contentWidth > maxWidth {
		contentWidth = maxWidth
	}

	contentLineCount := strings.Count(p.Content, "\n") + 1
	lines := make([]string, 0, contentLineCount+4)

	if p.Title != "" {
		lines = append(lines, centerLine(t.S().Title.Render(p.Title), contentWidth), "")
	}

	for line := range strings.SplitSeq(p.Content, "\n") {
		if lipgloss.Width(line) > contentWidth {
			line = ansi.Truncate(line, contentWidth, "…")
		}
		lines = append(lines, padLine(line, contentWidth))
	}

	if p.Footer != "" {
		lines = append(lines, "", centerLine(t.S().Subtle.Render(p.Footer), contentWidth))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(contentWidth).
		Render(strings.Join(lines, "\n"))

	return Center(box, termWidth, termHeight)
}

// Center centers pre-rendered content in the terminal.
func Center(content string, termWidth, termHeight int) string {
	lines := strings.Split(content, "\n")
	boxHeight := len(lines)
	boxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}

	padTop := max((termHeight-boxHeight)/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var result strings.Builder
	for range padTop {
		result.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		if w := lipgloss.Width(line); w > maxW {
			maxW = w
		}
	}
	return maxW
}

func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}

func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
