package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/test99500/musium/internal/icons"
	"github.com/test99500/musium/internal/ui/popup"
	"github.com/test99500/musium/internal/ui/styles"
)

const maxVisibleResults = 20

func (m Model) popupWidth() int {
	w := m.width * 60 / 100
	if w < 40 {
		w = min(40, m.width-4)
	}
	return w
}

func (m Model) popupHeight() int {
	h := m.height * 50 / 100
	if h < 10 {
		h = min(10, m.height-2)
	}
	return h
}

func (m Model) innerWidth() int {
	return m.popupWidth() - 2
}

func (m Model) visibleHeight() int {
	// Border (2), input (1), separator (1), footer (1)
	h := max(m.popupHeight()-5, 1)
	return min(h, maxVisibleResults)
}

// View renders the popup centered in the terminal.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	s := styles.T().S()
	innerW := m.innerWidth()
	separator := s.Subtle.Render(strings.Repeat("─", innerW))

	visible := m.visibleHeight()
	var lines []string
	if len(m.rows) == 0 {
		lines = append(lines, s.Subtle.Render(m.emptyMessage()))
	} else {
		end := min(m.offset+visible, len(m.rows))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(m.rows[i], innerW, i == m.cursor))
		}
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}

	content := m.input.View() + "\n" + separator + "\n" +
		strings.Join(lines, "\n") + "\n" + m.renderFooter(innerW)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(innerW).
		Render(content)

	return popup.Center(box, m.width, m.height)
}

func (m Model) emptyMessage() string {
	switch {
	case m.pending:
		return "Searching..."
	case m.input.Value() != "":
		return "No matches"
	default:
		return "Type to search..."
	}
}

func (m Model) renderFooter(innerW int) string {
	s := styles.T().S()
	switch {
	case m.failed:
		return s.Error.Render(ansi.Truncate("search failed", innerW, "…"))
	case m.pending:
		return s.Subtle.Render(ansi.Truncate("Searching...", innerW, "…"))
	default:
		return s.Subtle.Render(ansi.Truncate("enter open · esc close", innerW, "…"))
	}
}

func (m Model) renderRow(r row, innerW int, isCursor bool) string {
	s := styles.T().S()
	if r.kind == rowHeading {
		return s.Heading.Render(r.heading)
	}

	prefix := "  "
	if isCursor {
		prefix = "> "
	}

	var line string
	switch r.kind {
	case rowArtist:
		line = prefix + icons.FormatArtist(r.artist.Name) +
			s.Muted.Render("  "+albumCount(len(r.artist.Albums)))
	case rowAlbum:
		line = prefix + icons.FormatAlbum(r.album.Title) +
			s.Muted.Render(" by "+r.album.Artist) + albumYearSuffix(r.album.Date)
	case rowTrack:
		line = prefix + icons.FormatTrack(r.track.Title) +
			s.Muted.Render(" by "+r.track.Artist) +
			s.Subtle.Render("  "+r.track.Album)
	}

	line = ansi.Truncate(line, innerW, "…")
	if isCursor {
		return s.Cursor.Render(ansi.Strip(line))
	}
	return line
}

func albumCount(n int) string {
	if n == 1 {
		return "1 album"
	}
	return fmt.Sprintf("%d albums", n)
}

// albumYear is the first four characters of the release date. Shorter dates
// render as-is.
func albumYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

func albumYearSuffix(date string) string {
	year := albumYear(date)
	if year == "" {
		return ""
	}
	return styles.T().S().Subtle.Render(" (" + year + ")")
}
