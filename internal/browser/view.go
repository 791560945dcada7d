package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/test99500/musium/internal/icons"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/ui/render"
	"github.com/test99500/musium/internal/ui/styles"
)

// View renders the panel: a bordered box with the location title and the
// current list.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	t := styles.T()
	innerW := m.width - 2
	height := m.listHeight()

	borderColor := t.Border
	if m.focused {
		borderColor = t.BorderFocus
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	title := render.TruncateAndPad(titleStyle.Render(m.loc.Title()), innerW)

	lines := make([]string, height)
	for i := range height {
		idx := i + m.cursor.Offset()
		if idx >= m.listLen() {
			lines[i] = render.EmptyLine(innerW)
			continue
		}
		lines[i] = m.renderItem(idx, innerW, idx == m.cursor.Pos())
	}

	content := title + "\n" + strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerW).
		Render(content)
}

func (m Model) renderItem(idx, width int, isCursor bool) string {
	s := styles.T().S()

	prefix := "  "
	if isCursor && m.focused {
		prefix = "> "
	}

	var line string
	switch m.loc.Kind {
	case nav.KindAlbums:
		a := m.albums[idx]
		text := icons.FormatAlbum(a.Title)
		year := albumYear(a.Date)
		if year != "" {
			text += " (" + year + ")"
		}
		line = render.Pad(prefix+render.Truncate(text, width-2), width)

	case nav.KindTracks:
		t := m.tracks[idx]
		left := prefix + fmt.Sprintf("%2d  ", t.TrackNumber) + icons.FormatTrack(t.Title)
		line = render.Row(left, render.FormatDuration(t.Duration), width)

	default:
		a := m.artists[idx]
		line = render.Pad(prefix+render.Truncate(icons.FormatArtist(a.Name), width-2), width)
	}

	if isCursor && m.focused {
		return s.Cursor.Render(line)
	}
	return s.Base.Render(line)
}

// albumYear is the first four characters of the release date; shorter dates
// render as-is.
func albumYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
