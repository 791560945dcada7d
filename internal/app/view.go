package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/ui/overlay"
	"github.com/test99500/musium/internal/ui/playerbar"
	"github.com/test99500/musium/internal/ui/render"
	"github.com/test99500/musium/internal/ui/styles"
)

const (
	headerHeight = 1
	statusHeight = 1
)

// View renders the full screen: header, main panel, player bar, status line,
// with any open popup composed on top.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var panel string
	if m.current.Kind == nav.KindQueue {
		panel = m.queue.View()
	} else {
		panel = m.browser.View()
	}

	base := m.renderHeader() + "\n" +
		panel + "\n" +
		playerbar.Render(playerbar.NewState(m.svc), m.width) + "\n" +
		m.renderStatus()

	switch {
	case m.searchOpen:
		return overlay.Compose(base, m.search.View(), m.width, m.height)
	case m.confirm.Active():
		return overlay.Compose(base, m.confirm.View(), m.width, m.height)
	case m.helpOpen:
		return overlay.Compose(base, m.help.View(), m.width, m.height)
	}
	return base
}

// renderHeader shows the app name on the left and either scan progress or
// library stats on the right.
func (m *Model) renderHeader() string {
	t := styles.T()
	s := t.S()

	left := " " + styles.Gradient("Musium", true, t.Primary, t.Secondary)

	var right string
	if m.scanning {
		right = s.Warning.Render(scanLabel(m.scanProgress)) + " "
	} else {
		right = s.Muted.Render(fmt.Sprintf(
			"%d artists · %d albums · %d tracks · %s ",
			m.stats.Artists, m.stats.Albums, m.stats.Tracks,
			humanize.Bytes(uint64(m.stats.TotalBytes)))) //nolint:gosec // sum of file sizes
	}

	return render.Row(left, right, m.width)
}

func scanLabel(p library.ScanProgress) string {
	switch p.Phase {
	case "processing":
		return fmt.Sprintf("Scanning %d/%d", p.Current, p.Total)
	case "cleaning":
		return "Removing stale tracks"
	case "indexing":
		return "Rebuilding search index"
	default:
		return "Scanning library"
	}
}

// renderStatus shows the transient status message or the key hint line.
func (m *Model) renderStatus() string {
	s := styles.T().S()
	if m.status != "" {
		return s.Warning.Render(render.Truncate(" "+m.status, m.width))
	}

	hints := []string{
		"/ search",
		"p queue",
		"[ ] history",
		"space play",
		"q quit",
	}
	return s.Subtle.Render(render.Truncate(" "+strings.Join(hints, " · "), m.width))
}
