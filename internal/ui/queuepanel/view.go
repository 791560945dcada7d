package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/test99500/musium/internal/icons"
	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/ui"
	"github.com/test99500/musium/internal/ui/render"
	"github.com/test99500/musium/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := m.listHeight()

	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader shows position/total on the left and mode icons on the right.
func (m Model) renderHeader(innerWidth int) string {
	t := styles.T()

	position := 0
	if m.current >= 0 {
		position = m.current + 1
	}
	left := fmt.Sprintf("Queue (%d/%d)", position, len(m.tracks))

	modeIcons := m.modeIcons()
	right := ""
	rightWidth := 0
	if modeIcons != "" {
		rightWidth = lipgloss.Width(modeIcons) + 1
		right = t.S().Playing.Render(modeIcons) + " "
	}

	left = render.TruncateAndPad(left, innerWidth-rightWidth)
	return t.S().Title.Render(left) + right
}

func (m Model) modeIcons() string {
	var parts []string
	if m.shuffle {
		parts = append(parts, icons.Shuffle())
	}
	switch m.repeat {
	case playback.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case playback.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.cursor.Offset()
		if idx >= len(m.tracks) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine lays out a track as two columns: title left, artist right.
func (m Model) renderTrackLine(idx, width int) string {
	track := m.tracks[idx]

	prefix := "  "
	if idx == m.current {
		prefix = icons.Play() + " "
	}

	contentWidth := width - 2
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	line := prefix +
		render.TruncateAndPad(render.Sanitize(track.Title), titleWidth) +
		render.TruncateAndPad(render.Sanitize(track.Artist), artistWidth)

	return m.trackStyle(idx).Render(line)
}

func (m Model) trackStyle(idx int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor.Pos() && m.IsFocused()
	isPlaying := idx == m.current
	isPlayed := m.current >= 0 && idx < m.current

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	case isPlayed:
		return s.Muted
	default:
		return s.Base
	}
}
