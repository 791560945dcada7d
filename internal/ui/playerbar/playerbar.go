// Package playerbar renders the one-line now-playing bar at the bottom of
// the screen: state icon, track info, gradient progress, time and volume.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/test99500/musium/internal/icons"
	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/ui"
	"github.com/test99500/musium/internal/ui/render"
	"github.com/test99500/musium/internal/ui/styles"
)

// Height is the total height of the player bar including its border.
const Height = 3

const separator = "   "

// State is a snapshot of everything the bar displays.
type State struct {
	Playback playback.State
	Title    string
	Artist   string
	Position time.Duration
	Duration time.Duration
	QueuePos int // 1-based position in the queue, 0 when none
	QueueLen int
	Volume   float64
	Muted    bool
}

// NewState captures the current playback state from the service.
func NewState(svc playback.Service) State {
	s := State{
		Playback: svc.State(),
		QueueLen: svc.QueueLen(),
		Volume:   svc.Player().Volume(),
		Muted:    svc.Player().Muted(),
	}

	track := svc.CurrentTrack()
	if track == nil {
		return s
	}

	s.Title = track.Title
	s.Artist = track.Artist
	s.Position = svc.Position()
	s.Duration = svc.Duration()
	if idx := svc.QueueCurrentIndex(); idx >= 0 {
		s.QueuePos = idx + 1
	}
	return s
}

// Render draws the bar at the given terminal width.
func Render(s State, width int) string {
	innerWidth := max(width-ui.BorderHeight-2, 0)

	var content string
	if s.Playback.IsActive() && s.Title != "" {
		content = renderPlaying(s, innerWidth)
	} else {
		content = styles.T().S().Muted.Render(
			render.TruncateAndPad("Nothing playing", innerWidth))
	}

	return styles.PanelStyle(false).
		Padding(0, 1).
		Width(width - ui.BorderHeight).
		Render(content)
}

func renderPlaying(s State, innerWidth int) string {
	t := styles.T()

	status := t.S().Playing.Render(icons.Play())
	if s.Playback == playback.StatePaused {
		status = t.S().Muted.Render(icons.Pause())
	}

	timeStr := render.FormatDuration(s.Position) + " / " + render.FormatDuration(s.Duration)

	queueStr := ""
	if s.QueuePos > 0 {
		queueStr = fmt.Sprintf("%d/%d", s.QueuePos, s.QueueLen)
	}

	volumeStr := renderVolume(s.Volume, s.Muted)

	// Fixed-width pieces around the flexible track info and progress bar.
	sepWidth := lipgloss.Width(separator)
	fixed := lipgloss.Width(icons.Play()) + sepWidth + // status
		lipgloss.Width(timeStr) + sepWidth +
		lipgloss.Width(volumeStr) + sepWidth
	if queueStr != "" {
		fixed += lipgloss.Width(queueStr) + sepWidth
	}

	info := render.Sanitize(s.Artist + " — " + s.Title)
	infoWidth := lipgloss.Width(info)

	barWidth := innerWidth - fixed - infoWidth - sepWidth
	if barWidth < ui.MinProgressBarWidth {
		// Shrink the track info to keep a usable bar.
		maxInfo := max(innerWidth-fixed-ui.MinProgressBarWidth-sepWidth, 10)
		info = render.Truncate(info, maxInfo)
		infoWidth = lipgloss.Width(info)
		barWidth = max(innerWidth-fixed-infoWidth-sepWidth, ui.MinProgressBarWidth)
	}

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}

	var b strings.Builder
	b.WriteString(status)
	b.WriteString(separator)
	b.WriteString(t.S().Title.Render(info))
	b.WriteString(separator)
	if queueStr != "" {
		b.WriteString(t.S().Muted.Render(queueStr))
		b.WriteString(separator)
	}
	b.WriteString(renderProgress(ratio, barWidth))
	b.WriteString(separator)
	b.WriteString(t.S().Muted.Render(timeStr))
	b.WriteString(separator)
	b.WriteString(volumeStr)
	return b.String()
}

// renderProgress draws the filled portion as a gradient from the primary to
// the secondary accent color.
func renderProgress(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	t := styles.T()

	filled := min(int(float64(width)*ratio), width)
	filled = max(filled, 0)

	var b strings.Builder
	if filled > 0 {
		for _, c := range styles.Ramp(filled, t.Primary, t.Secondary) {
			b.WriteString(lipgloss.NewStyle().Foreground(c).Render("━"))
		}
	}
	if filled < width {
		b.WriteString(t.S().Subtle.Render(strings.Repeat("─", width-filled)))
	}
	return b.String()
}

func renderVolume(volume float64, muted bool) string {
	t := styles.T()
	if muted {
		return t.S().Muted.Render(fmt.Sprintf("%s %3d%%", icons.Muted(), int(volume*100)))
	}
	return t.S().Muted.Render(fmt.Sprintf("%s %3d%%", icons.Volume(), int(volume*100)))
}
