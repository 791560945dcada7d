// Package queuepanel renders the playing queue: track list with cursor,
// jump-to and remove, and the active repeat/shuffle modes in the header.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/ui"
	"github.com/test99500/musium/internal/ui/cursor"
)

// JumpToTrackMsg is emitted when the user selects a track to play.
type JumpToTrackMsg struct {
	Index int
}

// RemoveTrackMsg is emitted when the user removes a track from the queue.
type RemoveTrackMsg struct {
	Index int
}

// Model is the queue panel state. It holds a snapshot of the queue fed by
// the app from playback QueueChange and ModeChange events.
type Model struct {
	ui.Base

	tracks  []playback.Track
	current int // playing index, -1 when none

	repeat  playback.RepeatMode
	shuffle bool

	cursor cursor.Cursor
}

// New creates an empty queue panel.
func New() Model {
	return Model{
		current: -1,
		cursor:  cursor.New(ui.ScrollMargin),
	}
}

// SetQueue replaces the displayed tracks and playing index.
func (m *Model) SetQueue(tracks []playback.Track, current int) {
	m.tracks = tracks
	m.current = current
	m.cursor.ClampToBounds(len(tracks))
	m.cursor.EnsureVisible(len(tracks), m.listHeight())
}

// SetModes updates the repeat and shuffle indicators.
func (m *Model) SetModes(repeat playback.RepeatMode, shuffle bool) {
	m.repeat = repeat
	m.shuffle = shuffle
}

// CursorToCurrent places the cursor on the playing track.
func (m *Model) CursorToCurrent() {
	if m.current >= 0 {
		m.cursor.Jump(m.current, len(m.tracks), m.listHeight())
	}
}

// Update handles key navigation within the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	if m.cursor.HandleKey(key.String(), len(m.tracks), m.listHeight()) {
		return m, nil
	}

	switch key.String() {
	case "enter":
		if len(m.tracks) == 0 {
			return m, nil
		}
		index := m.cursor.Pos()
		return m, func() tea.Msg { return JumpToTrackMsg{Index: index} }

	case "d", "delete":
		if len(m.tracks) == 0 {
			return m, nil
		}
		index := m.cursor.Pos()
		return m, func() tea.Msg { return RemoveTrackMsg{Index: index} }
	}
	return m, nil
}

func (m Model) listHeight() int {
	return max(m.ListHeight(ui.PanelOverhead), 1)
}
