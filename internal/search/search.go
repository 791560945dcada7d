// Package search implements the library search popup: a text input over a
// grouped result list, backed by an injected search function.
package search

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/library"
)

// SearchFunc resolves a query to grouped results. Injected so the popup
// stays decoupled from the database.
type SearchFunc func(ctx context.Context, query string) (*library.SearchResult, error)

// QueryResultMsg carries a resolved query back into Update. Seq ties the
// result to the request that issued it; results from superseded requests are
// dropped so the display always matches the newest input.
type QueryResultMsg struct {
	Seq    uint64
	Query  string
	Result *library.SearchResult
	Err    error
}

// SelectedMsg is emitted on Enter. Exactly one field is non-nil.
type SelectedMsg struct {
	Artist *library.SearchArtist
	Album  *library.SearchAlbum
	Track  *library.SearchTrack
}

// CanceledMsg is emitted on Escape.
type CanceledMsg struct{}

type rowKind int

const (
	rowHeading rowKind = iota
	rowArtist
	rowAlbum
	rowTrack
)

// row is one display line of the results region. Headings are not
// selectable; the cursor skips over them.
type row struct {
	kind    rowKind
	heading string
	artist  *library.SearchArtist
	album   *library.SearchAlbum
	track   *library.SearchTrack
}

// Model is the search popup.
type Model struct {
	input      textinput.Model
	searchFunc SearchFunc

	seq     uint64 // latest issued request
	pending bool   // latest request not yet resolved
	failed  bool   // latest applied resolution was an error

	result *library.SearchResult
	rows   []row
	cursor int // index into rows, always on a selectable row, -1 if none
	offset int

	width  int
	height int
}

// New creates a search popup around the given search function.
func New(searchFunc SearchFunc) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search library"
	return Model{
		input:      ti,
		searchFunc: searchFunc,
		cursor:     -1,
	}
}

// SetSize records the terminal dimensions for centering and truncation.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = m.innerWidth() - len(m.input.Prompt) - 1
}

// Focus readies the input for typing. Returns the cursor blink command.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears the query, results and error state. Sequence numbers keep
// counting so a response from before the reset cannot apply after it.
func (m *Model) Reset() {
	m.input.SetValue("")
	m.seq++
	m.pending = false
	m.failed = false
	m.result = nil
	m.rows = nil
	m.cursor = -1
	m.offset = 0
}

// Query returns the current input text.
func (m Model) Query() string {
	return m.input.Value()
}

// Update implements the bubbletea update contract for the popup.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CanceledMsg{} }

		case "enter":
			sel, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return sel }

		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil

		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		}

		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != prev {
			return m, tea.Batch(cmd, m.queryChanged())
		}
		return m, cmd

	case QueryResultMsg:
		m.applyResult(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// queryChanged issues a new search request, superseding any in flight.
// An empty query clears the results without calling the search function.
func (m *Model) queryChanged() tea.Cmd {
	m.seq++
	query := m.input.Value()
	if query == "" {
		m.pending = false
		m.failed = false
		m.result = nil
		m.rebuildRows()
		return nil
	}

	m.pending = true
	seq := m.seq
	fn := m.searchFunc
	return func() tea.Msg {
		res, err := fn(context.Background(), query)
		return QueryResultMsg{Seq: seq, Query: query, Result: res, Err: err}
	}
}

// applyResult installs a resolved query if it is still the latest one.
func (m *Model) applyResult(msg QueryResultMsg) {
	if msg.Seq != m.seq {
		return // superseded, a newer request is authoritative
	}
	m.pending = false

	if msg.Err != nil {
		// Keep showing what we had; the footer reports the failure.
		m.failed = true
		return
	}

	m.failed = false
	m.result = msg.Result
	m.rebuildRows()
}

// rebuildRows regenerates the display rows from the current result: each
// non-empty group contributes its heading and one row per item, in fixed
// Artists, Albums, Tracks order.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	m.offset = 0

	if m.result != nil {
		if len(m.result.Artists) > 0 {
			m.rows = append(m.rows, row{kind: rowHeading, heading: "Artists"})
			for i := range m.result.Artists {
				m.rows = append(m.rows, row{kind: rowArtist, artist: &m.result.Artists[i]})
			}
		}
		if len(m.result.Albums) > 0 {
			m.rows = append(m.rows, row{kind: rowHeading, heading: "Albums"})
			for i := range m.result.Albums {
				m.rows = append(m.rows, row{kind: rowAlbum, album: &m.result.Albums[i]})
			}
		}
		if len(m.result.Tracks) > 0 {
			m.rows = append(m.rows, row{kind: rowHeading, heading: "Tracks"})
			for i := range m.result.Tracks {
				m.rows = append(m.rows, row{kind: rowTrack, track: &m.result.Tracks[i]})
			}
		}
	}

	m.cursor = m.nextSelectable(-1, 1)
	m.adjustOffset()
}

// selected returns the message for the row under the cursor.
func (m Model) selected() (SelectedMsg, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return SelectedMsg{}, false
	}
	switch r := m.rows[m.cursor]; r.kind {
	case rowArtist:
		return SelectedMsg{Artist: r.artist}, true
	case rowAlbum:
		return SelectedMsg{Album: r.album}, true
	case rowTrack:
		return SelectedMsg{Track: r.track}, true
	default:
		return SelectedMsg{}, false
	}
}

// moveCursor steps to the next selectable row in the given direction,
// skipping headings. The cursor stays put at either end.
func (m *Model) moveCursor(dir int) {
	if next := m.nextSelectable(m.cursor, dir); next >= 0 {
		m.cursor = next
	}
	m.adjustOffset()
}

func (m *Model) nextSelectable(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].kind != rowHeading {
			return i
		}
	}
	return -1
}

func (m *Model) adjustOffset() {
	visible := m.visibleHeight()
	if visible <= 0 || m.cursor < 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
		// Pull the group heading into view when the cursor sits right
		// under it.
		if m.offset > 0 && m.rows[m.offset-1].kind == rowHeading {
			m.offset--
		}
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}
