// Package browser provides the library drill-down panel: a single list that
// descends from artists to an artist's albums to an album's tracks.
package browser

import (
	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/ui/cursor"
)

// LocationChangedMsg is emitted when the user drills down or up, so the app
// can push the new location onto the history. Repositioning through
// Position emits nothing; pop events must not re-push.
type LocationChangedMsg struct {
	Location nav.Location
}

// PlayRequestMsg is emitted when the user hits enter on a track: the album's
// tracks starting at the selected index.
type PlayRequestMsg struct {
	Tracks []library.Track
	Index  int
}

// ErrorMsg reports a failed library read.
type ErrorMsg struct {
	Err error
}

// Model is the drill-down browser state.
type Model struct {
	library *library.Library

	loc     nav.Location
	artists []library.Artist
	albums  []library.Album
	tracks  []library.Track

	cursor cursor.Cursor

	focused bool
	width   int
	height  int
}

// New creates a browser positioned at the artist list. Call Reload before
// the first render.
func New(lib *library.Library) Model {
	return Model{
		library: lib,
		loc:     nav.Location{Kind: nav.KindArtists},
		cursor:  cursor.New(3),
	}
}

// Location returns the current location.
func (m Model) Location() nav.Location {
	return m.loc
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns true if the browser has focus.
func (m Model) IsFocused() bool {
	return m.focused
}

// SetSize updates the dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.cursor.EnsureVisible(m.listLen(), m.listHeight())
}

// Reload refetches the list for the current location, keeping the cursor in
// bounds. Call after scans change the catalog.
func (m *Model) Reload() error {
	if err := m.load(); err != nil {
		return err
	}
	m.cursor.ClampToBounds(m.listLen())
	m.cursor.EnsureVisible(m.listLen(), m.listHeight())
	return nil
}

// Position moves the browser to the given location without emitting a
// location change. Used for history pop events and startup restore.
func (m *Model) Position(loc nav.Location) error {
	if loc.Kind == nav.KindQueue {
		// The queue is not a browser view; stay where we are.
		return nil
	}
	m.loc = loc
	if err := m.load(); err != nil {
		return err
	}
	m.cursor.Reset()
	return nil
}

// SelectedTrack returns the track under the cursor when showing tracks.
func (m Model) SelectedTrack() *library.Track {
	if m.loc.Kind != nav.KindTracks || len(m.tracks) == 0 {
		return nil
	}
	t := m.tracks[m.cursor.Pos()]
	return &t
}

// SelectedAlbum returns the album under the cursor when showing albums.
func (m Model) SelectedAlbum() *library.Album {
	if m.loc.Kind != nav.KindAlbums || len(m.albums) == 0 {
		return nil
	}
	a := m.albums[m.cursor.Pos()]
	return &a
}

// load fetches the list backing the current location.
func (m *Model) load() error {
	switch m.loc.Kind {
	case nav.KindAlbums:
		albums, err := m.library.AlbumsByArtist(m.loc.ArtistID)
		if err != nil {
			return err
		}
		m.albums = albums
	case nav.KindTracks:
		tracks, err := m.library.TracksByAlbum(m.loc.AlbumID)
		if err != nil {
			return err
		}
		m.tracks = tracks
	default:
		artists, err := m.library.Artists()
		if err != nil {
			return err
		}
		m.artists = artists
	}
	return nil
}

func (m Model) listLen() int {
	switch m.loc.Kind {
	case nav.KindAlbums:
		return len(m.albums)
	case nav.KindTracks:
		return len(m.tracks)
	default:
		return len(m.artists)
	}
}

// listHeight is the inner height available for list rows: border (2) and
// title line (1).
func (m Model) listHeight() int {
	return max(m.height-3, 1)
}
