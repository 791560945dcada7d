package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
)

// Update handles key navigation within the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.cursor.HandleKey(key.String(), m.listLen(), m.listHeight()) {
		return m, nil
	}

	switch key.String() {
	case "enter", "l", "right":
		return m.descend()
	case "backspace", "h", "left":
		return m.ascend()
	}
	return m, nil
}

// descend opens the item under the cursor: an artist opens its albums, an
// album its tracks, a track becomes a play request.
func (m Model) descend() (Model, tea.Cmd) {
	switch m.loc.Kind {
	case nav.KindArtists:
		if len(m.artists) == 0 {
			return m, nil
		}
		artist := m.artists[m.cursor.Pos()]
		return m.moveTo(nav.Location{
			Kind:     nav.KindAlbums,
			ArtistID: artist.ID,
			Artist:   artist.Name,
		})

	case nav.KindAlbums:
		if len(m.albums) == 0 {
			return m, nil
		}
		album := m.albums[m.cursor.Pos()]
		return m.moveTo(nav.Location{
			Kind:     nav.KindTracks,
			ArtistID: m.loc.ArtistID,
			Artist:   m.loc.Artist,
			AlbumID:  album.ID,
			Album:    album.Title,
		})

	case nav.KindTracks:
		if len(m.tracks) == 0 {
			return m, nil
		}
		tracks := make([]library.Track, len(m.tracks))
		copy(tracks, m.tracks)
		index := m.cursor.Pos()
		return m, func() tea.Msg {
			return PlayRequestMsg{Tracks: tracks, Index: index}
		}
	}
	return m, nil
}

// ascend moves one level up, placing the cursor on the item we came from.
func (m Model) ascend() (Model, tea.Cmd) {
	switch m.loc.Kind {
	case nav.KindAlbums:
		from := m.loc.ArtistID
		next, cmd := m.moveTo(nav.Location{Kind: nav.KindArtists})
		for i, a := range next.artists {
			if a.ID == from {
				next.cursor.Jump(i, len(next.artists), next.listHeight())
				break
			}
		}
		return next, cmd

	case nav.KindTracks:
		from := m.loc.AlbumID
		next, cmd := m.moveTo(nav.Location{
			Kind:     nav.KindAlbums,
			ArtistID: m.loc.ArtistID,
			Artist:   m.loc.Artist,
		})
		for i, a := range next.albums {
			if a.ID == from {
				next.cursor.Jump(i, len(next.albums), next.listHeight())
				break
			}
		}
		return next, cmd
	}
	return m, nil
}

// moveTo loads the target location and emits the location change.
func (m Model) moveTo(loc nav.Location) (Model, tea.Cmd) {
	m.loc = loc
	if err := m.load(); err != nil {
		return m, func() tea.Msg { return ErrorMsg{Err: err} }
	}
	m.cursor.Reset()
	return m, func() tea.Msg { return LocationChangedMsg{Location: loc} }
}
