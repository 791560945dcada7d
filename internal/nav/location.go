// Package nav owns browser history: a stack of typed locations with
// back/forward navigation delivered to subscribers as pop events.
package nav

import "strconv"

// Kind identifies a browser view. The set is closed: every place the app
// can navigate to is one of these.
type Kind int

const (
	KindArtists Kind = iota
	KindAlbums
	KindTracks
	KindQueue
)

// Location is a navigable place in the app. It is a comparable value;
// two locations are the same place iff they are equal.
type Location struct {
	Kind     Kind
	ArtistID int64  // set for KindAlbums and KindTracks
	Artist   string // display name for KindAlbums and KindTracks
	AlbumID  int64  // set for KindTracks
	Album    string // display name for KindTracks
}

// Title returns the heading shown for this location.
func (l Location) Title() string {
	switch l.Kind {
	case KindAlbums:
		return l.Artist
	case KindTracks:
		return l.Album
	case KindQueue:
		return "Queue"
	default:
		return "Artists"
	}
}

// Path returns a stable path string for this location.
func (l Location) Path() string {
	switch l.Kind {
	case KindAlbums:
		return "/artist/" + strconv.FormatInt(l.ArtistID, 10)
	case KindTracks:
		return "/album/" + strconv.FormatInt(l.AlbumID, 10)
	case KindQueue:
		return "/queue"
	default:
		return "/artists"
	}
}
