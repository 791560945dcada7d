package lastfm

import (
	"time"

	"github.com/test99500/musium/internal/library"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist      string
	Track       string
	Album       string
	AlbumArtist string
	Duration    time.Duration
	Timestamp   time.Time // when playback started
}

// TrackFromListen converts a recorded listen into a scrobble submission.
func TrackFromListen(ln library.Listen) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:      ln.Artist,
		Track:       ln.Title,
		Album:       ln.Album,
		AlbumArtist: ln.AlbumArtist,
		Duration:    ln.Duration,
		Timestamp:   ln.StartedAt,
	}
}
