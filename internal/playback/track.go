package playback

import (
	"time"

	"github.com/test99500/musium/internal/playlist"
)

// Track is a queued track as seen by service consumers. Values are copies,
// never references into the queue.
type Track struct {
	ID          int64
	AlbumID     int64
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

func fromPlaylistTrack(t *playlist.Track) *Track {
	if t == nil {
		return nil
	}
	return &Track{
		ID:          t.ID,
		AlbumID:     t.AlbumID,
		Path:        t.Path,
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
	}
}

func fromPlaylistTracks(tracks []playlist.Track) []Track {
	result := make([]Track, len(tracks))
	for i := range tracks {
		result[i] = *fromPlaylistTrack(&tracks[i])
	}
	return result
}

func (t Track) toPlaylist() playlist.Track {
	return playlist.Track{
		ID:          t.ID,
		AlbumID:     t.AlbumID,
		Path:        t.Path,
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
	}
}

func toPlaylistTracks(tracks []Track) []playlist.Track {
	result := make([]playlist.Track, len(tracks))
	for i, t := range tracks {
		result[i] = t.toPlaylist()
	}
	return result
}
