// Package playlist provides the play queue: an ordered track list with a
// playback position and undo history.
package playlist

import (
	"slices"
	"time"
)

// Track represents a single track in the queue.
type Track struct {
	ID          int64 // library track ID
	AlbumID     int64
	Path        string // file path for playback
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

func NewPlaylist() *Playlist {
	return &Playlist{tracks: make([]Track, 0)}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = slices.Delete(p.tracks, index, index+1)
	return true
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	return slices.Clone(p.tracks)
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Move moves the track at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.tracks) ||
		toIndex < 0 || toIndex >= len(p.tracks) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}
	track := p.tracks[fromIndex]
	p.tracks = slices.Delete(p.tracks, fromIndex, fromIndex+1)
	p.tracks = slices.Insert(p.tracks, toIndex, track)
	return true
}

// Replace swaps the whole track list for a new one.
func (p *Playlist) Replace(tracks []Track) {
	p.tracks = slices.Clone(tracks)
}
