package playlist

// PlayingQueue wraps a Playlist with a current playback position.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int
}

func NewPlayingQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the track at the current position, or nil if the queue is
// empty or exhausted.
func (q *PlayingQueue) Current() *Track {
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the current position, -1 if nothing is playing.
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Next advances to the next track and returns it, or nil if at the end.
func (q *PlayingQueue) Next() *Track {
	if !q.HasNext() {
		return nil
	}
	q.currentIndex++
	return q.Current()
}

// HasNext reports whether a track follows the current position.
func (q *PlayingQueue) HasNext() bool {
	return q.currentIndex+1 < q.playlist.Len()
}

// Previous steps back to the previous track and returns it, or nil if at the
// start.
func (q *PlayingQueue) Previous() *Track {
	if !q.HasPrevious() {
		return nil
	}
	q.currentIndex--
	return q.Current()
}

// HasPrevious reports whether a track precedes the current position.
func (q *PlayingQueue) HasPrevious() bool {
	return q.currentIndex > 0 && q.playlist.Len() > 0
}

// TrackAt returns the track at index without moving the position. Returns
// nil if index is out of bounds.
func (q *PlayingQueue) TrackAt(index int) *Track {
	return q.playlist.Track(index)
}

// JumpTo moves the current position to index and returns the track there.
// Returns nil if index is out of bounds.
func (q *PlayingQueue) JumpTo(index int) *Track {
	track := q.playlist.Track(index)
	if track == nil {
		return nil
	}
	q.currentIndex = index
	return track
}

// Add appends tracks without changing the current position.
func (q *PlayingQueue) Add(tracks ...Track) {
	q.playlist.Add(tracks...)
}

// AddAndPlay appends tracks and moves the position to the first of them.
func (q *PlayingQueue) AddAndPlay(tracks ...Track) *Track {
	if len(tracks) == 0 {
		return nil
	}
	first := q.playlist.Len()
	q.playlist.Add(tracks...)
	return q.JumpTo(first)
}

// Replace swaps the queue contents and resets the position to the first
// track.
func (q *PlayingQueue) Replace(tracks []Track) *Track {
	q.playlist.Replace(tracks)
	if q.playlist.Len() == 0 {
		q.currentIndex = -1
		return nil
	}
	return q.JumpTo(0)
}

// SetIndex moves the position without returning the track. Out of bounds
// values reset to -1.
func (q *PlayingQueue) SetIndex(index int) {
	if index < 0 || index >= q.playlist.Len() {
		q.currentIndex = -1
		return
	}
	q.currentIndex = index
}

// RemoveAt removes the track at index, adjusting the current position so the
// playing track keeps playing. Removing the current track leaves the position
// pointing at the following track. Returns false if index is out of bounds.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}
	switch {
	case index < q.currentIndex:
		q.currentIndex--
	case index == q.currentIndex && q.currentIndex >= q.playlist.Len():
		q.currentIndex = q.playlist.Len() - 1
	}
	return true
}

// Move moves a track from one position to another, keeping the current
// position attached to the same track.
func (q *PlayingQueue) Move(fromIndex, toIndex int) bool {
	if !q.playlist.Move(fromIndex, toIndex) {
		return false
	}
	switch {
	case fromIndex == q.currentIndex:
		q.currentIndex = toIndex
	case fromIndex < q.currentIndex && toIndex >= q.currentIndex:
		q.currentIndex--
	case fromIndex > q.currentIndex && toIndex <= q.currentIndex:
		q.currentIndex++
	}
	return true
}

// Clear removes all tracks and resets the position.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns a copy of the queued tracks.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// IDs returns the library track IDs in queue order.
func (q *PlayingQueue) IDs() []int64 {
	tracks := q.playlist.tracks
	ids := make([]int64, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

// Len returns the number of queued tracks.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}
