package playback

import (
	"github.com/test99500/musium/internal/playlist"
)

// AddTracks appends tracks to the queue without changing the position.
func (s *serviceImpl) AddTracks(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	s.mu.Lock()
	s.queue.Add(toPlaylistTracks(tracks)...)
	s.snapshotLocked()
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
}

// AddTracksAndPlay appends tracks and starts playback on the first of them.
func (s *serviceImpl) AddTracksAndPlay(tracks ...Track) error {
	if len(tracks) == 0 {
		return ErrEmptyQueue
	}
	s.mu.Lock()
	s.queue.AddAndPlay(toPlaylistTracks(tracks)...)
	s.snapshotLocked()
	previous := s.stateLocked()
	change, err := s.playCurrentLocked()
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
	if err != nil {
		return err
	}
	s.emitTrack(change)
	s.emitState(previous, StatePlaying)
	return nil
}

// ReplaceTracks swaps the queue contents and moves to the first track
// without starting playback. When shuffle is on, the incoming tracks are
// shuffled first. Returns the new first track, or nil.
func (s *serviceImpl) ReplaceTracks(tracks ...Track) *Track {
	s.mu.Lock()
	incoming := toPlaylistTracks(tracks)
	if s.shuffle {
		incoming = s.shuffledLocked(incoming)
	}
	first := s.queue.Replace(incoming)
	s.snapshotLocked()
	queueChange := s.queueChangeLocked()
	result := fromPlaylistTrack(first)
	s.mu.Unlock()

	s.emitQueue(queueChange)
	return result
}

// RemoveTrack removes the track at index. Removing the playing track skips
// to the one that takes its place; removing the last playing track stops.
func (s *serviceImpl) RemoveTrack(index int) bool {
	s.mu.Lock()
	wasCurrent := index == s.queue.CurrentIndex()
	if !s.queue.RemoveAt(index) {
		s.mu.Unlock()
		return false
	}
	s.snapshotLocked()

	previous := s.stateLocked()
	replacePlayback := wasCurrent && previous.IsActive()

	if replacePlayback && s.queue.Current() == nil {
		s.player.Stop()
		queueChange := s.queueChangeLocked()
		s.mu.Unlock()
		s.emitQueue(queueChange)
		s.emitState(previous, StateStopped)
		return true
	}

	var change TrackChange
	var playErr error
	if replacePlayback {
		change, playErr = s.playCurrentLocked()
	}
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
	if replacePlayback && playErr == nil {
		s.emitTrack(change)
	}
	return true
}

// MoveTrack moves a queued track from one position to another.
func (s *serviceImpl) MoveTrack(from, to int) bool {
	s.mu.Lock()
	if !s.queue.Move(from, to) {
		s.mu.Unlock()
		return false
	}
	s.snapshotLocked()
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
	return true
}

// ClearQueue removes all tracks and stops playback.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	previous := s.stateLocked()
	if previous.IsActive() {
		s.player.Stop()
	}
	s.queue.Clear()
	s.snapshotLocked()
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
	s.emitState(previous, StateStopped)
}

// Undo restores the queue to its state before the last edit.
func (s *serviceImpl) Undo() bool {
	return s.restoreSnapshot((*playlist.QueueHistory).Undo)
}

// Redo reapplies the last undone queue edit.
func (s *serviceImpl) Redo() bool {
	return s.restoreSnapshot((*playlist.QueueHistory).Redo)
}

func (s *serviceImpl) restoreSnapshot(step func(*playlist.QueueHistory) []playlist.Track) bool {
	s.mu.Lock()
	tracks := step(s.history)
	if tracks == nil {
		s.mu.Unlock()
		return false
	}

	index := s.queue.CurrentIndex()
	s.queue.Replace(tracks)
	if index >= s.queue.Len() {
		index = s.queue.Len() - 1
	}
	s.queue.SetIndex(index)
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
	return true
}
