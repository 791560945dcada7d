package playback

import (
	"github.com/test99500/musium/internal/playlist"
	"github.com/test99500/musium/internal/shuffle"
)

// RepeatMode returns the current repeat mode.
func (s *serviceImpl) RepeatMode() RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repeat
}

// SetRepeatMode sets the repeat mode.
func (s *serviceImpl) SetRepeatMode(mode RepeatMode) {
	s.mu.Lock()
	if s.repeat == mode {
		s.mu.Unlock()
		return
	}
	s.repeat = mode
	modeChange := ModeChange{RepeatMode: mode, Shuffle: s.shuffle}
	s.mu.Unlock()

	s.emitMode(modeChange)
}

// CycleRepeatMode advances to the next repeat mode and returns it.
func (s *serviceImpl) CycleRepeatMode() RepeatMode {
	next := s.RepeatMode().Cycle()
	s.SetRepeatMode(next)
	return next
}

// Shuffle returns whether shuffle is enabled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuffle
}

// SetShuffle enables or disables shuffle. Enabling reorders the tracks after
// the current position immediately (undoable); disabling only clears the
// flag, so Undo is the way back to the old order.
func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	if s.shuffle == enabled {
		s.mu.Unlock()
		return
	}
	s.shuffle = enabled

	var queueChange *QueueChange
	if enabled && s.shuffleUpcomingLocked() {
		s.snapshotLocked()
		qc := s.queueChangeLocked()
		queueChange = &qc
	}
	modeChange := ModeChange{RepeatMode: s.repeat, Shuffle: enabled}
	s.mu.Unlock()

	s.emitMode(modeChange)
	if queueChange != nil {
		s.emitQueue(*queueChange)
	}
}

// ToggleShuffle flips shuffle and returns the new setting.
func (s *serviceImpl) ToggleShuffle() bool {
	enabled := !s.Shuffle()
	s.SetShuffle(enabled)
	return enabled
}

// shuffleUpcomingLocked reorders the tracks after the current position (all
// of them when nothing is playing). Returns false when there is nothing to
// reorder.
func (s *serviceImpl) shuffleUpcomingLocked() bool {
	tracks := s.queue.Tracks()
	start := s.queue.CurrentIndex() + 1
	if len(tracks)-start < 2 {
		return false
	}

	reordered := s.shuffledLocked(tracks[start:])
	copy(tracks[start:], reordered)

	index := s.queue.CurrentIndex()
	s.queue.Replace(tracks)
	s.queue.SetIndex(index)
	return true
}

// shuffledLocked returns the tracks in interleaved shuffle order.
func (s *serviceImpl) shuffledLocked(tracks []playlist.Track) []playlist.Track {
	keys := make([]shuffle.Key, len(tracks))
	for i, t := range tracks {
		keys[i] = shuffle.Key{AlbumID: t.AlbumID, Artist: t.Artist}
	}
	order := shuffle.Order(s.rng, keys)

	result := make([]playlist.Track, len(tracks))
	for i, from := range order {
		result[i] = tracks[from]
	}
	return result
}
