package playback

import (
	"time"

	"github.com/test99500/musium/internal/playlist"
)

// Play starts playback of the queue's current track.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	if s.queue.Len() == 0 {
		s.mu.Unlock()
		return ErrEmptyQueue
	}
	previous := s.stateLocked()
	change, err := s.playCurrentLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.emitTrack(change)
	s.emitState(previous, StatePlaying)
	return nil
}

// playCurrentLocked starts the player on the queue's current track and
// prepares the TrackChange event. Caller holds mu and emits the event after
// unlocking.
func (s *serviceImpl) playCurrentLocked() (TrackChange, error) {
	track := s.queue.Current()
	if track == nil {
		return TrackChange{}, ErrNoCurrentTrack
	}
	if err := s.player.Play(track.Path); err != nil {
		s.emitError(ErrorEvent{Operation: "play", Path: track.Path, Err: err})
		return TrackChange{}, err
	}

	change := TrackChange{
		Previous:      s.lastPlayed,
		Current:       s.currentTrackLocked(),
		PreviousIndex: s.lastPlayedIndex,
		Index:         s.queue.CurrentIndex(),
	}
	s.lastPlayed = change.Current
	s.lastPlayedIndex = change.Index
	return change, nil
}

// Pause pauses playback. No-op unless playing.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	previous := s.stateLocked()
	if previous != StatePlaying {
		s.mu.Unlock()
		return nil
	}
	s.player.Pause()
	current := s.stateLocked()
	s.mu.Unlock()

	s.emitState(previous, current)
	return nil
}

// Resume resumes paused playback. No-op unless paused.
func (s *serviceImpl) Resume() error {
	s.mu.Lock()
	previous := s.stateLocked()
	if previous != StatePaused {
		s.mu.Unlock()
		return nil
	}
	s.player.Resume()
	current := s.stateLocked()
	s.mu.Unlock()

	s.emitState(previous, current)
	return nil
}

// Stop stops playback. The queue position is kept.
func (s *serviceImpl) Stop() error {
	s.mu.Lock()
	previous := s.stateLocked()
	if previous == StateStopped {
		s.mu.Unlock()
		return nil
	}
	s.player.Stop()
	s.mu.Unlock()

	s.emitState(previous, StateStopped)
	return nil
}

// Toggle pauses, resumes, or starts playback depending on the state.
func (s *serviceImpl) Toggle() error {
	switch s.State() {
	case StatePlaying:
		return s.Pause()
	case StatePaused:
		return s.Resume()
	case StateStopped:
		return s.Play()
	}
	return nil
}

// Next advances to the next track, wrapping under RepeatAll. Starts the new
// track when playback is active; otherwise only the position moves.
func (s *serviceImpl) Next() error {
	return s.skipTo(func() *int {
		if s.queue.HasNext() {
			i := s.queue.CurrentIndex() + 1
			return &i
		}
		if s.repeat == RepeatAll && s.queue.Len() > 0 {
			i := 0
			return &i
		}
		return nil
	})
}

// Previous steps back one queue position. Linear: shuffle already reordered
// the queue itself.
func (s *serviceImpl) Previous() error {
	return s.skipTo(func() *int {
		if s.queue.CurrentIndex() <= 0 {
			return nil
		}
		i := s.queue.CurrentIndex() - 1
		return &i
	})
}

// JumpTo moves to a queue position and starts playback there.
func (s *serviceImpl) JumpTo(index int) error {
	s.mu.Lock()
	if s.queue.TrackAt(index) == nil {
		s.mu.Unlock()
		return ErrInvalidIndex
	}
	s.queue.JumpTo(index)
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

// skipTo moves the queue position to the index resolve returns and plays it
// if playback is active. resolve runs under the lock and returns nil to
// leave everything untouched.
func (s *serviceImpl) skipTo(resolve func() *int) error {
	s.mu.Lock()
	target := resolve()
	if target == nil {
		s.mu.Unlock()
		return nil
	}
	s.queue.JumpTo(*target)

	previous := s.stateLocked()
	queueChange := s.queueChangeLocked()
	if !previous.IsActive() {
		s.mu.Unlock()
		s.emitQueue(queueChange)
		return nil
	}
	change, err := s.playCurrentLocked()
	s.mu.Unlock()

	s.emitQueue(queueChange)
	if err != nil {
		return err
	}
	s.emitTrack(change)
	s.emitState(previous, StatePlaying)
	return nil
}

// QueueMoveTo moves the queue position without touching playback.
func (s *serviceImpl) QueueMoveTo(index int) *Track {
	s.mu.Lock()
	track := s.queue.JumpTo(index)
	if track == nil {
		s.mu.Unlock()
		return nil
	}
	queueChange := s.queueChangeLocked()
	result := fromPlaylistTrack(track)
	s.mu.Unlock()

	s.emitQueue(queueChange)
	return result
}

// Seek moves the playback position by delta. The emitted position is the
// clamped target; the player applies the jump asynchronously.
func (s *serviceImpl) Seek(delta time.Duration) {
	target := min(max(s.player.Position()+delta, 0), s.player.Duration())
	s.player.Seek(delta)
	s.emitPosition(target)
}

// watchPlayer consumes the player's end-of-track signals until Close.
func (s *serviceImpl) watchPlayer() {
	for {
		select {
		case <-s.done:
			return
		case <-s.player.FinishedChan():
			s.handleTrackFinished()
		}
	}
}

// handleTrackFinished advances after the current track played to its end.
func (s *serviceImpl) handleTrackFinished() {
	s.mu.Lock()
	finished := s.lastPlayed
	finishedIndex := s.lastPlayedIndex

	// If the queue position was moved away from the playing track (a
	// pending debounced skip), play where it points instead of advancing.
	current := s.queue.Current()
	moved := current != nil && (finished == nil || current.Path != finished.Path)

	var next *playlist.Track
	switch {
	case moved:
		next = current
	case s.repeat == RepeatOne:
		next = current
	case s.queue.HasNext():
		next = s.queue.Next()
	case s.repeat == RepeatAll && s.queue.Len() > 0:
		next = s.queue.JumpTo(0)
	}

	if next == nil {
		// End of the queue: bring the player down so its state and open
		// handles match.
		s.player.Stop()
		s.mu.Unlock()
		if finished != nil {
			s.emitComplete(TrackComplete{Track: *finished, Index: finishedIndex})
		}
		s.emitState(StatePlaying, StateStopped)
		return
	}

	change, err := s.playCurrentLocked()
	queueChange := s.queueChangeLocked()
	s.mu.Unlock()

	if finished != nil {
		s.emitComplete(TrackComplete{Track: *finished, Index: finishedIndex})
	}
	s.emitQueue(queueChange)
	if err != nil {
		s.emitState(StatePlaying, StateStopped)
		return
	}
	s.emitTrack(change)
}
