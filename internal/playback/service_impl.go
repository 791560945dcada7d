package playback

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/test99500/musium/internal/player"
	"github.com/test99500/musium/internal/playlist"
)

var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player  player.Interface
	queue   *playlist.PlayingQueue
	history *playlist.QueueHistory

	repeat  RepeatMode
	shuffle bool
	rng     *rand.Rand

	lastPlayed      *Track
	lastPlayedIndex int

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback service around a player and a queue. The queue may
// already hold tracks (restored session state); its contents become the
// first undo snapshot.
func New(p player.Interface, q *playlist.PlayingQueue) Service {
	s := &serviceImpl{
		player:          p,
		queue:           q,
		history:         playlist.NewQueueHistory(),
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // shuffle order, not crypto
		lastPlayedIndex: -1,
		done:            make(chan struct{}),
	}
	s.history.Push(q.Tracks())
	go s.watchPlayer()
	return s
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	switch s.player.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	case player.Stopped:
		return StateStopped
	default:
		return StateStopped
	}
}

func (s *serviceImpl) IsPlaying() bool { return s.State() == StatePlaying }

func (s *serviceImpl) IsPaused() bool { return s.State() == StatePaused }

func (s *serviceImpl) IsStopped() bool { return s.State() == StateStopped }

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	return s.player.Position()
}

// Duration returns the current track duration.
func (s *serviceImpl) Duration() time.Duration {
	return s.player.Duration()
}

// Player returns the underlying player, for volume control and rendering.
func (s *serviceImpl) Player() player.Interface {
	return s.player
}

// CurrentTrack returns the track at the queue position, or nil.
func (s *serviceImpl) CurrentTrack() *Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentTrackLocked()
}

func (s *serviceImpl) currentTrackLocked() *Track {
	return fromPlaylistTrack(s.queue.Current())
}

// QueueTracks returns a copy of all queued tracks.
func (s *serviceImpl) QueueTracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fromPlaylistTracks(s.queue.Tracks())
}

// QueueCurrentIndex returns the queue position, -1 if none.
func (s *serviceImpl) QueueCurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

func (s *serviceImpl) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

func (s *serviceImpl) QueueIsEmpty() bool {
	return s.QueueLen() == 0
}

func (s *serviceImpl) QueueHasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.HasNext()
}

// QueueIDs returns the library track IDs in queue order, for persistence.
func (s *serviceImpl) QueueIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.IDs()
}

// QueuePeekNext returns the track that would follow the current one under
// the active repeat mode.
func (s *serviceImpl) QueuePeekNext() *Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fromPlaylistTrack(s.peekNextLocked())
}

// peekNextLocked resolves the successor track. The decision must stay in
// sync with the queue move in handleTrackFinished.
func (s *serviceImpl) peekNextLocked() *playlist.Track {
	switch {
	case s.repeat == RepeatOne:
		return s.queue.Current()
	case s.queue.HasNext():
		return s.queue.TrackAt(s.queue.CurrentIndex() + 1)
	case s.repeat == RepeatAll && s.queue.Len() > 0:
		return s.queue.TrackAt(0)
	default:
		return nil
	}
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the service. The player itself is left to its owner.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *serviceImpl) forEachSub(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func (s *serviceImpl) emitState(previous, current State) {
	if previous == current {
		return
	}
	e := StateChange{Previous: previous, Current: current}
	s.forEachSub(func(sub *Subscription) { sub.sendState(e) })
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.forEachSub(func(sub *Subscription) { sub.sendTrack(e) })
}

func (s *serviceImpl) emitComplete(e TrackComplete) {
	s.forEachSub(func(sub *Subscription) { sub.sendComplete(e) })
}

func (s *serviceImpl) emitPosition(pos time.Duration) {
	s.forEachSub(func(sub *Subscription) { sub.sendPosition(pos) })
}

func (s *serviceImpl) emitQueue(e QueueChange) {
	s.forEachSub(func(sub *Subscription) { sub.sendQueue(e) })
}

func (s *serviceImpl) emitMode(e ModeChange) {
	s.forEachSub(func(sub *Subscription) { sub.sendMode(e) })
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.forEachSub(func(sub *Subscription) { sub.sendError(e) })
}

// queueChangeLocked snapshots the queue for a QueueChange event.
func (s *serviceImpl) queueChangeLocked() QueueChange {
	return QueueChange{
		Tracks: fromPlaylistTracks(s.queue.Tracks()),
		Index:  s.queue.CurrentIndex(),
	}
}

// snapshotLocked records the queue state for undo.
func (s *serviceImpl) snapshotLocked() {
	s.history.Push(s.queue.Tracks())
}
