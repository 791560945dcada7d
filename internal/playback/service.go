package playback

import (
	"errors"
	"time"

	"github.com/test99500/musium/internal/player"
)

var (
	ErrEmptyQueue     = errors.New("playback: queue is empty")
	ErrNoCurrentTrack = errors.New("playback: no current track")
	ErrInvalidIndex   = errors.New("playback: queue index out of range")
)

// Service coordinates the player and the queue: it starts tracks, advances
// when they finish, applies repeat and shuffle modes, and publishes events.
type Service interface {
	// Playback control
	Play() error
	Pause() error
	Resume() error
	Stop() error
	Toggle() error
	Next() error
	Previous() error
	Seek(delta time.Duration)

	// JumpTo moves to a queue position and starts playback there.
	JumpTo(index int) error
	// QueueMoveTo moves the queue position without touching playback and
	// returns the track there, or nil if index is out of bounds.
	QueueMoveTo(index int) *Track
	// QueuePeekNext returns the track that would play after the current
	// one under the active repeat mode, without moving.
	QueuePeekNext() *Track

	// Queue manipulation. Every mutation records an undo snapshot.
	AddTracks(tracks ...Track)
	AddTracksAndPlay(tracks ...Track) error
	ReplaceTracks(tracks ...Track) *Track
	RemoveTrack(index int) bool
	MoveTrack(from, to int) bool
	ClearQueue()
	Undo() bool
	Redo() bool

	// State queries
	State() State
	IsPlaying() bool
	IsPaused() bool
	IsStopped() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *Track
	Player() player.Interface

	// Queue queries
	QueueTracks() []Track
	QueueCurrentIndex() int
	QueueLen() int
	QueueIsEmpty() bool
	QueueHasNext() bool
	QueueIDs() []int64

	// Mode control
	RepeatMode() RepeatMode
	SetRepeatMode(mode RepeatMode)
	CycleRepeatMode() RepeatMode
	Shuffle() bool
	SetShuffle(enabled bool)
	ToggleShuffle() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
