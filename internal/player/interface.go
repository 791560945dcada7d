package player

import "time"

// Interface is the player contract for dependency injection and testing.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration)
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
	// FinishedChan signals that the current track played through to its
	// natural end. Stop and skips never signal it.
	FinishedChan() <-chan struct{}
	Close() error
}

var _ Interface = (*Mpv)(nil)
