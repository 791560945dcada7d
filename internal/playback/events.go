package playback

import "time"

// StateChange is emitted when the playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted every time playback starts on a track: explicit
// Play, queue navigation with playback, and automatic advance. Previous is
// the last track that played, nil on the first start.
//
// Side effects that belong to a track start (listen logging, now-playing,
// desktop notification) should hang off this event. Rapid navigation should
// be debounced before calling Play, not by filtering events.
type TrackChange struct {
	Previous      *Track
	Current       *Track
	PreviousIndex int
	Index         int
}

// TrackComplete is emitted when a track plays through to its natural end.
// Skips and stops do not emit it; listen completion and scrobbling key off
// this event.
type TrackComplete struct {
	Track Track
	Index int
}

// QueueChange is emitted when the queue contents or position change.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode RepeatMode
	Shuffle    bool
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an operation fails in the background, where no
// caller is left to receive the error.
type ErrorEvent struct {
	Operation string
	Path      string
	Err       error
}
