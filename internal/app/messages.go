package app

import (
	"time"

	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/playback"
)

// tickMsg drives the player bar position display while playback is active.
type tickMsg time.Time

// navPoppedMsg carries a history pop event from the nav subscription.
type navPoppedMsg struct {
	event nav.PopEvent
}

// Playback event messages, one per subscription channel.
type (
	trackChangedMsg   struct{ event playback.TrackChange }
	trackCompletedMsg struct{ event playback.TrackComplete }
	queueChangedMsg   struct{ event playback.QueueChange }
	modeChangedMsg    struct{ event playback.ModeChange }
	stateChangedMsg   struct{ event playback.StateChange }
	playbackErrorMsg  struct{ event playback.ErrorEvent }
)

// scanProgressMsg reports library scan progress.
type scanProgressMsg struct {
	progress library.ScanProgress
}

// scanFinishedMsg reports the end of a library scan.
type scanFinishedMsg struct {
	err error
}

// listenStartedMsg carries the listen row ID recorded for a track start.
type listenStartedMsg struct {
	listenID int64
	trackID  int64
	err      error
}

// listenScrobbledMsg reports the outcome of a single scrobble submission.
type listenScrobbledMsg struct {
	listenID int64
	err      error
}

// backlogScrobbledMsg reports the startup drain of unscrobbled listens.
type backlogScrobbledMsg struct {
	count int
	err   error
}

// notifiedMsg carries the notification ID so the next one can replace it.
type notifiedMsg struct {
	id  uint32
	err error
}

// statusClearMsg clears the status line if no newer status replaced it.
type statusClearMsg struct {
	seq uint64
}
