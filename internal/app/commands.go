package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/lastfm"
	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/notify"
	"github.com/test99500/musium/internal/playback"
)

const (
	tickInterval   = time.Second
	statusDuration = 5 * time.Second
	notifyTimeout  = 3000 // ms
)

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// clearStatusAfter schedules clearing the status line. The sequence number
// keeps an old timer from wiping a newer message.
func clearStatusAfter(seq uint64) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// Event pumps. Each returns one event as a message and is re-armed by the
// handler, so the subscription channels keep draining for the app's lifetime.

func waitForNavEvent(sub *nav.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.Events:
			return navPoppedMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func waitForTrackChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.TrackChanged:
			return trackChangedMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func waitForTrackComplete(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.TrackCompleted:
			return trackCompletedMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func waitForQueueChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.QueueChanged:
			return queueChangedMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func waitForModeChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.ModeChanged:
			return modeChangedMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func waitForStateChange(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return stateChangedMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

func waitForPlaybackError(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return playbackErrorMsg{event: e}
		case <-sub.Done:
			return nil
		}
	}
}

// startScan kicks off a library scan in the background and returns the
// command that pumps its progress.
func (m *Model) startScan(force bool) tea.Cmd {
	progress := make(chan library.ScanProgress, 8)
	errCh := make(chan error, 1)
	roots := m.cfg.Library.Roots

	go func() {
		if force {
			errCh <- m.library.FullRefresh(roots, progress)
		} else {
			errCh <- m.library.Refresh(roots, progress)
		}
	}()

	m.scanning = true
	m.scanProgress = library.ScanProgress{Phase: "scanning"}
	m.scanCh = progress
	m.scanErrCh = errCh
	return waitForScanProgress(progress, errCh)
}

func waitForScanProgress(progress <-chan library.ScanProgress, errCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-progress
		if !ok {
			return scanFinishedMsg{err: <-errCh}
		}
		return scanProgressMsg{progress: p}
	}
}

// recordListen inserts a listen row for a track start.
func (m *Model) recordListen(track playback.Track) tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		row, err := lib.TrackByID(track.ID)
		if err != nil {
			return listenStartedMsg{err: err}
		}
		id, err := lib.InsertListenStarted(row, time.Now())
		return listenStartedMsg{listenID: id, trackID: track.ID, err: err}
	}
}

// completeListen marks a listen played to the end and scrobbles it.
func (m *Model) completeListen(listenID int64, track playback.Track, startedAt time.Time) tea.Cmd {
	lib := m.library
	scrobbler := m.scrobbler
	return func() tea.Msg {
		if err := lib.MarkListenCompleted(listenID, time.Now()); err != nil {
			return listenScrobbledMsg{listenID: listenID, err: err}
		}
		if scrobbler == nil {
			return nil
		}
		err := scrobbler.Scrobble(lastfm.ScrobbleTrack{
			Artist:    track.Artist,
			Track:     track.Title,
			Album:     track.Album,
			Duration:  track.Duration,
			Timestamp: startedAt,
		})
		if err != nil {
			return listenScrobbledMsg{listenID: listenID, err: err}
		}
		if err := lib.MarkListenScrobbled(listenID, time.Now()); err != nil {
			return listenScrobbledMsg{listenID: listenID, err: err}
		}
		return listenScrobbledMsg{listenID: listenID}
	}
}

// updateNowPlaying tells Last.fm what started playing.
func (m *Model) updateNowPlaying(track playback.Track) tea.Cmd {
	scrobbler := m.scrobbler
	return func() tea.Msg {
		_ = scrobbler.UpdateNowPlaying(lastfm.ScrobbleTrack{
			Artist:   track.Artist,
			Track:    track.Title,
			Album:    track.Album,
			Duration: track.Duration,
		})
		return nil
	}
}

// drainScrobbleBacklog submits listens completed while scrobbling was
// unavailable, oldest first.
func (m *Model) drainScrobbleBacklog() tea.Cmd {
	lib := m.library
	scrobbler := m.scrobbler
	return func() tea.Msg {
		listens, err := lib.UnscrobbledListens(50)
		if err != nil {
			return backlogScrobbledMsg{err: err}
		}
		if len(listens) == 0 {
			return nil
		}

		tracks := make([]lastfm.ScrobbleTrack, len(listens))
		for i, ln := range listens {
			tracks[i] = lastfm.TrackFromListen(ln)
		}
		if err := scrobbler.ScrobbleBatch(tracks); err != nil {
			return backlogScrobbledMsg{err: err}
		}

		now := time.Now()
		for _, ln := range listens {
			if err := lib.MarkListenScrobbled(ln.ID, now); err != nil {
				return backlogScrobbledMsg{count: len(listens), err: err}
			}
		}
		return backlogScrobbledMsg{count: len(listens)}
	}
}

// notifyTrack sends or replaces the track-change desktop notification. The
// album thumbnail is used as the icon when it is already cached; otherwise
// generation is queued for next time.
func (m *Model) notifyTrack(track playback.Track) tea.Cmd {
	notifier := m.notifier
	replaces := m.notifyID

	icon := ""
	if m.thumbs != nil {
		path, ok := m.thumbs.Path(track.AlbumID)
		if ok {
			icon = path
		} else if album, err := m.library.AlbumByID(track.AlbumID); err == nil {
			m.thumbs.Enqueue(track.AlbumID, album.CoverPath)
		}
	}

	return func() tea.Msg {
		id, err := notifier.Notify(notify.Notification{
			Title:      track.Title,
			Body:       track.Artist + " — " + track.Album,
			Icon:       icon,
			Timeout:    notifyTimeout,
			ReplacesID: replaces,
			Urgency:    notify.UrgencyLow,
		})
		return notifiedMsg{id: id, err: err}
	}
}
