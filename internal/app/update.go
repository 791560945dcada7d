package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/browser"
	"github.com/test99500/musium/internal/errmsg"
	"github.com/test99500/musium/internal/keymap"
	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/search"
	"github.com/test99500/musium/internal/ui/confirm"
	"github.com/test99500/musium/internal/ui/helpbindings"
	"github.com/test99500/musium/internal/ui/playerbar"
	"github.com/test99500/musium/internal/ui/queuepanel"
)

const seekStep = 5 * time.Second

// confirmFullRescan tags the full-rescan confirmation dialog.
const confirmFullRescan = "full_rescan"

// Update implements the bubbletea update contract for the application.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.svc.State().IsActive() {
			return m, tick()
		}
		return m, nil

	// Navigation
	case navPoppedMsg:
		return m, tea.Batch(m.handleNavPopped(msg.event), waitForNavEvent(m.navSub))

	case browser.LocationChangedMsg:
		m.current = msg.Location
		m.history.Push(msg.Location, msg.Location.Title(), msg.Location.Path())
		m.saveNavState()
		return m, nil

	case browser.PlayRequestMsg:
		return m, m.playTracks(msg.Tracks, msg.Index)

	case browser.ErrorMsg:
		return m, m.setError(errmsg.OpLibraryLoad, msg.Err)

	// Dialogs
	case confirm.ResultMsg:
		if msg.Confirmed && msg.Context == confirmFullRescan {
			return m, m.requestScan(true)
		}
		return m, nil

	case helpbindings.CloseMsg:
		m.helpOpen = false
		return m, nil

	// Search
	case search.SelectedMsg:
		return m.handleSearchSelected(msg)

	case search.CanceledMsg:
		m.searchOpen = false
		return m, nil

	case search.QueryResultMsg:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	// Queue panel
	case queuepanel.JumpToTrackMsg:
		if err := m.svc.JumpTo(msg.Index); err != nil {
			return m, m.setError(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case queuepanel.RemoveTrackMsg:
		m.svc.RemoveTrack(msg.Index)
		return m, nil

	// Playback events
	case trackChangedMsg:
		return m, tea.Batch(m.handleTrackChanged(msg.event), waitForTrackChange(m.playbackSub))

	case trackCompletedMsg:
		return m, tea.Batch(m.handleTrackCompleted(msg.event), waitForTrackComplete(m.playbackSub))

	case queueChangedMsg:
		m.queue.SetQueue(msg.event.Tracks, msg.event.Index)
		m.saveQueueState()
		return m, waitForQueueChange(m.playbackSub)

	case modeChangedMsg:
		m.queue.SetModes(msg.event.RepeatMode, msg.event.Shuffle)
		m.saveQueueState()
		return m, waitForModeChange(m.playbackSub)

	case stateChangedMsg:
		var cmd tea.Cmd
		if msg.event.Current.IsActive() && !msg.event.Previous.IsActive() {
			cmd = tick()
		}
		return m, tea.Batch(cmd, waitForStateChange(m.playbackSub))

	case playbackErrorMsg:
		e := msg.event
		return m, tea.Batch(
			m.setStatus(errmsg.FormatWith(errmsg.Op(e.Operation), e.Path, e.Err)),
			waitForPlaybackError(m.playbackSub),
		)

	// Scanning
	case scanProgressMsg:
		m.scanProgress = msg.progress
		return m, waitForScanProgress(m.scanCh, m.scanErrCh)

	case scanFinishedMsg:
		return m, m.handleScanFinished(msg.err)

	// Listens and scrobbling
	case listenStartedMsg:
		if msg.err != nil {
			return m, m.setError(errmsg.OpListenRecord, msg.err)
		}
		m.listenID = msg.listenID
		m.listenTrackID = msg.trackID
		return m, nil

	case listenScrobbledMsg:
		if msg.err != nil {
			return m, m.setError(errmsg.OpScrobble, msg.err)
		}
		return m, nil

	case backlogScrobbledMsg:
		if msg.err != nil {
			return m, m.setError(errmsg.OpScrobble, msg.err)
		}
		if msg.count > 0 {
			return m, m.setStatus(fmt.Sprintf("Scrobbled %d queued listens", msg.count))
		}
		return m, nil

	case notifiedMsg:
		if msg.err == nil {
			m.notifyID = msg.id
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	if m.searchOpen {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes keys: the search popup when open, then global actions,
// then the focused panel.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchOpen {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	if m.confirm.Active() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.helpOpen {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch m.resolver.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit

	case keymap.ActionSearch:
		m.searchOpen = true
		m.search.Reset()
		return m, m.search.Focus()

	case keymap.ActionToggleQueue:
		return m, m.toggleQueue()

	case keymap.ActionBack:
		m.history.Back()
		return m, nil

	case keymap.ActionForward:
		m.history.Forward()
		return m, nil

	case keymap.ActionHelp:
		m.helpOpen = true
		return m, nil

	case keymap.ActionRefreshLibrary:
		return m, m.requestScan(false)

	case keymap.ActionFullRescan:
		m.confirm.Show("Full rescan",
			"Re-read tags for every file in the library?", confirmFullRescan)
		return m, nil

	case keymap.ActionPlayPause:
		if err := m.svc.Toggle(); err != nil {
			return m, m.setError(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case keymap.ActionStop:
		if err := m.svc.Stop(); err != nil {
			return m, m.setError(errmsg.OpPlaybackStop, err)
		}
		return m, nil

	case keymap.ActionNextTrack:
		if err := m.svc.Next(); err != nil {
			return m, m.setError(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case keymap.ActionPrevTrack:
		if err := m.svc.Previous(); err != nil {
			return m, m.setError(errmsg.OpPlaybackStart, err)
		}
		return m, nil

	case keymap.ActionSeekForward:
		m.svc.Seek(seekStep)
		return m, nil

	case keymap.ActionSeekBack:
		m.svc.Seek(-seekStep)
		return m, nil

	case keymap.ActionVolumeUp:
		return m, m.adjustVolume(0.05)

	case keymap.ActionVolumeDown:
		return m, m.adjustVolume(-0.05)

	case keymap.ActionToggleMute:
		m.svc.Player().SetMuted(!m.svc.Player().Muted())
		return m, nil

	case keymap.ActionCycleRepeat:
		m.svc.CycleRepeatMode()
		return m, nil

	case keymap.ActionToggleShuffle:
		m.svc.ToggleShuffle()
		return m, nil

	case keymap.ActionAdd:
		return m, m.addSelection()

	case keymap.ActionUndo:
		m.svc.Undo()
		return m, nil

	case keymap.ActionRedo:
		m.svc.Redo()
		return m, nil
	}

	// Unbound keys go to the focused panel.
	if m.current.Kind == nav.KindQueue {
		var cmd tea.Cmd
		m.queue, cmd = m.queue.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	return m, cmd
}

// handleNavPopped repositions the UI on a history back/forward landing.
// Position emits no location change, so the pop is not re-pushed.
func (m *Model) handleNavPopped(e nav.PopEvent) tea.Cmd {
	m.current = e.State
	if e.State.Kind != nav.KindQueue {
		if err := m.browser.Position(e.State); err != nil {
			return m.setError(errmsg.OpLibraryLoad, err)
		}
	}
	m.setPanelFocus()
	m.saveNavState()
	return nil
}

// toggleQueue switches between the queue view and the browser view, going
// through history so back returns to where the user was.
func (m *Model) toggleQueue() tea.Cmd {
	if m.current.Kind == nav.KindQueue {
		if !m.history.Back() {
			// Nothing to go back to; land on the artist list.
			loc := nav.Location{Kind: nav.KindArtists}
			m.current = loc
			if err := m.browser.Position(loc); err != nil {
				return m.setError(errmsg.OpLibraryLoad, err)
			}
			m.setPanelFocus()
		}
		return nil
	}

	loc := nav.Location{Kind: nav.KindQueue}
	m.current = loc
	m.history.Push(loc, loc.Title(), loc.Path())
	m.queue.CursorToCurrent()
	m.setPanelFocus()
	m.saveNavState()
	return nil
}

func (m *Model) setPanelFocus() {
	onQueue := m.current.Kind == nav.KindQueue
	m.browser.SetFocused(!onQueue)
	m.queue.SetFocused(onQueue)
}

// handleSearchSelected opens or plays the picked search result.
func (m *Model) handleSearchSelected(msg search.SelectedMsg) (tea.Model, tea.Cmd) {
	m.searchOpen = false

	switch {
	case msg.Artist != nil:
		return m, m.openLocation(nav.Location{
			Kind:     nav.KindAlbums,
			ArtistID: msg.Artist.ID,
			Artist:   msg.Artist.Name,
		})

	case msg.Album != nil:
		album, err := m.library.AlbumByID(msg.Album.ID)
		if err != nil {
			return m, m.setError(errmsg.OpLibraryLoad, err)
		}
		return m, m.openLocation(nav.Location{
			Kind:     nav.KindTracks,
			ArtistID: album.ArtistID,
			Artist:   album.Artist,
			AlbumID:  album.ID,
			Album:    album.Title,
		})

	case msg.Track != nil:
		tracks, err := m.library.TracksByAlbum(msg.Track.AlbumID)
		if err != nil {
			return m, m.setError(errmsg.OpLibraryLoad, err)
		}
		index := 0
		for i, t := range tracks {
			if t.ID == msg.Track.ID {
				index = i
				break
			}
		}
		return m, m.playTracks(tracks, index)
	}
	return m, nil
}

// openLocation moves the browser and records the move in history.
func (m *Model) openLocation(loc nav.Location) tea.Cmd {
	if err := m.browser.Position(loc); err != nil {
		return m.setError(errmsg.OpLibraryLoad, err)
	}
	m.current = loc
	m.history.Push(loc, loc.Title(), loc.Path())
	m.setPanelFocus()
	m.saveNavState()
	return nil
}

// playTracks replaces the queue with the given tracks and starts at index.
func (m *Model) playTracks(tracks []library.Track, index int) tea.Cmd {
	m.svc.ReplaceTracks(toPlaybackTracks(tracks)...)
	if err := m.svc.JumpTo(index); err != nil {
		return m.setError(errmsg.OpPlaybackStart, err)
	}
	return nil
}

// addSelection appends the browser selection to the queue.
func (m *Model) addSelection() tea.Cmd {
	if track := m.browser.SelectedTrack(); track != nil {
		m.svc.AddTracks(toPlaybackTracks([]library.Track{*track})...)
		return m.setStatus(fmt.Sprintf("Added %q to queue", track.Title))
	}
	if album := m.browser.SelectedAlbum(); album != nil {
		tracks, err := m.library.TracksByAlbum(album.ID)
		if err != nil {
			return m.setError(errmsg.OpQueueAdd, err)
		}
		m.svc.AddTracks(toPlaybackTracks(tracks)...)
		return m.setStatus(fmt.Sprintf("Added %q to queue", album.Title))
	}
	return nil
}

// handleTrackChanged records the listen and fans out side effects.
func (m *Model) handleTrackChanged(e playback.TrackChange) tea.Cmd {
	if e.Current == nil {
		return nil
	}
	m.listenID = -1
	m.listenStartedAt = time.Now()

	cmds := []tea.Cmd{m.recordListen(*e.Current)}
	if m.scrobbler != nil {
		cmds = append(cmds, m.updateNowPlaying(*e.Current))
	}
	if m.notifier != nil && m.cfg.NotificationsEnabled() {
		cmds = append(cmds, m.notifyTrack(*e.Current))
	}
	return tea.Batch(cmds...)
}

// handleTrackCompleted closes out the listen for a track that played through.
func (m *Model) handleTrackCompleted(e playback.TrackComplete) tea.Cmd {
	if m.listenID < 0 || m.listenTrackID != e.Track.ID {
		return nil
	}
	listenID := m.listenID
	m.listenID = -1
	return m.completeListen(listenID, e.Track, m.listenStartedAt)
}

// requestScan starts a scan unless one is already running.
func (m *Model) requestScan(force bool) tea.Cmd {
	if m.scanning {
		return nil
	}
	if !m.cfg.HasLibraryRoots() {
		return m.setStatus("No library roots configured")
	}
	return m.startScan(force)
}

func (m *Model) handleScanFinished(err error) tea.Cmd {
	m.scanning = false
	stats := m.scanProgress.Stats
	m.scanProgress = library.ScanProgress{}

	if err != nil {
		return m.setError(errmsg.OpLibraryScan, err)
	}

	if s, statErr := m.library.Stats(); statErr == nil {
		m.stats = s
	}
	m.enqueueMissingThumbs()
	if reloadErr := m.browser.Reload(); reloadErr != nil {
		return m.setError(errmsg.OpLibraryLoad, reloadErr)
	}

	if stats != nil {
		return m.setStatus(fmt.Sprintf(
			"Scan finished: %d added, %d updated, %d removed",
			stats.Added, stats.Updated, stats.Removed))
	}
	return m.setStatus("Scan finished")
}

// enqueueMissingThumbs queues thumbnail generation for albums that have
// cover art but no cached thumbnail yet.
func (m *Model) enqueueMissingThumbs() {
	if m.thumbs == nil {
		return
	}
	albums, err := m.library.Albums()
	if err != nil {
		return
	}
	for _, a := range albums {
		if a.CoverPath == "" {
			continue
		}
		if _, ok := m.thumbs.Path(a.ID); !ok {
			m.thumbs.Enqueue(a.ID, a.CoverPath)
		}
	}
}

// adjustVolume changes the volume and persists the new level.
func (m *Model) adjustVolume(delta float64) tea.Cmd {
	p := m.svc.Player()
	p.SetVolume(p.Volume() + delta)
	m.saveQueueState()
	return nil
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	return clearStatusAfter(m.statusSeq)
}

func (m *Model) setError(op errmsg.Op, err error) tea.Cmd {
	return m.setStatus(errmsg.Format(op, err))
}

// layout distributes the window between the panels.
func (m *Model) layout() {
	panelHeight := max(m.height-headerHeight-playerbar.Height-statusHeight, 3)
	m.browser.SetSize(m.width, panelHeight)
	m.queue.SetSize(m.width, panelHeight)
	m.search.SetSize(m.width, m.height)
	m.confirm.SetSize(m.width, m.height)
	m.help.SetSize(m.width, m.height)
}
