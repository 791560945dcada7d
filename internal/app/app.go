// Package app wires the application together: the library, playback service,
// navigation history and UI panels, under a single bubbletea model.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/browser"
	"github.com/test99500/musium/internal/config"
	"github.com/test99500/musium/internal/errmsg"
	"github.com/test99500/musium/internal/keymap"
	"github.com/test99500/musium/internal/lastfm"
	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/mpris"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/notify"
	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/player"
	"github.com/test99500/musium/internal/playlist"
	"github.com/test99500/musium/internal/search"
	"github.com/test99500/musium/internal/state"
	"github.com/test99500/musium/internal/thumbs"
	"github.com/test99500/musium/internal/ui/confirm"
	"github.com/test99500/musium/internal/ui/helpbindings"
	"github.com/test99500/musium/internal/ui/queuepanel"
)

// Model is the root application model.
type Model struct {
	cfg      *config.Config
	library  *library.Library
	stateMgr *state.Manager

	svc         playback.Service
	playbackSub *playback.Subscription

	history *nav.History
	navSub  *nav.Subscription

	notifier  notify.Notifier
	notifyID  uint32
	remote    *mpris.Adapter // nil when D-Bus registration failed
	thumbs    *thumbs.Generator
	scrobbler *lastfm.Client // nil when not configured

	browser  browser.Model
	queue    queuepanel.Model
	search   search.Model
	confirm  confirm.Model
	help     helpbindings.Model
	resolver *keymap.Resolver

	current    nav.Location
	searchOpen bool
	helpOpen   bool

	// Listen row recorded for the playing track.
	listenID        int64
	listenTrackID   int64
	listenStartedAt time.Time

	scanning     bool
	scanProgress library.ScanProgress
	scanCh       <-chan library.ScanProgress
	scanErrCh    <-chan error

	status    string
	statusSeq uint64

	stats library.Stats

	width  int
	height int
}

// New builds the application from its configuration, restoring the previous
// session's queue, view and player settings.
func New(cfg *config.Config) (*Model, error) {
	lib, err := library.Open()
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpLibraryOpen, err)
	}

	stateMgr, err := state.Open()
	if err != nil {
		lib.Close()
		return nil, errmsg.Wrap(errmsg.OpInitialize, err)
	}

	queue := playlist.NewPlayingQueue()
	svc := playback.New(player.NewMpv(cfg.PlayerCommand()), queue)

	notifier, err := notify.New()
	if err != nil {
		notifier = nil
	}

	gen, err := thumbs.NewGenerator()
	if err != nil {
		gen = nil
	}

	var scrobbler *lastfm.Client
	if cfg.HasLastfmConfig() {
		scrobbler = lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		scrobbler.SetSessionKey(cfg.Lastfm.SessionKey)
	}

	history := nav.NewHistory()

	m := &Model{
		cfg:       cfg,
		library:   lib,
		stateMgr:  stateMgr,
		svc:       svc,
		history:   history,
		notifier:  notifier,
		thumbs:    gen,
		scrobbler: scrobbler,
		browser:   browser.New(lib),
		queue:     queuepanel.New(),
		search:    search.New(lib.Search),
		confirm:   confirm.New(),
		help:      helpbindings.New(),
		resolver:  keymap.NewResolver(cfg.Keys),
		current:   nav.Location{Kind: nav.KindArtists},
		listenID:  -1,
	}

	m.playbackSub = svc.Subscribe()
	m.navSub = history.Subscribe()

	if remote, err := mpris.New(svc); err == nil {
		m.remote = remote
	}

	if err := m.restoreSession(); err != nil {
		m.Close()
		return nil, errmsg.Wrap(errmsg.OpStateRestore, err)
	}

	if stats, err := lib.Stats(); err == nil {
		m.stats = stats
	}

	m.browser.SetFocused(true)
	return m, nil
}

// restoreSession loads the saved queue, player settings and view.
func (m *Model) restoreSession() error {
	playerState, err := m.stateMgr.GetPlayer()
	if err != nil {
		return err
	}
	if playerState == nil {
		playerState = &state.PlayerState{Volume: m.cfg.PlayerVolume(), QueueIndex: -1}
	}
	m.svc.Player().SetVolume(float64(playerState.Volume) / 100)
	m.svc.SetShuffle(playerState.Shuffle)

	ids, err := m.stateMgr.GetQueue()
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		tracks, err := m.library.TracksByIDs(ids)
		if err != nil {
			return err
		}
		m.svc.AddTracks(toPlaybackTracks(tracks)...)
		if playerState.QueueIndex >= 0 {
			m.svc.QueueMoveTo(playerState.QueueIndex)
		}
	}
	m.queue.SetQueue(m.svc.QueueTracks(), m.svc.QueueCurrentIndex())
	m.queue.SetModes(m.svc.RepeatMode(), m.svc.Shuffle())

	navState, err := m.stateMgr.GetNavigation()
	if err != nil {
		return err
	}
	if navState != nil {
		loc := locationFromState(navState)
		// A saved location may point at rows removed by a rescan; fall back
		// to the artist list when it no longer loads.
		if err := m.browser.Position(loc); err == nil {
			m.current = loc
		} else {
			loc = nav.Location{Kind: nav.KindArtists}
			if err := m.browser.Position(loc); err != nil {
				return err
			}
			m.current = loc
		}
	} else {
		if err := m.browser.Reload(); err != nil {
			return err
		}
	}
	m.history.Push(m.current, m.current.Title(), m.current.Path())
	return nil
}

// Init starts the event pumps and drains the scrobble backlog.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForNavEvent(m.navSub),
		waitForTrackChange(m.playbackSub),
		waitForTrackComplete(m.playbackSub),
		waitForQueueChange(m.playbackSub),
		waitForModeChange(m.playbackSub),
		waitForStateChange(m.playbackSub),
		waitForPlaybackError(m.playbackSub),
	}
	if m.scrobbler != nil {
		cmds = append(cmds, m.drainScrobbleBacklog())
	}
	if m.svc.IsPlaying() {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

// Close releases every resource the model owns. Pending navigation state is
// flushed on the way out.
func (m *Model) Close() {
	m.saveQueueState()
	if m.remote != nil {
		m.remote.Close()
	}
	m.navSub.Unsubscribe()
	m.history.Close()
	m.svc.Close()
	if m.thumbs != nil {
		m.thumbs.Close()
	}
	m.stateMgr.Close()
	m.library.Close()
}

// saveQueueState persists the queue contents and player settings.
func (m *Model) saveQueueState() {
	_ = m.stateMgr.SaveQueue(m.svc.QueueIDs())
	_ = m.stateMgr.SavePlayer(state.PlayerState{
		Volume:     int(m.svc.Player().Volume() * 100),
		Shuffle:    m.svc.Shuffle(),
		QueueIndex: m.svc.QueueCurrentIndex(),
	})
}

// saveNavState schedules a debounced write of the current location.
func (m *Model) saveNavState() {
	m.stateMgr.SaveNavigation(stateFromLocation(m.current))
}

func locationFromState(s *state.NavState) nav.Location {
	return nav.Location{
		Kind:     nav.Kind(s.Kind),
		ArtistID: s.ArtistID,
		Artist:   s.Artist,
		AlbumID:  s.AlbumID,
		Album:    s.Album,
	}
}

func stateFromLocation(loc nav.Location) state.NavState {
	return state.NavState{
		Kind:     int(loc.Kind),
		ArtistID: loc.ArtistID,
		Artist:   loc.Artist,
		AlbumID:  loc.AlbumID,
		Album:    loc.Album,
	}
}

func toPlaybackTracks(tracks []library.Track) []playback.Track {
	out := make([]playback.Track, len(tracks))
	for i, t := range tracks {
		out[i] = playback.Track{
			ID:          t.ID,
			AlbumID:     t.AlbumID,
			Path:        t.Path,
			Title:       t.Title,
			Artist:      t.Artist,
			Album:       t.Album,
			TrackNumber: t.TrackNumber,
			Duration:    t.Duration,
		}
	}
	return out
}
