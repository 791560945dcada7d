package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/browser"
	"github.com/test99500/musium/internal/config"
	"github.com/test99500/musium/internal/db"
	"github.com/test99500/musium/internal/keymap"
	"github.com/test99500/musium/internal/library"
	"github.com/test99500/musium/internal/nav"
	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/player"
	"github.com/test99500/musium/internal/playlist"
	"github.com/test99500/musium/internal/search"
	"github.com/test99500/musium/internal/state"
	"github.com/test99500/musium/internal/ui/confirm"
	"github.com/test99500/musium/internal/ui/helpbindings"
	"github.com/test99500/musium/internal/ui/queuepanel"
)

// newTestApp assembles a model around an in-memory library and a mock
// player, bypassing New so no real databases or processes are touched.
func newTestApp(t *testing.T) *Model {
	t.Helper()

	libDB, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open library db: %v", err)
	}
	lib, err := library.New(libDB)
	if err != nil {
		t.Fatalf("init library: %v", err)
	}
	t.Cleanup(func() { lib.Close() })

	exec := func(query string, args ...any) {
		t.Helper()
		if _, err := libDB.Exec(query, args...); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	exec(`INSERT INTO artists (id, name, sort_name) VALUES (1, 'Miles Davis', 'Miles Davis')`)
	exec(`INSERT INTO albums (id, artist_id, title, date) VALUES (10, 1, 'Kind of Blue', '1959')`)
	exec(`INSERT INTO tracks (id, album_id, path, mtime, title, artist, track_number, added_at, updated_at)
		VALUES (100, 10, '/m/01.flac', 1, 'So What', 'Miles Davis', 1, 1, 1)`)
	exec(`INSERT INTO tracks (id, album_id, path, mtime, title, artist, track_number, added_at, updated_at)
		VALUES (101, 10, '/m/02.flac', 1, 'Freddie Freeloader', 'Miles Davis', 2, 1, 1)`)

	stateDB, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	stateMgr, err := state.New(stateDB)
	if err != nil {
		t.Fatalf("init state: %v", err)
	}
	t.Cleanup(func() { stateMgr.Close() })

	svc := playback.New(player.NewMock(), playlist.NewPlayingQueue())
	t.Cleanup(func() { svc.Close() })

	history := nav.NewHistory()
	cfg := &config.Config{}

	m := &Model{
		cfg:      cfg,
		library:  lib,
		stateMgr: stateMgr,
		svc:      svc,
		history:  history,
		browser:  browser.New(lib),
		queue:    queuepanel.New(),
		search:   search.New(lib.Search),
		confirm:  confirm.New(),
		help:     helpbindings.New(),
		resolver: keymap.NewResolver(cfg.Keys),
		current:  nav.Location{Kind: nav.KindArtists},
		listenID: -1,
	}
	m.playbackSub = svc.Subscribe()
	m.navSub = history.Subscribe()
	t.Cleanup(func() {
		m.navSub.Unsubscribe()
		history.Close()
	})

	if err := m.browser.Reload(); err != nil {
		t.Fatalf("browser reload: %v", err)
	}
	history.Push(m.current, m.current.Title(), m.current.Path())
	m.browser.SetFocused(true)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestLocationChangePushesHistory(t *testing.T) {
	m := newTestApp(t)

	loc := nav.Location{Kind: nav.KindAlbums, ArtistID: 1, Artist: "Miles Davis"}
	m.Update(browser.LocationChangedMsg{Location: loc})

	if m.current != loc {
		t.Errorf("current = %+v, want %+v", m.current, loc)
	}
	entry, ok := m.history.Current()
	if !ok || entry.State != loc {
		t.Errorf("history head = %+v, want %+v", entry.State, loc)
	}
	if !m.history.CanBack() {
		t.Error("expected a back entry after a location change")
	}
}

func TestNavPopRepositionsWithoutRePush(t *testing.T) {
	m := newTestApp(t)

	loc := nav.Location{Kind: nav.KindAlbums, ArtistID: 1, Artist: "Miles Davis"}
	m.Update(browser.LocationChangedMsg{Location: loc})
	depth := m.history.Len()

	if !m.history.Back() {
		t.Fatal("expected back to succeed")
	}
	e := <-m.navSub.Events
	m.Update(navPoppedMsg{event: e})

	if m.current.Kind != nav.KindArtists {
		t.Errorf("current = %+v, want artists", m.current)
	}
	if m.browser.Location().Kind != nav.KindArtists {
		t.Errorf("browser = %+v, want artists", m.browser.Location())
	}
	if m.history.Len() != depth {
		t.Errorf("history grew to %d entries on a pop, want %d", m.history.Len(), depth)
	}
}

func TestToggleQueuePushesAndBackReturns(t *testing.T) {
	m := newTestApp(t)

	m.toggleQueue()
	if m.current.Kind != nav.KindQueue {
		t.Fatalf("current = %+v, want queue", m.current)
	}
	if m.browser.IsFocused() || !m.queue.IsFocused() {
		t.Error("focus should move to the queue panel")
	}

	// Toggling again goes back through history to the previous view.
	m.toggleQueue()
	e := <-m.navSub.Events
	m.Update(navPoppedMsg{event: e})
	if m.current.Kind != nav.KindArtists {
		t.Errorf("current = %+v, want artists", m.current)
	}
	if !m.browser.IsFocused() || m.queue.IsFocused() {
		t.Error("focus should return to the browser")
	}
}

func TestPlayRequestStartsQueue(t *testing.T) {
	m := newTestApp(t)

	tracks, err := m.library.TracksByAlbum(10)
	if err != nil {
		t.Fatalf("TracksByAlbum: %v", err)
	}
	m.Update(browser.PlayRequestMsg{Tracks: tracks, Index: 1})

	if m.svc.QueueLen() != 2 {
		t.Errorf("queue length = %d, want 2", m.svc.QueueLen())
	}
	current := m.svc.CurrentTrack()
	if current == nil || current.Title != "Freddie Freeloader" {
		t.Errorf("current track = %+v, want Freddie Freeloader", current)
	}
	if !m.svc.IsPlaying() {
		t.Error("expected playback to start")
	}
}

func TestSearchSelectionOpensAlbum(t *testing.T) {
	m := newTestApp(t)
	m.searchOpen = true

	m.Update(search.SelectedMsg{Album: &library.SearchAlbum{ID: 10, Title: "Kind of Blue", Artist: "Miles Davis"}})

	if m.searchOpen {
		t.Error("search should close on selection")
	}
	want := nav.Location{Kind: nav.KindTracks, ArtistID: 1, Artist: "Miles Davis", AlbumID: 10, Album: "Kind of Blue"}
	if m.current != want {
		t.Errorf("current = %+v, want %+v", m.current, want)
	}
	entry, _ := m.history.Current()
	if entry.State != want {
		t.Errorf("history head = %+v, want %+v", entry.State, want)
	}
}

func TestSearchSelectionPlaysTrack(t *testing.T) {
	m := newTestApp(t)
	m.searchOpen = true

	m.Update(search.SelectedMsg{Track: &library.SearchTrack{ID: 101, Title: "Freddie Freeloader", AlbumID: 10}})

	current := m.svc.CurrentTrack()
	if current == nil || current.ID != 101 {
		t.Errorf("current track = %+v, want ID 101", current)
	}
	if m.svc.QueueLen() != 2 {
		t.Errorf("queue should hold the whole album, got %d tracks", m.svc.QueueLen())
	}
}

func TestQueueJumpAndRemove(t *testing.T) {
	m := newTestApp(t)

	tracks, _ := m.library.TracksByAlbum(10)
	m.svc.AddTracks(toPlaybackTracks(tracks)...)

	m.Update(queuepanel.JumpToTrackMsg{Index: 1})
	if current := m.svc.CurrentTrack(); current == nil || current.ID != 101 {
		t.Errorf("current = %+v, want ID 101", current)
	}

	m.Update(queuepanel.RemoveTrackMsg{Index: 0})
	if m.svc.QueueLen() != 1 {
		t.Errorf("queue length = %d, want 1", m.svc.QueueLen())
	}
}

func TestTrackChangeRecordsListen(t *testing.T) {
	m := newTestApp(t)

	tracks, _ := m.library.TracksByAlbum(10)
	pb := toPlaybackTracks(tracks)
	cmd := m.handleTrackChanged(playback.TrackChange{Current: &pb[0], Index: 0})
	if cmd == nil {
		t.Fatal("expected listen recording command")
	}

	// Execute the batched commands and feed results back like the runtime.
	drainCmd(t, m, cmd)

	if m.listenID < 0 {
		t.Error("listen ID not recorded")
	}
	if m.listenTrackID != 100 {
		t.Errorf("listen track = %d, want 100", m.listenTrackID)
	}

	listens, err := m.library.RecentListens(10)
	if err != nil {
		t.Fatalf("RecentListens: %v", err)
	}
	if len(listens) != 1 || listens[0].Title != "So What" {
		t.Errorf("listens = %+v, want one for So What", listens)
	}
}

func TestTrackCompleteMarksListen(t *testing.T) {
	m := newTestApp(t)

	tracks, _ := m.library.TracksByAlbum(10)
	pb := toPlaybackTracks(tracks)
	drainCmd(t, m, m.handleTrackChanged(playback.TrackChange{Current: &pb[0], Index: 0}))

	drainCmd(t, m, m.handleTrackCompleted(playback.TrackComplete{Track: pb[0], Index: 0}))

	counts, err := m.library.ListenCounts()
	if err != nil {
		t.Fatalf("ListenCounts: %v", err)
	}
	if counts[100] != 1 {
		t.Errorf("completed listens for track 100 = %d, want 1", counts[100])
	}
}

func TestStatusClearedOnlyByLatestTimer(t *testing.T) {
	m := newTestApp(t)

	m.setStatus("first")
	firstSeq := m.statusSeq
	m.setStatus("second")

	m.Update(statusClearMsg{seq: firstSeq})
	if m.status != "second" {
		t.Errorf("stale timer cleared newer status, got %q", m.status)
	}

	m.Update(statusClearMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Errorf("status not cleared, got %q", m.status)
	}
}

func TestViewComposition(t *testing.T) {
	m := newTestApp(t)

	view := m.View()
	if !strings.Contains(view, "Musium") {
		t.Error("expected header in view")
	}
	if !strings.Contains(view, "Miles Davis") {
		t.Error("expected artist list in view")
	}
	if !strings.Contains(view, "Nothing playing") {
		t.Error("expected idle player bar in view")
	}

	m.toggleQueue()
	view = m.View()
	if !strings.Contains(view, "Queue (0/0)") {
		t.Errorf("expected queue panel after toggle, got:\n%s", view)
	}
}

func TestFullRescanAsksForConfirmation(t *testing.T) {
	m := newTestApp(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")})
	if !m.confirm.Active() {
		t.Fatal("expected confirmation dialog for full rescan")
	}

	// Declining leaves the library alone.
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a result command")
	}
	if _, next := m.Update(cmd()); next != nil {
		t.Error("declined rescan should not start a scan")
	}
	if m.scanning {
		t.Error("scan started despite declining")
	}
}

func TestHelpOpensAndCloses(t *testing.T) {
	m := newTestApp(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.helpOpen {
		t.Fatal("expected help popup to open")
	}
	view := m.View()
	if !strings.Contains(view, "Help") {
		t.Error("expected help overlay in view")
	}

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(cmd())
	if m.helpOpen {
		t.Error("expected help popup to close")
	}
}

// drainCmd runs a command tree, feeding produced messages back into Update.
func drainCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drainCmd(t, m, c)
		}
		return
	}
	_, next := m.Update(msg)
	drainCmd(t, m, next)
}
