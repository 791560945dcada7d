package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/test99500/musium/internal/library"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(func(_ context.Context, _ string) (*library.SearchResult, error) {
		return &library.SearchResult{}, nil
	})
	m.SetSize(100, 40)
	m.Focus()
	return m
}

// typeString feeds runes through Update one at a time, the way a terminal
// would. Each rune issues a new request, so seq advances by one per rune.
func typeString(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func resultMsg(seq uint64, query string, res *library.SearchResult) QueryResultMsg {
	return QueryResultMsg{Seq: seq, Query: query, Result: res}
}

func TestEmptyResultRendersNoHeadings(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "zzz")
	m, _ = m.Update(resultMsg(3, "zzz", &library.SearchResult{}))

	view := m.View()
	for _, heading := range []string{"Artists", "Albums", "Tracks"} {
		if strings.Contains(view, heading) {
			t.Errorf("empty result must not render heading %q", heading)
		}
	}
	if !strings.Contains(view, "No matches") {
		t.Error("expected No matches placeholder for empty result")
	}
}

func TestSingleGroupRendersSingleHeading(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "kob")
	m, _ = m.Update(resultMsg(3, "kob", &library.SearchResult{
		Albums: []library.SearchAlbum{{ID: 1, Title: "Kind of Blue", Artist: "Miles Davis", Date: "1959-08-17"}},
	}))

	view := m.View()
	if !strings.Contains(view, "Albums") {
		t.Error("expected Albums heading")
	}
	if strings.Contains(view, "Artists") || strings.Contains(view, "Tracks") {
		t.Error("empty groups must not render headings")
	}
}

func TestGroupsRenderInFixedOrder(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "xyz")
	m, _ = m.Update(resultMsg(3, "xyz", &library.SearchResult{
		Artists: []library.SearchArtist{{ID: 1, Name: "Miles Davis", Albums: []int64{1, 2}}},
		Albums:  []library.SearchAlbum{{ID: 1, Title: "Kind of Blue", Artist: "Miles Davis", Date: "1959"}},
		Tracks:  []library.SearchTrack{{ID: 1, Title: "So What", Artist: "Miles Davis", AlbumID: 1, Album: "Kind of Blue"}},
	}))

	view := m.View()
	artists := strings.Index(view, "Artists")
	albums := strings.Index(view, "Albums")
	tracks := strings.Index(view, "Tracks")
	if artists < 0 || albums < 0 || tracks < 0 {
		t.Fatalf("missing headings: artists=%d albums=%d tracks=%d", artists, albums, tracks)
	}
	if !(artists < albums && albums < tracks) {
		t.Errorf("headings out of order: artists=%d albums=%d tracks=%d", artists, albums, tracks)
	}
}

func TestAlbumYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2020-05-17", "2020"},
		{"1959-08-17", "1959"},
		{"1959", "1959"},
		{"59", "59"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := albumYear(tt.date); got != tt.want {
			t.Errorf("albumYear(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestAlbumRowShowsTitleArtistYear(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "miles")
	m, _ = m.Update(resultMsg(5, "miles", &library.SearchResult{
		Albums: []library.SearchAlbum{{ID: 1, Title: "Kind of Blue", Artist: "Miles Davis", Date: "1959-08-17"}},
	}))

	view := m.View()
	for _, want := range []string{"Albums", "Kind of Blue", "Miles Davis", "(1959)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStaleResultIgnored(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "ab") // "a" issued seq 1, "ab" issued seq 2

	// The newer query resolves first, the older one afterwards.
	m, _ = m.Update(resultMsg(2, "ab", &library.SearchResult{
		Tracks: []library.SearchTrack{{ID: 2, Title: "ab match", Artist: "X", Album: "Y"}},
	}))
	m, _ = m.Update(resultMsg(1, "a", &library.SearchResult{
		Tracks: []library.SearchTrack{{ID: 1, Title: "a match", Artist: "X", Album: "Y"}},
	}))

	view := m.View()
	if !strings.Contains(view, "ab match") {
		t.Error("expected the newest query's results to be displayed")
	}
	if strings.Contains(view, "a match") {
		t.Error("stale result must be ignored")
	}
}

func TestFailurePreservesResults(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "abc")
	m, _ = m.Update(resultMsg(3, "abc", &library.SearchResult{
		Tracks: []library.SearchTrack{{ID: 1, Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue"}},
	}))

	m = typeString(m, "d")
	m, _ = m.Update(QueryResultMsg{Seq: 4, Query: "abcd", Err: errors.New("db locked")})

	view := m.View()
	if !strings.Contains(view, "So What") {
		t.Error("failed query must preserve the previous results")
	}
	if !strings.Contains(view, "search failed") {
		t.Error("expected the failure indicator in the footer")
	}

	// The indicator clears on the next applied result.
	m = typeString(m, "e")
	m, _ = m.Update(resultMsg(5, "abcde", &library.SearchResult{}))
	if strings.Contains(m.View(), "search failed") {
		t.Error("failure indicator must clear on the next applied result")
	}
}

func TestStaleFailureIgnored(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "ab")
	m, _ = m.Update(resultMsg(2, "ab", &library.SearchResult{
		Tracks: []library.SearchTrack{{ID: 1, Title: "keeper", Artist: "X", Album: "Y"}},
	}))

	m, _ = m.Update(QueryResultMsg{Seq: 1, Query: "a", Err: errors.New("canceled")})
	if m.failed {
		t.Error("stale failure must not set the indicator")
	}
	if !strings.Contains(m.View(), "keeper") {
		t.Error("stale failure must not disturb results")
	}
}

func TestEmptyQueryClearsWithoutSearching(t *testing.T) {
	called := false
	m := New(func(_ context.Context, _ string) (*library.SearchResult, error) {
		called = true
		return &library.SearchResult{}, nil
	})
	m.SetSize(100, 40)
	m.Focus()

	m = typeString(m, "a")
	m, _ = m.Update(resultMsg(1, "a", &library.SearchResult{
		Tracks: []library.SearchTrack{{ID: 1, Title: "gone", Artist: "X", Album: "Y"}},
	}))

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if cmd != nil {
		cmd() // a command may remain for the input cursor, never a search
	}
	if called {
		// typeString's cmds were never executed, so any call is from clearing
		t.Error("empty query must not call the search function")
	}
	if len(m.rows) != 0 {
		t.Error("empty query must clear the results")
	}
	if !strings.Contains(m.View(), "Type to search") {
		t.Error("expected the idle placeholder after clearing")
	}
}

func TestCursorSkipsHeadings(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "xyz")
	m, _ = m.Update(resultMsg(3, "xyz", &library.SearchResult{
		Artists: []library.SearchArtist{{ID: 1, Name: "A1"}, {ID: 2, Name: "A2"}},
		Albums:  []library.SearchAlbum{{ID: 1, Title: "B1", Artist: "A1"}, {ID: 2, Title: "B2", Artist: "A2"}},
	}))

	// rows: heading, artist, artist, heading, album, album
	if m.cursor != 1 {
		t.Fatalf("initial cursor = %d, expected first artist row", m.cursor)
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	m, _ = m.Update(down)
	if m.cursor != 2 {
		t.Errorf("cursor = %d, expected 2", m.cursor)
	}
	m, _ = m.Update(down)
	if m.cursor != 4 {
		t.Errorf("cursor = %d, expected heading skipped to 4", m.cursor)
	}
	m, _ = m.Update(down)
	m, _ = m.Update(down)
	if m.cursor != 5 {
		t.Errorf("cursor = %d, expected to stop at last row", m.cursor)
	}
	m, _ = m.Update(up)
	if m.cursor != 4 {
		t.Errorf("cursor = %d, expected 4", m.cursor)
	}
}

func TestEnterEmitsSelection(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "xyz")
	m, _ = m.Update(resultMsg(3, "xyz", &library.SearchResult{
		Albums: []library.SearchAlbum{{ID: 7, Title: "Kind of Blue", Artist: "Miles Davis", Date: "1959"}},
	}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a selection command")
	}
	sel, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if sel.Album == nil || sel.Album.ID != 7 {
		t.Errorf("unexpected selection: %+v", sel)
	}
	if sel.Artist != nil || sel.Track != nil {
		t.Error("exactly one selection field must be set")
	}
}

func TestEnterWithNoResultsDoesNothing(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter with no results must not emit a selection")
	}
}

func TestEscapeCancels(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a cancel command")
	}
	if _, ok := cmd().(CanceledMsg); !ok {
		t.Errorf("expected CanceledMsg, got %T", cmd())
	}
}

func TestResetInvalidatesInFlight(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "abc") // seq 3 in flight
	m.Reset()                // seq 4

	m, _ = m.Update(resultMsg(3, "abc", &library.SearchResult{
		Tracks: []library.SearchTrack{{ID: 1, Title: "late", Artist: "X", Album: "Y"}},
	}))
	if len(m.rows) != 0 {
		t.Error("a result from before Reset must not apply")
	}
	if m.Query() != "" {
		t.Errorf("query = %q, expected empty after Reset", m.Query())
	}
}
