package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/test99500/musium/internal/tags"
)

func TestUpsertTrack_Update(t *testing.T) {
	lib := setupTestLibrary(t)

	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "", "So Whta", 1, "/music/miles/kob/01.flac")

	// Re-scan with corrected title and a date
	meta := &tags.Metadata{
		Path:        "/music/miles/kob/01.flac",
		Title:       "So What",
		Artist:      "Miles Davis",
		AlbumArtist: "Miles Davis",
		Album:       "Kind of Blue",
		Date:        "1959-08-17",
		TrackNumber: 1,
	}
	if err := lib.upsertTrack(meta, 2000, 1<<20); err != nil {
		t.Fatalf("upsertTrack failed: %v", err)
	}

	stats, err := lib.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Tracks != 1 || stats.Albums != 1 || stats.Artists != 1 {
		t.Errorf("expected no duplicate rows, got %+v", stats)
	}

	track, err := lib.TrackByPath("/music/miles/kob/01.flac")
	if err != nil {
		t.Fatalf("TrackByPath failed: %v", err)
	}
	if track.Title != "So What" {
		t.Errorf("title = %s, expected corrected title", track.Title)
	}
	if track.Mtime != 2000 {
		t.Errorf("mtime = %d, expected 2000", track.Mtime)
	}

	album, err := lib.AlbumByID(track.AlbumID)
	if err != nil {
		t.Fatalf("AlbumByID failed: %v", err)
	}
	if album.Date != "1959-08-17" {
		t.Errorf("album date = %s, expected date filled in on rescan", album.Date)
	}
}

func TestUpsertTrack_DateNotClearedByUndatedTrack(t *testing.T) {
	lib := setupTestLibrary(t)

	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "1959-08-17", "So What", 1, "/music/miles/kob/01.flac")
	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "", "Freddie Freeloader", 2, "/music/miles/kob/02.flac")

	albums, err := lib.Albums()
	if err != nil {
		t.Fatalf("Albums failed: %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("expected 1 album, got %d", len(albums))
	}
	if albums[0].Date != "1959-08-17" {
		t.Errorf("album date = %q, undated track must not clear it", albums[0].Date)
	}
}

func TestUpsertTrack_CoverPathKeepsFirstTrack(t *testing.T) {
	lib := setupTestLibrary(t)

	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "1959", "So What", 1, "/music/miles/kob/01.flac")
	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "1959", "Freddie Freeloader", 2, "/music/miles/kob/02.flac")

	albums, err := lib.Albums()
	if err != nil {
		t.Fatalf("Albums failed: %v", err)
	}
	if albums[0].CoverPath != "/music/miles/kob/01.flac" {
		t.Errorf("cover path = %s, expected first track's path", albums[0].CoverPath)
	}
}

func TestDeleteAndPrune(t *testing.T) {
	lib := setupTestLibrary(t)

	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "1959", "So What", 1, "/music/miles/kob/01.flac")
	seedTrack(t, lib, "Pink Floyd", "The Wall", "1979", "Another Brick", 1, "/music/pink/wall/01.flac")

	if err := lib.deleteTrackByPath("/music/pink/wall/01.flac"); err != nil {
		t.Fatalf("deleteTrackByPath failed: %v", err)
	}
	if err := lib.pruneEmpty(); err != nil {
		t.Fatalf("pruneEmpty failed: %v", err)
	}

	stats, err := lib.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Tracks != 1 || stats.Albums != 1 || stats.Artists != 1 {
		t.Errorf("expected orphaned album and artist pruned, got %+v", stats)
	}

	// Deleting a missing path reports an error, pruning stays safe
	if err := lib.deleteTrackByPath("/music/pink/wall/01.flac"); err == nil {
		t.Error("expected error deleting already-deleted track")
	}
}

func TestExistingTracks_RootBoundary(t *testing.T) {
	lib := setupTestLibrary(t)

	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "1959", "So What", 1, "/music/a/kob/01.flac")
	seedTrack(t, lib, "Pink Floyd", "The Wall", "1979", "Another Brick", 1, "/music/ab/wall/01.flac")

	// /music/a must not claim tracks under the sibling /music/ab
	existing, err := lib.existingTracks([]string{"/music/a"})
	if err != nil {
		t.Fatalf("existingTracks failed: %v", err)
	}
	if _, ok := existing["/music/a/kob/01.flac"]; !ok {
		t.Error("track under root not matched")
	}
	if _, ok := existing["/music/ab/wall/01.flac"]; ok {
		t.Error("track under sibling directory wrongly matched")
	}
}

func TestRefresh_RemovesDeletedFiles(t *testing.T) {
	lib := setupTestLibrary(t)
	root := t.TempDir()

	// Seed a track whose file does not exist under the scanned root
	gone := filepath.Join(root, "gone.flac")
	seedTrack(t, lib, "Miles Davis", "Kind of Blue", "1959", "So What", 1, gone)

	progress := make(chan ScanProgress, 64)
	done := make(chan error, 1)
	go func() { done <- lib.Refresh([]string{root}, progress) }()

	var phases []string
	for p := range progress {
		if len(phases) == 0 || phases[len(phases)-1] != p.Phase {
			phases = append(phases, p.Phase)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if phases[len(phases)-1] != "done" {
		t.Errorf("last phase = %s, expected done", phases[len(phases)-1])
	}

	stats, err := lib.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Tracks != 0 {
		t.Errorf("expected deleted file removed from library, got %d tracks", stats.Tracks)
	}
}

func TestRefresh_SkipsUnreadableFiles(t *testing.T) {
	lib := setupTestLibrary(t)
	root := t.TempDir()

	// Empty files have no readable tags and should be skipped without error
	for _, name := range []string{"a.mp3", "b.flac", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	progress := make(chan ScanProgress, 64)
	done := make(chan error, 1)
	go func() { done <- lib.Refresh([]string{root}, progress) }()
	for range progress {
	}
	if err := <-done; err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	stats, err := lib.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Tracks != 0 {
		t.Errorf("expected no tracks from unreadable files, got %d", stats.Tracks)
	}
}
