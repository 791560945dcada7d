package lastfm

import (
	"errors"
	"testing"
	"time"

	"github.com/test99500/musium/internal/library"
)

func TestRequiresAuthentication(t *testing.T) {
	c := New("key", "secret")

	track := ScrobbleTrack{Artist: "Miles Davis", Track: "So What"}
	if err := c.UpdateNowPlaying(track); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("UpdateNowPlaying err = %v, want ErrNotAuthenticated", err)
	}
	if err := c.Scrobble(track); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Scrobble err = %v, want ErrNotAuthenticated", err)
	}
	if err := c.ScrobbleBatch([]ScrobbleTrack{track}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("ScrobbleBatch err = %v, want ErrNotAuthenticated", err)
	}
}

func TestParams(t *testing.T) {
	c := New("key", "secret")
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := c.params(ScrobbleTrack{
		Artist:      "Miles Davis",
		Track:       "So What",
		Album:       "Kind of Blue",
		AlbumArtist: "Miles Davis", // same as artist, omitted
		Duration:    9 * time.Minute,
		Timestamp:   started,
	}, true)

	if p["artist"] != "Miles Davis" || p["track"] != "So What" || p["album"] != "Kind of Blue" {
		t.Errorf("unexpected params: %v", p)
	}
	if p["timestamp"] != started.Unix() {
		t.Errorf("timestamp = %v, want %d", p["timestamp"], started.Unix())
	}
	if p["duration"] != 540 {
		t.Errorf("duration = %v, want 540", p["duration"])
	}
	if _, ok := p["albumArtist"]; ok {
		t.Error("albumArtist equal to artist must be omitted")
	}

	p = c.params(ScrobbleTrack{Artist: "Miles Davis", Track: "So What"}, false)
	if _, ok := p["timestamp"]; ok {
		t.Error("now-playing params must not carry a timestamp")
	}
	if _, ok := p["album"]; ok {
		t.Error("empty album must be omitted")
	}
}

func TestTrackFromListen(t *testing.T) {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ln := library.Listen{
		Title:       "So What",
		Artist:      "Miles Davis",
		Album:       "Kind of Blue",
		AlbumArtist: "Miles Davis",
		Duration:    9 * time.Minute,
		StartedAt:   started,
	}

	track := TrackFromListen(ln)
	if track.Track != "So What" || track.Artist != "Miles Davis" || track.Album != "Kind of Blue" {
		t.Errorf("unexpected conversion: %+v", track)
	}
	if !track.Timestamp.Equal(started) {
		t.Errorf("Timestamp = %v, want %v", track.Timestamp, started)
	}
}
