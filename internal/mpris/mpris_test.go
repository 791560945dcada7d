//go:build linux

package mpris

import (
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/test99500/musium/internal/playback"
	"github.com/test99500/musium/internal/player"
	"github.com/test99500/musium/internal/playlist"
)

func newPlayerAdapter(t *testing.T) *playerAdapter {
	t.Helper()
	svc := playback.New(player.NewMock(), playlist.NewPlayingQueue())
	t.Cleanup(func() { _ = svc.Close() })
	return &playerAdapter{service: svc}
}

func TestVolumeRoundTrip(t *testing.T) {
	p := newPlayerAdapter(t)

	if err := p.SetVolume(0.4); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	got, err := p.Volume()
	if err != nil {
		t.Fatalf("Volume: %v", err)
	}
	if got != 0.4 {
		t.Errorf("Volume() = %v, want 0.4", got)
	}
}

func TestLoopStatusRoundTrip(t *testing.T) {
	p := newPlayerAdapter(t)

	for _, status := range []types.LoopStatus{
		types.LoopStatusTrack,
		types.LoopStatusPlaylist,
		types.LoopStatusNone,
	} {
		if err := p.SetLoopStatus(status); err != nil {
			t.Fatalf("SetLoopStatus(%v): %v", status, err)
		}
		got, err := p.LoopStatus()
		if err != nil {
			t.Fatalf("LoopStatus: %v", err)
		}
		if got != status {
			t.Errorf("LoopStatus() = %v, want %v", got, status)
		}
	}
}

func TestPlaybackStatusStopped(t *testing.T) {
	p := newPlayerAdapter(t)

	got, err := p.PlaybackStatus()
	if err != nil {
		t.Fatalf("PlaybackStatus: %v", err)
	}
	if got != types.PlaybackStatusStopped {
		t.Errorf("PlaybackStatus() = %v, want Stopped", got)
	}
	canPlay, _ := p.CanPlay()
	if canPlay {
		t.Error("CanPlay() = true for an empty queue")
	}
}
