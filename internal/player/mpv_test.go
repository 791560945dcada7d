package player

import (
	"testing"
	"time"
)

func TestEncodeRequest(t *testing.T) {
	b, err := encodeRequest("set_property", "pause", true)
	if err != nil {
		t.Fatalf("encodeRequest: %v", err)
	}
	want := `{"command":["set_property","pause",true]}` + "\n"
	if string(b) != want {
		t.Errorf("got %q, want %q", b, want)
	}
}

func TestHandleMessage_PropertyChanges(t *testing.T) {
	p := NewMpv("")
	p.gen = 1
	p.state = Playing

	p.handleMessage([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":63.5}`), 1)
	if got := p.Position(); got != 63500*time.Millisecond {
		t.Errorf("position = %v, want 1m3.5s", got)
	}

	p.handleMessage([]byte(`{"event":"property-change","id":2,"name":"duration","data":180.0}`), 1)
	if got := p.Duration(); got != 3*time.Minute {
		t.Errorf("duration = %v, want 3m", got)
	}

	// A null property value (track unloading) leaves the last value alone.
	p.handleMessage([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":null}`), 1)
	if got := p.Position(); got != 63500*time.Millisecond {
		t.Errorf("position after null = %v, want 1m3.5s", got)
	}
}

func TestHandleMessage_EndFileEOFSignalsFinished(t *testing.T) {
	p := NewMpv("")
	p.gen = 1
	p.state = Playing

	p.handleMessage([]byte(`{"event":"end-file","reason":"eof"}`), 1)

	select {
	case <-p.FinishedChan():
	default:
		t.Fatal("expected finished signal after end-file eof")
	}

	// A duplicate eof (event plus clean process exit) signals only once.
	p.handleMessage([]byte(`{"event":"end-file","reason":"eof"}`), 1)
	select {
	case <-p.FinishedChan():
		t.Fatal("finished signaled twice for one track")
	default:
	}
}

func TestHandleMessage_EndFileStopIsNotFinished(t *testing.T) {
	p := NewMpv("")
	p.gen = 1
	p.state = Playing

	p.handleMessage([]byte(`{"event":"end-file","reason":"stop"}`), 1)

	select {
	case <-p.FinishedChan():
		t.Fatal("stop reason must not signal finished")
	default:
	}
}

func TestHandleMessage_StaleGenerationDropped(t *testing.T) {
	p := NewMpv("")
	p.gen = 2
	p.state = Playing

	p.handleMessage([]byte(`{"event":"end-file","reason":"eof"}`), 1)
	select {
	case <-p.FinishedChan():
		t.Fatal("stale generation must not signal finished")
	default:
	}

	p.handleMessage([]byte(`{"event":"property-change","id":1,"data":10.0}`), 1)
	if got := p.Position(); got != 0 {
		t.Errorf("stale position applied: %v", got)
	}
}

func TestHandleMessage_Garbage(t *testing.T) {
	p := NewMpv("")
	p.gen = 1
	p.handleMessage([]byte(`not json`), 1)
	p.handleMessage([]byte(``), 1)
}

func TestMpv_VolumeClamping(t *testing.T) {
	p := NewMpv("")
	p.SetVolume(1.7)
	if got := p.Volume(); got != 1.0 {
		t.Errorf("volume = %v, want 1.0", got)
	}
	p.SetVolume(-0.3)
	if got := p.Volume(); got != 0.0 {
		t.Errorf("volume = %v, want 0.0", got)
	}
}

func TestMpv_DefaultCommand(t *testing.T) {
	if p := NewMpv(""); p.command != "mpv" {
		t.Errorf("command = %q, want mpv", p.command)
	}
	if p := NewMpv("mpv-custom"); p.command != "mpv-custom" {
		t.Errorf("command = %q, want mpv-custom", p.command)
	}
}
