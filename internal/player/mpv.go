// Package player plays audio through an external mpv process, one process
// per track, controlled over mpv's JSON IPC socket. Keeping decoding and
// output out of process means the player owns no audio pipeline: it only
// tracks the state machine and relays controls.
package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

const (
	connectTimeout = 5 * time.Second
	quitGrace      = 2 * time.Second
)

// Mpv is the production player.
type Mpv struct {
	command string

	mu       sync.Mutex
	writeMu  sync.Mutex
	state    State
	cmd      *exec.Cmd
	conn     net.Conn
	socket   string
	gen      int // bumped per Play/Stop so stale goroutines self-discard
	position time.Duration
	duration time.Duration
	volume   float64 // 0.0-1.0, persists across tracks
	muted    bool
	eofSeen  bool
	stopping bool

	finishedCh chan struct{}
}

// NewMpv creates a player running the given command (default "mpv").
func NewMpv(command string) *Mpv {
	if command == "" {
		command = "mpv"
	}
	return &Mpv{
		command:    command,
		volume:     1.0,
		finishedCh: make(chan struct{}, 1),
	}
}

// Play starts a new process on the given file, replacing any current track.
func (p *Mpv) Play(path string) error {
	p.Stop()

	socket := filepath.Join(os.TempDir(),
		fmt.Sprintf("musium-mpv-%d-%d.sock", os.Getpid(), time.Now().UnixNano()))

	cmd := exec.Command(p.command,
		"--no-video",
		"--really-quiet",
		"--no-terminal",
		"--pause=no",
		"--input-ipc-server="+socket,
		path,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.command, err)
	}

	conn, err := dialIPC(socket, connectTimeout)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		_ = os.Remove(socket)
		return fmt.Errorf("connect to %s ipc: %w", p.command, err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.conn = conn
	p.socket = socket
	p.state = Playing
	p.position = 0
	p.duration = 0
	p.eofSeen = false
	p.stopping = false
	p.gen++
	gen := p.gen
	volume := p.volume
	muted := p.muted
	p.mu.Unlock()

	p.send("observe_property", propTimePos, "time-pos")
	p.send("observe_property", propDuration, "duration")
	p.send("set_property", "volume", volume*100)
	p.send("set_property", "mute", muted)

	go p.readLoop(conn, gen)
	go p.waitProcess(cmd, socket, gen)
	return nil
}

// Stop terminates the current process. Never signals FinishedChan.
func (p *Mpv) Stop() {
	p.mu.Lock()
	if p.cmd == nil {
		p.state = Stopped
		p.mu.Unlock()
		return
	}
	p.stopping = true
	p.gen++
	conn := p.conn
	cmd := p.cmd
	p.conn = nil
	p.cmd = nil
	p.socket = ""
	p.state = Stopped
	p.position = 0
	p.duration = 0
	p.mu.Unlock()

	if conn != nil {
		p.writeMu.Lock()
		_ = writeRequest(conn, "quit")
		p.writeMu.Unlock()
		conn.Close()
	}
	// The waitProcess goroutine reaps the exit; force it if quit is ignored.
	proc := cmd.Process
	time.AfterFunc(quitGrace, func() {
		if proc != nil {
			_ = proc.Kill()
		}
	})
}

// Pause pauses playback.
func (p *Mpv) Pause() {
	p.mu.Lock()
	if p.state != Playing {
		p.mu.Unlock()
		return
	}
	p.state = Paused
	p.mu.Unlock()
	p.send("set_property", "pause", true)
}

// Resume resumes paused playback.
func (p *Mpv) Resume() {
	p.mu.Lock()
	if p.state != Paused {
		p.mu.Unlock()
		return
	}
	p.state = Playing
	p.mu.Unlock()
	p.send("set_property", "pause", false)
}

// Toggle toggles between playing and paused states.
func (p *Mpv) Toggle() {
	switch p.State() {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle.
	}
}

func (p *Mpv) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the last observed playback position.
func (p *Mpv) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Duration returns the length of the current track as reported by mpv.
func (p *Mpv) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Seek moves the playback position by the given delta.
func (p *Mpv) Seek(delta time.Duration) {
	p.mu.Lock()
	active := p.state.IsActive()
	p.mu.Unlock()
	if !active {
		return
	}
	p.send("seek", delta.Seconds(), "relative")
}

// SetVolume sets the volume level (0.0 to 1.0). The level persists across
// tracks.
func (p *Mpv) SetVolume(level float64) {
	level = min(max(level, 0), 1)
	p.mu.Lock()
	p.volume = level
	connected := p.conn != nil
	p.mu.Unlock()
	if connected {
		p.send("set_property", "volume", level*100)
	}
}

// Volume returns the current volume level (0.0 to 1.0).
func (p *Mpv) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetMuted sets the muted state. Unmuting restores the stored level.
func (p *Mpv) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	connected := p.conn != nil
	p.mu.Unlock()
	if connected {
		p.send("set_property", "mute", muted)
	}
}

// Muted returns true if audio is muted.
func (p *Mpv) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *Mpv) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

// Close stops playback and releases the process.
func (p *Mpv) Close() error {
	p.Stop()
	return nil
}

// send issues a fire-and-forget command on the current connection. A write
// failure means the process is going away; the waitProcess goroutine
// reconciles the state.
func (p *Mpv) send(cmd ...any) {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	if conn == nil {
		return
	}
	p.writeMu.Lock()
	_ = writeRequest(conn, cmd...)
	p.writeMu.Unlock()
}

func (p *Mpv) readLoop(conn net.Conn, gen int) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		p.handleMessage(scanner.Bytes(), gen)
	}
}

// handleMessage applies one IPC line. Messages from a superseded generation
// are dropped: a new track may already be playing.
func (p *Mpv) handleMessage(line []byte, gen int) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return
	}

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}

	switch msg.Event {
	case "property-change":
		// mpv reports null when the property becomes unavailable (track
		// unloading); keep the last observed value in that case.
		var sec *float64
		if json.Unmarshal(msg.Data, &sec) == nil && sec != nil {
			switch msg.ID {
			case propTimePos:
				p.position = time.Duration(*sec * float64(time.Second))
			case propDuration:
				p.duration = time.Duration(*sec * float64(time.Second))
			}
		}
	case "end-file":
		if msg.Reason == "eof" && !p.stopping && !p.eofSeen {
			p.eofSeen = true
			p.mu.Unlock()
			p.signalFinished()
			return
		}
	}
	p.mu.Unlock()
}

// waitProcess reaps the process. A clean exit that produced no end-file
// event still counts as finishing the track, so a lost IPC message cannot
// stall queue advancement.
func (p *Mpv) waitProcess(cmd *exec.Cmd, socket string, gen int) {
	err := cmd.Wait()
	_ = os.Remove(socket)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	finished := err == nil && !p.stopping && !p.eofSeen
	if finished {
		p.eofSeen = true
	}
	p.mu.Unlock()

	if finished {
		p.signalFinished()
	}
}

func (p *Mpv) signalFinished() {
	select {
	case p.finishedCh <- struct{}{}:
	default:
	}
}
