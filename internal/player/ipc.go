package player

import (
	"encoding/json"
	"net"
	"time"
)

// mpv's JSON IPC speaks one JSON object per line over a unix socket.
// Commands are fire-and-forget here: every state this player needs back
// arrives as an asynchronous event (property-change, end-file), so replies
// are not correlated.

// Observed property IDs, echoed back in property-change events.
const (
	propTimePos  = 1
	propDuration = 2
)

type ipcRequest struct {
	Command []any `json:"command"`
}

// ipcMessage covers command replies and asynchronous events; unused fields
// stay at their zero value.
type ipcMessage struct {
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
	Event  string          `json:"event"`
	ID     int64           `json:"id"`
	Reason string          `json:"reason"`
}

func encodeRequest(cmd ...any) ([]byte, error) {
	b, err := json.Marshal(ipcRequest{Command: cmd})
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func writeRequest(conn net.Conn, cmd ...any) error {
	b, err := encodeRequest(cmd...)
	if err != nil {
		return err
	}
	_, err = conn.Write(b)
	return err
}

// dialIPC connects to the socket, retrying until mpv has created it.
func dialIPC(path string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.Dial("unix", path)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(50 * time.Millisecond)
	}
}
