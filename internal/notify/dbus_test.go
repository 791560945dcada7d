//go:build linux

package notify

import (
	"os"
	"testing"
)

func requireBus(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return n
}

func TestNotifyAndClose(t *testing.T) {
	n := requireBus(t)

	id, err := n.Notify(Notification{
		Title:   "musium test",
		Body:    "notification from the test suite",
		Timeout: 1000,
		Urgency: UrgencyLow,
	})
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if id == 0 {
		t.Error("Notify() returned id 0, want a server-assigned id")
	}

	if err := n.Close(id); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestNotifyReplacesExisting(t *testing.T) {
	n := requireBus(t)

	id1, err := n.Notify(Notification{Title: "Track 1", Body: "Artist — Album", Timeout: 2000})
	if err != nil {
		t.Fatalf("first Notify() error: %v", err)
	}
	id2, err := n.Notify(Notification{Title: "Track 2", Body: "Artist — Album", Timeout: 1000, ReplacesID: id1})
	if err != nil {
		t.Fatalf("second Notify() error: %v", err)
	}
	if id2 != id1 {
		t.Errorf("replacement got id %d, want the original id %d", id2, id1)
	}

	if err := n.Close(id2); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
