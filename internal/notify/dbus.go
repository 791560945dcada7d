//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = "/org/freedesktop/Notifications"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. When no bus is reachable the returned
// notifier is a silent no-op, so callers never branch on platform state.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noopNotifier{}, nil //nolint:nilerr // degrade to no-op without a bus
	}
	return &busNotifier{obj: conn.Object(notifyDest, notifyPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	// org.freedesktop.Notifications.Notify(app_name, replaces_id, app_icon,
	// summary, body, actions, hints, expire_timeout) -> uint32 id
	call := b.obj.Call(notifyDest+".Notify", 0,
		"Musium",
		n.ReplacesID,
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		map[string]dbus.Variant{
			"urgency":       dbus.MakeVariant(byte(n.Urgency)),
			"desktop-entry": dbus.MakeVariant("musium"),
		},
		n.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(notifyDest+".CloseNotification", 0, id).Err
}

type noopNotifier struct{}

func (noopNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (noopNotifier) Close(_ uint32) error { return nil }
