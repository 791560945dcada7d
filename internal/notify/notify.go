// Package notify sends desktop notifications over D-Bus.
package notify

// Urgency is the freedesktop notification priority.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // image path or theme icon name
	Timeout    int32  // ms; -1 server default, 0 never expires
	ReplacesID uint32 // nonzero replaces an earlier notification in place
	Urgency    Urgency
}

// Notifier delivers desktop notifications. Implementations degrade to no-ops
// when the platform has no notification service.
type Notifier interface {
	// Notify shows n and returns its server-assigned ID, or 0 when
	// notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close dismisses a notification by ID.
	Close(id uint32) error
}
