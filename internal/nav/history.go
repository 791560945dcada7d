package nav

import "sync"

// maxEntries caps history depth; pushing beyond drops the oldest entry.
const maxEntries = 100

// Entry is a pushed history record.
type Entry struct {
	State Location
	Title string
	URL   string
}

// PopEvent is delivered to subscribers when back or forward navigation
// lands on an entry. It carries exactly what was pushed.
type PopEvent struct {
	State Location
	Title string
	URL   string
}

// History is a back/forward navigation stack.
// Push records a new entry; Back and Forward move through recorded entries
// and notify subscribers. All methods are safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []Entry
	pos     int // index of the current entry, -1 when empty

	subsMu sync.Mutex
	subs   []*Subscription
}

func NewHistory() *History {
	return &History{pos: -1}
}

// Push records a new entry after the current position, discarding any
// forward entries. It emits no event; only Back and Forward do.
func (h *History) Push(state Location, title, url string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.pos+1], Entry{State: state, Title: title, URL: url})
	if len(h.entries) > maxEntries {
		h.entries = h.entries[1:]
	}
	h.pos = len(h.entries) - 1
}

// Back moves to the previous entry and delivers a pop event to every
// subscription. Returns false at the start of the stack, without an event.
func (h *History) Back() bool {
	h.mu.Lock()
	if h.pos <= 0 {
		h.mu.Unlock()
		return false
	}
	h.pos--
	entry := h.entries[h.pos]
	h.mu.Unlock()

	h.broadcast(PopEvent(entry))
	return true
}

// Forward moves to the next entry and delivers a pop event to every
// subscription. Returns false at the end of the stack, without an event.
func (h *History) Forward() bool {
	h.mu.Lock()
	if h.pos < 0 || h.pos >= len(h.entries)-1 {
		h.mu.Unlock()
		return false
	}
	h.pos++
	entry := h.entries[h.pos]
	h.mu.Unlock()

	h.broadcast(PopEvent(entry))
	return true
}

// Current returns the entry at the current position.
func (h *History) Current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos < 0 {
		return Entry{}, false
	}
	return h.entries[h.pos], true
}

func (h *History) CanBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos > 0
}

func (h *History) CanForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos >= 0 && h.pos < len(h.entries)-1
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Subscribe creates a new subscription receiving every pop event.
func (h *History) Subscribe() *Subscription {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	sub := newSubscription(h)
	h.subs = append(h.subs, sub)
	return sub
}

// Close ends all subscriptions.
func (h *History) Close() {
	h.subsMu.Lock()
	subs := h.subs
	h.subs = nil
	h.subsMu.Unlock()

	for _, sub := range subs {
		sub.markDone()
	}
}

func (h *History) broadcast(e PopEvent) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	for _, sub := range h.subs {
		sub.sendPop(e)
	}
}

func (h *History) removeSub(target *Subscription) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	for i, sub := range h.subs {
		if sub == target {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}
