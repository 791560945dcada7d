package nav

import "sync"

const eventBufferSize = 16

// Subscription receives pop events from a History.
type Subscription struct {
	Events <-chan PopEvent
	Done   <-chan struct{}

	eventsCh chan PopEvent
	doneCh   chan struct{}
	once     sync.Once
	history  *History
}

func newSubscription(h *History) *Subscription {
	s := &Subscription{
		eventsCh: make(chan PopEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
		history:  h,
	}
	s.Events = s.eventsCh
	s.Done = s.doneCh
	return s
}

// Unsubscribe removes the subscription and closes Done. Safe to call more
// than once.
func (s *Subscription) Unsubscribe() {
	s.history.removeSub(s)
	s.markDone()
}

func (s *Subscription) markDone() {
	s.once.Do(func() {
		close(s.doneCh)
	})
}

// sendPop delivers an event without blocking; a full buffer drops it.
func (s *Subscription) sendPop(e PopEvent) {
	select {
	case s.eventsCh <- e:
	default:
	}
}
