package playback

import "time"

const eventBufferSize = 16

// Subscription exposes one buffered channel per event kind. Sends never
// block: a subscriber that falls behind its buffer misses events instead of
// stalling playback.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	TrackCompleted  <-chan TrackComplete
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	stateCh    chan StateChange
	trackCh    chan TrackChange
	completeCh chan TrackComplete
	positionCh chan PositionChange
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		completeCh: make(chan TrackComplete, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.TrackCompleted = s.completeCh
	s.PositionChanged = s.positionCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// offer drops the event when the buffer is full.
func offer[E any](ch chan E, e E) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)      { offer(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange)      { offer(s.trackCh, e) }
func (s *Subscription) sendComplete(e TrackComplete) { offer(s.completeCh, e) }
func (s *Subscription) sendQueue(e QueueChange)      { offer(s.queueCh, e) }
func (s *Subscription) sendMode(e ModeChange)        { offer(s.modeCh, e) }
func (s *Subscription) sendError(e ErrorEvent)       { offer(s.errorCh, e) }

func (s *Subscription) sendPosition(pos time.Duration) {
	offer(s.positionCh, PositionChange{Position: pos})
}
