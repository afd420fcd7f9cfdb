package tinput

import "errors"

// ErrClosed is returned by SyncReader once the event stream has permanently
// stopped: every producer is gone and all buffered events are drained.
var ErrClosed = errors.New("tinput: event stream closed")

// PollState reports the outcome of a non-blocking poll.
type PollState uint8

const (
	// Pending means no event is buffered right now; more may arrive.
	Pending PollState = iota
	// Ready means an event was returned.
	Ready
	// Closed means the stream ended; no further events will ever arrive.
	Closed
)

// SyncReader is a blocking event reader over one pool subscription.
type SyncReader struct {
	sub *subscription
}

// SyncReader registers a new blocking reader on the pool, starting the
// background reader if this is the first consumer.
func (p *Pool) SyncReader() *SyncReader {
	return &SyncReader{sub: p.subscribe()}
}

// ReadEvent blocks until the next event arrives and returns it. It returns
// ErrClosed once the stream has permanently stopped.
func (r *SyncReader) ReadEvent() (InputEvent, error) {
	for {
		ev, ok := r.sub.next()
		if !ok {
			return nil, ErrClosed
		}
		if _, internal := ev.(cursorPos); internal {
			continue
		}
		return ev, nil
	}
}

// Close releases the reader's subscription; the background reader stops once
// no subscriptions remain.
func (r *SyncReader) Close() {
	r.sub.pool.unsubscribe(r.sub)
}

// AsyncReader is a non-blocking event reader over one pool subscription,
// optionally stopping at a sentinel event.
type AsyncReader struct {
	sub      *subscription
	sentinel InputEvent
	stopped  bool
}

// AsyncReader registers a new non-blocking reader on the pool, starting the
// background reader if this is the first consumer.
func (p *Pool) AsyncReader() *AsyncReader {
	return &AsyncReader{sub: p.subscribe()}
}

// AsyncReaderUntil is AsyncReader with a sentinel: once Poll returns an event
// equal to the sentinel, the reader deregisters itself and every later Poll
// reports Closed.
func (p *Pool) AsyncReaderUntil(sentinel InputEvent) *AsyncReader {
	return &AsyncReader{sub: p.subscribe(), sentinel: sentinel}
}

// Poll returns the next buffered event without blocking. Pending does not
// mean the stream ended; new events may arrive on a later Poll.
func (r *AsyncReader) Poll() (InputEvent, PollState) {
	for {
		if r.stopped {
			return nil, Closed
		}
		ev, open := r.sub.tryNext()
		if ev == nil {
			if !open {
				return nil, Closed
			}
			return nil, Pending
		}
		if _, internal := ev.(cursorPos); internal {
			continue
		}
		if r.sentinel != nil && ev == r.sentinel {
			r.Close()
			return ev, Ready
		}
		return ev, Ready
	}
}

// Close releases the reader's subscription; subsequent Polls report Closed.
func (r *AsyncReader) Close() {
	if !r.stopped {
		r.stopped = true
		r.sub.pool.unsubscribe(r.sub)
	}
}
