package tinput

import (
	"sync"
	"sync/atomic"
)

// Pool owns one platform event source and fans its events out to any number
// of readers. The pool's background goroutine is the only thing that touches
// the source; it exists only while at least one reader does.
//
// A Pool is created explicitly, lives as long as the application wants input,
// and is safe for use from multiple goroutines.
type Pool struct {
	src EventSource

	// lifecycle serializes worker start and stop, so a new reading
	// goroutine can never overlap the old one on the source.
	lifecycle sync.Mutex
	worker    *worker

	// mu guards the subscriber registry; held only for register,
	// deregister, and publish.
	mu     sync.Mutex
	subs   []*subscription
	failed bool
}

// worker is one run of the background reading goroutine.
type worker struct {
	stop atomic.Bool
	done chan struct{}
}

// NewPool creates a Pool reading from the platform terminal. The terminal
// must already be in raw mode for byte-wise delivery; putting it there is the
// caller's concern.
func NewPool() (*Pool, error) {
	src, err := newPlatformSource()
	if err != nil {
		return nil, err
	}
	return NewPoolWith(src), nil
}

// NewPoolWith creates a Pool reading from the given source.
func NewPoolWith(src EventSource) *Pool {
	return &Pool{src: src}
}

// subscribe registers a new consumer and lazily starts the reading
// goroutine. A subscription created after the source has failed is born
// closed so its reader reports end-of-stream instead of blocking forever.
func (p *Pool) subscribe() *subscription {
	sub := &subscription{pool: p}
	sub.cond = sync.NewCond(&sub.mu)

	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	if p.failed {
		sub.closed = true
		p.mu.Unlock()
		return sub
	}
	p.subs = append(p.subs, sub)
	p.mu.Unlock()

	if p.worker == nil {
		w := &worker{done: make(chan struct{})}
		p.worker = w
		go p.run(w)
	}
	return sub
}

// unsubscribe removes a consumer; dropping the last one stops the reading
// goroutine and waits for it to exit, so the source is idle the moment this
// returns.
func (p *Pool) unsubscribe(sub *subscription) {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	for i, s := range p.subs {
		if s == sub {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			break
		}
	}
	empty := len(p.subs) == 0
	p.mu.Unlock()

	sub.close()

	if empty && p.worker != nil {
		p.worker.stop.Store(true)
		<-p.worker.done
		p.worker = nil
	}
}

// run is the reading loop: poll the source, publish, check the stop flag,
// repeat. A source error is fatal; it collapses every subscription to
// end-of-stream.
func (p *Pool) run(w *worker) {
	defer close(w.done)
	for !w.stop.Load() {
		ev, err := p.src.PollEvent()
		if err != nil {
			p.fail()
			return
		}
		if ev != nil {
			p.publish(ev)
		}
	}
}

// publish delivers an event to every subscription registered at this moment.
// Holding the registry lock across delivery serializes publication against
// registration, so a consumer never sees an event published before it
// registered and never misses one published after.
func (p *Pool) publish(ev InputEvent) {
	p.mu.Lock()
	for _, sub := range p.subs {
		sub.push(ev)
	}
	p.mu.Unlock()
}

func (p *Pool) fail() {
	p.mu.Lock()
	p.failed = true
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()
	for _, sub := range subs {
		sub.close()
	}
}

// subscription is one consumer's cursor into the event stream. Events queue
// without bound so a slow consumer never stalls the reader or its siblings.
type subscription struct {
	pool *Pool

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []InputEvent
	closed bool
}

func (s *subscription) push(ev InputEvent) {
	s.mu.Lock()
	if !s.closed {
		s.queue = append(s.queue, ev)
		s.cond.Signal()
	}
	s.mu.Unlock()
}

// next blocks until an event is buffered or the subscription is closed.
// Buffered events drain before the closed state reports, so nothing already
// delivered is lost at shutdown.
func (s *subscription) next() (InputEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.queue) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.queue) == 0 {
		return nil, false
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, true
}

// tryNext is the non-blocking variant: (nil, true) means nothing buffered
// right now, (nil, false) means closed and drained.
func (s *subscription) tryNext() (InputEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, !s.closed
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, true
}

func (s *subscription) close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}
