package tinput

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pollReady spins an AsyncReader until it yields an event, failing the test
// if none arrives in time.
func pollReady(t *testing.T, r *AsyncReader) InputEvent {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		ev, state := r.Poll()
		switch state {
		case Ready:
			return ev
		case Closed:
			t.Fatal("reader closed while waiting for an event")
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no event within deadline")
	return nil
}

// pollClosed spins until the reader reports Closed.
func pollClosed(t *testing.T, r *AsyncReader) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, state := r.Poll(); state == Closed {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("reader not closed within deadline")
}

func TestAsyncReader_pendingIsIdempotent(t *testing.T) {
	src := newFakeSource()
	pool := NewPoolWith(src)

	r := pool.AsyncReader()
	defer r.Close()

	// Polling an empty reader any number of times has no side effects.
	for range 10 {
		ev, state := r.Poll()
		assert.Nil(t, ev)
		assert.Equal(t, Pending, state)
	}

	// A genuine event is still delivered afterwards.
	src.events <- Char('k')
	assert.Equal(t, Char('k'), pollReady(t, r))

	ev, state := r.Poll()
	assert.Nil(t, ev)
	assert.Equal(t, Pending, state)
}

func TestAsyncReader_sentinelStopsTheStream(t *testing.T) {
	src := newFakeSource()
	pool := NewPoolWith(src)

	sentinel := KeyEvent{Code: KeyEsc}
	r := pool.AsyncReaderUntil(sentinel)

	src.events <- Char('a')
	src.events <- sentinel
	src.events <- Char('b')

	assert.Equal(t, Char('a'), pollReady(t, r))

	// The sentinel itself is delivered, then the stream is over; 'b' is
	// never seen.
	assert.Equal(t, InputEvent(sentinel), pollReady(t, r))
	for range 5 {
		ev, state := r.Poll()
		assert.Nil(t, ev)
		assert.Equal(t, Closed, state)
	}
}

func TestAsyncReader_closeReportsClosed(t *testing.T) {
	src := newFakeSource()
	pool := NewPoolWith(src)

	r := pool.AsyncReader()
	r.Close()

	_, state := r.Poll()
	assert.Equal(t, Closed, state)
}

func TestAsyncReader_sourceFailure(t *testing.T) {
	src := newFakeSource()
	pool := NewPoolWith(src)

	r := pool.AsyncReader()
	defer r.Close()

	close(src.events)
	pollClosed(t, r)
}

func TestSyncReader_deliversInOrder(t *testing.T) {
	src := newFakeSource()
	pool := NewPoolWith(src)

	r := pool.SyncReader()
	defer r.Close()

	events := []InputEvent{
		Char('h'),
		KeyEvent{Code: KeyEnter},
		MouseEvent{Kind: MousePress, Button: MouseLeft, X: 1, Y: 2},
		Alt('x'),
		UnknownEvent{},
	}
	for _, ev := range events {
		src.events <- ev
	}
	for i, want := range events {
		ev, err := r.ReadEvent()
		require.NoError(t, err)
		assert.Equal(t, want, ev, "event %d", i)
	}
}

func TestReadChar(t *testing.T) {
	src := newFakeSource()
	pool := NewPoolWith(src)

	src.events <- KeyEvent{Code: KeyEnter}
	src.events <- MouseEvent{Kind: MouseHold, X: 1, Y: 1}
	src.events <- Char('g')

	ch, err := pool.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, 'g', ch)
}

func TestMouseModeSequences(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EnableMouseMode(&buf))
	assert.Equal(t, "\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h", buf.String())

	buf.Reset()
	require.NoError(t, DisableMouseMode(&buf))
	assert.Equal(t, "\x1b[?1006l\x1b[?1015l\x1b[?1002l\x1b[?1000l", buf.String())
}
