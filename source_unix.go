//go:build !windows

package tinput

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollTimeout bounds each readiness wait so the reading goroutine can
// observe its stop flag without busy-looping.
const pollTimeout = 100 * time.Millisecond

// ttySource reads and decodes bytes from the controlling terminal. It owns
// the decode buffer; only the pool's reading goroutine touches it.
type ttySource struct {
	fd  int
	f   *os.File // non-nil when we opened /dev/tty ourselves
	buf []byte
}

// newPlatformSource opens an event source on standard input, falling back to
// /dev/tty when stdin is not a terminal (it may be a pipe while the terminal
// is still interactive).
func newPlatformSource() (EventSource, error) {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		return &ttySource{fd: fd, buf: make([]byte, 0, 32)}, nil
	}
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("tinput: unable to open terminal: %w", err)
	}
	return &ttySource{fd: int(f.Fd()), f: f, buf: make([]byte, 0, 32)}, nil
}

// PollEvent waits up to pollTimeout for a byte, feeds it to the decoder, and
// returns a completed event if the buffer now forms one. The buffer survives
// incomplete sequences and is discarded on malformed ones.
func (t *ttySource) PollEvent() (InputEvent, error) {
	ready, err := t.ready(pollTimeout)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, nil
	}

	var b [1]byte
	n, err := unix.Read(t.fd, b[:])
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, fmt.Errorf("tinput: terminal read: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	t.buf = append(t.buf, b[0])

	// A zero-timeout readiness check distinguishes a lone Escape press from
	// a sequence whose remaining bytes are already in flight.
	moreInput, err := t.ready(0)
	if err != nil {
		moreInput = false
	}

	ev, status := decode(t.buf, moreInput)
	switch status {
	case decodeIncomplete:
		return nil, nil
	case decodeInvalid:
		t.buf = t.buf[:0]
		return nil, nil
	}
	t.buf = t.buf[:0]
	return ev, nil
}

func (t *ttySource) ready(timeout time.Duration) (bool, error) {
	var fds unix.FdSet
	fds.Zero()
	fds.Set(t.fd)
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(t.fd+1, &fds, nil, nil, &tv)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, fmt.Errorf("tinput: terminal select: %w", err)
	}
	return n > 0, nil
}

// Close releases the terminal handle if the source opened one itself.
func (t *ttySource) Close() error {
	if t.f != nil {
		return t.f.Close()
	}
	return nil
}
