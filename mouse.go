package tinput

import (
	"fmt"
	"io"
	"time"
)

// Mouse tracking covers classic button tracking (1000), button-motion
// tracking for drags (1002), and both extended coordinate encodings the
// decoder understands: urxvt (1015) and SGR (1006).
const (
	enableMouseSeq  = "\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h"
	disableMouseSeq = "\x1b[?1006l\x1b[?1015l\x1b[?1002l\x1b[?1000l"

	cursorQuerySeq = "\x1b[6n"
)

// EnableMouseMode writes the control sequences that make the terminal report
// mouse events on its input stream.
func EnableMouseMode(w io.Writer) error {
	_, err := io.WriteString(w, enableMouseSeq)
	return err
}

// DisableMouseMode writes the reset sequences for every mode set by
// EnableMouseMode, in reverse order.
func DisableMouseMode(w io.Writer) error {
	_, err := io.WriteString(w, disableMouseSeq)
	return err
}

// RequestCursorPosition asks the terminal to report the cursor location on
// its input stream; the report surfaces through Pool.CursorPosition.
func RequestCursorPosition(w io.Writer) error {
	_, err := io.WriteString(w, cursorQuerySeq)
	return err
}

const cursorReportTimeout = 2 * time.Second

// CursorPosition writes a cursor-position query to w and waits for the
// terminal's report, returning the zero-based column and row. The report
// never surfaces on any reader's stream; this is its only consumer.
func (p *Pool) CursorPosition(w io.Writer) (col, row int, err error) {
	sub := p.subscribe()
	defer p.unsubscribe(sub)

	if err := RequestCursorPosition(w); err != nil {
		return 0, 0, err
	}

	deadline := time.Now().Add(cursorReportTimeout)
	for time.Now().Before(deadline) {
		ev, open := sub.tryNext()
		if ev == nil {
			if !open {
				return 0, 0, ErrClosed
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if pos, ok := ev.(cursorPos); ok {
			return pos.x, pos.y, nil
		}
	}
	return 0, 0, fmt.Errorf("tinput: no cursor position report within %v", cursorReportTimeout)
}
