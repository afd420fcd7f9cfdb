package tinput

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_literalSequences(t *testing.T) {
	tcs := []struct {
		in string
		ev InputEvent
	}{
		{"\t", KeyEvent{Code: KeyTab}},
		{"\r", KeyEvent{Code: KeyEnter}},
		{"\n", KeyEvent{Code: KeyEnter}},
		{"\x7f", KeyEvent{Code: KeyBackspace}},
		{"\x00", KeyEvent{Code: KeyNull}},
		{"\x01", Ctrl('a')},
		{"\x1a", Ctrl('z')},
		{"\x1c", Ctrl('4')},
		{"\x1f", Ctrl('7')},
		{"a", Char('a')},

		{"\x1bOP", KeyF(1)},
		{"\x1bOQ", KeyF(2)},
		{"\x1bOR", KeyF(3)},
		{"\x1bOS", KeyF(4)},

		{"\x1b[A", KeyEvent{Code: KeyUp}},
		{"\x1b[B", KeyEvent{Code: KeyDown}},
		{"\x1b[C", KeyEvent{Code: KeyRight}},
		{"\x1b[D", KeyEvent{Code: KeyLeft}},
		{"\x1b[H", KeyEvent{Code: KeyHome}},
		{"\x1b[F", KeyEvent{Code: KeyEnd}},
		{"\x1b[Z", KeyEvent{Code: KeyBackTab}},
		{"\x1b[[A", KeyF(1)},
		{"\x1b[[E", KeyF(5)},

		{"\x1b[5A", KeyEvent{Code: KeyCtrlUp}},
		{"\x1b[5B", KeyEvent{Code: KeyCtrlDown}},
		{"\x1b[5C", KeyEvent{Code: KeyCtrlRight}},
		{"\x1b[5D", KeyEvent{Code: KeyCtrlLeft}},
		{"\x1b[2A", KeyEvent{Code: KeyShiftUp}},
		{"\x1b[2B", KeyEvent{Code: KeyShiftDown}},
		{"\x1b[2C", KeyEvent{Code: KeyShiftRight}},
		{"\x1b[2D", KeyEvent{Code: KeyShiftLeft}},

		{"\x1b[1~", KeyEvent{Code: KeyHome}},
		{"\x1b[2~", KeyEvent{Code: KeyInsert}},
		{"\x1b[3~", KeyEvent{Code: KeyDelete}},
		{"\x1b[4~", KeyEvent{Code: KeyEnd}},
		{"\x1b[5~", KeyEvent{Code: KeyPageUp}},
		{"\x1b[6~", KeyEvent{Code: KeyPageDown}},
		{"\x1b[7~", KeyEvent{Code: KeyHome}},
		{"\x1b[8~", KeyEvent{Code: KeyEnd}},
		{"\x1b[11~", KeyF(1)},
		{"\x1b[15~", KeyF(5)},
		{"\x1b[17~", KeyF(6)},
		{"\x1b[21~", KeyF(10)},
		{"\x1b[23~", KeyF(11)},
		{"\x1b[24~", KeyF(12)},

		// Modifier + special key combinations are not decoded.
		{"\x1b[3;2~", UnknownEvent{}},

		{"\x1bb", Alt('b')},
		{"\x1b\x1b", KeyEvent{Code: KeyEsc}},
	}
	for _, tc := range tcs {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			ev, status := decode([]byte(tc.in), false)
			require.Equal(t, decodeDone, status)
			assert.Equal(t, tc.ev, ev)
		})
	}
}

func TestDecode_escDisambiguation(t *testing.T) {
	// A lone ESC with no further input pending is the Escape key.
	ev, status := decode([]byte("\x1b"), false)
	require.Equal(t, decodeDone, status)
	assert.Equal(t, KeyEvent{Code: KeyEsc}, ev)

	// With more bytes in flight it may be the start of a sequence.
	_, status = decode([]byte("\x1b"), true)
	assert.Equal(t, decodeIncomplete, status)
}

func TestDecode_incompletePrefixes(t *testing.T) {
	for _, in := range []string{
		"\x1bO",
		"\x1b[",
		"\x1b[[",
		"\x1b[1",
		"\x1b[12;3",
		"\x1b[M",
		"\x1b[M0",
		"\x1b[M0\x60",
		"\x1b[<",
		"\x1b[<0;20;10",
	} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, status := decode([]byte(in), true)
			assert.Equal(t, decodeIncomplete, status)
		})
	}
}

func TestDecode_invalidSequences(t *testing.T) {
	for _, in := range []string{
		"\x1bOT",       // SS3 terminator past F4
		"\xa0\xa1",     // bare continuation byte
		"\xc3\x28",     // bad 2-byte continuation
		"\xe2\x28\xa1", // bad 3-byte continuation
	} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, status := decode([]byte(in), false)
			assert.Equal(t, decodeInvalid, status)
		})
	}
}

func TestDecode_mouse(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		ev   InputEvent
	}{
		{"x10 left", "\x1b[M0\x60\x70",
			MouseEvent{Kind: MousePress, Button: MouseLeft, X: 63, Y: 79}},
		{"x10 wheel up", "\x1b[M\x60\x60\x70",
			MouseEvent{Kind: MousePress, Button: MouseWheelUp, X: 63, Y: 79}},
		{"x10 release", "\x1b[M\x23\x60\x70",
			MouseEvent{Kind: MouseRelease, X: 63, Y: 79}},

		{"sgr left press", "\x1b[<0;20;10;M",
			MouseEvent{Kind: MousePress, Button: MouseLeft, X: 19, Y: 9}},
		{"sgr left press no semi", "\x1b[<0;20;10M",
			MouseEvent{Kind: MousePress, Button: MouseLeft, X: 19, Y: 9}},
		{"sgr left release", "\x1b[<0;20;10;m",
			MouseEvent{Kind: MouseRelease, X: 19, Y: 9}},
		{"sgr left release no semi", "\x1b[<0;20;10m",
			MouseEvent{Kind: MouseRelease, X: 19, Y: 9}},
		{"sgr middle", "\x1b[<1;4;6M",
			MouseEvent{Kind: MousePress, Button: MouseMiddle, X: 3, Y: 5}},
		{"sgr wheel down", "\x1b[<65;4;6M",
			MouseEvent{Kind: MousePress, Button: MouseWheelDown, X: 3, Y: 5}},
		{"sgr hold", "\x1b[<32;8;9M",
			MouseEvent{Kind: MouseHold, X: 7, Y: 8}},
		{"sgr release button 3", "\x1b[<3;8;9M",
			MouseEvent{Kind: MouseRelease, X: 7, Y: 8}},

		{"rxvt left", "\x1b[32;30;40;M",
			MouseEvent{Kind: MousePress, Button: MouseLeft, X: 29, Y: 39}},
		{"rxvt middle", "\x1b[33;30;40;M",
			MouseEvent{Kind: MousePress, Button: MouseMiddle, X: 29, Y: 39}},
		{"rxvt right", "\x1b[34;30;40;M",
			MouseEvent{Kind: MousePress, Button: MouseRight, X: 29, Y: 39}},
		{"rxvt release", "\x1b[35;30;40;M",
			MouseEvent{Kind: MouseRelease, X: 29, Y: 39}},
		{"rxvt hold", "\x1b[64;30;40;M",
			MouseEvent{Kind: MouseHold, X: 29, Y: 39}},
		{"rxvt wheel", "\x1b[96;30;40;M",
			MouseEvent{Kind: MousePress, Button: MouseWheelUp, X: 29, Y: 39}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ev, status := decode([]byte(tc.in), false)
			require.Equal(t, decodeDone, status)
			assert.Equal(t, tc.ev, ev)
		})
	}
}

func TestDecode_cursorReport(t *testing.T) {
	// ESC [ Cy ; Cx R carries row first, one-based.
	ev, status := decode([]byte("\x1b[20;10R"), false)
	require.Equal(t, decodeDone, status)
	assert.Equal(t, cursorPos{x: 9, y: 19}, ev)
}

func TestDecode_utf8(t *testing.T) {
	const sample = "abcéŷ¤£€ù%323"
	for _, r := range sample {
		buf := []byte(string(r))
		// Feed the character byte by byte: every prefix must be
		// incomplete, the full encoding must decode to the same rune.
		for i := 1; i < len(buf); i++ {
			_, status := decode(buf[:i], true)
			assert.Equal(t, decodeIncomplete, status, "prefix %q of %q", buf[:i], r)
		}
		ev, status := decode(buf, false)
		require.Equal(t, decodeDone, status)
		assert.Equal(t, Char(r), ev)
	}
}

func TestDecode_altUTF8(t *testing.T) {
	ev, status := decode([]byte("\x1bé"), false)
	require.Equal(t, decodeDone, status)
	assert.Equal(t, Alt('é'), ev)

	// Alt with the continuation byte still in flight.
	_, status = decode([]byte("\x1b\xc3"), true)
	assert.Equal(t, decodeIncomplete, status)
}

func TestDecode_deterministic(t *testing.T) {
	for _, in := range []string{"\x1b[D", "\x1b[<0;20;10M", "é", "\x1b"} {
		ev1, st1 := decode([]byte(in), false)
		ev2, st2 := decode([]byte(in), false)
		assert.Equal(t, st1, st2)
		assert.Equal(t, ev1, ev2)
	}
}

func TestDecode_emptyBuffer(t *testing.T) {
	_, status := decode(nil, false)
	assert.Equal(t, decodeIncomplete, status)
}
