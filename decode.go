package tinput

import (
	"bytes"
	"strconv"
	"unicode/utf8"
)

// decodeStatus reports what decode made of the buffer so far.
type decodeStatus uint8

const (
	// decodeIncomplete: not enough bytes yet, keep the buffer.
	decodeIncomplete decodeStatus = iota
	// decodeInvalid: malformed sequence, discard the whole buffer.
	decodeInvalid
	// decodeDone: a complete event was produced, clear the buffer.
	decodeDone
)

// decode maps an accumulating input buffer to at most one event. moreInput
// tells whether further bytes are already readable on the source; it is the
// sole disambiguator between a lone Escape key press and the first byte of a
// sequence still arriving.
func decode(buf []byte, moreInput bool) (InputEvent, decodeStatus) {
	if len(buf) == 0 {
		return nil, decodeIncomplete
	}

	switch c := buf[0]; c {
	case 0x1b:
		return decodeEscape(buf, moreInput)
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter}, decodeDone
	case '\t':
		return KeyEvent{Code: KeyTab}, decodeDone
	case 0x7f:
		return KeyEvent{Code: KeyBackspace}, decodeDone
	case 0:
		return KeyEvent{Code: KeyNull}, decodeDone
	default:
		switch {
		case c >= 0x01 && c <= 0x1a:
			return Ctrl(rune(c - 0x01 + 'a')), decodeDone
		case c >= 0x1c && c <= 0x1f:
			return Ctrl(rune(c - 0x1c + '4')), decodeDone
		}
		r, st := decodeRune(buf)
		if st != decodeDone {
			return nil, st
		}
		return Char(r), decodeDone
	}
}

func decodeEscape(buf []byte, moreInput bool) (InputEvent, decodeStatus) {
	if len(buf) == 1 {
		if moreInput {
			// Could be the start of a sequence whose remainder is in
			// flight.
			return nil, decodeIncomplete
		}
		return KeyEvent{Code: KeyEsc}, decodeDone
	}

	switch buf[1] {
	case 'O':
		// SS3 function keys: ESC O P..S.
		if len(buf) == 2 {
			return nil, decodeIncomplete
		}
		if v := buf[2]; v >= 'P' && v <= 'S' {
			return KeyF(1 + int(v-'P')), decodeDone
		}
		return nil, decodeInvalid
	case '[':
		return decodeCSI(buf[2:])
	case 0x1b:
		return KeyEvent{Code: KeyEsc}, decodeDone
	default:
		r, st := decodeRune(buf[1:])
		if st != decodeDone {
			return nil, st
		}
		return Alt(r), decodeDone
	}
}

// decodeCSI parses a control sequence with the leading ESC [ already
// stripped.
func decodeCSI(buf []byte) (InputEvent, decodeStatus) {
	if len(buf) == 0 {
		return nil, decodeIncomplete
	}

	switch buf[0] {
	case 'D':
		return KeyEvent{Code: KeyLeft}, decodeDone
	case 'C':
		return KeyEvent{Code: KeyRight}, decodeDone
	case 'A':
		return KeyEvent{Code: KeyUp}, decodeDone
	case 'B':
		return KeyEvent{Code: KeyDown}, decodeDone
	case 'H':
		return KeyEvent{Code: KeyHome}, decodeDone
	case 'F':
		return KeyEvent{Code: KeyEnd}, decodeDone
	case 'Z':
		return KeyEvent{Code: KeyBackTab}, decodeDone
	case '[':
		// Rare alternate F1-F5 encoding: ESC [ [ A..E.
		if len(buf) == 1 {
			return nil, decodeIncomplete
		}
		if v := buf[1]; v >= 'A' && v <= 'E' {
			return KeyF(1 + int(v-'A')), decodeDone
		}
		return UnknownEvent{}, decodeDone
	case 'M':
		return decodeX10Mouse(buf)
	case '<':
		return decodeSGRMouse(buf)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return decodeNumberedCSI(buf)
	default:
		return UnknownEvent{}, decodeDone
	}
}

// decodeNumberedCSI handles sequences of digits and semicolons closed by a
// terminator byte in 64..126, then branches on the terminator.
func decodeNumberedCSI(buf []byte) (InputEvent, decodeStatus) {
	last := buf[len(buf)-1]
	if last < 64 || last > 126 {
		return nil, decodeIncomplete
	}
	switch last {
	case 'M':
		return decodeRxvtMouse(buf)
	case '~':
		return decodeSpecialKey(buf)
	case 'R':
		return decodeCursorReport(buf)
	default:
		return decodeModifierArrow(buf)
	}
}

// decodeModifierArrow decodes Ctrl/Shift + arrow from the final two bytes of
// the sequence.
func decodeModifierArrow(buf []byte) (InputEvent, decodeStatus) {
	if len(buf) < 2 {
		return UnknownEvent{}, decodeDone
	}
	mod, key := buf[len(buf)-2], buf[len(buf)-1]
	switch {
	case mod == '5' && key == 'A':
		return KeyEvent{Code: KeyCtrlUp}, decodeDone
	case mod == '5' && key == 'B':
		return KeyEvent{Code: KeyCtrlDown}, decodeDone
	case mod == '5' && key == 'C':
		return KeyEvent{Code: KeyCtrlRight}, decodeDone
	case mod == '5' && key == 'D':
		return KeyEvent{Code: KeyCtrlLeft}, decodeDone
	case mod == '2' && key == 'A':
		return KeyEvent{Code: KeyShiftUp}, decodeDone
	case mod == '2' && key == 'B':
		return KeyEvent{Code: KeyShiftDown}, decodeDone
	case mod == '2' && key == 'C':
		return KeyEvent{Code: KeyShiftRight}, decodeDone
	case mod == '2' && key == 'D':
		return KeyEvent{Code: KeyShiftLeft}, decodeDone
	}
	return UnknownEvent{}, decodeDone
}

// decodeSpecialKey decodes ESC [ <code> ~ navigation and function keys.
func decodeSpecialKey(buf []byte) (InputEvent, decodeStatus) {
	fields := splitParams(buf[:len(buf)-1])
	if len(fields) == 0 {
		return nil, decodeInvalid
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, decodeInvalid
	}
	if len(fields) > 1 {
		// Modifier + special key combinations (e.g. Shift+Delete arrives
		// as "3;2~") are not decoded.
		return UnknownEvent{}, decodeDone
	}
	switch code {
	case 1, 7:
		return KeyEvent{Code: KeyHome}, decodeDone
	case 2:
		return KeyEvent{Code: KeyInsert}, decodeDone
	case 3:
		return KeyEvent{Code: KeyDelete}, decodeDone
	case 4, 8:
		return KeyEvent{Code: KeyEnd}, decodeDone
	case 5:
		return KeyEvent{Code: KeyPageUp}, decodeDone
	case 6:
		return KeyEvent{Code: KeyPageDown}, decodeDone
	case 11, 12, 13, 14, 15:
		return KeyF(code - 10), decodeDone
	case 17, 18, 19, 20, 21:
		return KeyF(code - 11), decodeDone
	case 23, 24:
		return KeyF(code - 12), decodeDone
	}
	return UnknownEvent{}, decodeDone
}

// decodeCursorReport decodes ESC [ Cy ; Cx R, the response to a
// cursor-position query. Row comes first on the wire; both are one-based.
func decodeCursorReport(buf []byte) (InputEvent, decodeStatus) {
	fields := splitParams(buf[:len(buf)-1])
	if len(fields) < 2 {
		return nil, decodeInvalid
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, decodeInvalid
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, decodeInvalid
	}
	return cursorPos{x: col - 1, y: row - 1}, decodeDone
}

// decodeX10Mouse decodes ESC [ M Cb Cx Cy, the single-byte-field dialect.
func decodeX10Mouse(buf []byte) (InputEvent, decodeStatus) {
	if len(buf) < 4 {
		return nil, decodeIncomplete
	}
	cb := int(int8(buf[1])) - 32
	x := x10Coord(buf[2])
	y := x10Coord(buf[3])

	var m MouseEvent
	switch cb & 0b11 {
	case 0:
		if cb&0x40 != 0 {
			m = MouseEvent{Kind: MousePress, Button: MouseWheelUp, X: x, Y: y}
		} else {
			m = MouseEvent{Kind: MousePress, Button: MouseLeft, X: x, Y: y}
		}
	case 1:
		if cb&0x40 != 0 {
			m = MouseEvent{Kind: MousePress, Button: MouseWheelDown, X: x, Y: y}
		} else {
			m = MouseEvent{Kind: MousePress, Button: MouseMiddle, X: x, Y: y}
		}
	case 2:
		m = MouseEvent{Kind: MousePress, Button: MouseRight, X: x, Y: y}
	case 3:
		m = MouseEvent{Kind: MouseRelease, X: x, Y: y}
	}
	return m, decodeDone
}

func x10Coord(b byte) int {
	v := int(b)
	if v < 32 {
		v = 32
	}
	return v - 32 - 1
}

// decodeSGRMouse decodes the xterm 1006 dialect:
// ESC [ < Cb ; Cx ; Cy (M|m), M for press and m for release.
func decodeSGRMouse(buf []byte) (InputEvent, decodeStatus) {
	last := buf[len(buf)-1]
	if last != 'M' && last != 'm' {
		return nil, decodeIncomplete
	}
	cb, x, y, ok := parseMouseParams(buf[1 : len(buf)-1])
	if !ok {
		return nil, decodeInvalid
	}

	switch cb {
	case 0, 1, 2, 64, 65:
		var button MouseButton
		switch cb {
		case 0:
			button = MouseLeft
		case 1:
			button = MouseMiddle
		case 2:
			button = MouseRight
		case 64:
			button = MouseWheelUp
		case 65:
			button = MouseWheelDown
		}
		if last == 'M' {
			return MouseEvent{Kind: MousePress, Button: button, X: x, Y: y}, decodeDone
		}
		return MouseEvent{Kind: MouseRelease, X: x, Y: y}, decodeDone
	case 32:
		return MouseEvent{Kind: MouseHold, X: x, Y: y}, decodeDone
	case 3:
		return MouseEvent{Kind: MouseRelease, X: x, Y: y}, decodeDone
	}
	return UnknownEvent{}, decodeDone
}

// decodeRxvtMouse decodes the urxvt 1015 dialect: ESC [ Cb ; Cx ; Cy ; M.
func decodeRxvtMouse(buf []byte) (InputEvent, decodeStatus) {
	cb, x, y, ok := parseMouseParams(buf[:len(buf)-1])
	if !ok {
		return nil, decodeInvalid
	}

	switch cb {
	case 32:
		return MouseEvent{Kind: MousePress, Button: MouseLeft, X: x, Y: y}, decodeDone
	case 33:
		return MouseEvent{Kind: MousePress, Button: MouseMiddle, X: x, Y: y}, decodeDone
	case 34:
		return MouseEvent{Kind: MousePress, Button: MouseRight, X: x, Y: y}, decodeDone
	case 35:
		return MouseEvent{Kind: MouseRelease, X: x, Y: y}, decodeDone
	case 64:
		return MouseEvent{Kind: MouseHold, X: x, Y: y}, decodeDone
	case 96, 97:
		return MouseEvent{Kind: MousePress, Button: MouseWheelUp, X: x, Y: y}, decodeDone
	}
	return MouseEvent{Kind: MouseUnknown}, decodeDone
}

// parseMouseParams parses the semicolon-separated Cb ; Cx ; Cy fields common
// to the SGR and rxvt dialects, converting the one-based coordinates.
func parseMouseParams(buf []byte) (cb, x, y int, ok bool) {
	fields := splitParams(buf)
	if len(fields) < 3 {
		return 0, 0, 0, false
	}
	var err error
	if cb, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, 0, false
	}
	if x, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, 0, false
	}
	if y, err = strconv.Atoi(fields[2]); err != nil {
		return 0, 0, 0, false
	}
	return cb, x - 1, y - 1, true
}

func splitParams(buf []byte) []string {
	parts := bytes.Split(buf, []byte{';'})
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) > 0 {
			fields = append(fields, string(p))
		}
	}
	return fields
}

// decodeRune decodes one UTF-8 scalar from the front of buf, waiting for
// continuation bytes when the buffer ends mid-sequence.
func decodeRune(buf []byte) (rune, decodeStatus) {
	// Reject bad continuation bytes early so a malformed sequence does not
	// sit in the buffer waiting for length it will never legally reach.
	n := 1
	switch b := buf[0]; {
	case b < 0x80:
		return rune(b), decodeDone
	case b >= 0xc0 && b <= 0xdf:
		n = 2
	case b >= 0xe0 && b <= 0xef:
		n = 3
	case b >= 0xf0 && b <= 0xf7:
		n = 4
	default:
		return 0, decodeInvalid
	}
	tail := buf[1:]
	if len(tail) > n-1 {
		tail = tail[:n-1]
	}
	for _, b := range tail {
		if b&0xc0 != 0x80 {
			return 0, decodeInvalid
		}
	}
	if len(buf) < n {
		return 0, decodeIncomplete
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return 0, decodeInvalid
	}
	return r, decodeDone
}
