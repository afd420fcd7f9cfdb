package tinput

import "fmt"

// InputEvent is a single decoded terminal input event: a key press, a mouse
// action, or a sequence that was recognized but could not be classified.
//
// All concrete event types are comparable structs, so two events may be
// compared with ==; AsyncReader relies on this for sentinel matching.
type InputEvent interface {
	inputEvent()
}

// KeyCode identifies a key or key combination in a KeyEvent.
type KeyCode uint8

// Key codes for special keys and key combinations.
const (
	KeyChar KeyCode = iota // unicode character, see KeyEvent.Ch
	KeyAlt                 // Alt+character, see KeyEvent.Ch
	KeyCtrl                // Ctrl+character, see KeyEvent.Ch
	KeyBackspace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyNull
	KeyEsc
	KeyCtrlUp
	KeyCtrlDown
	KeyCtrlRight
	KeyCtrlLeft
	KeyShiftUp
	KeyShiftDown
	KeyShiftRight
	KeyShiftLeft
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	maxKeyCode
)

var keyCodeNames = [maxKeyCode]string{
	KeyChar:       "Char",
	KeyAlt:        "Alt",
	KeyCtrl:       "Ctrl",
	KeyBackspace:  "Backspace",
	KeyEnter:      "Enter",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyTab:        "Tab",
	KeyBackTab:    "BackTab",
	KeyDelete:     "Delete",
	KeyInsert:     "Insert",
	KeyNull:       "Null",
	KeyEsc:        "Esc",
	KeyCtrlUp:     "Ctrl+Up",
	KeyCtrlDown:   "Ctrl+Down",
	KeyCtrlRight:  "Ctrl+Right",
	KeyCtrlLeft:   "Ctrl+Left",
	KeyShiftUp:    "Shift+Up",
	KeyShiftDown:  "Shift+Down",
	KeyShiftRight: "Shift+Right",
	KeyShiftLeft:  "Shift+Left",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
}

func (k KeyCode) String() string {
	if k < maxKeyCode {
		return keyCodeNames[k]
	}
	return fmt.Sprintf("KeyCode<%02x>", uint8(k))
}

// KeyEvent is a single key press. Ch is meaningful only for the KeyChar,
// KeyAlt and KeyCtrl codes.
type KeyEvent struct {
	Code KeyCode
	Ch   rune
}

func (KeyEvent) inputEvent() {}

// Char builds a plain character key event.
func Char(r rune) KeyEvent { return KeyEvent{Code: KeyChar, Ch: r} }

// Alt builds an Alt+character key event.
func Alt(r rune) KeyEvent { return KeyEvent{Code: KeyAlt, Ch: r} }

// Ctrl builds a Ctrl+character key event.
func Ctrl(r rune) KeyEvent { return KeyEvent{Code: KeyCtrl, Ch: r} }

// KeyF builds a function key event for F1 through F12; n outside that range
// panics.
func KeyF(n int) KeyEvent {
	if n < 1 || n > 12 {
		panic(fmt.Sprintf("tinput: no such function key F%d", n))
	}
	return KeyEvent{Code: KeyF1 + KeyCode(n-1)}
}

func (k KeyEvent) String() string {
	switch k.Code {
	case KeyChar:
		return fmt.Sprintf("Char(%q)", k.Ch)
	case KeyAlt:
		return fmt.Sprintf("Alt(%q)", k.Ch)
	case KeyCtrl:
		return fmt.Sprintf("Ctrl(%q)", k.Ch)
	}
	return k.Code.String()
}

// MouseButton identifies the button involved in a mouse press.
type MouseButton uint8

// Mouse buttons; the wheel directions are reported as presses.
const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseWheelUp
	MouseWheelDown
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseRight:
		return "Right"
	case MouseMiddle:
		return "Middle"
	case MouseWheelUp:
		return "WheelUp"
	case MouseWheelDown:
		return "WheelDown"
	}
	return fmt.Sprintf("MouseButton<%02x>", uint8(b))
}

// MouseAction classifies a MouseEvent.
type MouseAction uint8

// Mouse actions. MouseHold is a drag: motion while a button is down.
const (
	MousePress MouseAction = iota
	MouseRelease
	MouseHold
	MouseUnknown
)

// MouseEvent is a single mouse action at a zero-based cell coordinate.
// Button is meaningful only for MousePress.
type MouseEvent struct {
	Kind   MouseAction
	Button MouseButton
	X, Y   int
}

func (MouseEvent) inputEvent() {}

func (m MouseEvent) String() string {
	switch m.Kind {
	case MousePress:
		return fmt.Sprintf("Press(%v, %d, %d)", m.Button, m.X, m.Y)
	case MouseRelease:
		return fmt.Sprintf("Release(%d, %d)", m.X, m.Y)
	case MouseHold:
		return fmt.Sprintf("Hold(%d, %d)", m.X, m.Y)
	}
	return "MouseUnknown"
}

// UnsupportedEvent carries the raw bytes of a sequence that is known to be
// valid input but has no typed representation. Reserved: the current decoder
// never produces it.
type UnsupportedEvent struct {
	Raw string
}

func (UnsupportedEvent) inputEvent() {}

func (u UnsupportedEvent) String() string { return fmt.Sprintf("Unsupported(%q)", u.Raw) }

// UnknownEvent marks a recognized but unclassifiable sequence.
type UnknownEvent struct{}

func (UnknownEvent) inputEvent() {}

func (UnknownEvent) String() string { return "Unknown" }

// cursorPos is the terminal's response to a cursor-position query. It flows
// through the distributor like any other event but every reader front-end
// filters it out; it never reaches the public stream.
type cursorPos struct {
	x, y int
}

func (cursorPos) inputEvent() {}

func (c cursorPos) String() string { return fmt.Sprintf("cursorPos(%d, %d)", c.x, c.y) }
