//go:build windows

package tinput

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW = kernel32.NewProc("ReadConsoleInputW")
)

const pollTimeoutMillis = 100

// Console input record types.
const (
	keyEventRecordType              = 0x0001
	mouseEventRecordType            = 0x0002
	windowBufferSizeEventRecordType = 0x0004
	menuEventRecordType             = 0x0008
	focusEventRecordType            = 0x0010
)

// Control key state flags of a key event record.
const (
	rightAltPressed  = 0x0001
	leftAltPressed   = 0x0002
	rightCtrlPressed = 0x0004
	leftCtrlPressed  = 0x0008
	shiftPressed     = 0x0010
)

// Mouse event flags.
const (
	mouseMoved    = 0x0001
	doubleClick   = 0x0002
	mouseWheeled  = 0x0004
	mouseHWheeled = 0x0008
)

// Button state bits of a mouse event record.
const (
	fromLeft1stButtonPressed = 0x0001
	rightmostButtonPressed   = 0x0002
	fromLeft2ndButtonPressed = 0x0004
)

// Virtual-key codes handled by the key record mapping.
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0d
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkEscape  = 0x1b
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkInsert  = 0x2d
	vkDelete  = 0x2e
	vkF1      = 0x70
	vkF12     = 0x7b
)

type coord struct {
	x int16
	y int16
}

type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

type mouseEventRecord struct {
	mousePosition   coord
	buttonState     uint32
	controlKeyState uint32
	eventFlags      uint32
}

// inputRecord is the C INPUT_RECORD layout: a type tag and a union sized for
// its largest member.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// consoleSource reads native console input records; the platform has already
// parsed the input, so no byte-level decoding happens here.
type consoleSource struct {
	handle windows.Handle
}

func newPlatformSource() (EventSource, error) {
	h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("tinput: unable to access console input: %w", err)
	}
	return &consoleSource{handle: h}, nil
}

// PollEvent waits up to the poll timeout for a console input record, then
// maps it to the shared event model. Records with no POSIX equivalent
// (resize, focus, menu, double click, horizontal wheel) produce nothing.
func (c *consoleSource) PollEvent() (InputEvent, error) {
	ev, err := windows.WaitForSingleObject(c.handle, pollTimeoutMillis)
	if err != nil {
		return nil, fmt.Errorf("tinput: console wait: %w", err)
	}
	if ev != windows.WAIT_OBJECT_0 {
		return nil, nil
	}

	var rec inputRecord
	var read uint32
	r1, _, err := procReadConsoleInputW.Call(
		uintptr(c.handle),
		uintptr(unsafe.Pointer(&rec)),
		1,
		uintptr(unsafe.Pointer(&read)),
	)
	if r1 == 0 {
		return nil, fmt.Errorf("tinput: console read: %w", err)
	}
	if read == 0 {
		return nil, nil
	}

	switch rec.eventType {
	case keyEventRecordType:
		key := (*keyEventRecord)(unsafe.Pointer(&rec.event))
		return mapKeyRecord(key), nil
	case mouseEventRecordType:
		mouse := (*mouseEventRecord)(unsafe.Pointer(&rec.event))
		return mapMouseRecord(mouse), nil
	}
	// Window buffer size, focus, and menu records are ignored.
	return nil, nil
}

func (c *consoleSource) Close() error { return nil }

// mapKeyRecord maps a key event record into the same KeyEvent space the
// POSIX decoder produces; returns nil for key-up and bare modifier records.
func mapKeyRecord(rec *keyEventRecord) InputEvent {
	if rec.keyDown == 0 {
		return nil
	}

	state := rec.controlKeyState
	ctrl := state&(rightCtrlPressed|leftCtrlPressed) != 0
	shift := state&shiftPressed != 0
	alt := state&(rightAltPressed|leftAltPressed) != 0

	switch vk := rec.virtualKeyCode; vk {
	case vkShift, vkControl, vkMenu:
		return nil
	case vkBack:
		return KeyEvent{Code: KeyBackspace}
	case vkEscape:
		return KeyEvent{Code: KeyEsc}
	case vkReturn:
		return KeyEvent{Code: KeyEnter}
	case vkLeft:
		return modifierArrow(ctrl, shift, KeyCtrlLeft, KeyShiftLeft, KeyLeft)
	case vkUp:
		return modifierArrow(ctrl, shift, KeyCtrlUp, KeyShiftUp, KeyUp)
	case vkRight:
		return modifierArrow(ctrl, shift, KeyCtrlRight, KeyShiftRight, KeyRight)
	case vkDown:
		return modifierArrow(ctrl, shift, KeyCtrlDown, KeyShiftDown, KeyDown)
	case vkPrior:
		return KeyEvent{Code: KeyPageUp}
	case vkNext:
		return KeyEvent{Code: KeyPageDown}
	case vkHome:
		return KeyEvent{Code: KeyHome}
	case vkEnd:
		return KeyEvent{Code: KeyEnd}
	case vkDelete:
		return KeyEvent{Code: KeyDelete}
	case vkInsert:
		return KeyEvent{Code: KeyInsert}
	default:
		if vk >= vkF1 && vk <= vkF12 {
			return KeyF(int(vk) - vkF1 + 1)
		}
	}

	raw := rec.unicodeChar
	if raw >= 255 {
		return nil
	}
	ch := rune(raw)

	switch {
	case alt:
		// With Alt held the character cell is empty; the pressed key lives
		// in the virtual-key code.
		command := rune(rec.virtualKeyCode)
		if command >= 'A' && command <= 'Z' {
			return Alt(command)
		}
		return nil
	case ctrl:
		// Same control-character offsets as the POSIX byte path, so both
		// platforms produce identical Ctrl values.
		switch {
		case raw >= 0x01 && raw <= 0x1a:
			return Ctrl(rune(raw - 0x01 + 'a'))
		case raw >= 0x1c && raw <= 0x1f:
			return Ctrl(rune(raw - 0x1c + '4'))
		}
		return nil
	case shift && ch == '\t':
		return KeyEvent{Code: KeyBackTab}
	case ch == '\t':
		return KeyEvent{Code: KeyTab}
	}
	return Char(ch)
}

func modifierArrow(ctrl, shift bool, ctrlCode, shiftCode, plain KeyCode) InputEvent {
	switch {
	case ctrl:
		return KeyEvent{Code: ctrlCode}
	case shift:
		return KeyEvent{Code: shiftCode}
	}
	return KeyEvent{Code: plain}
}

// mapMouseRecord maps a mouse event record; coordinates are already
// zero-based on Windows.
func mapMouseRecord(rec *mouseEventRecord) InputEvent {
	x, y := int(rec.mousePosition.x), int(rec.mousePosition.y)

	switch rec.eventFlags {
	case 0:
		// Single press or release.
		switch rec.buttonState {
		case 0:
			return MouseEvent{Kind: MouseRelease, X: x, Y: y}
		case fromLeft1stButtonPressed:
			return MouseEvent{Kind: MousePress, Button: MouseLeft, X: x, Y: y}
		case rightmostButtonPressed:
			return MouseEvent{Kind: MousePress, Button: MouseRight, X: x, Y: y}
		case fromLeft2ndButtonPressed:
			return MouseEvent{Kind: MousePress, Button: MouseMiddle, X: x, Y: y}
		}
		return nil
	case mouseMoved:
		// Drag: motion only counts while a button is held.
		if rec.buttonState != 0 {
			return MouseEvent{Kind: MouseHold, X: x, Y: y}
		}
		return nil
	case mouseWheeled:
		// The sign of the high word gives the wheel direction.
		if int32(rec.buttonState) < 0 {
			return MouseEvent{Kind: MousePress, Button: MouseWheelDown, X: x, Y: y}
		}
		return MouseEvent{Kind: MousePress, Button: MouseWheelUp, X: x, Y: y}
	}
	// Double click and horizontal wheel have no POSIX terminal equivalent.
	return nil
}
