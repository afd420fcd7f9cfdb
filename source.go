package tinput

// EventSource produces decoded input events from some platform input.
//
// PollEvent returns the next event if one is ready. A nil event with a nil
// error means nothing was ready within the source's bounded wait; it says
// nothing about the end of the stream. A non-nil error is fatal to the
// source.
type EventSource interface {
	PollEvent() (InputEvent, error)
}
