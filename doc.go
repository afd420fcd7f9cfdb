/*
Package tinput turns the raw byte stream of a terminal into a typed stream of
input events: key presses, mouse actions, and cursor-position reports.

A Pool owns the platform event source (a TTY file descriptor on POSIX
systems, the console input handle on Windows) and runs one background
goroutine that decodes input and broadcasts every event to all registered
readers. The goroutine starts with the first reader and stops, joined, with
the last.

Readers come in two shapes. SyncReader blocks until the next event:

	pool, err := tinput.NewPool()
	// ...
	r := pool.SyncReader()
	defer r.Close()
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			break // stream closed
		}
		if ev == (tinput.KeyEvent{Code: tinput.KeyEsc}) {
			break
		}
	}

AsyncReader polls without blocking and can stop at a sentinel event:

	r := pool.AsyncReaderUntil(tinput.KeyEvent{Code: tinput.KeyEsc})
	for {
		ev, state := r.Poll()
		switch state {
		case tinput.Ready:
			handle(ev)
		case tinput.Pending:
			time.Sleep(10 * time.Millisecond)
		case tinput.Closed:
			return
		}
	}

Every reader observes the full event sequence in publication order,
regardless of how fast it drains.

The terminal must be in raw mode before events can be read byte-wise;
managing raw mode is left to the caller. Mouse reporting is switched on and
off with EnableMouseMode and DisableMouseMode.
*/
package tinput
