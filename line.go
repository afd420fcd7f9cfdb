package tinput

import (
	"bufio"
	"os"
	"strings"
)

// ReadLine reads one line from standard input with the trailing newline
// trimmed. It needs the terminal in its normal cooked mode; with raw mode
// active use a reader instead.
func ReadLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadChar blocks until a plain character key arrives, discarding every
// other event on the way.
func (p *Pool) ReadChar() (rune, error) {
	r := p.SyncReader()
	defer r.Close()
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return 0, err
		}
		if key, ok := ev.(KeyEvent); ok && key.Code == KeyChar {
			return key.Ch, nil
		}
	}
}
