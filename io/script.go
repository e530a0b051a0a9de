package io

import (
	"iter"
)

// Script replays fixed lines of text as input records, and records all output.
type Script struct {
	Lines  []string
	Output []int64

	next int
}

var _ Channel = (*Script)(nil)

// Rewind restarts the script and discards recorded output.
func (sc *Script) Rewind() {
	sc.next = 0
	sc.Output = nil
}

// Remaining returns the number of lines not yet delivered.
func (sc *Script) Remaining() int {
	return len(sc.Lines) - sc.next
}

// Receive yields the bytes of the next line, followed by a newline.
func (sc *Script) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if sc.next >= len(sc.Lines) {
			return
		}
		line := sc.Lines[sc.next]
		sc.next++

		for n := range len(line) {
			if !yield(int64(line[n])) {
				return
			}
		}
		yield('\n')
	}
}

// Send records an output value.
func (sc *Script) Send(value int64) error {
	sc.Output = append(sc.Output, value)
	return nil
}

// Text returns the recorded output as text.
func (sc *Script) Text() string {
	return AsString(sc.Output)
}
