// Package io provides channels that connect an intcode machine's input
// queue and output sequence to the outside world: byte streams as ASCII
// text (Tape), byte streams as decimal numbers (Tape in numeric mode), and
// scripted line input (Script).
package io

import (
	"iter"
)

// Channel defines the interface for all I/O channels attached to a machine.
// Input is delivered in records: one line of text, or one number.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields the values of the next record.
	Receive() iter.Seq[int64]
	// Send writes a single machine output value to the channel.
	Send(value int64) error
}
