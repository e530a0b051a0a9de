package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"
)

// Tape provides sequential I/O between a machine and byte streams.
//
// In ASCII mode each input record is one line of bytes, newline included,
// and output values that are printable ASCII are written as bytes. In
// numeric mode each record is one decimal number, separated by commas or
// whitespace, and every output value is written in decimal on its own line.
type Tape struct {
	Input   io.Reader
	Output  io.Writer
	Numeric bool

	reader *bufio.Reader
	err    error
}

var _ Channel = (*Tape)(nil)

// Rewind drops any buffered input. The underlying streams are not rewound.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.err = nil
}

// Err returns the first input error seen, other than end of file.
func (tc *Tape) Err() error {
	return tc.err
}

// Receive returns an iterator over the values of the next input record.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil {
			tc.err = ErrTapeMissing
			return
		}
		if tc.reader == nil {
			tc.reader = bufio.NewReader(tc.Input)
		}

		if tc.Numeric {
			value, ok := tc.nextNumber()
			if ok {
				yield(value)
			}
			return
		}

		for {
			b, err := tc.reader.ReadByte()
			if err != nil {
				if err != io.EOF {
					tc.err = err
				}
				return
			}
			if !yield(int64(b)) || b == '\n' {
				return
			}
		}
	}
}

// nextNumber reads the next separated decimal number.
func (tc *Tape) nextNumber() (value int64, ok bool) {
	var word []byte

	for {
		b, err := tc.reader.ReadByte()
		if err != nil {
			if err != io.EOF {
				tc.err = err
			}
			break
		}
		if b == ',' || unicode.IsSpace(rune(b)) {
			if len(word) > 0 {
				break
			}
			continue
		}
		word = append(word, b)
	}

	if len(word) == 0 {
		return
	}

	value, err := strconv.ParseInt(string(word), 10, 64)
	if err != nil {
		tc.err = ErrParseNumber(string(word))
		return
	}

	ok = true
	return
}

// Send writes an output value to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	if !tc.Numeric && IsAscii(value) {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)

	return
}
