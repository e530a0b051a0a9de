package io

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Receive_Ascii(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("north\nwest")}

	first := slices.Collect(tape.Receive())
	assert.Equal([]int64{'n', 'o', 'r', 't', 'h', '\n'}, first)

	second := slices.Collect(tape.Receive())
	assert.Equal([]int64{'w', 'e', 's', 't'}, second)

	assert.Empty(slices.Collect(tape.Receive()))
	assert.NoError(tape.Err())
}

func TestTape_Receive_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("abc\n")}

	for value := range tape.Receive() {
		assert.Equal(int64('a'), value)
		break
	}

	assert.Equal([]int64{'b', 'c', '\n'}, slices.Collect(tape.Receive()))
}

func TestTape_Receive_Numeric(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader(" 1,-22\n\n333 ,4"), Numeric: true}

	var values []int64
	for {
		record := slices.Collect(tape.Receive())
		if len(record) == 0 {
			break
		}
		assert.Len(record, 1)
		values = append(values, record...)
	}

	assert.Equal([]int64{1, -22, 333, 4}, values)
	assert.NoError(tape.Err())
}

func TestTape_Receive_NumericBad(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("12 x3"), Numeric: true}

	assert.Equal([]int64{12}, slices.Collect(tape.Receive()))
	assert.Empty(slices.Collect(tape.Receive()))

	var bad ErrParseNumber
	assert.True(errors.As(tape.Err(), &bad))
	assert.Equal(ErrParseNumber("x3"), bad)

	tape.Rewind()
	assert.NoError(tape.Err())
}

func TestTape_Missing(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}

	assert.Empty(slices.Collect(tape.Receive()))
	assert.ErrorIs(tape.Err(), ErrTapeMissing)
	assert.ErrorIs(tape.Send(1), ErrTapeMissing)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		numeric bool
		values  []int64
		output  string
	}){
		{"ascii", false, []int64{'h', 'i', '\n'}, "hi\n"},
		{"ascii_large", false, []int64{'o', 'k', '\n', 19349530}, "ok\n19349530\n"},
		{"ascii_negative", false, []int64{-5}, "-5\n"},
		{"numeric", true, []int64{'h', 1125899906842624}, "104\n1125899906842624\n"},
	}

	for _, entry := range table {
		out := &bytes.Buffer{}
		tape := &Tape{Output: out, Numeric: entry.numeric}
		assert.NoError(SendValues(tape, entry.values...), entry.name)
		assert.Equal(entry.output, out.String(), entry.name)
	}
}
