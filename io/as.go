package io

import (
	"strconv"
	"strings"
)

// SendValues sends each value to the channel in order.
func SendValues(ch Channel, values ...int64) (err error) {
	for _, value := range values {
		err = ch.Send(value)
		if err != nil {
			return
		}
	}
	return
}

// SendString sends the bytes of a string to the channel.
func SendString(ch Channel, text string) (err error) {
	for n := range len(text) {
		err = ch.Send(int64(text[n]))
		if err != nil {
			return
		}
	}
	return
}

// IsAscii returns true if the value is a printable ASCII byte or newline.
func IsAscii(value int64) bool {
	return value == '\n' || (value >= ' ' && value < 0x7f)
}

// AsString renders machine output as text. Values outside ASCII are
// written as decimal on a line of their own.
func AsString(values []int64) string {
	var text strings.Builder

	for _, value := range values {
		if IsAscii(value) {
			text.WriteByte(byte(value))
			continue
		}
		text.WriteString(strconv.FormatInt(value, 10))
		text.WriteByte('\n')
	}

	return text.String()
}
