package intcode

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	BINARY_LINE_LIMIT = 16 << 20 // Longest accepted program text line.
)

// ParseBinary reads a program as base-10 integers separated by commas or
// newlines. Blank fields are ignored.
func ParseBinary(input io.Reader) (program []int64, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), BINARY_LINE_LIMIT)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		for _, field := range strings.Split(line, ",") {
			field = strings.TrimSpace(field)
			if len(field) == 0 {
				continue
			}
			var value int64
			value, err = strconv.ParseInt(field, 10, 64)
			if err != nil {
				err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrParseNumber(field)}
				return
			}
			program = append(program, value)
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if len(program) == 0 {
		err = ErrParseEmpty
	}

	return
}

// FormatBinary writes a program in its canonical comma separated form.
func FormatBinary(program []int64) string {
	fields := make([]string, len(program))
	for n, value := range program {
		fields[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(fields, ",")
}
