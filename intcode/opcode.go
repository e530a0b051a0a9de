package intcode

import (
	"fmt"
	"strings"
)

// Op is an operation code, the low two decimal digits of an instruction.
type Op int

const (
	OP_ADD  = Op(1)  // add
	OP_MUL  = Op(2)  // mul
	OP_IN   = Op(3)  // in
	OP_OUT  = Op(4)  // out
	OP_JT   = Op(5)  // jt
	OP_JF   = Op(6)  // jf
	OP_LT   = Op(7)  // lt
	OP_EQ   = Op(8)  // eq
	OP_ARB  = Op(9)  // arb
	OP_HALT = Op(99) // hlt
)

type opInfo struct {
	name   string
	params int
	target int // Parameter index written by the op, or -1.
}

var opTable = map[Op]opInfo{
	OP_ADD:  {"add", 3, 2},
	OP_MUL:  {"mul", 3, 2},
	OP_IN:   {"in", 1, 0},
	OP_OUT:  {"out", 1, -1},
	OP_JT:   {"jt", 2, -1},
	OP_JF:   {"jf", 2, -1},
	OP_LT:   {"lt", 3, 2},
	OP_EQ:   {"eq", 3, 2},
	OP_ARB:  {"arb", 1, -1},
	OP_HALT: {"hlt", 0, -1},
}

// Valid returns true for the ten defined operations.
func (op Op) Valid() bool {
	_, ok := opTable[op]
	return ok
}

// Params returns the number of parameters that follow the instruction.
func (op Op) Params() int {
	return opTable[op].params
}

// Target returns the index of the parameter written by the operation.
func (op Op) Target() (index int, ok bool) {
	info, valid := opTable[op]
	if !valid || info.target < 0 {
		return
	}

	return info.target, true
}

func (op Op) String() string {
	info, ok := opTable[op]
	if !ok {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return info.name
}

// Mode is a parameter addressing mode.
type Mode int

const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Valid returns true for the three addressing modes.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

func (mode Mode) String() string {
	switch mode {
	case MODE_POSITION:
		return "pos"
	case MODE_IMMEDIATE:
		return "imm"
	case MODE_RELATIVE:
		return "rel"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// Code is a raw instruction word.
type Code int64

// MakeCode encodes an operation and its parameter modes.
func MakeCode(op Op, modes ...Mode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}

	return Code(word)
}

// Op returns the operation code from the instruction word.
func (code Code) Op() Op {
	return Op(int64(code) % 100)
}

// Mode returns the addressing mode of parameter n, counting from zero.
func (code Code) Mode(n int) Mode {
	word := int64(code) / 100
	for range n {
		word /= 10
	}

	return Mode(word % 10)
}

// Decode splits the instruction word into an operation and parameter modes.
func Decode(code Code) (op Op, modes [3]Mode, err error) {
	op = code.Op()
	if !op.Valid() {
		err = ErrInvalidOpcode
		return
	}

	for n := range modes {
		modes[n] = code.Mode(n)
	}

	return
}

// String returns the operation and parameter modes used by the code.
func (code Code) String() string {
	op, modes, err := Decode(code)
	if err != nil {
		return fmt.Sprintf(".data %d", int64(code))
	}

	parts := []string{op.String()}
	for n := range op.Params() {
		parts = append(parts, modes[n].String())
	}

	return strings.Join(parts, ".")
}

// formatOperand renders a parameter in assembler syntax.
func formatOperand(mode Mode, value int64) string {
	switch mode {
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#%d", value)
	case MODE_RELATIVE:
		return fmt.Sprintf("@%d", value)
	}
	return fmt.Sprintf("[%d]", value)
}

// Disassemble renders the instruction at ip in assembler syntax, and
// returns the number of words it occupies. Words that do not decode as an
// instruction render as data.
func Disassemble(mem []int64, ip int64) (text string, size int) {
	if ip < 0 || ip >= int64(len(mem)) {
		return
	}

	code := Code(mem[ip])
	op, modes, err := Decode(code)
	if err != nil || ip+int64(op.Params()) >= int64(len(mem)) {
		return fmt.Sprintf(".data %d", mem[ip]), 1
	}

	parts := []string{op.String()}
	for n := range op.Params() {
		if !modes[n].Valid() {
			return fmt.Sprintf(".data %d", mem[ip]), 1
		}
		parts = append(parts, formatOperand(modes[n], mem[ip+1+int64(n)]))
	}

	return strings.Join(parts, " "), 1 + op.Params()
}
