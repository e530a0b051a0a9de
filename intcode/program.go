package intcode

import (
	"iter"
)

// Link is a label reference waiting to be resolved into Codes[Index].
type Link struct {
	Index int
	Label string
}

// Opcode represents a line of assembled code with its source location and generated words.
type Opcode struct {
	LineNo int
	Ip     int64
	Words  []string
	Codes  []int64
	Links  []Link
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// ProgramOf wraps a binary without source information.
func ProgramOf(binary []int64) (prog *Program) {
	prog = &Program{}
	if len(binary) > 0 {
		prog.Opcodes = []Opcode{{Codes: binary}}
	}

	return
}

func (prog *Program) Debug(ip int64) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+int64(len(op.Codes)) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(ip - op.Ip),
			}
			break
		}
	}

	return
}

// Binary returns a fresh copy of the program words, ready to execute.
func (prog *Program) Binary() (bins []int64) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

func (prog *Program) Codes() iter.Seq2[int64, int64] {
	return func(yield func(ip int64, code int64) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Ip+int64(n), code) {
					return
				}
			}
		}
	}
}

// Listing iterates over the disassembly of a binary.
func Listing(binary []int64) iter.Seq2[int64, string] {
	return func(yield func(ip int64, text string) bool) {
		for ip := int64(0); ip < int64(len(binary)); {
			text, size := Disassemble(binary, ip)
			if !yield(ip, text) {
				return
			}
			ip += int64(size)
		}
	}
}
