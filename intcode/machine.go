package intcode

import (
	"errors"
	"fmt"
	"log"
)

// Status is the observable execution state of a machine.
type Status int

const (
	StatusReady   = Status(0) // ready
	StatusBlocked = Status(1) // blocked
	StatusHalted  = Status(2) // halted
)

func (status Status) String() string {
	switch status {
	case StatusReady:
		return "ready"
	case StatusBlocked:
		return "blocked"
	case StatusHalted:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", int(status))
}

// Machine is the simulation context for a single intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Memory *Memory // Program and data memory.

	Ip           int64 // Current instruction pointer.
	RelativeBase int64 // Offset for relative mode parameters.

	Ticks int // Instructions executed.

	input   Queue
	output  Queue
	halted  bool
	blocked bool
}

// NewMachine creates a machine that executes program in place, with
// optional initial input.
func NewMachine(program []int64, input ...int64) (m *Machine) {
	m = &Machine{
		Memory: NewMemory(program),
	}
	m.input.Push(input...)

	return
}

// AddInput appends values to the input queue.
func (m *Machine) AddInput(values ...int64) {
	m.input.Push(values...)
}

// PendingInput returns the number of unconsumed input values.
func (m *Machine) PendingInput() int {
	return m.input.Len()
}

// Output returns the values output since the last ClearOutput.
func (m *Machine) Output() []int64 {
	return m.output.Values()
}

// ClearOutput empties the output sequence.
func (m *Machine) ClearOutput() {
	m.output.Reset()
}

// TakeOutput returns the output sequence and clears it.
func (m *Machine) TakeOutput() (values []int64) {
	values = m.output.Data
	m.output.Reset()
	return
}

// IsHalted returns true once the halt instruction has executed.
func (m *Machine) IsHalted() bool {
	return m.halted
}

// Status returns the execution state left by the last instruction.
func (m *Machine) Status() Status {
	switch {
	case m.halted:
		return StatusHalted
	case m.blocked:
		return StatusBlocked
	}
	return StatusReady
}

// MemorySnapshot returns an independent copy of the machine memory.
func (m *Machine) MemorySnapshot() *Memory {
	return m.Memory.Snapshot()
}

// Clone returns an independent copy of the complete machine state.
func (m *Machine) Clone() *Machine {
	return &Machine{
		Verbose:      m.Verbose,
		Memory:       m.Memory.Snapshot(),
		Ip:           m.Ip,
		RelativeBase: m.RelativeBase,
		Ticks:        m.Ticks,
		input:        m.input.Clone(),
		output:       m.output.Clone(),
		halted:       m.halted,
		blocked:      m.blocked,
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	words := m.window(3)
	code := words[0]
	listing, _ := Disassemble(words, 0)

	text += fmt.Sprintf("% 7s: %d\n", "ip", m.Ip)
	text += fmt.Sprintf("% 7s: %d\n", "rb", m.RelativeBase)
	text += fmt.Sprintf("% 7s: %v\n", "status", m.Status())
	text += fmt.Sprintf("% 7s: %d\n", "ticks", m.Ticks)
	text += fmt.Sprintf("% 7s: %d\n", "input", m.input.Len())
	text += fmt.Sprintf("% 7s: %d\n", "output", m.output.Len())
	text += fmt.Sprintf("% 7s: %d (%v)\n", "code", code, listing)

	return
}

// Run executes instructions until the machine halts or needs input.
//
// Input starvation is not an error: Run returns StatusBlocked, with Ip
// still on the input instruction. Running a halted machine fails with
// ErrHalted.
func (m *Machine) Run() (status Status, err error) {
	if m.halted {
		status = StatusHalted
		err = ErrHalted
		return
	}

	for !m.halted {
		err = m.Tick()
		if errors.Is(err, ErrEndOfInput) {
			err = nil
			break
		}
		if err != nil {
			break
		}
	}

	status = m.Status()

	return
}

// FetchCode fetches the instruction word at the instruction pointer.
func (m *Machine) FetchCode() (code Code, err error) {
	if m.Ip < 0 || m.Ip >= m.Memory.Extent() {
		err = &ErrFault{Ip: m.Ip, Err: ErrProgramCounterRange}
		return
	}

	value, err := m.Memory.Read(m.Ip)
	if err != nil {
		err = &ErrFault{Ip: m.Ip, Err: err}
		return
	}

	code = Code(value)

	return
}

// Tick executes a single instruction.
func (m *Machine) Tick() (err error) {
	if m.halted {
		err = ErrHalted
		return
	}

	code, err := m.FetchCode()
	if err != nil {
		return
	}

	err = m.Execute(code)

	return
}

// Execute executes a single instruction word located at the instruction pointer.
func (m *Machine) Execute(code Code) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrEndOfInput) {
			err = &ErrFault{Ip: m.Ip, Code: code, Err: err}
		}
	}()

	op, modes, err := Decode(code)
	if err != nil {
		return
	}

	if m.Verbose {
		text, _ := Disassemble(m.window(op.Params()), 0)
		log.Printf("intcode: %04d: %v", m.Ip, text)
	}

	next_ip := m.Ip + 1 + int64(op.Params())

	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b, dst int64
		a, err = m.readParam(0, modes[0])
		if err != nil {
			return
		}
		b, err = m.readParam(1, modes[1])
		if err != nil {
			return
		}
		dst, err = m.writeAddr(2, modes[2])
		if err != nil {
			return
		}
		var value int64
		switch op {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LT:
			if a < b {
				value = 1
			}
		case OP_EQ:
			if a == b {
				value = 1
			}
		}
		err = m.Memory.Write(dst, value)
		if err != nil {
			return
		}
	case OP_IN:
		var dst int64
		dst, err = m.writeAddr(0, modes[0])
		if err != nil {
			return
		}
		value, ok := m.input.Peek()
		if !ok {
			// Don't advance to next IP.
			m.blocked = true
			if m.Verbose {
				log.Printf("intcode: %04d: blocked on input", m.Ip)
			}
			err = ErrEndOfInput
			return
		}
		err = m.Memory.Write(dst, value)
		if err != nil {
			return
		}
		m.input.Pop()
	case OP_OUT:
		var value int64
		value, err = m.readParam(0, modes[0])
		if err != nil {
			return
		}
		m.output.Push(value)
	case OP_JT, OP_JF:
		var value, target int64
		value, err = m.readParam(0, modes[0])
		if err != nil {
			return
		}
		target, err = m.readParam(1, modes[1])
		if err != nil {
			return
		}
		if (value != 0) == (op == OP_JT) {
			next_ip = target
		}
	case OP_ARB:
		var value int64
		value, err = m.readParam(0, modes[0])
		if err != nil {
			return
		}
		m.RelativeBase += value
	case OP_HALT:
		m.halted = true
		if m.Verbose {
			log.Printf("intcode: %04d: halted after %d ticks", m.Ip, m.Ticks+1)
		}
	}

	m.blocked = false
	m.Ip = next_ip
	m.Ticks++

	return
}

// window returns the instruction at Ip and its raw parameters.
func (m *Machine) window(params int) (words []int64) {
	for n := range 1 + params {
		value, _ := m.Memory.Read(m.Ip + int64(n))
		words = append(words, value)
	}
	return
}

// rawParam returns the stored value of parameter n of the current instruction.
func (m *Machine) rawParam(n int) (int64, error) {
	return m.Memory.Read(m.Ip + 1 + int64(n))
}

// readParam resolves parameter n as a value.
func (m *Machine) readParam(n int, mode Mode) (value int64, err error) {
	raw, err := m.rawParam(n)
	if err != nil {
		return
	}

	switch mode {
	case MODE_POSITION:
		value, err = m.Memory.Read(raw)
	case MODE_IMMEDIATE:
		value = raw
	case MODE_RELATIVE:
		value, err = m.Memory.Read(m.RelativeBase + raw)
	default:
		err = ErrInvalidAddressingMode
	}

	return
}

// writeAddr resolves parameter n as a target address.
func (m *Machine) writeAddr(n int, mode Mode) (addr int64, err error) {
	raw, err := m.rawParam(n)
	if err != nil {
		return
	}

	switch mode {
	case MODE_POSITION:
		addr = raw
	case MODE_RELATIVE:
		addr = m.RelativeBase + raw
	default:
		err = ErrInvalidAddressingMode
		return
	}

	if addr < 0 {
		err = ErrNegativeAddress
	}

	return
}
