// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/io"
)

// Emulator state. Machine + program listing + IO channel.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*intcode.Machine                  // Reference to the machine simulation.
	Program          *intcode.Program // Reference to the currently running program listing.
	Channel          io.Channel       // Source of input records and sink of output.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: intcode.NewMachine(nil),
		Program: &intcode.Program{},
	}

	return
}

// Load uses a binary, without source listing, as the program.
func (emu *Emulator) Load(binary []int64) {
	emu.Program = intcode.ProgramOf(binary)
}

// Reset loads a fresh copy of the program into a new machine, and rewinds the channel.
func (emu *Emulator) Reset() (err error) {
	binary := emu.Program.Binary()
	if len(binary) == 0 {
		err = ErrNotLoaded
		return
	}

	emu.Machine = intcode.NewMachine(binary)
	emu.Machine.Verbose = emu.Verbose

	if emu.Channel != nil {
		emu.Channel.Rewind()
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// LineNo returns the source line number for the current instruction,
// or 0 if it is not known.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Machine.Ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick runs the machine until it halts or needs input, sends its output
// to the channel, and feeds it the next input record.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: emu.LineNo(), Ip: emu.Machine.Ip, Err: err}
		}
	}()

	if emu.Channel == nil {
		err = ErrNoChannel
		return
	}

	status, err := emu.Machine.Run()
	send_err := io.SendValues(emu.Channel, emu.Machine.TakeOutput()...)
	if err != nil {
		return
	}
	if send_err != nil {
		err = send_err
		return
	}

	switch status {
	case intcode.StatusHalted:
		done = true
	case intcode.StatusBlocked:
		var count int
		for value := range emu.Channel.Receive() {
			emu.Machine.AddInput(value)
			count++
		}
		if emu.Verbose {
			log.Printf("emulator: blocked at %d, fed %d values", emu.Machine.Ip, count)
		}
		if count == 0 {
			err = ErrTapeEmpty
			if ch, ok := emu.Channel.(interface{ Err() error }); ok && ch.Err() != nil {
				err = ch.Err()
			}
		}
	}

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
