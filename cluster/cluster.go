// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cluster runs many intcode machines cooperatively.
package cluster

import (
	"context"
	"log"
	"slices"

	"github.com/ezrec/intcode/intcode"
)

// Router delivers the output drained from machine 'from'.
type Router func(c *Cluster, from int, output []int64) error

// Cluster is a set of machines scheduled round-robin on one goroutine.
type Cluster struct {
	Verbose  bool               // If set, logs routed output.
	Machines []*intcode.Machine // Machines, addressed by index.
	Router   Router             // Output router. If nil, output stays on the machine.
	Rounds   int                // Completed scheduling rounds.
}

// NewCluster creates count machines, each with its own copy of program.
// If init is not nil, it is called for each machine, typically to queue
// the initial input.
func NewCluster(program []int64, count int, init func(n int, m *intcode.Machine)) (c *Cluster) {
	c = &Cluster{
		Machines: make([]*intcode.Machine, count),
	}

	for n := range count {
		m := intcode.NewMachine(slices.Clone(program))
		if init != nil {
			init(n, m)
		}
		c.Machines[n] = m
	}

	return
}

// Send queues input values for a machine.
func (c *Cluster) Send(index int, values ...int64) (err error) {
	if index < 0 || index >= len(c.Machines) {
		err = ErrNodeInvalid
		return
	}

	c.Machines[index].AddInput(values...)

	return
}

// Step runs every machine that has not halted until it halts or needs
// input, routing its output as it goes.
func (c *Cluster) Step() (err error) {
	for n, m := range c.Machines {
		if m.IsHalted() {
			continue
		}

		m.Verbose = c.Verbose

		_, err = m.Run()
		if err != nil {
			err = &ErrNode{Index: n, Err: err}
			return
		}

		if c.Router == nil || len(m.Output()) == 0 {
			continue
		}

		output := m.TakeOutput()
		if c.Verbose {
			log.Printf("cluster: %d: node %d: %v", c.Rounds, n, output)
		}

		err = c.Router(c, n, output)
		if err != nil {
			err = &ErrNode{Index: n, Err: err}
			return
		}
	}

	c.Rounds++

	return
}

// Idle is true when every machine has halted, or waits for input that
// has not been queued.
func (c *Cluster) Idle() bool {
	for _, m := range c.Machines {
		switch m.Status() {
		case intcode.StatusHalted:
		case intcode.StatusBlocked:
			if m.PendingInput() > 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// Halted is true when every machine has halted.
func (c *Cluster) Halted() bool {
	for _, m := range c.Machines {
		if !m.IsHalted() {
			return false
		}
	}

	return true
}

// Run steps the cluster until it is idle.
func (c *Cluster) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = c.Step()
		if err != nil {
			return
		}

		if c.Idle() {
			return
		}
	}
}

// PacketRouter sends fixed size packets of [address, payload...] to the
// addressed machine. Packets addressed outside the cluster are given to
// fallback, or fail with ErrNodeInvalid if fallback is nil. Partial packets
// are held until the rest of the packet arrives.
func PacketRouter(size int, fallback func(packet []int64) error) Router {
	pending := map[int][]int64{}

	return func(c *Cluster, from int, output []int64) (err error) {
		buffer := append(pending[from], output...)

		for len(buffer) >= size {
			packet := buffer[:size]
			buffer = buffer[size:]

			address := int(packet[0])
			switch {
			case packet[0] >= 0 && address < len(c.Machines):
				err = c.Send(address, packet[1:]...)
			case fallback != nil:
				err = fallback(slices.Clone(packet))
			default:
				err = ErrNodeInvalid
			}
			if err != nil {
				break
			}
		}

		pending[from] = slices.Clone(buffer)

		return
	}
}

// Chain runs machines in series once, feeding input to the first machine
// and the output of each machine to the next. The output of the last
// machine is returned.
func Chain(machines []*intcode.Machine, input ...int64) (output []int64, err error) {
	if len(machines) == 0 {
		err = ErrNoMachines
		return
	}

	output = slices.Clone(input)
	for n, m := range machines {
		m.AddInput(output...)
		_, err = m.Run()
		if err != nil {
			err = &ErrNode{Index: n, Err: err}
			output = nil
			return
		}
		output = m.TakeOutput()
	}

	return
}

// Loop runs machines in a feedback loop: the output of the last machine
// is fed back to the first, until the last machine halts. All values
// output by the last machine are returned.
func Loop(machines []*intcode.Machine, input ...int64) (output []int64, err error) {
	if len(machines) == 0 {
		err = ErrNoMachines
		return
	}

	last := len(machines) - 1
	signal := slices.Clone(input)

	for !machines[last].IsHalted() {
		var ticks int
		for n, m := range machines {
			if m.IsHalted() {
				signal = nil
				continue
			}

			before := m.Ticks
			m.AddInput(signal...)
			_, err = m.Run()
			if err != nil {
				err = &ErrNode{Index: n, Err: err}
				return
			}
			ticks += m.Ticks - before

			signal = m.TakeOutput()
			if n == last {
				output = append(output, signal...)
			}
		}

		if ticks == 0 && !machines[last].IsHalted() {
			err = ErrDeadlock
			return
		}
	}

	return
}
