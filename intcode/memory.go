package intcode

import (
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/intcode/internal"
)

const (
	MEMORY_GROW_SLACK = 4096 // Writes this close past the base segment grow it.
)

// Memory is a zero-initialized, non-negatively addressed store.
//
// The base segment starts as the program. Writes just past its end extend
// it; writes far beyond go to a sparse overflow map. When the base segment
// extends over an address held in the overflow map, the value is promoted.
type Memory struct {
	base     []int64
	overflow map[int64]int64
	extent   int64 // One past the highest overflow address written.
}

// NewMemory creates a memory whose base segment is the program itself.
// Growth never writes into spare capacity of the program slice.
func NewMemory(program []int64) (mem *Memory) {
	mem = &Memory{
		base: slices.Clip(program),
	}

	return
}

// Len returns the extent of the base segment.
func (mem *Memory) Len() int64 {
	return int64(len(mem.base))
}

// Extent returns one past the highest address ever held by either tier.
func (mem *Memory) Extent() int64 {
	return max(int64(len(mem.base)), mem.extent)
}

// Read returns the value at an address.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	switch {
	case addr < 0:
		err = ErrNegativeAddress
	case addr < int64(len(mem.base)):
		value = mem.base[addr]
	default:
		value = mem.overflow[addr]
	}

	return
}

// Write stores a value at an address.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	if addr < 0 {
		err = ErrNegativeAddress
		return
	}

	size := int64(len(mem.base))
	if addr >= size && addr < size+MEMORY_GROW_SLACK {
		mem.grow(addr + 1)
	}

	if addr < int64(len(mem.base)) {
		mem.base[addr] = value
		return
	}

	if mem.overflow == nil {
		mem.overflow = make(map[int64]int64)
	}
	mem.overflow[addr] = value
	mem.extent = max(mem.extent, addr+1)

	return
}

// grow extends the base segment to size cells.
func (mem *Memory) grow(size int64) {
	start := int64(len(mem.base))
	extra := size - start
	mem.base = append(mem.base, make([]int64, extra)...)

	if len(mem.overflow) == 0 {
		return
	}

	// Promote by whichever is smaller: the new cells, or the overflow.
	if int64(len(mem.overflow)) < extra {
		for addr, value := range mem.overflow {
			if addr < size {
				mem.base[addr] = value
				delete(mem.overflow, addr)
			}
		}
		return
	}

	for addr := start; addr < size; addr++ {
		value, ok := mem.overflow[addr]
		if ok {
			mem.base[addr] = value
			delete(mem.overflow, addr)
		}
	}
}

// Snapshot returns an independent copy of the memory.
func (mem *Memory) Snapshot() *Memory {
	return &Memory{
		base:     slices.Clone(mem.base),
		overflow: maps.Clone(mem.overflow),
		extent:   mem.extent,
	}
}

// Values returns a copy of the base segment.
func (mem *Memory) Values() []int64 {
	return slices.Clone(mem.base)
}

// All iterates over the base segment, then the overflow cells, in address order.
func (mem *Memory) All() iter.Seq2[int64, int64] {
	base := func(yield func(int64, int64) bool) {
		for n, value := range mem.base {
			if !yield(int64(n), value) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(base, internal.IterSeq2Sorted(mem.overflow))
}
