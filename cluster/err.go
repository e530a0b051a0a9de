package cluster

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNodeInvalid  = errors.New(f("no such node"))
	ErrNoMachines   = errors.New(f("no machines"))
	ErrDeadlock     = errors.New(f("all machines wait for input"))
	ErrNoCandidates = errors.New(f("no candidates to search"))
)

// ErrNode records which machine of a cluster failed.
type ErrNode struct {
	Index int
	Err   error
}

func (err *ErrNode) Error() string {
	return f("node %v: %v", strconv.Itoa(err.Index), err.Err)
}

func (err *ErrNode) Unwrap() error {
	return err.Err
}
