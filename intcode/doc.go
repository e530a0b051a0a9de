// Package intcode implements the intcode machine and its assembler.
//
// A machine executes a program stored as a flat sequence of integers. It has
// a program counter (Ip), a relative base register, an input FIFO and an
// output sequence. Memory starts as the program and grows on demand; reads
// beyond anything written return zero.
//
// Run executes until the program halts or an input instruction finds the
// input queue empty. In the latter case Run reports StatusBlocked and leaves
// Ip on the input instruction, so the caller can supply more input and call
// Run again. Many machines can be driven round-robin this way.
//
// The assembler provides a small assembly language for intcode, supporting
// macros, labels, equates, and compile-time expression evaluation.
package intcode
