package intcode

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrEndOfInput            = errors.New(f("unexpected end of input"))
	ErrInvalidOpcode         = errors.New(f("invalid opcode"))
	ErrProgramCounterRange   = errors.New(f("program counter out of range"))
	ErrInvalidAddressingMode = errors.New(f("invalid addressing mode"))
	ErrHalted                = errors.New(f("run on halted machine"))
	ErrNegativeAddress       = errors.New(f("negative address"))

	// Program text errors
	ErrParseEmpty = errors.New(f("empty program"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOperandCount       = errors.New(f("wrong operand count"))
	ErrImmediateTarget    = errors.New(f("immediate operand as target"))
	ErrDataMissing        = errors.New(f(".data without values"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrFault records the instruction that failed.
type ErrFault struct {
	Ip   int64
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	return f("ip %v code %v: %v", strconv.FormatInt(err.Ip, 10), strconv.FormatInt(int64(err.Code), 10), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, strconv.Itoa(err.Line), err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
