package intcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Empty(prog.Binary())

	assert.Equal("0", asm.Equate["LINENO"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"add [4] #3 @-1",
		"mul #2 #3 [0] ; comment",
		"in @5",
		"out 0x10",
		"arb #-2",
		"",
		"hlt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Opcode{
		{1, 0, []string{"add", "[4]", "#3", "@-1"}, []int64{21001, 4, 3, -1}, nil},
		{2, 4, []string{"mul", "#2", "#3", "[0]"}, []int64{1102, 2, 3, 0}, nil},
		{3, 8, []string{"in", "@5"}, []int64{203, 5}, nil},
		{4, 10, []string{"out", "0x10"}, []int64{4, 16}, nil},
		{5, 12, []string{"arb", "#-2"}, []int64{109, -2}, nil},
		{7, 14, []string{"hlt"}, []int64{99}, nil},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"start: in [value]",
		"jf [value] #done",
		"out [value]",
		"jmp #start",
		"done: hlt",
		"value: .data 0",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Opcode{
		{1, 0, []string{"in", "[value]"}, []int64{3, 11}, []Link{{1, "value"}}},
		{2, 2, []string{"jf", "[value]", "#done"}, []int64{1006, 11, 10}, []Link{{1, "value"}, {2, "done"}}},
		{3, 5, []string{"out", "[value]"}, []int64{4, 11}, []Link{{1, "value"}}},
		{4, 7, []string{"jmp", "#start"}, []int64{1105, 1, 0}, []Link{{2, "start"}}},
		{5, 10, []string{"hlt"}, []int64{99}, nil},
		{6, 11, []string{".data", "0"}, []int64{0}, nil},
	}

	opEqual(t, expected, prog.Opcodes)
	assert.Equal(map[string]int64{"start": 0, "done": 10, "value": 11}, asm.Label)

	m := NewMachine(prog.Binary(), 5, 7, 0)
	status, err := m.Run()
	assert.NoError(err)
	assert.Equal(StatusHalted, status)
	assert.Equal([]int64{5, 7}, m.Output())
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".equ TEN 10",
		".equ TWENTY $(TEN * 2)",
		"add #TEN #TWENTY [x]",
		"mul #$(TEN + 1) #'A' [x]",
		"out [x]",
		"hlt",
		"x: .data LINENO",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(errors.Unwrap(err))
	}

	assert.Equal([]int64{1101, 10, 20, 11, 1102, 11, 65, 11, 4, 11, 99, 7}, prog.Binary())

	m := NewMachine(prog.Binary())
	_, err = m.Run()
	assert.NoError(err)
	assert.Equal([]int64{715}, m.Output())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("PORT", "7")
	asm.Predefine("PORT", "8")

	for range 2 {
		prog, err := asm.Parse(strings.NewReader("out #PORT\nhlt"))
		assert.NoError(err)
		assert.Equal([]int64{104, 8, 99}, prog.Binary())
	}
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro COUNTDOWN n",
		"mov #n [ctr]",
		"%loop: out [ctr]",
		"add [ctr] #-1 [ctr]",
		"jt [ctr] #%loop",
		".endm",
		"COUNTDOWN 2",
		"COUNTDOWN 1",
		"hlt",
		"ctr: .data 0",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(int64(4), asm.Label["COUNTDOWN_1_loop"])
	assert.Equal(int64(17), asm.Label["COUNTDOWN_2_loop"])
	assert.Equal(int64(27), asm.Label["ctr"])

	expected := []Opcode{
		{2, 0, []string{"mov", "#n", "[ctr]"}, []int64{1101, 2, 0, 27}, []Link{{3, "ctr"}}},
		{3, 4, []string{"out", "[ctr]"}, []int64{4, 27}, []Link{{1, "ctr"}}},
		{4, 6, []string{"add", "[ctr]", "#-1", "[ctr]"}, []int64{1001, 27, -1, 27}, []Link{{1, "ctr"}, {3, "ctr"}}},
		{5, 10, []string{"jt", "[ctr]", "#COUNTDOWN_1_loop"}, []int64{1005, 27, 4}, []Link{{1, "ctr"}, {2, "COUNTDOWN_1_loop"}}},
	}
	opEqual(t, expected, prog.Opcodes[:4])

	m := NewMachine(prog.Binary())
	status, err := m.Run()
	assert.NoError(err)
	assert.Equal(StatusHalted, status)
	assert.Equal([]int64{2, 1, 1}, m.Output())
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		prog string
		line int
		err  error
	}){
		{"DUP:\nDUP:\n", 2, ErrLabelDuplicate},
		{"add #1 #2", 1, ErrOperandCount},
		{"hlt\nout 1 2", 2, ErrOperandCount},
		{"add #1 #2 #3", 1, ErrImmediateTarget},
		{"in #3", 1, ErrImmediateTarget},
		{"nop", 1, ErrInstructionInvalid},
		{".data", 1, ErrDataMissing},
		{".equ", 1, ErrEquateSyntax},
		{".equ A", 1, ErrEquateSyntax},
		{".equ A 1\n.equ A 2\n", 2, ErrEquateDuplicate},
		{".macro A B C\n.endm\nA 1\n", 3, ErrMacroSyntax},
		{".macro", 1, ErrMacroSyntax},
		{".macro A\n.macro C\n.endm\n.endm", 2, ErrMacroNesting},
		{".macro A\n.endm\n.macro A\n.endm\n", 3, ErrMacroDuplicate},
		{".endm", 1, ErrMacroLonelyEndm},
		{".macro A\nhlt\n", 2, ErrMacroLonely},
		{".macro A\nnop\n.endm\nhlt\nA\n", 5, ErrInstructionInvalid},
		{"out $(\"aaa\")", 1, nil},
		{"out $(more(\"aaa\"))", 1, nil},
		{"out $(0x10000000000000000)", 1, nil},
		{"out #", 1, nil},
		{"out [1+2]", 1, nil},
		{"1bad: hlt", 1, nil},
	}

	for _, entry := range table {
		_, err := asm.Parse(strings.NewReader(entry.prog))
		if !assert.Error(err, entry.prog) {
			continue
		}
		var syn ErrSyntax
		if assert.True(errors.As(err, &syn), entry.prog) {
			assert.Equal(entry.line, syn.LineNo, entry.prog)
		}
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.prog)
		}
	}
}

func TestAssemblerErrMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".macro BAD x\nhlt\nout #x #x\n.endm\nBAD 1\n"))
	var em ErrMacro
	if assert.True(errors.As(err, &em)) {
		assert.Equal("BAD", em.Macro)
		assert.Equal(3, em.Line)
	}
	assert.ErrorIs(err, ErrOperandCount)
}

func TestAssemblerErrLabelMissing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("hlt\njmp #nowhere\n"))

	var missing ErrLabelMissing
	if assert.True(errors.As(err, &missing)) {
		assert.Equal(ErrLabelMissing("nowhere"), missing)
	}
	var syn ErrSyntax
	if assert.True(errors.As(err, &syn)) {
		assert.Equal(2, syn.LineNo)
		assert.Equal("jmp #nowhere", syn.Line)
	}
}

func TestAssemblerListing(t *testing.T) {
	assert := assert.New(t)

	table := [][]int64{
		{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99},
		{1002, 4, 3, 4, 33},
		{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8},
		{301, 21107, 1, 2, 3, 1105},
	}

	for _, binary := range table {
		var lines []string
		for _, text := range Listing(binary) {
			lines = append(lines, text)
		}

		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
		if !assert.NoError(err, lines) {
			continue
		}
		assert.Equal(binary, prog.Binary(), lines)
	}
}
