// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

func main() {
	var compile string
	var program string
	var input string
	var output string
	var ascii bool
	var disassemble bool
	var verbose bool
	var lang string

	predefine := map[string]string{}

	flag.StringVar(&compile, "c", "", "assembly source file to compile")
	flag.StringVar(&program, "p", "", "program text file to load")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&ascii, "a", false, "ASCII tape mode")
	flag.BoolVar(&disassemble, "d", false, "Disassemble the program, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language")
	flag.Func("D", "Predefine an assembler equate, as NAME=VALUE", func(text string) error {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", text)
		}
		predefine[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		err := translate.Use(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
	}

	if len(compile) != 0 && len(program) != 0 {
		log.Fatalf("%v: -c and -p are exclusive", os.Args[0])
	}

	prog := &intcode.Program{}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &intcode.Assembler{Verbose: verbose}
		for name, value := range predefine {
			asm.Predefine(name, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a program text.
	if len(program) != 0 {
		inf, err := os.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		defer inf.Close()

		binary, err := intcode.ParseBinary(inf)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		prog = intcode.ProgramOf(binary)
	}

	if disassemble {
		for ip, text := range intcode.Listing(prog.Binary()) {
			fmt.Printf("%6d: %v\n", ip, text)
		}
		return
	}

	tape := &io.Tape{Numeric: !ascii}

	if input == "-" {
		tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		tape.Input = inf
	}

	if output == "-" {
		tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape.Output = ouf
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Channel = tape
	emu.Verbose = verbose

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("intcode: halted after %d ticks", emu.Ticks())
	}
}
