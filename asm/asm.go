// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// ErrAsm is the error type returned by Assemble. Each entry holds the position
// in the source and the error message.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) ([]vm.Cell, error) {
	p := newParser()
	mem, err := p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return mem, nil
}

// Disassemble writes a disassembly of the instruction at position pc to the
// specified io.Writer and returns the position of the next instruction and any
// write error.
//
// Cells that do not hold a valid instruction, or instructions truncated by the
// end of mem, are written as a .dat directive.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*ici.ErrWriter)
	if ew == nil {
		ew = ici.NewErrWriter(w)
	}

	in, err := vm.Decode(mem, pc)
	if err != nil || pc+in.Size() > len(mem) || encodeInstr(in) != mem[pc] {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, in.String())
	return pc + in.Size(), ew.Err
}

// encodeInstr returns the canonical cell value for in. Cells with mode digits
// for unused parameters decode to the same instruction but do not encode back
// to the same value.
func encodeInstr(in vm.Instruction) vm.Cell {
	var args [3]operand
	for n, p := range in.Args() {
		args[n].mode = p.Mode
	}
	return encode(in.Op, args[:in.Op.Params()])
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
