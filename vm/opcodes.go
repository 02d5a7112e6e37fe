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

package vm

import (
	"strconv"

	"github.com/pkg/errors"
)

// Opcode is the operation selector found in the low two decimal digits of an
// instruction cell.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd        Opcode = 1
	OpMul        Opcode = 2
	OpIn         Opcode = 3
	OpOut        Opcode = 4
	OpJumpTrue   Opcode = 5
	OpJumpFalse  Opcode = 6
	OpLessThan   Opcode = 7
	OpEqual      Opcode = 8
	OpAdjustBase Opcode = 9
	OpHalt       Opcode = 99
)

type opInfo struct {
	name   string
	params int
	dest   int // index of the write parameter, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:        {"add", 3, 2},
	OpMul:        {"mul", 3, 2},
	OpIn:         {"in", 1, 0},
	OpOut:        {"out", 1, -1},
	OpJumpTrue:   {"jnz", 2, -1},
	OpJumpFalse:  {"jz", 2, -1},
	OpLessThan:   {"lt", 3, 2},
	OpEqual:      {"eq", 3, 2},
	OpAdjustBase: {"arb", 1, -1},
	OpHalt:       {"hlt", 0, -1},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameters expected by op.
func (op Opcode) Params() int {
	return opcodes[op].params
}

// Dest returns the index of the parameter op writes to, or -1 if op does not
// write to memory.
func (op Opcode) Dest() int {
	if info, ok := opcodes[op]; ok {
		return info.dest
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// OpcodeByName returns the opcode for the given mnemonic.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for op, info := range opcodes {
		opcodeIndex[info.name] = op
	}
}

// Mode is a parameter addressing mode.
type Mode uint8

// Addressing modes, as encoded in instruction cells.
const (
	Absolute  Mode = 0 // x = mem[v]
	Immediate Mode = 1 // x = v
	Relative  Mode = 2 // x = mem[rb+v]
)

func (m Mode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Param is an instruction parameter: a raw cell value together with its
// addressing mode.
type Param struct {
	Mode  Mode
	Value Cell
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op     Opcode
	Params [3]Param
}

// Args returns the parameters actually used by in.Op.
func (in Instruction) Args() []Param {
	return in.Params[:in.Op.Params()]
}

// Size returns the number of cells occupied by the instruction.
func (in Instruction) Size() int {
	return 1 + in.Op.Params()
}

var modeDiv = [3]Cell{100, 1000, 10000}

// Decode decodes the instruction at address pc in mem. Cells past the end of
// mem read as 0; mem is never modified.
//
// The returned error is ErrInvalidOpcode or ErrInvalidMode, wrapped with the
// offending value.
func Decode(mem []Cell, pc int) (Instruction, error) {
	var in Instruction
	c := cellAt(mem, pc)
	in.Op = Opcode(c % 100)
	if !in.Op.Valid() {
		return in, errors.Wrapf(ErrInvalidOpcode, "%d", c)
	}
	for n := 0; n < in.Op.Params(); n++ {
		m := Mode(c / modeDiv[n] % 10)
		if m > Relative {
			return in, errors.Wrapf(ErrInvalidMode, "%d in parameter %d of %d", m, n, c)
		}
		in.Params[n] = Param{m, cellAt(mem, pc+1+n)}
	}
	if d := in.Op.Dest(); d >= 0 && in.Params[d].Mode == Immediate {
		return in, errors.Wrapf(ErrImmediateWrite, "%d", c)
	}
	return in, nil
}

func cellAt(mem []Cell, addr int) Cell {
	if addr < 0 || addr >= len(mem) {
		return 0
	}
	return mem[addr]
}

// String returns the assembler syntax for p: "42" for immediate, "[42]" for
// absolute and "[rb+42]" for relative parameters.
func (p Param) String() string {
	v := strconv.FormatInt(int64(p.Value), 10)
	switch p.Mode {
	case Immediate:
		return v
	case Absolute:
		return "[" + v + "]"
	case Relative:
		switch {
		case p.Value == 0:
			return "[rb]"
		case p.Value > 0:
			return "[rb+" + v + "]"
		}
		return "[rb" + v + "]"
	}
	return "?" + v
}

func (in Instruction) String() string {
	s := in.Op.String()
	for _, p := range in.Args() {
		s += " " + p.String()
	}
	return s
}
