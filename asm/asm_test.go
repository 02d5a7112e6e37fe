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


package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

func assemble(t *testing.T, code string) C {
	t.Helper()
	mem, err := asm.Assemble(t.Name(), strings.NewReader(code))
	require.NoError(t, err)
	return mem
}

func TestAssemble(t *testing.T) {
	var tests = [...]struct {
		name string
		code string
		mem  C
	}{
		{"modes", "add [9] 3 [rb+2]", C{21001, 9, 3, 2}},
		{"relative", "mul [rb] [rb-1] [rb+10]", C{22202, 0, -1, 10}},
		{"io", "in [100] out 'A' out [rb] in [rb-2] hlt", C{3, 100, 104, 65, 204, 0, 203, -2, 99}},
		{"jumps", ":top jnz 1 top jz [5] [rb+1]", C{1105, 1, 0, 2006, 5, 1}},
		{"forward", "jnz [x] end :end hlt :x .dat 7", C{1005, 4, 3, 99, 7}},
		{"cmp", "lt -1 0x10 [rb] eq 010 'b' [0]", C{21107, -1, 16, 0, 1108, 8, 98, 0}},
		{"arb", "arb 3 arb [rb+1] hlt", C{109, 3, 209, 1, 99}},
		{"equ", ".equ N 42 .equ M N add N [M] [N] .org M .dat N", append(append(C{101, 42, 42, 42}, make(C, 38)...), 42)},
		{"org", ".org 3 hlt", C{0, 0, 0, 99}},
		{"dat", ":t .dat 1 -2 'c' t end :end", C{1, -2, 99, 0, 5}},
		{"comments", "( one ) hlt ( two\n three ) .dat 5 ( eof", C{99, 5}},
		{"locals", ":1 jz 0 1+ :2 jz 0 1- :1 jz 0 2- jz 0 1-", C{1106, 0, 6, 1106, 0, 0, 1106, 0, 3, 1106, 0, 6}},
		{"empty", "", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.mem, assemble(t, test.code))
		})
	}
}

func TestAssemble_errors(t *testing.T) {
	var tests = [...]struct {
		name string
		code string
		msgs []string
	}{
		{"immediate_dest", "add 1 2 3", []string{"cannot write to immediate operand 3"}},
		{"immediate_in", "in 0", []string{"cannot write to immediate operand 0"}},
		{"missing_operand", "add 1 2 hlt", []string{"add: expected 3 operands, got 2"}},
		{"missing_operand_eof", "out", []string{"out: expected 1 operands, got 0"}},
		{"extra_operand", "out 1 2", []string{"unexpected operand 2"}},
		{"undefined", "jz 0 nowhere", []string{"undefined label nowhere"}},
		{"undefined_local", "jz 0 1-", []string{"invalid operand 1-"}},
		{"redefined", ":a :a", []string{"label redefinition a"}},
		{"const_label", ".equ a 1 :a", []string{"label redefinition a"}},
		{"label_const", "jz 0 a .equ a 1", []string{"undefined label a", ".equ: redefinition of a"}},
		{"unknown_directive", ".foo", []string{"unknown directive .foo"}},
		{"unknown_instruction", "nop", []string{"unexpected operand nop"}},
		{"bad_org", ".org x", []string{".org: expected address"}},
		{"bad_equ", ".equ 1 2", []string{".equ: expected identifier"}},
		{"bad_operand", "out [rb*2] out [5", []string{"invalid operand rb*2", "malformed operand [5"}},
		{"bad_char", "out 'ab'", []string{"invalid operand 'ab'"}},
		{"empty_dat", ".dat hlt", []string{".dat: missing value"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := asm.Assemble("test", strings.NewReader(test.code))
			require.Error(t, err)
			errs, ok := err.(asm.ErrAsm)
			require.True(t, ok, "error type %T", err)
			require.Len(t, errs, len(test.msgs), err.Error())
			for n, msg := range test.msgs {
				assert.Contains(t, errs[n].Msg, msg)
				assert.Equal(t, "test", errs[n].Pos.Filename)
			}
		})
	}

	// error positions point to the offending token
	code := "hlt\n\tadd 1 2 3\n\tjz 0 nowhere\n"
	_, err := asm.Assemble("pos", strings.NewReader(code))
	require.Error(t, err)
	errs := err.(asm.ErrAsm)
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Pos.Line)
	assert.Equal(t, "3", code[errs[0].Pos.Offset:errs[0].Pos.Offset+1])
	assert.Equal(t, 3, errs[1].Pos.Line)
	assert.True(t, strings.HasPrefix(code[errs[1].Pos.Offset:], "nowhere"))
	assert.Contains(t, err.Error(), "pos:2:")

	// error count is capped
	_, err = asm.Assemble("many", strings.NewReader(strings.Repeat("nop ", 20)))
	assert.Len(t, err.(asm.ErrAsm), 10)
}

func TestDisassemble(t *testing.T) {
	var tests = [...]struct {
		name string
		mem  C
		out  string
	}{
		{"add", C{21001, 9, 3, 2}, "add [9] 3 [rb+2]"},
		{"hlt", C{99}, "hlt"},
		{"relative", C{204, -1}, "out [rb-1]"},
		{"invalid_opcode", C{98, 1}, ".dat 98"},
		{"invalid_mode", C{301, 1, 2, 3}, ".dat 301"},
		{"immediate_dest", C{11101, 1, 2, 3}, ".dat 11101"},
		{"extra_mode_digits", C{10099}, ".dat 10099"},
		{"truncated", C{1101, 1}, ".dat 1101"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var b bytes.Buffer
			next, err := asm.Disassemble(test.mem, 0, &b)
			require.NoError(t, err)
			assert.Equal(t, test.out, b.String())
			if strings.HasPrefix(test.out, ".dat") {
				assert.Equal(t, 1, next)
			} else {
				assert.Equal(t, len(test.mem), next)
			}
		})
	}
}

const quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"

func TestRoundTrip(t *testing.T) {
	for _, src := range []string{
		quine,
		"3,9,8,9,10,9,4,9,99,-1,8",
		"3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
		"104,1125899906842624,99",
		"10099,-5,301,1101,1",
	} {
		prog, err := vm.ParseString(src)
		require.NoError(t, err)
		var b bytes.Buffer
		for pc := 0; pc < len(prog); {
			pc, err = asm.Disassemble(prog, pc, &b)
			require.NoError(t, err)
			b.WriteByte('\n')
		}
		mem, err := asm.Assemble("roundtrip", &b)
		require.NoError(t, err)
		assert.Equal(t, C(prog), C(mem), src)
	}
}

func TestDisassembleAll(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, asm.DisassembleAll(C{1101, 1, 2, 0, 99}, 100, &b))
	assert.Equal(t, "       100\tadd 1 2 [0]\n       104\thlt\n", b.String())
}
