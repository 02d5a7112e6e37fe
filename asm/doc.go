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


// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	operands	description
//	------	---	--------	-----------------------------------------------
//	1	add	a b d		d = a + b
//	2	mul	a b d		d = a * b
//	3	in	d		d = next input value
//	4	out	a		output a
//	5	jnz	a t		jump to t if a != 0
//	6	jz	a t		jump to t if a == 0
//	7	lt	a b d		d = 1 if a < b, 0 otherwise
//	8	eq	a b d		d = 1 if a == b, 0 otherwise
//	9	arb	a		relative base += a
//	99	hlt			halt
//
// Operands:
//
// The addressing mode of each operand is given by its syntax:
//
//	42	'c'	name		immediate: the value itself
//	[42]	[name]			absolute: the value at the given address
//	[rb]	[rb+3]	[rb-1]		relative: the value at the given offset from the relative base
//
// A destination operand (d above) cannot be immediate. The assembler computes
// the mode digits of the instruction cell from the operands:
//
//	add [9] 3 [rb+2]	( compiles as 21001,9,3,2 )
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space. That is:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Comments cannot be nested.
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. Operand
// tokens are resolved as follows:
//
//	- If a token can be converted to a Go integer (see strconv.ParseInt), it is
//	  an integer literal.
//	- If it is a Go character literal between single quotes, it is converted to
//	  the corresponding integer literal.
//	- If a token is the name of a defined constant, it is replaced by the
//	  constant's value.
//	- Otherwise it must be a label reference.
//
// Label and constant names start with a letter or underscore, followed by
// letters, digits or underscores. The name "rb" is reserved.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next compiled cell. Forward references are ok:
//
//	:loop	in [x]
//		jnz [x] loop	( jump back to loop while x != 0 )
//		hlt
//	:x	.dat 0
//
// Local labels:
//
// Local labels work in the same way as in the GNU assembler. They are defined
// as a colon followed by a sequence of digits (i.e. :007, :0, :42) and can be
// defined multiple times. References to such labels must be suffixed with
// either a '-' (backward reference to the last definition of this label), or a
// '+' (forward reference to the next definition of this label):
//
//	:1	jz 0 1+		( jumps to the second :1 )
//	:2	jz 0 1-		( jumps to the first :1 )
//	:1	jz 0 2-
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal. Constants must be defined before use.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant. Gaps are filled with zeros.
//
//	.dat <value> ...
//
// Will compile the specified values as-is. Values can be integer literals,
// named constants, character literals or labels:
//
//	:table	.dat 65 'B' table
//
// The cells at addresses table+0, table+1 and table+2 will contain 65, 66 and
// the address of table.
//
// Disassembly:
//
// Disassemble and DisassembleAll output instructions in the syntax above.
// Cells that do not hold a valid instruction are output as .dat directives, so
// that the output of DisassembleAll assembles back to the same program.
package asm
