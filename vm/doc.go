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

// Package vm implements the Intcode VM.
//
// The VM has a program counter, a relative base register and a flat memory of
// 64 bits signed cells that grows on demand: any address past the end of the
// loaded program reads as 0 and writing to it extends memory.
//
// Instructions are decoded from memory on every step, so self modifying
// programs behave as expected. The low two decimal digits of an instruction
// cell select the opcode, the next three digits select the addressing mode of
// each parameter (0: absolute, 1: immediate, 2: relative to the relative base):
//
//	opcode	asm	params	description
//	------	---	------	-----------------------------------------------
//	1	add	a b d	d = a + b
//	2	mul	a b d	d = a * b
//	3	in	d	d = next input value
//	4	out	a	output a
//	5	jnz	a t	jump to t if a != 0
//	6	jz	a t	jump to t if a == 0
//	7	lt	a b d	d = 1 if a < b, 0 otherwise
//	8	eq	a b d	d = 1 if a == b, 0 otherwise
//	9	arb	a	relative base += a
//	99	hlt		halt
//
// The VM can be driven one instruction at a time with Step, which suspends on
// input and output instructions and lets the caller supply input values or
// consume outputs. This makes it possible to wire several VMs together (see
// package pipe) without any goroutines. Outputs and Run are convenience drivers
// built on top of Step.
//
// An Instance is not safe for concurrent use.
package vm
