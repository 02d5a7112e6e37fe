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
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by the VM. Execution errors are wrapped into an *Error;
// use errors.Cause to get at the values below.
var (
	ErrSyntax         = errors.New("invalid cell value")
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrInvalidMode    = errors.New("invalid addressing mode")
	ErrImmediateWrite = errors.New("cannot write to an immediate parameter")
	ErrAddress        = errors.New("negative address")
	ErrNoInput        = errors.New("no input provided")
	ErrInputPending   = errors.New("input pending")
	ErrNotWaiting     = errors.New("no input pending")
	ErrHalted         = errors.New("machine halted")
)

// Error describes the cause and the context of a VM fault.
type Error struct {
	PC    int   // program counter of the faulting instruction
	RB    Cell  // relative base
	Instr Cell  // instruction cell
	Err   error // underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v @pc=%d (%d), rb=%d", e.Err, e.PC, e.Instr, e.RB)
}

// Cause returns the root cause of the fault.
func (e *Error) Cause() error { return errors.Cause(e.Err) }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Format implements fmt.Formatter. The %+v verb prints the stack trace of the
// underlying error when available.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "pc=%d (%d), rb=%d: %+v", e.PC, e.Instr, e.RB, e.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (i *Instance) fault(err error) *Error {
	return &Error{PC: i.PC, RB: i.RB, Instr: cellAt(i.Mem, i.PC), Err: err}
}
