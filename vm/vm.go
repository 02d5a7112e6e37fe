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
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/sirupsen/logrus"
)

// Cell is the raw type stored in a memory location.
type Cell int64

type state uint8

const (
	stateRunning state = iota
	stateWaiting
	stateHalted
	stateFailed
)

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int    // Program Counter
	RB       Cell   // Relative Base
	Mem      []Cell // Memory
	insCount int64
	state    state
	err      error
	dest     int   // pending input destination
	reads    int64 // number of input requests so far
	input    InputFunc
	output   OutputFunc
	log      logrus.FieldLogger
}

// InputFunc is the function prototype for input producers. It returns false
// if no input is available.
type InputFunc func() (Cell, bool)

// OutputFunc is the function prototype for output consumers.
type OutputFunc func(v Cell) error

// Option interface
type Option func(*Instance) error

// Input sets the input producer used by Run.
func Input(in InputFunc) Option {
	return func(i *Instance) error { i.input = in; return nil }
}

// Output sets the output consumer used by Run.
func Output(out OutputFunc) Option {
	return func(i *Instance) error { i.output = out; return nil }
}

// MemSize makes sure that at least size cells of memory are allocated. It will
// not shrink memory.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size > len(i.Mem) {
			i.grow(size - 1)
		}
		return nil
	}
}

// Logger enables execution logging. Decoded instructions are logged at trace
// level, I/O suspensions and halt at debug level.
func Logger(l logrus.FieldLogger) Option {
	return func(i *Instance) error { i.log = l; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode VM instance.
//
// The program is copied into the VM memory, so the same program slice can be
// used to create any number of instances.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem: append([]Cell(nil), program...),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Clone returns a deep copy of the VM. The clone shares nothing with i but its
// I/O handlers and logger. Cloning a VM with an input pending is valid: both
// instances will need to be resumed.
func (i *Instance) Clone() *Instance {
	c := *i
	c.Mem = append([]Cell(nil), i.Mem...)
	return &c
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Halted returns true once the VM has executed a halt instruction.
func (i *Instance) Halted() bool {
	return i.state == stateHalted
}

// Waiting returns true if the VM is suspended on an input request.
func (i *Instance) Waiting() bool {
	return i.state == stateWaiting
}

// Err returns the error that stopped the VM, if any.
func (i *Instance) Err() error {
	return i.err
}

// Dump writes the VM registers and memory to the specified io.Writer in the
// form:
//
//	pc rb
//	mem[0],mem[1],...
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	writeInt(ew, int64(i.PC))
	ew.Write([]byte{' '})
	writeInt(ew, int64(i.RB))
	ew.Write([]byte{'\n'})
	return Encode(ew, i.Mem)
}
