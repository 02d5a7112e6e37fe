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

import "github.com/pkg/errors"

// grow extends memory so that addr is a valid index. New cells are zeroed.
func (i *Instance) grow(addr int) {
	if addr < len(i.Mem) {
		return
	}
	i.Mem = append(i.Mem, make([]Cell, addr+1-len(i.Mem))...)
}

// Peek returns the value at address addr. Addresses out of the allocated range
// read as 0 and do not extend memory.
func (i *Instance) Peek(addr int) Cell {
	return cellAt(i.Mem, addr)
}

// Poke stores v at address addr, extending memory as needed. It panics if addr
// is negative.
func (i *Instance) Poke(addr int, v Cell) {
	i.store(addr, v)
}

// load and store panic with an error value on negative addresses. Step will
// recover and report it.
func (i *Instance) load(addr int) Cell {
	if addr < 0 {
		panic(errors.Wrapf(ErrAddress, "read at %d", addr))
	}
	i.grow(addr)
	return i.Mem[addr]
}

func (i *Instance) store(addr int, v Cell) {
	if addr < 0 {
		panic(errors.Wrapf(ErrAddress, "write at %d", addr))
	}
	i.grow(addr)
	i.Mem[addr] = v
}

// addr resolves the address designated by p.
func (i *Instance) addr(p Param) int {
	switch p.Mode {
	case Absolute:
		return int(p.Value)
	case Relative:
		return int(i.RB + p.Value)
	case Immediate:
		panic(ErrImmediateWrite)
	}
	panic(errors.Wrapf(ErrInvalidMode, "%d", p.Mode))
}

func (i *Instance) read(p Param) Cell {
	if p.Mode == Immediate {
		return p.Value
	}
	return i.load(i.addr(p))
}

func (i *Instance) write(p Param, v Cell) {
	i.store(i.addr(p), v)
}
