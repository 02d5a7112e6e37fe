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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of a single Step.
type Status uint8

// Step outcomes.
const (
	Running       Status = iota // an ordinary instruction completed
	YieldedOutput               // an output value is available in Result.Value
	YieldedInput                // an input value must be supplied with Result.Complete
	Completed                   // the VM executed a halt instruction
)

var statusNames = [...]string{"running", "output", "input", "completed"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is returned by Step.
type Result struct {
	Status Status
	// Value is the output value when Status is YieldedOutput.
	Value Cell
	// Complete must be called exactly once with the input value when Status
	// is YieldedInput, before stepping the VM again. Subsequent calls return
	// ErrNotWaiting.
	Complete func(v Cell) error
}

// Step executes exactly one instruction.
//
// On a read-input instruction, the PC is not advanced until the pending input
// is supplied, either with Result.Complete or Resume. Stepping again before
// that returns ErrInputPending. A write-output instruction advances the PC
// before Step returns.
//
// Execution errors are returned as an *Error, and the VM is then considered
// failed: any further call to Step returns the same error.
func (i *Instance) Step() (res Result, err error) {
	switch i.state {
	case stateWaiting:
		return res, i.fault(ErrInputPending)
	case stateHalted:
		return Result{Status: Completed}, i.fault(ErrHalted)
	case stateFailed:
		return res, i.err
	}

	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = i.fail(e)
				res = Result{}
			default:
				panic(e)
			}
		}
	}()

	in, err := Decode(i.Mem, i.PC)
	if err != nil {
		return res, i.fail(err)
	}
	if i.log != nil {
		i.trace(&in)
	}

	switch in.Op {
	case OpAdd:
		i.write(in.Params[2], i.read(in.Params[0])+i.read(in.Params[1]))
		i.PC += 4
	case OpMul:
		i.write(in.Params[2], i.read(in.Params[0])*i.read(in.Params[1]))
		i.PC += 4
	case OpIn:
		// resolve the destination now so that bad addresses are reported on
		// the read instruction itself.
		dest := i.addr(in.Params[0])
		if dest < 0 {
			panic(errors.Wrapf(ErrAddress, "write at %d", dest))
		}
		i.grow(dest)
		i.dest = dest
		i.state = stateWaiting
		i.reads++
		if i.log != nil {
			i.log.WithField("pc", i.PC).Debug("input requested")
		}
		return Result{Status: YieldedInput, Complete: i.completion()}, nil
	case OpOut:
		v := i.read(in.Params[0])
		i.PC += 2
		i.insCount++
		if i.log != nil {
			i.log.WithFields(logrus.Fields{"pc": i.PC - 2, "value": v}).Debug("output")
		}
		return Result{Status: YieldedOutput, Value: v}, nil
	case OpJumpTrue:
		if i.read(in.Params[0]) != 0 {
			i.PC = int(i.read(in.Params[1]))
		} else {
			i.PC += 3
		}
	case OpJumpFalse:
		if i.read(in.Params[0]) == 0 {
			i.PC = int(i.read(in.Params[1]))
		} else {
			i.PC += 3
		}
	case OpLessThan:
		var v Cell
		if i.read(in.Params[0]) < i.read(in.Params[1]) {
			v = 1
		}
		i.write(in.Params[2], v)
		i.PC += 4
	case OpEqual:
		var v Cell
		if i.read(in.Params[0]) == i.read(in.Params[1]) {
			v = 1
		}
		i.write(in.Params[2], v)
		i.PC += 4
	case OpAdjustBase:
		i.RB += i.read(in.Params[0])
		i.PC += 2
	case OpHalt:
		i.state = stateHalted
		i.insCount++
		if i.log != nil {
			i.log.WithFields(logrus.Fields{"pc": i.PC, "count": i.insCount}).Debug("halted")
		}
		return Result{Status: Completed}, nil
	default:
		// unreachable as long as Decode and this switch agree.
		return res, i.fail(errors.Wrapf(ErrInvalidOpcode, "%d", in.Op))
	}
	i.insCount++
	return Result{Status: Running}, nil
}

// Resume supplies the value for a pending input request: it stores v at the
// destination of the read-input instruction and advances the PC. It returns
// ErrNotWaiting if no input is pending.
func (i *Instance) Resume(v Cell) error {
	if i.state != stateWaiting {
		return i.fault(ErrNotWaiting)
	}
	i.Mem[i.dest] = v
	i.PC += 2
	i.insCount++
	i.state = stateRunning
	return nil
}

// completion returns a closure that resumes the current input request only.
func (i *Instance) completion() func(Cell) error {
	seq := i.reads
	return func(v Cell) error {
		if i.reads != seq {
			return i.fault(ErrNotWaiting)
		}
		return i.Resume(v)
	}
}

func (i *Instance) fail(err error) error {
	e := i.fault(err)
	i.state = stateFailed
	i.err = e
	return e
}

func (i *Instance) trace(in *Instruction) {
	i.log.WithFields(logrus.Fields{
		"pc": i.PC,
		"rb": i.RB,
		"op": in.Op,
	}).Trace(in.String())
}
