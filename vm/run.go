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
	"iter"

	"github.com/pkg/errors"
)

// Next runs the VM until it produces an output or halts. Input requests are
// satisfied by calling in. The returned bool is false if the VM halted.
//
// If in is nil or has no value to give, Next returns ErrNoInput. The VM is
// then left with its PC on the read instruction, so it can be driven again
// once input is available.
func (i *Instance) Next(in InputFunc) (Cell, bool, error) {
	for {
		res, err := i.Step()
		if err != nil {
			if errors.Cause(err) == ErrHalted {
				return 0, false, nil
			}
			return 0, false, err
		}
		switch res.Status {
		case YieldedOutput:
			return res.Value, true, nil
		case YieldedInput:
			var v Cell
			ok := in != nil
			if ok {
				v, ok = in()
			}
			if !ok {
				// PC still points at the read instruction.
				i.state = stateRunning
				return 0, false, i.fault(ErrNoInput)
			}
			if err = res.Complete(v); err != nil {
				return 0, false, err
			}
		case Completed:
			return 0, false, nil
		}
	}
}

// Outputs returns a sequence of the values output by the VM. Each iteration
// runs the VM until it produces an output or halts; input requests are
// satisfied by calling in. The sequence ends when the VM halts or on the first
// error, which is yielded with a zero value.
//
// The sequence is not restartable: ranging over it again resumes from the
// current VM state.
func (i *Instance) Outputs(in InputFunc) iter.Seq2[Cell, error] {
	return func(yield func(Cell, error) bool) {
		for {
			v, ok, err := i.Next(in)
			if err != nil {
				yield(0, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// Run runs the VM until it halts, using the input and output handlers set with
// the Input and Output options. Output values are discarded if no output
// handler is set.
func (i *Instance) Run() error {
	for v, err := range i.Outputs(i.input) {
		if err != nil {
			return err
		}
		if i.output != nil {
			if err = i.output(v); err != nil {
				return errors.Wrap(err, "output failed")
			}
		}
	}
	return nil
}
