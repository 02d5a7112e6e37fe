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


// Package pipe connects Intcode VMs together.
//
// A Pipeline is a sequence of VMs where the outputs of each VM are queued as
// inputs of the next one. With the Feedback option, the outputs of the last VM
// are also fed back to the first one. VMs are driven in turn from a single
// goroutine: each one runs until it halts or needs an input value that is not
// available yet.
package pipe

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrStalled is returned by Chain and Loop when some VMs are still waiting for
// input while no other VM can produce any.
var ErrStalled = errors.New("pipeline stalled")

// ErrNoOutput is returned by Chain and Loop when the last VM did not produce
// any output.
var ErrNoOutput = errors.New("no output")

type stage struct {
	m     *vm.Instance
	queue []vm.Cell
}

// Pipeline is a sequence of connected VMs.
type Pipeline struct {
	stages   []stage
	feedback bool
	log      logrus.FieldLogger
}

// Option interface
type Option func(*Pipeline)

// Feedback connects the output of the last VM to the input of the first one.
// Outputs of the last VM are still returned by Run.
func Feedback() Option {
	return func(p *Pipeline) { p.feedback = true }
}

// Logger enables logging of the values passed between VMs, at debug level.
func Logger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New creates a new pipeline from the given VMs. The pipeline takes ownership
// of the VMs: they should not be stepped by anything else while it is in use.
func New(machines []*vm.Instance, opts ...Option) *Pipeline {
	p := &Pipeline{stages: make([]stage, len(machines))}
	for n, m := range machines {
		p.stages[n].m = m
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of VMs in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Stage returns the nth VM of the pipeline.
func (p *Pipeline) Stage(n int) *vm.Instance {
	return p.stages[n].m
}

// Push queues input values for the nth VM.
func (p *Pipeline) Push(n int, v ...vm.Cell) {
	p.stages[n].queue = append(p.stages[n].queue, v...)
}

// Halted returns true if all VMs in the pipeline have halted.
func (p *Pipeline) Halted() bool {
	for n := range p.stages {
		if !p.stages[n].m.Halted() {
			return false
		}
	}
	return true
}

// Run drives all VMs in turn until none of them can make progress: every VM
// has either halted or is waiting for input with an empty queue. It returns
// the values output by the last VM during this run.
//
// Run can be called again after pushing more input values.
func (p *Pipeline) Run() ([]vm.Cell, error) {
	var out []vm.Cell
	for {
		progress := false
		for n := range p.stages {
			ok, err := p.advance(n, &out)
			if err != nil {
				return out, errors.Wrapf(err, "stage %d", n)
			}
			progress = progress || ok
		}
		if !progress {
			return out, nil
		}
	}
}

// advance runs the nth VM until it halts or blocks on input. It returns true if
// at least one instruction was executed.
func (p *Pipeline) advance(n int, out *[]vm.Cell) (progress bool, err error) {
	s := &p.stages[n]
	for !s.m.Halted() {
		if s.m.Waiting() {
			if len(s.queue) == 0 {
				return progress, nil
			}
			if err = s.m.Resume(s.queue[0]); err != nil {
				return progress, err
			}
			s.queue = s.queue[1:]
		}
		res, err := s.m.Step()
		if err != nil {
			return progress, err
		}
		progress = true
		if res.Status == vm.YieldedOutput {
			p.emit(n, res.Value, out)
		}
	}
	return progress, nil
}

func (p *Pipeline) emit(n int, v vm.Cell, out *[]vm.Cell) {
	if p.log != nil {
		p.log.WithFields(logrus.Fields{"stage": n, "value": v}).Debug("output")
	}
	next := n + 1
	if next == len(p.stages) {
		*out = append(*out, v)
		if !p.feedback {
			return
		}
		next = 0
	}
	p.stages[next].queue = append(p.stages[next].queue, v)
}

// Chain runs one VM per phase setting, all loaded with the same program. Each
// VM first reads its phase setting, then its input signal. The first VM gets
// signal as input signal, the others the output of the previous VM. Chain
// returns the last output of the last VM.
func Chain(program []vm.Cell, phases []vm.Cell, signal vm.Cell, opts ...Option) (vm.Cell, error) {
	return amplify(program, phases, signal, opts...)
}

// Loop is like Chain but with the output of the last VM fed back to the first
// one, until all VMs halt.
func Loop(program []vm.Cell, phases []vm.Cell, signal vm.Cell, opts ...Option) (vm.Cell, error) {
	return amplify(program, phases, signal, append(opts, Feedback())...)
}

func amplify(program []vm.Cell, phases []vm.Cell, signal vm.Cell, opts ...Option) (vm.Cell, error) {
	if len(phases) == 0 {
		return 0, errors.New("no phase settings")
	}
	ms := make([]*vm.Instance, len(phases))
	for n := range phases {
		m, err := vm.New(program)
		if err != nil {
			return 0, err
		}
		ms[n] = m
	}
	p := New(ms, opts...)
	for n, ph := range phases {
		p.Push(n, ph)
	}
	p.Push(0, signal)
	out, err := p.Run()
	if err != nil {
		return 0, err
	}
	if !p.Halted() {
		return 0, ErrStalled
	}
	if len(out) == 0 {
		return 0, ErrNoOutput
	}
	return out[len(out)-1], nil
}
