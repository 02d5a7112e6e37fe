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

package vm_test

import (
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

func setup(t testing.TB, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	prog, err := vm.ParseString(code)
	require.NoError(t, err)
	i, err := vm.New(prog, opts...)
	require.NoError(t, err)
	return i
}

// run drives i to completion with the given inputs and returns its outputs.
func run(t testing.TB, i *vm.Instance, in ...vm.Cell) C {
	t.Helper()
	var out C
	for v, err := range i.Outputs(vm.Values(in...)) {
		require.NoError(t, err)
		out = append(out, v)
	}
	require.True(t, i.Halted(), "VM not halted after last output")
	return out
}

const (
	quine      = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	cmp8       = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
	doubleLoop = "3,20,1002,20,2,21,4,21,1105,1,0"
)

var tests = [...]struct {
	name string
	code string
	in   C
	out  C
	mem  map[int]vm.Cell // expected memory contents after halt
}{
	{"add", "1,0,0,0,99", nil, nil, map[int]vm.Cell{0: 2}},
	{"mul", "2,3,0,3,99", nil, nil, map[int]vm.Cell{3: 6}},
	{"mul_far", "2,4,4,5,99,0", nil, nil, map[int]vm.Cell{5: 9801}},
	{"overwrite_halt", "1,1,1,4,99,5,6,0,99", nil, nil, map[int]vm.Cell{0: 30, 4: 2}},
	{"gravity_assist", "1,9,10,3,2,3,11,0,99,30,40,50", nil, nil, map[int]vm.Cell{0: 3500, 3: 70}},
	{"modes", "1002,4,3,4,33", nil, nil, map[int]vm.Cell{4: 99}},
	{"negative", "1101,100,-1,4,0", nil, nil, map[int]vm.Cell{4: 99}},
	{"echo", "3,0,4,0,99", C{42}, C{42}, nil},
	{"eq8_pos_true", "3,9,8,9,10,9,4,9,99,-1,8", C{8}, C{1}, nil},
	{"eq8_pos_false", "3,9,8,9,10,9,4,9,99,-1,8", C{7}, C{0}, nil},
	{"lt8_pos_true", "3,9,7,9,10,9,4,9,99,-1,8", C{7}, C{1}, nil},
	{"lt8_pos_eq", "3,9,7,9,10,9,4,9,99,-1,8", C{8}, C{0}, nil},
	{"lt8_pos_gt", "3,9,7,9,10,9,4,9,99,-1,8", C{9}, C{0}, nil},
	{"eq8_imm_true", "3,3,1108,-1,8,3,4,3,99", C{8}, C{1}, nil},
	{"eq8_imm_false", "3,3,1108,-1,8,3,4,3,99", C{-8}, C{0}, nil},
	{"lt8_imm_true", "3,3,1107,-1,8,3,4,3,99", C{-100}, C{1}, nil},
	{"lt8_imm_false", "3,3,1107,-1,8,3,4,3,99", C{8}, C{0}, nil},
	{"jump_pos_zero", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{0}, C{0}, nil},
	{"jump_pos_nonzero", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{5}, C{1}, nil},
	{"jump_imm_zero", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{0}, C{0}, nil},
	{"jump_imm_nonzero", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{-3}, C{1}, nil},
	{"cmp8_below", cmp8, C{7}, C{999}, nil},
	{"cmp8_equal", cmp8, C{8}, C{1000}, nil},
	{"cmp8_above", cmp8, C{9}, C{1001}, nil},
	{"large_literal", "104,1125899906842624,99", nil, C{1125899906842624}, nil},
	{"large_mul", "1102,34915192,34915192,7,4,7,99,0", nil, C{1219070632396864}, nil},
	{"relative_base", "109,2000,109,19,204,-34,99", nil, C{0}, nil},
	{"relative_write", "109,10,21101,3,4,5,204,5,99", nil, C{7}, map[int]vm.Cell{15: 7}},
	{"relative_in", "109,-1,203,11,4,10,99", C{-9}, C{-9}, nil},
	{"grow", "1101,7,8,1000,4,999,4,1000,99", nil, C{0, 15}, map[int]vm.Cell{999: 0, 1000: 15}},
	{"self_modify", "1101,0,4,4,99,0,99", nil, C{1101}, map[int]vm.Cell{4: 4}},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code)
			out := run(t, i, test.in...)
			assert.Equal(t, test.out, out, "outputs")
			for addr, v := range test.mem {
				assert.Equal(t, v, i.Peek(addr), "mem[%d]", addr)
			}
		})
	}
}

func TestQuine(t *testing.T) {
	prog, err := vm.ParseString(quine)
	require.NoError(t, err)
	i, err := vm.New(prog)
	require.NoError(t, err)
	assert.Equal(t, C(prog), run(t, i))
}

func TestSelfModify(t *testing.T) {
	// Same program, with the add turned into a nop-like add to an unused cell:
	// the halt at address 4 is then executed as is.
	i := setup(t, "1101,0,4,7,99,0,99")
	assert.Empty(t, run(t, i))
	assert.Equal(t, 4, i.PC)
}

func TestMemoryGrowth(t *testing.T) {
	i := setup(t, "1101,7,8,1000,4,999,4,1000,99")
	assert.Equal(t, vm.Cell(0), i.Peek(5000))
	assert.Len(t, i.Mem, 9, "Peek must not grow memory")
	run(t, i)
	assert.GreaterOrEqual(t, len(i.Mem), 1001)
	for addr := 9; addr < 999; addr++ {
		require.Equal(t, vm.Cell(0), i.Mem[addr], "mem[%d]", addr)
	}

	i.Poke(2000, 42)
	assert.Len(t, i.Mem, 2001)
	assert.Equal(t, vm.Cell(42), i.Peek(2000))
	assert.Equal(t, vm.Cell(0), i.Peek(1999))
}

func TestMemSize(t *testing.T) {
	i := setup(t, "99", vm.MemSize(100))
	assert.Len(t, i.Mem, 100)
	i = setup(t, "1,0,0,0,99", vm.MemSize(2))
	assert.Len(t, i.Mem, 5)
}

func TestRun(t *testing.T) {
	var out []vm.Cell
	i := setup(t, cmp8, vm.Input(vm.Values(9)), vm.Output(vm.Collect(&out)))
	require.NoError(t, i.Run())
	assert.Equal(t, []vm.Cell{1001}, out)
	assert.True(t, i.Halted())
	// no output handler
	i = setup(t, quine)
	require.NoError(t, i.Run())
	assert.True(t, i.Halted())
}

func TestClone(t *testing.T) {
	i := setup(t, doubleLoop)
	v, ok, err := i.Next(vm.Values(21))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, vm.Cell(42), v)

	c := i.Clone()
	v, _, err = c.Next(vm.Values(5))
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(10), v)
	v, _, err = i.Next(vm.Values(100))
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(200), v)

	assert.Equal(t, vm.Cell(5), c.Peek(20))
	assert.Equal(t, vm.Cell(100), i.Peek(20))
	assert.Equal(t, i.InstructionCount(), c.InstructionCount())
}

func TestCloneWaiting(t *testing.T) {
	i := setup(t, "3,0,4,0,99")
	res, err := i.Step()
	require.NoError(t, err)
	require.Equal(t, vm.YieldedInput, res.Status)

	c := i.Clone()
	require.True(t, c.Waiting())
	require.NoError(t, c.Resume(1))
	require.NoError(t, res.Complete(2))
	assert.Equal(t, C{1}, run(t, c))
	assert.Equal(t, C{2}, run(t, i))
}

func TestLoadSave(t *testing.T) {
	fn := t.TempDir() + "/prog.ic"
	prog, err := vm.ParseString(quine)
	require.NoError(t, err)
	require.NoError(t, vm.Save(fn, prog))
	mem, err := vm.Load(fn)
	require.NoError(t, err)
	assert.Equal(t, prog, mem)

	_, err = vm.Load(t.TempDir() + "/nonexistent")
	assert.Error(t, err)
}

func Benchmark_Quine(b *testing.B) {
	prog, err := vm.ParseString(quine)
	require.NoError(b, err)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		i, _ := vm.New(prog)
		i.Run()
	}
}

// counts down from the input value to 0.
const countDown = "3,100,1001,100,-1,100,1005,100,2,99"

func Benchmark_CountDown(b *testing.B) {
	prog, err := vm.ParseString(countDown)
	require.NoError(b, err)
	b.ResetTimer()
	var count int64
	for n := 0; n < b.N; n++ {
		i, _ := vm.New(prog, vm.Input(vm.Const(100000)))
		if err := i.Run(); err != nil {
			b.Fatalf("%+v", err)
		}
		count += i.InstructionCount()
	}
	b.ReportMetric(float64(count)/b.Elapsed().Seconds()/1e6, "MIPS")
}
