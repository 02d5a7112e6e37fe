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


package ascii_test

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(in vm.InputFunc) []vm.Cell {
	var out []vm.Cell
	for v, ok := in(); ok; v, ok = in() {
		out = append(out, v)
	}
	return out
}

func TestInput(t *testing.T) {
	assert.Equal(t, []vm.Cell{'G', 'o', '!'}, drain(ascii.Input("Go!")))
	assert.Empty(t, drain(ascii.Input("")))
	assert.Equal(t, ascii.Encode("NOT A J\nWALK\n"), drain(ascii.Lines("NOT A J", "WALK")))
	assert.Empty(t, drain(ascii.Lines()))
}

func TestReader(t *testing.T) {
	assert.Equal(t, ascii.Encode("ab\ncd\n"), drain(ascii.Reader(strings.NewReader("ab\rcd\n"))))
	assert.Equal(t, ascii.Encode("ab"), drain(ascii.Reader(strings.NewReader("ab\x04cd"))))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, os.ErrClosed }

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	out := ascii.Writer(&b)
	for _, v := range []vm.Cell{'#', '.', '\n', 19349722, -1, 'x'} {
		require.NoError(t, out(v))
	}
	assert.Equal(t, "#.\n19349722\n-1\nx", b.String())

	out = ascii.Writer(failWriter{})
	err := out('a')
	assert.Equal(t, os.ErrClosed, errors.Cause(err))
	assert.Error(t, out('b'))
}

func TestDecode(t *testing.T) {
	s, rest := ascii.Decode([]vm.Cell{'o', 'k', '\n', 1000, 'a'})
	assert.Equal(t, "ok\n", s)
	assert.Equal(t, []vm.Cell{1000, 'a'}, rest)

	s, rest = ascii.Decode(ascii.Encode("all text"))
	assert.Equal(t, "all text", s)
	assert.Nil(t, rest)

	s, rest = ascii.Decode(nil)
	assert.Empty(t, s)
	assert.Nil(t, rest)
}

func TestRun(t *testing.T) {
	// reads characters and echoes them back until it reads a newline, then
	// outputs 1000.
	prog, err := vm.ParseString("3,100,4,100,1008,100,10,101,1006,101,0,104,1000,99")
	require.NoError(t, err)
	var b bytes.Buffer
	i, err := vm.New(prog, vm.Input(ascii.Lines("hello")), vm.Output(ascii.Writer(&b)))
	require.NoError(t, err)
	require.NoError(t, i.Run())
	assert.Equal(t, "hello\n1000\n", b.String())
}

func ExampleDecode() {
	prog, _ := vm.ParseString("104,72,104,105,104,10,104,4242,99")
	i, _ := vm.New(prog)
	var out []vm.Cell
	for v, err := range i.Outputs(nil) {
		if err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	s, rest := ascii.Decode(out)
	fmt.Printf("%q %v\n", s, rest)

	// Output:
	// "Hi\n" [4242]
}
