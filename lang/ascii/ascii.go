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


// Package ascii provides I/O helpers for Intcode programs that use the ASCII
// protocol: input and output values in the range 0-127 are characters, and
// larger output values carry raw numeric results.
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest value interpreted as a character.
const MaxChar = 127

// IsChar returns true if v is in the ASCII range.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Input returns an input function that supplies the bytes of s, one per read.
func Input(s string) vm.InputFunc {
	return func() (vm.Cell, bool) {
		if len(s) == 0 {
			return 0, false
		}
		c := s[0]
		s = s[1:]
		return vm.Cell(c), true
	}
}

// Lines is like Input with a newline appended to each line.
func Lines(lines ...string) vm.InputFunc {
	if len(lines) == 0 {
		return Input("")
	}
	return Input(strings.Join(lines, "\n") + "\n")
}

// Reader returns an input function that reads bytes from r. It reports no
// more input on EOF or on any read error.
//
// A Ctrl-D (EOT) character is treated as EOF, for raw terminal input.
func Reader(r io.Reader) vm.InputFunc {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return func() (vm.Cell, bool) {
		c, err := br.ReadByte()
		if err != nil || c == 4 {
			return 0, false
		}
		if c == '\r' {
			c = '\n'
		}
		return vm.Cell(c), true
	}
}

// Writer returns an output function that writes characters to w. Values
// outside of the ASCII range are written in decimal form on a line of their
// own.
func Writer(w io.Writer) vm.OutputFunc {
	ew, _ := w.(*ici.ErrWriter)
	if ew == nil {
		ew = ici.NewErrWriter(w)
	}
	var b [24]byte
	return func(v vm.Cell) error {
		if IsChar(v) {
			b[0] = byte(v)
			ew.Write(b[:1])
			return ew.Err
		}
		buf := strconv.AppendInt(b[:0], int64(v), 10)
		buf = append(buf, '\n')
		ew.Write(buf)
		return ew.Err
	}
}

// Decode splits a sequence of output values into the text made of its leading
// ASCII characters and the remaining values.
func Decode(cells []vm.Cell) (string, []vm.Cell) {
	var sb strings.Builder
	for n, c := range cells {
		if !IsChar(c) {
			return sb.String(), cells[n:]
		}
		sb.WriteByte(byte(c))
	}
	return sb.String(), nil
}

// Encode returns the given string as a sequence of cells.
func Encode(s string) []vm.Cell {
	cells := make([]vm.Cell, len(s))
	for n := 0; n < len(s); n++ {
		cells[n] = vm.Cell(s[n])
	}
	return cells
}
