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


package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	log "github.com/sirupsen/logrus"
)

// numWriter returns an output function that writes values to w in decimal
// form, one per line.
func numWriter(w io.Writer) vm.OutputFunc {
	ew := ici.NewErrWriter(w)
	b := make([]byte, 0, 24)
	return func(v vm.Cell) error {
		b = strconv.AppendInt(b[:0], int64(v), 10)
		b = append(b, '\n')
		ew.Write(b)
		return ew.Err
	}
}

// numReader returns an input function that reads integers separated by white
// space or commas from r. Reading stops at the first invalid value.
func numReader(r io.Reader) vm.InputFunc {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	var pending []string
	return func() (vm.Cell, bool) {
		for len(pending) == 0 {
			if !s.Scan() {
				return 0, false
			}
			pending = strings.FieldsFunc(s.Text(), func(r rune) bool { return r == ',' })
		}
		tok := pending[0]
		pending = pending[1:]
		n, err := strconv.ParseInt(tok, 0, 64)
		if err != nil {
			log.WithField("value", tok).Error("invalid input value")
			pending = nil
			return 0, false
		}
		return vm.Cell(n), true
	}
}

// flushing flushes w before each read from in, so that prompts are visible
// when reading interactively.
func flushing(in vm.InputFunc, w *bufio.Writer) vm.InputFunc {
	return func() (vm.Cell, bool) {
		w.Flush()
		return in()
	}
}
