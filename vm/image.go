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
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ici"
	"github.com/pkg/errors"
)

// Parse reads a program in text form: signed decimal integers separated by
// commas. White space around values is ignored, and so is a trailing comma or
// newline.
func Parse(r io.Reader) ([]Cell, error) {
	var mem []Cell
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<30)
	s.Split(scanCells)
	for s.Scan() {
		tok := strings.TrimSpace(s.Text())
		if tok == "" {
			// a single trailing separator
			if len(mem) > 0 && atEnd(s) {
				break
			}
			return nil, errors.Wrapf(ErrSyntax, "empty value at index %d", len(mem))
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "value %q at index %d", tok, len(mem))
		}
		mem = append(mem, Cell(v))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return mem, nil
}

// ParseString parses a program from a string. See Parse.
func ParseString(s string) ([]Cell, error) {
	return Parse(strings.NewReader(s))
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	mem, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return mem, nil
}

// scanCells is a bufio.SplitFunc that splits input at commas. White space only
// tokens at EOF are dropped.
func scanCells(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		if len(bytes.TrimSpace(data)) == 0 {
			if len(data) == 0 {
				return 0, nil, nil
			}
			// trailing white space: emit an empty token so that Parse can
			// tell "1,2," from "1,,2".
			return len(data), []byte{}, nil
		}
		return len(data), data, nil
	}
	return 0, nil, nil
}

// atEnd reports whether the scanner has no more tokens.
func atEnd(s *bufio.Scanner) bool {
	return !s.Scan()
}

// Encode writes mem to w in text form, followed by a newline.
func Encode(w io.Writer, mem []Cell) error {
	ew, ok := w.(*ici.ErrWriter)
	if !ok {
		ew = ici.NewErrWriter(w)
	}
	for n, v := range mem {
		if n > 0 {
			ew.Write([]byte{','})
		}
		writeInt(ew, int64(v))
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}

// Save saves mem to file fileName in text form.
func Save(fileName string, mem []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return Encode(w, mem)
}

func writeInt(w io.Writer, v int64) {
	var b [20]byte
	w.Write(strconv.AppendInt(b[:0], v, 10))
}
