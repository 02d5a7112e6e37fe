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

// Values returns an InputFunc that returns the given values in order, then
// reports that no more input is available.
func Values(v ...Cell) InputFunc {
	return func() (Cell, bool) {
		if len(v) == 0 {
			return 0, false
		}
		c := v[0]
		v = v[1:]
		return c, true
	}
}

// Const returns an InputFunc that always returns v.
func Const(v Cell) InputFunc {
	return func() (Cell, bool) { return v, true }
}

// Chain returns an InputFunc that reads from each of the given InputFuncs in
// turn, moving to the next one when the current one runs dry.
func Chain(in ...InputFunc) InputFunc {
	return func() (Cell, bool) {
		for len(in) > 0 {
			if v, ok := in[0](); ok {
				return v, true
			}
			in = in[1:]
		}
		return 0, false
	}
}

// Collect returns an OutputFunc that appends output values to dst.
func Collect(dst *[]Cell) OutputFunc {
	return func(v Cell) error {
		*dst = append(*dst, v)
		return nil
	}
}
