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
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAsmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm [-o output] source",
		Short: "Assemble an Intcode program.",
		Long:  `Assemble an Intcode program and write it as comma separated integers.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open failed")
			}
			defer f.Close()
			prog, err := asm.Assemble(args[0], bufio.NewReader(f))
			if err != nil {
				return err
			}
			if out := GetString(cmd, "output"); out != "" {
				return vm.Save(out, prog)
			}
			return vm.Encode(cmd.OutOrStdout(), prog)
		},
	}
	cmd.Flags().StringP("output", "o", "", "write the program to `file` instead of stdout")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm program",
		Short: "Disassemble an Intcode program.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err = asm.DisassembleAll(prog, 0, w); err != nil {
				return err
			}
			return w.Flush()
		},
	}
}
