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
	"fmt"
	"strings"

	"github.com/db47h/intcode/pipe"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newChainCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain [flags] program",
		Short: "Run a chain of Intcode programs.",
		Long: `Run one instance of the program per phase setting. Each instance reads its
phase setting, then its input signal: --signal for the first one, the output of
the previous one for the others. Prints the last output of the last instance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.chain(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.Int64Slice("phases", nil, "phase `settings`, one per instance")
	f.Int64("signal", 0, "input signal of the first instance")
	f.Bool("feedback", false, "feed the output of the last instance back to the first one")
	f.Bool("search", false, "try all permutations of the phase settings and report the best one")
	cmd.MarkFlagRequired("phases")
	return cmd
}

func (o *options) chain(cmd *cobra.Command, name string) error {
	prog, err := vm.Load(name)
	if err != nil {
		return err
	}
	phases := make([]vm.Cell, 0, len(GetInt64Slice(cmd, "phases")))
	for _, ph := range GetInt64Slice(cmd, "phases") {
		phases = append(phases, vm.Cell(ph))
	}
	if len(phases) == 0 {
		return errors.New("no phase settings")
	}
	signal := vm.Cell(GetInt64(cmd, "signal"))
	f := pipe.Chain
	if GetFlag(cmd, "feedback") {
		f = pipe.Loop
	}
	var opts []pipe.Option
	if log.IsLevelEnabled(log.DebugLevel) {
		opts = append(opts, pipe.Logger(log.StandardLogger()))
	}

	if !GetFlag(cmd, "search") {
		v, err := f(prog, phases, signal, opts...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	}

	var (
		best  vm.Cell
		bestP []vm.Cell
	)
	err = permute(phases, func(p []vm.Cell) error {
		v, err := f(prog, p, signal, opts...)
		if err != nil {
			return errors.Wrapf(err, "phases %v", p)
		}
		if bestP == nil || v > best {
			best = v
			bestP = append(bestP[:0], p...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s := make([]string, len(bestP))
	for n, v := range bestP {
		s[n] = fmt.Sprint(v)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", best, strings.Join(s, ","))
	return nil
}

// permute calls f with every permutation of s, in place (Heap's algorithm).
func permute(s []vm.Cell, f func([]vm.Cell) error) error {
	var gen func(k int) error
	gen = func(k int) error {
		if k <= 1 {
			return f(s)
		}
		for i := 0; i < k-1; i++ {
			if err := gen(k - 1); err != nil {
				return err
			}
			if k%2 == 0 {
				s[i], s[k-1] = s[k-1], s[i]
			} else {
				s[0], s[k-1] = s[k-1], s[0]
			}
		}
		return gen(k - 1)
	}
	return gen(len(s))
}
