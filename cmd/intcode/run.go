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

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] program",
		Short: "Run an Intcode program.",
		Long: `Run an Intcode program. Input values are taken from the -i flag first, then
read from stdin. Output values are printed one per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.Int64SliceP("input", "i", nil, "input `values`")
	f.Bool("ascii", false, "read input and write output as ASCII text")
	f.Bool("raw", false, "switch the terminal to raw mode in ASCII mode")
	f.Bool("dump", false, "dump the VM state on exit")
	f.StringSlice("poke", nil, "patch memory before running, as `addr=value`")
	f.Int("mem-size", 0, "preallocated memory `cells`")
	return cmd
}

// runConfig merges the command line flags into the configuration file
// settings.
func (o *options) runConfig(cmd *cobra.Command) (RunConfig, error) {
	rc := o.cfg.Run
	f := cmd.Flags()
	if f.Changed("input") {
		rc.Inputs = GetInt64Slice(cmd, "input")
	}
	if f.Changed("ascii") {
		rc.ASCII = GetFlag(cmd, "ascii")
	}
	if f.Changed("raw") {
		rc.Raw = GetFlag(cmd, "raw")
	}
	if f.Changed("mem-size") {
		rc.MemSize = GetInt(cmd, "mem-size")
	}
	// copy so that flag pokes do not alias the configuration slice
	rc.Poke = append([]Poke(nil), rc.Poke...)
	for _, s := range GetStringSlice(cmd, "poke") {
		p, err := parsePoke(s)
		if err != nil {
			return rc, err
		}
		rc.Poke = append(rc.Poke, p)
	}
	return rc, nil
}

func (o *options) run(cmd *cobra.Command, name string) (err error) {
	rc, err := o.runConfig(cmd)
	if err != nil {
		return err
	}
	prog, err := vm.Load(name)
	if err != nil {
		return err
	}

	stdout := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if ferr := stdout.Flush(); err == nil {
			err = ferr
		}
	}()

	stdin := cmd.InOrStdin()
	in := make([]vm.Cell, len(rc.Inputs))
	for n, v := range rc.Inputs {
		in[n] = vm.Cell(v)
	}
	var opts []vm.Option
	if rc.ASCII {
		if rc.Raw {
			tearDown, err := setRawIO(stdin)
			if err != nil {
				log.WithError(err).Warn("raw terminal mode unavailable")
			} else {
				defer tearDown()
			}
		}
		opts = append(opts,
			vm.Input(flushing(vm.Chain(vm.Values(in...), ascii.Reader(stdin)), stdout)),
			vm.Output(ascii.Writer(stdout)))
	} else {
		opts = append(opts,
			vm.Input(flushing(vm.Chain(vm.Values(in...), numReader(stdin)), stdout)),
			vm.Output(numWriter(stdout)))
	}
	if rc.MemSize > 0 {
		opts = append(opts, vm.MemSize(rc.MemSize))
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		opts = append(opts, vm.Logger(log.StandardLogger()))
	}

	i, err := vm.New(prog, opts...)
	if err != nil {
		return err
	}
	for _, p := range rc.Poke {
		i.Poke(p.Addr, vm.Cell(p.Value))
	}
	err = i.Run()
	log.WithField("count", i.InstructionCount()).Debug("run complete")
	if err == nil && GetFlag(cmd, "dump") {
		err = i.Dump(stdout)
	}
	return err
}
