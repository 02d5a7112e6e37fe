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
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	cfg   Config
	debug bool
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "intcode",
		Short: "An Intcode VM toolbox.",
		Long:  "Run, chain, assemble and disassemble Intcode programs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "load configuration from `file` (default \""+defaultConfig+"\" if present)")
	pf.Bool("debug", false, "print stack traces with errors")
	pf.BoolP("verbose", "v", false, "log VM events")
	pf.Bool("trace", false, "log every executed instruction")

	root.AddCommand(newRunCmd(o), newChainCmd(o), newAsmCmd(), newDisasmCmd())
	return root
}

// setup loads the configuration file and configures logging.
func (o *options) setup(cmd *cobra.Command) error {
	name := GetString(cmd, "config")
	if name == "" {
		if _, err := os.Stat(defaultConfig); err == nil {
			name = defaultConfig
		}
	}
	if name != "" {
		cfg, err := LoadConfig(name)
		if err != nil {
			return err
		}
		o.cfg = *cfg
	}

	log.SetLevel(log.InfoLevel)
	if o.cfg.Log.Level != "" {
		l, _ := log.ParseLevel(o.cfg.Log.Level)
		log.SetLevel(l)
	}
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if GetFlag(cmd, "trace") {
		log.SetLevel(log.TraceLevel)
	}
	o.debug = GetFlag(cmd, "debug")
	return nil
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var o options
	root := newRootCmd(&o)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if o.debug {
			log.Errorf("%+v", err)
		} else {
			log.Error(err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
