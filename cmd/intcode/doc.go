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


// The intcode command line tool runs, chains, assembles and disassembles
// Intcode programs. It is a showcase for the package
// github.com/db47h/intcode/vm.
//
// Usage:
//
//	intcode run [flags] program
//	intcode chain --phases 0,1,2,3,4 [flags] program
//	intcode asm [-o output] source
//	intcode disasm program
//
// Programs are text files of comma separated integers.
//
// Global flags:
//
//	--config file
//		  load configuration from file (default "intcode.toml" if present)
//	--debug
//		  print a full stack trace should the VM crash
//	-v, --verbose
//		  log VM events (inputs, outputs, halt)
//	--trace
//		  log every executed instruction
//
// run: loads a program, applies memory patches (--poke addr=value) and runs
// it. Input values are taken from the -i flag first, then read from stdin as
// integers separated by white space or commas. Output values are printed one
// per line. With --ascii, input is read from stdin as text and output values
// in the ASCII range are printed as characters; --raw additionally switches
// the terminal to raw mode so that input is sent to the VM as it is typed.
// --dump prints the PC, relative base and memory contents on exit.
//
// chain: runs one instance of the program per phase setting, each one reading
// its phase setting and then the output of the previous one. The first one
// reads --signal instead. With --feedback, the output of the last one is fed
// back to the first until they all halt. With --search, all permutations of
// the phase settings are tried and the best one is reported.
//
// The configuration file uses the TOML format:
//
//	[log]
//	level = "info"
//
//	[run]
//	inputs = [1, 2]
//	ascii = false
//	raw = false
//	mem-size = 0
//
//	[[run.poke]]
//	addr = 1
//	value = 12
//
// Command line flags override configuration values.
package main
