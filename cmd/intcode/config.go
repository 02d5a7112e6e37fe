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
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultConfig = "intcode.toml"

// Config is the contents of a configuration file.
type Config struct {
	Log LogConfig `toml:"log"`
	Run RunConfig `toml:"run"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// RunConfig holds default settings for the run command.
type RunConfig struct {
	Inputs  []int64 `toml:"inputs"`
	ASCII   bool    `toml:"ascii"`
	Raw     bool    `toml:"raw"`
	MemSize int     `toml:"mem-size"`
	Poke    []Poke  `toml:"poke"`
}

// Poke is a memory patch applied before running a program.
type Poke struct {
	Addr  int   `toml:"addr"`
	Value int64 `toml:"value"`
}

// LoadConfig parses the given configuration file.
func LoadConfig(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", name)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", name)
	}
	if err := c.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in %s", name)
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	if c.Run.MemSize < 0 {
		return errors.Errorf("negative mem-size %d", c.Run.MemSize)
	}
	for _, p := range c.Run.Poke {
		if p.Addr < 0 {
			return errors.Errorf("negative poke address %d", p.Addr)
		}
	}
	return nil
}

// parsePoke parses a memory patch of the form addr=value.
func parsePoke(s string) (Poke, error) {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return Poke{}, errors.Errorf("invalid poke %q: expected addr=value", s)
	}
	addr, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || addr < 0 {
		return Poke{}, errors.Errorf("invalid poke address %q", a)
	}
	val, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
	if err != nil {
		return Poke{}, errors.Wrapf(err, "invalid poke value %q", v)
	}
	return Poke{addr, val}, nil
}
