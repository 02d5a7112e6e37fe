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


package asm

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

// isName returns true if s is a valid label or constant name.
func isName(s string) bool {
	if s == "" || s == "rb" {
		return false
	}
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// isLocal returns true if s is a local label name.
func isLocal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type operand struct {
	mode  vm.Mode
	value vm.Cell
	label string
	pos   scanner.Position
}

type parser struct {
	mem    []vm.Cell
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	locals map[string]int
	errs   ErrAsm

	// current token
	tok   rune
	text  string
	pos   scanner.Position
	unget bool
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	p.locals = make(map[string]int)
	return p
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	p.errs = append(p.errs, struct {
		Pos scanner.Position
		Msg string
	}{pos, msg})
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.mem) {
		p.mem = append(p.mem, make([]vm.Cell, 1024)...)
	}
	p.mem[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

// scan reads the next token, skipping comments.
func (p *parser) scan() rune {
	if p.unget {
		p.unget = false
		return p.tok
	}
	for {
		p.tok = p.s.Scan()
		p.text = p.s.TokenText()
		p.pos = p.s.Position
		if p.tok != scanner.Ident || p.text != "(" {
			return p.tok
		}
		for {
			tok := p.s.Scan()
			if tok == scanner.EOF {
				p.tok, p.text = tok, ""
				return tok
			}
			if tok == scanner.Ident && p.s.TokenText() == ")" {
				break
			}
		}
	}
}

// isOperand returns true if the current token can be an instruction operand.
func (p *parser) isOperand() bool {
	if p.tok != scanner.Ident {
		return false
	}
	switch p.text[0] {
	case ':', '.':
		return false
	}
	_, isOp := vm.OpcodeByName(p.text)
	return !isOp
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{pos, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

// localRef resolves a local label reference of the form N- or N+ to the
// internal name of the previous or next definition of N.
func (p *parser) localRef(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	n, dir := s[:len(s)-1], s[len(s)-1]
	if !isLocal(n) {
		return "", false
	}
	c := p.locals[n]
	switch dir {
	case '+':
		c++
	case '-':
		if c == 0 {
			return "", false
		}
	default:
		return "", false
	}
	return n + "·" + strconv.Itoa(c), true
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	if isLocal(name) {
		p.locals[name]++
		name = name + "·" + strconv.Itoa(p.locals[name])
	} else if !isName(name) {
		p.errorAt(pos, "invalid label name "+strconv.Quote(name))
		return
	}
	if cst, ok := p.consts[name]; ok {
		p.errorAt(pos, "label redefinition "+name+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.errorAt(pos, "label redefinition "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// number parses an integer, character literal or constant.
func (p *parser) number(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err == nil && tail == "" {
			return vm.Cell(r), true
		}
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value parses a number or label reference.
func (p *parser) value(s string, pos scanner.Position) (operand, bool) {
	if v, ok := p.number(s); ok {
		return operand{value: v, pos: pos}, true
	}
	if isName(s) {
		return operand{label: s, pos: pos}, true
	}
	if l, ok := p.localRef(s); ok {
		return operand{label: l, pos: pos}, true
	}
	p.errorAt(pos, "invalid operand "+s)
	return operand{}, false
}

// operand parses an instruction operand:
//
//	42, 'c', name	immediate
//	[42], [name]	absolute
//	[rb], [rb+3]	relative
func (p *parser) operand(s string, pos scanner.Position) (operand, bool) {
	if s[0] != '[' {
		o, ok := p.value(s, pos)
		o.mode = vm.Immediate
		return o, ok
	}
	if len(s) < 3 || s[len(s)-1] != ']' {
		p.errorAt(pos, "malformed operand "+s)
		return operand{}, false
	}
	inner := s[1 : len(s)-1]
	if inner == "rb" {
		return operand{mode: vm.Relative, pos: pos}, true
	}
	if strings.HasPrefix(inner, "rb+") || strings.HasPrefix(inner, "rb-") {
		v, ok := p.number(inner[3:])
		if !ok {
			p.errorAt(pos, "invalid relative offset "+s)
			return operand{}, false
		}
		if inner[2] == '-' {
			v = -v
		}
		return operand{mode: vm.Relative, value: v, pos: pos}, true
	}
	o, ok := p.value(inner, pos)
	o.mode = vm.Absolute
	return o, ok
}

func (p *parser) emit(o operand) {
	if o.label != "" {
		p.useLabel(o.label, o.pos)
	}
	p.write(o.value)
}

func (p *parser) instruction(op vm.Opcode, pos scanner.Position) {
	var args [3]operand
	n := op.Params()
	for k := 0; k < n; k++ {
		if p.scan(); !p.isOperand() {
			p.errorAt(pos, op.String()+": expected "+strconv.Itoa(n)+" operands, got "+strconv.Itoa(k))
			p.unget = true
			return
		}
		o, ok := p.operand(p.text, p.pos)
		if !ok {
			return
		}
		if k == op.Dest() && o.mode == vm.Immediate {
			p.errorAt(o.pos, op.String()+": cannot write to immediate operand "+p.text)
			return
		}
		args[k] = o
	}
	p.write(encode(op, args[:n]))
	for _, o := range args[:n] {
		p.emit(o)
	}
}

func encode(op vm.Opcode, args []operand) vm.Cell {
	c := vm.Cell(op)
	m := vm.Cell(100)
	for _, o := range args {
		c += vm.Cell(o.mode) * m
		m *= 10
	}
	return c
}

// directive handles .org, .dat and .equ.
func (p *parser) directive(s string, pos scanner.Position) {
	switch s {
	case ".org":
		p.scan()
		v, ok := p.number(p.text)
		if p.tok != scanner.Ident || !ok || v < 0 {
			p.errorAt(p.pos, ".org: expected address, got "+p.text)
			return
		}
		p.pc = int(v)
	case ".dat":
		count := 0
		for p.scan(); p.isOperand(); p.scan() {
			o, ok := p.value(p.text, p.pos)
			if !ok {
				return
			}
			p.emit(o)
			count++
		}
		p.unget = true
		if count == 0 {
			p.errorAt(pos, ".dat: missing value")
		}
	case ".equ":
		p.scan()
		name, npos, ntok := p.text, p.pos, p.tok
		p.scan()
		v, ok := p.number(p.text)
		if ntok != scanner.Ident || !isName(name) {
			p.errorAt(npos, ".equ: expected identifier, got "+name)
			return
		}
		if p.tok != scanner.Ident || !ok {
			p.errorAt(p.pos, ".equ: expected value, got "+p.text)
			return
		}
		if l, ok := p.labels[name]; ok {
			p.errorAt(npos, ".equ: redefinition of "+name+", previously defined or used as a label here: "+l.pos.String())
			return
		}
		if c, ok := p.consts[name]; ok {
			p.errorAt(npos, ".equ: redefinition of "+name+", previous definition here: "+c.pos.String())
			return
		}
		p.consts[name] = labelSite{npos, int(v)}
	default:
		p.errorAt(pos, "unknown directive "+s)
	}
}

func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.errorAt(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.scan() {
		if tok != scanner.Ident {
			p.errorAt(p.pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		switch s := p.text; s[0] {
		case ':':
			p.defineLabel(s[1:], p.pos)
		case '.':
			p.directive(s, p.pos)
		default:
			if op, ok := vm.OpcodeByName(s); ok {
				p.instruction(op, p.pos)
				break
			}
			p.errorAt(p.pos, "unexpected operand "+s)
		}
	}

	// resolve labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.errorAt(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.mem[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		sort.SliceStable(p.errs, func(i, j int) bool { return p.errs[i].Pos.Offset < p.errs[j].Pos.Offset })
		if len(p.errs) > maxErrors {
			p.errs = p.errs[:maxErrors]
		}
		return nil, p.errs
	}
	return p.mem[:p.end], nil
}
