// Copyright 2024 The ProveIt Authors
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

package command

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/token"
)

// termParser is a small recursive-descent parser for the term
// fragment `exact`/`apply`/`check` accept on the command line. spec.md
// explicitly leaves "any particular surface syntax" a non-goal, so this
// grammar is ProveIt's own minimal choice rather than a specified one:
// variables, Type<level>, non-dependent and dependent Pi, lambda,
// application, Path and its introduction/elimination forms. Comp, Coe,
// HComp, Glue and the smooth operators have no textual form here --
// only a term script or programmatic construction produces them,
// following the scanner/parser split cue/parser uses but reduced to a
// single in-memory line instead of a token.File.
type termParser struct {
	src   []rune
	pos   int
	names map[string]int // name -> de Bruijn index, innermost last
}

// newTermParser builds a parser for src with scope already bound in
// the environment a term like "exact h" is checked against: scope
// lists hypothesis names oldest-first, the same order
// proofstate.Goal.Hypotheses uses, so the resulting de Bruijn indices
// agree with tactics.goalCtx's extension order (newest hypothesis gets
// index 0).
func newTermParser(src string, scope []string) *termParser {
	p := &termParser{src: []rune(src), names: map[string]int{}}
	for _, name := range scope {
		p.pushName(name)
	}
	return p
}

func (p *termParser) peekRune() (rune, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *termParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *termParser) errorf(format string, args ...any) error {
	return &ParseError{Reason: fmt.Sprintf(format, args...), Pos: token.Pos(p.pos)}
}

// pushName shadows name at a fresh innermost binding, returning a
// function that restores the previous binding (or removes it) when the
// scope closes.
func (p *termParser) pushName(name string) func() {
	prev, had := p.names[name]
	for n := range p.names {
		p.names[n]++
	}
	p.names[name] = 0
	return func() {
		for n := range p.names {
			p.names[n]--
		}
		if had {
			p.names[name] = prev
		} else {
			delete(p.names, name)
		}
	}
}

func (p *termParser) consume(lit string) bool {
	p.skipSpace()
	rs := []rune(lit)
	if p.pos+len(rs) > len(p.src) {
		return false
	}
	for i, r := range rs {
		if p.src[p.pos+i] != r {
			return false
		}
	}
	// Reject matching a keyword/symbol as a prefix of a longer identifier.
	if unicode.IsLetter(rs[0]) {
		end := p.pos + len(rs)
		if end < len(p.src) && (unicode.IsLetter(p.src[end]) || unicode.IsDigit(p.src[end]) || p.src[end] == '_') {
			return false
		}
	}
	p.pos += len(rs)
	return true
}

func (p *termParser) ident() (string, bool) {
	p.skipSpace()
	start := p.pos
	if p.pos >= len(p.src) || !(unicode.IsLetter(p.src[p.pos]) || p.src[p.pos] == '_') {
		return "", false
	}
	for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	return string(p.src[start:p.pos]), true
}

func (p *termParser) number() (int, bool) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && unicode.IsDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, _ := strconv.Atoi(string(p.src[start:p.pos]))
	return n, true
}

// parseExpr is the grammar's entry point.
func (p *termParser) parseExpr() (syntax.Expr, error) {
	e, err := p.parseLambda()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected input after expression")
	}
	return e, nil
}

func (p *termParser) parseLambda() (syntax.Expr, error) {
	if p.consume(`\`) {
		name, ok := p.ident()
		if !ok {
			return nil, p.errorf("expected a name after '\\'")
		}
		if !p.consume(".") {
			return nil, p.errorf("expected '.' after lambda name")
		}
		pop := p.pushName(name)
		body, err := p.parseLambda()
		pop()
		if err != nil {
			return nil, err
		}
		return &syntax.Lambda{Name: syntax.NewName(name), Body: body}, nil
	}
	if p.consume("<") {
		name, ok := p.ident()
		if !ok {
			return nil, p.errorf("expected a dimension name after '<'")
		}
		if !p.consume(">") {
			return nil, p.errorf("expected '>' after dimension name")
		}
		// A '.' after the binder is optional: "<i>. body" and the
		// "<i> body" form PathLam.String prints both parse.
		p.consume(".")
		pop := p.pushName(name)
		body, err := p.parseLambda()
		pop()
		if err != nil {
			return nil, err
		}
		return &syntax.PathLam{DimName: syntax.NewName(name), Body: body}, nil
	}
	return p.parsePi()
}

func (p *termParser) parsePi() (syntax.Expr, error) {
	mark := p.pos
	if p.consume("(") {
		if name, ok := p.ident(); ok && p.consume(":") {
			dom, err := p.parseLambda()
			if err != nil {
				return nil, err
			}
			if !p.consume(")") {
				return nil, p.errorf("expected ')' to close the binder")
			}
			if !p.consume("->") {
				return nil, p.errorf("expected '->' after a Pi binder")
			}
			pop := p.pushName(name)
			cod, err := p.parseLambda()
			pop()
			if err != nil {
				return nil, err
			}
			return &syntax.Pi{Name: syntax.NewName(name), Domain: dom, Codomain: cod}, nil
		}
		p.pos = mark
	}
	lhs, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.consume("->") {
		rhs, err := p.parseLambda()
		if err != nil {
			return nil, err
		}
		return &syntax.Pi{Name: syntax.NewName("_"), Domain: lhs, Codomain: rhs}, nil
	}
	return lhs, nil
}

func (p *termParser) parseApp() (syntax.Expr, error) {
	fn, err := p.parsePathApp()
	if err != nil {
		return nil, err
	}
	for {
		if !p.startsAtom() {
			return fn, nil
		}
		arg, err := p.parsePathApp()
		if err != nil {
			return nil, err
		}
		fn = &syntax.App{Func: fn, Arg: arg}
	}
}

func (p *termParser) startsAtom() bool {
	r, ok := p.peekRune()
	if !ok {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '(' || r == '_'
}

func (p *termParser) parsePathApp() (syntax.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.consume("@") {
		d, err := p.parseDim()
		if err != nil {
			return nil, err
		}
		e = &syntax.PathApp{Path: e, Dim: d}
	}
	return e, nil
}

func (p *termParser) parseDim() (syntax.Dim, error) {
	if p.consume("0") {
		return syntax.DZero(), nil
	}
	if p.consume("1") {
		return syntax.DOne(), nil
	}
	name, ok := p.ident()
	if !ok {
		return syntax.Dim{}, p.errorf("expected a dimension (0, 1, or a bound name)")
	}
	idx, ok := p.names[name]
	if !ok {
		return syntax.Dim{}, p.errorf("unbound dimension variable: %s", name)
	}
	return syntax.DVar(syntax.DimVar(idx)), nil
}

func (p *termParser) parseAtom() (syntax.Expr, error) {
	if p.consume("(") {
		e, err := p.parseLambda()
		if err != nil {
			return nil, err
		}
		if !p.consume(")") {
			return nil, p.errorf("expected ')'")
		}
		return e, nil
	}
	mark := p.pos
	if name, ok := p.ident(); ok && len(name) >= 4 && name[:4] == "Type" {
		if name == "Type" {
			if lvl, ok := p.number(); ok {
				return &syntax.TypeExpr{Level: syntax.Level(lvl)}, nil
			}
			return &syntax.TypeExpr{Level: 0}, nil
		}
		if lvl, err := strconv.Atoi(name[4:]); err == nil {
			return &syntax.TypeExpr{Level: syntax.Level(lvl)}, nil
		}
	}
	p.pos = mark
	if p.consume("Path") {
		ty, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		lhs, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		rhs, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &syntax.Path{Type: ty, Left: lhs, Right: rhs}, nil
	}
	name, ok := p.ident()
	if !ok {
		return nil, p.errorf("expected an expression")
	}
	idx, ok := p.names[name]
	if !ok {
		return nil, p.errorf("unbound variable: %s", name)
	}
	return &syntax.Var{Name: syntax.NewName(name), Index: idx}, nil
}

// parseTerm parses src as a term, resolving free identifiers against
// scope (oldest-first hypothesis names).
func parseTerm(src string, scope []string) (syntax.Expr, error) {
	return newTermParser(src, scope).parseExpr()
}

// ParseTerm parses src as a standalone term against scope (oldest-first
// free-variable names), for callers outside this package that need a
// term but not a whole Command -- cmd/proveit's `check` subcommand.
func ParseTerm(src string, scope []string) (syntax.Expr, error) {
	return parseTerm(src, scope)
}
