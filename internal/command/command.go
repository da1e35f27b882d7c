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

// Package command implements parse_command (spec.md §6): turning one
// line of host input into a structured Command or a ParseError. The
// host-facing surface is deliberately small -- whitespace-tokenized
// keywords plus, for exact/apply/check, a term parsed by this
// package's own minimal expression grammar (see term.go).
package command

import (
	"fmt"
	"strings"

	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/token"
)

// Kind identifies which of spec.md §6's commands a line requested.
type Kind int

const (
	Intro Kind = iota
	Exact
	Apply
	Assumption
	Refl
	Undo
	Redo
	Show
	Help
	Quit
	Construct
	Verify
)

var kindNames = map[Kind]string{
	Intro: "intro", Exact: "exact", Apply: "apply", Assumption: "assumption",
	Refl: "refl", Undo: "undo", Redo: "redo", Show: "show", Help: "help",
	Quit: "quit", Construct: "construct", Verify: "verify",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Command is the parsed form of one host input line.
type Command struct {
	Kind Kind
	Term syntax.Expr // populated for Exact, Apply
	Name string      // populated for Construct
}

// ParseError reports why a line could not be parsed as a Command
// (spec.md §6, §7's Parse kind).
type ParseError struct {
	Reason string
	Pos    token.Pos
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %s", e.Reason) }

// ParseCommand tokenizes line on whitespace and dispatches on the
// first token (spec.md §6). scope names the current goal's
// hypotheses, oldest-first, so that a term argument to exact/apply can
// reference them; pass nil when there is no open goal. Unknown
// leading tokens, and missing arguments to exact/apply/construct, are
// reported as a *ParseError.
func ParseCommand(line string, scope []string) (*Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, &ParseError{Reason: "empty command"}
	}
	fields := strings.SplitN(trimmed, " ", 2)
	head := fields[0]
	rest := ""
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	switch head {
	case "intro":
		return &Command{Kind: Intro}, nil
	case "exact":
		term, err := requireTerm(rest, "exact", scope)
		if err != nil {
			return nil, err
		}
		return &Command{Kind: Exact, Term: term}, nil
	case "apply":
		term, err := requireTerm(rest, "apply", scope)
		if err != nil {
			return nil, err
		}
		return &Command{Kind: Apply, Term: term}, nil
	case "assumption":
		return &Command{Kind: Assumption}, nil
	case "refl":
		return &Command{Kind: Refl}, nil
	case "undo":
		return &Command{Kind: Undo}, nil
	case "redo":
		return &Command{Kind: Redo}, nil
	case "show":
		return &Command{Kind: Show}, nil
	case "help":
		return &Command{Kind: Help}, nil
	case "quit":
		return &Command{Kind: Quit}, nil
	case "construct":
		if rest == "" {
			return nil, &ParseError{Reason: "construct requires a name"}
		}
		return &Command{Kind: Construct, Name: rest}, nil
	case "verify":
		return &Command{Kind: Verify}, nil
	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unknown command: %s", head)}
	}
}

func requireTerm(rest, cmd string, scope []string) (syntax.Expr, error) {
	if rest == "" {
		return nil, &ParseError{Reason: fmt.Sprintf("%s requires a term", cmd)}
	}
	term, err := parseTerm(rest, scope)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			return nil, pe
		}
		return nil, &ParseError{Reason: err.Error()}
	}
	return term, nil
}
