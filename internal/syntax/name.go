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

// Package syntax defines the term AST, the dimension AST, face
// formulas, and universe levels (spec.md §3, §4.1). Values (the
// semantic side of NbE) live in the sibling package "value"; syntax
// holds only what survives from the user's (or tactic builder's)
// source text.
package syntax

import "fmt"

// Name is an opaque display identifier. It carries no semantic weight
// of its own -- de Bruijn indices do that -- but is retained on binders
// so read-back can print something a human recognizes.
type Name struct {
	base string
}

// NewName wraps a display string as a Name.
func NewName(base string) Name { return Name{base: base} }

// String returns the name's display text.
func (n Name) String() string { return n.base }

// Fresh returns a name derived from n that is not a member of avoid.
// It is used by read-back (spec.md §4.3) when opening a binder: the
// chosen variable must not collide with anything already in scope.
func Fresh(base string, avoid map[string]bool) Name {
	if base == "" {
		base = "x"
	}
	if !avoid[base] {
		return Name{base: base}
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !avoid[candidate] {
			return Name{base: candidate}
		}
	}
}

// Level is a universe level: a non-negative integer with a strict
// monotonic successor (spec.md §3). Type(l) : Type(l+1).
type Level uint32

// Succ returns the next universe level.
func (l Level) Succ() Level { return l + 1 }

// Max returns the larger of two levels, used when inferring the level
// of a Pi type from its domain and codomain (spec.md §4.4).
func Max(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}
