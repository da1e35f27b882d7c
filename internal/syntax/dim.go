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

package syntax

import "fmt"

// DimVar identifies a dimension (interval) variable. Ordering between
// DimVars is their integer id, giving the total order §4.5 requires
// for deterministic tie-breaking.
type DimVar uint32

// DimKind tags the three forms a Dim can take.
type DimKind uint8

const (
	DimZero DimKind = iota
	DimOne
	DimVariable
)

// Dim is a point of the interval: the constants 0 and 1, or a free
// dimension variable (spec.md §3). The interval is the free
// distributive lattice on such variables with bounds 0 and 1; this
// package only represents the leaves, not conjunctions/disjunctions of
// dimensions (those live one level up, in Face).
type Dim struct {
	Kind DimKind
	Var  DimVar // meaningful only when Kind == DimVariable
}

// DZero and DOne are the two dimension endpoints.
func DZero() Dim { return Dim{Kind: DimZero} }
func DOne() Dim  { return Dim{Kind: DimOne} }

// DVar builds a dimension variable reference.
func DVar(v DimVar) Dim { return Dim{Kind: DimVariable, Var: v} }

// Equal reports whether two dimensions denote the same interval point.
func (d Dim) Equal(o Dim) bool {
	if d.Kind != o.Kind {
		return false
	}
	return d.Kind != DimVariable || d.Var == o.Var
}

func (d Dim) String() string {
	switch d.Kind {
	case DimZero:
		return "0"
	case DimOne:
		return "1"
	default:
		return fmt.Sprintf("i%d", d.Var)
	}
}

// FaceKind tags the three forms a Face can take (spec.md §3, §4.1).
type FaceKind uint8

const (
	FaceTrue FaceKind = iota
	FaceEq
	FaceAnd
)

// Face is a cofibration: the trivially true face, a leaf equation
// pinning a dimension variable to an endpoint, or the conjunction of
// two faces. Disjunction is not a Face constructor -- it is expressed
// by supplying multiple (face, value) pairs in a face system (spec.md
// §4.1, §9).
type Face struct {
	Kind FaceKind
	Var  DimVar // meaningful only for FaceEq
	Val  bool   // meaningful only for FaceEq: true means Var=1, false means Var=0
	L, R *Face  // meaningful only for FaceAnd
}

// True is the always-satisfied face.
func True() Face { return Face{Kind: FaceTrue} }

// Eq builds the leaf face "Var = Val" (Val false means Var=0, true means Var=1).
func Eq(v DimVar, val bool) Face { return Face{Kind: FaceEq, Var: v, Val: val} }

// And builds the conjunction of two faces.
func And(l, r Face) Face { return Face{Kind: FaceAnd, L: &l, R: &r} }

func (f Face) String() string {
	switch f.Kind {
	case FaceTrue:
		return "1=1"
	case FaceEq:
		b := "0"
		if f.Val {
			b = "1"
		}
		return fmt.Sprintf("i%d=%s", f.Var, b)
	default:
		return fmt.Sprintf("(%s ∧ %s)", f.L, f.R)
	}
}

// DimEnv is the dimension environment: a substitution from dimension
// variables to concrete endpoints, kept separate from the term
// environment (spec.md §4.1, §9) so that interval substitution never
// interferes with β-reduction.
type DimEnv struct {
	assign map[DimVar]Dim
}

// NewDimEnv returns an empty dimension environment.
func NewDimEnv() DimEnv { return DimEnv{assign: map[DimVar]Dim{}} }

// Extend returns a new environment with v bound to d, leaving the
// receiver untouched (environments are immutable once built, §9).
func (e DimEnv) Extend(v DimVar, d Dim) DimEnv {
	next := make(map[DimVar]Dim, len(e.assign)+1)
	for k, val := range e.assign {
		next[k] = val
	}
	next[v] = d
	return DimEnv{assign: next}
}

// Len reports how many dimension variables are currently bound. Kan
// reductions use it to pick the next dimension variable id disjoint
// from every binder opened so far (package value's bindFreshDimVar).
func (e DimEnv) Len() int { return len(e.assign) }

// Lookup resolves a dimension through the environment: a variable
// substitutes to its assignment if bound, otherwise it resolves to
// itself (it is free in the current scope).
func (e DimEnv) Lookup(d Dim) Dim {
	if d.Kind != DimVariable {
		return d
	}
	if resolved, ok := e.assign[d.Var]; ok {
		return resolved
	}
	return d
}

// Satisfied reports whether a face formula is satisfied under the
// dimension environment (spec.md §4.1, §8 properties 4-5):
//
//	True is always satisfied;
//	Eq(v, b) is satisfied iff the environment resolves v to the
//	         constant endpoint b;
//	And(f1, f2) iff both conjuncts are satisfied.
func Satisfied(f Face, env DimEnv) bool {
	switch f.Kind {
	case FaceTrue:
		return true
	case FaceEq:
		resolved := env.Lookup(DVar(f.Var))
		switch resolved.Kind {
		case DimZero:
			return !f.Val
		case DimOne:
			return f.Val
		default:
			return false
		}
	default:
		return Satisfied(*f.L, env) && Satisfied(*f.R, env)
	}
}
