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

import (
	"fmt"
	"strings"

	"github.com/TensorHusker/ProveIt/internal/token"
)

// Expr is a term of the surface AST (spec.md §3's Expression table).
// Values use de Bruijn indices; Expr keeps display names on binders
// purely for printing and error messages (spec.md §4.1, §9).
//
// Expr is a closed sum type implemented as an interface with a private
// method, in the manner of cuelang.org/go's adt.Expr: every variant
// below is the only thing that can satisfy it.
type Expr interface {
	isExpr()
	// Pos reports the position this node was parsed at, or token.NoPos
	// for synthesized terms (tactic builders never attach positions).
	Pos() token.Pos
	String() string
}

type exprBase struct {
	At token.Pos
}

func (exprBase) isExpr()          {}
func (b exprBase) Pos() token.Pos { return b.At }

// TypeExpr is the universe Type(level).
type TypeExpr struct {
	exprBase
	Level Level
}

func (e *TypeExpr) String() string { return fmt.Sprintf("Type%d", e.Level) }

// Var is a bound or free variable reference: Name is for display,
// Index is the de Bruijn index actually used by evaluation.
type Var struct {
	exprBase
	Name  Name
	Index int
}

func (e *Var) String() string { return e.Name.String() }

// Pi is a dependent function type (A : Domain) -> Codomain.
type Pi struct {
	exprBase
	Name     Name
	Domain   Expr
	Codomain Expr
}

func (e *Pi) String() string {
	return fmt.Sprintf("(%s : %s) -> %s", e.Name, e.Domain, e.Codomain)
}

// Lambda introduces a function.
type Lambda struct {
	exprBase
	Name Name
	Body Expr
}

func (e *Lambda) String() string { return fmt.Sprintf("\\%s. %s", e.Name, e.Body) }

// App applies a function to an argument.
type App struct {
	exprBase
	Func Expr
	Arg  Expr
}

func (e *App) String() string { return fmt.Sprintf("(%s %s)", e.Func, e.Arg) }

// Path is the cubical path type between two endpoints of Type.
type Path struct {
	exprBase
	Type  Expr
	Left  Expr
	Right Expr
}

func (e *Path) String() string { return fmt.Sprintf("Path %s %s %s", e.Type, e.Left, e.Right) }

// PathLam introduces a path: <dimVar> Body.
type PathLam struct {
	exprBase
	DimName Name
	Body    Expr
}

func (e *PathLam) String() string { return fmt.Sprintf("<%s> %s", e.DimName, e.Body) }

// PathApp applies a path to a dimension.
type PathApp struct {
	exprBase
	Path Expr
	Dim  Dim
}

func (e *PathApp) String() string { return fmt.Sprintf("(%s @ %s)", e.Path, e.Dim) }

// SmoothPath is a Path additionally annotated with a differentiability
// order (spec.md §3, "SmoothPath"). Order is presently an advisory
// configuration threshold (spec.md §9's open question), not a
// mathematical constraint.
type SmoothPath struct {
	exprBase
	Order int
	Type  Expr
	Left  Expr
	Right Expr
}

func (e *SmoothPath) String() string {
	return fmt.Sprintf("SmoothPath[%d] %s %s %s", e.Order, e.Type, e.Left, e.Right)
}

// FaceEntry pairs a face formula with the value that applies on it,
// one entry of a face system (spec.md §3, §4.5).
type FaceEntry struct {
	Face  Face
	Value Expr
}

func faceSystemString(faces []FaceEntry) string {
	parts := make([]string, len(faces))
	for i, f := range faces {
		parts[i] = fmt.Sprintf("(%s -> %s)", f.Face, f.Value)
	}
	return strings.Join(parts, ", ")
}

// Comp is a Kan composition filler (spec.md §4.5).
type Comp struct {
	exprBase
	Type  Expr
	Base  Expr
	Faces []FaceEntry
}

func (e *Comp) String() string {
	return fmt.Sprintf("comp %s %s [%s]", e.Type, e.Base, faceSystemString(e.Faces))
}

// Coe is coercion of Base along TypeFam from dimension From to To.
type Coe struct {
	exprBase
	TypeFam Expr
	From    Dim
	To      Dim
	Base    Expr
}

func (e *Coe) String() string {
	return fmt.Sprintf("coe %s %s %s %s", e.TypeFam, e.From, e.To, e.Base)
}

// HComp is homogeneous composition: comp specialized to a constant
// type and target dimension 1 (spec.md §4.5).
type HComp struct {
	exprBase
	Type  Expr
	Base  Expr
	Faces []FaceEntry
}

func (e *HComp) String() string {
	return fmt.Sprintf("hcomp %s %s [%s]", e.Type, e.Base, faceSystemString(e.Faces))
}

// GlueEquiv is one entry of a Glue type's equivalence list: a face on
// which the glue applies, a type, and the equivalence witness.
type GlueEquiv struct {
	Face       Face
	Type       Expr
	Equivalence Expr
}

// Glue is the univalence-style glue type (spec.md §3). ProveIt accepts
// and carries Glue terms through the kernel but (per spec.md §1) does
// not attempt univalence-specific reductions beyond what Kan already
// provides on its base type.
type Glue struct {
	exprBase
	Base       Expr
	Equivalences []GlueEquiv
}

func (e *Glue) String() string { return fmt.Sprintf("Glue %s [...]", e.Base) }

// Diff, Integral and Taylor are the reserved smooth operators. Per
// spec.md §4.2/§9 they reduce as neutrals until their calculus is
// specified; the kernel never interprets their Order/Expr payloads.
type Diff struct {
	exprBase
	Order int
	Of    Expr
}

func (e *Diff) String() string { return fmt.Sprintf("Diff[%d] %s", e.Order, e.Of) }

type Integral struct {
	exprBase
	Of Expr
}

func (e *Integral) String() string { return fmt.Sprintf("Integral %s", e.Of) }

type Taylor struct {
	exprBase
	Order int
	Of    Expr
	At    Expr
}

func (e *Taylor) String() string { return fmt.Sprintf("Taylor[%d] %s at %s", e.Order, e.Of, e.At) }

// Helper constructors used by tactic builders (spec.md §4.8, §9) where
// proof terms are synthesized rather than parsed, and so carry no
// source position.

func MkType(l Level) Expr               { return &TypeExpr{Level: l} }
func MkVar(n Name, idx int) Expr        { return &Var{Name: n, Index: idx} }
func MkLambda(n Name, body Expr) Expr   { return &Lambda{Name: n, Body: body} }
func MkApp(fn, arg Expr) Expr           { return &App{Func: fn, Arg: arg} }
func MkPi(n Name, dom, cod Expr) Expr   { return &Pi{Name: n, Domain: dom, Codomain: cod} }

// Subst performs capture-avoiding substitution of repl for the de
// Bruijn index "level" in e (spec.md §4.1). Pushing under a binder
// increments the level being substituted, mirroring how the evaluator
// extends the environment by prepending the newest binding.
func Subst(e Expr, level int, repl Expr) Expr {
	switch x := e.(type) {
	case *TypeExpr:
		return x
	case *Var:
		if x.Index == level {
			return repl
		}
		return x
	case *Pi:
		return &Pi{exprBase: x.exprBase, Name: x.Name, Domain: Subst(x.Domain, level, repl), Codomain: Subst(x.Codomain, level+1, repl)}
	case *Lambda:
		return &Lambda{exprBase: x.exprBase, Name: x.Name, Body: Subst(x.Body, level+1, repl)}
	case *App:
		return &App{exprBase: x.exprBase, Func: Subst(x.Func, level, repl), Arg: Subst(x.Arg, level, repl)}
	case *Path:
		return &Path{exprBase: x.exprBase, Type: Subst(x.Type, level, repl), Left: Subst(x.Left, level, repl), Right: Subst(x.Right, level, repl)}
	case *PathLam:
		return &PathLam{exprBase: x.exprBase, DimName: x.DimName, Body: Subst(x.Body, level, repl)}
	case *PathApp:
		return &PathApp{exprBase: x.exprBase, Path: Subst(x.Path, level, repl), Dim: x.Dim}
	case *SmoothPath:
		return &SmoothPath{exprBase: x.exprBase, Order: x.Order, Type: Subst(x.Type, level, repl), Left: Subst(x.Left, level, repl), Right: Subst(x.Right, level, repl)}
	case *Comp:
		return &Comp{exprBase: x.exprBase, Type: Subst(x.Type, level, repl), Base: Subst(x.Base, level, repl), Faces: substFaces(x.Faces, level, repl)}
	case *Coe:
		return &Coe{exprBase: x.exprBase, TypeFam: Subst(x.TypeFam, level, repl), From: x.From, To: x.To, Base: Subst(x.Base, level, repl)}
	case *HComp:
		return &HComp{exprBase: x.exprBase, Type: Subst(x.Type, level, repl), Base: Subst(x.Base, level, repl), Faces: substFaces(x.Faces, level, repl)}
	case *Glue:
		equivs := make([]GlueEquiv, len(x.Equivalences))
		for i, eq := range x.Equivalences {
			equivs[i] = GlueEquiv{Face: eq.Face, Type: Subst(eq.Type, level, repl), Equivalence: Subst(eq.Equivalence, level, repl)}
		}
		return &Glue{exprBase: x.exprBase, Base: Subst(x.Base, level, repl), Equivalences: equivs}
	case *Diff:
		return &Diff{exprBase: x.exprBase, Order: x.Order, Of: Subst(x.Of, level, repl)}
	case *Integral:
		return &Integral{exprBase: x.exprBase, Of: Subst(x.Of, level, repl)}
	case *Taylor:
		return &Taylor{exprBase: x.exprBase, Order: x.Order, Of: Subst(x.Of, level, repl), At: Subst(x.At, level, repl)}
	default:
		return e
	}
}

func substFaces(faces []FaceEntry, level int, repl Expr) []FaceEntry {
	out := make([]FaceEntry, len(faces))
	for i, f := range faces {
		out[i] = FaceEntry{Face: f.Face, Value: Subst(f.Value, level, repl)}
	}
	return out
}
