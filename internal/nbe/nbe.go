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

// Package nbe implements Normalization by Evaluation's return leg
// (spec.md §4.3): read-back turns a semantic value into its unique
// normal-form expression, eta-expanding functions and paths along the
// way so that two values are convertible exactly when their read-backs
// are syntactically equal. Composed with package eval's forward leg,
// Normalize gives the kernel its definition of "the normal form of a
// term" used throughout checking and tactic application.
package nbe

import (
	"github.com/TensorHusker/ProveIt/internal/eval"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// Normalize evaluates e and reads the result back at type ty, giving
// the normal form of e relative to env/dimEnv.
func Normalize(e syntax.Expr, ty value.Value, env *value.Env, dimEnv syntax.DimEnv) syntax.Expr {
	v := eval.Eval(e, env, dimEnv)
	return ReadBack(v, ty, env.Len(), dimEnv.Len())
}

// ReadBack reifies v, known to have type ty, into its normal-form
// expression. depth and dimDepth count how many term and dimension
// binders are already open, so freshly introduced variables (for
// eta-expansion) never collide with an enclosing one.
//
// ReadBack is type-directed (spec.md §4.3): a value of Pi type always
// reads back as a Lambda (eta-long form) and a value of Path type
// always reads back as a PathLam, regardless of whether the value
// itself is already in that shape or is a neutral blocked on a free
// variable. Every other head falls through to the untyped structural
// case, ReadBackValue.
func ReadBack(v value.Value, ty value.Value, depth int, dimDepth int) syntax.Expr {
	switch t := ty.(type) {
	case *value.VPi:
		freshVar := &value.VNeutral{Ty: t.Domain, Neutral: &value.NVar{Name: t.Name, Level: depth}}
		result := value.Apply(v, freshVar)
		codomain := value.ApplyClosure(t.Closure, freshVar)
		body := ReadBack(result, codomain, depth+1, dimDepth)
		return &syntax.Lambda{Name: t.Name, Body: body}

	case *value.VPath:
		d := syntax.DimVar(dimDepth)
		result := value.ApplyDim(v, syntax.DVar(d))
		body := ReadBack(result, t.Type, depth, dimDepth+1)
		return &syntax.PathLam{DimName: syntax.NewName("i"), Body: body}

	default:
		return ReadBackValue(v, depth, dimDepth)
	}
}

// ReadBackValue reifies v structurally, without reference to an
// ambient type: used for universes, and for reading back the pieces of
// a neutral spine where no further eta-expansion is owed.
func ReadBackValue(v value.Value, depth int, dimDepth int) syntax.Expr {
	switch x := v.(type) {
	case *value.VType:
		return &syntax.TypeExpr{Level: x.Level}

	case *value.VPi:
		dom := ReadBackValue(x.Domain, depth, dimDepth)
		freshVar := &value.VNeutral{Ty: x.Domain, Neutral: &value.NVar{Name: x.Name, Level: depth}}
		cod := ReadBackValue(value.ApplyClosure(x.Closure, freshVar), depth+1, dimDepth)
		return &syntax.Pi{Name: x.Name, Domain: dom, Codomain: cod}

	case *value.VLam:
		freshVar := &value.VNeutral{Ty: nil, Neutral: &value.NVar{Name: x.Name, Level: depth}}
		body := ReadBackValue(value.ApplyClosure(x.Closure, freshVar), depth+1, dimDepth)
		return &syntax.Lambda{Name: x.Name, Body: body}

	case *value.VPath:
		ty := ReadBackValue(x.Type, depth, dimDepth)
		l := ReadBackValue(x.Left, depth, dimDepth)
		r := ReadBackValue(x.Right, depth, dimDepth)
		return &syntax.Path{Type: ty, Left: l, Right: r}

	case *value.VPathLam:
		d := syntax.DimVar(dimDepth)
		body := ReadBackValue(value.ApplyDimClosure(x.DimClosure, syntax.DVar(d)), depth, dimDepth+1)
		return &syntax.PathLam{DimName: x.DimName, Body: body}

	case *value.VSmoothPath:
		ty := ReadBackValue(x.Type, depth, dimDepth)
		l := ReadBackValue(x.Left, depth, dimDepth)
		r := ReadBackValue(x.Right, depth, dimDepth)
		return &syntax.SmoothPath{Order: x.Order, Type: ty, Left: l, Right: r}

	case *value.VNeutral:
		return readBackNeutral(x.Neutral, depth, dimDepth)

	default:
		panic("nbe: unhandled value variant (invariant violation)")
	}
}

// readBackNeutral reifies a stuck computation's spine, converting the
// de Bruijn *level* carried by each free variable into the de Bruijn
// *index* the surrounding expression needs (spec.md §4.2, §9).
func readBackNeutral(n value.Neutral, depth int, dimDepth int) syntax.Expr {
	switch x := n.(type) {
	case *value.NVar:
		return &syntax.Var{Name: x.Name, Index: depth - x.Level - 1}

	case *value.NApp:
		fn := readBackNeutral(x.Func, depth, dimDepth)
		arg := ReadBackValue(x.Arg, depth, dimDepth)
		return &syntax.App{Func: fn, Arg: arg}

	case *value.NPathApp:
		p := readBackNeutral(x.Path, depth, dimDepth)
		return &syntax.PathApp{Path: p, Dim: x.Dim}

	case *value.NComp:
		ty := ReadBackValue(x.Type, depth, dimDepth)
		base := readBackNeutral(x.Base, depth, dimDepth)
		faces := readBackFaces(x.Faces, depth, dimDepth)
		return &syntax.Comp{Type: ty, Base: base, Faces: faces}

	case *value.NCoe:
		fam := ReadBackValue(x.TypeFam, depth, dimDepth)
		base := readBackNeutral(x.Base, depth, dimDepth)
		return &syntax.Coe{TypeFam: fam, From: x.From, To: x.To, Base: base}

	default:
		panic("nbe: unhandled neutral variant (invariant violation)")
	}
}

func readBackFaces(faces []value.NeutralFaceEntry, depth int, dimDepth int) []syntax.FaceEntry {
	out := make([]syntax.FaceEntry, len(faces))
	for i, f := range faces {
		out[i] = syntax.FaceEntry{Face: f.Face, Value: ReadBackValue(f.Value, depth, dimDepth)}
	}
	return out
}
