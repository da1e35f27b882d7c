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

// Package kan implements the Kan operations (spec.md §4.5): comp, coe
// and hcomp, the machinery that makes the cubical Path type actually
// compose and transport along equalities. Each operation case-splits on
// the head of the type it is operating over and either reduces
// directly (faces already satisfied, or a type with no congruence rule
// of its own) or produces a congruence: a new composite value whose
// later applications recurse into further Kan operations.
//
// Grounded on cuelang.org/go's internal/core/adt evaluate-by-head
// dispatch style (a type switch over Value variants that either
// computes or builds a stuck/derived result) but specialized to the
// CCHM-style comp/coe formulas spec.md §4.5 calls for rather than
// unification. Congruences that have no corresponding source
// expression (the pointwise composition under a Pi, the family
// projections under a coe) are represented with value.Closure's Native
// field so this package never has to synthesize syntax.Expr terms
// purely to describe a computation.
package kan

import (
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// Comp computes the composition of base along the face system faces in
// the (constant, non-dimension-varying) type ty, reaching target
// (spec.md §4.5). Faces are checked in order; the first one the
// ambient dimension environment satisfies wins, matching spec.md §8's
// determinism property for well-formed face systems (at most one
// should ever be satisfiable at once for a given point).
func Comp(ty value.Value, base value.Value, faces []value.NeutralFaceEntry, target syntax.Dim, dimEnv syntax.DimEnv) value.Value {
	if len(faces) == 0 && target.Kind == syntax.DimZero {
		return base
	}
	for _, f := range faces {
		if syntax.Satisfied(f.Face, dimEnv) {
			return f.Value
		}
	}
	switch t := ty.(type) {
	case *value.VType:
		return base

	case *value.VPi:
		return compPi(t, base, faces, target, dimEnv)

	case *value.VPath:
		return compPath(t, base, faces, target, dimEnv)

	case *value.VNeutral:
		return neutralComp(ty, base, faces, target)

	default:
		// No congruence rule at this head: the composition is stuck on
		// the type itself rather than on the base (spec.md §4.5's "Kan
		// operations may get stuck on neutral types").
		return neutralComp(ty, base, faces, target)
	}
}

// compPi is the Pi congruence rule for comp: composing a function
// pointwise composes its codomain at every argument.
func compPi(pi *value.VPi, base value.Value, faces []value.NeutralFaceEntry, target syntax.Dim, dimEnv syntax.DimEnv) value.Value {
	return &value.VLam{
		Name: pi.Name,
		Closure: &value.Closure{Native: func(x value.Value) value.Value {
			codomain := value.ApplyClosure(pi.Closure, x)
			bx := value.Apply(base, x)
			fxs := make([]value.NeutralFaceEntry, len(faces))
			for i, f := range faces {
				fxs[i] = value.NeutralFaceEntry{Face: f.Face, Value: value.Apply(f.Value, x)}
			}
			return Comp(codomain, bx, fxs, target, dimEnv)
		}},
	}
}

// compPath is the Path congruence rule for comp: composing a path
// pointwise composes its underlying type at every dimension, pinning
// the two endpoints of the result to the original path's endpoints.
func compPath(p *value.VPath, base value.Value, faces []value.NeutralFaceEntry, target syntax.Dim, dimEnv syntax.DimEnv) value.Value {
	return &value.VPathLam{
		DimName: syntax.NewName("j"),
		DimClosure: &value.DimClosure{Native: func(j syntax.Dim) value.Value {
			baseAtJ := value.ApplyDim(base, j)
			fjs := make([]value.NeutralFaceEntry, 0, len(faces)+2)
			for _, f := range faces {
				fjs = append(fjs, value.NeutralFaceEntry{Face: f.Face, Value: value.ApplyDim(f.Value, j)})
			}
			if j.Kind == syntax.DimVariable {
				fjs = append(fjs, value.NeutralFaceEntry{Face: syntax.Eq(j.Var, false), Value: p.Left})
				fjs = append(fjs, value.NeutralFaceEntry{Face: syntax.Eq(j.Var, true), Value: p.Right})
			}
			return Comp(p.Type, baseAtJ, fjs, target, dimEnv)
		}},
	}
}

// HComp is homogeneous composition: comp specialized to a constant
// type and target dimension 1 (spec.md §4.5). It must be
// definitionally equal to that specialization, which this
// implementation achieves simply by calling Comp with target 1 --
// there is no separate code path to keep in sync.
func HComp(ty value.Value, base value.Value, faces []value.NeutralFaceEntry, dimEnv syntax.DimEnv) value.Value {
	return Comp(ty, base, faces, syntax.DOne(), dimEnv)
}

// Coe transports base from dimension from to dimension to along the
// dimension-indexed type family tyFam (spec.md §4.5). tyFam is
// evaluated as a dimension closure (a VPathLam, or a neutral wrapping
// one): applying it at a concrete dimension yields the type at that
// point of the interval.
func Coe(tyFam value.Value, from, to syntax.Dim, base value.Value, dimEnv syntax.DimEnv) value.Value {
	if from.Equal(to) {
		return base
	}
	fromTy := value.ApplyDim(tyFam, from)
	switch t := fromTy.(type) {
	case *value.VType:
		return base

	case *value.VPi:
		return coePi(tyFam, t, from, to, base, dimEnv)

	case *value.VPath:
		return coePath(tyFam, from, to, base, dimEnv)

	default:
		neutralBase, ok := base.(*value.VNeutral)
		if !ok {
			// The family reduced to something with no congruence rule but
			// the argument itself is not neutral: this can only happen for
			// a malformed (ill-typed) family, which the checker should
			// have rejected before evaluation ever sees it.
			panic("kan: coe family has no congruence rule for a non-neutral base (invariant violation)")
		}
		return &value.VNeutral{
			Ty: value.ApplyDim(tyFam, to),
			Neutral: &value.NCoe{TypeFam: tyFam, From: from, To: to, Base: neutralBase.Neutral},
		}
	}
}

// coePi is the Pi congruence rule for coe (CCHM-style: coerce the
// argument backward along the domain family, then coerce the
// resulting application forward along the codomain family).
func coePi(tyFam value.Value, fromPi *value.VPi, from, to syntax.Dim, base value.Value, dimEnv syntax.DimEnv) value.Value {
	domFam := dimFamily(func(i syntax.Dim) value.Value {
		pi, ok := value.ApplyDim(tyFam, i).(*value.VPi)
		if !ok {
			panic("kan: coe family does not yield a Pi type at every dimension (invariant violation)")
		}
		return pi.Domain
	})
	return &value.VLam{
		Name: fromPi.Name,
		Closure: &value.Closure{Native: func(xPrime value.Value) value.Value {
			xAtFrom := Coe(domFam, to, from, xPrime, dimEnv)
			bAtX := value.Apply(base, xAtFrom)
			codFam := dimFamily(func(i syntax.Dim) value.Value {
				pi, ok := value.ApplyDim(tyFam, i).(*value.VPi)
				if !ok {
					panic("kan: coe family does not yield a Pi type at every dimension (invariant violation)")
				}
				xi := Coe(domFam, to, i, xPrime, dimEnv)
				return value.ApplyClosure(pi.Closure, xi)
			})
			return Coe(codFam, from, to, bAtX, dimEnv)
		}},
	}
}

// coePath is the Path congruence rule for coe: a path at dimension
// from becomes, at every point j along it, a value transported
// pointwise along the family's underlying type. This treats the two
// endpoints as moving with the family rather than pinning them via an
// auxiliary square filler -- a deliberate simplification.
func coePath(tyFam value.Value, from, to syntax.Dim, base value.Value, dimEnv syntax.DimEnv) value.Value {
	underlyingFam := dimFamily(func(i syntax.Dim) value.Value {
		p, ok := value.ApplyDim(tyFam, i).(*value.VPath)
		if !ok {
			panic("kan: coe family does not yield a Path type at every dimension (invariant violation)")
		}
		return p.Type
	})
	return &value.VPathLam{
		DimName: syntax.NewName("j"),
		DimClosure: &value.DimClosure{Native: func(j syntax.Dim) value.Value {
			baseAtJ := value.ApplyDim(base, j)
			return Coe(underlyingFam, from, to, baseAtJ, dimEnv)
		}},
	}
}

// dimFamily wraps a plain Go function as the dimension-indexed type
// family Coe's congruence rules need to build on the fly: a "line of
// types" with no corresponding source PathLam expression.
func dimFamily(f func(syntax.Dim) value.Value) value.Value {
	return &value.VPathLam{DimName: syntax.NewName("i"), DimClosure: &value.DimClosure{Native: f}}
}

func neutralComp(ty value.Value, base value.Value, faces []value.NeutralFaceEntry, target syntax.Dim) value.Value {
	nb, ok := base.(*value.VNeutral)
	if !ok {
		panic("kan: comp has no congruence rule for a non-neutral base at a neutral type (invariant violation)")
	}
	return &value.VNeutral{Ty: ty, Neutral: &value.NComp{Type: ty, Faces: faces, Dim: target, Base: nb.Neutral}}
}
