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

// Package eval implements Normalization by Evaluation's forward
// direction (spec.md §4.2): expression plus environment to the unique
// weak-head-normal semantic value. It is environment-passing and lazy
// on unapplied bodies, call-by-value on applied arguments, mirroring
// the dispatch structure of cuelang.org/go's adt evaluator (evaluate
// methods that switch on the expression's head and either reduce
// directly or wrap the result as a neutral).
//
// Comp, Coe and HComp are evaluated by package kan, which this package
// imports; kan itself works on values only (through package value's
// Apply/ApplyDim), so Eval reaches it through kan's exported entry points.
package eval

import (
	"github.com/TensorHusker/ProveIt/internal/kan"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

func init() {
	value.EvalBody = Eval
}

// Eval reduces e to its value under the term environment env and
// dimension environment dimEnv. An out-of-range de Bruijn index is a
// kernel invariant violation (spec.md §4.2) and panics rather than
// returning an error -- callers must only evaluate terms that have
// already passed the type checker.
func Eval(e syntax.Expr, env *value.Env, dimEnv syntax.DimEnv) value.Value {
	switch x := e.(type) {
	case *syntax.TypeExpr:
		return &value.VType{Level: x.Level}

	case *syntax.Var:
		return env.Lookup(x.Index)

	case *syntax.Pi:
		return &value.VPi{
			Name:   x.Name,
			Domain: Eval(x.Domain, env, dimEnv),
			Closure: &value.Closure{Env: env, Body: x.Codomain},
		}

	case *syntax.Lambda:
		return &value.VLam{Name: x.Name, Closure: &value.Closure{Env: env, Body: x.Body}}

	case *syntax.App:
		fn := Eval(x.Func, env, dimEnv)
		arg := Eval(x.Arg, env, dimEnv)
		return value.Apply(fn, arg)

	case *syntax.Path:
		return &value.VPath{
			Type:  Eval(x.Type, env, dimEnv),
			Left:  Eval(x.Left, env, dimEnv),
			Right: Eval(x.Right, env, dimEnv),
		}

	case *syntax.PathLam:
		return &value.VPathLam{
			DimName:    x.DimName,
			DimClosure: &value.DimClosure{Env: env, DimEnv: dimEnv, Body: x.Body},
		}

	case *syntax.PathApp:
		p := Eval(x.Path, env, dimEnv)
		d := dimEnv.Lookup(x.Dim)
		return value.ApplyDim(p, d)

	case *syntax.SmoothPath:
		return &value.VSmoothPath{
			Order: x.Order,
			Type:  Eval(x.Type, env, dimEnv),
			Left:  Eval(x.Left, env, dimEnv),
			Right: Eval(x.Right, env, dimEnv),
		}

	case *syntax.Comp:
		ty := Eval(x.Type, env, dimEnv)
		base := Eval(x.Base, env, dimEnv)
		faces := evalFaces(x.Faces, env, dimEnv)
		return kan.Comp(ty, base, faces, syntax.DOne(), dimEnv)

	case *syntax.Coe:
		tyFam := Eval(x.TypeFam, env, dimEnv)
		from := dimEnv.Lookup(x.From)
		to := dimEnv.Lookup(x.To)
		base := Eval(x.Base, env, dimEnv)
		return kan.Coe(tyFam, from, to, base, dimEnv)

	case *syntax.HComp:
		ty := Eval(x.Type, env, dimEnv)
		base := Eval(x.Base, env, dimEnv)
		faces := evalFaces(x.Faces, env, dimEnv)
		return kan.HComp(ty, base, faces, dimEnv)

	case *syntax.Glue:
		// Glue is carried but not reduced: the kernel does not attempt
		// univalence-specific computation (spec.md §1). It evaluates to
		// a neutral anchored on its base type so conversion can still
		// compare two Glue values structurally where needed.
		base := Eval(x.Base, env, dimEnv)
		return &value.VNeutral{Ty: base, Neutral: &value.NVar{Name: syntax.NewName("glue"), Level: -1}}

	case *syntax.Diff, *syntax.Integral, *syntax.Taylor:
		// Reserved smooth operators reduce as neutrals until their
		// calculus is specified (spec.md §4.2, §9).
		return reduceSmoothAsNeutral(x, env, dimEnv)

	default:
		panic("eval: unhandled expression variant (invariant violation)")
	}
}

// Apply, ApplyClosure, ApplyDim and ApplyDimClosure are thin
// re-exports of the value package's application helpers: value.Closure
// needs to be appliable from package kan too, which cannot import
// eval, so the helpers are implemented once on the value side (reaching
// back into Eval through value.EvalBody, registered by this package's
// init above) and exposed here under their spec.md §4.2 names.

func Apply(fn value.Value, arg value.Value) value.Value { return value.Apply(fn, arg) }

func ApplyDim(p value.Value, d syntax.Dim) value.Value { return value.ApplyDim(p, d) }

func ApplyClosure(c *value.Closure, arg value.Value) value.Value { return value.ApplyClosure(c, arg) }

func ApplyDimClosure(c *value.DimClosure, d syntax.Dim) value.Value {
	return value.ApplyDimClosure(c, d)
}

// evalFaces evaluates every entry of a face system to a semantic
// value, leaving the face formula itself untouched (faces are already
// fully resolved syntax; only their guarded value reduces).
func evalFaces(faces []syntax.FaceEntry, env *value.Env, dimEnv syntax.DimEnv) []value.NeutralFaceEntry {
	out := make([]value.NeutralFaceEntry, len(faces))
	for i, f := range faces {
		out[i] = value.NeutralFaceEntry{Face: f.Face, Value: Eval(f.Value, env, dimEnv)}
	}
	return out
}

func reduceSmoothAsNeutral(e syntax.Expr, env *value.Env, dimEnv syntax.DimEnv) value.Value {
	var of syntax.Expr
	switch x := e.(type) {
	case *syntax.Diff:
		of = x.Of
	case *syntax.Integral:
		of = x.Of
	case *syntax.Taylor:
		of = x.Of
	}
	inner := Eval(of, env, dimEnv)
	return &value.VNeutral{Ty: inner, Neutral: &value.NVar{Name: syntax.NewName("smooth-op"), Level: -1}}
}
