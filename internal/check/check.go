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

package check

import (
	"github.com/TensorHusker/ProveIt/internal/errors"
	"github.com/TensorHusker/ProveIt/internal/eval"
	"github.com/TensorHusker/ProveIt/internal/nbe"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// Infer synthesizes the type of e under ctx (spec.md §4.4). Binders
// whose type cannot be synthesized (Lambda, PathLam) report
// CannotInfer: the caller must route them through Check instead with
// an expected type in hand.
func Infer(ctx *Ctx, e syntax.Expr) (value.Value, error) {
	switch x := e.(type) {
	case *syntax.TypeExpr:
		return &value.VType{Level: x.Level.Succ()}, nil

	case *syntax.Var:
		ty, _, ok := ctx.TypeOf(x.Index)
		if !ok {
			return nil, errors.WithPos(errors.UnboundVariable(x.Name.String()), x.Pos())
		}
		return ty, nil

	case *syntax.Pi:
		domTy, err := Infer(ctx, x.Domain)
		if err != nil {
			return nil, err
		}
		domLevel, ok := domTy.(*value.VType)
		if !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a universe", domTy.String()), x.Domain.Pos())
		}
		domVal := eval.Eval(x.Domain, ctx.Env, ctx.DimEnv)
		inner := ctx.ExtendVar(x.Name, domVal, ctx.FreshVar(x.Name, domVal))
		codTy, err := Infer(inner, x.Codomain)
		if err != nil {
			return nil, err
		}
		codLevel, ok := codTy.(*value.VType)
		if !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a universe", codTy.String()), x.Codomain.Pos())
		}
		return &value.VType{Level: syntax.Max(domLevel.Level, codLevel.Level)}, nil

	case *syntax.Lambda:
		return nil, errors.WithPos(errors.CannotInfer("a lambda"), x.Pos())

	case *syntax.App:
		fnTy, err := Infer(ctx, x.Func)
		if err != nil {
			return nil, err
		}
		pi, ok := fnTy.(*value.VPi)
		if !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a function type", fnTy.String()), x.Func.Pos())
		}
		if err := Check(ctx, x.Arg, pi.Domain); err != nil {
			return nil, err
		}
		argVal := eval.Eval(x.Arg, ctx.Env, ctx.DimEnv)
		return value.ApplyClosure(pi.Closure, argVal), nil

	case *syntax.Path:
		tyLevel, err := Infer(ctx, x.Type)
		if err != nil {
			return nil, err
		}
		lvl, ok := tyLevel.(*value.VType)
		if !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a universe", tyLevel.String()), x.Type.Pos())
		}
		ty := eval.Eval(x.Type, ctx.Env, ctx.DimEnv)
		if err := Check(ctx, x.Left, ty); err != nil {
			return nil, err
		}
		if err := Check(ctx, x.Right, ty); err != nil {
			return nil, err
		}
		return lvl, nil

	case *syntax.PathLam:
		return nil, errors.WithPos(errors.CannotInfer("a path lambda"), x.Pos())

	case *syntax.PathApp:
		pathTy, err := Infer(ctx, x.Path)
		if err != nil {
			return nil, err
		}
		p, ok := pathTy.(*value.VPath)
		if !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a Path type", pathTy.String()), x.Path.Pos())
		}
		return p.Type, nil

	case *syntax.SmoothPath:
		tyLevel, err := Infer(ctx, x.Type)
		if err != nil {
			return nil, err
		}
		lvl, ok := tyLevel.(*value.VType)
		if !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a universe", tyLevel.String()), x.Type.Pos())
		}
		ty := eval.Eval(x.Type, ctx.Env, ctx.DimEnv)
		if err := Check(ctx, x.Left, ty); err != nil {
			return nil, err
		}
		if err := Check(ctx, x.Right, ty); err != nil {
			return nil, err
		}
		if x.Order < 0 {
			return nil, errors.WithPos(errors.SmoothnessViolation(0, x.Order), x.Pos())
		}
		return lvl, nil

	case *syntax.Comp:
		tyLevel, err := Infer(ctx, x.Type)
		if err != nil {
			return nil, err
		}
		if _, ok := tyLevel.(*value.VType); !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a universe", tyLevel.String()), x.Type.Pos())
		}
		ty := eval.Eval(x.Type, ctx.Env, ctx.DimEnv)
		if err := Check(ctx, x.Base, ty); err != nil {
			return nil, err
		}
		if err := checkFaces(ctx, x.Faces, ty); err != nil {
			return nil, err
		}
		return ty, nil

	case *syntax.HComp:
		tyLevel, err := Infer(ctx, x.Type)
		if err != nil {
			return nil, err
		}
		if _, ok := tyLevel.(*value.VType); !ok {
			return nil, errors.WithPos(errors.TypeMismatch("a universe", tyLevel.String()), x.Type.Pos())
		}
		ty := eval.Eval(x.Type, ctx.Env, ctx.DimEnv)
		if err := Check(ctx, x.Base, ty); err != nil {
			return nil, err
		}
		if err := checkFaces(ctx, x.Faces, ty); err != nil {
			return nil, err
		}
		return ty, nil

	case *syntax.Coe:
		famTy := eval.Eval(x.TypeFam, ctx.Env, ctx.DimEnv)
		fromTy := value.ApplyDim(famTy, ctx.DimEnv.Lookup(x.From))
		if err := Check(ctx, x.Base, fromTy); err != nil {
			return nil, err
		}
		return value.ApplyDim(famTy, ctx.DimEnv.Lookup(x.To)), nil

	case *syntax.Glue:
		return Infer(ctx, x.Base)

	case *syntax.Diff:
		return Infer(ctx, x.Of)

	case *syntax.Integral:
		return Infer(ctx, x.Of)

	case *syntax.Taylor:
		return Infer(ctx, x.Of)

	default:
		return nil, errors.WithPos(errors.CannotInfer("this expression"), e.Pos())
	}
}

// Check verifies that e has type ty under ctx (spec.md §4.4). Binders
// are checked directly against the expected type's matching head;
// everything else falls back to inferring e's type and checking it is
// convertible with ty.
func Check(ctx *Ctx, e syntax.Expr, ty value.Value) error {
	switch x := e.(type) {
	case *syntax.Lambda:
		pi, ok := ty.(*value.VPi)
		if !ok {
			return errors.WithPos(errors.TypeMismatch("a function type", ty.String()), x.Pos())
		}
		fresh := ctx.FreshVar(x.Name, pi.Domain)
		inner := ctx.ExtendVar(x.Name, pi.Domain, fresh)
		codomain := value.ApplyClosure(pi.Closure, fresh)
		return Check(inner, x.Body, codomain)

	case *syntax.PathLam:
		p, ok := ty.(*value.VPath)
		if !ok {
			return errors.WithPos(errors.TypeMismatch("a Path type", ty.String()), x.Pos())
		}
		inner, d := ctx.ExtendDim()
		if err := Check(inner, x.Body, p.Type); err != nil {
			return err
		}
		env := ctx.Env
		atZero := eval.Eval(x.Body, env, ctx.DimEnv.Extend(d, syntax.DZero()))
		atOne := eval.Eval(x.Body, env, ctx.DimEnv.Extend(d, syntax.DOne()))
		if !Conv(ctx, atZero, p.Left, p.Type) {
			return errors.WithPos(errors.TypeMismatch(p.Left.String(), atZero.String()), x.Pos())
		}
		if !Conv(ctx, atOne, p.Right, p.Type) {
			return errors.WithPos(errors.TypeMismatch(p.Right.String(), atOne.String()), x.Pos())
		}
		return nil

	default:
		inferred, err := Infer(ctx, e)
		if err != nil {
			return err
		}
		if !ConvType(ctx, inferred, ty) {
			return errors.WithPos(errors.TypeMismatch(ty.String(), inferred.String()), e.Pos())
		}
		return nil
	}
}

func checkFaces(ctx *Ctx, faces []syntax.FaceEntry, ty value.Value) error {
	for _, f := range faces {
		if err := Check(ctx, f.Value, ty); err != nil {
			return err
		}
	}
	return nil
}

// Conv reports whether a and b, both of type ty, are definitionally
// equal: they are convertible exactly when their type-directed
// read-backs (package nbe) agree syntactically (spec.md §4.3, §4.4).
func Conv(ctx *Ctx, a, b value.Value, ty value.Value) bool {
	na := nbe.ReadBack(a, ty, ctx.Depth(), ctx.DimDepth())
	nb := nbe.ReadBack(b, ty, ctx.Depth(), ctx.DimDepth())
	return syntax.ExprEqual(na, nb)
}

// ConvType reports whether two type values are the same type, by
// comparing their untyped (structural) read-backs.
func ConvType(ctx *Ctx, a, b value.Value) bool {
	na := nbe.ReadBackValue(a, ctx.Depth(), ctx.DimDepth())
	nb := nbe.ReadBackValue(b, ctx.Depth(), ctx.DimDepth())
	return syntax.ExprEqual(na, nb)
}
