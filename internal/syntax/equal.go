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

// ExprEqual reports whether two expressions are structurally identical
// up to source position (spec.md §4.3's normal forms are compared by
// shape, never by where they were parsed from). It is how package
// check's Conv/ConvType turn two NbE read-backs into a yes/no answer.
func ExprEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *TypeExpr:
		y, ok := b.(*TypeExpr)
		return ok && x.Level == y.Level

	case *Var:
		y, ok := b.(*Var)
		return ok && x.Index == y.Index

	case *Pi:
		y, ok := b.(*Pi)
		return ok && ExprEqual(x.Domain, y.Domain) && ExprEqual(x.Codomain, y.Codomain)

	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && ExprEqual(x.Body, y.Body)

	case *App:
		y, ok := b.(*App)
		return ok && ExprEqual(x.Func, y.Func) && ExprEqual(x.Arg, y.Arg)

	case *Path:
		y, ok := b.(*Path)
		return ok && ExprEqual(x.Type, y.Type) && ExprEqual(x.Left, y.Left) && ExprEqual(x.Right, y.Right)

	case *PathLam:
		y, ok := b.(*PathLam)
		return ok && ExprEqual(x.Body, y.Body)

	case *PathApp:
		y, ok := b.(*PathApp)
		return ok && ExprEqual(x.Path, y.Path) && x.Dim.Equal(y.Dim)

	case *SmoothPath:
		y, ok := b.(*SmoothPath)
		return ok && x.Order == y.Order && ExprEqual(x.Type, y.Type) && ExprEqual(x.Left, y.Left) && ExprEqual(x.Right, y.Right)

	case *Comp:
		y, ok := b.(*Comp)
		return ok && ExprEqual(x.Type, y.Type) && ExprEqual(x.Base, y.Base) && faceSystemEqual(x.Faces, y.Faces)

	case *Coe:
		y, ok := b.(*Coe)
		return ok && ExprEqual(x.TypeFam, y.TypeFam) && x.From.Equal(y.From) && x.To.Equal(y.To) && ExprEqual(x.Base, y.Base)

	case *HComp:
		y, ok := b.(*HComp)
		return ok && ExprEqual(x.Type, y.Type) && ExprEqual(x.Base, y.Base) && faceSystemEqual(x.Faces, y.Faces)

	case *Glue:
		y, ok := b.(*Glue)
		if !ok || len(x.Equivalences) != len(y.Equivalences) || !ExprEqual(x.Base, y.Base) {
			return false
		}
		for i := range x.Equivalences {
			if !faceEqual(x.Equivalences[i].Face, y.Equivalences[i].Face) ||
				!ExprEqual(x.Equivalences[i].Type, y.Equivalences[i].Type) ||
				!ExprEqual(x.Equivalences[i].Equivalence, y.Equivalences[i].Equivalence) {
				return false
			}
		}
		return true

	case *Diff:
		y, ok := b.(*Diff)
		return ok && x.Order == y.Order && ExprEqual(x.Of, y.Of)

	case *Integral:
		y, ok := b.(*Integral)
		return ok && ExprEqual(x.Of, y.Of)

	case *Taylor:
		y, ok := b.(*Taylor)
		return ok && x.Order == y.Order && ExprEqual(x.Of, y.Of) && ExprEqual(x.At, y.At)

	default:
		return false
	}
}

func faceSystemEqual(a, b []FaceEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !faceEqual(a[i].Face, b[i].Face) || !ExprEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func faceEqual(a, b Face) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case FaceTrue:
		return true
	case FaceEq:
		return a.Var == b.Var && a.Val == b.Val
	default:
		return faceEqual(*a.L, *b.L) && faceEqual(*a.R, *b.R)
	}
}
