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

// Package value defines the semantic values produced by evaluation
// (spec.md §3's Semantic value table): the weak-head normal forms that
// NbE works over, their closures, and the environments closures
// capture. Grounded on the closure/environment shape used throughout
// cuelang.org/go's internal/core/adt package (a captured environment
// plus an unevaluated body, evaluated lazily on application) and
// restated here for a Pi/Path calculus rather than a unification
// lattice.
package value

import (
	"fmt"

	"github.com/TensorHusker/ProveIt/internal/syntax"
)

// Value is a semantic value: the result of evaluating an Expr in an
// environment. Values are immutable once constructed; sharing an
// environment or a sub-value across multiple Values is always safe
// (spec.md §5, §9).
type Value interface {
	isValue()
	String() string
}

type valueBase struct{}

func (valueBase) isValue() {}

// VType is the universe value Type(level).
type VType struct {
	valueBase
	Level syntax.Level
}

func (v *VType) String() string { return fmt.Sprintf("Type%d", v.Level) }

// VPi is a dependent function type value. Closure produces the
// codomain type given a value for the bound variable.
type VPi struct {
	valueBase
	Name    syntax.Name
	Domain  Value
	Closure *Closure
}

func (v *VPi) String() string { return fmt.Sprintf("(%s : %s) -> <closure>", v.Name, v.Domain) }

// VLam is a function value.
type VLam struct {
	valueBase
	Name    syntax.Name
	Closure *Closure
}

func (v *VLam) String() string { return fmt.Sprintf("\\%s. <closure>", v.Name) }

// VPath is the cubical path type value between Left and Right in Type.
type VPath struct {
	valueBase
	Type  Value
	Left  Value
	Right Value
}

func (v *VPath) String() string { return fmt.Sprintf("Path %s %s %s", v.Type, v.Left, v.Right) }

// VPathLam is a path value: applying it at a dimension pushes that
// dimension into the closure's dimension environment.
type VPathLam struct {
	valueBase
	DimName  syntax.Name
	DimClosure *DimClosure
}

func (v *VPathLam) String() string { return fmt.Sprintf("<%s> <closure>", v.DimName) }

// VSmoothPath is a path value additionally carrying a differentiability
// order (spec.md §3).
type VSmoothPath struct {
	valueBase
	Order int
	Type  Value
	Left  Value
	Right Value
}

func (v *VSmoothPath) String() string {
	return fmt.Sprintf("SmoothPath[%d] %s %s %s", v.Order, v.Type, v.Left, v.Right)
}

// VNeutral is a value whose computation is blocked on a free variable:
// Ty records the neutral's type (needed by read-back and conv without
// re-inferring it) and Neutral the blocked spine.
type VNeutral struct {
	valueBase
	Ty      Value
	Neutral Neutral
}

func (v *VNeutral) String() string { return v.Neutral.String() }

// Neutral is the spine of a blocked computation (spec.md §3).
type Neutral interface {
	isNeutral()
	String() string
}

type neutralBase struct{}

func (neutralBase) isNeutral() {}

// NVar is a free variable, identified by the de Bruijn *level* at
// which it was introduced (stable across further binder nesting,
// unlike a de Bruijn index).
type NVar struct {
	neutralBase
	Name  syntax.Name
	Level int
}

func (n *NVar) String() string { return n.Name.String() }

// NApp is a stuck application.
type NApp struct {
	neutralBase
	Func Neutral
	Arg  Value
}

func (n *NApp) String() string { return fmt.Sprintf("(%s %s)", n.Func, n.Arg) }

// NPathApp is a stuck path application.
type NPathApp struct {
	neutralBase
	Path Neutral
	Dim  syntax.Dim
}

func (n *NPathApp) String() string { return fmt.Sprintf("(%s @ %s)", n.Path, n.Dim) }

// NComp is a stuck Kan composition: the faces did not reduce and the
// base is itself neutral.
type NComp struct {
	neutralBase
	Type  Value
	Faces []NeutralFaceEntry
	Dim   syntax.Dim
	Base  Neutral
}

func (n *NComp) String() string { return fmt.Sprintf("comp %s %s <faces> %s", n.Type, n.Base, n.Dim) }

// NCoe is a stuck coercion.
type NCoe struct {
	neutralBase
	TypeFam Value
	From    syntax.Dim
	To      syntax.Dim
	Base    Neutral
}

func (n *NCoe) String() string {
	return fmt.Sprintf("coe %s %s %s %s", n.TypeFam, n.From, n.To, n.Base)
}

// NeutralFaceEntry mirrors syntax.FaceEntry in the semantic domain: the
// face is already fully resolved syntax (faces never reduce further;
// only their values do), the value is itself a Value.
type NeutralFaceEntry struct {
	Face  syntax.Face
	Value Value
}
