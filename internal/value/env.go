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

package value

import "github.com/TensorHusker/ProveIt/internal/syntax"

// Env is the value environment: an ordered sequence of values indexed
// by de Bruijn index, 0 being the most recently bound (spec.md §3).
// Env is a persistent singly-linked list so that extending it never
// invalidates a reference an earlier caller is still holding (spec.md
// §5's "Shared resources": the type context is a persistent structure
// with structural sharing).
type Env struct {
	head Value
	tail *Env
	size int
}

// NewEnv returns the empty environment.
func NewEnv() *Env { return nil }

// Extend returns a new environment with v prepended, leaving e
// (and anything built on top of it) untouched.
func (e *Env) Extend(v Value) *Env {
	size := 1
	if e != nil {
		size = e.size + 1
	}
	return &Env{head: v, tail: e, size: size}
}

// Len reports how many bindings are in scope.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return e.size
}

// Lookup returns the value bound at de Bruijn index idx (0 = most
// recent). A lookup past the end of the environment is a kernel bug,
// not a user error (spec.md §4.2): the caller is responsible for
// having type-checked the term first.
func (e *Env) Lookup(idx int) Value {
	cur := e
	for i := 0; i < idx; i++ {
		if cur == nil {
			panic("value: de Bruijn index out of range (invariant violation)")
		}
		cur = cur.tail
	}
	if cur == nil {
		panic("value: de Bruijn index out of range (invariant violation)")
	}
	return cur.head
}

// Closure is a captured value environment paired with an unevaluated
// body (spec.md §3): applying it appends the argument to the
// environment and evaluates the body.
//
// A closure built from source always carries Body/Env and is resolved
// through EvalBody (below). The Kan operations (package kan) also need
// to hand back closures that have no corresponding source expression at
// all -- e.g. the pointwise composition under a Pi congruence rule --
// so a closure may instead carry Native, a plain Go function. This
// mirrors the dependency-breaking role cuelang.org/go's
// adt.OpContext.Unifier interface field plays: package value cannot
// import package eval (eval already imports value), so eval registers
// itself into EvalBody once at init time instead.
type Closure struct {
	Env    *Env
	Body   syntax.Expr
	Native func(Value) Value
}

// DimClosure is the dimension-world analogue of Closure: applying it
// at a dimension pushes that dimension into the captured dimension
// environment rather than the term environment (spec.md §4.1, §9).
type DimClosure struct {
	Env    *Env
	DimEnv syntax.DimEnv
	Body   syntax.Expr
	Native func(syntax.Dim) Value
}

// EvalBody evaluates a source-expression closure body. It is set by
// package eval's init function; every other package that needs to
// apply a Closure or DimClosure goes through ApplyClosure /
// ApplyDimClosure below rather than calling EvalBody directly.
var EvalBody func(body syntax.Expr, env *Env, dimEnv syntax.DimEnv) Value

// ApplyClosure evaluates a closure's body with arg prepended to its
// captured environment (or invokes its native function, if any).
func ApplyClosure(c *Closure, arg Value) Value {
	if c.Native != nil {
		return c.Native(arg)
	}
	return EvalBody(c.Body, c.Env.Extend(arg), syntax.NewDimEnv())
}

// ApplyDimClosure evaluates a dimension closure's body with its
// dimension variable bound to d (or invokes its native function).
func ApplyDimClosure(c *DimClosure, d syntax.Dim) Value {
	if c.Native != nil {
		return c.Native(d)
	}
	return EvalBody(c.Body, c.Env, bindFreshDimVar(c.DimEnv, d))
}

// bindFreshDimVar assigns the next unused dimension variable id to d.
func bindFreshDimVar(dimEnv syntax.DimEnv, d syntax.Dim) syntax.DimEnv {
	return dimEnv.Extend(syntax.DimVar(dimEnv.Len()), d)
}

// Apply applies a function value to an argument (spec.md §4.2's App
// rule): VLam dispatches to its closure; a neutral is wrapped as a
// stuck NApp, preserving the codomain type via the Pi closure.
func Apply(fn Value, arg Value) Value {
	switch f := fn.(type) {
	case *VLam:
		return ApplyClosure(f.Closure, arg)
	case *VNeutral:
		pi, ok := f.Ty.(*VPi)
		if !ok {
			panic("value: applying a neutral whose type is not a Pi (invariant violation)")
		}
		codomain := ApplyClosure(pi.Closure, arg)
		return &VNeutral{Ty: codomain, Neutral: &NApp{Func: f.Neutral, Arg: arg}}
	default:
		panic("value: applying a non-function value (invariant violation)")
	}
}

// ApplyDim applies a path (or dimension-indexed type family) value at
// a dimension (spec.md §4.2's PathApp rule).
func ApplyDim(p Value, d syntax.Dim) Value {
	switch pv := p.(type) {
	case *VPathLam:
		return ApplyDimClosure(pv.DimClosure, d)
	case *VNeutral:
		return &VNeutral{Ty: pv.Ty, Neutral: &NPathApp{Path: pv.Neutral, Dim: d}}
	default:
		panic("value: path-applying a non-path value (invariant violation)")
	}
}
