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

// Package check implements the bidirectional type checker (spec.md
// §4.4): mutually recursive Infer/Check judgments over Ctx, and Conv,
// the definitional equality NbE gives for free once a term has a
// normal form.
//
// Ctx bundles everything a judgment needs to thread through a
// derivation -- bound variable types, the evaluation environment, the
// dimension environment, and an error list -- into a single
// persistent value, the way original_source's evaluation context does
// and the way cuelang.org/go's adt.OpContext bundles unification state
// (SPEC_FULL.md §5.1).
package check

import (
	"github.com/TensorHusker/ProveIt/internal/errors"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// binding is one entry of a Ctx's variable list.
type binding struct {
	name Name
	ty   value.Value
}

// Name is re-exported so callers of this package never need to import
// internal/syntax purely to name a variable.
type Name = syntax.Name

// Ctx is the persistent typing context a derivation is checked
// against: bound variable types and names (indexed the same way
// value.Env indexes values, so de Bruijn indices agree between the two
// worlds), the value environment and dimension environment evaluation
// needs to normalize as it goes, and an error list (Errs) that derived
// contexts share. The judgments in this package do not add to Errs:
// Infer and Check return the first error they meet.
type Ctx struct {
	bindings *bindingList
	Env      *value.Env
	DimEnv   syntax.DimEnv
	Errs     *errors.List
}

type bindingList struct {
	head binding
	tail *bindingList
	size int
}

// NewCtx returns the empty typing context.
func NewCtx() *Ctx {
	return &Ctx{Env: value.NewEnv(), DimEnv: syntax.NewDimEnv(), Errs: &errors.List{}}
}

// Depth reports how many term variables are bound, equal to both
// len(ctx.bindings) and ctx.Env.Len().
func (c *Ctx) Depth() int {
	if c.bindings == nil {
		return 0
	}
	return c.bindings.size
}

// DimDepth reports how many dimension variables are bound.
func (c *Ctx) DimDepth() int { return c.DimEnv.Len() }

// ExtendVar returns a new context with a variable of type ty bound
// (and, for evaluating terms under the binder, v as its value --
// ordinarily a fresh neutral, value.NVar at the new depth).
func (c *Ctx) ExtendVar(name Name, ty value.Value, v value.Value) *Ctx {
	size := 1
	if c.bindings != nil {
		size = c.bindings.size + 1
	}
	return &Ctx{
		bindings: &bindingList{head: binding{name: name, ty: ty}, tail: c.bindings, size: size},
		Env:      c.Env.Extend(v),
		DimEnv:   c.DimEnv,
		Errs:     c.Errs,
	}
}

// ExtendDim returns a new context with a fresh dimension variable
// bound, for checking under a PathLam/Comp/Coe binder.
func (c *Ctx) ExtendDim() (*Ctx, syntax.DimVar) {
	d := syntax.DimVar(c.DimEnv.Len())
	return &Ctx{
		bindings: c.bindings,
		Env:      c.Env,
		DimEnv:   c.DimEnv.Extend(d, syntax.DVar(d)),
		Errs:     c.Errs,
	}, d
}

// TypeOf returns the type bound at de Bruijn index idx, and the
// display name it was bound under.
func (c *Ctx) TypeOf(idx int) (value.Value, Name, bool) {
	cur := c.bindings
	for i := 0; i < idx; i++ {
		if cur == nil {
			return nil, Name{}, false
		}
		cur = cur.tail
	}
	if cur == nil {
		return nil, Name{}, false
	}
	return cur.head.ty, cur.head.name, true
}

// FreshVar builds the neutral value standing for a not-yet-substituted
// variable of type ty at the context's current depth, used both to
// open a Pi's codomain closure during checking and to seed eta
// expansion in package nbe.
func (c *Ctx) FreshVar(name Name, ty value.Value) value.Value {
	return &value.VNeutral{Ty: ty, Neutral: &value.NVar{Name: name, Level: c.Depth()}}
}
