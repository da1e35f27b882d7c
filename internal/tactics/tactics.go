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

// Package tactics implements the five proof tactics spec.md §4.8
// exposes to the REPL and to proof search: intro, exact, apply,
// assumption and refl. Each returns a Result: Success carries the
// subgoals left to discharge and a ProofBuilder describing how to
// combine their eventual proofs into a proof of the original goal;
// Failure carries a human-readable reason and leaves the proof state
// untouched, mirroring original_source's tactics module (a tactic
// either makes verifiable progress or reports exactly why it couldn't,
// never partial progress).
package tactics

import (
	"fmt"

	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/nbe"
	"github.com/TensorHusker/ProveIt/internal/proofstate"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// ProofBuilder reconstructs a proof term for a goal from the proofs of
// the subgoals a tactic produced, in order.
type ProofBuilder interface {
	Build(subproofs []syntax.Expr) syntax.Expr
}

// IdentityBuilder is used by tactics that close a goal outright
// (exact, assumption, refl): there are no subgoals, and the proof is
// simply the term the tactic already verified.
type IdentityBuilder struct{ Term syntax.Expr }

func (b IdentityBuilder) Build([]syntax.Expr) syntax.Expr { return b.Term }

// LambdaBuilder is used by intro: the single subgoal's proof becomes
// the body of a function abstracting over the introduced hypothesis.
type LambdaBuilder struct{ Name syntax.Name }

func (b LambdaBuilder) Build(sub []syntax.Expr) syntax.Expr {
	return syntax.MkLambda(b.Name, sub[0])
}

// ApplyBuilder is used by apply: the single subgoal's proof (of the
// function's domain) is applied to Fn to produce a proof of the
// codomain, i.e. the original goal.
type ApplyBuilder struct{ Fn syntax.Expr }

func (b ApplyBuilder) Build(sub []syntax.Expr) syntax.Expr {
	return syntax.MkApp(b.Fn, sub[0])
}

// Result is the outcome of applying a tactic to a goal.
type Result struct {
	Ok       bool
	Subgoals []proofstate.Goal
	Builder  ProofBuilder
	Reason   string
}

// Success builds a Result reporting progress.
func Success(subgoals []proofstate.Goal, builder ProofBuilder) Result {
	return Result{Ok: true, Subgoals: subgoals, Builder: builder}
}

// Failure builds a Result reporting that the tactic made no progress.
func Failure(reason string) Result { return Result{Ok: false, Reason: reason} }

// goalCtx rebuilds the typing context a goal's hypotheses describe, by
// replaying them onto base in order. Goals are only ever built by this
// package (or the initial REPL goal, with no hypotheses), so the
// replay always agrees with however the goal's Type expression counts
// its de Bruijn indices.
func goalCtx(base *check.Ctx, g proofstate.Goal) *check.Ctx {
	ctx := base
	for _, h := range g.Hypotheses {
		ctx = ctx.ExtendVar(h.Name, h.Type, ctx.FreshVar(h.Name, h.Type))
	}
	return ctx
}

// Intro introduces the domain of a Pi-typed goal as a new hypothesis,
// leaving the codomain as the single subgoal (spec.md §4.8).
func Intro(base *check.Ctx, g proofstate.Goal, name syntax.Name) Result {
	pi, ok := g.Type.(*value.VPi)
	if !ok {
		return Failure("goal is not a function type")
	}
	ctx := goalCtx(base, g)
	fresh := ctx.FreshVar(name, pi.Domain)
	codomain := value.ApplyClosure(pi.Closure, fresh)
	sub := g.WithHypothesis(proofstate.Hypothesis{Name: name, Type: pi.Domain})
	sub.Type = codomain
	return Success([]proofstate.Goal{sub}, LambdaBuilder{Name: name})
}

// Exact closes the goal outright if term checks at the goal's type
// (spec.md §4.8).
func Exact(base *check.Ctx, g proofstate.Goal, term syntax.Expr) Result {
	ctx := goalCtx(base, g)
	if err := check.Check(ctx, term, g.Type); err != nil {
		return Failure(err.Error())
	}
	return Success(nil, IdentityBuilder{Term: term})
}

// Apply reduces the goal to proving fn's domain, provided fn's
// codomain is (after instantiating its bound variable) convertible
// with the goal's type (spec.md §4.8). fn's Pi must be non-dependent in
// the sense that its codomain doesn't vary with the choice of witness,
// since no witness is available yet -- the same restriction
// original_source's apply tactic imposes.
func Apply(base *check.Ctx, g proofstate.Goal, fn syntax.Expr) Result {
	ctx := goalCtx(base, g)
	fnTy, err := check.Infer(ctx, fn)
	if err != nil {
		return Failure(err.Error())
	}
	pi, ok := fnTy.(*value.VPi)
	if !ok {
		return Failure(fmt.Sprintf("%s is not a function", fn))
	}
	probe := ctx.FreshVar(pi.Name, pi.Domain)
	codomain := value.ApplyClosure(pi.Closure, probe)
	if !check.ConvType(ctx, codomain, g.Type) {
		return Failure("function's codomain does not match the goal")
	}
	sub := g
	sub.Type = pi.Domain
	return Success([]proofstate.Goal{sub}, ApplyBuilder{Fn: fn})
}

// Assumption closes the goal if some hypothesis has a type convertible
// with it (spec.md §4.8, §9: convertibility, not syntactic equality,
// settles whether a hypothesis matches).
func Assumption(base *check.Ctx, g proofstate.Goal) Result {
	ctx := goalCtx(base, g)
	for i := len(g.Hypotheses) - 1; i >= 0; i-- {
		h := g.Hypotheses[i]
		if check.ConvType(ctx, h.Type, g.Type) {
			idx := len(g.Hypotheses) - 1 - i
			return Success(nil, IdentityBuilder{Term: syntax.MkVar(h.Name, idx)})
		}
	}
	return Failure("no hypothesis matches the goal")
}

// Refl closes a Path goal whose two endpoints are convertible, with
// the constant path at either endpoint (spec.md §4.8).
func Refl(base *check.Ctx, g proofstate.Goal) Result {
	p, ok := g.Type.(*value.VPath)
	if !ok {
		return Failure("goal is not a Path type")
	}
	ctx := goalCtx(base, g)
	if !check.Conv(ctx, p.Left, p.Right, p.Type) {
		return Failure("path endpoints are not convertible")
	}
	body := nbe.ReadBack(p.Left, p.Type, ctx.Depth(), ctx.DimDepth())
	proof := &syntax.PathLam{DimName: syntax.NewName("_"), Body: body}
	return Success(nil, IdentityBuilder{Term: proof})
}
