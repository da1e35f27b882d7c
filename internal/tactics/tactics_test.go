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

package tactics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/eval"
	"github.com/TensorHusker/ProveIt/internal/proofstate"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// piGoal builds the goal (x : Type0) -> Type0, i.e. the identity
// function's type, with no hypotheses yet.
func piGoal(ctx *check.Ctx) proofstate.Goal {
	piExpr := syntax.MkPi(syntax.NewName("x"), syntax.MkType(0), syntax.MkType(0))
	ty := eval.Eval(piExpr, ctx.Env, ctx.DimEnv)
	return proofstate.Goal{ID: 0, Type: ty}
}

func TestIntroOnPiGoalProducesOneSubgoal(t *testing.T) {
	ctx := check.NewCtx()
	g := piGoal(ctx)
	res := Intro(ctx, g, syntax.NewName("x"))
	require.True(t, res.Ok)
	require.Len(t, res.Subgoals, 1)
	assert.Len(t, res.Subgoals[0].Hypotheses, 1)
}

func TestIntroOnNonFunctionGoalFails(t *testing.T) {
	ctx := check.NewCtx()
	g := proofstate.Goal{ID: 0, Type: &value.VType{Level: 0}}
	res := Intro(ctx, g, syntax.NewName("x"))
	assert.False(t, res.Ok)
}

func TestExactClosesMatchingGoal(t *testing.T) {
	ctx := check.NewCtx()
	g := proofstate.Goal{ID: 0, Type: &value.VType{Level: 1}}
	res := Exact(ctx, g, syntax.MkType(0))
	require.True(t, res.Ok)
	assert.Empty(t, res.Subgoals)
}

func TestAssumptionFindsMostRecentShadowingHypothesis(t *testing.T) {
	ctx := check.NewCtx()
	g := proofstate.Goal{ID: 0, Type: &value.VType{Level: 3}}
	g = g.WithHypothesis(proofstate.Hypothesis{Name: syntax.NewName("h"), Type: &value.VType{Level: 3}})
	g = g.WithHypothesis(proofstate.Hypothesis{Name: syntax.NewName("h"), Type: &value.VType{Level: 3}})

	res := Assumption(ctx, g)
	require.True(t, res.Ok)
	builder, ok := res.Builder.(IdentityBuilder)
	require.True(t, ok)
	v, ok := builder.Term.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 0, v.Index, "most recently introduced hypothesis is de Bruijn index 0")
}

func TestAssumptionNoMatchFails(t *testing.T) {
	ctx := check.NewCtx()
	g := proofstate.Goal{ID: 0, Type: &value.VType{Level: 5}}
	g = g.WithHypothesis(proofstate.Hypothesis{Name: syntax.NewName("h"), Type: &value.VType{Level: 1}})
	res := Assumption(ctx, g)
	assert.False(t, res.Ok)
}

func TestReflClosesConvertibleEndpoints(t *testing.T) {
	ctx := check.NewCtx()
	ty := &value.VType{Level: 0}
	endpoint := &value.VType{Level: 1}
	g := proofstate.Goal{ID: 0, Type: &value.VPath{Type: ty, Left: endpoint, Right: endpoint}}
	res := Refl(ctx, g)
	require.True(t, res.Ok)
	builder, ok := res.Builder.(IdentityBuilder)
	require.True(t, ok)
	_, ok = builder.Term.(*syntax.PathLam)
	assert.True(t, ok)
}

func TestReflOnNonPathGoalFails(t *testing.T) {
	ctx := check.NewCtx()
	g := proofstate.Goal{ID: 0, Type: &value.VType{Level: 0}}
	res := Refl(ctx, g)
	assert.False(t, res.Ok)
}

func TestApplyReducesGoalToDomain(t *testing.T) {
	ctx := check.NewCtx()
	piExpr := syntax.MkPi(syntax.NewName("x"), syntax.MkType(0), syntax.MkType(1))
	fnTy := eval.Eval(piExpr, ctx.Env, ctx.DimEnv)
	fresh := ctx.FreshVar(syntax.NewName("f"), fnTy)
	inner := ctx.ExtendVar(syntax.NewName("f"), fnTy, fresh)

	g := proofstate.Goal{ID: 0, Type: &value.VType{Level: 1}}
	res := Apply(inner, g, syntax.MkVar(syntax.NewName("f"), 0))
	require.True(t, res.Ok)
	require.Len(t, res.Subgoals, 1)
	vt, ok := res.Subgoals[0].Type.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(0), vt.Level)
}
