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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/eval"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

func TestInferTypeSucc(t *testing.T) {
	ctx := NewCtx()
	ty, err := Infer(ctx, syntax.MkType(0))
	require.NoError(t, err)
	vt, ok := ty.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(1), vt.Level)
}

func TestInferUnboundVariableFails(t *testing.T) {
	ctx := NewCtx()
	_, err := Infer(ctx, syntax.MkVar(syntax.NewName("x"), 0))
	assert.Error(t, err)
}

func TestInferLambdaCannotInfer(t *testing.T) {
	ctx := NewCtx()
	lam := syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0))
	_, err := Infer(ctx, lam)
	assert.Error(t, err)
}

func TestCheckIdentityLambdaAgainstPi(t *testing.T) {
	ctx := NewCtx()
	// (A : Type0) -> (x : A) -> A, checked against \A. \x. x.
	piExpr := syntax.MkPi(syntax.NewName("A"), syntax.MkType(0),
		syntax.MkPi(syntax.NewName("x"), syntax.MkVar(syntax.NewName("A"), 0), syntax.MkVar(syntax.NewName("A"), 1)))
	piTy := eval.Eval(piExpr, ctx.Env, ctx.DimEnv)

	lam := syntax.MkLambda(syntax.NewName("A"), syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0)))
	err := Check(ctx, lam, piTy)
	assert.NoError(t, err)
}

func TestCheckLambdaAgainstNonFunctionTypeFails(t *testing.T) {
	ctx := NewCtx()
	lam := syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0))
	err := Check(ctx, lam, &value.VType{Level: 0})
	assert.Error(t, err)
}

func TestInferAppliesPiCodomain(t *testing.T) {
	ctx := NewCtx()
	// f : (x : Type1) -> Type0, bound as a free variable; f Type0 infers
	// to the codomain evaluated at the argument (here, constantly Type0).
	piExpr := syntax.MkPi(syntax.NewName("x"), syntax.MkType(1), syntax.MkType(0))
	piTy := eval.Eval(piExpr, ctx.Env, ctx.DimEnv)
	fresh := ctx.FreshVar(syntax.NewName("f"), piTy)
	inner := ctx.ExtendVar(syntax.NewName("f"), piTy, fresh)

	app := &syntax.App{Func: syntax.MkVar(syntax.NewName("f"), 0), Arg: syntax.MkType(0)}
	got, err := Infer(inner, app)
	require.NoError(t, err)
	vt, ok := got.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(0), vt.Level)
}

func TestConvReflexive(t *testing.T) {
	ctx := NewCtx()
	v := &value.VType{Level: 4}
	assert.True(t, Conv(ctx, v, v, &value.VType{Level: 5}))
}

func TestConvTypeDistinguishesUniverseLevels(t *testing.T) {
	ctx := NewCtx()
	a := &value.VType{Level: 0}
	b := &value.VType{Level: 1}
	assert.False(t, ConvType(ctx, a, b))
}

func TestCtxExtendVarPreservesDepthOrdering(t *testing.T) {
	ctx := NewCtx()
	fresh := ctx.FreshVar(syntax.NewName("x"), &value.VType{Level: 0})
	inner := ctx.ExtendVar(syntax.NewName("x"), &value.VType{Level: 0}, fresh)

	assert.Equal(t, 0, ctx.Depth())
	assert.Equal(t, 1, inner.Depth())

	ty, name, ok := inner.TypeOf(0)
	require.True(t, ok)
	assert.Equal(t, "x", name.String())
	vt, ok := ty.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(0), vt.Level)
}
