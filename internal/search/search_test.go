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

package search

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

// identityGoal builds the goal (x : Type0) -> Type0: intro then
// assumption closes it in exactly two steps for every strategy.
func identityGoal(ctx *check.Ctx) proofstate.Goal {
	piExpr := syntax.MkPi(syntax.NewName("x"), syntax.MkType(0), syntax.MkType(0))
	ty := eval.Eval(piExpr, ctx.Env, ctx.DimEnv)
	return proofstate.Goal{ID: 0, Type: ty}
}

func TestRunBFSFindsIdentityProof(t *testing.T) {
	ctx := check.NewCtx()
	res := Run(ctx, identityGoal(ctx), BFS, Budget{MaxDepth: 5})
	require.True(t, res.Success)
	assert.NotNil(t, res.Proof)
	lam, ok := res.Proof.(*syntax.Lambda)
	require.True(t, ok)
	v, ok := lam.Body.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 0, v.Index)
}

func TestRunDFSFindsIdentityProof(t *testing.T) {
	ctx := check.NewCtx()
	res := Run(ctx, identityGoal(ctx), DFS, Budget{MaxDepth: 5})
	assert.True(t, res.Success)
}

func TestRunIDSFindsIdentityProof(t *testing.T) {
	ctx := check.NewCtx()
	res := Run(ctx, identityGoal(ctx), IDS, Budget{MaxDepth: 5})
	assert.True(t, res.Success)
}

func TestRunBestFirstFindsIdentityProof(t *testing.T) {
	ctx := check.NewCtx()
	res := Run(ctx, identityGoal(ctx), BestFirst, Budget{MaxDepth: 5})
	assert.True(t, res.Success)
}

func TestRunRespectsMaxDepthBudget(t *testing.T) {
	ctx := check.NewCtx()
	// The identity proof needs two steps (intro, then assumption); with
	// MaxDepth 1 the closing step lies past the cutoff.
	res := Run(ctx, identityGoal(ctx), BFS, Budget{MaxDepth: 1})
	assert.False(t, res.Success)
	// A goal no tactic applies to terminates and reports failure
	// rather than looping forever.
	unreachable := proofstate.Goal{ID: 0, Type: &value.VType{Level: 0}}
	res = Run(ctx, unreachable, BFS, Budget{MaxDepth: 3})
	assert.False(t, res.Success)
	assert.Greater(t, res.NodesExplored, 0)
}
