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

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

func TestEvalTypeAndVar(t *testing.T) {
	env := value.NewEnv().Extend(&value.VType{Level: 3})
	got := Eval(syntax.MkType(0), env, syntax.NewDimEnv())
	vt, ok := got.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(0), vt.Level)

	gotVar := Eval(syntax.MkVar(syntax.NewName("x"), 0), env, syntax.NewDimEnv())
	assert.Same(t, env.Lookup(0), gotVar)
}

func TestEvalIdentityApplication(t *testing.T) {
	// (\x. x) (Type 5) reduces to Type 5.
	id := syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0))
	app := syntax.MkApp(id, syntax.MkType(5))

	got := Eval(app, value.NewEnv(), syntax.NewDimEnv())
	vt, ok := got.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(5), vt.Level)
}

func TestEvalPiBuildsClosureOverCodomain(t *testing.T) {
	pi := syntax.MkPi(syntax.NewName("x"), syntax.MkType(0), syntax.MkVar(syntax.NewName("x"), 0))
	got := Eval(pi, value.NewEnv(), syntax.NewDimEnv())
	vpi, ok := got.(*value.VPi)
	require.True(t, ok)

	codomain := ApplyClosure(vpi.Closure, &value.VType{Level: 9})
	vt, ok := codomain.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(9), vt.Level)
}

func TestEvalPathAppAtConstantEndpoint(t *testing.T) {
	// A constant path lambda (\i. Type 0) applied at dimension 1 reduces
	// to Type 0 regardless of the bound dimension variable.
	pathLam := &syntax.PathLam{DimName: syntax.NewName("i"), Body: syntax.MkType(0)}
	got := ApplyDim(Eval(pathLam, value.NewEnv(), syntax.NewDimEnv()), syntax.DOne())
	vt, ok := got.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(0), vt.Level)
}

func TestEvalOutOfRangeVarPanics(t *testing.T) {
	assert.Panics(t, func() {
		Eval(syntax.MkVar(syntax.NewName("x"), 0), value.NewEnv(), syntax.NewDimEnv())
	})
}
