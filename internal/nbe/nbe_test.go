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

package nbe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

func TestReadBackValueType(t *testing.T) {
	got := ReadBackValue(&value.VType{Level: 4}, 0, 0)
	ty, ok := got.(*syntax.TypeExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(4), ty.Level)
}

func TestReadBackEtaExpandsPi(t *testing.T) {
	// A value of Pi type always reads back as a Lambda, even when the
	// value is itself a neutral variable rather than a VLam.
	dom := &value.VType{Level: 0}
	piTy := &value.VPi{Name: syntax.NewName("x"), Domain: dom, Closure: &value.Closure{Native: func(v value.Value) value.Value { return dom }}}
	neutralFn := &value.VNeutral{Ty: piTy, Neutral: &value.NVar{Name: syntax.NewName("f"), Level: 0}}

	got := ReadBack(neutralFn, piTy, 1, 0)
	lam, ok := got.(*syntax.Lambda)
	require.True(t, ok)
	app, ok := lam.Body.(*syntax.App)
	require.True(t, ok)
	v, ok := app.Func.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 1, v.Index)
}

func TestReadBackNeutralVarConvertsLevelToIndex(t *testing.T) {
	n := &value.NVar{Name: syntax.NewName("x"), Level: 2}
	v := &value.VNeutral{Ty: &value.VType{Level: 0}, Neutral: n}
	got := ReadBackValue(v, 5, 0)
	vr, ok := got.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 2, vr.Index)
}

func TestNormalizeIdentityApplication(t *testing.T) {
	id := syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0))
	app := syntax.MkApp(id, syntax.MkType(2))
	ty := &value.VType{Level: 3}

	got := Normalize(app, ty, value.NewEnv(), syntax.NewDimEnv())
	te, ok := got.(*syntax.TypeExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(2), te.Level)
}
