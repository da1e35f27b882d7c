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

package kan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

func TestCoeIdentityWhenFromEqualsTo(t *testing.T) {
	base := &value.VType{Level: 2}
	fam := dimFamily(func(syntax.Dim) value.Value { return &value.VType{Level: 9} })
	got := Coe(fam, syntax.DZero(), syntax.DZero(), base, syntax.NewDimEnv())
	assert.Same(t, base, got)
}

func TestCompOnUniverseReturnsBase(t *testing.T) {
	base := &value.VType{Level: 3}
	got := Comp(&value.VType{Level: 0}, base, nil, syntax.DOne(), syntax.NewDimEnv())
	assert.Same(t, base, got)
}

func TestCompSatisfiedFaceWins(t *testing.T) {
	dimEnv := syntax.NewDimEnv().Extend(0, syntax.DOne())
	faceVal := &value.VType{Level: 7}
	faces := []value.NeutralFaceEntry{{Face: syntax.Eq(0, true), Value: faceVal}}
	got := Comp(&value.VType{Level: 0}, &value.VType{Level: 1}, faces, syntax.DOne(), dimEnv)
	assert.Same(t, faceVal, got)
}

func TestHCompEqualsCompAtOne(t *testing.T) {
	ty := &value.VType{Level: 0}
	base := &value.VType{Level: 1}
	dimEnv := syntax.NewDimEnv()
	got := HComp(ty, base, nil, dimEnv)
	want := Comp(ty, base, nil, syntax.DOne(), dimEnv)
	assert.Equal(t, want, got)
}

func TestCoePiProducesLambda(t *testing.T) {
	dom := &value.VType{Level: 0}
	pi := &value.VPi{Name: syntax.NewName("x"), Domain: dom, Closure: &value.Closure{Native: func(value.Value) value.Value { return dom }}}
	fam := dimFamily(func(syntax.Dim) value.Value { return pi })
	base := &value.VLam{Name: syntax.NewName("x"), Closure: &value.Closure{Native: func(v value.Value) value.Value { return v }}}

	got := Coe(fam, syntax.DZero(), syntax.DOne(), base, syntax.NewDimEnv())
	lam, ok := got.(*value.VLam)
	require.True(t, ok)
	assert.NotNil(t, lam.Closure)
}
