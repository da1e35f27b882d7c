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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/syntax"
)

func TestEnvExtendAndLookup(t *testing.T) {
	e0 := NewEnv()
	require.Equal(t, 0, e0.Len())

	e1 := e0.Extend(&VType{Level: 0})
	e2 := e1.Extend(&VType{Level: 1})

	assert.Equal(t, 2, e2.Len())
	assert.Equal(t, syntax.Level(1), e2.Lookup(0).(*VType).Level)
	assert.Equal(t, syntax.Level(0), e2.Lookup(1).(*VType).Level)

	// e1 must be untouched by extending into e2 (structural sharing,
	// spec.md §5).
	assert.Equal(t, 1, e1.Len())
	assert.Equal(t, syntax.Level(0), e1.Lookup(0).(*VType).Level)
}

func TestEnvLookupOutOfRangePanics(t *testing.T) {
	e := NewEnv().Extend(&VType{Level: 0})
	assert.Panics(t, func() { e.Lookup(5) })
}

func TestApplyClosureUsesNativeFn(t *testing.T) {
	doubled := &Closure{Native: func(v Value) Value { return v }}
	arg := &VType{Level: 7}
	got := ApplyClosure(doubled, arg)
	assert.Same(t, arg, got)
}
