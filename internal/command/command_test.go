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

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/syntax"
)

func TestParseCommandSimpleKeywords(t *testing.T) {
	testCases := []struct {
		line string
		want Kind
	}{
		{"intro", Intro},
		{"assumption", Assumption},
		{"refl", Refl},
		{"undo", Undo},
		{"redo", Redo},
		{"show", Show},
		{"help", Help},
		{"quit", Quit},
		{"verify", Verify},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			c, err := ParseCommand(tc.line, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Kind)
		})
	}
}

func TestParseCommandEmptyLineErrors(t *testing.T) {
	_, err := ParseCommand("   ", nil)
	assert.Error(t, err)
}

func TestParseCommandUnknownKeywordErrors(t *testing.T) {
	_, err := ParseCommand("frobnicate", nil)
	assert.Error(t, err)
}

func TestParseCommandConstructRequiresName(t *testing.T) {
	_, err := ParseCommand("construct", nil)
	assert.Error(t, err)

	c, err := ParseCommand("construct my-proof", nil)
	require.NoError(t, err)
	assert.Equal(t, Construct, c.Kind)
	assert.Equal(t, "my-proof", c.Name)
}

func TestParseCommandExactRequiresTerm(t *testing.T) {
	_, err := ParseCommand("exact", nil)
	assert.Error(t, err)

	c, err := ParseCommand("exact Type0", nil)
	require.NoError(t, err)
	assert.Equal(t, Exact, c.Kind)
	_, ok := c.Term.(*syntax.TypeExpr)
	assert.True(t, ok)
}

func TestParseCommandApplyResolvesHypothesisScope(t *testing.T) {
	c, err := ParseCommand("apply h", []string{"h"})
	require.NoError(t, err)
	assert.Equal(t, Apply, c.Kind)
	v, ok := c.Term.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 0, v.Index)
}

func TestParseTermVariableAgainstScope(t *testing.T) {
	// scope is oldest-first; the newest-introduced name gets index 0.
	term, err := ParseTerm("h1", []string{"h1", "h2"})
	require.NoError(t, err)
	v, ok := term.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 1, v.Index)
}

func TestParseTermUnboundVariableErrors(t *testing.T) {
	_, err := ParseTerm("ghost", nil)
	assert.Error(t, err)
}

func TestParseTermLambdaAndApp(t *testing.T) {
	term, err := ParseTerm(`\x. x`, nil)
	require.NoError(t, err)
	lam, ok := term.(*syntax.Lambda)
	require.True(t, ok)
	v, ok := lam.Body.(*syntax.Var)
	require.True(t, ok)
	assert.Equal(t, 0, v.Index)
}

func TestParseTermNonDependentPi(t *testing.T) {
	term, err := ParseTerm("Type0 -> Type1", nil)
	require.NoError(t, err)
	pi, ok := term.(*syntax.Pi)
	require.True(t, ok)
	dom, ok := pi.Domain.(*syntax.TypeExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(0), dom.Level)
	cod, ok := pi.Codomain.(*syntax.TypeExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(1), cod.Level)
}

func TestParseTermDependentPi(t *testing.T) {
	term, err := ParseTerm("(x : Type0) -> Type0", nil)
	require.NoError(t, err)
	pi, ok := term.(*syntax.Pi)
	require.True(t, ok)
	assert.Equal(t, "x", pi.Name.String())
}

func TestParseTermTrailingGarbageErrors(t *testing.T) {
	_, err := ParseTerm("Type0 extra", nil)
	assert.Error(t, err)
}

func TestParseTermPathApplication(t *testing.T) {
	term, err := ParseTerm(`(<i>. Type0) @ 1`, nil)
	require.NoError(t, err)
	app, ok := term.(*syntax.PathApp)
	require.True(t, ok)
	assert.Equal(t, syntax.DOne(), app.Dim)
}
