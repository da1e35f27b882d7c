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

package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprString(t *testing.T) {
	testCases := []struct {
		name string
		expr Expr
		want string
	}{
		{name: "type", expr: MkType(2), want: "Type2"},
		{name: "var", expr: MkVar(NewName("x"), 0), want: "x"},
		{name: "pi", expr: MkPi(NewName("x"), MkType(0), MkVar(NewName("x"), 0)), want: "(x : Type0) -> x"},
		{name: "lambda", expr: MkLambda(NewName("x"), MkVar(NewName("x"), 0)), want: "\\x. x"},
		{name: "app", expr: MkApp(MkVar(NewName("f"), 1), MkVar(NewName("x"), 0)), want: "(f x)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func TestSubstReplacesBoundIndex(t *testing.T) {
	// \x. x, substituting the outermost bound variable (level 0, index 0
	// once under the binder) with a closed term.
	body := MkVar(NewName("x"), 0)
	repl := MkType(5)
	got := Subst(body, 0, repl)
	require.Equal(t, repl, got)
}

func TestSubstSkipsUnrelatedIndex(t *testing.T) {
	// A free variable referencing an outer binder (index 1 under one
	// more level of nesting) is untouched by a substitution at level 0.
	body := MkVar(NewName("y"), 1)
	got := Subst(body, 0, MkType(9))
	v, ok := got.(*Var)
	require.True(t, ok)
	assert.Equal(t, 1, v.Index)
}

func TestSubstUnderLambdaShiftsLevel(t *testing.T) {
	// \y. x, substituting the outer x (index 1, since y's binder shifts
	// it) leaves y (index 0) alone and replaces x.
	inner := &App{Func: MkVar(NewName("y"), 0), Arg: MkVar(NewName("x"), 1)}
	lam := &Lambda{Name: NewName("y"), Body: inner}
	got := Subst(lam, 0, MkType(3))
	gotLam, ok := got.(*Lambda)
	require.True(t, ok)
	gotApp, ok := gotLam.Body.(*App)
	require.True(t, ok)
	assert.Equal(t, MkType(3), gotApp.Arg)
	yVar, ok := gotApp.Func.(*Var)
	require.True(t, ok)
	assert.Equal(t, 0, yVar.Index)
}

func TestExprEqualStructural(t *testing.T) {
	a := MkPi(NewName("x"), MkType(0), MkVar(NewName("x"), 0))
	b := MkPi(NewName("y"), MkType(0), MkVar(NewName("y"), 0))
	assert.True(t, ExprEqual(a, b), "Pi types differing only in display name must compare equal")

	c := MkPi(NewName("x"), MkType(1), MkVar(NewName("x"), 0))
	assert.False(t, ExprEqual(a, c), "differing domains must not compare equal")
}

func TestExprEqualNilHandling(t *testing.T) {
	assert.True(t, ExprEqual(nil, nil))
	assert.False(t, ExprEqual(nil, MkType(0)))
	assert.False(t, ExprEqual(MkType(0), nil))
}
