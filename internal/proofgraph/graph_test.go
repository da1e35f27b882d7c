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

package proofgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinearGraph(t *testing.T) *ConstructionGraph {
	t.Helper()
	g := New()
	require.NoError(t, g.AddPoint(&Point{ID: "a", Label: "A"}))
	require.NoError(t, g.AddPoint(&Point{ID: "b", Label: "B"}))
	require.NoError(t, g.AddPoint(&Point{ID: "c", Label: "C"}))
	require.NoError(t, g.AddLine(&Line{ID: "ab", From: "a", To: "b"}))
	require.NoError(t, g.AddLine(&Line{ID: "bc", From: "b", To: "c"}))
	return g
}

func TestAddLineRejectsUnknownEndpoint(t *testing.T) {
	g := New()
	require.NoError(t, g.AddPoint(&Point{ID: "a"}))
	err := g.AddLine(&Line{ID: "l1", From: "a", To: "ghost"})
	assert.Error(t, err)
	_, ok := g.Line("l1")
	assert.False(t, ok, "rejected line must not be registered")
}

func TestAddLineRejectsCycleAndRollsBack(t *testing.T) {
	g := newLinearGraph(t)
	err := g.AddLine(&Line{ID: "ca", From: "c", To: "a"})
	assert.Error(t, err)

	_, ok := g.Line("ca")
	assert.False(t, ok, "a rejected cyclic line must leave no trace")
	assert.NoError(t, g.Verify(), "graph must remain acyclic and well-formed after the rollback")

	// The graph must still accept a legitimate line afterward --
	// the rollback must not have corrupted the backing structure.
	require.NoError(t, g.AddLine(&Line{ID: "ac", From: "a", To: "c"}))
}

func TestAddLinePreservesCallerSuppliedID(t *testing.T) {
	g := New()
	require.NoError(t, g.AddPoint(&Point{ID: "a"}))
	require.NoError(t, g.AddPoint(&Point{ID: "b"}))
	require.NoError(t, g.AddLine(&Line{ID: "custom-id", From: "a", To: "b"}))

	l, ok := g.Line("custom-id")
	require.True(t, ok)
	assert.Equal(t, "custom-id", l.ID)
}

func TestFindPathInsertionOrderTieBreak(t *testing.T) {
	g := New()
	require.NoError(t, g.AddPoint(&Point{ID: "a"}))
	require.NoError(t, g.AddPoint(&Point{ID: "b"}))
	require.NoError(t, g.AddPoint(&Point{ID: "c"}))
	require.NoError(t, g.AddPoint(&Point{ID: "z"}))
	// Two lines from "a" both reach "z" in two hops through different
	// routes; register the one via "c" first so it wins the tie-break
	// even though "b" sorts earlier lexicographically.
	require.NoError(t, g.AddLine(&Line{ID: "ac", From: "a", To: "c"}))
	require.NoError(t, g.AddLine(&Line{ID: "ab", From: "a", To: "b"}))
	require.NoError(t, g.AddLine(&Line{ID: "cz", From: "c", To: "z"}))
	require.NoError(t, g.AddLine(&Line{ID: "bz", From: "b", To: "z"}))

	path, ok := g.FindPath("a", "z")
	require.True(t, ok)
	assert.Equal(t, []string{"ac", "cz"}, path)
}

func TestFindPathNoRoute(t *testing.T) {
	g := newLinearGraph(t)
	require.NoError(t, g.AddPoint(&Point{ID: "isolated"}))
	_, ok := g.FindPath("a", "isolated")
	assert.False(t, ok)
}

func TestAxiomsAndTheoremsInInsertionOrder(t *testing.T) {
	g := newLinearGraph(t)
	axioms := g.Axioms()
	require.Len(t, axioms, 1)
	assert.Equal(t, "a", axioms[0].ID)

	theorems := g.Theorems()
	require.Len(t, theorems, 1)
	assert.Equal(t, "c", theorems[0].ID)
}

func TestComputeDepth(t *testing.T) {
	g := newLinearGraph(t)
	assert.Equal(t, 2, g.ComputeDepth())
	assert.Equal(t, 0, g.Depth("a"))
	assert.Equal(t, 1, g.Depth("b"))
	assert.Equal(t, 2, g.Depth("c"))
}

func TestDOTRendersEveryPointAndLine(t *testing.T) {
	g := newLinearGraph(t)
	dot := g.DOT()
	assert.Contains(t, dot, `"a"`)
	assert.Contains(t, dot, `"ab"`)
	assert.Contains(t, dot, "digraph proof")
}
