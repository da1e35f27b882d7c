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

package proofstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

func TestGoalWithHypothesisAppendsAndLooksUpMostRecentFirst(t *testing.T) {
	g := Goal{ID: 0, Type: &value.VType{Level: 0}}
	g = g.WithHypothesis(Hypothesis{Name: syntax.NewName("x"), Type: &value.VType{Level: 1}})
	g = g.WithHypothesis(Hypothesis{Name: syntax.NewName("x"), Type: &value.VType{Level: 2}})

	h, ok := g.Lookup(syntax.NewName("x"))
	require.True(t, ok)
	vt, ok := h.Type.(*value.VType)
	require.True(t, ok)
	assert.Equal(t, syntax.Level(2), vt.Level, "lookup must find the most recently introduced shadowing hypothesis")
}

func TestReplaceGoalClosesWhenNoSubgoals(t *testing.T) {
	s := ProofState{Goals: []Goal{{ID: 0, Type: &value.VType{Level: 0}}}}
	next := s.ReplaceGoal(0)
	assert.True(t, next.AllClosed())
	require.Len(t, next.ClosedGoals, 1)
	assert.Equal(t, 0, next.ClosedGoals[0].ID)
}

func TestReplaceGoalSplicesSubgoals(t *testing.T) {
	s := ProofState{Goals: []Goal{
		{ID: 0, Type: &value.VType{Level: 0}},
		{ID: 1, Type: &value.VType{Level: 1}},
	}}
	next := s.ReplaceGoal(0, Goal{ID: 2, Type: &value.VType{Level: 2}}, Goal{ID: 3, Type: &value.VType{Level: 3}})

	require.Len(t, next.Goals, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{next.Goals[0].ID, next.Goals[1].ID, next.Goals[2].ID})
	assert.Empty(t, next.ClosedGoals)
}

func TestHistoryUndoRedoAreInverses(t *testing.T) {
	s0 := ProofState{Goals: []Goal{{ID: 0, Type: &value.VType{Level: 0}}}}
	h := NewHistory(s0)

	s1 := s0.ReplaceGoal(0, Goal{ID: 1, Type: &value.VType{Level: 1}})
	h.Push(s1)
	assert.Equal(t, s1, h.Current())

	back, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, s0, back)

	fwd, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, s1, fwd)

	_, ok = h.Redo()
	assert.False(t, ok, "redo past the end must report no movement")
}

func TestHistoryPushTruncatesRedoTail(t *testing.T) {
	s0 := ProofState{Goals: []Goal{{ID: 0, Type: &value.VType{Level: 0}}}}
	h := NewHistory(s0)

	s1 := s0.ReplaceGoal(0, Goal{ID: 1, Type: &value.VType{Level: 1}})
	h.Push(s1)
	h.Undo()

	s2 := s0.ReplaceGoal(0, Goal{ID: 2, Type: &value.VType{Level: 2}})
	h.Push(s2)

	assert.False(t, h.CanRedo(), "pushing after an undo must drop the old redo tail")
	assert.Equal(t, s2, h.Current())
}
