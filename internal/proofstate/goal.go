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

// Package proofstate implements interactive proof state (spec.md §3,
// §4.8): hypotheses, goals, and a persistent, undo/redo-able history of
// states reached by applying tactics. Every mutation returns a new
// ProofState rather than mutating in place, the same structural-sharing
// discipline package value's environments use, so History can simply
// keep every version it ever reached.
package proofstate

import (
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// Hypothesis is one named assumption available to a goal's tactics.
type Hypothesis struct {
	Name syntax.Name
	Type value.Value
}

// Goal is a single proof obligation: prove Type under Hypotheses.
type Goal struct {
	ID          int
	Hypotheses  []Hypothesis
	Type        value.Value
}

// WithHypothesis returns a copy of the goal with an additional
// hypothesis appended (used by the intro tactic).
func (g Goal) WithHypothesis(h Hypothesis) Goal {
	hyps := make([]Hypothesis, len(g.Hypotheses)+1)
	copy(hyps, g.Hypotheses)
	hyps[len(g.Hypotheses)] = h
	return Goal{ID: g.ID, Hypotheses: hyps, Type: g.Type}
}

// Lookup finds a hypothesis by name, most recently introduced first.
func (g Goal) Lookup(name syntax.Name) (Hypothesis, bool) {
	for i := len(g.Hypotheses) - 1; i >= 0; i-- {
		if g.Hypotheses[i].Name == name {
			return g.Hypotheses[i], true
		}
	}
	return Hypothesis{}, false
}

// ProofState is a snapshot of the proof in progress: the goals
// remaining to be discharged (in the order they should be attempted)
// and those already closed (spec.md §3). It holds no proof term.
type ProofState struct {
	Goals       []Goal
	ClosedGoals []Goal
}

// AllClosed reports whether every goal has been discharged.
func (s ProofState) AllClosed() bool { return len(s.Goals) == 0 }

// ReplaceGoal returns a new state with the goal at index idx replaced
// by replacement (zero or more subgoals, spliced in its place). When
// replacement is empty, the goal at idx is moved to ClosedGoals (spec.md
// §3: "closed when solved, and never revived except through undo").
func (s ProofState) ReplaceGoal(idx int, replacement ...Goal) ProofState {
	next := make([]Goal, 0, len(s.Goals)-1+len(replacement))
	next = append(next, s.Goals[:idx]...)
	next = append(next, replacement...)
	next = append(next, s.Goals[idx+1:]...)
	closed := append([]Goal(nil), s.ClosedGoals...)
	if len(replacement) == 0 {
		closed = append(closed, s.Goals[idx])
	}
	return ProofState{Goals: next, ClosedGoals: closed}
}

// Current returns the first remaining goal, the one tactics apply to
// by default (spec.md §4.8's "focus on the first goal" convention).
func (s ProofState) Current() (Goal, bool) {
	if len(s.Goals) == 0 {
		return Goal{}, false
	}
	return s.Goals[0], true
}
