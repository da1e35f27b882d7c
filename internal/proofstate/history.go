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

// History is an append-only log of proof states with undo/redo (spec.md
// §4.8, §8's "undo/redo are exact inverses" property): states is every
// state ever reached on the current timeline, cursor points at the
// present one. A new edit after an undo truncates the redo tail -- the
// states beyond cursor are simply dropped, matching the standard
// editor-undo-buffer convention rather than branching into a tree.
type History struct {
	states []ProofState
	cursor int
}

// NewHistory starts a history at the given initial state.
func NewHistory(initial ProofState) *History {
	return &History{states: []ProofState{initial}, cursor: 0}
}

// Current returns the state at the cursor.
func (h *History) Current() ProofState { return h.states[h.cursor] }

// Push records a new state as the result of an edit, truncating any
// redo tail left over from a previous undo.
func (h *History) Push(s ProofState) {
	h.states = append(h.states[:h.cursor+1], s)
	h.cursor++
}

// Undo moves the cursor one step back, returning the state it lands on
// and whether there was anywhere to go.
func (h *History) Undo() (ProofState, bool) {
	if h.cursor == 0 {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo moves the cursor one step forward, returning the state it lands
// on and whether there was anywhere to go.
func (h *History) Redo() (ProofState, bool) {
	if h.cursor >= len(h.states)-1 {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// CanUndo and CanRedo report whether Undo/Redo would move the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.states)-1 }

// Len reports how many states the timeline currently holds (including
// any redo tail).
func (h *History) Len() int { return len(h.states) }
