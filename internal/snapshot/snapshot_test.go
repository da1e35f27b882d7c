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

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/proofgraph"
	"github.com/TensorHusker/ProveIt/internal/syntax"
)

func newSampleGraph(t *testing.T) *proofgraph.ConstructionGraph {
	t.Helper()
	g := proofgraph.New()
	g.Name = "sample"
	require.NoError(t, g.AddPoint(&proofgraph.Point{ID: "A", Label: "A", Term: syntax.MkType(0)}))
	require.NoError(t, g.AddPoint(&proofgraph.Point{ID: "B", Label: "B", Term: syntax.MkType(0)}))
	idFn := syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0))
	require.NoError(t, g.AddLine(&proofgraph.Line{ID: "AB", From: "A", To: "B", Proof: idFn, Label: "A implies B"}))
	return g
}

func TestJSONRoundTripPreservesContent(t *testing.T) {
	g := newSampleGraph(t)
	data, err := MarshalJSON(g)
	require.NoError(t, err)

	got, err := UnmarshalJSON(data)
	require.NoError(t, err)

	assert.Equal(t, g.Name, got.Name)
	require.Len(t, got.Points(), 2)
	require.Len(t, got.Lines(), 1)
	l, ok := got.Line("AB")
	require.True(t, ok)
	assert.Equal(t, "A", l.From)
	assert.Equal(t, "B", l.To)
	lam, ok := l.Proof.(*syntax.Lambda)
	require.True(t, ok)
	assert.Equal(t, "x", lam.Name.String())
}

func TestYAMLRoundTripPreservesContent(t *testing.T) {
	g := newSampleGraph(t)
	data, err := MarshalYAML(g)
	require.NoError(t, err)

	got, err := UnmarshalYAML(data)
	require.NoError(t, err)

	require.Len(t, got.Points(), 2)
	l, ok := got.Line("AB")
	require.True(t, ok)
	assert.Equal(t, "AB", l.ID)
}

func TestDecodeRejectsUnknownLineEndpoint(t *testing.T) {
	s := &Snapshot{
		Points: []pointNode{{ID: "A", Proposition: *encodeExpr(syntax.MkType(0))}},
		Lines:  []lineNode{{ID: "bad", From: "A", To: "ghost", ProofTerm: *encodeExpr(syntax.MkType(0))}},
	}
	_, err := Decode(s)
	assert.Error(t, err)
}

func TestEncodeOmitsUnratedDifficulty(t *testing.T) {
	g := proofgraph.New()
	require.NoError(t, g.AddPoint(&proofgraph.Point{ID: "A", Term: syntax.MkType(0)}))
	snap := Encode(g)
	require.Len(t, snap.Points, 1)
	assert.Equal(t, "", snap.Points[0].Difficulty)
}
