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

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/proofgraph"
	"github.com/TensorHusker/ProveIt/internal/syntax"
)

// newABGraph registers two points, A and B, both Type0, with no line
// between them yet.
func newABGraph(t *testing.T) *Bridge {
	t.Helper()
	b := New(check.NewCtx())
	_, err := b.RegisterPoint("A", "A", syntax.MkType(0))
	require.NoError(t, err)
	_, err = b.RegisterPoint("B", "B", syntax.MkType(0))
	require.NoError(t, err)
	return b
}

func registerIdentityLine(t *testing.T, b *Bridge, from, to, id string) error {
	t.Helper()
	idFn := syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0))
	_, err := b.RegisterLine(id, from, to, id, idFn)
	return err
}

func TestRegisterLineAcceptsIdentityWitness(t *testing.T) {
	b := newABGraph(t)
	assert.NoError(t, registerIdentityLine(t, b, "A", "B", "AB"))
}

func TestRegisterLineRejectsIllTypedWitness(t *testing.T) {
	b := newABGraph(t)
	notAFunction := syntax.MkType(0)
	_, err := b.RegisterLine("AB", "A", "B", "", notAFunction)
	assert.Error(t, err)
	_, ok := b.Graph.Line("AB")
	assert.False(t, ok, "a rejected line must not reach the graph")
}

func TestConstructionToProofComposesPath(t *testing.T) {
	b := newABGraph(t)
	require.NoError(t, registerIdentityLine(t, b, "A", "B", "AB"))

	proof, err := ConstructionToProof(b, "A", "B")
	require.NoError(t, err)
	lam, ok := proof.(*syntax.Lambda)
	require.True(t, ok)
	assert.NotNil(t, lam.Body)
}

func TestConstructionToProofNoPathErrors(t *testing.T) {
	b := newABGraph(t)
	_, err := ConstructionToProof(b, "A", "B")
	assert.Error(t, err)
}

func TestVerifyConstructionCleanGraphReportsInfo(t *testing.T) {
	b := newABGraph(t)
	require.NoError(t, registerIdentityLine(t, b, "A", "B", "AB"))

	report := VerifyConstruction(b)
	assert.True(t, report.Valid)
	require.Len(t, report.Messages, 1)
	assert.Equal(t, LevelInfo, report.Messages[0].Level)
}

// TestVerifyCorrespondenceCollectsEveryFailure forges an ill-typed
// line directly onto the backing graph (bypassing RegisterLine's own
// check) to confirm VerifyCorrespondence reports it without touching
// the earlier, valid line.
func TestVerifyCorrespondenceCollectsEveryFailure(t *testing.T) {
	b := newABGraph(t)
	require.NoError(t, registerIdentityLine(t, b, "A", "B", "AB"))

	_, err := b.RegisterPoint("C", "C", syntax.MkType(0))
	require.NoError(t, err)

	badProof := syntax.MkType(0)
	require.NoError(t, b.Graph.AddLine(&proofgraph.Line{ID: "BC", From: "B", To: "C", Proof: badProof}))

	errs := VerifyCorrespondence(b)
	assert.Equal(t, 1, errs.Len())
}
