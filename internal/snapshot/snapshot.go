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

// Package snapshot implements the persisted construction-graph format
// (spec.md §6): a canonical encoding (point/line ids ascending, face
// systems in declared order, expressions in their AST form) that
// round-trips losslessly (spec.md §8 property 12). encoding/json
// produces the canonical form; gopkg.in/yaml.v3 mirrors the same
// struct tree for the CLI's `--format yaml` flag, the same JSON/YAML
// duality cuelang.org/go's own export path offers.
package snapshot

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TensorHusker/ProveIt/internal/proofgraph"
)

// Snapshot is the canonical wire form of a proofgraph.ConstructionGraph.
type Snapshot struct {
	Name     string        `json:"name" yaml:"name"`
	Target   *exprNode     `json:"target,omitempty" yaml:"target,omitempty"`
	Metadata metadataNode  `json:"metadata" yaml:"metadata"`
	Points   []pointNode   `json:"points" yaml:"points"`
	Lines    []lineNode    `json:"lines" yaml:"lines"`
}

type metadataNode struct {
	CreatedAt  *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
	Author     string     `json:"author,omitempty" yaml:"author,omitempty"`
	Tags       []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Difficulty string     `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

type positionNode struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type pointNode struct {
	ID         string       `json:"id" yaml:"id"`
	Position   positionNode `json:"position" yaml:"position"`
	Proposition exprNode    `json:"proposition" yaml:"proposition"`
	Label      string       `json:"label" yaml:"label"`
	Tags       []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Difficulty string       `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

type lineNode struct {
	ID        string   `json:"id" yaml:"id"`
	From      string   `json:"from" yaml:"from"`
	To        string   `json:"to" yaml:"to"`
	ProofTerm exprNode `json:"proof_term" yaml:"proof_term"`
	Label     string   `json:"label" yaml:"label"`
}

// difficultyName/parseDifficulty round-trip proofgraph.Difficulty
// through its textual form (the canonical encoding is JSON/YAML; an
// integer enum would not be self-describing across versions).
func difficultyName(d proofgraph.Difficulty) string {
	if d == proofgraph.DifficultyUnrated {
		return ""
	}
	return d.String()
}

func parseDifficulty(s string) proofgraph.Difficulty {
	switch s {
	case "trivial":
		return proofgraph.DifficultyTrivial
	case "easy":
		return proofgraph.DifficultyEasy
	case "moderate":
		return proofgraph.DifficultyModerate
	case "hard":
		return proofgraph.DifficultyHard
	default:
		return proofgraph.DifficultyUnrated
	}
}

// Encode builds a canonical Snapshot from a construction graph. Points
// and lines are already returned in ascending-id order by
// proofgraph.ConstructionGraph.
func Encode(g *proofgraph.ConstructionGraph) *Snapshot {
	s := &Snapshot{
		Name:   g.Name,
		Target: encodeExpr(g.Target),
		Metadata: metadataNode{
			CreatedAt:  g.Metadata.CreatedAt,
			ModifiedAt: g.Metadata.ModifiedAt,
			Author:     g.Metadata.Author,
			Tags:       g.Metadata.Tags,
			Difficulty: difficultyName(g.Metadata.Difficulty),
		},
	}
	for _, p := range g.Points() {
		s.Points = append(s.Points, pointNode{
			ID:          p.ID,
			Position:    positionNode{X: p.Position.X, Y: p.Position.Y},
			Proposition: *encodeExpr(p.Term),
			Label:       p.Label,
			Tags:        p.Tags,
			Difficulty:  difficultyName(p.Difficulty),
		})
	}
	for _, l := range g.Lines() {
		s.Lines = append(s.Lines, lineNode{
			ID:        l.ID,
			From:      l.From,
			To:        l.To,
			ProofTerm: *encodeExpr(l.Proof),
			Label:     l.Label,
		})
	}
	return s
}

// Decode rebuilds a construction graph from a Snapshot, in ascending-id
// order. Re-registering lines in id order rather than their original
// registration order means a decoded graph's insertion-order tie-break
// (spec.md §4.6) reflects id order, not history -- the canonical
// encoding does not claim to preserve registration order, only content.
func Decode(s *Snapshot) (*proofgraph.ConstructionGraph, error) {
	g := proofgraph.New()
	g.Name = s.Name
	target, err := decodeExpr(s.Target)
	if err != nil {
		return nil, err
	}
	g.Target = target
	g.Metadata = proofgraph.Metadata{
		CreatedAt:  s.Metadata.CreatedAt,
		ModifiedAt: s.Metadata.ModifiedAt,
		Author:     s.Metadata.Author,
		Tags:       s.Metadata.Tags,
		Difficulty: parseDifficulty(s.Metadata.Difficulty),
	}
	for _, pn := range s.Points {
		term, err := decodeExpr(&pn.Proposition)
		if err != nil {
			return nil, err
		}
		p := &proofgraph.Point{
			ID:         pn.ID,
			Label:      pn.Label,
			Term:       term,
			Position:   proofgraph.Position{X: pn.Position.X, Y: pn.Position.Y},
			Tags:       pn.Tags,
			Difficulty: parseDifficulty(pn.Difficulty),
		}
		if err := g.AddPoint(p); err != nil {
			return nil, err
		}
	}
	for _, ln := range s.Lines {
		proof, err := decodeExpr(&ln.ProofTerm)
		if err != nil {
			return nil, err
		}
		l := &proofgraph.Line{ID: ln.ID, From: ln.From, To: ln.To, Proof: proof, Label: ln.Label}
		if err := g.AddLine(l); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MarshalJSON renders the canonical JSON form.
func MarshalJSON(g *proofgraph.ConstructionGraph) ([]byte, error) {
	return json.MarshalIndent(Encode(g), "", "  ")
}

// UnmarshalJSON parses the canonical JSON form.
func UnmarshalJSON(data []byte) (*proofgraph.ConstructionGraph, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return Decode(&s)
}

// MarshalYAML renders the YAML mirror (CLI `--format yaml`).
func MarshalYAML(g *proofgraph.ConstructionGraph) ([]byte, error) {
	return yaml.Marshal(Encode(g))
}

// UnmarshalYAML parses the YAML mirror.
func UnmarshalYAML(data []byte) (*proofgraph.ConstructionGraph, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return Decode(&s)
}
