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

// Package proofgraph implements the proof-graph layer (spec.md §3,
// §4.6): points standing for propositions, lines standing for
// implications between them, and a ConstructionGraph tying both to an
// acyclic backing structure.
//
// The backing topology is github.com/katalvlaran/lvlath's core.Graph,
// with cycle detection delegated to lvlath/dfs.DetectCycles
// (SPEC_FULL.md §3): every AddLine tentatively adds the edge, asks
// lvlath whether the graph is still acyclic, and rolls the edge back
// out if not, so a rejected line never leaves a trace. Path-finding
// (FindPath) is hand-rolled rather than calling lvlath/bfs.BFS,
// because this package's tie-break rule -- when two frontier edges are
// both viable, prefer the one whose line was registered earlier -- does
// not fall out of lvlath's own (sorted-vertex-id) traversal order.
package proofgraph

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"

	"github.com/TensorHusker/ProveIt/internal/errors"
	"github.com/TensorHusker/ProveIt/internal/syntax"
)

// Difficulty is advisory metadata a construction may attach to a point
// (SPEC_FULL.md §5.3); it plays no role in acyclicity or path-finding.
type Difficulty int

const (
	DifficultyUnrated Difficulty = iota
	DifficultyTrivial
	DifficultyEasy
	DifficultyModerate
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyTrivial:
		return "trivial"
	case DifficultyEasy:
		return "easy"
	case DifficultyModerate:
		return "moderate"
	case DifficultyHard:
		return "hard"
	default:
		return "unrated"
	}
}

// Position is a point's layout coordinate (SPEC_FULL.md §6's persisted
// snapshot format). It is opaque to the graph itself -- acyclicity and
// path-finding never consult it -- and exists purely so a host can
// round-trip a construction's on-screen layout.
type Position struct {
	X, Y float64
}

// Point is a node of the construction graph: a proposition (its Term,
// a type) with a stable label.
type Point struct {
	ID         string
	Label      string
	Term       syntax.Expr
	Position   Position
	Tags       []string
	Difficulty Difficulty
}

// HasTag reports whether t is one of the point's tags.
func (p *Point) HasTag(t string) bool {
	for _, tag := range p.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// SetTags replaces the point's tag set.
func (p *Point) SetTags(tags ...string) { p.Tags = append([]string(nil), tags...) }

// Line is a directed edge of the construction graph: an implication
// from one point to another, witnessed by a proof term.
type Line struct {
	ID    string
	From  string
	To    string
	Proof syntax.Expr
	Label string
}

// Metadata is construction-wide information that plays no role in
// acyclicity or path-finding, carried purely for the persisted
// snapshot (SPEC_FULL.md §6, §5.3): timestamps, authorship, and the
// construction's own tags/difficulty, distinct from a single point's.
type Metadata struct {
	CreatedAt  *time.Time
	ModifiedAt *time.Time
	Author     string
	Tags       []string
	Difficulty Difficulty
}

// ConstructionGraph is the acyclic graph of points and lines (spec.md
// §4.6). The zero value is not usable; construct with New.
type ConstructionGraph struct {
	g           *core.Graph
	points      map[string]*Point
	lines       map[string]*Line
	edgeIDs     map[string]string   // our Line.ID -> lvlath's internal edge id
	outOrder    map[string][]string // point ID -> line IDs leaving it, in registration order
	insertOrder []string            // point IDs in the order they were added

	Name     string
	Target   syntax.Expr // optional; nil if the construction names no distinguished goal point
	Metadata Metadata
}

// New returns an empty construction graph.
func New() *ConstructionGraph {
	return &ConstructionGraph{
		g:        core.NewGraph(core.WithDirected(true), core.WithMultiEdges()),
		points:   map[string]*Point{},
		lines:    map[string]*Line{},
		edgeIDs:  map[string]string{},
		outOrder: map[string][]string{},
	}
}

// AddPoint registers a new point, allocating a fresh id (spec.md
// §4.6's "add_point(p) -> PointId: allocates a fresh id") via
// uuid.NewString when the caller leaves p.ID empty -- a graph edit
// driven interactively rather than replayed from a snapshot or built by
// package bridge, both of which already mint their own stable ids. It
// is an error to register a point whose ID already exists.
func (cg *ConstructionGraph) AddPoint(p *Point) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := cg.points[p.ID]; exists {
		return errors.InvalidConstruction(fmt.Sprintf("point %q already exists", p.ID))
	}
	if err := cg.g.AddVertex(p.ID); err != nil {
		return errors.InvalidConstruction(err.Error())
	}
	cg.points[p.ID] = p
	cg.insertOrder = append(cg.insertOrder, p.ID)
	return nil
}

// Point looks up a registered point by ID.
func (cg *ConstructionGraph) Point(id string) (*Point, bool) {
	p, ok := cg.points[id]
	return p, ok
}

// Points returns every registered point, sorted by ID for determinism.
func (cg *ConstructionGraph) Points() []*Point {
	ids := make([]string, 0, len(cg.points))
	for id := range cg.points {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Point, len(ids))
	for i, id := range ids {
		out[i] = cg.points[id]
	}
	return out
}

// AddLine registers a new implication between two existing points. The
// line is rejected -- and the graph left exactly as it was -- if either
// endpoint is unknown, its ID already names another line, or adding it
// would introduce a cycle (spec.md §4.6's acyclicity invariant).
//
// If l.ID is already set (e.g. a line being replayed from a snapshot,
// or one whose ID a caller mints itself, as package bridge does), that
// ID is kept as the line's stable external identity; lvlath still mints
// its own internal edge id for the backing graph, tracked separately in
// edgeIDs, since the embedded core.Graph has no id-override hook.
func (cg *ConstructionGraph) AddLine(l *Line) error {
	if _, ok := cg.points[l.From]; !ok {
		return errors.InvalidConstruction(fmt.Sprintf("unknown point %q", l.From))
	}
	if _, ok := cg.points[l.To]; !ok {
		return errors.InvalidConstruction(fmt.Sprintf("unknown point %q", l.To))
	}
	if l.ID != "" {
		if _, exists := cg.lines[l.ID]; exists {
			return errors.InvalidConstruction(fmt.Sprintf("line %q already exists", l.ID))
		}
	}
	internalID, err := cg.g.AddEdge(l.From, l.To, 0)
	if err != nil {
		return errors.InvalidConstruction(err.Error())
	}
	if hasCycle, _, derr := dfs.DetectCycles(cg.g); derr != nil {
		cg.g.RemoveEdge(internalID)
		return errors.InvalidConstruction(derr.Error())
	} else if hasCycle {
		cg.g.RemoveEdge(internalID)
		return errors.DependencyCycle()
	}
	if l.ID == "" {
		l.ID = internalID
	}
	cg.lines[l.ID] = l
	cg.edgeIDs[l.ID] = internalID
	cg.outOrder[l.From] = append(cg.outOrder[l.From], l.ID)
	return nil
}

// Line looks up a registered line by ID.
func (cg *ConstructionGraph) Line(id string) (*Line, bool) {
	l, ok := cg.lines[id]
	return l, ok
}

// Lines returns every registered line, sorted by ID for determinism.
func (cg *ConstructionGraph) Lines() []*Line {
	ids := make([]string, 0, len(cg.lines))
	for id := range cg.lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Line, len(ids))
	for i, id := range ids {
		out[i] = cg.lines[id]
	}
	return out
}

// FindPath performs a breadth-first search from "from" to "to" over
// the directed lines, breaking ties deterministically by the order
// lines were registered in (spec.md §4.6): when several outgoing lines
// from the same point are all on a shortest path, the one added to the
// graph earliest is preferred. Returns the line IDs forming the path,
// or (nil, false) if no path exists.
func (cg *ConstructionGraph) FindPath(from, to string) ([]string, bool) {
	if from == to {
		return nil, true
	}
	if _, ok := cg.points[from]; !ok {
		return nil, false
	}
	visited := map[string]bool{from: true}
	prev := map[string]pathStep{}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, lineID := range cg.outOrder[cur] {
			l := cg.lines[lineID]
			if visited[l.To] {
				continue
			}
			visited[l.To] = true
			prev[l.To] = pathStep{point: cur, viaLine: lineID}
			if l.To == to {
				return reconstructPath(prev, to), true
			}
			queue = append(queue, l.To)
		}
	}
	return nil, false
}

type pathStep struct {
	point   string
	viaLine string
}

func reconstructPath(prev map[string]pathStep, to string) []string {
	var lines []string
	cur := to
	for {
		s, ok := prev[cur]
		if !ok {
			break
		}
		lines = append([]string{s.viaLine}, lines...)
		cur = s.point
	}
	return lines
}

// Tags returns the construction's own tags (SPEC_FULL.md §5.3), as
// distinct from any one point's tags.
func (cg *ConstructionGraph) Tags() []string { return cg.Metadata.Tags }

// SetTags replaces the construction's tags.
func (cg *ConstructionGraph) SetTags(tags ...string) {
	cg.Metadata.Tags = append([]string(nil), tags...)
}

// Axioms returns the points with no incoming lines, in insertion order
// (spec.md §4.6).
func (cg *ConstructionGraph) Axioms() []*Point {
	hasIncoming := map[string]bool{}
	for _, l := range cg.lines {
		hasIncoming[l.To] = true
	}
	return cg.filterPointsByInsertionOrder(func(id string) bool { return !hasIncoming[id] })
}

// Theorems returns the points with no outgoing lines, in insertion
// order (spec.md §4.6).
func (cg *ConstructionGraph) Theorems() []*Point {
	hasOutgoing := map[string]bool{}
	for id, lines := range cg.outOrder {
		if len(lines) > 0 {
			hasOutgoing[id] = true
		}
	}
	return cg.filterPointsByInsertionOrder(func(id string) bool { return !hasOutgoing[id] })
}

func (cg *ConstructionGraph) filterPointsByInsertionOrder(keep func(id string) bool) []*Point {
	out := make([]*Point, 0, len(cg.insertOrder))
	for _, id := range cg.insertOrder {
		if keep(id) {
			out = append(out, cg.points[id])
		}
	}
	return out
}

// Verify re-checks the graph's structural invariants (spec.md §4.6):
// every line's endpoints still resolve to a registered point, and the
// graph remains acyclic. It never mutates the graph; AddLine already
// enforces both invariants on insertion, so a non-nil result here
// signals corruption reached the graph through some other path.
func (cg *ConstructionGraph) Verify() error {
	for _, l := range cg.lines {
		if _, ok := cg.points[l.From]; !ok {
			return errors.InvalidConstruction(fmt.Sprintf("line %q: unknown source point %q", l.ID, l.From))
		}
		if _, ok := cg.points[l.To]; !ok {
			return errors.InvalidConstruction(fmt.Sprintf("line %q: unknown target point %q", l.ID, l.To))
		}
	}
	if hasCycle, _, err := dfs.DetectCycles(cg.g); err != nil {
		return errors.InvalidConstruction(err.Error())
	} else if hasCycle {
		return errors.DependencyCycle()
	}
	return nil
}

// ComputeDepth returns the longest path, by hop count, from any axiom
// to any theorem (spec.md §4.6); 0 when the graph has no lines.
func (cg *ConstructionGraph) ComputeDepth() int {
	if len(cg.lines) == 0 {
		return 0
	}
	best := 0
	memo := map[string]int{}
	for _, t := range cg.Theorems() {
		if d := cg.depth(t.ID, memo); d > best {
			best = d
		}
	}
	return best
}

// Depth computes the longest chain of lines ending at id (the proof
// depth a point sits at), memoizing as it goes. A point with no
// incoming lines has depth 0.
func (cg *ConstructionGraph) Depth(id string) int {
	memo := map[string]int{}
	return cg.depth(id, memo)
}

func (cg *ConstructionGraph) depth(id string, memo map[string]int) int {
	if d, ok := memo[id]; ok {
		return d
	}
	best := 0
	for _, l := range cg.lines {
		if l.To == id {
			if d := cg.depth(l.From, memo) + 1; d > best {
				best = d
			}
		}
	}
	memo[id] = best
	return best
}

// DOT renders the construction graph in Graphviz's DOT language
// (spec.md §4.6's export requirement), points as nodes labelled by
// their Label and lines as directed edges.
func (cg *ConstructionGraph) DOT() string {
	out := "digraph proof {\n"
	for _, p := range cg.Points() {
		out += fmt.Sprintf("  %q [label=%q];\n", p.ID, p.Label)
	}
	for _, l := range cg.Lines() {
		out += fmt.Sprintf("  %q -> %q [label=%q];\n", l.From, l.To, l.ID)
	}
	out += "}\n"
	return out
}
