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

// Package search wraps package tactics with automated proof-search
// strategies (spec.md §4.8): breadth-first, depth-first, iterative
// deepening, and best-first (ranked by the open goal's term size).
// Every strategy shares the same node expansion (tryAll) and the same
// wall-clock/depth budget and de-duplication discipline; only the
// order nodes are visited in differs, the way original_source's
// search module factors its strategies as traversal order choices
// over one expansion function rather than four separate algorithms.
//
// Search assumes its starting proof state has exactly one open goal:
// every tactic here produces at most one subgoal, so the proof being
// built is always a simple chain from the root goal down to a closed
// leaf, and the final term is recovered by folding the chain's
// ProofBuilders from leaf to root. A state with several independent
// goals is outside this package's scope (spec.md does not require
// search to interleave unrelated goals); solve each goal with its own
// Run call.
package search

import (
	"container/heap"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/nbe"
	"github.com/TensorHusker/ProveIt/internal/proofstate"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/tactics"
)

// Strategy selects the traversal order Run uses over the search tree.
type Strategy int

const (
	BFS Strategy = iota
	DFS
	IDS
	BestFirst
)

func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case IDS:
		return "ids"
	case BestFirst:
		return "best-first"
	default:
		return "unknown"
	}
}

// Budget bounds a search: Deadline is a wall-clock cutoff (the zero
// value means no deadline) and MaxDepth bounds the number of tactic
// applications on any one branch (spec.md §5's cancellation model).
type Budget struct {
	Deadline time.Time
	MaxDepth int
}

func (b Budget) expired(now time.Time, depth int) bool {
	if !b.Deadline.IsZero() && !now.Before(b.Deadline) {
		return true
	}
	return b.MaxDepth > 0 && depth > b.MaxDepth
}

// Step records one tactic application on the path from the root goal
// to the solution.
type Step struct {
	Tactic string
	Goal   proofstate.Goal
}

// Result is what a search run reports (spec.md §4.8).
type Result struct {
	Success       bool
	Proof         syntax.Expr
	Steps         []Step
	NodesExplored int
	MaxDepthSeen  int
	TimeTaken     time.Duration
}

// node is one point in the search tree: the still-open goal, the
// chain of builders from the root goal down to it (innermost last),
// and bookkeeping for reporting and tie-breaking.
type node struct {
	goal     proofstate.Goal
	builders []tactics.ProofBuilder
	steps    []Step
	depth    int
	seq      int // insertion order, for stable tie-breaking
}

// candidates returns every tactic application search tries at a goal:
// the two zero-argument closing tactics (assumption, refl), intro when the goal is a
// function type, and apply against each hypothesis currently in
// scope (spec.md §4.8's tactic list, with arguments drawn from the
// goal's own context rather than user input).
func candidates(ctx *check.Ctx, n node) []struct {
	name string
	res  tactics.Result
} {
	var out []struct {
		name string
		res  tactics.Result
	}
	if r := tactics.Assumption(ctx, n.goal); r.Ok {
		out = append(out, struct {
			name string
			res  tactics.Result
		}{"assumption", r})
	}
	if r := tactics.Refl(ctx, n.goal); r.Ok {
		out = append(out, struct {
			name string
			res  tactics.Result
		}{"refl", r})
	}
	if r := tactics.Intro(ctx, n.goal, syntax.NewName("x")); r.Ok {
		out = append(out, struct {
			name string
			res  tactics.Result
		}{"intro", r})
	}
	for i := len(n.goal.Hypotheses) - 1; i >= 0; i-- {
		h := n.goal.Hypotheses[i]
		idx := len(n.goal.Hypotheses) - 1 - i
		fn := syntax.MkVar(h.Name, idx)
		if r := tactics.Apply(ctx, n.goal, fn); r.Ok {
			out = append(out, struct {
				name string
				res  tactics.Result
			}{fmt.Sprintf("apply %s", h.Name), r})
		}
	}
	return out
}

// expand applies every candidate tactic to n, returning one child node
// per successful application.
func expand(ctx *check.Ctx, n node) []node {
	var children []node
	for _, c := range candidates(ctx, n) {
		step := Step{Tactic: c.name, Goal: n.goal}
		builders := append(append([]tactics.ProofBuilder(nil), n.builders...), c.res.Builder)
		steps := append(append([]Step(nil), n.steps...), step)
		if len(c.res.Subgoals) == 0 {
			children = append(children, node{builders: builders, steps: steps, depth: n.depth + 1})
			continue
		}
		children = append(children, node{goal: c.res.Subgoals[0], builders: builders, steps: steps, depth: n.depth + 1})
	}
	return children
}

// closed reports whether n has no remaining goal (its Builders chain
// is complete and a proof can be folded out of it).
func closed(n node) bool { return n.goal.Type == nil }

// foldProof reconstructs the root goal's proof term from a closed
// node's builder chain, innermost first.
func foldProof(builders []tactics.ProofBuilder) syntax.Expr {
	if len(builders) == 0 {
		return nil
	}
	proof := builders[len(builders)-1].Build(nil)
	for i := len(builders) - 2; i >= 0; i-- {
		proof = builders[i].Build([]syntax.Expr{proof})
	}
	return proof
}

// canonicalKey hashes a goal's hypotheses and type so Run can avoid
// revisiting the same open goal twice (spec.md §4.8's de-duplication).
func canonicalKey(ctx *check.Ctx, g proofstate.Goal) string {
	h := sha256.New()
	for _, hyp := range g.Hypotheses {
		fmt.Fprintf(h, "%s:%s;", hyp.Name, nbe.ReadBackValue(hyp.Type, 0, 0))
	}
	fmt.Fprintf(h, "|%s", nbe.ReadBackValue(g.Type, 0, 0))
	return hex.EncodeToString(h.Sum(nil))
}

// termSize is BestFirst's heuristic: the number of nodes in the
// read-back of the goal's type, used as a rough proxy for how far a
// goal is from being closed (spec.md §4.8).
func termSize(ctx *check.Ctx, g proofstate.Goal) int {
	return exprSize(nbe.ReadBackValue(g.Type, 0, 0))
}

func exprSize(e syntax.Expr) int {
	switch x := e.(type) {
	case *syntax.Pi:
		return 1 + exprSize(x.Domain) + exprSize(x.Codomain)
	case *syntax.Lambda:
		return 1 + exprSize(x.Body)
	case *syntax.App:
		return 1 + exprSize(x.Func) + exprSize(x.Arg)
	case *syntax.Path:
		return 1 + exprSize(x.Type) + exprSize(x.Left) + exprSize(x.Right)
	case *syntax.PathLam:
		return 1 + exprSize(x.Body)
	case *syntax.PathApp:
		return 1 + exprSize(x.Path)
	default:
		return 1
	}
}

// priorityQueue backs BestFirst: lowest heuristic first, ties broken
// by earliest insertion (spec.md §4.8, §5's ordering guarantees).
type priorityQueue struct {
	items []node
	score []int
}

func (pq *priorityQueue) Len() int { return len(pq.items) }
func (pq *priorityQueue) Less(i, j int) bool {
	if pq.score[i] != pq.score[j] {
		return pq.score[i] < pq.score[j]
	}
	return pq.items[i].seq < pq.items[j].seq
}
func (pq *priorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.score[i], pq.score[j] = pq.score[j], pq.score[i]
}
func (pq *priorityQueue) Push(x any) {
	e := x.(pqEntry)
	pq.items = append(pq.items, e.n)
	pq.score = append(pq.score, e.score)
}
func (pq *priorityQueue) Pop() any {
	n := len(pq.items)
	it := pq.items[n-1]
	sc := pq.score[n-1]
	pq.items = pq.items[:n-1]
	pq.score = pq.score[:n-1]
	return pqEntry{n: it, score: sc}
}

type pqEntry struct {
	n     node
	score int
}

// Run searches for a proof of start's single open goal using strategy,
// subject to budget (spec.md §4.8).
func Run(ctx *check.Ctx, start proofstate.Goal, strategy Strategy, budget Budget) Result {
	switch strategy {
	case IDS:
		return runIDS(ctx, start, budget)
	case BestFirst:
		return runBestFirst(ctx, start, budget)
	case DFS:
		return runFrontier(ctx, start, budget, true)
	default:
		return runFrontier(ctx, start, budget, false)
	}
}

// runFrontier drives BFS (dfs=false, FIFO frontier) and DFS (dfs=true,
// LIFO frontier) with the shared expansion/de-dup/budget logic.
func runFrontier(ctx *check.Ctx, start proofstate.Goal, budget Budget, dfs bool) Result {
	begin := time.Now()
	root := node{goal: start}
	frontier := []node{root}
	seen := map[string]bool{canonicalKey(ctx, start): true}
	explored := 0
	maxDepth := 0
	for len(frontier) > 0 {
		if budget.expired(time.Now(), 0) {
			return Result{NodesExplored: explored, MaxDepthSeen: maxDepth, TimeTaken: time.Since(begin)}
		}
		var cur node
		if dfs {
			cur = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		} else {
			cur = frontier[0]
			frontier = frontier[1:]
		}
		explored++
		if cur.depth > maxDepth {
			maxDepth = cur.depth
		}
		if closed(cur) {
			return Result{Success: true, Proof: foldProof(cur.builders), Steps: cur.steps, NodesExplored: explored, MaxDepthSeen: maxDepth, TimeTaken: time.Since(begin)}
		}
		if budget.expired(time.Now(), cur.depth+1) {
			continue
		}
		for _, child := range expand(ctx, cur) {
			if closed(child) {
				frontier = append(frontier, child)
				continue
			}
			key := canonicalKey(ctx, child.goal)
			if seen[key] {
				continue
			}
			seen[key] = true
			frontier = append(frontier, child)
		}
	}
	return Result{NodesExplored: explored, MaxDepthSeen: maxDepth, TimeTaken: time.Since(begin)}
}

// runIDS repeats a depth-bounded DFS with an increasing depth cap
// until budget.MaxDepth (or the deadline) is reached, the standard
// iterative-deepening trade of BFS-like completeness for DFS-like
// memory use.
func runIDS(ctx *check.Ctx, start proofstate.Goal, budget Budget) Result {
	begin := time.Now()
	totalExplored := 0
	maxDepthSeen := 0
	limit := budget.MaxDepth
	if limit <= 0 {
		limit = 64
	}
	for depthCap := 1; depthCap <= limit; depthCap++ {
		sub := Budget{Deadline: budget.Deadline, MaxDepth: depthCap}
		res := runFrontier(ctx, start, sub, true)
		totalExplored += res.NodesExplored
		if res.MaxDepthSeen > maxDepthSeen {
			maxDepthSeen = res.MaxDepthSeen
		}
		if res.Success {
			res.NodesExplored = totalExplored
			res.MaxDepthSeen = maxDepthSeen
			res.TimeTaken = time.Since(begin)
			return res
		}
		if !budget.Deadline.IsZero() && !time.Now().Before(budget.Deadline) {
			break
		}
	}
	return Result{NodesExplored: totalExplored, MaxDepthSeen: maxDepthSeen, TimeTaken: time.Since(begin)}
}

// runBestFirst orders the frontier by termSize, the heuristic spec.md
// §4.8 names, breaking ties by insertion order via priorityQueue.
func runBestFirst(ctx *check.Ctx, start proofstate.Goal, budget Budget) Result {
	begin := time.Now()
	pq := &priorityQueue{}
	heap.Init(pq)
	seqCounter := 0
	push := func(n node) {
		n.seq = seqCounter
		seqCounter++
		score := 0
		if !closed(n) {
			score = termSize(ctx, n.goal)
		}
		heap.Push(pq, pqEntry{n: n, score: score})
	}
	push(node{goal: start})
	seen := map[string]bool{canonicalKey(ctx, start): true}
	explored := 0
	maxDepth := 0
	for pq.Len() > 0 {
		if budget.expired(time.Now(), 0) {
			break
		}
		entry := heap.Pop(pq).(pqEntry)
		cur := entry.n
		explored++
		if cur.depth > maxDepth {
			maxDepth = cur.depth
		}
		if closed(cur) {
			return Result{Success: true, Proof: foldProof(cur.builders), Steps: cur.steps, NodesExplored: explored, MaxDepthSeen: maxDepth, TimeTaken: time.Since(begin)}
		}
		if budget.expired(time.Now(), cur.depth+1) {
			continue
		}
		for _, child := range expand(ctx, cur) {
			if !closed(child) {
				key := canonicalKey(ctx, child.goal)
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			push(child)
		}
	}
	return Result{NodesExplored: explored, MaxDepthSeen: maxDepth, TimeTaken: time.Since(begin)}
}
