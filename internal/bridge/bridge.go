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

// Package bridge translates between the proof-graph layer
// (package proofgraph) and the kernel's type-theoretic terms (spec.md
// §4.7): a point's proposition is a type, a line's witness is a term
// of the Pi type connecting its two endpoints, and a construction
// corresponds to a proof exactly when every line's witness both type
// checks at that Pi type and (by Conv) realizes the implication.
package bridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/errors"
	"github.com/TensorHusker/ProveIt/internal/eval"
	"github.com/TensorHusker/ProveIt/internal/nbe"
	"github.com/TensorHusker/ProveIt/internal/proofgraph"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/value"
)

// asKernelError recovers an errors.Error from a plain error return,
// wrapping it as a generic kernel error on the rare path where it
// isn't already one (defensive only: every error package.check
// constructs already satisfies errors.Error).
func asKernelError(err error) errors.Error {
	if ke, ok := err.(errors.Error); ok {
		return ke
	}
	return errors.ParseError("%s", err.Error())
}

// Bridge owns the shared typing context a construction graph's points
// and lines are checked against, plus the graph itself.
type Bridge struct {
	Graph *proofgraph.ConstructionGraph
	Ctx   *check.Ctx
}

// New returns a bridge over a fresh construction graph and the given
// typing context (spec.md §4.7). Passing check.NewCtx() is normal
// usage; a non-empty context lets a construction reference ambient
// hypotheses.
func New(ctx *check.Ctx) *Bridge {
	return &Bridge{Graph: proofgraph.New(), Ctx: ctx}
}

// RegisterPoint adds a point to the graph after checking that its
// proposition is well-formed (i.e. a type can be inferred for Term; the
// inferred type is not required to be a universe).
func (b *Bridge) RegisterPoint(id, label string, term syntax.Expr) (*proofgraph.Point, error) {
	if _, err := check.Infer(b.Ctx, term); err != nil {
		return nil, errors.WithPath(asKernelError(err), id)
	}
	p := &proofgraph.Point{ID: id, Label: label, Term: term}
	if err := b.Graph.AddPoint(p); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterLine adds a line from `from` to `to`, checking that proof
// has exactly the Pi type connecting the two points' propositions
// (spec.md §4.7): (_ : from.Term) -> to.Term.
func (b *Bridge) RegisterLine(id, from, to, label string, proof syntax.Expr) (*proofgraph.Line, error) {
	fp, ok := b.Graph.Point(from)
	if !ok {
		return nil, errors.InvalidConstruction(fmt.Sprintf("unknown point %q", from))
	}
	tp, ok := b.Graph.Point(to)
	if !ok {
		return nil, errors.InvalidConstruction(fmt.Sprintf("unknown point %q", to))
	}
	implication := lineType(b.Ctx, fp.Term, tp.Term)
	if err := check.Check(b.Ctx, proof, implication); err != nil {
		return nil, errors.WithPath(asKernelError(err), id)
	}
	l := &proofgraph.Line{ID: id, From: from, To: to, Proof: proof, Label: label}
	if err := b.Graph.AddLine(l); err != nil {
		return nil, err
	}
	return l, nil
}

// lineType builds the semantic Pi type a line's witness must inhabit:
// a non-dependent function from the source proposition to the target
// proposition (spec.md §4.7's "implication").
func lineType(ctx *check.Ctx, from, to syntax.Expr) value.Value {
	fromVal := eval.Eval(from, ctx.Env, ctx.DimEnv)
	toVal := eval.Eval(to, ctx.Env, ctx.DimEnv)
	return &value.VPi{
		Name:   syntax.NewName("_"),
		Domain: fromVal,
		Closure: &value.Closure{Native: func(value.Value) value.Value { return toVal }},
	}
}

// ConstructionToProof walks the graph from a start point to a goal
// point (spec.md §4.7) and composes the lines on the shortest path
// into a single function term proving goal.Term from start.Term's
// assumption -- or an error if no path exists.
func ConstructionToProof(b *Bridge, start, goal string) (syntax.Expr, error) {
	path, ok := b.Graph.FindPath(start, goal)
	if !ok {
		return nil, errors.ProofCorrespondence(fmt.Sprintf("no path from %q to %q", start, goal))
	}
	if len(path) == 0 {
		return syntax.MkLambda(syntax.NewName("x"), syntax.MkVar(syntax.NewName("x"), 0)), nil
	}
	// Compose: \x. line_n(...(line_2(line_1 x))...). Line witnesses are
	// always closed terms (they never reference the ambient \x this
	// Lambda introduces), so composing them needs no de Bruijn shifting.
	body := syntax.Expr(syntax.MkVar(syntax.NewName("x"), 0))
	for _, lineID := range path {
		l, _ := b.Graph.Line(lineID)
		body = syntax.MkApp(l.Proof, body)
	}
	return syntax.MkLambda(syntax.NewName("x"), body), nil
}

// ProofToConstruction is the inverse direction (spec.md §4.7): given a
// closed proof term known to be a chain of function applications
// (\x. f_n (... (f_1 x))), register one line per application against
// an existing graph, connecting start to goal.
func ProofToConstruction(b *Bridge, proof syntax.Expr, start, goal string) error {
	lam, ok := proof.(*syntax.Lambda)
	if !ok {
		return errors.ProofCorrespondence("proof is not a lambda abstraction")
	}
	steps := flattenApps(lam.Body)
	cur := start
	for i, fn := range steps {
		lineID := fmt.Sprintf("%s-step-%d", goal, i)
		to := goal
		if i < len(steps)-1 {
			to = fmt.Sprintf("%s-intermediate-%d", goal, i)
			if _, ok := b.Graph.Point(to); !ok {
				resultType, err := b.codomainOf(fn)
				if err != nil {
					return errors.WithPath(asKernelError(err), lineID)
				}
				if _, err := b.RegisterPoint(to, to, resultType); err != nil {
					return err
				}
			}
		}
		if _, err := b.RegisterLine(lineID, cur, to, lineID, fn); err != nil {
			return err
		}
		cur = to
	}
	return nil
}

// codomainOf infers fn's Pi type and reads back its codomain as an
// expression, used to reconstruct the proposition of an intermediate
// point ProofToConstruction invents for a chain application step (the
// original proof term carries no explicit type annotation for it).
func (b *Bridge) codomainOf(fn syntax.Expr) (syntax.Expr, error) {
	t, err := check.Infer(b.Ctx, fn)
	if err != nil {
		return nil, err
	}
	pi, ok := t.(*value.VPi)
	if !ok {
		return nil, errors.ProofCorrespondence("step function is not a function type")
	}
	fresh := b.Ctx.FreshVar(pi.Name, pi.Domain)
	codomain := value.ApplyClosure(pi.Closure, fresh)
	return nbe.ReadBackValue(codomain, b.Ctx.Depth(), b.Ctx.DimDepth()), nil
}

// flattenApps decomposes a chain of applications f_n (... (f_1 x)) into
// its individual function steps, innermost first.
func flattenApps(body syntax.Expr) []syntax.Expr {
	var steps []syntax.Expr
	cur := body
	for {
		app, ok := cur.(*syntax.App)
		if !ok {
			break
		}
		steps = append([]syntax.Expr{app.Func}, steps...)
		cur = app.Arg
	}
	return steps
}

// VerifyCorrespondence checks every line in the graph still type
// checks at its declared Pi type, collecting every failure rather than
// stopping at the first (spec.md §4.7, §6).
func VerifyCorrespondence(b *Bridge) *errors.List {
	list := &errors.List{}
	for _, l := range b.Graph.Lines() {
		fp, ok := b.Graph.Point(l.From)
		if !ok {
			list.Add(errors.InvalidConstruction(fmt.Sprintf("line %q: unknown source point %q", l.ID, l.From)))
			continue
		}
		tp, ok := b.Graph.Point(l.To)
		if !ok {
			list.Add(errors.InvalidConstruction(fmt.Sprintf("line %q: unknown target point %q", l.ID, l.To)))
			continue
		}
		implication := lineType(b.Ctx, fp.Term, tp.Term)
		if err := check.Check(b.Ctx, l.Proof, implication); err != nil {
			list.Add(errors.WithPath(asKernelError(err), l.ID))
		}
	}
	return list
}

// MessageLevel classifies one VerifyReport message (spec.md §6's
// {Info,Warning,Error} triple).
type MessageLevel int

const (
	LevelInfo MessageLevel = iota
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	default:
		return "error"
	}
}

// ReportMessage is one entry of a VerifyReport, with an optional
// location (a point id, a line id, or empty for a graph-wide issue).
type ReportMessage struct {
	Level    MessageLevel
	Message  string
	Location string
}

// VerifyReport is the host-facing result of VerifyConstruction
// (spec.md §6: `verify_construction(G) -> {valid, messages, time_ms}`).
type VerifyReport struct {
	Valid    bool
	Messages []ReportMessage
	TimeMS   float64
}

// VerifyConstruction re-checks a graph's structural invariants
// (acyclicity, dangling endpoints) and every line's proof-term
// correspondence, reporting everything wrong rather than stopping at
// the first failure (spec.md §6). A clean graph gets a single Info
// message rather than an empty list, so a host always has something
// to show the user.
func VerifyConstruction(b *Bridge) VerifyReport {
	start := time.Now()
	var messages []ReportMessage
	if err := b.Graph.Verify(); err != nil {
		if ke, ok := err.(errors.Error); ok {
			messages = append(messages, ReportMessage{Level: LevelError, Message: ke.Error(), Location: strings.Join(ke.Path(), "/")})
		} else {
			messages = append(messages, ReportMessage{Level: LevelError, Message: err.Error()})
		}
	}
	for _, e := range VerifyCorrespondence(b).Errs() {
		messages = append(messages, ReportMessage{Level: LevelError, Message: e.Error(), Location: strings.Join(e.Path(), "/")})
	}
	valid := len(messages) == 0
	if valid {
		messages = append(messages, ReportMessage{Level: LevelInfo, Message: "construction verified"})
	}
	return VerifyReport{Valid: valid, Messages: messages, TimeMS: float64(time.Since(start).Microseconds()) / 1000}
}
