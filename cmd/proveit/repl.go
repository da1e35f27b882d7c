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

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TensorHusker/ProveIt/internal/bridge"
	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/command"
	"github.com/TensorHusker/ProveIt/internal/eval"
	"github.com/TensorHusker/ProveIt/internal/nbe"
	"github.com/TensorHusker/ProveIt/internal/proofstate"
	"github.com/TensorHusker/ProveIt/internal/syntax"
	"github.com/TensorHusker/ProveIt/internal/tactics"
)

func newReplCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [goal]",
		Short: "start an interactive proof session (spec.md §4.8's tactics over one goal at a time)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, flags, args)
		},
	}
}

// replSession is the REPL's own state: the base typing context
// goalCtx-style tactics replay hypotheses onto, the undo/redo history
// of ProofStates, and (once `construct` is used) a proof-graph
// bridge.
//
// Every tactic this REPL dispatches (spec.md §4.8) produces at most
// one subgoal, so the chain of builders applied on any path through
// history is always a simple stack -- never a tree -- and the final
// proof is the same innermost-first fold search.foldProof uses over a
// search node's builder chain. builderLog mirrors history's own
// states/cursor exactly (same Push/Undo/Redo call sites in dispatch
// drive both), so builderLog[cursor] is always the chain that
// produced history.Current().
type replSession struct {
	ctx        *check.Ctx
	history    *proofstate.History
	builderLog [][]tactics.ProofBuilder
	cursor     int
	bridge     *bridge.Bridge
	name       string
}

func runREPL(cmd *cobra.Command, flags *globalFlags, args []string) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	goalExpr := ""
	if len(args) == 1 {
		goalExpr = args[0]
	} else {
		fmt.Fprint(out, "goal> ")
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		goalExpr = line
	}

	ctx := check.NewCtx()
	term, err := command.ParseTerm(goalExpr, nil)
	if err != nil {
		return fmt.Errorf("parsing goal: %w", err)
	}
	if _, err := check.Infer(ctx, term); err != nil {
		return fmt.Errorf("goal is not well-formed: %w", err)
	}
	goalTy := eval.Eval(term, ctx.Env, ctx.DimEnv)

	sess := &replSession{
		ctx:        ctx,
		history:    proofstate.NewHistory(proofstate.ProofState{Goals: []proofstate.Goal{{ID: 0, Type: goalTy}}}),
		builderLog: [][]tactics.ProofBuilder{nil},
	}

	for {
		fmt.Fprint(out, "proveit> ")
		line, err := in.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := sess.dispatch(cmd, flags, line); quit {
			return nil
		}
	}
}

// dispatch handles one REPL input line, reporting whether the session
// should end (the `quit` command).
func (s *replSession) dispatch(cmd *cobra.Command, flags *globalFlags, line string) (quit bool) {
	out := cmd.OutOrStdout()
	state := s.history.Current()

	var scope []string
	if g, ok := state.Current(); ok {
		for _, h := range g.Hypotheses {
			scope = append(scope, h.Name.String())
		}
	}

	c, err := command.ParseCommand(line, scope)
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
		return false
	}

	switch c.Kind {
	case command.Quit:
		return true
	case command.Help:
		printHelp(out)
		return false
	case command.Undo:
		if _, ok := s.history.Undo(); ok {
			s.cursor--
			fmt.Fprintln(out, "undone")
		} else {
			fmt.Fprintln(out, "nothing to undo")
		}
		return false
	case command.Redo:
		if _, ok := s.history.Redo(); ok {
			s.cursor++
			fmt.Fprintln(out, "redone")
		} else {
			fmt.Fprintln(out, "nothing to redo")
		}
		return false
	case command.Show:
		printGoals(out, s.ctx, state)
		return false
	case command.Construct:
		s.bridge = bridge.New(check.NewCtx())
		s.name = c.Name
		s.bridge.Graph.Name = c.Name
		fmt.Fprintf(out, "construction %q started\n", c.Name)
		return false
	case command.Verify:
		if s.bridge == nil {
			fmt.Fprintln(out, "error: no active construction; run `construct <name>` first")
			return false
		}
		report := bridge.VerifyConstruction(s.bridge)
		for _, m := range report.Messages {
			fmt.Fprintf(out, "%s: %s\n", m.Level, m.Message)
		}
		fmt.Fprintf(out, "valid=%v time_ms=%.3f\n", report.Valid, report.TimeMS)
		return false
	}

	s.applyTactic(out, c, state)
	return false
}

// applyTactic runs one of intro/exact/apply/assumption/refl against
// the current open goal, pushing a new ProofState on success.
func (s *replSession) applyTactic(out io.Writer, c *command.Command, state proofstate.ProofState) {
	goal, ok := state.Current()
	if !ok {
		fmt.Fprintln(out, "no open goal")
		return
	}

	var result tactics.Result
	switch c.Kind {
	case command.Intro:
		result = tactics.Intro(s.ctx, goal, syntax.NewName("x"))
	case command.Exact:
		result = tactics.Exact(s.ctx, goal, c.Term)
	case command.Apply:
		result = tactics.Apply(s.ctx, goal, c.Term)
	case command.Assumption:
		result = tactics.Assumption(s.ctx, goal)
	case command.Refl:
		result = tactics.Refl(s.ctx, goal)
	default:
		fmt.Fprintf(out, "error: %q is not a tactic\n", c.Kind)
		return
	}

	if !result.Ok {
		fmt.Fprintf(out, "failed: %s\n", result.Reason)
		return
	}

	next := state.ReplaceGoal(0, result.Subgoals...)

	chain := append(append([]tactics.ProofBuilder(nil), s.builderLog[s.cursor]...), result.Builder)
	s.builderLog = append(s.builderLog[:s.cursor+1], chain)
	s.cursor++
	s.history.Push(next)

	if next.AllClosed() {
		proof := foldBuilders(chain)
		fmt.Fprintf(out, "goal closed; proof = %s\n", nbe.ReadBackValue(eval.Eval(proof, s.ctx.Env, s.ctx.DimEnv), s.ctx.Depth(), s.ctx.DimDepth()))
		return
	}
	printGoals(out, s.ctx, next)
}

// foldBuilders reconstructs the proof term from the builder chain
// applied so far, innermost first -- the same fold
// internal/search.foldProof performs over a search node's chain.
func foldBuilders(builders []tactics.ProofBuilder) syntax.Expr {
	if len(builders) == 0 {
		return nil
	}
	proof := builders[len(builders)-1].Build(nil)
	for i := len(builders) - 2; i >= 0; i-- {
		proof = builders[i].Build([]syntax.Expr{proof})
	}
	return proof
}

func printGoals(out io.Writer, ctx *check.Ctx, state proofstate.ProofState) {
	fmt.Fprintf(out, "%d goal(s) open, %d closed\n", len(state.Goals), len(state.ClosedGoals))
	for i, g := range state.Goals {
		fmt.Fprintf(out, "  [%d] ", i)
		for _, h := range g.Hypotheses {
			fmt.Fprintf(out, "%s : %s, ", h.Name, nbe.ReadBackValue(h.Type, ctx.Depth(), ctx.DimDepth()))
		}
		fmt.Fprintf(out, "|- %s\n", nbe.ReadBackValue(g.Type, ctx.Depth(), ctx.DimDepth()))
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands: intro, exact <term>, apply <term>, assumption, refl,")
	fmt.Fprintln(out, "          undo, redo, show, construct <name>, verify, help, quit")
}
