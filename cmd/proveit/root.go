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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags are the persistent flags every subcommand shares
// (spec.md §6: "the host may choose verbosity; this does not alter
// kernel outputs"), grounded on cmd/cue's own root.go persistent-flag
// group but reduced to the three SPEC_FULL.md §2 names.
type globalFlags struct {
	Verbose  bool
	Deadline time.Duration
	Format   string
}

// addGlobalFlags registers the persistent flags on fs, the same
// indirection cmd/cue/cmd's addGlobalFlags uses so tests can build a
// FlagSet without a *cobra.Command.
func addGlobalFlags(fs *pflag.FlagSet, flags *globalFlags) {
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "verbose output (accepted; no subcommand reads it)")
	fs.DurationVar(&flags.Deadline, "deadline", 0, "wall-clock budget for proof search (accepted; no subcommand reads it)")
	fs.StringVar(&flags.Format, "format", "text", `output format: "text", "json", or "yaml"`)
}

// newRootCmd builds the top-level proveit command (spec.md §6's CLI
// surface): repl, verify, check, tui.
func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "proveit",
		Short: "proveit is an interactive checker and proof assistant for smooth cubical type theory",

		// Subcommands return their errors and run() in main.go prints
		// them once; don't let cobra print them as well.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	addGlobalFlags(root.PersistentFlags(), flags)

	root.AddCommand(
		newReplCmd(flags),
		newVerifyCmd(flags),
		newCheckCmd(flags),
		newTUICmd(flags),
	)
	return root
}
