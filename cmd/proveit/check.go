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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/command"
)

// checkResult is the wire shape `check`'s --format json/yaml emits.
type checkResult struct {
	Expr string `json:"expr" yaml:"expr"`
	Type string `json:"type" yaml:"type"`
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <expr>",
		Short: "infer the type of a standalone term (spec.md's infer judgment)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, flags *globalFlags, src string) error {
	term, err := command.ParseTerm(src, nil)
	if err != nil {
		return err
	}
	ctx := check.NewCtx()
	ty, err := check.Infer(ctx, term)
	if err != nil {
		return err
	}
	result := checkResult{Expr: term.String(), Type: ty.String()}
	return printResult(cmd, flags, result, func() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s : %s\n", result.Expr, result.Type)
	})
}

// printResult renders v as JSON or YAML per flags.Format, falling
// back to textFn for the default "text" format.
func printResult(cmd *cobra.Command, flags *globalFlags, v any, textFn func()) error {
	switch flags.Format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	default:
		textFn()
		return nil
	}
}
