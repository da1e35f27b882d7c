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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TensorHusker/ProveIt/internal/bridge"
	"github.com/TensorHusker/ProveIt/internal/check"
	"github.com/TensorHusker/ProveIt/internal/proofgraph"
	"github.com/TensorHusker/ProveIt/internal/snapshot"
)

// verifyResult is the wire shape `verify`'s --format json/yaml emits,
// the Go rendering of spec.md §6's `verify_construction` return value.
type verifyResult struct {
	Valid    bool            `json:"valid" yaml:"valid"`
	Messages []verifyMessage `json:"messages" yaml:"messages"`
	TimeMS   float64         `json:"time_ms" yaml:"time_ms"`
}

type verifyMessage struct {
	Level    string `json:"level" yaml:"level"`
	Message  string `json:"message" yaml:"message"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

func newVerifyCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "verify a serialized construction graph's acyclicity and proof correspondence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, flags, args[0])
		},
	}
}

func runVerify(cmd *cobra.Command, flags *globalFlags, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	g, err := decodeSnapshot(path, data)
	if err != nil {
		return err
	}

	b := &bridge.Bridge{Graph: g, Ctx: check.NewCtx()}
	report := bridge.VerifyConstruction(b)

	messages := make([]verifyMessage, len(report.Messages))
	for i, m := range report.Messages {
		messages[i] = verifyMessage{Level: m.Level.String(), Message: m.Message, Location: m.Location}
	}
	result := verifyResult{Valid: report.Valid, Messages: messages, TimeMS: report.TimeMS}

	if err := printResult(cmd, flags, result, func() {
		printVerifyText(cmd, result)
	}); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("construction failed verification (%d issue(s))", len(messages))
	}
	return nil
}

func printVerifyText(cmd *cobra.Command, result verifyResult) {
	out := cmd.OutOrStdout()
	for _, m := range result.Messages {
		if m.Location != "" {
			fmt.Fprintf(out, "%s: %s (%s)\n", m.Level, m.Message, m.Location)
		} else {
			fmt.Fprintf(out, "%s: %s\n", m.Level, m.Message)
		}
	}
	fmt.Fprintf(out, "valid=%v time_ms=%.3f\n", result.Valid, result.TimeMS)
}

func decodeSnapshot(path string, data []byte) (*proofgraph.ConstructionGraph, error) {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return snapshot.UnmarshalYAML(data)
	}
	return snapshot.UnmarshalJSON(data)
}
