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

// Command proveit is the thin CLI host around the kernel and proof
// graph (spec.md §6): it owns no type-theoretic semantics of its own,
// only command parsing, file I/O, and output formatting.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run builds and executes the root command, returning the process
// exit code: 0 on success, non-zero on verification failure or a
// fatal parse error (spec.md §6).
func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
