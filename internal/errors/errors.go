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

// Package errors defines the shared error taxonomy used by the kernel,
// the proof bridge, and the proof state (spec.md §7). It follows the
// shape of cue/errors: a common Error interface, a Message mixin for
// deferred/localizable formatting, and list aggregation so that a
// caller can collect every diagnostic from a pass instead of aborting
// at the first one.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/TensorHusker/ProveIt/internal/token"
)

// New is a convenience wrapper around the standard library's errors.New.
// It does not return a kernel Error.
func New(msg string) error { return errors.New(msg) }

// Is, As and Unwrap re-export the standard library so callers need not
// import both packages.
func Is(err, target error) bool    { return errors.Is(err, target) }
func As(err error, target any) bool { return errors.As(err, target) }
func Unwrap(err error) error        { return errors.Unwrap(err) }

// Message implements the error interface, deferring formatting so the
// same error value can be rendered more than once (e.g. once in a
// terminal report, once in a structured diagnostic, spec.md §6).
type Message struct {
	format string
	args   []any
}

// NewMessagef creates a message for human consumption.
func NewMessagef(format string, args ...any) Message {
	return Message{format: format, args: args}
}

func (m *Message) Msg() (string, []any) { return m.format, m.args }
func (m *Message) Error() string        { return fmt.Sprintf(m.format, m.args...) }

// Kind classifies a kernel error per spec.md §7's taxonomy table.
type Kind int

const (
	// KindOther covers errors with no specific kind (construction
	// errors wrapped from elsewhere, etc).
	KindOther Kind = iota
	KindTypeMismatch
	KindUnboundVariable
	KindCannotInfer
	KindUnboundDimension
	KindInvalidKan
	KindSmoothnessViolation
	KindUniverseLevel
	KindInvalidConstruction
	KindDependencyCycle
	KindProofCorrespondence
	KindTacticFailed
	KindNoSolution
	KindSearchTimeout
	KindParse
)

var kindNames = map[Kind]string{
	KindOther:               "Other",
	KindTypeMismatch:        "TypeMismatch",
	KindUnboundVariable:     "UnboundVariable",
	KindCannotInfer:         "CannotInfer",
	KindUnboundDimension:    "UnboundDimension",
	KindInvalidKan:          "InvalidKan",
	KindSmoothnessViolation: "SmoothnessViolation",
	KindUniverseLevel:       "UniverseLevel",
	KindInvalidConstruction: "InvalidConstruction",
	KindDependencyCycle:     "DependencyCycle",
	KindProofCorrespondence: "ProofCorrespondence",
	KindTacticFailed:        "TacticFailed",
	KindNoSolution:          "NoSolution",
	KindSearchTimeout:       "SearchTimeout",
	KindParse:               "Parse",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Recoverable reports whether errors of this kind are meant to be
// surfaced to a caller rather than indicating an implementation bug
// (spec.md §7's Recoverable column). UnboundVariable is the only
// unrecoverable kind the kernel raises as a value rather than a panic.
func (k Kind) Recoverable() bool { return k != KindUnboundVariable }

// Error is the common diagnostic type raised by the kernel, the proof
// bridge, the proof-graph layer, and the proof state.
type Error interface {
	error

	// Kind identifies the error's taxonomy entry.
	Kind() Kind

	// Position returns the primary source position, if any.
	Position() token.Pos

	// Path returns the path into the proof/graph structure where the
	// error occurred (e.g. a point or line label chain). May be nil.
	Path() []string

	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []any)
}

// kernelError is the concrete implementation backing every exported
// constructor below.
type kernelError struct {
	Message
	kind Kind
	pos  token.Pos
	path []string
}

func (e *kernelError) Kind() Kind        { return e.kind }
func (e *kernelError) Position() token.Pos { return e.pos }
func (e *kernelError) Path() []string    { return e.path }

// newKind builds an Error of the given kind with a formatted message.
func newKind(kind Kind, format string, args ...any) Error {
	return &kernelError{Message: NewMessagef(format, args...), kind: kind}
}

// WithPos attaches a source position to an Error, returning a copy.
func WithPos(err Error, pos token.Pos) Error {
	ke, ok := err.(*kernelError)
	if !ok {
		return err
	}
	cp := *ke
	cp.pos = pos
	return &cp
}

// WithPath attaches a structure path (point/line labels) to an Error.
func WithPath(err Error, path ...string) Error {
	ke, ok := err.(*kernelError)
	if !ok {
		return err
	}
	cp := *ke
	cp.path = path
	return &cp
}

// Constructors, one per spec.md §7 taxonomy entry.

func TypeMismatch(expected, got string) Error {
	return newKind(KindTypeMismatch, "type mismatch: expected %s, got %s", expected, got)
}

func UnboundVariable(ref string) Error {
	return newKind(KindUnboundVariable, "unbound variable: %s", ref)
}

func CannotInfer(what string) Error {
	return newKind(KindCannotInfer, "cannot infer type of %s: an annotation is required", what)
}

func UnboundDimension(name string) Error {
	return newKind(KindUnboundDimension, "unbound dimension variable: %s", name)
}

func InvalidKan(reason string) Error {
	return newKind(KindInvalidKan, "invalid Kan operation: %s", reason)
}

func SmoothnessViolation(expected, got int) Error {
	return newKind(KindSmoothnessViolation, "smoothness violation: expected order <= %d, got %d", expected, got)
}

func UniverseLevel(reason string) Error {
	return newKind(KindUniverseLevel, "universe level error: %s", reason)
}

func InvalidConstruction(reason string) Error {
	return newKind(KindInvalidConstruction, "invalid construction: %s", reason)
}

func DependencyCycle() Error {
	return newKind(KindDependencyCycle, "adding this line would introduce a dependency cycle")
}

func ProofCorrespondence(reason string) Error {
	return newKind(KindProofCorrespondence, "proof does not correspond to the graph: %s", reason)
}

func TacticFailed(reason string) Error {
	return newKind(KindTacticFailed, "tactic failed: %s", reason)
}

func NoSolution() Error {
	return newKind(KindNoSolution, "no proof found within the search budget")
}

func SearchTimeout() Error {
	return newKind(KindSearchTimeout, "proof search exceeded its deadline")
}

func ParseError(format string, args ...any) Error {
	return newKind(KindParse, format, args...)
}

// List aggregates zero or more Errors so a pass that must not abort on
// the first failure (verify_correspondence, verify_construction, spec.md
// §4.7/§6) can collect everything wrong in one traversal.
type List struct {
	errs []Error
}

// Add appends a non-nil error to the list.
func (l *List) Add(err Error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// Len reports how many errors have been collected.
func (l *List) Len() int { return len(l.errs) }

// Errs returns the collected errors in the order they were added.
func (l *List) Errs() []Error { return l.errs }

// Err returns nil if the list is empty, the sole error if there is
// exactly one, or the list itself (as an error) otherwise.
func (l *List) Err() error {
	switch len(l.errs) {
	case 0:
		return nil
	case 1:
		return l.errs[0]
	default:
		return l
	}
}

func (l *List) Error() string {
	parts := make([]string, len(l.errs))
	for i, e := range l.errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Sanitize sorts the list's errors by position for stable, readable
// output, and removes exact-message duplicates.
func (l *List) Sanitize() {
	sort.SliceStable(l.errs, func(i, j int) bool {
		return l.errs[i].Position() < l.errs[j].Position()
	})
	seen := make(map[string]bool, len(l.errs))
	out := l.errs[:0]
	for _, e := range l.errs {
		if seen[e.Error()] {
			continue
		}
		seen[e.Error()] = true
		out = append(out, e)
	}
	l.errs = out
}
