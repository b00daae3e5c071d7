// Copyright 2024 The Authors.
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

// Package kernelerr holds the error kinds spec.md §7 names. It mirrors the
// teacher's build/fmterr package — position-carrying errors with a
// stack-trace-on-%+v Format hook — but the position here is the
// Environment the failure happened under, not a go/ast source location,
// since this kernel has no surface syntax of its own.
package kernelerr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/dtcore/dtcore/expr"
)

// DepthExceeded is raised when the normalizer's recursion counter passes
// its configured max_depth. It carries the environment for diagnostics,
// per spec.md §7.
type DepthExceeded struct {
	Env   *expr.Environment
	Depth uint
}

func (e *DepthExceeded) Error() string {
	return fmt.Sprintf("normalizer maximum recursion depth exceeded (depth %d)", e.Depth)
}

// NewDepthExceeded wraps a DepthExceeded with a stack trace, matching the
// teacher's habit of wrapping every kernel-level error with pkg/errors so
// %+v on a propagated error shows where it originated.
func NewDepthExceeded(env *expr.Environment, depth uint) error {
	return errors.WithStack(&DepthExceeded{Env: env, Depth: depth})
}

// Interrupted is raised when the cooperative interrupt flag was observed
// set during a recursive entry of the normalizer.
type Interrupted struct{}

func (Interrupted) Error() string { return "normalizer interrupted" }

// NewInterrupted wraps Interrupted with a stack trace.
func NewInterrupted() error { return errors.WithStack(Interrupted{}) }

// NoGoals is the backward-chaining engine's preflight failure: it was
// invoked with a tactic state that has no main goal.
type NoGoals struct{}

func (NoGoals) Error() string { return "back_chaining: no goals to solve" }

// NewNoGoals wraps NoGoals with a stack trace.
func NewNoGoals() error { return errors.WithStack(NoGoals{}) }

// BackChainingFailed is the engine's fixed, human-readable failure,
// carrying the untouched initial state per spec.md §4.4/§7.
type BackChainingFailed struct {
	Initial any
}

func (e *BackChainingFailed) Error() string {
	return "back_chaining failed, use command 'set_option trace.back_chaining true' to obtain more details"
}

// NewBackChainingFailed wraps BackChainingFailed with a stack trace.
func NewBackChainingFailed(initial any) error {
	return errors.WithStack(&BackChainingFailed{Initial: initial})
}

// Internal marks err as a kernel bug rather than a user-facing failure,
// mirroring the teacher's build/fmterr.Internal.
func Internal(err error) error {
	return errors.Wrap(err, "kernel internal error, this is a bug")
}
