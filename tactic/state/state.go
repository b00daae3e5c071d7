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

// Package state is the tactic-state contract of spec.md §3: a
// metavariable context, an ordered list of open goals, and auxiliary
// data. The backward-chaining engine only ever reads goals, sets goals,
// and reads the main goal's declaration, so that is all this package
// exposes; the metavariable context and everything else stay opaque to
// the core, carried through as an untyped snapshot (MCtx).
package state

import (
	"strings"

	"github.com/dtcore/dtcore/expr"
)

// Goal is one open proof obligation: a target type to inhabit under Ctx.
type Goal struct {
	Ctx    expr.Context
	Target expr.Expr
}

// State is a value-like snapshot: SetGoals never mutates the receiver, so
// a State pushed onto the backward-chaining choice stack stays valid even
// as later states are built from it.
type State struct {
	// MCtx is the opaque metavariable context; the core never inspects it,
	// only threads it through unchanged.
	MCtx any
	list []Goal
}

// New builds a State with the given goals and an opaque metavariable
// context.
func New(mctx any, goals ...Goal) State {
	return State{MCtx: mctx, list: append([]Goal{}, goals...)}
}

// Goals returns the state's open goals, main goal first.
func (s State) Goals() []Goal { return s.list }

// SetGoals returns a copy of s with its goal list replaced.
func (s State) SetGoals(goals []Goal) State {
	s.list = goals
	return s
}

// MainGoalDecl returns the main (first) goal's declaration, or false if
// there are no open goals.
func (s State) MainGoalDecl() (Goal, bool) {
	if len(s.list) == 0 {
		return Goal{}, false
	}
	return s.list[0], true
}

// Pretty renders the state for the tactic.back_chaining trace stream.
func (s State) Pretty() string {
	if len(s.list) == 0 {
		return "no goals"
	}
	parts := make([]string, len(s.list))
	for i, g := range s.list {
		parts[i] = "⊢ " + expr.String(g.Target)
	}
	return strings.Join(parts, "\n")
}
