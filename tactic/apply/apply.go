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

// Package apply supplies the one concrete Applier spec.md §4.4 leaves as
// a black box: given a candidate lemma and the current goal, decide
// whether the lemma's conclusion matches the goal and, if so, what new
// goals its premises introduce. This is matching-by-apply, not
// higher-order unification (spec.md §1's explicit non-goal): a lemma's
// telescope is only usable here when none of its premises depend on an
// earlier premise's witness. A dependent premise makes the lemma
// unusable by this Matcher, not an error — try_lemmas simply moves on.
package apply

import (
	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/normalizer"
	"github.com/dtcore/dtcore/tactic/lemma"
	"github.com/dtcore/dtcore/tactic/state"
)

// Context bundles the collaborators a Matcher needs: the global
// environment (for instance search) and the normalizer (for
// convertibility checks). UseInstances mirrors the
// tactic.back_chaining.use_instances knob from SPEC_FULL.md §4.4: when
// set, a premise that some environment object already inhabits is
// discharged immediately instead of becoming a new goal.
type Context struct {
	Env          *expr.Environment
	Norm         *normalizer.Normalizer
	UseInstances bool
}

// Applier decides whether a lemma closes a goal and, if so, what
// premises remain to prove. A false result with a nil error means the
// lemma simply does not apply; try_lemmas moves on to the next
// candidate without treating it as a failure.
type Applier interface {
	Apply(l lemma.Lemma, goal state.Goal) ([]state.Goal, bool, error)
}

// Matcher is the first-order Applier: it strips the lemma's Pi
// telescope, checks the trailing conclusion against the goal target up
// to convertibility, and turns the remaining premises into subgoals.
type Matcher struct {
	ctx *Context
}

// NewMatcher builds a Matcher over the given collaborators.
func NewMatcher(ctx *Context) *Matcher {
	return &Matcher{ctx: ctx}
}

// Apply implements Applier.
func (m *Matcher) Apply(l lemma.Lemma, goal state.Goal) ([]state.Goal, bool, error) {
	premises, conclusion, ok := splitTelescope(l.Statement)
	if !ok {
		return nil, false, nil
	}
	convertible, err := m.ctx.Norm.IsConvertible(goal.Target, conclusion, goal.Ctx)
	if err != nil {
		return nil, false, err
	}
	if !convertible {
		return nil, false, nil
	}
	subgoals := make([]state.Goal, 0, len(premises))
	for _, p := range premises {
		g := state.Goal{Ctx: goal.Ctx, Target: p}
		if m.ctx.UseInstances && m.findInstance(g) {
			continue
		}
		subgoals = append(subgoals, g)
	}
	return subgoals, true, nil
}

// findInstance linearly scans the environment for an object whose
// declared type already inhabits g.Target, discharging the goal without
// growing the search tree. Grounded on SPEC_FULL.md §4.4's
// use_instances extension and expr.Environment.Objects's deterministic
// ordering.
func (m *Matcher) findInstance(g state.Goal) bool {
	if m.ctx.Env == nil {
		return false
	}
	for _, o := range m.ctx.Env.Objects() {
		if o.Type == nil {
			continue
		}
		ok, err := m.ctx.Norm.IsConvertible(g.Target, o.Type, g.Ctx)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// splitTelescope peels the Pi telescope off stmt into a premise list plus
// a trailing conclusion. ok is false when some premise's codomain
// depends on an earlier premise's bound variable — a dependent premise,
// which this first-order matcher cannot discharge.
func splitTelescope(stmt expr.Expr) (premises []expr.Expr, conclusion expr.Expr, ok bool) {
	for {
		pi, isPi := stmt.(*expr.Pi)
		if !isPi {
			return premises, stmt, true
		}
		if containsVar(pi.Body, 0) {
			return nil, nil, false
		}
		premises = append(premises, pi.Domain)
		stmt = shift(pi.Body, -1, 0)
	}
}

// containsVar reports whether e contains a free reference to the
// variable bound at De Bruijn depth target.
func containsVar(e expr.Expr, target int) bool {
	switch t := e.(type) {
	case *expr.Var:
		return t.Index == target
	case *expr.App:
		if containsVar(t.Fun, target) {
			return true
		}
		for _, a := range t.Args {
			if containsVar(a, target) {
				return true
			}
		}
		return false
	case *expr.Lambda:
		return containsVar(t.Domain, target) || containsVar(t.Body, target+1)
	case *expr.Pi:
		return containsVar(t.Domain, target) || containsVar(t.Body, target+1)
	case *expr.Let:
		return containsVar(t.Value, target) || containsVar(t.Body, target+1)
	case *expr.Eq:
		return containsVar(t.Lhs, target) || containsVar(t.Rhs, target)
	default:
		return false
	}
}

// shift adds d to every free variable of e at or above cutoff c —
// the standard De Bruijn renumbering used when a binder is removed
// (d == -1) from a term proven not to reference it.
func shift(e expr.Expr, d, c int) expr.Expr {
	switch t := e.(type) {
	case *expr.Var:
		if t.Index >= c {
			return &expr.Var{Index: t.Index + d}
		}
		return t
	case *expr.Const, *expr.Sort, *expr.ValueExpr:
		return e
	case *expr.App:
		args := make([]expr.Expr, len(t.Args))
		for i, a := range t.Args {
			args[i] = shift(a, d, c)
		}
		return &expr.App{Fun: shift(t.Fun, d, c), Args: args}
	case *expr.Lambda:
		return &expr.Lambda{Name: t.Name, Domain: shift(t.Domain, d, c), Body: shift(t.Body, d, c+1)}
	case *expr.Pi:
		return &expr.Pi{Name: t.Name, Domain: shift(t.Domain, d, c), Body: shift(t.Body, d, c+1)}
	case *expr.Let:
		return &expr.Let{Name: t.Name, Value: shift(t.Value, d, c), Body: shift(t.Body, d, c+1)}
	case *expr.Eq:
		return &expr.Eq{Lhs: shift(t.Lhs, d, c), Rhs: shift(t.Rhs, d, c)}
	default:
		return e
	}
}
