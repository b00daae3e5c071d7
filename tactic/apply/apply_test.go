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

package apply

import (
	"testing"

	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/normalizer"
	"github.com/dtcore/dtcore/options"
	"github.com/dtcore/dtcore/tactic/lemma"
	"github.com/dtcore/dtcore/tactic/state"
)

func newMatcher(t *testing.T, env *expr.Environment, useInstances bool) *Matcher {
	t.Helper()
	norm := normalizer.New(env, options.NewRegistry())
	return NewMatcher(&Context{Env: env, Norm: norm, UseInstances: useInstances})
}

func TestApplyNonDependentPremise(t *testing.T) {
	m := newMatcher(t, expr.NewEnvironment(expr.Axiom("P"), expr.Axiom("Q")), false)
	l := lemma.Lemma{Name: "qFromP", Statement: &expr.Pi{
		Domain: &expr.Const{Name: "P"},
		Body:   &expr.Const{Name: "Q"},
	}}
	goal := state.Goal{Target: &expr.Const{Name: "Q"}}

	subgoals, ok, err := m.Apply(l, goal)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ok {
		t.Fatal("expected the lemma to match the goal's conclusion")
	}
	if len(subgoals) != 1 {
		t.Fatalf("got %d subgoals, want 1", len(subgoals))
	}
	c, ok := subgoals[0].Target.(*expr.Const)
	if !ok || c.Name != "P" {
		t.Fatalf("subgoal target = %v, want Const P", subgoals[0].Target)
	}
}

func TestApplyConclusionMismatch(t *testing.T) {
	m := newMatcher(t, expr.NewEnvironment(expr.Axiom("P"), expr.Axiom("Q"), expr.Axiom("R")), false)
	l := lemma.Lemma{Name: "qFromP", Statement: &expr.Pi{
		Domain: &expr.Const{Name: "P"},
		Body:   &expr.Const{Name: "Q"},
	}}
	goal := state.Goal{Target: &expr.Const{Name: "R"}}

	_, ok, err := m.Apply(l, goal)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if ok {
		t.Fatal("a lemma concluding Q should not match a goal of R")
	}
}

func TestApplyRejectsDependentPremise(t *testing.T) {
	m := newMatcher(t, expr.NewEnvironment(), false)
	// ∀ (x : P), x — the conclusion depends on the premise's witness.
	l := lemma.Lemma{Name: "dependent", Statement: &expr.Pi{
		Domain: &expr.Const{Name: "P"},
		Body:   &expr.Var{Index: 0},
	}}
	goal := state.Goal{Target: &expr.Const{Name: "Q"}}

	_, ok, err := m.Apply(l, goal)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if ok {
		t.Fatal("a lemma with a dependent premise should not be usable by this matcher")
	}
}

func TestApplyUseInstancesDischargesPremise(t *testing.T) {
	env := expr.NewEnvironment(
		expr.Axiom("P"),
		expr.Axiom("Q"),
		expr.Object{Name: "pProof", Type: &expr.Const{Name: "P"}},
	)
	m := newMatcher(t, env, true)
	l := lemma.Lemma{Name: "qFromP", Statement: &expr.Pi{
		Domain: &expr.Const{Name: "P"},
		Body:   &expr.Const{Name: "Q"},
	}}
	goal := state.Goal{Target: &expr.Const{Name: "Q"}}

	subgoals, ok, err := m.Apply(l, goal)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ok {
		t.Fatal("expected the lemma to match")
	}
	if len(subgoals) != 0 {
		t.Fatalf("got %d subgoals, want 0 — the premise should have been discharged by instance search", len(subgoals))
	}
}
