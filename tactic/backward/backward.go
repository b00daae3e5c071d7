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

// Package backward is the backward-chaining proof search engine of
// spec.md §4.4: a goal stack driven to empty by trying indexed lemmas
// against the main goal's head symbol, falling back to a caller-supplied
// leaf tactic, and backtracking through a choice-point stack on failure.
package backward

import (
	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/kernelerr"
	"github.com/dtcore/dtcore/normalizer"
	"github.com/dtcore/dtcore/options"
	"github.com/dtcore/dtcore/tactic/apply"
	"github.com/dtcore/dtcore/tactic/lemma"
	"github.com/dtcore/dtcore/tactic/state"
	"github.com/dtcore/dtcore/trace"
)

// TransparencyMode names how eagerly definitions may be unfolded,
// mirroring the C++ engine's transparency_mode parameter to
// mk_type_context_for. The engine accepts it in Config.Mode but does not
// read it: every mode behaves like All, since goal targets are always
// normalized with every non-opaque definition unfoldable.
type TransparencyMode int

const (
	// Reducible names unfolding of definitions marked reducible only.
	// Object carries no reducibility annotation, so this mode is not
	// distinguished from All.
	Reducible TransparencyMode = iota
	// Instances names unfolding of definitions used for instance
	// resolution; it is not distinguished from All either.
	Instances
	// All unfolds every non-opaque definition.
	All
)

// LeafTactic discharges a single goal directly, without consulting the
// lemma index — the caller-supplied fallback of spec.md §4.4 step 4. It
// returns the state to continue from and whether it succeeded; a false
// result must leave engine state untouched; the caller does not consult
// the returned state in that case.
type LeafTactic func(single state.State) (state.State, bool)

// Config bundles the tunables of spec.md §6: transparency, whether to
// auto-discharge premises using existing environment objects, the
// caller's leaf tactic and any extra lemmas beyond the ambient index.
type Config struct {
	Mode         TransparencyMode
	UseInstances bool
	Leaf         LeafTactic
	ExtraLemmas  []lemma.Lemma
}

// choice is one entry of the choice-point stack: the state to resume
// from and the remaining, not-yet-tried lemmas at that point.
type choice struct {
	state  state.State
	lemmas []lemma.Lemma
}

// engine is the unexported per-invocation instance; Run is the only
// entry point external callers use.
type engine struct {
	env      *expr.Environment
	norm     *normalizer.Normalizer
	lemmas   *lemma.Index
	cfg      Config
	sink     trace.Sink
	maxDepth uint

	applier apply.Applier
	state   state.State
	choices []choice
}

// Run executes the backward-chaining search described in spec.md §4.4
// against initial, returning the state with its main goal closed (and
// any sibling goals it started with untouched) or the fixed
// kernelerr.NewBackChainingFailed error on exhaustion.
func Run(env *expr.Environment, norm *normalizer.Normalizer, lemmas *lemma.Index,
	opts *options.Registry, sink trace.Sink, cfg Config, initial state.State) (state.State, error) {

	goal, ok := initial.MainGoalDecl()
	if !ok {
		return state.State{}, kernelerr.NewNoGoals()
	}
	if sink == nil {
		sink = trace.Discard
	}
	e := &engine{
		env:      env,
		norm:     norm,
		lemmas:   lemmas.Clone(),
		cfg:      cfg,
		sink:     sink,
		maxDepth: opts.GetUnsigned(options.BackChainingMaxDepth),
	}
	e.applier = apply.NewMatcher(&apply.Context{Env: env, Norm: norm, UseInstances: cfg.UseInstances})
	if err := e.lemmas.InsertAll(cfg.ExtraLemmas); err != nil {
		return state.State{}, err
	}

	rest := initial.Goals()[1:]
	e.state = state.New(initial.MCtx, goal)
	ok, err := e.run()
	if err != nil {
		return state.State{}, err
	}
	if !ok {
		return state.State{}, kernelerr.NewBackChainingFailed(initial)
	}
	final := append([]state.Goal{}, e.state.Goals()...)
	final = append(final, rest...)
	return initial.SetGoals(final), nil
}

// run is the fixpoint loop of the C++ back_chaining_fn::run: report
// success on an empty goal list, backtrack past the depth cap, else try
// the indexed lemmas for the main goal's head symbol or fall back to the
// leaf tactic.
func (e *engine) run() (bool, error) {
	for {
		e.sink.Trace(trace.Event{Kind: trace.EventState, Depth: len(e.choices), Text: e.state.Pretty()})
		if len(e.state.Goals()) == 0 {
			return true, nil
		}
		if uint(len(e.choices)) >= e.maxDepth {
			e.sink.Trace(trace.Event{Kind: trace.EventMaxDepth, Depth: len(e.choices), Text: e.state.Pretty()})
			ok, err := e.backtrack()
			if err != nil || !ok {
				return false, err
			}
			continue
		}
		// MainGoalDecl only fails on an empty goal list, already handled above.
		goal, _ := e.state.MainGoalDecl()
		target, err := e.norm.Whnf(goal.Target, goal.Ctx)
		if err != nil {
			return false, err
		}
		head, hasHead := normalizer.HeadIndex(target)
		var candidates []lemma.Lemma
		if hasHead {
			candidates = e.lemmas.Find(head)
		}
		if len(candidates) == 0 {
			if e.invokeLeafTactic() {
				continue
			}
			ok, err := e.backtrack()
			if err != nil || !ok {
				return false, err
			}
			continue
		}
		ok, err := e.tryLemmas(candidates)
		if err != nil {
			return false, err
		}
		if !ok {
			ok, err := e.backtrack()
			if err != nil || !ok {
				return false, err
			}
		}
	}
}

// invokeLeafTactic mirrors invoke_leaf_tactic: run the caller's tactic
// on a state holding only the main goal, then splice its resulting
// goals back in front of the remaining goals.
func (e *engine) invokeLeafTactic() bool {
	if e.cfg.Leaf == nil {
		return false
	}
	goals := e.state.Goals()
	single := state.New(e.state.MCtx, goals[0])
	newSingle, ok := e.cfg.Leaf(single)
	if !ok {
		return false
	}
	e.state = e.state.SetGoals(append(append([]state.Goal{}, newSingle.Goals()...), goals[1:]...))
	return true
}

// tryLemmas mirrors try_lemmas: walk the candidate list in order,
// pushing a choice point for the untried remainder the first time a
// lemma succeeds, so backtrack can resume past it later.
func (e *engine) tryLemmas(lemmas []lemma.Lemma) (bool, error) {
	for i, l := range lemmas {
		e.sink.Trace(trace.Event{Kind: trace.EventTrying, Depth: len(e.choices), Text: l.Name})
		goals := e.state.Goals()
		subgoals, ok, err := e.applier.Apply(l, goals[0])
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		e.sink.Trace(trace.Event{Kind: trace.EventSucceed, Depth: len(e.choices)})
		if rest := lemmas[i+1:]; len(rest) > 0 {
			e.choices = append(e.choices, choice{state: e.state, lemmas: rest})
		}
		e.state = e.state.SetGoals(append(append([]state.Goal{}, subgoals...), goals[1:]...))
		return true, nil
	}
	return false, nil
}

// backtrack mirrors backtrack: pop choice points until one of their
// remaining lemma lists succeeds, or the stack is exhausted.
func (e *engine) backtrack() (bool, error) {
	for len(e.choices) > 0 {
		top := e.choices[len(e.choices)-1]
		e.choices = e.choices[:len(e.choices)-1]
		e.sink.Trace(trace.Event{Kind: trace.EventBacktracking, Depth: len(e.choices)})
		e.state = top.state
		ok, err := e.tryLemmas(top.lemmas)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
