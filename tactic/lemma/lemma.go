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

// Package lemma is the lemma index of spec.md §4.3: candidate lemmas kept
// in insertion order per head symbol, so try_lemmas explores them
// deterministically.
package lemma

import (
	"github.com/pkg/errors"

	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/kernelerr"
	"github.com/dtcore/dtcore/normalizer"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Lemma is a candidate for backward chaining: a Pi-telescope whose final
// conclusion the engine tries to unify against the current goal.
type Lemma struct {
	// Name identifies the lemma for tracing (trace.EventTrying).
	Name string
	// Statement is the lemma's full type, e.g. ∀ x y, P x -> Q x y -> R x y.
	Statement expr.Expr
}

// Index maps a conclusion's head symbol to the lemmas that might prove it,
// grounded on the C++ backward_chaining engine's
// `std::unordered_map<name, list<expr>> m_lemmas` keyed by
// `head_index(conclusion)`.
type Index struct {
	byHead map[string][]Lemma
}

// NewIndex builds an empty lemma index.
func NewIndex() *Index {
	return &Index{byHead: map[string][]Lemma{}}
}

// Insert adds a lemma, indexed under the head symbol of its conclusion
// (the codomain reached by stripping every Pi in its telescope).
func (idx *Index) Insert(l Lemma) {
	head, ok := normalizer.HeadIndex(conclusion(l.Statement))
	if !ok {
		return
	}
	idx.byHead[head] = append(idx.byHead[head], l)
}

// Find returns the lemmas indexed under head, in insertion order.
func (idx *Index) Find(head string) []Lemma {
	return idx.byHead[head]
}

// Clone returns an independent copy of idx: a fresh index seeded with the
// same lemmas, whose later inserts never write back into idx. Mirrors the
// original engine's own constructor, which builds a new
// backward_lemma_index from the ambient context on every invocation rather
// than reusing one across calls.
func (idx *Index) Clone() *Index {
	clone := &Index{byHead: make(map[string][]Lemma, len(idx.byHead))}
	for head, lemmas := range idx.byHead {
		clone.byHead[head] = append([]Lemma(nil), lemmas...)
	}
	return clone
}

// InsertAll seeds the index from the extra_lemmas list of spec.md §4.4.
// Each statement is independent, so a malformed one (no discoverable
// head symbol — e.g. a bare universe or built-in value as a
// "conclusion") does not stop the rest from being indexed; every such
// failure is collected and reported together.
func (idx *Index) InsertAll(lemmas []Lemma) error {
	var errs kernelerr.Errors
	for _, l := range lemmas {
		head, ok := normalizer.HeadIndex(conclusion(l.Statement))
		if !ok {
			errs.Append(errors.Errorf("extra lemma %q has no head symbol to index on", l.Name))
			continue
		}
		idx.byHead[head] = append(idx.byHead[head], l)
	}
	return errs.ErrOrNil()
}

// Heads returns every indexed head symbol, sorted, for diagnostics —
// grounded on the same golang.org/x/exp/maps + slices idiom used by
// Environment.Objects.
func (idx *Index) Heads() []string {
	heads := maps.Keys(idx.byHead)
	slices.Sort(heads)
	return heads
}

// conclusion strips the outer Pi telescope off a lemma statement, keeping
// only the final codomain that HeadIndex is applied to.
func conclusion(e expr.Expr) expr.Expr {
	for {
		pi, ok := e.(*expr.Pi)
		if !ok {
			return e
		}
		e = pi.Body
	}
}
