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

package normalizer

import "github.com/dtcore/dtcore/expr"

// Whnf computes a weak head normal form of e in ctx for the
// backward-chaining engine (spec.md §4.4 step 3). The elaborator's own
// type_context whnf is out of scope (spec.md §1); this kernel supplies it
// from the same closure machinery normalize uses. A full normal form is
// always also a valid weak head normal form — its head is certainly not a
// redex — so Whnf is implemented as Normalize; the engine only inspects
// the result through HeadIndex, so the extra reduction under binders and
// in argument position costs normalizer work but never changes the
// engine's behavior.
func (n *Normalizer) Whnf(e expr.Expr, ctx expr.Context) (expr.Expr, error) {
	return n.Normalize(e, ctx)
}

// HeadIndex extracts the head symbol spec.md §4.3's lemma index is keyed
// by: the outermost Const of a (weak-head-normalized) application, or of
// a bare constant.
func HeadIndex(e expr.Expr) (string, bool) {
	switch t := e.(type) {
	case *expr.Const:
		return t.Name, true
	case *expr.App:
		return HeadIndex(t.Fun)
	default:
		return "", false
	}
}
