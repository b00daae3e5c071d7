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

// IsConvertible decides up-to-reduction convertibility: it tries the fast
// structural check first, falling back to normalizing both sides and
// retrying only if that fails.
func (n *Normalizer) IsConvertible(expected, given expr.Expr, ctx expr.Context) (bool, error) {
	if isConvertibleCore(expected, given) {
		return true, nil
	}
	n.setCtx(ctx)
	k := n.ctx.Size()
	ev, err := n.norm(expected, Stack{}, k)
	if err != nil {
		return false, err
	}
	en, err := n.reify(ev, k)
	if err != nil {
		return false, err
	}
	gv, err := n.norm(given, Stack{}, k)
	if err != nil {
		return false, err
	}
	gn, err := n.reify(gv, k)
	if err != nil {
		return false, err
	}
	return isConvertibleCore(en, gn), nil
}

// isConvertibleCore is the structural convertibility check: pointer-fast
// equality, then cumulativity between Sorts, the Sort/Bool rule, and
// congruence through Pi when domains are syntactically equal — no
// sub-convertibility in the domain, deliberately (spec.md §9).
func isConvertibleCore(expected, given expr.Expr) bool {
	if expr.Equal(expected, given) {
		return true
	}
	e, g := expected, given
	for {
		if eSort, ok := e.(*expr.Sort); ok {
			if gSort, ok := g.(*expr.Sort); ok && eSort.U.IsGe(gSort.U) {
				return true
			}
			if expr.IsBoolType(g) {
				return true
			}
		}
		ePi, ok1 := e.(*expr.Pi)
		gPi, ok2 := g.(*expr.Pi)
		if ok1 && ok2 && expr.Equal(ePi.Domain, gPi.Domain) {
			e, g = ePi.Body, gPi.Body
			continue
		}
		return false
	}
}
