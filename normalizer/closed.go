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

import (
	"github.com/pkg/errors"

	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/kernelerr"
)

// checkClosed resolves the open question in spec.md §9: a single-argument
// Value reduction is renormalized against the outer stack, which is only
// correct if the replacement term has no free De Bruijn variable beyond
// what depth k already binds. A well-behaved Value never triggers this;
// a user-supplied one that does is a kernel bug, not a candidate miss, so
// this fails loudly rather than silently reusing a wrong stack.
func checkClosed(m expr.Expr, k int) error {
	if maxFree := maxFreeIndex(m, 0); maxFree >= k {
		return kernelerr.Internal(errors.Errorf(
			"value reduction produced a term referencing De Bruijn index %d, not bound at depth %d", maxFree, k))
	}
	return nil
}

// maxFreeIndex returns the highest free-variable index in e once depth
// bound variables are discounted, or -1 if e has no free variable.
func maxFreeIndex(e expr.Expr, depth int) int {
	switch t := e.(type) {
	case *expr.Var:
		if t.Index >= depth {
			return t.Index - depth
		}
		return -1
	case *expr.App:
		m := maxFreeIndex(t.Fun, depth)
		for _, a := range t.Args {
			if v := maxFreeIndex(a, depth); v > m {
				m = v
			}
		}
		return m
	case *expr.Lambda:
		return max2(maxFreeIndex(t.Domain, depth), maxFreeIndex(t.Body, depth+1))
	case *expr.Pi:
		return max2(maxFreeIndex(t.Domain, depth), maxFreeIndex(t.Body, depth+1))
	case *expr.Let:
		return max2(maxFreeIndex(t.Value, depth), maxFreeIndex(t.Body, depth+1))
	case *expr.Eq:
		return max2(maxFreeIndex(t.Lhs, depth), maxFreeIndex(t.Rhs, depth))
	default:
		return -1
	}
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
