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

// cache is the normalizer's scoped map, keyed by pointer identity on
// shared expression nodes. It is a stack of map overlays: insert always
// writes to the innermost (top) overlay, find searches from innermost to
// outermost, and popScope discards exactly the entries a binder descent
// added — the Go idiomatic substitute for the teacher's C++ scoped_map
// template (same push/pop-scope shape as build/fmterr.Appender).
type cache struct {
	scopes []map[expr.Expr]SValue
}

func newCache() *cache {
	return &cache{scopes: []map[expr.Expr]SValue{make(map[expr.Expr]SValue)}}
}

// pushScope opens a fresh overlay, usable only for entries inserted while
// it is active.
func (c *cache) pushScope() {
	c.scopes = append(c.scopes, make(map[expr.Expr]SValue))
}

// popScope discards the innermost overlay and everything inserted in it.
func (c *cache) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// clear drops every overlay and starts over, used whenever the normalizer
// switches context.
func (c *cache) clear() {
	c.scopes = []map[expr.Expr]SValue{make(map[expr.Expr]SValue)}
}

// find searches every active overlay, innermost first.
func (c *cache) find(e expr.Expr) (SValue, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][e]; ok {
			return v, true
		}
	}
	return SValue{}, false
}

// insert writes to the innermost overlay.
func (c *cache) insert(e expr.Expr, v SValue) {
	c.scopes[len(c.scopes)-1][e] = v
}
