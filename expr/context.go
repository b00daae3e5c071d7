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

package expr

import "github.com/pkg/errors"

// ContextEntry is one free or let-bound variable above the term being
// normalized.
type ContextEntry struct {
	Name string
	Type Expr
	// Body is non-nil for a let-bound entry.
	Body Expr
}

// HasBody reports whether the entry is let-bound.
func (e ContextEntry) HasBody() bool { return e.Body != nil }

// Context is a persistent, singly-linked sequence of ContextEntry, indexed
// from the innermost entry outwards: index 0 is the most recently
// introduced entry.
// Persistence makes save/restore around binder descents O(1).
type Context struct {
	node *ctxNode
}

type ctxNode struct {
	entry ContextEntry
	prev  *ctxNode
	size  int
}

// Extend returns a new context with entry pushed as the new innermost
// element.
func (c Context) Extend(entry ContextEntry) Context {
	size := 1
	if c.node != nil {
		size = c.node.size + 1
	}
	return Context{node: &ctxNode{entry: entry, prev: c.node, size: size}}
}

// Size returns the number of entries in the context.
func (c Context) Size() int {
	if c.node == nil {
		return 0
	}
	return c.node.size
}

// Eq reports whether two contexts are the same persistent chain: used by
// the normalizer to decide whether a context switch actually occurred.
func (c Context) Eq(other Context) bool {
	return c.node == other.node
}

// LookupExt returns the entry at index j together with the prefix context
// that was active when that entry was introduced — the scope its own
// Type/Body must be normalized in.
func (c Context) LookupExt(j int) (ContextEntry, Context, error) {
	n := c.node
	for i := 0; n != nil; i++ {
		if i == j {
			return n.entry, Context{node: n.prev}, nil
		}
		n = n.prev
	}
	return ContextEntry{}, Context{}, errors.Errorf("context index %d out of range (size %d)", j, c.Size())
}
