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

// Package expr is the term model of the kernel: a De Bruijn indexed,
// dependently typed lambda calculus with global constants, universes,
// opaque built-in values and propositional equality.
//
// Terms are immutable once constructed and may be shared: a node reachable
// from more than one parent sets Shared, which is the only signal the
// normalizer uses to decide whether a sub-term is worth caching.
package expr

// Node marks a structure as belonging to the term model. It prevents
// external packages from adding new term variants.
type Node interface {
	node()
}

// Expr is a term of the calculus.
type Expr interface {
	Node

	// IsShared reports whether this node is reachable from more than one
	// parent in the term graph, making it eligible for cache lookups
	// during normalization.
	IsShared() bool
}

// base is embedded by every term variant to supply the sharing bit without
// repeating the field and its accessor on every case.
type base struct {
	// Shared is set by the (out of scope) construction layer when a node
	// is pointed to by more than one parent.
	Shared bool
}

func (base) node()            {}
func (b base) IsShared() bool { return b.Shared }

// SetShared marks a node as reachable from more than one parent. The
// construction layer that would normally set this while building a term
// graph is out of scope (spec.md §1); this setter lets a caller (or a
// test exercising the normalizer's cache) mark sharing explicitly on an
// already-built term.
func (b *base) SetShared() { b.Shared = true }

// Var is a bound variable identified by a De Bruijn index; index 0 refers
// to the innermost enclosing binder.
type Var struct {
	base
	Index int
}

// Const refers to a global object in the Environment by name.
type Const struct {
	base
	Name string
}

// Sort is a universe marker at level U.
type Sort struct {
	base
	U Level
}

// ValueExpr wraps an opaque built-in with its own reduction rule.
type ValueExpr struct {
	base
	V Value
}

// App is the application of Fun to one or more arguments. Args is never
// empty; a construction layer that would produce a zero-argument App must
// instead produce Fun directly.
type App struct {
	base
	Fun  Expr
	Args []Expr
}

// Lambda is a binder introducing Body under a value of type Domain.
type Lambda struct {
	base
	Name   string
	Domain Expr
	Body   Expr
}

// Pi is a dependent function type.
type Pi struct {
	base
	Name   string
	Domain Expr
	Body   Expr
}

// Let binds Value under Name for the extent of Body.
type Let struct {
	base
	Name  string
	Value Expr
	Body  Expr
}

// Eq is propositional equality between Lhs and Rhs, decidable when both
// sides reduce to ground Value terms.
type Eq struct {
	base
	Lhs Expr
	Rhs Expr
}

// NewApp builds an application, flattening a Fun that is itself an App so
// that App.Args is always the full, non-empty argument spine.
func NewApp(fun Expr, args ...Expr) Expr {
	if len(args) == 0 {
		return fun
	}
	if inner, ok := fun.(*App); ok {
		all := make([]Expr, 0, len(inner.Args)+len(args))
		all = append(all, inner.Args...)
		all = append(all, args...)
		return &App{Fun: inner.Fun, Args: all}
	}
	return &App{Fun: fun, Args: args}
}
