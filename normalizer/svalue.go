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

// Package normalizer implements the call-by-need evaluator of spec.md
// §4.1: a stack machine over De Bruijn terms with explicit closures,
// giving normalize/is_convertible their call-by-need behavior without
// eager substitution under binders.
package normalizer

import "github.com/dtcore/dtcore/expr"

type svalueKind int

const (
	kindExpr svalueKind = iota
	kindBoundVar
	kindClosure
)

// SValue is a stack value: a residual expression, a bound variable pinned
// at a binder depth, or a suspended lambda together with the stack in
// force when it was suspended.
type SValue struct {
	kind  svalueKind
	e     expr.Expr
	bvar  int
	stack Stack
}

// ExprV wraps an already-normalized expression.
func ExprV(e expr.Expr) SValue { return SValue{kind: kindExpr, e: e} }

// BVarV pins a bound variable at binder-depth k (a level, not an index).
func BVarV(k int) SValue { return SValue{kind: kindBoundVar, bvar: k} }

// ClosV suspends a Lambda together with the stack active at suspension.
func ClosV(lambda expr.Expr, s Stack) SValue {
	return SValue{kind: kindClosure, e: lambda, stack: s}
}

// IsClosure reports whether v is a suspended lambda.
func (v SValue) IsClosure() bool { return v.kind == kindClosure }

// Lambda returns the suspended lambda expression; only valid if IsClosure.
func (v SValue) Lambda() *expr.Lambda { return v.e.(*expr.Lambda) }

// Stack returns the stack captured at suspension; only valid if IsClosure.
func (v SValue) Stack() Stack { return v.stack }

// stackNode is one cell of the immutable value stack.
type stackNode struct {
	v    SValue
	prev *stackNode
	size int
}

// Stack is an immutable singly-linked list of SValues, grown at the head
// when crossing binders. Index 0 is the innermost binder.
type Stack struct {
	node *stackNode
}

// Extend returns a new stack with v as the new innermost element.
func (s Stack) Extend(v SValue) Stack {
	size := 1
	if s.node != nil {
		size = s.node.size + 1
	}
	return Stack{node: &stackNode{v: v, prev: s.node, size: size}}
}

// Len returns the number of elements on the stack.
func (s Stack) Len() int {
	if s.node == nil {
		return 0
	}
	return s.node.size
}

// At returns the element at index i, or false if the stack has fewer than
// i+1 elements.
func (s Stack) At(i int) (SValue, bool) {
	n := s.node
	for n != nil {
		if i == 0 {
			return n.v, true
		}
		i--
		n = n.prev
	}
	return SValue{}, false
}
