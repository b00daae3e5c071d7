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

import "strconv"

// Value is an opaque built-in carrying its own reduction rule. The
// normalizer calls Normalize once every argument of an application has
// been normalized and reified; a false result means "not yet reducible at
// these arguments", which is not an error.
//
// Normalize is called with the value itself as args[0] (already reified
// as the head of the application) followed by the reified arguments, so
// that a value acting as a curried built-in operator can decide whether
// it has received enough operands yet.
type Value interface {
	// Normalize attempts to reduce an application whose head is this
	// value. It must be pure, total and free of side effects.
	Normalize(args []Expr) (Expr, bool)

	// Equal reports whether this value and other denote the same ground
	// value, used by Eq's decidable case.
	Equal(other Value) bool

	// String returns a debug representation.
	String() string
}

// AsValue extracts the Value carried by e, if e is a ValueExpr.
func AsValue(e Expr) (Value, bool) {
	v, ok := e.(*ValueExpr)
	if !ok {
		return nil, false
	}
	return v.V, true
}

// NewValue wraps a Value as an expression.
func NewValue(v Value) Expr { return &ValueExpr{V: v} }

// BoolTypeName is the name of the distinguished built-in Bool type that
// any Sort is convertible with in the expected position.
const BoolTypeName = "Bool"

// BoolType is the built-in Bool type expression.
func BoolType() Expr { return &Const{Name: BoolTypeName} }

// IsBoolType reports whether e is the distinguished built-in Bool type.
func IsBoolType(e Expr) bool {
	c, ok := e.(*Const)
	return ok && c.Name == BoolTypeName
}

// BoolValue is a ground boolean built-in.
type BoolValue struct{ B bool }

// TrueValue and FalseValue are the two ground booleans Eq's decidable case
// produces.
func TrueValue() Expr  { return NewValue(BoolValue{B: true}) }
func FalseValue() Expr { return NewValue(BoolValue{B: false}) }

// Normalize implements Value: a boolean is already a normal form and is
// never itself an applicable head.
func (BoolValue) Normalize([]Expr) (Expr, bool) { return nil, false }

// Equal implements Value.
func (b BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && o.B == b.B
}

func (b BoolValue) String() string {
	if b.B {
		return "true"
	}
	return "false"
}

// NumValue is a ground integer built-in, the leaf argument of the
// arithmetic operator values below.
type NumValue struct{ N int64 }

// Num builds a numeral expression.
func Num(n int64) Expr { return NewValue(NumValue{N: n}) }

// Normalize implements Value: a numeral is already a normal form.
func (NumValue) Normalize([]Expr) (Expr, bool) { return nil, false }

// Equal implements Value.
func (n NumValue) Equal(other Value) bool {
	o, ok := other.(NumValue)
	return ok && o.N == n.N
}

func (n NumValue) String() string { return strconv.FormatInt(n.N, 10) }

// arithOp is a curried built-in binary operator value: it reduces only
// once applied to itself plus exactly two ground NumValue operands,
// mirroring the teacher's own scalar-algebra reduction rules in
// build/ir/eval.go (evalBinaryAlgebraVals/evalBinaryIntegerVals).
type arithOp struct {
	name string
	fn   func(x, y int64) (int64, bool)
}

func (op arithOp) Normalize(args []Expr) (Expr, bool) {
	if len(args) != 3 {
		return nil, false
	}
	x, ok := AsValue(args[1])
	if !ok {
		return nil, false
	}
	y, ok := AsValue(args[2])
	if !ok {
		return nil, false
	}
	xn, ok := x.(NumValue)
	if !ok {
		return nil, false
	}
	yn, ok := y.(NumValue)
	if !ok {
		return nil, false
	}
	r, ok := op.fn(xn.N, yn.N)
	if !ok {
		return nil, false
	}
	return Num(r), true
}

func (op arithOp) Equal(other Value) bool {
	o, ok := other.(arithOp)
	return ok && o.name == op.name
}

func (op arithOp) String() string { return op.name }

// Plus, Minus, Times and Div are the built-in curried arithmetic operator
// values. Div returns "not reducible" on division by zero rather than
// failing, per the Value contract's totality requirement.
func Plus() Expr  { return NewValue(arithOp{name: "+", fn: func(x, y int64) (int64, bool) { return x + y, true }}) }
func Minus() Expr { return NewValue(arithOp{name: "-", fn: func(x, y int64) (int64, bool) { return x - y, true }}) }
func Times() Expr { return NewValue(arithOp{name: "*", fn: func(x, y int64) (int64, bool) { return x * y, true }}) }
func Div() Expr {
	return NewValue(arithOp{name: "/", fn: func(x, y int64) (int64, bool) {
		if y == 0 {
			return 0, false
		}
		return x / y, true
	}})
}
