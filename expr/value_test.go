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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArithOpsTotal(t *testing.T) {
	plus, _ := AsValue(Plus())
	minus, _ := AsValue(Minus())
	times, _ := AsValue(Times())
	div, _ := AsValue(Div())

	cases := []struct {
		name string
		op   Value
		x, y int64
		want int64
		ok   bool
	}{
		{"add", plus, 2, 3, 5, true},
		{"sub", minus, 5, 3, 2, true},
		{"mul", times, 4, 3, 12, true},
		{"div", div, 9, 3, 3, true},
		{"div by zero", div, 9, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			args := []Expr{NewValue(c.op), Num(c.x), Num(c.y)}
			got, ok := c.op.Normalize(args)
			if ok != c.ok {
				t.Fatalf("Normalize ok = %v, want %v", ok, c.ok)
			}
			if !ok {
				return
			}
			gv, ok := AsValue(got)
			if !ok {
				t.Fatalf("result %v is not a Value", got)
			}
			gn, ok := gv.(NumValue)
			if !ok {
				t.Fatalf("result %v is not a NumValue", gv)
			}
			if diff := cmp.Diff(NumValue{N: c.want}, gn); diff != "" {
				t.Fatalf("NumValue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArithOpNotEnoughArgs(t *testing.T) {
	plus, _ := AsValue(Plus())
	if _, ok := plus.Normalize([]Expr{NewValue(plus), Num(1)}); ok {
		t.Fatal("Normalize with one operand should not reduce")
	}
}

func TestBoolValueEqual(t *testing.T) {
	if !(BoolValue{B: true}).Equal(BoolValue{B: true}) {
		t.Fatal("true should equal true")
	}
	if (BoolValue{B: true}).Equal(BoolValue{B: false}) {
		t.Fatal("true should not equal false")
	}
}

func TestIsBoolType(t *testing.T) {
	if !IsBoolType(BoolType()) {
		t.Fatal("BoolType() should report IsBoolType")
	}
	if IsBoolType(&Const{Name: "Nat"}) {
		t.Fatal("unrelated constant should not report IsBoolType")
	}
}
