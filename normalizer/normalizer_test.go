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
	"errors"
	"testing"

	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/kernelerr"
	"github.com/dtcore/dtcore/options"
)

func mustNormalize(t *testing.T, n *Normalizer, e expr.Expr) expr.Expr {
	t.Helper()
	got, err := n.Normalize(e, expr.Context{})
	if err != nil {
		t.Fatalf("Normalize(%s): %v", expr.String(e), err)
	}
	return got
}

// TestSharedSubtermReuse normalizes an application whose two arguments are
// the same shared node: the second occurrence is served from the cache,
// and the visible result is identical to normalizing without any sharing.
func TestSharedSubtermReuse(t *testing.T) {
	n := New(expr.NewEnvironment(), options.NewRegistry())

	shared := &expr.App{Fun: expr.Plus(), Args: []expr.Expr{expr.Num(2), expr.Num(3)}}
	shared.SetShared()

	// No lambda is involved: the expression references the exact same
	// *App pointer twice, as a construction layer would when two sibling
	// nodes point at one shared subterm.
	e := &expr.App{Fun: expr.Plus(), Args: []expr.Expr{shared, shared}}

	got := mustNormalize(t, n, e)
	num, ok := expr.AsValue(got)
	if !ok {
		t.Fatalf("result %s is not a Value", expr.String(got))
	}
	nv, ok := num.(expr.NumValue)
	if !ok || nv.N != 10 {
		t.Fatalf("got %v, want NumValue{10}", num)
	}
}

// TestDeltaGuardedByOpacity covers spec.md §8 scenario 2: a non-opaque
// definition unfolds, an opaque one does not.
func TestDeltaGuardedByOpacity(t *testing.T) {
	body := &expr.Lambda{Domain: expr.BoolType(), Body: &expr.Var{Index: 0}}
	env := expr.NewEnvironment(
		expr.Definition("id", body, false),
		expr.Definition("opaqueId", body, true),
	)
	n := New(env, options.NewRegistry())

	got := mustNormalize(t, n, &expr.Const{Name: "id"})
	if _, ok := got.(*expr.Lambda); !ok {
		t.Fatalf("id should unfold to a Lambda, got %s", expr.String(got))
	}

	got = mustNormalize(t, n, &expr.Const{Name: "opaqueId"})
	c, ok := got.(*expr.Const)
	if !ok || c.Name != "opaqueId" {
		t.Fatalf("opaqueId should stay folded, got %s", expr.String(got))
	}
}

// TestLetHoisting covers spec.md §8 scenario 3: both occurrences of a
// let-bound variable see the same value without re-evaluating its
// defining expression from scratch.
func TestLetHoisting(t *testing.T) {
	n := New(expr.NewEnvironment(), options.NewRegistry())

	body := &expr.App{Fun: expr.Plus(), Args: []expr.Expr{
		&expr.Var{Index: 0}, &expr.Var{Index: 0},
	}}
	e := &expr.Let{Value: expr.Num(3), Body: body}

	got := mustNormalize(t, n, e)
	v, ok := expr.AsValue(got)
	if !ok {
		t.Fatalf("result %s is not a Value", expr.String(got))
	}
	nv, ok := v.(expr.NumValue)
	if !ok || nv.N != 6 {
		t.Fatalf("got %v, want NumValue{6}", v)
	}
}

// TestEqDecidesGroundValues exercises the Eq special case: two sides that
// reduce to ground values (directly or through an arithmetic application)
// compare decidably to a boolean, true when equal and false otherwise.
func TestEqDecidesGroundValues(t *testing.T) {
	n := New(expr.NewEnvironment(), options.NewRegistry())

	eq := &expr.Eq{Lhs: expr.Num(4), Rhs: &expr.App{Fun: expr.Plus(), Args: []expr.Expr{expr.Num(2), expr.Num(2)}}}
	got := mustNormalize(t, n, eq)
	v, ok := expr.AsValue(got)
	if !ok {
		t.Fatalf("result %s is not a Value", expr.String(got))
	}
	if b, ok := v.(expr.BoolValue); !ok || !b.B {
		t.Fatalf("4 = 2+2 should normalize to true, got %v", v)
	}

	neq := &expr.Eq{Lhs: expr.Num(4), Rhs: expr.Num(5)}
	got = mustNormalize(t, n, neq)
	v, ok = expr.AsValue(got)
	if !ok {
		t.Fatalf("result %s is not a Value", expr.String(got))
	}
	if b, ok := v.(expr.BoolValue); !ok || b.B {
		t.Fatalf("4 = 5 should normalize to false, got %v", v)
	}
}

// TestIsConvertibleSortCumulativity exercises universe cumulativity and
// the Sort/Bool special rule.
func TestIsConvertibleSortCumulativity(t *testing.T) {
	n := New(expr.NewEnvironment(), options.NewRegistry())

	ok, err := n.IsConvertible(&expr.Sort{U: expr.Nat(1)}, &expr.Sort{U: expr.Nat(0)}, expr.Context{})
	if err != nil {
		t.Fatalf("IsConvertible: %v", err)
	}
	if !ok {
		t.Fatal("Sort 1 should be convertible with the smaller Sort 0")
	}

	ok, err = n.IsConvertible(&expr.Sort{U: expr.Nat(0)}, &expr.Sort{U: expr.Nat(1)}, expr.Context{})
	if err != nil {
		t.Fatalf("IsConvertible: %v", err)
	}
	if ok {
		t.Fatal("Sort 0 should not be convertible with the larger Sort 1")
	}

	ok, err = n.IsConvertible(&expr.Sort{U: expr.Nat(0)}, expr.BoolType(), expr.Context{})
	if err != nil {
		t.Fatalf("IsConvertible: %v", err)
	}
	if !ok {
		t.Fatal("any Sort should be convertible with the built-in Bool type")
	}
}

// TestDepthExceeded covers spec.md §8 scenario 6: normalization aborts
// with a DepthExceeded error rather than looping forever.
func TestDepthExceeded(t *testing.T) {
	opts := options.NewRegistry()
	opts.Set(options.NormalizerMaxDepth, 4)
	n := New(expr.NewEnvironment(), opts)

	deep := expr.Expr(expr.Num(0))
	for i := 0; i < 50; i++ {
		deep = &expr.App{Fun: expr.Plus(), Args: []expr.Expr{deep, expr.Num(1)}}
	}

	_, err := n.Normalize(deep, expr.Context{})
	if err == nil {
		t.Fatal("expected a depth-exceeded error")
	}
	var depthErr *kernelerr.DepthExceeded
	if !errors.As(err, &depthErr) {
		t.Fatalf("expected kernelerr.DepthExceeded, got %v", err)
	}
}

// TestInterrupted covers cooperative cancellation: once SetInterrupt(true)
// is observed, Normalize aborts with an Interrupted error.
func TestInterrupted(t *testing.T) {
	n := New(expr.NewEnvironment(), options.NewRegistry())
	n.SetInterrupt(true)

	_, err := n.Normalize(expr.Num(1), expr.Context{})
	if err == nil {
		t.Fatal("expected an interrupted error")
	}
	var interrupted kernelerr.Interrupted
	if !errors.As(err, &interrupted) {
		t.Fatalf("expected kernelerr.Interrupted, got %v", err)
	}
}
