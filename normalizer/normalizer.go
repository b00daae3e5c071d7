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
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/dtcore/dtcore/expr"
	"github.com/dtcore/dtcore/kernelerr"
	"github.com/dtcore/dtcore/options"
)

// Normalizer reduces expressions to normal form and decides convertibility.
// It owns one environment reference, one mutable context slot and one
// mutable cache; it must not be entered reentrantly — nested calls are
// supported only through the internal save/restore discipline that
// stashes and later restores the context and clears the cache.
type Normalizer struct {
	env      *expr.Environment
	ctx      expr.Context
	cache    *cache
	maxDepth uint
	depth    uint

	// interrupted is the cooperative cancellation flag. It is an
	// atomic.Bool, the idiomatic Go substitute for the original kernel's
	// `volatile bool`, which is not a valid cross-goroutine
	// synchronization primitive in Go.
	interrupted atomic.Bool
}

// New builds a Normalizer over env, reading kernel.normalizer.max_depth
// from opts (or its registered default if opts is nil).
func New(env *expr.Environment, opts *options.Registry) *Normalizer {
	return &Normalizer{
		env:      env,
		cache:    newCache(),
		maxDepth: opts.GetUnsigned(options.NormalizerMaxDepth),
	}
}

// Normalize returns the normal form of e in ctx.
func (n *Normalizer) Normalize(e expr.Expr, ctx expr.Context) (expr.Expr, error) {
	n.setCtx(ctx)
	k := n.ctx.Size()
	v, err := n.norm(e, Stack{}, k)
	if err != nil {
		return nil, err
	}
	return n.reify(v, k)
}

// Clear resets the context to empty and drops the cache.
func (n *Normalizer) Clear() {
	n.ctx = expr.Context{}
	n.cache.clear()
}

// SetInterrupt sets or clears the cooperative cancellation flag. Safe to
// call from another goroutine; the normalizer polls it on every recursive
// entry.
func (n *Normalizer) SetInterrupt(flag bool) {
	n.interrupted.Store(flag)
}

// setCtx switches the active context, clearing the cache whenever the
// context actually changed — SValues reference the stack active at
// construction and are not portable across contexts.
func (n *Normalizer) setCtx(ctx expr.Context) {
	if !n.ctx.Eq(ctx) {
		n.ctx = ctx
		n.cache.clear()
	}
}

// norm normalizes a in a context composed of stack s and k binders.
func (n *Normalizer) norm(a expr.Expr, s Stack, k int) (SValue, error) {
	n.depth++
	defer func() { n.depth-- }()
	if n.interrupted.Load() {
		return SValue{}, kernelerr.NewInterrupted()
	}
	if n.depth > n.maxDepth {
		return SValue{}, kernelerr.NewDepthExceeded(n.env, n.depth)
	}

	shared := a.IsShared()
	if shared {
		if v, ok := n.cache.find(a); ok {
			return v, nil
		}
	}

	r, err := n.normCase(a, s, k)
	if err != nil {
		return SValue{}, err
	}
	if shared {
		n.cache.insert(a, r)
	}
	return r, nil
}

func (n *Normalizer) normCase(a expr.Expr, s Stack, k int) (SValue, error) {
	switch t := a.(type) {
	case *expr.Var:
		return n.lookupVar(s, t.Index, k)
	case *expr.Const:
		if expr.IsBoolType(t) {
			return ExprV(a), nil
		}
		obj, err := n.env.Get(t.Name)
		if err != nil {
			return SValue{}, err
		}
		if obj.Unfoldable() {
			return n.norm(obj.Value, Stack{}, 0)
		}
		return ExprV(a), nil
	case *expr.Sort, *expr.ValueExpr:
		return ExprV(a), nil
	case *expr.Lambda:
		return ClosV(a, s), nil
	case *expr.Pi:
		return n.normPi(t, s, k)
	case *expr.Let:
		return n.normLet(t, s, k)
	case *expr.Eq:
		return n.normEq(t, s, k)
	case *expr.App:
		return n.normApp(t, s, k)
	default:
		return SValue{}, errors.Errorf("normalizer: unsupported expression type %T", a)
	}
}

// lookupVar resolves a De Bruijn index against the stack, falling back to
// the outer context when the index walks off the stack.
func (n *Normalizer) lookupVar(s Stack, i, k int) (SValue, error) {
	if v, ok := s.At(i); ok {
		return v, nil
	}
	j := i - s.Len()
	entry, prefix, err := n.ctx.LookupExt(j)
	if err != nil {
		return SValue{}, err
	}
	if !entry.HasBody() {
		return BVarV(prefix.Size()), nil
	}
	// save_context: substitute the prefix context and a fresh cache,
	// normalize the entry's own body in its own scope, then restore —
	// values in one context are not portable to another.
	savedCtx, savedCache := n.ctx, n.cache
	n.ctx = prefix
	n.cache = newCache()
	kk := n.ctx.Size()
	v, err := n.norm(entry.Body, Stack{}, kk)
	var result SValue
	if err == nil {
		var reified expr.Expr
		reified, err = n.reify(v, kk)
		if err == nil {
			result = ExprV(reified)
		}
	}
	n.ctx, n.cache = savedCtx, savedCache
	return result, err
}

func (n *Normalizer) normPi(a *expr.Pi, s Stack, k int) (SValue, error) {
	tv, err := n.norm(a.Domain, s, k)
	if err != nil {
		return SValue{}, err
	}
	newT, err := n.reify(tv, k)
	if err != nil {
		return SValue{}, err
	}
	n.cache.pushScope()
	bv, err := n.norm(a.Body, s.Extend(BVarV(k)), k+1)
	n.cache.popScope()
	if err != nil {
		return SValue{}, err
	}
	newB, err := n.reify(bv, k+1)
	if err != nil {
		return SValue{}, err
	}
	return ExprV(&expr.Pi{Name: a.Name, Domain: newT, Body: newB}), nil
}

func (n *Normalizer) normLet(a *expr.Let, s Stack, k int) (SValue, error) {
	v, err := n.norm(a.Value, s, k)
	if err != nil {
		return SValue{}, err
	}
	n.cache.pushScope()
	r, err := n.norm(a.Body, s.Extend(v), k+1)
	n.cache.popScope()
	return r, err
}

func (n *Normalizer) normEq(a *expr.Eq, s Stack, k int) (SValue, error) {
	lv, err := n.norm(a.Lhs, s, k)
	if err != nil {
		return SValue{}, err
	}
	newL, err := n.reify(lv, k)
	if err != nil {
		return SValue{}, err
	}
	rv, err := n.norm(a.Rhs, s, k)
	if err != nil {
		return SValue{}, err
	}
	newR, err := n.reify(rv, k)
	if err != nil {
		return SValue{}, err
	}
	if expr.Equal(newL, newR) {
		return ExprV(expr.TrueValue()), nil
	}
	_, lok := expr.AsValue(newL)
	_, rok := expr.AsValue(newR)
	if lok && rok {
		return ExprV(expr.FalseValue()), nil
	}
	return ExprV(&expr.Eq{Lhs: newL, Rhs: newR}), nil
}

// normApp normalizes the function position once, then walks the argument
// spine: each step performs one beta reduction if the head is a closure,
// or reifies the head and remaining arguments and attempts a built-in
// Value reduction otherwise.
func (n *Normalizer) normApp(a *expr.App, s Stack, k int) (SValue, error) {
	f, err := n.norm(a.Fun, s, k)
	if err != nil {
		return SValue{}, err
	}
	args := a.Args
	for i := 0; i < len(args); {
		if !f.IsClosure() {
			return n.reduceValueHead(f, args[i:], s, k)
		}
		lam := f.Lambda()
		n.cache.pushScope()
		argV, err := n.norm(args[i], s, k)
		if err != nil {
			n.cache.popScope()
			return SValue{}, err
		}
		newS := f.Stack().Extend(argV)
		f, err = n.norm(lam.Body, newS, k)
		n.cache.popScope()
		if err != nil {
			return SValue{}, err
		}
		i++
	}
	return f, nil
}

// reduceValueHead reifies f and the remaining arguments and, if the head
// is a built-in Value, asks it to reduce; otherwise it returns the
// residual application.
func (n *Normalizer) reduceValueHead(f SValue, rest []expr.Expr, s Stack, k int) (SValue, error) {
	newF, err := n.reify(f, k)
	if err != nil {
		return SValue{}, err
	}
	newArgs := make([]expr.Expr, 0, len(rest)+1)
	newArgs = append(newArgs, newF)
	for _, a := range rest {
		av, err := n.norm(a, s, k)
		if err != nil {
			return SValue{}, err
		}
		ae, err := n.reify(av, k)
		if err != nil {
			return SValue{}, err
		}
		newArgs = append(newArgs, ae)
	}
	if v, ok := expr.AsValue(newF); ok {
		if m, ok := v.Normalize(newArgs); ok {
			if err := checkClosed(m, k); err != nil {
				return SValue{}, err
			}
			return n.norm(m, s, k)
		}
	}
	return ExprV(expr.NewApp(newF, newArgs[1:]...)), nil
}

// reify converts v back into an expression in a context with k binders.
func (n *Normalizer) reify(v SValue, k int) (expr.Expr, error) {
	switch v.kind {
	case kindExpr:
		return v.e, nil
	case kindBoundVar:
		return &expr.Var{Index: k - v.bvar - 1}, nil
	case kindClosure:
		return n.reifyClosure(v.e, v.stack, k)
	default:
		return nil, errors.Errorf("normalizer: unreachable svalue kind %d", v.kind)
	}
}

func (n *Normalizer) reifyClosure(lambda expr.Expr, s Stack, k int) (expr.Expr, error) {
	lam := lambda.(*expr.Lambda)
	domV, err := n.norm(lam.Domain, s, k)
	if err != nil {
		return nil, err
	}
	newT, err := n.reify(domV, k)
	if err != nil {
		return nil, err
	}
	bodyV, err := n.norm(lam.Body, s.Extend(BVarV(k)), k+1)
	if err != nil {
		return nil, err
	}
	newB, err := n.reify(bodyV, k+1)
	if err != nil {
		return nil, err
	}
	return &expr.Lambda{Name: lam.Name, Domain: newT, Body: newB}, nil
}
