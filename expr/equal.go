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

// Equal reports whether a and b are the same term up to structure — the
// minimal notion of "the reified terms are identical" spec.md's Eq case
// needs, and the fast path is_convertible_core tries before falling back
// to normalization.
func Equal(a, b Expr) bool {
	if a == b {
		return true
	}
	switch at := a.(type) {
	case *Var:
		bt, ok := b.(*Var)
		return ok && at.Index == bt.Index
	case *Const:
		bt, ok := b.(*Const)
		return ok && at.Name == bt.Name
	case *Sort:
		bt, ok := b.(*Sort)
		return ok && at.U == bt.U
	case *ValueExpr:
		bt, ok := b.(*ValueExpr)
		return ok && at.V.Equal(bt.V)
	case *App:
		bt, ok := b.(*App)
		if !ok || len(at.Args) != len(bt.Args) || !Equal(at.Fun, bt.Fun) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *Lambda:
		bt, ok := b.(*Lambda)
		return ok && Equal(at.Domain, bt.Domain) && Equal(at.Body, bt.Body)
	case *Pi:
		bt, ok := b.(*Pi)
		return ok && Equal(at.Domain, bt.Domain) && Equal(at.Body, bt.Body)
	case *Let:
		bt, ok := b.(*Let)
		return ok && Equal(at.Value, bt.Value) && Equal(at.Body, bt.Body)
	case *Eq:
		bt, ok := b.(*Eq)
		return ok && Equal(at.Lhs, bt.Lhs) && Equal(at.Rhs, bt.Rhs)
	default:
		return false
	}
}
