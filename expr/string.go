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
	"fmt"
	"strconv"
	"strings"
)

// String returns a debug-oriented rendering of e, used by trace events and
// test failure messages — not a pretty-printer for surface syntax, which
// spec.md §1 explicitly leaves to an external collaborator.
func String(e Expr) string {
	switch t := e.(type) {
	case *Var:
		return "#" + strconv.Itoa(t.Index)
	case *Const:
		return t.Name
	case *Sort:
		return "Sort " + t.U.String()
	case *ValueExpr:
		return t.V.String()
	case *App:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = String(a)
		}
		return fmt.Sprintf("(%s %s)", String(t.Fun), strings.Join(parts, " "))
	case *Lambda:
		return fmt.Sprintf("(fun (%s : %s) => %s)", t.Name, String(t.Domain), String(t.Body))
	case *Pi:
		return fmt.Sprintf("(Pi (%s : %s), %s)", t.Name, String(t.Domain), String(t.Body))
	case *Let:
		return fmt.Sprintf("(let %s := %s in %s)", t.Name, String(t.Value), String(t.Body))
	case *Eq:
		return fmt.Sprintf("(%s = %s)", String(t.Lhs), String(t.Rhs))
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
