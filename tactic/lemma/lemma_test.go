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

package lemma

import (
	"testing"

	"github.com/dtcore/dtcore/expr"
)

func TestInsertAndFindPreservesOrder(t *testing.T) {
	idx := NewIndex()
	qFromP := Lemma{Name: "qFromP", Statement: &expr.Pi{Domain: &expr.Const{Name: "P"}, Body: &expr.Const{Name: "Q"}}}
	qAxiom := Lemma{Name: "qAxiom", Statement: &expr.Const{Name: "Q"}}

	idx.Insert(qFromP)
	idx.Insert(qAxiom)

	found := idx.Find("Q")
	if len(found) != 2 {
		t.Fatalf("Find(Q) returned %d lemmas, want 2", len(found))
	}
	if found[0].Name != "qFromP" || found[1].Name != "qAxiom" {
		t.Fatalf("Find(Q) order = [%s, %s], want insertion order", found[0].Name, found[1].Name)
	}

	if len(idx.Find("NoSuchHead")) != 0 {
		t.Fatal("Find on an unindexed head should return nothing")
	}
}

func TestInsertAllCollectsPerItemErrors(t *testing.T) {
	idx := NewIndex()
	good := Lemma{Name: "good", Statement: &expr.Const{Name: "R"}}
	bad := Lemma{Name: "bad", Statement: &expr.Sort{U: expr.Nat(0)}}

	err := idx.InsertAll([]Lemma{good, bad})
	if err == nil {
		t.Fatal("expected an error for the headless lemma")
	}
	if len(idx.Find("R")) != 1 {
		t.Fatal("the well-formed lemma should still be indexed despite the other failing")
	}
}

func TestHeadsSorted(t *testing.T) {
	idx := NewIndex()
	idx.Insert(Lemma{Name: "b", Statement: &expr.Const{Name: "Beta"}})
	idx.Insert(Lemma{Name: "a", Statement: &expr.Const{Name: "Alpha"}})

	heads := idx.Heads()
	if len(heads) != 2 || heads[0] != "Alpha" || heads[1] != "Beta" {
		t.Fatalf("Heads() = %v, want sorted [Alpha Beta]", heads)
	}
}
