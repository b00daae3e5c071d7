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

import "testing"

func TestContextExtendAndLookup(t *testing.T) {
	var c Context
	c = c.Extend(ContextEntry{Name: "x", Type: &Const{Name: "Nat"}})
	c = c.Extend(ContextEntry{Name: "y", Type: &Const{Name: "Bool"}})

	if got := c.Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2", got)
	}

	entry, prefix, err := c.LookupExt(0)
	if err != nil {
		t.Fatalf("LookupExt(0): %v", err)
	}
	if entry.Name != "y" {
		t.Fatalf("LookupExt(0).Name = %q, want %q", entry.Name, "y")
	}
	if prefix.Size() != 1 {
		t.Fatalf("prefix.Size() = %d, want 1", prefix.Size())
	}

	entry, prefix, err = c.LookupExt(1)
	if err != nil {
		t.Fatalf("LookupExt(1): %v", err)
	}
	if entry.Name != "x" {
		t.Fatalf("LookupExt(1).Name = %q, want %q", entry.Name, "x")
	}
	if prefix.Size() != 0 {
		t.Fatalf("prefix.Size() = %d, want 0", prefix.Size())
	}

	if _, _, err := c.LookupExt(2); err == nil {
		t.Fatal("LookupExt(2) should fail on a size-2 context")
	}
}

func TestContextEqIsPointerIdentity(t *testing.T) {
	var c Context
	c1 := c.Extend(ContextEntry{Name: "x"})
	c2 := c.Extend(ContextEntry{Name: "x"})
	if c1.Eq(c2) {
		t.Fatal("two independently extended contexts should not be Eq")
	}
	if !c1.Eq(c1) {
		t.Fatal("a context should be Eq to itself")
	}
}

func TestContextLetBound(t *testing.T) {
	var c Context
	c = c.Extend(ContextEntry{Name: "n", Body: Num(1)})
	entry, _, err := c.LookupExt(0)
	if err != nil {
		t.Fatalf("LookupExt(0): %v", err)
	}
	if !entry.HasBody() {
		t.Fatal("entry with a Body should report HasBody")
	}
}
