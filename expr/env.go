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
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Object is a global entity in an Environment: either an opaque
// declaration (an axiom) or a Definition.
type Object struct {
	Name string

	// IsDefinition is true when the object carries a Value expression to
	// unfold to. False marks an axiom or other opaque declaration.
	IsDefinition bool

	// Opaque suppresses delta-unfolding even for a Definition. Axioms are
	// implicitly opaque regardless of this field.
	Opaque bool

	// Value is the definiens; only meaningful when IsDefinition is true.
	Value Expr

	// Type is the object's declared type, when known. It is not part of
	// spec.md §3's minimal Object description; it is a supplemental field
	// (see SPEC_FULL.md §4.4) that lets the apply/instance-search
	// collaborator answer "does an object of this type already exist"
	// without reintroducing a full elaborator.
	Type Expr
}

// Unfoldable reports whether the normalizer may replace a reference to
// this object with its definition.
func (o Object) Unfoldable() bool {
	return o.IsDefinition && !o.Opaque
}

// Environment is a read-only mapping from global names to Objects. It is
// shared, immutable for the lifetime of a normalizer invocation, and safe
// for concurrent reads.
type Environment struct {
	objects map[string]Object
}

// NewEnvironment builds an Environment from a set of objects.
func NewEnvironment(objects ...Object) *Environment {
	m := make(map[string]Object, len(objects))
	for _, o := range objects {
		m[o.Name] = o
	}
	return &Environment{objects: m}
}

// Get looks up a global object by name.
func (e *Environment) Get(name string) (Object, error) {
	if e == nil {
		return Object{}, errors.Errorf("unknown constant %q: empty environment", name)
	}
	o, ok := e.objects[name]
	if !ok {
		return Object{}, errors.Errorf("unknown constant %q", name)
	}
	return o, nil
}

// Objects returns every object in the environment, sorted by name for
// determinism — grounded on the teacher's own use of golang.org/x/exp/maps
// (golang/packager/pkginfo, golang/binder/gobindings/deps.go) to turn a
// map into a stable slice for diagnostics and search.
func (e *Environment) Objects() []Object {
	if e == nil {
		return nil
	}
	names := maps.Keys(e.objects)
	slices.Sort(names)
	out := make([]Object, len(names))
	for i, n := range names {
		out[i] = e.objects[n]
	}
	return out
}

// Axiom declares an opaque constant with no definiens.
func Axiom(name string) Object {
	return Object{Name: name}
}

// Definition declares a constant that unfolds to value unless opaque.
func Definition(name string, value Expr, opaque bool) Object {
	return Object{Name: name, IsDefinition: true, Opaque: opaque, Value: value}
}
