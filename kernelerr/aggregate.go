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

package kernelerr

import "go.uber.org/multierr"

// Errors accumulates independent failures from a batch operation — the
// counterpart of the teacher's build/fmterr.Errors, but built on
// go.uber.org/multierr instead of a go/ast-position-keyed stack, since
// this kernel's batch operations (seeding a lemma index from a list of
// extra_lemmas) have no source positions to key on.
type Errors struct {
	err error
}

// Append records err if non-nil; a nil err is a no-op.
func (e *Errors) Append(err error) {
	if err == nil {
		return
	}
	e.err = multierr.Append(e.err, err)
}

// ErrOrNil returns the combined error, or nil if nothing was appended.
func (e *Errors) ErrOrNil() error {
	return e.err
}
