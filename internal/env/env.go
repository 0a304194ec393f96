// Copyright 2026 The Polsia Authors
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

// Package env implements the path environment of spec §4.2: an ordered
// associative map from top-level key to its current spanned value, mutated
// during tree unification (internal/tree) and frozen before reference
// materialization (internal/materialize). This is the Polsia analogue of
// the teacher's Feature-indexed arc lookups in internal/core/adt, trimmed
// to a single-level dictionary since relative references are rewritten to
// absolute dotted paths before the environment is ever consulted (spec
// §4.3, §9 "Environment representation").
package env

import (
	"strings"

	"github.com/contagnas/polsia/value"
)

// Env is the root-level name-to-value map. Key order is preserved: Keys
// reports keys in the order they were first set.
type Env struct {
	order []string
	keys  map[string]*value.Value
}

// New returns an empty environment.
func New() *Env {
	return &Env{keys: map[string]*value.Value{}}
}

// Set installs or overwrites the top-level key's current value. Called
// by the tree unifier every time it folds a new "current" for a root key
// (spec §4.6 step 4: "mirror each key's current into the environment").
func (e *Env) Set(key string, v value.Value) {
	if _, ok := e.keys[key]; !ok {
		e.order = append(e.order, key)
	}
	cp := v
	e.keys[key] = &cp
}

// Get returns the top-level value for key, if present.
func (e *Env) Get(key string) (value.Value, bool) {
	v, ok := e.keys[key]
	if !ok {
		return value.Value{}, false
	}
	return *v, true
}

// Keys returns the top-level keys in first-set order.
func (e *Env) Keys() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Lookup walks a dotted absolute path against the environment (spec §4.2):
// the first segment must hit the top-level map, every subsequent segment
// must index an Object member by key. It never synthesizes a path; it only
// reads.
func Lookup(e *Env, dotted string) (value.Value, bool) {
	segs := strings.Split(dotted, ".")
	if len(segs) == 0 {
		return value.Value{}, false
	}
	cur, ok := e.Get(segs[0])
	if !ok {
		return value.Value{}, false
	}
	for _, seg := range segs[1:] {
		m, ok := cur.Lookup(seg)
		if !ok {
			return value.Value{}, false
		}
		cur = *m
	}
	return cur, true
}

// Has reports whether dotted resolves to something in e, without returning
// the value.
func Has(e *Env, dotted string) bool {
	_, ok := Lookup(e, dotted)
	return ok
}
