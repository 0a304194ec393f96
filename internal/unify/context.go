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

// Package unify implements the pairwise unifier (spec §4.4) and the call
// evaluator (spec §4.5), the two largest components of the core (45% of
// the budget between them, spec §2). It is the Polsia analogue of the
// teacher's internal/core/adt/unify.go, radically simplified: the spec
// is explicit that evaluation here is single-threaded, synchronous, and
// has no scheduler or generations (spec §5), so Unify is a plain
// recursive function rather than a task graph.
package unify

import "github.com/contagnas/polsia/internal/env"

// Context carries the shared environment and the reference-chase seen-set
// (spec §4.4 step 2: "a seen-set keyed by path") through one call to
// Unify. A Context is scoped to a single top-level fold; the tree unifier
// creates a fresh one per fixed-point iteration so that the seen-set never
// leaks state across keys.
type Context struct {
	Env  *env.Env
	seen map[string]bool
}

// NewContext builds a Context over e.
func NewContext(e *env.Env) *Context {
	return &Context{Env: e, seen: map[string]bool{}}
}

// enter pushes path onto the seen-set, reporting false if it was already
// present (a cycle). Callers must call leave on the same path once done,
// but only if enter returned true.
func (c *Context) enter(path string) bool {
	if c.seen[path] {
		return false
	}
	c.seen[path] = true
	return true
}

func (c *Context) leave(path string) {
	delete(c.seen, path)
}
