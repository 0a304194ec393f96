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

// Package resolve implements the relative reference resolver of spec §4.3:
// before semantic unification runs, every Reference(p) is rewritten to an
// absolute dotted path by lexical scoping, so that the unifier and
// materializer only ever have to deal with absolute paths against a
// single-level environment (internal/env).
package resolve

import (
	"strings"

	"github.com/contagnas/polsia/value"
)

// scope is the static set of the absolute dotted paths of every name
// visible somewhere in the document. Built once up
// front by walking the tree (spec §4.3 step 1: "Walk the object tree
// recording for every visible name its absolute path, innermost first").
type scope map[string]bool

// Resolve returns a copy of root with every Reference rewritten to an
// absolute path. References with no matching candidate are
// left unchanged; spec §4.3 step 3 defers surfacing those as
// "unresolved reference" to the final materialization pass.
func Resolve(root value.Value) value.Value {
	sc := scope{}
	collect(root, "", sc)
	return rewrite(root, "", sc)
}

// collect records every absolute path reachable by walking Object members,
// innermost first (so a child key visible from scope "a.b" is also
// registered at "a.b.key").
func collect(v value.Value, prefix string, sc scope) {
	switch v.Kind {
	case value.ObjectKind:
		for _, m := range v.Members {
			abs := join(prefix, m.Key)
			sc[abs] = true
			collect(m.Value, abs, sc)
		}
	case value.ArrayKind:
		for _, item := range v.Items {
			collect(item, prefix, sc)
		}
	case value.UnionKind:
		for _, o := range v.Options {
			collect(o, prefix, sc)
		}
	case value.CallKind:
		if v.IsBinaryOp() {
			collect(*v.OpLeft, prefix, sc)
			collect(*v.OpRight, prefix, sc)
		} else if v.CallArg != nil {
			collect(*v.CallArg, prefix, sc)
		}
	}
}

// rewrite walks v, replacing every Reference's path with the absolute path
// resolved from the scope visible at "current" (spec §4.3 step 2).
func rewrite(v value.Value, current string, sc scope) value.Value {
	switch v.Kind {
	case value.ObjectKind:
		members := make([]value.Member, len(v.Members))
		for i, m := range v.Members {
			abs := join(current, m.Key)
			mm := m
			mm.Value = rewrite(m.Value, abs, sc)
			members[i] = mm
		}
		v.Members = members
		return v
	case value.ArrayKind:
		items := make([]value.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = rewrite(item, current, sc)
		}
		v.Items = items
		return v
	case value.UnionKind:
		opts := make([]value.Value, len(v.Options))
		for i, o := range v.Options {
			opts[i] = rewrite(o, current, sc)
		}
		v.Options = opts
		return v
	case value.CallKind:
		if v.IsBinaryOp() {
			l := rewrite(*v.OpLeft, current, sc)
			r := rewrite(*v.OpRight, current, sc)
			v.OpLeft, v.OpRight = &l, &r
		} else if v.CallArg != nil {
			a := rewrite(*v.CallArg, current, sc)
			v.CallArg = &a
		}
		return v
	case value.ReferenceKind:
		if abs, ok := resolveOne(v.Ref, current, sc); ok {
			v.Ref = abs
		}
		return v
	default:
		return v
	}
}

// resolveOne tries candidate prefixes current.p, current-minus-last.p, ...,
// p (root), returning the first that names a known absolute path (spec
// §4.3 step 2). A reference already written in absolute form (its bare
// text already names a known path) is left as-is by the same search.
func resolveOne(p, current string, sc scope) (string, bool) {
	segs := splitNonEmpty(current)
	for i := len(segs); i >= 0; i-- {
		candidate := join(strings.Join(segs[:i], "."), p)
		if sc[candidate] {
			return candidate, true
		}
	}
	return "", false
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}
