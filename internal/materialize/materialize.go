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

// Package materialize implements the reference materializer (spec §4.7):
// the final pass that substitutes every remaining Reference with its
// resolved value, expands remaining Calls, and detects structural cycles,
// producing a tree ready for export (spec §4.8).
package materialize

import (
	"fmt"

	"github.com/contagnas/polsia/errors"
	"github.com/contagnas/polsia/internal/env"
	"github.com/contagnas/polsia/internal/unify"
	"github.com/contagnas/polsia/value"
)

// Materialize walks root, substituting References and expanding Calls,
// using e as the frozen environment (spec §3: "frozen before reference
// materialization"). Object members annotated NoExport or Function are
// passed through without materializing their interior (spec §4.7).
func Materialize(root value.Value, e *env.Env) (value.Value, error) {
	ctx := unify.NewContext(e)
	seen := map[string]bool{}
	return walk(ctx, root, "", seen)
}

func walk(ctx *unify.Context, v value.Value, path string, seen map[string]bool) (value.Value, error) {
	switch v.Kind {
	case value.ReferenceKind:
		return materializeRef(ctx, v, path, seen)

	case value.CallKind:
		reduced, err := unify.Evaluate(ctx, v, path)
		if err != nil {
			return value.Value{}, err
		}
		if reduced.Kind == value.CallKind {
			// Still pending: leave as-is; export will flag it if this
			// path is exportable (spec §4.7).
			return reduced, nil
		}
		return walk(ctx, reduced, path, seen)

	case value.ArrayKind:
		items := make([]value.Value, len(v.Items))
		for i, item := range v.Items {
			out, err := walk(ctx, item, fmt.Sprintf("%s[%d]", path, i), seen)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = out
		}
		v.Items = items
		return v, nil

	case value.UnionKind:
		opts := make([]value.Value, len(v.Options))
		for i, o := range v.Options {
			out, err := walk(ctx, o, path, seen)
			if err != nil {
				return value.Value{}, err
			}
			opts[i] = out
		}
		v.Options = opts
		return v, nil

	case value.ObjectKind:
		members := make([]value.Member, len(v.Members))
		for i, m := range v.Members {
			mm := m
			if m.Ann.NoExport || m.Ann.Function {
				members[i] = mm
				continue
			}
			out, err := walk(ctx, m.Value, subPath(path, m.Key), seen)
			if err != nil {
				return value.Value{}, err
			}
			mm.Value = out
			if out.Kind == value.ReferenceKind {
				// Only a reference-to-reference cycle comes back as a
				// Reference; its member is not exported (spec §4.7).
				mm.Ann.NoExport = true
			}
			members[i] = mm
		}
		v.Members = members
		return v, nil

	default:
		return v, nil
	}
}

// materializeRef resolves a single Reference, recursively materializing
// its target. A seen-set keyed by absolute path detects structural cycles
// (spec §4.7): re-entering a path whose own stored value is not itself a
// pure reference signals an infinite structural cycle; a reference-to-
// reference cycle instead returns the unchanged reference, and walk marks
// the object member holding it NoExport.
func materializeRef(ctx *unify.Context, ref value.Value, path string, seen map[string]bool) (value.Value, error) {
	target, ok := env.Lookup(ctx.Env, ref.Ref)
	if !ok {
		return value.Value{}, errors.New(errors.UnresolvedReference, path, ref.Span, ref.Span,
			"unresolved reference: %s", ref.Ref)
	}

	if seen[ref.Ref] {
		if target.Kind == value.ReferenceKind {
			return ref, nil
		}
		return value.Value{}, errors.New(errors.StructuralCycle, path, ref.Span, ref.Span,
			"infinite structural cycle through %s", ref.Ref)
	}

	seen[ref.Ref] = true
	out, err := walk(ctx, target, path, seen)
	delete(seen, ref.Ref)
	return out, err
}

func subPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
