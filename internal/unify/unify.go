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

package unify

import (
	"fmt"

	"github.com/contagnas/polsia/errors"
	"github.com/contagnas/polsia/internal/env"
	"github.com/contagnas/polsia/internal/lattice"
	"github.com/contagnas/polsia/value"
)

// Unify computes the greatest-lower-bound of a and b under path, per the
// policy of spec §4.4. path is used only for error reporting; sub-paths
// are built as "path.key" and "path[i]".
func Unify(ctx *Context, a, b value.Value, path string) (value.Value, error) {
	// 1. Plain equality: prefer the later span.
	if value.Equal(a, b) {
		return b, nil
	}

	// 2. Reference chasing.
	if a.Kind == value.ReferenceKind {
		return unifyReference(ctx, a, b, path, false)
	}
	if b.Kind == value.ReferenceKind {
		return unifyReference(ctx, b, a, path, true)
	}

	// 3. Call evaluation.
	if a.Kind == value.CallKind {
		return unifyCall(ctx, a, b, path, false)
	}
	if b.Kind == value.CallKind {
		return unifyCall(ctx, b, a, path, true)
	}

	// 4/5. Unions.
	if a.Kind == value.UnionKind && b.Kind == value.UnionKind {
		return unifyUnionUnion(ctx, a, b, path)
	}
	if a.Kind == value.UnionKind {
		return unifyUnionOther(ctx, a, b, path)
	}
	if b.Kind == value.UnionKind {
		return unifyUnionOther(ctx, b, a, path)
	}

	// 6. Type x Type.
	if a.Kind == value.TypeKind && b.Kind == value.TypeKind {
		t, err := lattice.UnifyTypes(a.Type, b.Type)
		if err != nil {
			return value.Value{}, errors.New(errors.TypeMismatch, path, b.Span, a.Span, "%v", err)
		}
		return value.TypeConst(t, b.Span), nil
	}

	// 7. Type x value, either side.
	if a.Kind == value.TypeKind {
		out, err := lattice.UnifyTypeValue(a.Type, b)
		if err != nil {
			return value.Value{}, errors.New(errors.TypeMismatch, path, b.Span, a.Span, "%v", err)
		}
		return out, nil
	}
	if b.Kind == value.TypeKind {
		out, err := lattice.UnifyTypeValue(b.Type, a)
		if err != nil {
			return value.Value{}, errors.New(errors.TypeMismatch, path, b.Span, a.Span, "%v", err)
		}
		return out, nil
	}

	// 8. Array x Array.
	if a.Kind == value.ArrayKind && b.Kind == value.ArrayKind {
		return unifyArrays(ctx, a, b, path)
	}

	// 9. Object x Object.
	if a.Kind == value.ObjectKind && b.Kind == value.ObjectKind {
		return unifyObjects(ctx, a, b, path)
	}

	// 10. Shape mismatch.
	return value.Value{}, errors.New(errors.ShapeMismatch, path, b.Span, a.Span,
		"values do not unify: %v vs %v", a.Kind, b.Kind)
}

// unifyReference chases ref against the environment and unifies the result
// with other. swapped indicates other was originally the "a" operand, so
// the final error keeps the spec's b=current/a=previous convention.
func unifyReference(ctx *Context, ref, other value.Value, path string, swapped bool) (value.Value, error) {
	if !ctx.enter(ref.Ref) {
		// Re-entering a path already on the stack: break the cycle safely
		// by yielding the other side unchanged (spec §4.4 step 2).
		return other, nil
	}
	defer ctx.leave(ref.Ref)

	target, ok := env.Lookup(ctx.Env, ref.Ref)
	if !ok {
		// Not yet resolvable in this pass; the tree unifier's fixed point
		// will retry once the referenced key is populated (spec §4.6).
		return other, nil
	}

	if swapped {
		return Unify(ctx, other, target, path)
	}
	return Unify(ctx, target, other, path)
}

// unifyCall evaluates call and unifies the reduction with other, or keeps
// the call pending if it cannot yet reduce (spec §4.4 step 3).
func unifyCall(ctx *Context, call, other value.Value, path string, swapped bool) (value.Value, error) {
	reduced, err := Evaluate(ctx, call, path)
	if err != nil {
		return value.Value{}, err
	}
	if reduced.Kind == value.CallKind {
		// Not reducible yet: keep the call node for a later pass.
		return call, nil
	}
	if swapped {
		return Unify(ctx, other, reduced, path)
	}
	return Unify(ctx, reduced, other, path)
}

func unifyArrays(ctx *Context, a, b value.Value, path string) (value.Value, error) {
	if len(a.Items) != len(b.Items) {
		return value.Value{}, errors.New(errors.ArrayLengthMismatch, path, b.Span, a.Span,
			"array lengths differ: %d vs %d", len(a.Items), len(b.Items))
	}
	items := make([]value.Value, len(a.Items))
	for i := range a.Items {
		sub := fmt.Sprintf("%s[%d]", path, i)
		out, err := Unify(ctx, a.Items[i], b.Items[i], sub)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = out
	}
	out := b
	out.Items = items
	return out, nil
}

func unifyObjects(ctx *Context, a, b value.Value, path string) (value.Value, error) {
	byKey := make(map[string]int, len(a.Members))
	for i, m := range a.Members {
		byKey[m.Key] = i
	}

	members := make([]value.Member, 0, len(a.Members)+len(b.Members))
	members = append(members, a.Members...)

	for _, bm := range b.Members {
		sub := subPath(path, bm.Key)
		if idx, ok := byKey[bm.Key]; ok {
			am := members[idx]
			merged, err := Unify(ctx, am.Value, bm.Value, sub)
			if err != nil {
				return value.Value{}, err
			}
			members[idx] = value.Member{
				Key:   bm.Key,
				Value: merged,
				Span:  bm.Span,
				Ann:   am.Ann.Union(bm.Ann),
			}
		} else {
			byKey[bm.Key] = len(members)
			members = append(members, bm)
		}
	}

	out := b
	out.Members = members
	return out, nil
}

func subPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// branchMatches is the cheap pruning predicate of spec §4.4 ("not a
// soundness gate"): after dereferencing references through env, it
// returns true unless both sides are objects with value's key set not
// contained in branch's key set, or both sides are distinct type
// constants.
func branchMatches(ctx *Context, branch, val value.Value) bool {
	branch = derefShallow(ctx, branch)
	val = derefShallow(ctx, val)

	if branch.Kind == value.ObjectKind && val.Kind == value.ObjectKind {
		for _, vm := range val.Members {
			if _, ok := branch.Lookup(vm.Key); !ok {
				return false
			}
		}
		return true
	}
	if branch.Kind == value.TypeKind && val.Kind == value.TypeKind {
		return branch.Type == val.Type
	}
	return true
}

// derefShallow follows a single chain of References through env without
// recursing into composite structure; used only by the branchMatches
// heuristic, which must stay cheap.
func derefShallow(ctx *Context, v value.Value) value.Value {
	seen := map[string]bool{}
	for v.Kind == value.ReferenceKind && !seen[v.Ref] {
		seen[v.Ref] = true
		next, ok := env.Lookup(ctx.Env, v.Ref)
		if !ok {
			return v
		}
		v = next
	}
	return v
}
