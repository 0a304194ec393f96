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

// Package tree implements the fixed-point tree unifier of spec §4.6: it
// merges duplicate keys at every Object node, re-running the per-key fold
// until no key's "current" value changes between iterations, which is what
// makes duplicate-key convergence independent of source order (spec §8).
package tree

import (
	"fmt"

	"github.com/contagnas/polsia/internal/env"
	"github.com/contagnas/polsia/internal/unify"
	"github.com/contagnas/polsia/value"
)

// maxIterations bounds the fixed-point loop. The inputs targeted by this
// language are small (spec §9: "the inputs are small"), so this is a
// generous backstop against a pathological document rather than a tuned
// limit.
const maxIterations = 64

// Unify runs the tree unifier over root and returns the merged document
// together with the environment it populated. root must be an Object
// (spec §3: "Document... always of Object kind after parsing").
func Unify(root value.Value) (value.Value, *env.Env, error) {
	e := env.New()
	var merged, prev value.Value
	var err error

	// Every iteration folds the original document (duplicates included)
	// against the environment left by the previous iteration, so a
	// reference that could not be resolved earlier is retried.
	for i := 0; i < maxIterations; i++ {
		ctx := unify.NewContext(e)
		merged, err = unifyObjectFields(ctx, root, "", e, true)
		if err != nil {
			return value.Value{}, nil, err
		}
		if i > 0 && value.Equal(merged, prev) {
			break
		}
		prev = merged
	}

	return merged, e, nil
}

// unifyObjectFields performs one pass of spec §4.6's per-object procedure:
// group members by key, fold each group with pairwise Unify, and write the
// result back at the key's first-appearance position. atRoot controls
// whether resolved keys are mirrored into e (spec §4.6 step 4: "At the
// root only").
func unifyObjectFields(ctx *unify.Context, v value.Value, path string, e *env.Env, atRoot bool) (value.Value, error) {
	if v.Kind != value.ObjectKind {
		return recurseNonObject(ctx, v, path, e)
	}

	order := make([]string, 0, len(v.Members))
	groups := make(map[string][]value.Member)
	for _, m := range v.Members {
		if _, ok := groups[m.Key]; !ok {
			order = append(order, m.Key)
		}
		groups[m.Key] = append(groups[m.Key], m)
	}

	out := make([]value.Member, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sub := subPath(path, key)

		current, ann, err := foldKey(ctx, group, sub, e, atRoot)
		if err != nil {
			return value.Value{}, err
		}

		if atRoot {
			e.Set(key, current)
		}

		out = append(out, value.Member{
			Key:   key,
			Value: current,
			Span:  group[0].Span,
			Ann:   ann,
		})
	}

	result := v
	result.Members = out
	return result, nil
}

// foldKey recurses into each member's value first (so nested objects reach
// their own fixed point as part of the same outer iteration), then folds
// the resulting values pairwise with Unify, per spec §4.6 steps 1-2.
// Function-annotated members are carried forward verbatim (step: "not
// unified with themselves in this pass").
func foldKey(ctx *unify.Context, group []value.Member, path string, e *env.Env, atRoot bool) (value.Value, value.Annotations, error) {
	var current value.Value
	var ann value.Annotations
	started := false

	for _, m := range group {
		ann = ann.Union(m.Ann)

		var child value.Value
		var err error
		if m.Ann.Function {
			child = m.Value
		} else {
			child, err = unifyObjectFields(ctx, m.Value, path, e, false)
			if err != nil {
				return value.Value{}, ann, err
			}
		}

		if !started {
			current = child
			started = true
			continue
		}
		current, err = unify.Unify(ctx, current, child, path)
		if err != nil {
			return value.Value{}, ann, err
		}
	}

	return current, ann, nil
}

// recurseNonObject descends into Array/Union/Call structure looking for
// nested Objects to fold, without itself performing a merge (spec §4.6:
// "Arrays and unions recurse element-wise without merging").
func recurseNonObject(ctx *unify.Context, v value.Value, path string, e *env.Env) (value.Value, error) {
	switch v.Kind {
	case value.ArrayKind:
		items := make([]value.Value, len(v.Items))
		for i, item := range v.Items {
			out, err := unifyObjectFields(ctx, item, fmt.Sprintf("%s[%d]", path, i), e, false)
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
			out, err := unifyObjectFields(ctx, o, path, e, false)
			if err != nil {
				return value.Value{}, err
			}
			opts[i] = out
		}
		v.Options = opts
		return v, nil
	case value.CallKind:
		if v.IsBinaryOp() {
			l, err := unifyObjectFields(ctx, *v.OpLeft, path, e, false)
			if err != nil {
				return value.Value{}, err
			}
			r, err := unifyObjectFields(ctx, *v.OpRight, path, e, false)
			if err != nil {
				return value.Value{}, err
			}
			v.OpLeft, v.OpRight = &l, &r
			return v, nil
		}
		if v.CallArg != nil {
			a, err := unifyObjectFields(ctx, *v.CallArg, path, e, false)
			if err != nil {
				return value.Value{}, err
			}
			v.CallArg = &a
		}
		return v, nil
	default:
		return v, nil
	}
}

func subPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
