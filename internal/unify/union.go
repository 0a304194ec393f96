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
	"github.com/contagnas/polsia/errors"
	"github.com/contagnas/polsia/token"
	"github.com/contagnas/polsia/value"
)

// unifyUnionUnion implements spec §4.4 step 4: form the Cartesian product,
// keep pairs whose branches pass branchMatches, unify each surviving pair,
// and collect unique results.
func unifyUnionUnion(ctx *Context, a, b value.Value, path string) (value.Value, error) {
	var results []value.Value
	for _, x := range a.Options {
		for _, y := range b.Options {
			if !branchMatches(ctx, x, y) {
				continue
			}
			out, err := Unify(ctx, x, y, path)
			if err != nil {
				continue
			}
			results = appendUnique(results, out)
		}
	}
	return collapse(results, b.Span, path)
}

// unifyUnionOther implements spec §4.4 step 5: filter branches whose kinds
// match the other side, unify each; if any branch reduces exactly to the
// other, return it immediately; otherwise return a deduplicated set.
func unifyUnionOther(ctx *Context, u, other value.Value, path string) (value.Value, error) {
	var results []value.Value
	for _, branch := range u.Options {
		if !branchMatches(ctx, branch, other) {
			continue
		}
		out, err := Unify(ctx, branch, other, path)
		if err != nil {
			continue
		}
		if value.Equal(out, other) {
			return out, nil
		}
		results = appendUnique(results, out)
	}
	return collapse(results, other.Span, path)
}

func appendUnique(results []value.Value, v value.Value) []value.Value {
	for _, r := range results {
		if value.Equal(r, v) {
			return results
		}
	}
	return append(results, v)
}

func collapse(results []value.Value, span token.Span, path string) (value.Value, error) {
	switch len(results) {
	case 0:
		return value.Value{}, errors.New(errors.UnionExhausted, path, span, span,
			"no union branch is compatible")
	case 1:
		return results[0], nil
	default:
		return value.NewUnion(results[0].Span, results...), nil
	}
}
