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

// Package jsonshim is a minimal ingestion adapter that reads the plain
// JSON subset of Polsia source into a value.Value tree, standing in for
// the full surface grammar (unquoted keys, comments, dotted chains,
// references, type constants, calls, annotations), which spec §1 and §6
// explicitly place out of the core's scope: "the surface grammar and
// tokenization" belong to an external collaborator. This lets cmd/polsia
// and the core's own tests drive the semantic pipeline end-to-end without
// the core depending on a parser package.
package jsonshim

import (
	"encoding/json"
	"fmt"

	"github.com/contagnas/polsia/token"
	"github.com/contagnas/polsia/value"
)

// Decode parses src as JSON and converts it to a value.Value. A root that
// is not a JSON object is wrapped as the single member "value" of an
// Object, so the core always receives an Object-kind root (spec §6).
func Decode(src []byte) (value.Value, error) {
	var raw interface{}
	if err := json.Unmarshal(src, &raw); err != nil {
		return value.Value{}, fmt.Errorf("jsonshim: %w", err)
	}
	v := convert(raw)
	if v.Kind != value.ObjectKind {
		v = value.Object([]value.Member{{Key: "value", Value: v, Span: token.NoSpan}}, token.NoSpan)
	}
	return v, nil
}

func convert(raw interface{}) value.Value {
	switch x := raw.(type) {
	case nil:
		return value.Null(token.NoSpan)
	case bool:
		return value.Bool(x, token.NoSpan)
	case float64:
		if x == float64(int64(x)) {
			return value.IntFromInt64(int64(x), token.NoSpan)
		}
		v, err := value.FloatFromFloat64(x, token.NoSpan)
		if err != nil {
			return value.Null(token.NoSpan)
		}
		return v
	case string:
		return value.String(x, token.NoSpan)
	case []interface{}:
		items := make([]value.Value, len(x))
		for i, item := range x {
			items[i] = convert(item)
		}
		return value.Array(items, token.NoSpan)
	case map[string]interface{}:
		members := make([]value.Member, 0, len(x))
		for k, v := range x {
			members = append(members, value.Member{Key: k, Value: convert(v), Span: token.NoSpan})
		}
		return value.Object(members, token.NoSpan)
	default:
		return value.Null(token.NoSpan)
	}
}
