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

package materialize

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/contagnas/polsia/errors"
	"github.com/contagnas/polsia/value"
)

// Export projects a fully materialized tree to a plain JSON-compatible Go
// value (spec §4.8): scalars map directly, arrays and objects recurse,
// NoExport/Function members are elided. Any remaining non-concrete node on
// an exportable path is reported as "unspecified" (spec §4.7 final clause).
func Export(v value.Value) (interface{}, error) {
	return export(v, "")
}

func export(v value.Value, path string) (interface{}, error) {
	switch v.Kind {
	case value.NullKind:
		return nil, nil
	case value.BoolKind:
		return v.Bool, nil
	case value.IntKind:
		i, err := v.Num.Int64()
		if err == nil {
			return i, nil
		}
		return v.Num.String(), nil
	case value.FloatKind:
		f, err := floatValue(v.Num)
		if err != nil {
			return nil, errors.New(errors.UnspecifiedExportValue, path, v.Span, v.Span,
				"float is not finite: %v", err)
		}
		return f, nil
	case value.StringKind:
		return v.Str, nil
	case value.ArrayKind:
		out := make([]interface{}, len(v.Items))
		for i, item := range v.Items {
			ev, err := export(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case value.ObjectKind:
		out := make(map[string]interface{}, len(v.Members))
		order := make([]string, 0, len(v.Members))
		for _, m := range v.Members {
			if m.Ann.NoExport || m.Ann.Function {
				continue
			}
			sub := subPath(path, m.Key)
			ev, err := export(m.Value, sub)
			if err != nil {
				return nil, err
			}
			out[m.Key] = ev
			order = append(order, m.Key)
		}
		return &OrderedObject{Keys: order, Values: out}, nil
	default:
		return nil, errors.New(errors.UnspecifiedExportValue, path, v.Span, v.Span,
			"value of type %s is unspecified", describe(v))
	}
}

// describe names the non-concrete kind left on an export path, for the
// "value of type <X> is unspecified" message (spec §4.7).
func describe(v value.Value) string {
	switch v.Kind {
	case value.ReferenceKind:
		return "reference"
	case value.TypeKind:
		return v.Type.String()
	case value.CallKind:
		return "call"
	case value.UnionKind:
		return "union"
	default:
		return v.Kind.String()
	}
}

// floatValue converts an apd.Decimal to a float64 and rejects non-finite
// results (spec §4.8: "Floats must be representable as finite numbers").
func floatValue(d apd.Decimal) (float64, error) {
	f, err := d.Float64()
	if err != nil {
		return 0, err
	}
	if big.NewFloat(f).IsInf() {
		return 0, fmt.Errorf("value overflows float64")
	}
	return f, nil
}

// OrderedObject is the exported representation of a Polsia Object: a
// standard JSON encoder only needs Values, but callers that care about
// source-preserving member order (spec §3: "Object-member source order is
// preserved") can walk Keys alongside it.
type OrderedObject struct {
	Keys   []string
	Values map[string]interface{}
}
