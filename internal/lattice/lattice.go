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

// Package lattice implements the scalar type lattice of spec §4.1: the top
// Any, the bottom Nothing, the numeric chain Int < Rational < Float <
// Number, and the siblings String and Boolean. This is the smallest of the
// core's components (spec §2 budgets it at ~5% of the core), analogous to
// the teacher's cue/kind.go but operating on the enumerated Type constants
// of value.Type rather than a bitmask kind, since Polsia's lattice has no
// composite (list/struct) rungs to OR together.
package lattice

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/contagnas/polsia/value"
)

// UnifyTypes computes the join of two type constants (spec §4.1).
func UnifyTypes(a, b value.Type) (value.Type, error) {
	if a == b {
		return a, nil
	}
	if a == value.Any {
		return b, nil
	}
	if b == value.Any {
		return a, nil
	}
	if a == value.Nothing || b == value.Nothing {
		return 0, errNothing
	}
	if a.IsNumeric() && b.IsNumeric() {
		if numericRank(a) > numericRank(b) {
			return a, nil
		}
		return b, nil
	}
	return 0, errMismatch
}

func numericRank(t value.Type) int {
	switch t {
	case value.Int:
		return 0
	case value.Rational:
		return 1
	case value.Float:
		return 2
	case value.Number:
		return 3
	default:
		return -1
	}
}

// sentinel errors distinguished by the caller (internal/unify), which wraps
// them with path and span information per spec §7.
var (
	errNothing  = plainErr("Nothing does not unify with anything")
	errMismatch = plainErr("incompatible types")
)

type plainErr string

func (e plainErr) Error() string { return string(e) }

// UnifyTypeValue unifies a type constant against a concrete value (spec
// §4.1). On success it returns the (possibly coerced) value; the returned
// value always keeps v's span, per spec §4.4 step 7 ("the result borrows
// the span of the value side").
func UnifyTypeValue(t value.Type, v value.Value) (value.Value, error) {
	switch t {
	case value.Any:
		return v, nil
	case value.Nothing:
		return value.Value{}, errNothing
	case value.Int:
		return coerceInt(v)
	case value.Rational, value.Float, value.Number:
		return coerceNumeric(v)
	case value.String_:
		if v.Kind == value.StringKind {
			return v, nil
		}
		return value.Value{}, errMismatch
	case value.Boolean:
		if v.Kind == value.BoolKind {
			return v, nil
		}
		return value.Value{}, errMismatch
	default:
		return value.Value{}, errMismatch
	}
}

// coerceInt accepts an Int value unchanged and a Float value whose decimal
// has zero fractional part, coercing it to Int (spec §4.1: "floats with
// zero fractional part are coerced to integer").
func coerceInt(v value.Value) (value.Value, error) {
	switch v.Kind {
	case value.IntKind:
		return v, nil
	case value.FloatKind:
		if isIntegral(v.Num) {
			out := v
			out.Kind = value.IntKind
			return out, nil
		}
		return value.Value{}, errMismatch
	default:
		return value.Value{}, errMismatch
	}
}

// coerceNumeric accepts Int and Float values unchanged (spec §4.1:
// "numeric types accept integer and float values unchanged").
func coerceNumeric(v value.Value) (value.Value, error) {
	switch v.Kind {
	case value.IntKind, value.FloatKind:
		return v, nil
	default:
		return value.Value{}, errMismatch
	}
}

func isIntegral(d apd.Decimal) bool {
	var rounded apd.Decimal
	var ctx apd.Context = *apd.BaseContext
	ctx.Precision = 50
	_, _ = ctx.RoundToIntegralExact(&rounded, &d)
	return rounded.Cmp(&d) == 0
}

// Inhabits reports whether v inhabits t under the lattice, without
// producing a coerced result. Used by the "type-value soundness" property
// test (spec §8).
func Inhabits(t value.Type, v value.Value) bool {
	_, err := UnifyTypeValue(t, v)
	return err == nil
}
