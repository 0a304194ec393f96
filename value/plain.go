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

package value

import "fmt"

// Plain is the comparable, span-free projection of a Value used by the
// unifier's identity shortcut (spec §4.4 step 1: "If a.plain() == b.plain(),
// return b"). It is not the JSON export (that is internal/materialize's
// job): Plain still represents References, Types, Calls, and Unions, just
// without spans, so that two structurally identical non-concrete nodes
// (e.g. two Reference("a.b") nodes from different source positions) compare
// equal.
type Plain struct {
	kind Kind
	repr string
}

// Plain computes the comparable projection of v. Composite kinds recurse;
// the result is a single comparable struct so callers can use Go's == or a
// map key directly, mirroring the cheap-identity check the teacher performs
// before falling back to full unification logic.
func (v Value) Plain() Plain {
	switch v.Kind {
	case NullKind:
		return Plain{kind: NullKind}
	case BoolKind:
		return Plain{kind: BoolKind, repr: fmt.Sprintf("%v", v.Bool)}
	case IntKind, FloatKind:
		return Plain{kind: v.Kind, repr: v.Num.String()}
	case StringKind:
		return Plain{kind: StringKind, repr: v.Str}
	case ReferenceKind:
		return Plain{kind: ReferenceKind, repr: v.Ref}
	case TypeKind:
		return Plain{kind: TypeKind, repr: v.Type.String()}
	case ArrayKind:
		repr := "["
		for i, item := range v.Items {
			if i > 0 {
				repr += ","
			}
			repr += item.Plain().repr
		}
		return Plain{kind: ArrayKind, repr: repr + "]"}
	case ObjectKind:
		repr := "{"
		for i, m := range v.Members {
			if i > 0 {
				repr += ","
			}
			repr += m.Key + ":" + m.Value.Plain().repr
		}
		return Plain{kind: ObjectKind, repr: repr + "}"}
	case CallKind:
		if v.IsBinaryOp() {
			return Plain{kind: CallKind, repr: v.CallName + "(" + v.OpLeft.Plain().repr + "," + v.OpRight.Plain().repr + ")"}
		}
		arg := ""
		if v.CallArg != nil {
			arg = v.CallArg.Plain().repr
		}
		return Plain{kind: CallKind, repr: v.CallName + "(" + arg + ")"}
	case UnionKind:
		repr := "("
		for i, o := range v.Options {
			if i > 0 {
				repr += "|"
			}
			repr += o.Plain().repr
		}
		return Plain{kind: UnionKind, repr: repr + ")"}
	default:
		return Plain{kind: v.Kind}
	}
}

// Equal reports whether a and b carry the same plain projection.
func Equal(a, b Value) bool { return a.Plain() == b.Plain() }
