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

// Package value defines the spanned value sum type that flows through every
// pass of the Polsia core (spec §3). A parsed document arrives as a tree of
// Value, is progressively rewritten by the resolver, tree unifier, and
// materializer, and is finally projected to plain Go data for JSON export.
package value

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/contagnas/polsia/token"
)

// Kind tags the variant a Value holds. Numeric concrete values (Int, Float)
// share a representation backed by apd.Decimal,
// the same choice the teacher makes for its own Num value, which gives the
// Rational/Number rungs of the type lattice (spec §4.1) exact arithmetic
// rather than float64 rounding.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ArrayKind
	ObjectKind
	ReferenceKind
	TypeKind
	CallKind
	UnionKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	case ReferenceKind:
		return "reference"
	case TypeKind:
		return "type"
	case CallKind:
		return "call"
	case UnionKind:
		return "union"
	default:
		return "unknown"
	}
}

// Type is a type lattice constant (spec §4.1 / §GLOSSARY).
type Type uint8

const (
	// Any is the top of the lattice; it accepts any value.
	Any Type = iota
	// Nothing is the bottom; it accepts no value and unifies with no type
	// other than itself.
	Nothing
	Int
	Rational
	Float
	Number
	String_
	Boolean
)

func (t Type) String() string {
	switch t {
	case Any:
		return "Any"
	case Nothing:
		return "Nothing"
	case Int:
		return "Int"
	case Rational:
		return "Rational"
	case Float:
		return "Float"
	case Number:
		return "Number"
	case String_:
		return "String"
	case Boolean:
		return "Boolean"
	default:
		return "Type(?)"
	}
}

// numericRank orders the numeric chain Int < Rational < Float < Number.
// Non-numeric types have no rank and are never compared with this.
var numericRank = map[Type]int{
	Int:      0,
	Rational: 1,
	Float:    2,
	Number:   3,
}

// IsNumeric reports whether t is one of the numeric-chain rungs.
func (t Type) IsNumeric() bool {
	_, ok := numericRank[t]
	return ok
}

// Annotations is a per-member flag set (spec §3).
type Annotations struct {
	NoExport bool
	Function bool
}

// Union merges two annotation sets, used when tree unification collapses
// duplicate keys (spec §4.6: "annotations for duplicate entries are unioned
// into the survivor").
func (a Annotations) Union(b Annotations) Annotations {
	return Annotations{
		NoExport: a.NoExport || b.NoExport,
		Function: a.Function || b.Function,
	}
}

// Value is a spanned node in the Polsia value tree. Exactly one of the
// typed accessors is meaningful, selected by Kind; callers switch on Kind
// the way the teacher's adt package switches on its Value interface's
// dynamic type, except Polsia uses a single struct rather than one Go type
// per variant, since every pass here rewrites whole Values rather than
// dispatching through interface methods.
type Value struct {
	Kind Kind
	Span token.Span

	Bool bool
	Num  apd.Decimal // meaningful for IntKind and FloatKind

	Str string // meaningful for StringKind

	Items []Value // meaningful for ArrayKind

	Members []Member // meaningful for ObjectKind

	Ref string // meaningful for ReferenceKind; dotted path, relative until resolved

	Type Type // meaningful for TypeKind

	CallName string  // meaningful for CallKind
	CallArg  *Value  // meaningful for CallKind
	OpLeft   *Value  // meaningful for CallKind when CallName is a binary operator
	OpRight  *Value  // meaningful for CallKind when CallName is a binary operator

	Options []Value // meaningful for UnionKind; at least two at construction
}

// Member is one (key, value) entry of an Object, in source order.
type Member struct {
	Key   string
	Value Value
	Span  token.Span // span of the key, or of the member as a whole
	Ann   Annotations
}

// Null constructs a Null value.
func Null(span token.Span) Value { return Value{Kind: NullKind, Span: span} }

// Bool constructs a Bool value.
func Bool(b bool, span token.Span) Value {
	return Value{Kind: BoolKind, Bool: b, Span: span}
}

// IntFromInt64 constructs an Int value from a native integer.
func IntFromInt64(n int64, span token.Span) Value {
	var d apd.Decimal
	d.SetInt64(n)
	return Value{Kind: IntKind, Num: d, Span: span}
}

// FloatFromFloat64 constructs a Float value from a native float.
func FloatFromFloat64(f float64, span token.Span) (Value, error) {
	var d apd.Decimal
	_, err := d.SetFloat64(f)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: FloatKind, Num: d, Span: span}, nil
}

// String constructs a String value.
func String(s string, span token.Span) Value {
	return Value{Kind: StringKind, Str: s, Span: span}
}

// Array constructs an Array value.
func Array(items []Value, span token.Span) Value {
	return Value{Kind: ArrayKind, Items: items, Span: span}
}

// Object constructs an Object value.
func Object(members []Member, span token.Span) Value {
	return Value{Kind: ObjectKind, Members: members, Span: span}
}

// Reference constructs an unresolved Reference value.
func Reference(path string, span token.Span) Value {
	return Value{Kind: ReferenceKind, Ref: path, Span: span}
}

// TypeConst constructs a Type value.
func TypeConst(t Type, span token.Span) Value {
	return Value{Kind: TypeKind, Type: t, Span: span}
}

// Call constructs a unary function application.
func Call(name string, arg Value, span token.Span) Value {
	return Value{Kind: CallKind, CallName: name, CallArg: &arg, Span: span}
}

// OpCall constructs a binary operator application (spec §4.5).
func OpCall(op string, left, right Value, span token.Span) Value {
	return Value{Kind: CallKind, CallName: op, OpLeft: &left, OpRight: &right, Span: span}
}

// IsBinaryOp reports whether a CallKind value is the binary OpCall form
// rather than a unary Call.
func (v Value) IsBinaryOp() bool {
	return v.Kind == CallKind && v.OpLeft != nil
}

// NewUnion constructs a Union value from two or more options (spec §3:
// "at least two at construction"). If exactly one option is supplied, it is
// returned unwrapped, since a one-option union carries no ambiguity.
func NewUnion(span token.Span, options ...Value) Value {
	if len(options) == 1 {
		return options[0]
	}
	return Value{Kind: UnionKind, Options: options, Span: span}
}

// Lookup finds a member by key in an Object value. It is the ADT-level
// counterpart of env.Lookup (internal/env) for a single level.
func (v Value) Lookup(key string) (*Value, bool) {
	if v.Kind != ObjectKind {
		return nil, false
	}
	for i := range v.Members {
		if v.Members[i].Key == key {
			return &v.Members[i].Value, true
		}
	}
	return nil, false
}

// IsConcrete reports whether v is free of References, Types, Calls, and
// Unions at its top level — the condition the exporter requires of every
// node on an exportable path (spec §4.7).
func (v Value) IsConcrete() bool {
	switch v.Kind {
	case ReferenceKind, TypeKind, CallKind, UnionKind:
		return false
	default:
		return true
	}
}
