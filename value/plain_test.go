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

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/contagnas/polsia/token"
)

func TestEqualIgnoresSpan(t *testing.T) {
	a := IntFromInt64(3, token.Span{Start: 0, End: 1})
	b := IntFromInt64(3, token.Span{Start: 10, End: 11})
	qt.Assert(t, qt.IsTrue(Equal(a, b)))
}

func TestEqualDistinguishesKind(t *testing.T) {
	a := IntFromInt64(3, token.NoSpan)
	f, _ := FloatFromFloat64(3, token.NoSpan)
	qt.Assert(t, qt.IsFalse(Equal(a, f)))
}

func TestEqualReferences(t *testing.T) {
	a := Reference("a.b", token.Span{Start: 0, End: 1})
	b := Reference("a.b", token.Span{Start: 5, End: 6})
	c := Reference("a.c", token.NoSpan)
	qt.Assert(t, qt.IsTrue(Equal(a, b)))
	qt.Assert(t, qt.IsFalse(Equal(a, c)))
}

func TestEqualObjects(t *testing.T) {
	a := Object([]Member{
		{Key: "x", Value: IntFromInt64(1, token.NoSpan)},
		{Key: "y", Value: String("s", token.NoSpan)},
	}, token.NoSpan)
	b := Object([]Member{
		{Key: "x", Value: IntFromInt64(1, token.Span{Start: 3, End: 4})},
		{Key: "y", Value: String("s", token.NoSpan)},
	}, token.Span{Start: 9, End: 10})
	qt.Assert(t, qt.IsTrue(Equal(a, b)))

	c := Object([]Member{
		{Key: "x", Value: IntFromInt64(2, token.NoSpan)},
		{Key: "y", Value: String("s", token.NoSpan)},
	}, token.NoSpan)
	qt.Assert(t, qt.IsFalse(Equal(a, c)))
}

func TestEqualArraysAndUnions(t *testing.T) {
	arr1 := Array([]Value{IntFromInt64(1, token.NoSpan), IntFromInt64(2, token.NoSpan)}, token.NoSpan)
	arr2 := Array([]Value{IntFromInt64(1, token.NoSpan), IntFromInt64(2, token.NoSpan)}, token.NoSpan)
	qt.Assert(t, qt.IsTrue(Equal(arr1, arr2)))

	u1 := NewUnion(token.NoSpan, IntFromInt64(1, token.NoSpan), IntFromInt64(2, token.NoSpan))
	u2 := NewUnion(token.NoSpan, IntFromInt64(1, token.NoSpan), IntFromInt64(2, token.NoSpan))
	qt.Assert(t, qt.IsTrue(Equal(u1, u2)))
}
