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

package errors

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/contagnas/polsia/token"
)

func TestNewAndError(t *testing.T) {
	span := token.Span{Start: 0, End: 3}
	err := New(TypeMismatch, "a.b", span, token.NoSpan, "bad value: %d", 3)
	qt.Assert(t, qt.Equals(err.Error(), "a.b: bad value: 3"))
	qt.Assert(t, qt.Equals(err.Code(), TypeMismatch))
	qt.Assert(t, qt.Equals(err.Position(), span))
	qt.Assert(t, qt.Equals(err.PrevPosition(), token.NoSpan))
	qt.Assert(t, qt.Equals(err.Path(), "a.b"))
}

func TestErrorNoPath(t *testing.T) {
	err := New(ShapeMismatch, "", token.NoSpan, token.NoSpan, "bad shape")
	qt.Assert(t, qt.Equals(err.Error(), "bad shape"))
}

func TestWithPath(t *testing.T) {
	err := New(UnionExhausted, "b", token.NoSpan, token.NoSpan, "exhausted")
	wrapped := WithPath(err, "a")
	var ue *UnifyError
	qt.Assert(t, qt.IsTrue(As(wrapped, &ue)))
	qt.Assert(t, qt.Equals(ue.Path(), "a.b"))

	rootErr := New(UnionExhausted, "", token.NoSpan, token.NoSpan, "exhausted")
	wrappedRoot := WithPath(rootErr, "a")
	qt.Assert(t, qt.IsTrue(As(wrappedRoot, &ue)))
	qt.Assert(t, qt.Equals(ue.Path(), "a"))
}

func TestWithPathNonUnifyError(t *testing.T) {
	plain := plainTestErr("boom")
	qt.Assert(t, qt.Equals(WithPath(plain, "a"), error(plain)))
}

type plainTestErr string

func (e plainTestErr) Error() string { return string(e) }

func TestCodeString(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{TypeMismatch, "type mismatch"},
		{ArrayLengthMismatch, "array lengths differ"},
		{ShapeMismatch, "values do not unify"},
		{UnionExhausted, "union exhausted"},
		{UnresolvedReference, "unresolved reference"},
		{StructuralCycle, "infinite structural cycle"},
		{UnknownFunction, "unknown function"},
		{CallShapeMismatch, "call arity or shape mismatch"},
		{UnspecifiedExportValue, "value is unspecified"},
	}
	for _, c := range cases {
		qt.Assert(t, qt.Equals(c.code.String(), c.want))
	}
}
