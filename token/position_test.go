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

package token

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestPosIsValid(t *testing.T) {
	qt.Assert(t, qt.IsFalse(NoPos.IsValid()))
	qt.Assert(t, qt.IsTrue(Pos(0).IsValid()))
	qt.Assert(t, qt.IsTrue(Pos(42).IsValid()))
}

func TestSpanIsValid(t *testing.T) {
	qt.Assert(t, qt.IsFalse(NoSpan.IsValid()))
	qt.Assert(t, qt.IsTrue(Span{Start: 0, End: 3}.IsValid()))
	qt.Assert(t, qt.IsTrue(Span{Start: 3, End: 3}.IsValid()))
	qt.Assert(t, qt.IsFalse(Span{Start: 3, End: 1}.IsValid()))
}

func TestSpanUnion(t *testing.T) {
	a := Span{Start: 2, End: 5}
	b := Span{Start: 0, End: 3}
	want := Span{Start: 0, End: 5}
	qt.Assert(t, qt.Equals(a.Union(b), want))
	qt.Assert(t, qt.Equals(b.Union(a), want))

	qt.Assert(t, qt.Equals(NoSpan.Union(a), a))
	qt.Assert(t, qt.Equals(a.Union(NoSpan), a))
}

func TestSpanString(t *testing.T) {
	qt.Assert(t, qt.Equals(NoSpan.String(), "-"))
	qt.Assert(t, qt.Equals(Span{Start: 1, End: 2}.String(), "#1-#2"))
}
