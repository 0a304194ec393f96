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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/contagnas/polsia/internal/env"
	"github.com/contagnas/polsia/token"
	"github.com/contagnas/polsia/value"
)

func TestMaterializeSubstitutesReference(t *testing.T) {
	e := env.New()
	e.Set("a", value.IntFromInt64(5, token.NoSpan))
	e.Set("b", value.Reference("a", token.NoSpan))

	root := value.Object([]value.Member{
		{Key: "a", Value: value.IntFromInt64(5, token.NoSpan)},
		{Key: "b", Value: value.Reference("a", token.NoSpan)},
	}, token.NoSpan)

	out, err := Materialize(root, e)
	qt.Assert(t, qt.IsNil(err))
	b, ok := out.Lookup("b")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(b.Kind, value.IntKind))
}

func TestMaterializeUnresolvedReferenceErrors(t *testing.T) {
	e := env.New()
	root := value.Object([]value.Member{
		{Key: "a", Value: value.Reference("nosuch", token.NoSpan)},
	}, token.NoSpan)

	_, err := Materialize(root, e)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMaterializeReferenceToReferenceCycleIsBenign(t *testing.T) {
	e := env.New()
	e.Set("a", value.Reference("a", token.NoSpan))

	root := value.Object([]value.Member{
		{Key: "x", Value: value.Reference("a", token.NoSpan)},
	}, token.NoSpan)

	out, err := Materialize(root, e)
	qt.Assert(t, qt.IsNil(err))
	x, ok := out.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(x.Kind, value.ReferenceKind))
}

func TestMaterializeStructuralCycleErrors(t *testing.T) {
	e := env.New()
	e.Set("a", value.Object([]value.Member{
		{Key: "next", Value: value.Reference("b", token.NoSpan)},
	}, token.NoSpan))
	e.Set("b", value.Object([]value.Member{
		{Key: "next", Value: value.Reference("a", token.NoSpan)},
	}, token.NoSpan))

	root := value.Object([]value.Member{
		{Key: "x", Value: value.Reference("a", token.NoSpan)},
	}, token.NoSpan)

	_, err := Materialize(root, e)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMaterializeNoExportPassedThroughUntouched(t *testing.T) {
	e := env.New()
	root := value.Object([]value.Member{
		{Key: "secret", Value: value.Reference("nosuch", token.NoSpan), Ann: value.Annotations{NoExport: true}},
	}, token.NoSpan)

	out, err := Materialize(root, e)
	qt.Assert(t, qt.IsNil(err))
	s, ok := out.Lookup("secret")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(s.Kind, value.ReferenceKind))
}

func TestMaterializeEvaluatesCalls(t *testing.T) {
	e := env.New()
	root := value.Object([]value.Member{
		{Key: "n", Value: value.Call("increment", value.IntFromInt64(4, token.NoSpan), token.NoSpan)},
	}, token.NoSpan)

	out, err := Materialize(root, e)
	qt.Assert(t, qt.IsNil(err))
	n, ok := out.Lookup("n")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(n.Kind, value.IntKind))
}
