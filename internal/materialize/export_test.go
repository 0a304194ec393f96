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

	"github.com/contagnas/polsia/token"
	"github.com/contagnas/polsia/value"
)

func TestExportScalars(t *testing.T) {
	out, err := Export(value.Null(token.NoSpan))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(out))

	out, err = Export(value.Bool(true, token.NoSpan))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out.(bool), true))

	out, err = Export(value.IntFromInt64(42, token.NoSpan))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out.(int64), int64(42)))

	out, err = Export(value.String("hi", token.NoSpan))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out.(string), "hi"))
}

func TestExportFloat(t *testing.T) {
	f, _ := value.FloatFromFloat64(1.5, token.NoSpan)
	out, err := Export(f)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out.(float64), 1.5))
}

func TestExportArray(t *testing.T) {
	arr := value.Array([]value.Value{
		value.IntFromInt64(1, token.NoSpan),
		value.IntFromInt64(2, token.NoSpan),
	}, token.NoSpan)
	out, err := Export(arr)
	qt.Assert(t, qt.IsNil(err))
	items := out.([]interface{})
	qt.Assert(t, qt.HasLen(items, 2))
	qt.Assert(t, qt.Equals(items[0].(int64), int64(1)))
}

func TestExportObjectElidesNoExportAndFunction(t *testing.T) {
	obj := value.Object([]value.Member{
		{Key: "visible", Value: value.IntFromInt64(1, token.NoSpan)},
		{Key: "hidden", Value: value.IntFromInt64(2, token.NoSpan), Ann: value.Annotations{NoExport: true}},
		{Key: "fn", Value: value.IntFromInt64(3, token.NoSpan), Ann: value.Annotations{Function: true}},
	}, token.NoSpan)

	out, err := Export(obj)
	qt.Assert(t, qt.IsNil(err))
	oo := out.(*OrderedObject)
	qt.Assert(t, qt.DeepEquals(oo.Keys, []string{"visible"}))
	qt.Assert(t, qt.HasLen(oo.Values, 1))
}

func TestExportNonConcreteErrors(t *testing.T) {
	_, err := Export(value.Reference("a", token.NoSpan))
	qt.Assert(t, qt.IsNotNil(err))

	_, err = Export(value.TypeConst(value.Any, token.NoSpan))
	qt.Assert(t, qt.IsNotNil(err))

	_, err = Export(value.Call("increment", value.IntFromInt64(1, token.NoSpan), token.NoSpan))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestExportNestedObjectOrderPreserved(t *testing.T) {
	obj := value.Object([]value.Member{
		{Key: "b", Value: value.IntFromInt64(1, token.NoSpan)},
		{Key: "a", Value: value.IntFromInt64(2, token.NoSpan)},
	}, token.NoSpan)

	out, err := Export(obj)
	qt.Assert(t, qt.IsNil(err))
	oo := out.(*OrderedObject)
	qt.Assert(t, qt.DeepEquals(oo.Keys, []string{"b", "a"}))
}
