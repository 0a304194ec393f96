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

package jsonshim

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/contagnas/polsia/value"
)

func TestDecodeObject(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": "s", "c": [1, 2.5, true, null]}`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind, value.ObjectKind))

	a, ok := v.Lookup("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(a.Kind, value.IntKind))

	c, ok := v.Lookup("c")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(c.Kind, value.ArrayKind))
	qt.Assert(t, qt.HasLen(c.Items, 4))
	qt.Assert(t, qt.Equals(c.Items[1].Kind, value.FloatKind))
	qt.Assert(t, qt.Equals(c.Items[2].Kind, value.BoolKind))
	qt.Assert(t, qt.Equals(c.Items[3].Kind, value.NullKind))
}

func TestDecodeNonObjectRootIsWrapped(t *testing.T) {
	v, err := Decode([]byte(`42`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.Kind, value.ObjectKind))
	inner, ok := v.Lookup("value")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(inner.Kind, value.IntKind))
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	qt.Assert(t, qt.IsNotNil(err))
}
