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

package unify

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestContextEnterLeave(t *testing.T) {
	ctx := newCtx()
	qt.Assert(t, qt.IsTrue(ctx.enter("a.b")))
	qt.Assert(t, qt.IsFalse(ctx.enter("a.b")))
	ctx.leave("a.b")
	qt.Assert(t, qt.IsTrue(ctx.enter("a.b")))
}
