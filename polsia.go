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

// Package polsia is the document-level entry point for the semantic core
// (spec §2): it drives relative reference resolution, the fixed-point tree
// unifier, reference materialization, and JSON export in sequence,
// stopping at the first failure (spec §7: "the first failure aborts the
// current document; no partial JSON is emitted").
package polsia

import (
	"github.com/contagnas/polsia/internal/debug"
	"github.com/contagnas/polsia/internal/materialize"
	"github.com/contagnas/polsia/internal/resolve"
	"github.com/contagnas/polsia/internal/tree"
	"github.com/contagnas/polsia/value"
)

// Eval runs the full pipeline over a parsed document root and returns the
// exported JSON-compatible value on success.
func Eval(root value.Value) (interface{}, error) {
	return EvalTraced(root, debug.New())
}

// EvalTraced is Eval with an explicit Tracer. Eval calls it with
// debug.New(), which traces only when POLSIA_DEBUG is set.
func EvalTraced(root value.Value, tr debug.Tracer) (interface{}, error) {
	tr.Step("resolve", root)
	resolved := resolve.Resolve(root)

	tr.Step("tree-unify", resolved)
	merged, env, err := tree.Unify(resolved)
	if err != nil {
		return nil, err
	}

	tr.Step("materialize", merged)
	final, err := materialize.Materialize(merged, env)
	if err != nil {
		return nil, err
	}

	tr.Step("export", final)
	return materialize.Export(final)
}
