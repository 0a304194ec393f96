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

// Package debug provides the optional tracing the teacher's evaluator does
// through OpContext.LogEval, scaled down to what a synchronous,
// single-pass core needs (spec §5): a handful of named checkpoints a
// caller can turn on with POLSIA_DEBUG, rather than a bespoke indenting
// logger.
package debug

import (
	"log/slog"
	"os"

	"github.com/kr/pretty"
)

// Tracer receives checkpoint notifications from the core passes. The
// zero value of Tracer (a nil interface held by callers) is never used
// directly; callers hold a Tracer obtained from New, which is always
// non-nil and simply does nothing when tracing is disabled.
type Tracer interface {
	// Step logs a named checkpoint (e.g. "resolve", "tree-unify:iter",
	// "materialize") together with a spanned value for context.
	Step(stage string, v interface{})
}

// New returns a Tracer. When POLSIA_DEBUG is unset, it returns a no-op.
// When set, it returns a slog-backed tracer that pretty-prints the value
// with kr/pretty, which is compact enough for the sum-typed Value tree
// without needing a bespoke dumper.
func New() Tracer {
	if os.Getenv("POLSIA_DEBUG") == "" {
		return noopTracer{}
	}
	return &slogTracer{log: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

type noopTracer struct{}

func (noopTracer) Step(string, interface{}) {}

type slogTracer struct {
	log *slog.Logger
}

func (t *slogTracer) Step(stage string, v interface{}) {
	t.log.Debug(stage, "value", pretty.Sprint(v))
}
