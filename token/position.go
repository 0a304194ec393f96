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

// Package token defines the source position types shared by the Polsia
// core. The grammar (out of scope, see spec §1) is responsible for turning
// raw source text into byte offsets; this package only carries those
// offsets through the semantic passes so that diagnostics can point back at
// the two contributing sites an error names (spec §7).
package token

import "fmt"

// Pos is a byte offset into the source the parser consumed. It carries no
// file identity: the core evaluates exactly one document per invocation
// (spec §5), so there is never more than one source to disambiguate.
type Pos int

// NoPos (-1, since offset 0 is valid) indicates an unknown or synthesized
// position, for example on a value fabricated by the call evaluator rather
// than read from source.
const NoPos Pos = -1

// IsValid reports whether p refers to an actual offset in the source.
func (p Pos) IsValid() bool { return p >= 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("#%d", int(p))
}

// Span is a half-open byte range [Start, End) in the source. It is the unit
// of provenance attached to every spanned value (spec §3).
type Span struct {
	Start Pos
	End   Pos
}

// NoSpan is the zero-information span, used for values that have no source
// counterpart (e.g. a value synthesized by the call evaluator before it is
// unified against something spanned).
var NoSpan = Span{Start: NoPos, End: NoPos}

// IsValid reports whether s carries a real range with Start <= End.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start <= s.End
}

func (s Span) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%v-%v", s.Start, s.End)
}

// Union returns the smallest span covering both s and t. Used when a
// synthesized value (e.g. a materialized tree) needs to report a span that
// spans more than one contributing node.
func (s Span) Union(t Span) Span {
	if !s.IsValid() {
		return t
	}
	if !t.IsValid() {
		return s
	}
	start, end := s.Start, s.End
	if t.Start < start {
		start = t.Start
	}
	if t.End > end {
		end = t.End
	}
	return Span{Start: start, End: end}
}
