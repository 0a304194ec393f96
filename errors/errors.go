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

// Package errors defines the shared error type the Polsia core reports
// through. Every failure in the unifier, resolver, call evaluator, and
// materializer is a *UnifyError carrying two positions so that an external
// renderer (out of scope, spec §1) can label both the current and the
// previous contributing site.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/contagnas/polsia/token"
)

// Code classifies a failure per the taxonomy in spec §7. It does not affect
// control flow beyond being attached to the error; every code is fatal to
// the document (spec §7: "none are retried").
type Code int8

const (
	// TypeMismatch is raised by unify_types or unify_type_value.
	TypeMismatch Code = iota
	// ArrayLengthMismatch is raised when two arrays being unified differ
	// in length.
	ArrayLengthMismatch
	// ShapeMismatch is raised when two values of incompatible kinds meet.
	ShapeMismatch
	// UnionExhausted is raised when no branch of a union survives.
	UnionExhausted
	// UnresolvedReference is raised when a reference survives to
	// materialization unresolved.
	UnresolvedReference
	// StructuralCycle is raised when materialization re-enters a
	// non-trivial path.
	StructuralCycle
	// UnknownFunction is raised when a call names neither a built-in nor
	// a known user-defined function.
	UnknownFunction
	// CallShapeMismatch is raised when a user-defined function's bindings
	// fail to unify with the supplied argument.
	CallShapeMismatch
	// UnspecifiedExportValue is raised when a non-concrete node reaches
	// the exporter on an exportable path.
	UnspecifiedExportValue
)

func (c Code) String() string {
	switch c {
	case TypeMismatch:
		return "type mismatch"
	case ArrayLengthMismatch:
		return "array lengths differ"
	case ShapeMismatch:
		return "values do not unify"
	case UnionExhausted:
		return "union exhausted"
	case UnresolvedReference:
		return "unresolved reference"
	case StructuralCycle:
		return "infinite structural cycle"
	case UnknownFunction:
		return "unknown function"
	case CallShapeMismatch:
		return "call arity or shape mismatch"
	case UnspecifiedExportValue:
		return "value is unspecified"
	default:
		return "error"
	}
}

// Error is the interface every Polsia core failure implements. It mirrors
// the shape of cue/errors.Error: a primary position, the previous
// contributing position, a dotted path, and the underlying message.
type Error interface {
	error

	// Code reports the taxonomy classification (spec §7).
	Code() Code

	// Position returns the span of the value that triggered the failure.
	Position() token.Span

	// PrevPosition returns the span of the earlier contributing value, or
	// token.NoSpan if there was none (e.g. a unary failure).
	PrevPosition() token.Span

	// Path returns the dotted path prefix at which the failure occurred,
	// empty at the root, with "[i]" for array indices (spec §7).
	Path() string
}

// UnifyError is the concrete Error implementation produced by every pass in
// the core.
type UnifyError struct {
	Msg      string
	Span     token.Span
	PrevSpan token.Span
	PathStr  string
	ErrCode  Code
}

var _ Error = (*UnifyError)(nil)

func (e *UnifyError) Error() string {
	var b strings.Builder
	if e.PathStr != "" {
		b.WriteString(e.PathStr)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	return b.String()
}

func (e *UnifyError) Code() Code              { return e.ErrCode }
func (e *UnifyError) Position() token.Span     { return e.Span }
func (e *UnifyError) PrevPosition() token.Span { return e.PrevSpan }
func (e *UnifyError) Path() string             { return e.PathStr }

// New builds a *UnifyError for the given code, path, and message. span is
// the current (informative) site; prev is the earlier contributing site,
// or token.NoSpan if there isn't one.
func New(code Code, path string, span, prev token.Span, format string, args ...interface{}) *UnifyError {
	return &UnifyError{
		Msg:      fmt.Sprintf(format, args...),
		Span:     span,
		PrevSpan: prev,
		PathStr:  path,
		ErrCode:  code,
	}
}

// WithPath returns a copy of e with its path prefixed by prefix, used as an
// error bubbles up through nested unification (spec §7: "path prefix...
// dotted elsewhere").
func WithPath(err error, prefix string) error {
	var ue *UnifyError
	if !As(err, &ue) {
		return err
	}
	cp := *ue
	if cp.PathStr == "" {
		cp.PathStr = prefix
	} else if prefix != "" {
		cp.PathStr = prefix + "." + cp.PathStr
	}
	return &cp
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching the type target points
// to.
func As(err error, target interface{}) bool { return errors.As(err, target) }
