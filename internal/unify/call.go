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
	"github.com/cockroachdb/apd/v3"

	"github.com/contagnas/polsia/errors"
	"github.com/contagnas/polsia/internal/env"
	"github.com/contagnas/polsia/token"
	"github.com/contagnas/polsia/value"
)

// builtins is the enumerated set of built-in unary functions (spec §4.5).
// decrement is a supplemented twin of increment (SPEC_FULL.md), grouped
// here the way the teacher's pkg/math groups Add next to Sub.
var builtins = map[string]func(apd.Decimal) (apd.Decimal, error){
	"increment": func(n apd.Decimal) (apd.Decimal, error) {
		var out apd.Decimal
		_, err := apd.BaseContext.Add(&out, &n, apd.New(1, 0))
		return out, err
	},
	"decrement": func(n apd.Decimal) (apd.Decimal, error) {
		var out apd.Decimal
		_, err := apd.BaseContext.Sub(&out, &n, apd.New(1, 0))
		return out, err
	},
}

// Evaluate dispatches a Call or OpCall value (spec §4.5). It never mutates
// v; on success it returns the reduced value, or a CallKind value if the
// call cannot yet reduce (v itself, or for the native form the call it
// dispatches to).
func Evaluate(ctx *Context, v value.Value, path string) (value.Value, error) {
	if v.IsBinaryOp() {
		return evaluateOp(ctx, v, path)
	}
	return evaluateCall(ctx, v.CallName, *v.CallArg, v, path)
}

func evaluateCall(ctx *Context, name string, arg value.Value, orig value.Value, path string) (value.Value, error) {
	resolved := resolveArg(ctx, arg)

	if name == "native" {
		return evaluateNative(ctx, resolved, orig, path)
	}

	if fn, ok := builtins[name]; ok {
		if resolved.Kind != value.IntKind {
			return orig, nil
		}
		out, err := fn(resolved.Num)
		if err != nil {
			return value.Value{}, errors.New(errors.CallShapeMismatch, path, orig.Span, token.NoSpan,
				"%s: %v", name, err)
		}
		return value.Value{Kind: value.IntKind, Num: out, Span: orig.Span}, nil
	}

	return evaluateUserFunction(ctx, name, resolved, orig, path)
}

// evaluateNative implements the native(["<fn>", arg]) dispatch form (spec
// §4.5): the resolved argument must be a two-element array [String(fn),
// value], and the named built-in or user function is invoked on value.
func evaluateNative(ctx *Context, resolved value.Value, orig value.Value, path string) (value.Value, error) {
	if resolved.Kind != value.ArrayKind || len(resolved.Items) != 2 || resolved.Items[0].Kind != value.StringKind {
		return orig, nil
	}
	fn := resolved.Items[0].Str
	arg := resolved.Items[1]
	return evaluateCall(ctx, fn, arg, value.Call(fn, arg, orig.Span), path)
}

// evaluateUserFunction implements the user-defined branch of spec §4.5:
// name must resolve (via the environment) to an Object, otherwise the call
// fails as an unknown function. Any Object is treated as a function: it is
// not checked for a Function annotation or for arg/return members. Its arg
// members are unified with the argument, its return members are unified
// into the result, and an Object with no return member fails.
func evaluateUserFunction(ctx *Context, name string, resolvedArg value.Value, orig value.Value, path string) (value.Value, error) {
	fn, ok := env.Lookup(ctx.Env, name)
	if !ok || fn.Kind != value.ObjectKind {
		return value.Value{}, errors.New(errors.UnknownFunction, path, orig.Span, token.NoSpan,
			"unknown function %s", name)
	}

	returns := make([]value.Value, 0, 1)
	bound := resolvedArg
	for _, m := range fn.Members {
		switch m.Key {
		case "arg":
			merged, err := Unify(ctx, m.Value, bound, path)
			if err != nil {
				return value.Value{}, errors.New(errors.CallShapeMismatch, path, orig.Span, m.Span,
					"argument to %s does not unify with its arg slot: %v", name, err)
			}
			bound = merged
		}
	}

	argPath := name + ".arg"
	for _, m := range fn.Members {
		if m.Key != "return" {
			continue
		}
		body := substitute(m.Value, argPath, bound)
		body = derefDeep(ctx, body, path)
		if len(returns) == 0 {
			returns = append(returns, body)
			continue
		}
		merged, err := Unify(ctx, returns[0], body, path)
		if err != nil {
			return value.Value{}, err
		}
		returns[0] = merged
	}

	if len(returns) == 0 {
		return value.Value{}, errors.New(errors.CallShapeMismatch, path, orig.Span, token.NoSpan,
			"function %s has no return", name)
	}
	return returns[0], nil
}

// evaluateOp implements the binary OpCall form (spec §4.5): "+" and "-"
// over integers, with the same unevaluated-call fallback as the unary
// built-ins.
func evaluateOp(ctx *Context, v value.Value, path string) (value.Value, error) {
	left := resolveArg(ctx, *v.OpLeft)
	right := resolveArg(ctx, *v.OpRight)
	if left.Kind != value.IntKind || right.Kind != value.IntKind {
		return v, nil
	}
	var out apd.Decimal
	var err error
	switch v.CallName {
	case "+":
		_, err = apd.BaseContext.Add(&out, &left.Num, &right.Num)
	case "-":
		_, err = apd.BaseContext.Sub(&out, &left.Num, &right.Num)
	default:
		return value.Value{}, errors.New(errors.UnknownFunction, path, v.Span, token.NoSpan,
			"unknown operator %s", v.CallName)
	}
	if err != nil {
		return value.Value{}, errors.New(errors.CallShapeMismatch, path, v.Span, token.NoSpan,
			"%s: %v", v.CallName, err)
	}
	return value.Value{Kind: value.IntKind, Num: out, Span: v.Span}, nil
}

// resolveArg resolves the argument's references first (spec §4.5),
// chasing through the environment and evaluating nested calls until it
// reaches a concrete or composite node, a cycle, or an unresolvable name.
func resolveArg(ctx *Context, v value.Value) value.Value {
	seen := map[string]bool{}
	for {
		switch v.Kind {
		case value.ReferenceKind:
			if seen[v.Ref] {
				return v
			}
			seen[v.Ref] = true
			next, ok := env.Lookup(ctx.Env, v.Ref)
			if !ok {
				return v
			}
			v = next
		case value.CallKind:
			reduced, err := Evaluate(ctx, v, "")
			if err != nil || reduced.Kind == value.CallKind {
				return v
			}
			v = reduced
		default:
			return v
		}
	}
}

// substitute replaces every Reference(argPath) inside v with bound. It
// does not descend into nested Function-annotated objects, since those
// introduce their own arg scope.
func substitute(v value.Value, argPath string, bound value.Value) value.Value {
	switch v.Kind {
	case value.ReferenceKind:
		if v.Ref == argPath {
			return bound
		}
		return v
	case value.ArrayKind:
		items := make([]value.Value, len(v.Items))
		for i, it := range v.Items {
			items[i] = substitute(it, argPath, bound)
		}
		v.Items = items
		return v
	case value.ObjectKind:
		members := make([]value.Member, len(v.Members))
		for i, m := range v.Members {
			mm := m
			if !m.Ann.Function {
				mm.Value = substitute(m.Value, argPath, bound)
			}
			members[i] = mm
		}
		v.Members = members
		return v
	case value.UnionKind:
		opts := make([]value.Value, len(v.Options))
		for i, o := range v.Options {
			opts[i] = substitute(o, argPath, bound)
		}
		v.Options = opts
		return v
	case value.CallKind:
		if v.IsBinaryOp() {
			l := substitute(*v.OpLeft, argPath, bound)
			r := substitute(*v.OpRight, argPath, bound)
			v.OpLeft, v.OpRight = &l, &r
		} else if v.CallArg != nil {
			a := substitute(*v.CallArg, argPath, bound)
			v.CallArg = &a
		}
		return v
	default:
		return v
	}
}

// derefDeep evaluates any Call/Reference nodes left in v after
// substitution, so a function's return expression comes back fully
// reduced rather than leaving behind nested pending calls.
func derefDeep(ctx *Context, v value.Value, path string) value.Value {
	switch v.Kind {
	case value.ReferenceKind:
		if next, ok := env.Lookup(ctx.Env, v.Ref); ok {
			return derefDeep(ctx, next, path)
		}
		return v
	case value.CallKind:
		reduced, err := Evaluate(ctx, v, path)
		if err != nil || reduced.Kind == value.CallKind {
			return v
		}
		return derefDeep(ctx, reduced, path)
	case value.ArrayKind:
		items := make([]value.Value, len(v.Items))
		for i, it := range v.Items {
			items[i] = derefDeep(ctx, it, path)
		}
		v.Items = items
		return v
	case value.ObjectKind:
		members := make([]value.Member, len(v.Members))
		for i, m := range v.Members {
			mm := m
			if !m.Ann.Function {
				mm.Value = derefDeep(ctx, m.Value, path)
			}
			members[i] = mm
		}
		v.Members = members
		return v
	default:
		return v
	}
}
