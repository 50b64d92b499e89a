/*
Package forms implements NPLA1's built-in special forms (§4.7.2), the
encapsulation facility (§4.7.3) and the native combiner registry that makes
them visible to a ground environment (§6).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package forms

import (
	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/eval"
	"github.com/npillmayer/npla1/term"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("npla1.forms")
}

// False and True are the canonical Kernel boolean leaves.
var (
	False = term.NewLeaf(term.Value{Kind: term.Primitive, Data: false})
	True  = term.NewLeaf(term.Value{Kind: term.Primitive, Data: true})
	Inert = term.NewLeaf(term.Value{Kind: term.InertValue})
	Ignore = term.NewLeaf(term.Value{Kind: term.IgnoreValue})
)

// IsFalse reports whether t is the Kernel #f constant; every other value,
// including the empty list, counts as true for $if/$and?/$or?/$cond.
func IsFalse(t *term.Term) bool {
	t = term.Deref(t)
	if t == nil {
		return false
	}
	b, ok := t.Value.Data.(bool)
	return ok && t.Value.Kind == term.Primitive && !b
}

// Bool wraps a Go bool as the corresponding Kernel boolean leaf.
func Bool(b bool) *term.Term {
	if b {
		return True
	}
	return False
}

// nth returns the n-th operand (0-based) of a branch term, or nil past the end.
func nth(operands *term.Term, n int) *term.Term {
	if operands == nil || n >= operands.Length() {
		return nil
	}
	return operands.Children[n]
}

func requireArity(name string, operands *term.Term, min, max int) error {
	got := operands.Length()
	if got < min || (max >= 0 && got > max) {
		return errors.NewArityMismatch("%s: expected %d..%d operand(s), got %d", name, min, max, got)
	}
	return nil
}

// nativeOperative and nativeApplicative are small constructors shared by
// every file in this package for registering a native operative or
// applicative.
func nativeOperative(name string, fn func(ctx *eval.Context, operands *term.Term) (*term.Term, error)) *eval.Combiner {
	return eval.NewOperative(&eval.NativeHandler{OpName: name, Fn: fn})
}

func nativeApplicative(name string, fn func(ctx *eval.Context, operands *term.Term) (*term.Term, error)) *eval.Combiner {
	return eval.NewApplicative(&eval.NativeHandler{OpName: name, Fn: fn})
}

// envOf is a small helper for forms needing the *env.Environment behind a
// bare combiner-free leaf, e.g. the `eval` applicative's env argument.
func envOf(t *term.Term) (*env.Environment, error) {
	return eval.EnvOf(t)
}
