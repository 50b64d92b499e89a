package eval

import (
	"fmt"

	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// TailCall is returned by a Handler.Call that wants to tail-enter a body
// term under a new environment rather than recurse (§4.4, §4.6 step 4):
// the driver's trampoline continues reducing Body under Env in the same
// Go stack frame instead of growing the call stack.
type TailCall struct {
	Env      *term.Term // carries an EnvironmentValue/WeakEnvironmentValue; see EnvOf
	Body     *term.Term
	Combiner *Combiner // the combiner whose call produced this tail call
}

// Handler is the callable behind a combiner. Call receives the context and
// the operand list (not yet evaluated for an operative; already wrap-count
// evaluated for an applicative, per §4.5). A non-nil *TailCall return means
// "tail-enter TailCall.Body instead of returning t"; t is ignored in that case.
type Handler interface {
	Call(ctx *Context, operands *term.Term) (*term.Term, *TailCall, error)
	// Name is used only for diagnostics (§4.4's "operator-name").
	Name() string
}

// NativeHandler adapts a plain Go function to Handler, the way the teacher
// wraps Go closures as terex Operators. Native (built-in) handlers never
// tail-call; they run synchronously to completion per §4.5.
type NativeHandler struct {
	OpName string
	Fn     func(ctx *Context, operands *term.Term) (*term.Term, error)
}

func (h *NativeHandler) Call(ctx *Context, operands *term.Term) (*term.Term, *TailCall, error) {
	t, err := h.Fn(ctx, operands)
	return t, nil, err
}

func (h *NativeHandler) Name() string { return h.OpName }

// NativeTailHandler is a native handler that may itself forward a tail
// position — used by control forms ($if, $cond, $and?, $or?, $sequence,
// $when, $unless) whose "the tail is evaluated" operand must reuse the
// enclosing trampoline rather than recurse through a fresh Eval call, or
// chained $if/$cond forms would grow the host stack once per iteration and
// defeat PTC (§4.4).
type NativeTailHandler struct {
	OpName string
	Fn     func(ctx *Context, operands *term.Term) (*term.Term, *TailCall, error)
}

func (h *NativeTailHandler) Call(ctx *Context, operands *term.Term) (*term.Term, *TailCall, error) {
	return h.Fn(ctx, operands)
}

func (h *NativeTailHandler) Name() string { return h.OpName }

// TailInto builds a *TailCall continuing evaluation of body under env (the
// usual case: the same environment the form itself ran in).
func TailInto(env *term.Term, body *term.Term) *TailCall {
	return &TailCall{Env: env, Body: body}
}

// Combiner is the combiner value of §2/§3: a handler paired with a
// wrapping-count. WrapCount == 0 means operative; > 0 means applicative,
// evaluating each argument WrapCount times before calling the handler.
type Combiner struct {
	Handler   Handler
	WrapCount int
}

// NewOperative wraps h as an operative combiner (wrap count 0).
func NewOperative(h Handler) *Combiner {
	return &Combiner{Handler: h}
}

// NewApplicative wraps h as an applicative combiner of wrap count 1, the
// usual starting point for $lambda-created combiners (§4.7.2).
func NewApplicative(h Handler) *Combiner {
	return &Combiner{Handler: h, WrapCount: 1}
}

func (c *Combiner) IsOperative() bool { return c.WrapCount == 0 }

func (c *Combiner) IsApplicative() bool { return c.WrapCount > 0 }

// Wrap increments the wrap count, turning an operative into an applicative
// or raising the strictness of an existing applicative by one level.
func Wrap(c *Combiner) *Combiner {
	return &Combiner{Handler: c.Handler, WrapCount: c.WrapCount + 1}
}

// Unwrap decrements the wrap count; unwrapping an operative (count already
// zero) is a type error (spec §4.5, "Error conditions").
func Unwrap(c *Combiner) (*Combiner, error) {
	if c.WrapCount == 0 {
		return nil, errors.NewTypeError("cannot unwrap an operative combiner (%s)", c.Handler.Name())
	}
	return &Combiner{Handler: c.Handler, WrapCount: c.WrapCount - 1}, nil
}

func (c *Combiner) String() string {
	kind := "operative"
	if c.IsApplicative() {
		kind = "applicative"
	}
	return fmt.Sprintf("#combiner[%s %s wrap=%d]", c.Handler.Name(), kind, c.WrapCount)
}

// AsCombiner extracts the combiner value carried by t, the way dispatch
// expects a reduced head term to present it.
func AsCombiner(t *term.Term) (*Combiner, bool) {
	if t == nil || t.Value.Kind != term.CombinerValue {
		return nil, false
	}
	c, ok := t.Value.Data.(*Combiner)
	return c, ok
}

// CombinerTerm wraps c as a leaf term carrying a CombinerValue.
func CombinerTerm(c *Combiner) *term.Term {
	return term.NewLeaf(term.Value{Kind: term.CombinerValue, Data: c})
}
