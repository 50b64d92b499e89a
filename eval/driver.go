package eval

import (
	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// ReduceOnce performs a single reduction step (§4.3): branches dispatch as
// combinations, symbol leaves resolve through ctx.Resolve, and all other
// leaves are self-evaluating.
func ReduceOnce(ctx *Context, t *term.Term) (*term.Term, *TailCall, error) {
	if t == nil {
		ctx.setStatus(Clean)
		return t, nil, nil
	}
	if t.IsBranch() {
		head, _, err := ReduceOnce(ctx, t.First())
		if err != nil {
			return nil, nil, err
		}
		operands := t.Rest()
		result, tail, err := Dispatch(ctx, head, operands)
		if err != nil {
			return nil, nil, err
		}
		if tail != nil {
			return nil, tail, nil
		}
		ctx.setStatus(Regular)
		return result, nil, nil
	}

	switch t.Value.Kind {
	case term.SymbolValue:
		sym := t.Value.Data.(*term.Symbol)
		bound, holder, err := ctx.Resolve(ctx.Env, sym.Name)
		if err != nil {
			return nil, nil, err
		}
		_ = holder
		folded := term.PrepareCollapse(bound, holder)
		ctx.setStatus(Clean)
		return folded, nil, nil
	case term.NoValue:
		return nil, nil, errors.NewInvalidSyntax("empty term has no value and no children")
	default:
		ctx.setStatus(Clean)
		return t, nil, nil
	}
}

// Eval is the core entry point (§6: "Eval(term, env) → term"). It drives
// ReduceOnce in a loop: a *TailCall result swaps in the new environment and
// continues with the new body in the SAME Go stack frame, which is how
// object-language tail calls are bounded in host stack depth (§4.4). Each
// tail call entered through a vau without NoLift records a deferred lift, and
// the final result is lifted (dereferenced) that many times before it is
// returned. On exit, ctx.Env and ctx.TCO are restored to the caller's.
func Eval(ctx *Context, t *term.Term) (*term.Term, error) {
	frame := NewTCOAction("", EnvTerm(ctx.Env))
	prevTCO, prevEnv := ctx.TCO, ctx.Env
	ctx.TCO = frame
	defer func() { ctx.TCO, ctx.Env = prevTCO, prevEnv }()

	for {
		result, tail, err := ReduceOnce(ctx, t)
		if err != nil {
			return nil, err
		}
		if tail == nil {
			for ; frame.DeferredLifts > 0; frame.DeferredLifts-- {
				result = lift(result)
			}
			return result, nil
		}
		frame.Compress(tail.Env, tail.Combiner)
		if tail.Combiner != nil {
			if v, ok := tail.Combiner.Handler.(*Vau); ok && !v.NoLift {
				frame.DeferredLifts++
			}
		}
		if e, err := EnvOf(tail.Env); err == nil {
			ctx.Env = e
		}
		t = tail.Body
	}
}

// RunTail drains a single already-obtained *TailCall to completion, for
// callers outside the main trampoline (e.g. `apply`) that invoke a Handler
// directly and must still honor a tail-forwarding result. The caller's
// ctx.Env is restored on exit.
func RunTail(ctx *Context, tail *TailCall) (*term.Term, error) {
	if tail == nil {
		return nil, nil
	}
	prevEnv := ctx.Env
	defer func() { ctx.Env = prevEnv }()
	if e, err := EnvOf(tail.Env); err == nil {
		ctx.Env = e
	}
	return Eval(ctx, tail.Body)
}

// Reduce is the status-returning counterpart of Eval (§6: "Reduce(term,
// ctx) → status"), used by callers that only need the reduction status, not
// the resulting term (e.g. a REPL deciding whether to print).
func Reduce(t *term.Term, ctx *Context) (Status, error) {
	_, err := Eval(ctx, t)
	if err != nil {
		return ctx.LastStatus, err
	}
	return ctx.LastStatus, nil
}
