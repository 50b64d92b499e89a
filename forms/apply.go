package forms

import (
	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/eval"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Eval$ implements `eval e env` (applicative, §4.7.2): reduces the
// already-evaluated-to-data operand e under the already-evaluated env, and
// returns the result with references stripped.
func Eval$() *eval.Combiner {
	return nativeApplicative("eval", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("eval", operands, 2, 2); err != nil {
			return nil, err
		}
		target, err := envOf(nth(operands, 1))
		if err != nil {
			return nil, err
		}
		saved := ctx.Env
		ctx.Env = target
		defer func() { ctx.Env = saved }()
		result, err := eval.Eval(ctx, term.Deref(operands.First()))
		if err != nil {
			return nil, err
		}
		return term.Deref(result), nil
	})
}

// EvalPreserve$ implements `eval%`: as `eval`, but does not strip reference
// tags from the result (preserves the lvalue/xvalue distinction for callers
// that intend to mutate through it).
func EvalPreserve$() *eval.Combiner {
	return nativeApplicative("eval%", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("eval%", operands, 2, 2); err != nil {
			return nil, err
		}
		target, err := envOf(nth(operands, 1))
		if err != nil {
			return nil, err
		}
		saved := ctx.Env
		ctx.Env = target
		defer func() { ctx.Env = saved }()
		return eval.Eval(ctx, term.Deref(operands.First()))
	})
}

// Wrap$ implements `wrap comb` (applicative 1): increments comb's wrap count.
func Wrap$() *eval.Combiner {
	return nativeApplicative("wrap", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("wrap", operands, 1, 1); err != nil {
			return nil, err
		}
		c, ok := eval.AsCombiner(term.Deref(operands.First()))
		if !ok {
			return nil, errors.NewTypeError("wrap: expected a combiner")
		}
		return eval.CombinerTerm(eval.Wrap(c)), nil
	})
}

// Unwrap$ implements `unwrap comb` (applicative 1): decrements comb's wrap
// count; fails if comb is already an operative.
func Unwrap$() *eval.Combiner {
	return nativeApplicative("unwrap", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("unwrap", operands, 1, 1); err != nil {
			return nil, err
		}
		c, ok := eval.AsCombiner(term.Deref(operands.First()))
		if !ok {
			return nil, errors.NewTypeError("unwrap: expected a combiner")
		}
		unwrapped, err := eval.Unwrap(c)
		if err != nil {
			return nil, err
		}
		return eval.CombinerTerm(unwrapped), nil
	})
}

// Apply$ implements `apply f xs [env]` (applicative 2-3): applies f's
// underlying handler to the already-evaluated operand list xs directly,
// bypassing f's own wrap-count evaluation (§4.7.2: "Apply unwrapped f").
func Apply$() *eval.Combiner {
	return nativeApplicative("apply", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("apply", operands, 2, 3); err != nil {
			return nil, err
		}
		c, ok := eval.AsCombiner(term.Deref(operands.First()))
		if !ok {
			return nil, errors.NewTypeError("apply: expected a combiner")
		}
		xs := term.Deref(nth(operands, 1))
		if envExpr := nth(operands, 2); envExpr != nil {
			target, err := envOf(envExpr)
			if err != nil {
				return nil, err
			}
			saved := ctx.Env
			ctx.Env = target
			defer func() { ctx.Env = saved }()
		}
		result, tail, err := c.Handler.Call(ctx, xs)
		if err != nil {
			return nil, err
		}
		if tail != nil {
			return eval.RunTail(ctx, tail)
		}
		return result, nil
	})
}
