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

func tailOperative(name string, fn func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error)) *eval.Combiner {
	return eval.NewOperative(&eval.NativeTailHandler{OpName: name, Fn: fn})
}

// SequenceCombiner is the shared $sequence combiner value, reused directly
// (not looked up by name) wherever a multi-expression body needs
// sequencing, e.g. $lambda/$vau body wrapping in define.go.
var SequenceCombiner = Sequence$()

// If$ implements `$if test c [a]` (§4.7.2): reduces test eagerly, then
// tail-forwards into whichever branch applies so that `$if`-chained
// recursion does not grow the host stack.
func If$() *eval.Combiner {
	return tailOperative("$if", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		if err := requireArity("$if", operands, 2, 3); err != nil {
			return nil, nil, err
		}
		test, err := eval.Eval(ctx, nth(operands, 0))
		if err != nil {
			return nil, nil, err
		}
		if !IsFalse(test) {
			return nil, eval.TailInto(eval.EnvTerm(ctx.Env), nth(operands, 1)), nil
		}
		if alt := nth(operands, 2); alt != nil {
			return nil, eval.TailInto(eval.EnvTerm(ctx.Env), alt), nil
		}
		return Inert, nil, nil
	})
}

// Quote$ implements `quote x` (operative 1): returns its single operand
// unevaluated, the reader's `'x` shorthand expanding to `(quote x)`.
func Quote$() *eval.Combiner {
	return nativeOperative("quote", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("quote", operands, 1, 1); err != nil {
			return nil, err
		}
		return operands.First(), nil
	})
}

// Cond$ implements `$cond clause…`: the first clause whose test reduces
// non-#f has its tail evaluated sequentially via Sequence$'s logic.
func Cond$() *eval.Combiner {
	return tailOperative("$cond", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		for _, clause := range operands.Children {
			if !clause.IsBranch() || clause.Length() == 0 {
				return nil, nil, errors.NewInvalidSyntax("$cond: malformed clause %s", clause.ListString())
			}
			test, err := eval.Eval(ctx, clause.First())
			if err != nil {
				return nil, nil, err
			}
			if !IsFalse(test) {
				body := clause.Rest()
				if body.Length() == 0 {
					return test, nil, nil
				}
				return sequenceTail(ctx, body)
			}
		}
		return Inert, nil, nil
	})
}

// And$ implements `$and? e…`: short-circuits on the first #f, else
// tail-forwards the last operand.
func And$() *eval.Combiner {
	return tailOperative("$and?", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		n := operands.Length()
		if n == 0 {
			return True, nil, nil
		}
		for i := 0; i < n-1; i++ {
			v, err := eval.Eval(ctx, operands.Children[i])
			if err != nil {
				return nil, nil, err
			}
			if IsFalse(v) {
				return False, nil, nil
			}
		}
		return nil, eval.TailInto(eval.EnvTerm(ctx.Env), operands.Children[n-1]), nil
	})
}

// Or$ implements `$or? e…`: short-circuits on the first non-#f, else
// tail-forwards the last operand.
func Or$() *eval.Combiner {
	return tailOperative("$or?", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		n := operands.Length()
		if n == 0 {
			return False, nil, nil
		}
		for i := 0; i < n-1; i++ {
			v, err := eval.Eval(ctx, operands.Children[i])
			if err != nil {
				return nil, nil, err
			}
			if !IsFalse(v) {
				return v, nil, nil
			}
		}
		return nil, eval.TailInto(eval.EnvTerm(ctx.Env), operands.Children[n-1]), nil
	})
}

// Sequence$ implements `$sequence e…`: ordered reduction, last operand
// tail-forwarded; result is #inert if empty.
func Sequence$() *eval.Combiner {
	return tailOperative("$sequence", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		return sequenceTail(ctx, operands)
	})
}

// sequenceTail evaluates all but the last child of body, then tail-forwards
// the last one; shared by $sequence, $cond clause bodies, $when and $unless.
func sequenceTail(ctx *eval.Context, body *term.Term) (*term.Term, *eval.TailCall, error) {
	n := body.Length()
	if n == 0 {
		return Inert, nil, nil
	}
	for i := 0; i < n-1; i++ {
		if _, err := eval.Eval(ctx, body.Children[i]); err != nil {
			return nil, nil, err
		}
	}
	return nil, eval.TailInto(eval.EnvTerm(ctx.Env), body.Children[n-1]), nil
}

// When$ implements `$when test body…`: body is sequenced iff test reduces non-#f.
func When$() *eval.Combiner {
	return tailOperative("$when", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		if err := requireArity("$when", operands, 1, -1); err != nil {
			return nil, nil, err
		}
		test, err := eval.Eval(ctx, operands.First())
		if err != nil {
			return nil, nil, err
		}
		if IsFalse(test) {
			return Inert, nil, nil
		}
		return sequenceTail(ctx, operands.Rest())
	})
}

// Unless$ implements `$unless test body…`: body is sequenced iff test reduces #f.
func Unless$() *eval.Combiner {
	return tailOperative("$unless", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		if err := requireArity("$unless", operands, 1, -1); err != nil {
			return nil, nil, err
		}
		test, err := eval.Eval(ctx, operands.First())
		if err != nil {
			return nil, nil, err
		}
		if !IsFalse(test) {
			return Inert, nil, nil
		}
		return sequenceTail(ctx, operands.Rest())
	})
}
