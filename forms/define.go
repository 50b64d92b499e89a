package forms

import (
	"github.com/npillmayer/npla1/env"
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

// wrapBody packages zero-or-more body expressions into one evaluable term:
// a single expression passes through unchanged; multiple are sequenced
// using the shared SequenceCombiner, without needing `$sequence` to be
// bound by name in the enclosing environment.
func wrapBody(exprs []*term.Term) *term.Term {
	if len(exprs) == 1 {
		return exprs[0]
	}
	children := make([]*term.Term, 0, len(exprs)+1)
	children = append(children, eval.CombinerTerm(SequenceCombiner))
	children = append(children, exprs...)
	return &term.Term{Children: children}
}

func symbolOrIgnore(t *term.Term) (*term.Symbol, error) {
	if t == nil {
		return term.IgnoreSymbol, nil
	}
	sym, ok := t.Value.Data.(*term.Symbol)
	if !ok {
		return nil, errors.NewBadIdentifier("expected a symbol or #ignore")
	}
	return sym, nil
}

// Lambda$ implements `$lambda formals body…` (§4.7.2): an applicative of
// wrap 1, no dynamic-env formal, static env = the environment $lambda ran in.
func Lambda$() *eval.Combiner {
	return tailOperative("$lambda", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		if err := requireArity("$lambda", operands, 2, -1); err != nil {
			return nil, nil, err
		}
		formal := operands.First()
		if err := eval.CheckParameterTree(formal); err != nil {
			return nil, nil, err
		}
		v := &eval.Vau{
			OpName:       "lambda",
			Formal:       formal,
			StaticParent: env.Parent{Kind: env.SingleParent, Single: env.NewEnvRef(ctx.Env)},
			Body:         wrapBody(operands.Rest().Children),
		}
		return eval.CombinerTerm(eval.Wrap(eval.VauCombiner(v))), nil, nil
	})
}

// Vau$ implements `$vau formals eformal body…` (§4.7.2): creates an
// operative capturing the dynamic-env formal `eformal`.
func Vau$() *eval.Combiner {
	return tailOperative("$vau", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		if err := requireArity("$vau", operands, 3, -1); err != nil {
			return nil, nil, err
		}
		formal := operands.First()
		if err := eval.CheckParameterTree(formal); err != nil {
			return nil, nil, err
		}
		eformal, err := symbolOrIgnore(nth(operands, 1))
		if err != nil {
			return nil, nil, err
		}
		v := &eval.Vau{
			OpName:       "vau",
			Formal:       formal,
			DynEnvFormal: eformal,
			StaticParent: env.Parent{Kind: env.SingleParent, Single: env.NewEnvRef(ctx.Env)},
			Body:         wrapBody(operands.Children[2:]),
		}
		return eval.CombinerTerm(eval.VauCombiner(v)), nil, nil
	})
}

// VauE$ implements `$vau/e env formals eformal body…`: as $vau but the
// static parent is the (evaluated) `env` expression instead of the current
// environment.
func VauE$() *eval.Combiner {
	return tailOperative("$vau/e", func(ctx *eval.Context, operands *term.Term) (*term.Term, *eval.TailCall, error) {
		if err := requireArity("$vau/e", operands, 4, -1); err != nil {
			return nil, nil, err
		}
		envExpr, err := eval.Eval(ctx, operands.First())
		if err != nil {
			return nil, nil, err
		}
		parent, err := eval.ParentFromEnvTerm(envExpr)
		if err != nil {
			return nil, nil, err
		}
		formal := nth(operands, 1)
		if err := eval.CheckParameterTree(formal); err != nil {
			return nil, nil, err
		}
		eformal, err := symbolOrIgnore(nth(operands, 2))
		if err != nil {
			return nil, nil, err
		}
		v := &eval.Vau{
			OpName:       "vau/e",
			Formal:       formal,
			DynEnvFormal: eformal,
			StaticParent: parent,
			Body:         wrapBody(operands.Children[3:]),
		}
		return eval.CombinerTerm(eval.VauCombiner(v)), nil, nil
	})
}

// setAdapter wraps the target environment for $defrec!/$set!/$setrec!. Its
// Define routes to Environment.Set, but eval.BindParameter binds only through
// DefineOverwrite, taken from the embedded environment, so these forms create
// or replace bindings in the target environment itself.
type setAdapter struct{ *env.Environment }

func (s setAdapter) Define(name string, t *term.Term) error {
	return s.Environment.Set(name, t)
}

// defineInto performs $def!/$defrec!/$set!/$setrec!. recursive pre-binds a
// placeholder when formal is a single symbol, so a lambda/vau value can refer
// to its own name; a formal tree gets no placeholder. useSet selects Set over
// Define for that placeholder (Set has no effect unless the name is already
// bound). All four forms then bind through eval.BindParameter, which creates
// or replaces bindings in target.
func defineInto(ctx *eval.Context, target *env.Environment, formal *term.Term, valueExpr *term.Term, recursive, useSet bool) (*term.Term, error) {
	if recursive {
		if sym, ok := formal.Value.Data.(*term.Symbol); ok && !sym.IsIgnore() {
			if useSet {
				_ = target.Set(sym.Name, Inert)
			} else {
				_ = target.Define(sym.Name, Inert)
			}
		}
	}
	value, err := eval.Eval(ctx, valueExpr)
	if err != nil {
		return nil, err
	}
	if useSet || recursive {
		if err := eval.BindParameter(setAdapter{target}, formal, value); err != nil {
			return nil, err
		}
		return Inert, nil
	}
	if err := eval.BindParameter(target, formal, value); err != nil {
		return nil, err
	}
	return Inert, nil
}

// Def$ implements `$def! formal value` (§4.7.2).
func Def$() *eval.Combiner {
	return nativeOperative("$def!", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("$def!", operands, 2, 2); err != nil {
			return nil, err
		}
		return defineInto(ctx, ctx.Env, operands.First(), nth(operands, 1), false, false)
	})
}

// DefRec$ implements `$defrec! formal value`: like $def! but, when formal is
// a single symbol, that name is visible within value's own evaluation
// (self-recursion).
func DefRec$() *eval.Combiner {
	return nativeOperative("$defrec!", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("$defrec!", operands, 2, 2); err != nil {
			return nil, err
		}
		return defineInto(ctx, ctx.Env, operands.First(), nth(operands, 1), true, false)
	})
}

// Set$ implements `$set! env formal value`, targeting an explicit environment.
func Set$() *eval.Combiner {
	return nativeOperative("$set!", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("$set!", operands, 3, 3); err != nil {
			return nil, err
		}
		envExpr, err := eval.Eval(ctx, operands.First())
		if err != nil {
			return nil, err
		}
		target, err := eval.EnvOf(envExpr)
		if err != nil {
			return nil, err
		}
		return defineInto(ctx, target, nth(operands, 1), nth(operands, 2), false, true)
	})
}

// SetRec$ implements `$setrec! env formal value`: as $set! but recursive.
func SetRec$() *eval.Combiner {
	return nativeOperative("$setrec!", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("$setrec!", operands, 3, 3); err != nil {
			return nil, err
		}
		envExpr, err := eval.Eval(ctx, operands.First())
		if err != nil {
			return nil, err
		}
		target, err := eval.EnvOf(envExpr)
		if err != nil {
			return nil, err
		}
		return defineInto(ctx, target, nth(operands, 1), nth(operands, 2), true, true)
	})
}
