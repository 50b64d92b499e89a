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

// List$ implements `list a…` (applicative): its operands arrive already
// evaluated, possibly as references when an operand was a bare variable
// (§4.2), so each is dereferenced to the plain value it names before being
// collected into the fresh list.
func List$() *eval.Combiner {
	return nativeApplicative("list", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		out := make([]*term.Term, 0, operands.Length())
		for _, x := range operands.Children {
			out = append(out, term.Deref(x))
		}
		return &term.Term{Children: out}, nil
	})
}

// Cons$ implements `cons x y` (applicative): prepend x to list y.
func Cons$() *eval.Combiner {
	return nativeApplicative("cons", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("cons", operands, 2, 2); err != nil {
			return nil, err
		}
		tail := term.Deref(nth(operands, 1))
		if !tail.IsBranch() && tail.Value.IsSet() {
			return nil, errors.NewListTypeError("cons: second operand is not a list")
		}
		return term.Cons(term.Deref(operands.First()), tail), nil
	})
}

// ConsPreserve$ implements `cons%`: as cons, but retains reference tags on
// the prepended head rather than copying it.
func ConsPreserve$() *eval.Combiner {
	return nativeApplicative("cons%", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("cons%", operands, 2, 2); err != nil {
			return nil, err
		}
		tail := term.Deref(nth(operands, 1))
		head := term.PrepareCollapse(operands.First(), nil)
		return term.Cons(head, tail), nil
	})
}

func requireNonEmptyList(op string, t *term.Term) error {
	if t == nil || !t.IsBranch() || t.Length() == 0 {
		return errors.NewListTypeError("%s: expected a non-empty list", op)
	}
	return nil
}

// First$ implements `first xs` (applicative): the head of a non-empty list.
func First$() *eval.Combiner {
	return nativeApplicative("first", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("first", operands, 1, 1); err != nil {
			return nil, err
		}
		xs := term.Deref(operands.First())
		if err := requireNonEmptyList("first", xs); err != nil {
			return nil, err
		}
		return xs.First(), nil
	})
}

// Rest$ implements `rest xs` (applicative): the tail of a non-empty list.
func Rest$() *eval.Combiner {
	return nativeApplicative("rest", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("rest", operands, 1, 1); err != nil {
			return nil, err
		}
		xs := term.Deref(operands.First())
		if err := requireNonEmptyList("rest", xs); err != nil {
			return nil, err
		}
		return xs.Rest(), nil
	})
}

// SetFirst$ implements `set-first! xs v` (applicative): mutates xs's head in
// place; requires xs to be a modifiable (non-Nonmodifying) list reference.
// Dereferencing xs (rather than copying) is what makes the mutation visible
// through every other binding that refers to the same list: xs aliases the
// referent a variable read points at, so writing xs.Children[0] writes the
// storage the binding shares, not a private copy of it.
func SetFirst$() *eval.Combiner {
	return nativeApplicative("set-first!", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("set-first!", operands, 2, 2); err != nil {
			return nil, err
		}
		xs := term.Deref(operands.First())
		if err := requireNonEmptyList("set-first!", xs); err != nil {
			return nil, err
		}
		if xs.Tags.Has(term.Nonmodifying) {
			return nil, errors.NewValueCategoryError("set-first!: operand is non-modifying")
		}
		xs.Children[0] = term.Deref(nth(operands, 1))
		return Inert, nil
	})
}

// Append$ implements `append xs ys…` (applicative): concatenates lists.
func Append$() *eval.Combiner {
	return nativeApplicative("append", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		out := make([]*term.Term, 0)
		for _, l := range operands.Children {
			l = term.Deref(l)
			if l == nil {
				continue
			}
			if !l.IsBranch() && l.Value.IsSet() {
				return nil, errors.NewListTypeError("append: operand is not a list")
			}
			out = append(out, l.Children...)
		}
		return &term.Term{Children: out}, nil
	})
}

// ListConcat$ implements `list-concat xs ys…`, an alias of append kept
// distinct because Kernel code conventionally spells both names.
func ListConcat$() *eval.Combiner {
	c := Append$()
	return eval.NewApplicative(&eval.NativeHandler{OpName: "list-concat", Fn: func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		r, _, err := c.Handler.Call(ctx, operands)
		return r, err
	}})
}

// Map1$ implements `map1 f xs` (applicative): applies f to every element of
// xs, driven through the trampoline one call per element so long input
// lists do not exhaust the host stack (§4.7.2).
func Map1$() *eval.Combiner {
	return nativeApplicative("map1", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("map1", operands, 2, 2); err != nil {
			return nil, err
		}
		c, ok := eval.AsCombiner(term.Deref(operands.First()))
		if !ok {
			return nil, errors.NewTypeError("map1: expected a combiner")
		}
		xs := term.Deref(nth(operands, 1))
		out := make([]*term.Term, 0, xs.Length())
		for _, x := range xs.Children {
			call := &term.Term{Children: []*term.Term{x}}
			r, tail, err := c.Handler.Call(ctx, call)
			if err != nil {
				return nil, err
			}
			if tail != nil {
				r, err = eval.RunTail(ctx, tail)
				if err != nil {
					return nil, err
				}
			}
			out = append(out, r)
		}
		return &term.Term{Children: out}, nil
	})
}

// FoldR1$ implements `foldr1 f xs` (applicative): right fold of xs using f
// as the binary combining function, f applied to the last two elements
// first.
func FoldR1$() *eval.Combiner {
	return nativeApplicative("foldr1", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("foldr1", operands, 2, 2); err != nil {
			return nil, err
		}
		c, ok := eval.AsCombiner(term.Deref(operands.First()))
		if !ok {
			return nil, errors.NewTypeError("foldr1: expected a combiner")
		}
		xs := term.Deref(nth(operands, 1))
		if err := requireNonEmptyList("foldr1", xs); err != nil {
			return nil, err
		}
		acc := xs.Children[len(xs.Children)-1]
		for i := len(xs.Children) - 2; i >= 0; i-- {
			call := &term.Term{Children: []*term.Term{xs.Children[i], acc}}
			r, tail, err := c.Handler.Call(ctx, call)
			if err != nil {
				return nil, err
			}
			if tail != nil {
				r, err = eval.RunTail(ctx, tail)
				if err != nil {
					return nil, err
				}
			}
			acc = r
		}
		return acc, nil
	})
}

// Accl$ implements `accl` (left accumulation): folds xs left-to-right,
// threading an explicit accumulator through f, as a cooperative loop rather
// than host recursion.
func Accl$() *eval.Combiner {
	return nativeApplicative("accl", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("accl", operands, 3, 3); err != nil {
			return nil, err
		}
		xs := term.Deref(operands.First())
		seed := term.Deref(nth(operands, 1))
		c, ok := eval.AsCombiner(term.Deref(nth(operands, 2)))
		if !ok {
			return nil, errors.NewTypeError("accl: expected a combiner")
		}
		acc := seed
		for _, x := range xs.Children {
			call := &term.Term{Children: []*term.Term{acc, x}}
			r, tail, err := c.Handler.Call(ctx, call)
			if err != nil {
				return nil, err
			}
			if tail != nil {
				r, err = eval.RunTail(ctx, tail)
				if err != nil {
					return nil, err
				}
			}
			acc = r
		}
		return acc, nil
	})
}

// Accr$ implements `accr` (right accumulation): folds xs right-to-left.
func Accr$() *eval.Combiner {
	return nativeApplicative("accr", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("accr", operands, 3, 3); err != nil {
			return nil, err
		}
		xs := term.Deref(operands.First())
		seed := term.Deref(nth(operands, 1))
		c, ok := eval.AsCombiner(term.Deref(nth(operands, 2)))
		if !ok {
			return nil, errors.NewTypeError("accr: expected a combiner")
		}
		acc := seed
		for i := len(xs.Children) - 1; i >= 0; i-- {
			call := &term.Term{Children: []*term.Term{xs.Children[i], acc}}
			r, tail, err := c.Handler.Call(ctx, call)
			if err != nil {
				return nil, err
			}
			if tail != nil {
				r, err = eval.RunTail(ctx, tail)
				if err != nil {
					return nil, err
				}
			}
			acc = r
		}
		return acc, nil
	})
}

// MakeEnvironment$ implements `make-environment parents…` (applicative): a
// fresh environment whose parent list is the (already-reduced) operands.
func MakeEnvironment$() *eval.Combiner {
	return nativeApplicative("make-environment", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		parents := make([]*env.Environment, 0, operands.Length())
		for _, p := range operands.Children {
			e, err := eval.EnvOf(p)
			if err != nil {
				return nil, err
			}
			parents = append(parents, e)
		}
		var fresh *env.Environment
		switch len(parents) {
		case 0:
			fresh = env.New("anonymous")
		case 1:
			fresh = env.NewChild("anonymous", parents[0])
		default:
			fresh = env.NewChildOfList("anonymous", parents)
		}
		return eval.EnvTerm(fresh), nil
	})
}
