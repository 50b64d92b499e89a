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

// Dispatch implements §4.5 combiner dispatch: head has already been reduced
// to a combiner value, possibly still wrapped in the reference a bound-name
// lookup produces (§4.2) — the common case, since a combination's operator
// position is usually a symbol. For an applicative, each operand subterm is
// reduced left-to-right, WrapCount times, before the handler runs; for an
// operative the raw operand list is passed through untouched.
//
// Returns either a fully reduced result term, or a non-nil *TailCall for the
// driver's trampoline to continue with (a vau tail-entering its body).
func Dispatch(ctx *Context, head *term.Term, operands *term.Term) (*term.Term, *TailCall, error) {
	c, ok := AsCombiner(term.Deref(head))
	if !ok {
		return nil, nil, errors.NewTypeError("combination head is not a combiner")
	}

	evaluated := operands
	if c.IsApplicative() {
		var err error
		for i := 0; i < c.WrapCount; i++ {
			evaluated, err = evalOperandList(ctx, evaluated)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	result, tail, err := c.Handler.Call(ctx, evaluated)
	if err != nil {
		return nil, nil, err
	}
	if tail != nil {
		tail.Combiner = c
		return nil, tail, nil
	}
	regularize(result)
	return result, nil, nil
}

// evalOperandList reduces every child of operands once, left-to-right,
// marking the resulting leaves Temporary when they were prvalues (safe to
// move into the handler call), per §4.5 step 1.
func evalOperandList(ctx *Context, operands *term.Term) (*term.Term, error) {
	if operands == nil {
		return nil, nil
	}
	out := make([]*term.Term, 0, operands.Length())
	for _, child := range operands.Children {
		reduced, err := Eval(ctx, child)
		if err != nil {
			return nil, err
		}
		if reduced.IsPrvalue() {
			reduced.Tags = reduced.Tags.With(term.Temporary)
		}
		out = append(out, reduced)
	}
	return &term.Term{Children: out}, nil
}

// regularize clears combining-only tags from a freshly produced result so it
// carries only the tags meaningful to the caller (§4.5 step 3); a no-op for
// nil or already-normal results.
func regularize(t *term.Term) {
	if t == nil {
		return
	}
	t.Tags = t.Tags.Without(term.Sticky)
}
