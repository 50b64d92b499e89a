package forms

import (
	"fmt"

	"github.com/cnf/structhash"
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

var encTypeSeq int

// MakeEncapsulationType$ implements `make-encapsulation-type` (§4.7.3): it
// returns a triple (constructor, predicate, decapsulator) sharing a fresh
// identity token. Tokens are compared by identity (pointer equality) only;
// structhash is used solely to produce a readable label for diagnostics.
func MakeEncapsulationType$() *eval.Combiner {
	return nativeApplicative("make-encapsulation-type", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		encTypeSeq++
		h, _ := structhash.Hash(struct{ Seq int }{encTypeSeq}, 1)
		tok := &term.EncToken{Label: fmt.Sprintf("enc-%d-%s", encTypeSeq, shortHash(h))}

		construct := eval.NewApplicative(&eval.NativeHandler{
			OpName: "encapsulation-constructor",
			Fn: func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
				if err := requireArity("encapsulation-constructor", operands, 1, 1); err != nil {
					return nil, err
				}
				opq := &term.Opaque{Token: tok, Payload: term.Deref(operands.First())}
				return term.NewLeaf(term.Value{Kind: term.OpaqueValue, Data: opq}), nil
			},
		})
		predicate := eval.NewApplicative(&eval.NativeHandler{
			OpName: "encapsulation-predicate",
			Fn: func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
				if err := requireArity("encapsulation-predicate", operands, 1, 1); err != nil {
					return nil, err
				}
				opq, ok := term.Deref(operands.First()).Value.Data.(*term.Opaque)
				return Bool(ok && opq.Is(tok)), nil
			},
		})
		decapsulate := eval.NewApplicative(&eval.NativeHandler{
			OpName: "encapsulation-decapsulator",
			Fn: func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
				if err := requireArity("encapsulation-decapsulator", operands, 1, 1); err != nil {
					return nil, err
				}
				opq, ok := term.Deref(operands.First()).Value.Data.(*term.Opaque)
				if !ok || !opq.Is(tok) {
					return nil, errors.NewTypeError("decapsulator: operand is not of this encapsulation type (%s)", tok.Label)
				}
				return term.PrepareCollapse(opq.Payload, nil), nil
			},
		})

		return &term.Term{Children: []*term.Term{
			eval.CombinerTerm(construct),
			eval.CombinerTerm(predicate),
			eval.CombinerTerm(decapsulate),
		}}, nil
	})
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
