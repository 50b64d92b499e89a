package eval_test

import (
	"testing"

	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/eval"
	"github.com/npillmayer/npla1/forms"
	"github.com/npillmayer/npla1/reader"
	"github.com/npillmayer/npla1/term"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

/*
Covers §8 scenario 2 (applicative wrap-count dispatch: a unary identity
lambda applied to an atom returns the atom unmodified, applied to a list
returns the list unmodified) and scenario 6 (operative vs. wrapped
operative: an unwrapped vau sees its operand unevaluated, wrapping it
forces evaluation).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func newTestContext(t *testing.T) *eval.Context {
	t.Helper()
	ground, err := forms.Ground()
	if err != nil {
		t.Fatalf("forms.Ground: %v", err)
	}
	user := env.NewChild("user", ground)
	return eval.NewContext(user)
}

func evalSrc(t *testing.T, ctx *eval.Context, src string) *term.Term {
	t.Helper()
	topForms, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("reader.ReadAll(%q): %v", src, err)
	}
	var result *term.Term
	for _, f := range topForms {
		result, err = eval.Eval(ctx, f)
		if err != nil {
			t.Fatalf("eval.Eval(%q): %v", src, err)
		}
	}
	return result
}

func TestApplicativeIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.eval")
	defer teardown()
	ctx := newTestContext(t)

	evalSrc(t, ctx, `($def! id ($lambda (x) x))`)

	got := evalSrc(t, ctx, `(id 42)`)
	if got.Value.Data != 42.0 {
		t.Errorf("expected 42, got %v", got)
	}

	got = evalSrc(t, ctx, `(id (list 1 2))`)
	if got.ListString() != "(1 2)" {
		t.Errorf("expected (1 2), got %s", got.ListString())
	}
}

func TestOperativeVsWrapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.eval")
	defer teardown()
	ctx := newTestContext(t)

	evalSrc(t, ctx, `($def! q ($vau (x) #ignore x))`)

	unevaluated := evalSrc(t, ctx, `(q (+ 1 2))`)
	if unevaluated.ListString() != "(+ 1 2)" {
		t.Errorf("unwrapped vau: expected operand left unevaluated as (+ 1 2), got %s", unevaluated.ListString())
	}

	evalSrc(t, ctx, `($def! wq (wrap q))`)
	evaluated := evalSrc(t, ctx, `(wq (+ 1 2))`)
	if evaluated.Value.Data != 3.0 {
		t.Errorf("wrapped vau: expected operand evaluated to 3, got %v", evaluated)
	}
}
