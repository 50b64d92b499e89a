package forms_test

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
Covers §8 scenario 1: `($if #t 1 2)` ⇒ 1, `($if #f 1 2)` ⇒ 2, and
`($if #f 1)` with no alternative clause reduces to #inert.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func newGroundContext(t *testing.T) *eval.Context {
	t.Helper()
	ground, err := forms.Ground()
	if err != nil {
		t.Fatalf("forms.Ground: %v", err)
	}
	return eval.NewContext(env.NewChild("user", ground))
}

func evalOne(t *testing.T, ctx *eval.Context, src string) *term.Term {
	t.Helper()
	exprs, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("reader.ReadAll(%q): %v", src, err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected exactly one top-level form in %q, got %d", src, len(exprs))
	}
	result, err := eval.Eval(ctx, exprs[0])
	if err != nil {
		t.Fatalf("eval.Eval(%q): %v", src, err)
	}
	return result
}

func TestIfTrueBranch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	got := evalOne(t, newGroundContext(t), `($if #t 1 2)`)
	if got.Value.Data != 1.0 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestIfFalseBranch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	got := evalOne(t, newGroundContext(t), `($if #f 1 2)`)
	if got.Value.Data != 2.0 {
		t.Errorf("expected 2, got %v", got)
	}
}

func TestIfNoAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	got := evalOne(t, newGroundContext(t), `($if #f 1)`)
	if got.Value.Kind != term.InertValue {
		t.Errorf("expected #inert, got %v", got)
	}
}
