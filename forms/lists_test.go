package forms_test

import (
	"testing"

	"github.com/npillmayer/npla1/term"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

/*
Covers §8 scenario 4: defining p as (list 1 2), then mutating its head
through set-first! must be visible on every later read of p — the mutation
goes through the reference a variable read yields, not a private copy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func TestSetFirstMutatesThroughReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	ctx := newGroundContext(t)

	evalOne(t, ctx, `($def! p (list 1 2))`)
	evalOne(t, ctx, `(set-first! p 9)`)

	got := evalOne(t, ctx, `p`)
	if got.ListString() != "(9 2)" {
		t.Errorf("expected p to read back as (9 2) after set-first!, got %s", got.ListString())
	}
}

func TestListOfVariablesCapturesPlainValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	ctx := newGroundContext(t)

	evalOne(t, ctx, `($def! a 1)`)
	evalOne(t, ctx, `($def! b 2)`)
	got := evalOne(t, ctx, `(list a b)`)

	if got.ListString() != "(1 2)" {
		t.Errorf("expected (list a b) to read as (1 2), got %s", got.ListString())
	}
	for i, c := range got.Children {
		if c.Value.Kind == term.ReferenceValue {
			t.Errorf("element %d of (list a b) still carries a reference wrapper: %v", i, c)
		}
	}
}

func TestFirstRestOnVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	ctx := newGroundContext(t)

	evalOne(t, ctx, `($def! p (list 1 2 3))`)

	if got := evalOne(t, ctx, `(first p)`); got.Value.Data != 1.0 {
		t.Errorf("expected (first p) == 1, got %v", got)
	}
	if got := evalOne(t, ctx, `(rest p)`); got.ListString() != "(2 3)" {
		t.Errorf("expected (rest p) == (2 3), got %s", got.ListString())
	}
}

func TestListPredicatesOnVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	ctx := newGroundContext(t)

	evalOne(t, ctx, `($def! p (list 1 2))`)
	evalOne(t, ctx, `($def! e (list))`)

	if got := evalOne(t, ctx, `(pair? p)`); !got.Value.Data.(bool) {
		t.Errorf("expected (pair? p) to be true, got %v", got)
	}
	if got := evalOne(t, ctx, `(null? e)`); !got.Value.Data.(bool) {
		t.Errorf("expected (null? e) to be true, got %v", got)
	}
	if got := evalOne(t, ctx, `(null? p)`); got.Value.Data.(bool) {
		t.Errorf("expected (null? p) to be false, got %v", got)
	}
}
