package forms_test

import (
	"testing"

	"github.com/npillmayer/npla1/eval"
	"github.com/npillmayer/npla1/reader"
	"github.com/npillmayer/npla1/term"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

/*
Covers §8 scenario 5: make-encapsulation-type yields a constructor/predicate/
decapsulator triple sharing a fresh identity; values built by one type's
constructor are rejected by a second, independently created type's predicate
and decapsulator, even though both wrap the same payload shape.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func TestEncapsulationIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	ctx := newGroundContext(t)

	evalOne(t, ctx, `($def! triple (make-encapsulation-type))`)
	evalOne(t, ctx, `($def! make (first triple))`)
	evalOne(t, ctx, `($def! box? (first (rest triple)))`)
	evalOne(t, ctx, `($def! unbox (first (rest (rest triple))))`)

	evalOne(t, ctx, `($def! boxed (make 42))`)

	if got := evalOne(t, ctx, `(box? boxed)`); !got.Value.Data.(bool) {
		t.Errorf("expected (box? boxed) to be true, got %v", got)
	}
	if got := evalOne(t, ctx, `(box? 42)`); got.Value.Data.(bool) {
		t.Errorf("expected (box? 42) to be false, got %v", got)
	}
	if got := evalOne(t, ctx, `(unbox boxed)`); term.Deref(got).Value.Data != 42.0 {
		t.Errorf("expected (unbox boxed) == 42, got %v", got)
	}
}

func TestEncapsulationTypesAreDistinct(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.forms")
	defer teardown()
	ctx := newGroundContext(t)

	evalOne(t, ctx, `($def! triple1 (make-encapsulation-type))`)
	evalOne(t, ctx, `($def! make1 (first triple1))`)

	evalOne(t, ctx, `($def! triple2 (make-encapsulation-type))`)
	evalOne(t, ctx, `($def! box2? (first (rest triple2)))`)
	evalOne(t, ctx, `($def! unbox2 (first (rest (rest triple2))))`)

	evalOne(t, ctx, `($def! v (make1 7))`)

	if got := evalOne(t, ctx, `(box2? v)`); got.Value.Data.(bool) {
		t.Errorf("expected a value of type 1 to fail type 2's predicate, got %v", got)
	}

	exprs, err := reader.ReadAll(`(unbox2 v)`)
	if err != nil {
		t.Fatalf("reader.ReadAll: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected exactly one top-level form, got %d", len(exprs))
	}
	if _, err := eval.Eval(ctx, exprs[0]); err == nil {
		t.Errorf("expected unbox2 applied to a type-1 value to fail with a type error")
	}
}
