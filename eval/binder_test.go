package eval_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

/*
Covers §4.7.1: a repeated name in a formal parameter tree overwrites the
earlier binding of that name rather than erroring, distinct from
env.Environment.Define's rejection of a same-environment re-definition.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func TestBindParameterDuplicateFormalOverwrites(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.eval")
	defer teardown()
	ctx := newTestContext(t)

	evalSrc(t, ctx, `($def! dup ($lambda (x x) x))`)

	got := evalSrc(t, ctx, `(dup 1 2)`)
	if got.Value.Data != 2.0 {
		t.Errorf("expected repeated formal x to bind to the second operand 2, got %v", got)
	}
}
