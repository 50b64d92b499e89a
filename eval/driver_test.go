package eval_test

import (
	"testing"

	"github.com/npillmayer/npla1/term"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

/*
Covers §8 scenario 3: deep tail recursion through `$if` must not grow the
host call stack. 100000 iterations would overflow a non-PTC evaluator's Go
stack long before returning; here it returns `done` because `$if` and the
`$lambda`-applied body both tail-forward through eval.TailCall rather than
recursing into eval.Eval.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func TestProperTailCallsDeepRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "npla1.eval")
	defer teardown()
	ctx := newTestContext(t)

	evalSrc(t, ctx, `($def! loop ($lambda (n)
		($if (eqv? n 0) 'done (loop (- n 1)))))`)

	got := evalSrc(t, ctx, `(loop 100000)`)
	sym, ok := got.Value.Data.(*term.Symbol)
	if got.Value.Kind != term.SymbolValue || !ok || sym.Name != "done" {
		t.Errorf("expected loop(100000) to return the quoted symbol 'done, got %v", got)
	}
}
