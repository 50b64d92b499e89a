package eval

import "github.com/npillmayer/npla1/term"

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// frameRecord pairs a retired combiner with the environment it was called
// under, kept only long enough for the record compressor to decide whether
// that environment is still transitively reachable (§4.4 step 2).
type frameRecord struct {
	Function *Combiner
	Env      *term.Term // EnvironmentValue/WeakEnvironmentValue carrier
}

// TCOAction is the tail-call-optimization frame installed for the
// enclosing reduction frame of a combiner application (§4.4). Exactly one
// may be "current" per Context; successive tail calls from the same frame
// reuse the same TCOAction rather than allocating a new one.
type TCOAction struct {
	// guarded and Result are not set by Eval; Compress lifts Result only
	// when a caller has set it.
	guarded bool
	Result  *term.Term

	// DeferredLifts counts pending lift requests: Eval adds one per tail
	// call through a lifting vau and applies them to its final result.
	DeferredLifts int

	// AttachedCombiners keeps prvalue combiners alive during the call.
	AttachedCombiners []*Combiner

	// LastFunction is the combiner currently being (tail-)called.
	LastFunction *Combiner

	// SavedEnv is the environment of the frame's most recent call, compared
	// with the next incoming one in Compress. Eval itself restores the
	// caller's environment on exit.
	SavedEnv *term.Term

	// Frames is the frame record list: retired (function, env) pairs
	// awaiting record compression.
	Frames []frameRecord

	// OperatorName is used only for diagnostics.
	OperatorName string
}

// NewTCOAction installs a fresh TCO action for a new reduction frame.
func NewTCOAction(operatorName string, savedEnv *term.Term) *TCOAction {
	return &TCOAction{SavedEnv: savedEnv, OperatorName: operatorName}
}

// Compress performs operation compression (§4.4) when a subsequent tail call
// arrives in the same TCO frame:
//  1. handle pending lift requests against the previous call's result,
//  2. compress frames: if both the current and incoming guard hold a saved
//     environment, retire the outgoing one into the frame record list,
//  3. run the record compressor to drop transitively unreachable environments,
//  4. install the incoming combiner as the new LastFunction.
func (a *TCOAction) Compress(incomingEnv *term.Term, incoming *Combiner) {
	if a.DeferredLifts > 0 && a.Result != nil {
		for i := 0; i < a.DeferredLifts; i++ {
			a.Result = lift(a.Result)
		}
		a.DeferredLifts = 0
	}

	if a.SavedEnv != nil && incomingEnv != nil && !sameEnv(a.SavedEnv, incomingEnv) {
		a.Frames = append(a.Frames, frameRecord{Function: a.LastFunction, Env: a.SavedEnv})
		a.Frames = Compact(a.Frames, incomingEnv)
	}

	a.SavedEnv = incomingEnv
	a.LastFunction = incoming
	if incoming != nil && incoming.IsPrvalueSafe() {
		a.AttachedCombiners = append(a.AttachedCombiners, incoming)
	}
}

// sameEnv compares two environment-carrying terms by the underlying
// environment they resolve to, not by term pointer identity (EnvTerm/
// WeakEnvTerm allocate a fresh wrapper term on every call).
func sameEnv(a, b *term.Term) bool {
	ea, errA := EnvOf(a)
	eb, errB := EnvOf(b)
	if errA != nil || errB != nil {
		return false
	}
	return ea == eb
}

// lift regularizes a reference-bearing result into a plain returnable term,
// the "lift once per deferred request" step of §4.4.
func lift(t *term.Term) *term.Term {
	return term.Deref(t)
}

// IsPrvalueSafe reports whether a combiner value is safe to attach to a TCO
// frame's keep-alive list: combiners have no term-level tag state of their
// own, so this always holds; kept as a named predicate for readability at
// call sites mirroring §4.4's "attached combiner list".
func (c *Combiner) IsPrvalueSafe() bool { return c != nil }
