package eval

import (
	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// reachableFrom traces every environment reachable from root through the
// parent chain (§4.8: "handling each parent variant"), guarding against
// cyclic chains the spec explicitly leaves unspecified-but-non-corrupting
// (§4.2: "No cycle detection is provided... must not corrupt memory").
func reachableFrom(root *env.Environment) map[*env.Environment]bool {
	seen := make(map[*env.Environment]bool)
	stack := []*env.Environment{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]
		if e == nil || seen[e] {
			continue
		}
		seen[e] = true
		stack = append(stack, e.Parents()...)
	}
	return seen
}

// Compact is the record compressor of §4.8: given the current frame record
// list and the environment the TCO frame is about to continue under, it
// keeps only the records whose environment is still transitively reachable
// from root, clearing the strong reference held by any record that fell out
// of reach (nothing further needs to keep it alive explicitly; the Go
// garbage collector reclaims it once dropped here).
func Compact(frames []frameRecord, rootTerm *term.Term) []frameRecord {
	root, err := EnvOf(rootTerm)
	if err != nil || root == nil {
		return frames
	}
	reachable := reachableFrom(root)
	kept := make([]frameRecord, 0, len(frames))
	for _, f := range frames {
		e, err := EnvOf(f.Env)
		if err != nil {
			continue // already dangling; strong ref is moot
		}
		if reachable[e] {
			kept = append(kept, f)
			continue
		}
		tracer().Debugf("record compressor: dropping retained frame for %s, unreachable from %s",
			f.Function.Handler.Name(), root.Name())
	}
	return kept
}
