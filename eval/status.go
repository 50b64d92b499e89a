/*
Package eval implements NPLA1's evaluator core: the context and the
trampolined reduction driver (§3, §4.3), the TCO action (§4.4), combiner
dispatch (§4.5), the vau call sequence (§4.6), the parameter binder (§4.7.1)
and the record compressor (§4.8). Dispatch and the TCO trampoline are
mutually recursive and therefore live in one package, the way the teacher
keeps its own evaluator pipeline in a single `terex` package.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package eval

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("npla1.eval")
}

// Status is a reduction status (spec §3, "Reduction status").
type Status int8

const (
	// Neutral: success, unspecified shape.
	Neutral Status = iota
	// Partial: an async continuation is pending; more reducer actions are queued.
	Partial
	// Clean: success, leaf-like result.
	Clean
	// Retained: success, list structure retained (reference-preserving).
	Retained
	// Regular: success, list structure retained (regularized/normalized).
	Regular
	// Retrying: request re-entry of the current action.
	Retrying
)

func (s Status) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Partial:
		return "partial"
	case Clean:
		return "clean"
	case Retained:
		return "retained"
	case Regular:
		return "regular"
	case Retrying:
		return "retrying"
	}
	return "unknown"
}

// rank gives status a precedence for the combination rule: "if the newer
// status overrides, keep it; else keep prior". Partial and Retrying override
// every success status since they drive control flow (Partial also outranks
// Retrying); among the success statuses, later
// information about shape (Regular/Retained) overrides the merely Neutral.
func (s Status) rank() int {
	switch s {
	case Partial:
		return 4
	case Retrying:
		return 3
	case Regular, Retained:
		return 2
	case Clean:
		return 1
	default: // Neutral
		return 0
	}
}

// Combine implements the status combination rule of §3: "if the newer
// status overrides, keep it; else keep prior".
func Combine(prior, newer Status) Status {
	if newer.rank() >= prior.rank() {
		return newer
	}
	return prior
}
