/*
Package env implements NPLA1's first-class environments (spec component 3):
name→term bindings, parent-chain resolution, anchor-based liveness tracking
and weak environment references.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package env

import (
	"fmt"
	"sync"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("npla1.env")
}

// Anchor is the shared, reference-counted sentinel an Environment uses to
// compute liveness and to let weak references detect destruction (spec §3:
// "anchor: a shared, reference-counted sentinel"). The environment itself
// holds two counts (accounted for in useCount - 2, see Outstanding).
type Anchor struct {
	mu       sync.Mutex
	useCount int
	live     bool
	label    string
}

// NewAnchor creates an anchor for a freshly constructed environment, already
// counting the environment's own self-reference and the one shared pointer
// the environment struct holds on itself (spec: "subtracting the
// self-reference and the shared pointer held by the environment itself").
func NewAnchor(label string) *Anchor {
	return &Anchor{useCount: 2, live: true, label: label}
}

// Retain increments the anchor's use count: called whenever a new
// EnvRef/owning handle to the anchored environment is created.
func (a *Anchor) Retain() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.useCount++
}

// Release decrements the anchor's use count: called when an EnvRef/owning
// handle to the anchored environment is dropped.
func (a *Anchor) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.useCount--
}

// GetAnchorCount returns the raw use count (spec: "GetAnchorCount").
func (a *Anchor) GetAnchorCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.useCount
}

// Outstanding returns the number of outstanding non-environment references,
// per the anchor bookkeeping invariant: useCount - 2.
func (a *Anchor) Outstanding() int {
	return a.GetAnchorCount() - 2
}

// Expire marks the anchored environment destroyed. If Outstanding() is not
// zero at this point, the invariant is violated and a diagnostic is logged
// rather than a panic raised, mirroring the spec's "a warning is emitted".
func (a *Anchor) Expire() {
	a.mu.Lock()
	a.live = false
	outstanding := a.useCount - 2
	fp := fingerprint(a)
	a.mu.Unlock()
	if outstanding != 0 {
		tracer().Errorf("anchor %s (%s) destroyed with %d outstanding reference(s)",
			a.label, fp, outstanding)
	}
}

// Live reports whether the anchored environment has not yet expired.
func (a *Anchor) Live() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

func fingerprint(a *Anchor) string {
	h, err := structhash.Hash(struct {
		Label string
		Count int
	}{a.label, a.useCount}, 1)
	if err != nil {
		return "?"
	}
	if len(h) > 8 {
		h = h[:8]
	}
	return h
}

func (a *Anchor) String() string {
	return fmt.Sprintf("#anchor[%s live=%v count=%d]", a.label, a.Live(), a.GetAnchorCount())
}
