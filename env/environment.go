package env

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// ParentKind discriminates the shape of an environment's parent designator
// (spec §3: "parent: one of {empty, single environment..., list of
// environments searched in order (DFS)}").
type ParentKind int8

const (
	// NoParent is the empty parent designator (the root/ground environment).
	NoParent ParentKind = iota
	// SingleParent designates exactly one parent environment.
	SingleParent
	// ListParent designates an ordered list of parents, searched DFS.
	ListParent
)

// Parent is an environment's parent designator.
type Parent struct {
	Kind   ParentKind
	Single *EnvRef
	List   []*EnvRef
}

// Environment is a first-class NPLA1 environment (spec §3, "Environment").
type Environment struct {
	name     string
	bindings *linkedhashmap.Map // symbol name (string) -> *term.Term
	parent   Parent
	frozen   bool
	anchor   *Anchor
}

// New creates a fresh, empty environment with no parent.
func New(name string) *Environment {
	return &Environment{
		name:     name,
		bindings: linkedhashmap.New(),
		anchor:   NewAnchor(name),
	}
}

// NewWithParent creates a fresh environment whose parent designator is
// exactly parent, for callers (e.g. package eval's vau handler) that already
// hold a fully-formed Parent value captured at combiner-construction time.
func NewWithParent(name string, parent Parent) *Environment {
	e := New(name)
	e.parent = parent
	return e
}

// NewChild creates a fresh environment whose single parent is p.
func NewChild(name string, p *Environment) *Environment {
	e := New(name)
	e.parent = Parent{Kind: SingleParent, Single: NewEnvRef(p)}
	return e
}

// NewChildOfList creates a fresh environment whose parent list is parents,
// searched left-to-right DFS per §4.2.
func NewChildOfList(name string, parents []*Environment) *Environment {
	e := New(name)
	refs := make([]*EnvRef, len(parents))
	for i, p := range parents {
		refs[i] = NewEnvRef(p)
	}
	e.parent = Parent{Kind: ListParent, List: refs}
	return e
}

// Name returns the environment's diagnostic name. Implements term.EnvironmentHandle.
func (e *Environment) Name() string {
	if e == nil {
		return "<nil-env>"
	}
	return e.name
}

// Live implements term.EnvironmentHandle: an Environment is live by
// construction until its own anchor is explicitly expired via Destroy.
func (e *Environment) Live() bool {
	return e != nil && e.anchor.Live()
}

var _ term.EnvironmentHandle = (*Environment)(nil)
var _ term.EnvironmentHandle = (*EnvRef)(nil)

// Parents returns e's immediate parent environments (locking any weak
// references; a parent whose reference has gone dangling is silently
// skipped, matching the record compressor's "must not corrupt memory" duty
// under §4.2's no-cycle-detection guarantee).
func (e *Environment) Parents() []*Environment {
	switch e.parent.Kind {
	case SingleParent:
		if p, err := e.parent.Single.Lock(); err == nil {
			return []*Environment{p}
		}
	case ListParent:
		out := make([]*Environment, 0, len(e.parent.List))
		for _, ref := range e.parent.List {
			if p, err := ref.Lock(); err == nil {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

// Destroy expires e's anchor. Call once the last strong pointer to e drops
// (spec §3 lifecycle: "destroyed when the last strong pointer drops; anchor
// outlives until last weak reference drops").
func (e *Environment) Destroy() {
	e.anchor.Expire()
}

// Anchor returns e's anchor, for diagnostics and for EnvRef construction.
func (e *Environment) Anchor() *Anchor {
	return e.anchor
}

// Frozen reports whether e currently rejects definitions/removals.
func (e *Environment) Frozen() bool {
	return e.frozen
}

// Freeze marks e frozen: Define, DefineOverwrite and Remove on e fail, and so
// does a Set whose binding lives in e; lookups are unaffected (see DESIGN.md
// open question decision: freezing blocks writes, not value reads).
func (e *Environment) Freeze() {
	e.frozen = true
}

// Unfreeze clears the frozen flag.
func (e *Environment) Unfreeze() {
	e.frozen = false
}

// Define binds name to t in e's own bindings map, failing if e is frozen or
// the symbol is already locally bound (Kernel's $define! semantics: a
// re-definition in the SAME environment is an error; shadowing a parent
// binding is not).
func (e *Environment) Define(name string, t *term.Term) error {
	if e.frozen {
		return errors.NewInvariantViolation("cannot define %q: environment %q is frozen", name, e.name)
	}
	if _, found := e.bindings.Get(name); found {
		return errors.NewBadIdentifier("%q is already bound in environment %q", name, e.name)
	}
	e.bindings.Put(name, t)
	return nil
}

// DefineOverwrite binds name to t in e's own bindings map, replacing any
// existing local binding of the same name instead of erroring (spec §4.7.1:
// a formal parameter tree may repeat a name, and each repeated occurrence
// simply overwrites the previous binding in place). Still fails if e is
// frozen. Distinct from Define, which rejects a same-environment
// re-definition; $def! and the other binding forms bind through
// eval.BindParameter and so use DefineOverwrite.
func (e *Environment) DefineOverwrite(name string, t *term.Term) error {
	if e.frozen {
		return errors.NewInvariantViolation("cannot define %q: environment %q is frozen", name, e.name)
	}
	e.bindings.Put(name, t)
	return nil
}

// Set mutates an EXISTING binding of name, searching e then its parent chain
// (Kernel's $set! semantics); fails if no binding is found, or the holding
// environment is frozen.
func (e *Environment) Set(name string, t *term.Term) error {
	_, holder, err := Resolve(e, name)
	if err != nil {
		return err
	}
	if holder.frozen {
		return errors.NewInvariantViolation("cannot set %q: environment %q is frozen", name, holder.name)
	}
	holder.bindings.Put(name, t)
	return nil
}

// Remove deletes name from e's own bindings, failing if e is frozen or the
// name is not locally bound.
func (e *Environment) Remove(name string) error {
	if e.frozen {
		return errors.NewInvariantViolation("cannot remove %q: environment %q is frozen", name, e.name)
	}
	if _, found := e.bindings.Get(name); !found {
		return errors.NewBadIdentifier("%q is not bound in environment %q", name, e.name)
	}
	e.bindings.Remove(name)
	return nil
}

// FindBinding looks up name in e's OWN bindings only (no parent walk).
func (e *Environment) FindBinding(name string) (*term.Term, bool) {
	v, found := e.bindings.Get(name)
	if !found {
		return nil, false
	}
	return v.(*term.Term), true
}

// Binds reports whether name resolves anywhere in e's chain (backs $binds?).
func (e *Environment) Binds(name string) bool {
	_, _, err := Resolve(e, name)
	return err == nil
}

// Len returns the number of bindings directly owned by e.
func (e *Environment) Len() int {
	return e.bindings.Size()
}

func (e *Environment) String() string {
	return fmt.Sprintf("#environment[%s, %d binding(s)]", e.name, e.Len())
}
