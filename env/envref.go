package env

import (
	"github.com/npillmayer/npla1/errors"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// EnvRef is a weak environment pointer plus an owning copy of the target's
// anchor (spec §3: "Weak environment pointer plus an owning copy of the
// anchor"). Two EnvRefs are equal iff their weak pointers lock to the same
// environment (spec: "equal iff their weak pointers lock to the same
// environment"); the anchor keeps surviving for liveness diagnostics even
// after the weak pointer itself has expired.
type EnvRef struct {
	weak   *Environment
	anchor *Anchor
}

// NewEnvRef creates a weak reference to e, retaining e's anchor.
func NewEnvRef(e *Environment) *EnvRef {
	if e == nil {
		return &EnvRef{}
	}
	e.anchor.Retain()
	return &EnvRef{weak: e, anchor: e.anchor}
}

// Lock resolves the weak reference to its environment, or returns
// InvalidReference if the environment has been destroyed while the anchor
// is still live (spec §4.2: "Dereferencing an environment that has been
// destroyed...raises an InvalidReference error").
func (r *EnvRef) Lock() (*Environment, error) {
	if r == nil || r.weak == nil {
		return nil, errors.NewInvalidReference("environment reference is empty")
	}
	if !r.weak.anchor.Live() {
		return nil, errors.NewInvalidReference("environment %q no longer exists", r.weak.Name())
	}
	return r.weak, nil
}

// Equal reports whether r and other lock to the same environment.
func (r *EnvRef) Equal(other *EnvRef) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.weak == other.weak
}

// Release drops this reference's hold on the target anchor. Call once, when
// the reference itself goes out of scope.
func (r *EnvRef) Release() {
	if r == nil || r.anchor == nil {
		return
	}
	r.anchor.Release()
}

// Name implements term.EnvironmentHandle.
func (r *EnvRef) Name() string {
	if r == nil || r.weak == nil {
		return "<empty-ref>"
	}
	return r.weak.Name()
}

// Live implements term.EnvironmentHandle.
func (r *EnvRef) Live() bool {
	if r == nil || r.anchor == nil {
		return false
	}
	return r.anchor.Live()
}
