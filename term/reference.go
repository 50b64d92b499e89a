package term

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// EnvironmentHandle is the minimal surface a term reference needs from an
// environment handle (owning or weak). Package env's *Environment and
// *EnvRef types implement it; term itself never constructs one, only carries
// it, which is how the term/env import cycle is avoided (env imports term,
// not the reverse).
type EnvironmentHandle interface {
	// Name identifies the environment for diagnostics.
	Name() string
	// Live reports whether the referenced environment is still alive.
	Live() bool
}

// Reference is the term-reference value variant (spec §2 item 2, §4.1):
// fields are the referenced term (non-owning), a tag bitmask subject to
// IsReferentTags, and the environment whose anchor keeps the referent alive.
type Reference struct {
	Referent *Term
	Tags     Tag
	Env      EnvironmentHandle
}

// NewReference builds a reference to t under env, applying BindReferenceTags.
// t becomes the reference's referent, a first-class value in its own right,
// so its own tags are checked with AssertValueTags before anything wraps it.
func NewReference(t *Term, tags Tag, env EnvironmentHandle) *Reference {
	if !IsReferentTags(tags) {
		panic("term: reference tags must not carry Sticky")
	}
	if t != nil {
		AssertValueTags(t.Tags)
	}
	return &Reference{Referent: t, Tags: BindReferenceTags(tags), Env: env}
}

func (r *Reference) String() string {
	if r == nil {
		return "#ref<nil>"
	}
	where := "?"
	if r.Env != nil {
		where = r.Env.Name()
	}
	return fmt.Sprintf("#ref[%s]@%s", r.Tags, where)
}

// BindReferenceTags applies the tag-propagation rule of §4.1: if Unique is
// present, Temporary is added (a unique binding is always safe to move from).
// Idempotent: BindReferenceTags(BindReferenceTags(t)) == BindReferenceTags(t).
func BindReferenceTags(tags Tag) Tag {
	if tags.Has(Unique) {
		return tags.With(Temporary)
	}
	return tags
}

// PropagateTo computes the tag set a reference's referent should carry,
// given the tags of the carrier (the reference itself) and of the referent's
// own prior tags: Nonmodifying propagates from the carrier, and a move never
// weakens an existing Nonmodifying tag on the referent.
func PropagateTo(carrierTags, referentTags Tag) Tag {
	result := referentTags
	if carrierTags.Has(Nonmodifying) {
		result = result.With(Nonmodifying)
	}
	return result
}

// Collapse implements the reference-collapse rule (spec §4.1): a reference
// never refers to another reference. If ref's referent is itself a term
// whose value is a reference `inner`, Collapse merges tags (via PropagateTo)
// and returns (inner-with-merged-tags, true); otherwise it returns (ref, false).
//
// Collapse is idempotent at the fixed point: Collapse(Collapse(r).0) ==
// Collapse(r).0, since a fully collapsed reference's referent never holds a
// Reference value itself.
func Collapse(ref *Reference) (*Reference, bool) {
	if ref == nil || ref.Referent == nil {
		return ref, false
	}
	inner, ok := ref.Referent.Value.Data.(*Reference)
	if !ok || ref.Referent.Value.Kind != ReferenceValue {
		return ref, false
	}
	if inner.Referent != nil {
		AssertValueTags(inner.Referent.Tags)
	}
	merged := &Reference{
		Referent: inner.Referent,
		Tags:     BindReferenceTags(PropagateTo(ref.Tags, inner.Tags)),
		Env:      inner.Env,
	}
	return merged, true
}

// PrepareCollapse returns a term whose value is a reference to t under env,
// preserving existing reference state if t already holds a reference (in
// which case that reference is collapsed rather than double-wrapped).
func PrepareCollapse(t *Term, env EnvironmentHandle) *Term {
	if t == nil {
		return nil
	}
	if existing, ok := t.Value.Data.(*Reference); ok && t.Value.Kind == ReferenceValue {
		collapsed, _ := Collapse(existing)
		return &Term{Children: t.Children, Tags: t.Tags, Value: Value{Kind: ReferenceValue, Data: collapsed}}
	}
	ref := NewReference(t, t.Tags, env)
	return &Term{Value: Value{Kind: ReferenceValue, Data: ref}}
}

// Deref returns the term a reference value points at, or t itself if t does
// not hold a reference. Every name lookup yields a reference (§4.2), so a
// combiner that wants to see through the indirection to the referent's own
// kind/children — to dispatch on it, do arithmetic, compare it, or mutate it
// in place — dereferences with this. The result aliases the referent: writing
// through it (e.g. set-first!) mutates the same storage the binding points
// to, which is the point of reference semantics rather than a leak to guard
// against.
func Deref(t *Term) *Term {
	if t == nil {
		return nil
	}
	if ref, ok := t.Value.Data.(*Reference); ok && t.Value.Kind == ReferenceValue {
		if ref.Referent == nil {
			return t
		}
		return ref.Referent
	}
	return t
}
