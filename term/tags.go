package term

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Tag is an orthogonal, composable bitmask carried by every term.
type Tag uint8

const (
	// Unqualified is the zero tag: no special qualification.
	Unqualified Tag = 0
	// Unique marks a bound object as a prvalue/xvalue (consumable).
	Unique Tag = 1 << iota
	// Nonmodifying marks a const view; no mutation is allowed through this handle.
	Nonmodifying
	// Temporary marks a term initialized from a temporary; safe to move.
	Temporary
	// Sticky marks an administrative subterm, not part of user list structure.
	Sticky
)

// Has reports whether t has all bits of other set.
func (t Tag) Has(other Tag) bool {
	return t&other == other
}

// With returns t with other's bits set.
func (t Tag) With(other Tag) Tag {
	return t | other
}

// Without returns t with other's bits cleared.
func (t Tag) Without(other Tag) Tag {
	return t &^ other
}

func (t Tag) String() string {
	if t == Unqualified {
		return "unqualified"
	}
	s := ""
	add := func(bit Tag, name string) {
		if t.Has(bit) {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(Unique, "unique")
	add(Nonmodifying, "nonmodifying")
	add(Temporary, "temporary")
	add(Sticky, "sticky")
	return s
}

// AssertValueTags panics (a programmer error, not a user-facing one) if t is
// tagged Sticky: after normalization a term representing a first-class value
// must not carry the administrative Sticky tag.
func AssertValueTags(t Tag) {
	if t.Has(Sticky) {
		panic("term: value-representing term must not carry the Sticky tag")
	}
}

// IsReferentTags reports whether t is legal as the tag set carried by a term
// reference's referent handle: Sticky is forbidden there too.
func IsReferentTags(t Tag) bool {
	return !t.Has(Sticky)
}

// --- Value-category predicates (§4.1) --------------------------------------

// IsLvalue reports whether term t (assumed to hold a Reference value) denotes
// an lvalue: a reference without Unique and without Temporary.
func (t *Term) IsLvalue() bool {
	ref, ok := t.Value.Data.(*Reference)
	if !ok {
		return false
	}
	return !ref.Tags.Has(Unique) && !ref.Tags.Has(Temporary)
}

// IsXvalue reports whether term t denotes an xvalue: a reference tagged Unique.
func (t *Term) IsXvalue() bool {
	ref, ok := t.Value.Data.(*Reference)
	if !ok {
		return false
	}
	return ref.Tags.Has(Unique)
}

// IsPrvalue reports whether term t denotes a prvalue: either not a reference
// at all, or a reference tagged Temporary.
func (t *Term) IsPrvalue() bool {
	ref, ok := t.Value.Data.(*Reference)
	if !ok {
		return true
	}
	return ref.Tags.Has(Temporary)
}

// IsMovable reports whether t is safe to move from: a prvalue or an xvalue.
func (t *Term) IsMovable() bool {
	return t.IsPrvalue() || t.IsXvalue()
}
