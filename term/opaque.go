package term

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// EncToken is the identity of one encapsulation type, created fresh by
// make-encapsulation-type (spec §3: "encapsulation types; opaque values
// compared by identity only"). Identity is the pointer itself; Label is
// diagnostic only and never participates in equality.
type EncToken struct {
	Label string
}

func (tok *EncToken) String() string {
	if tok == nil {
		return "#enc-token<nil>"
	}
	return fmt.Sprintf("#enc-token[%s]", tok.Label)
}

// Opaque is an encapsulated value: a payload term tagged with the token of
// the encapsulation type that wraps it. Two Opaque values are indistinguishable
// by any predicate except the matching type's own predicate/accessor, and
// equality of Opaque values is pointer equality of the *Opaque itself, never
// structural (spec: "compared by identity only").
type Opaque struct {
	Token   *EncToken
	Payload *Term
}

func (o *Opaque) String() string {
	if o == nil {
		return "#opaque<nil>"
	}
	return fmt.Sprintf("#opaque[%s]", o.Token.Label)
}

// Is reports whether o was produced by the encapsulation type identified by tok.
func (o *Opaque) Is(tok *EncToken) bool {
	return o != nil && o.Token == tok
}
