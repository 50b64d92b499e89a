/*
Package term implements NPLA1's tagged term tree: the universal AST and
runtime value representation (spec component 1-2), the symbol token model,
and the term-reference/tag-propagation system (spec component 1, §4.1).

A Term is a rose tree: an ordered, possibly-empty sequence of child terms
plus an optional polymorphic value cell and a tag bitmask. Leaves hold a
value (a primitive, a symbol, a combiner, an environment handle, a term
reference or an encapsulated opaque); branches are list structure, and may
*also* carry a value (e.g. a reference to the branch itself).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package term

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("npla1.term")
}

// Kind classifies what a Term's Value cell holds.
type Kind int8

const (
	// NoValue: the term carries no scalar value, only list structure.
	NoValue Kind = iota
	// Primitive: a host number, string or boolean.
	Primitive
	// SymbolValue: a *Symbol.
	SymbolValue
	// CombinerValue: an opaque combiner handle, interpreted by package eval.
	CombinerValue
	// EnvironmentValue: an owning environment handle, interpreted by package env.
	EnvironmentValue
	// WeakEnvironmentValue: a weak environment handle, interpreted by package env.
	WeakEnvironmentValue
	// ReferenceValue: a *Reference.
	ReferenceValue
	// OpaqueValue: a *Opaque (encapsulation).
	OpaqueValue
	// ErrorValue: an error.
	ErrorValue
	// InertValue: the Kernel #inert constant (unspecified-but-present result).
	InertValue
	// IgnoreValue: the Kernel #ignore constant.
	IgnoreValue
)

func (k Kind) String() string {
	switch k {
	case NoValue:
		return "novalue"
	case Primitive:
		return "primitive"
	case SymbolValue:
		return "symbol"
	case CombinerValue:
		return "combiner"
	case EnvironmentValue:
		return "environment"
	case WeakEnvironmentValue:
		return "weak-environment"
	case ReferenceValue:
		return "reference"
	case OpaqueValue:
		return "opaque"
	case ErrorValue:
		return "error"
	case InertValue:
		return "inert"
	case IgnoreValue:
		return "ignore"
	}
	return "unknown"
}

// Value is the type-erased container held by a Term: one of a primitive, a
// symbol token, a combiner, an environment pointer/weak reference, an
// encapsulated opaque, or a term reference (spec §2 item 2).
type Value struct {
	Kind Kind
	Data interface{}
}

// NoVal is the empty value cell.
var NoVal = Value{}

func (v Value) IsSet() bool {
	return v.Kind != NoValue
}

func (v Value) String() string {
	switch v.Kind {
	case NoValue:
		return ""
	case Primitive:
		return fmt.Sprintf("%v", v.Data)
	case SymbolValue:
		return v.Data.(*Symbol).Name
	case ErrorValue:
		return fmt.Sprintf("#error[%s]", v.Data.(error).Error())
	case InertValue:
		return "#inert"
	case IgnoreValue:
		return "#ignore"
	case ReferenceValue:
		return v.Data.(*Reference).String()
	case OpaqueValue:
		return v.Data.(*Opaque).String()
	default:
		return fmt.Sprintf("%s<%v>", v.Kind, v.Data)
	}
}

// --- Term --------------------------------------------------------------

// Term is a node of the universal AST/value tree (spec §3).
type Term struct {
	Children []*Term
	Value    Value
	Tags     Tag
	Span     [2]uint64 // source-position span, set by the reader; zero if synthetic
}

// NewLeaf creates a leaf term carrying v.
func NewLeaf(v Value) *Term {
	return &Term{Value: v}
}

// NewAtom wraps an arbitrary Go value in a leaf term, inferring its Kind the
// way Atomize does in the teacher's term model.
func NewAtom(thing interface{}) *Term {
	if thing == nil {
		return NewLeaf(NoVal)
	}
	if t, ok := thing.(*Term); ok {
		return t
	}
	v := Value{Data: thing}
	switch c := thing.(type) {
	case int:
		v.Kind, v.Data = Primitive, float64(c)
	case int64:
		v.Kind, v.Data = Primitive, float64(c)
	case float64:
		v.Kind = Primitive
	case string, bool:
		v.Kind = Primitive
	case *Symbol:
		v.Kind = SymbolValue
	case *Reference:
		v.Kind = ReferenceValue
	case *Opaque:
		v.Kind = OpaqueValue
	case error:
		v.Kind = ErrorValue
	default:
		tracer().Debugf("NewAtom: unclassified value of type %T, treating as opaque primitive", thing)
		v.Kind = Primitive
	}
	return NewLeaf(v)
}

// NewList builds a branch term whose children are atoms of the given things.
func NewList(things ...interface{}) *Term {
	children := make([]*Term, 0, len(things))
	for _, e := range things {
		children = append(children, NewAtom(e))
	}
	return &Term{Children: children}
}

// IsLeaf reports whether t has no children.
func (t *Term) IsLeaf() bool {
	return t == nil || len(t.Children) == 0
}

// IsBranch reports whether t has children (spec §4.3: "term is a branch").
func (t *Term) IsBranch() bool {
	return t != nil && len(t.Children) > 0
}

// First returns the first child, or a NoVal leaf if t is empty.
func (t *Term) First() *Term {
	if t.IsLeaf() {
		return NewLeaf(NoVal)
	}
	return t.Children[0]
}

// Rest returns a new branch term over the children after the first.
func (t *Term) Rest() *Term {
	if t.IsLeaf() || len(t.Children) == 1 {
		return &Term{}
	}
	return &Term{Children: t.Children[1:]}
}

// Cons prepends head to t's children, returning a new branch term. Mirrors
// the teacher's GCons.Push.
func Cons(head *Term, tail *Term) *Term {
	children := make([]*Term, 0, len(tail.Children)+1)
	children = append(children, head)
	children = append(children, tail.Children...)
	return &Term{Children: children}
}

// Length returns the number of children.
func (t *Term) Length() int {
	if t == nil {
		return 0
	}
	return len(t.Children)
}

// Nth returns the n-th child (1-based), or a NoVal leaf if out of range.
func (t *Term) Nth(n int) *Term {
	if t == nil || n < 1 || n > len(t.Children) {
		return NewLeaf(NoVal)
	}
	return t.Children[n-1]
}

// Map applies f to every child, returning a new branch term of the results.
func (t *Term) Map(f func(*Term) (*Term, error)) (*Term, error) {
	if t.IsLeaf() {
		return &Term{}, nil
	}
	out := make([]*Term, len(t.Children))
	for i, c := range t.Children {
		r, err := f(c)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return &Term{Children: out}, nil
}

// ListString renders t the way a reader would print it back: "(a b c)".
// A reference leaf prints as its referent.
func (t *Term) ListString() string {
	if t == nil {
		return "()"
	}
	if t.IsLeaf() {
		if ref, ok := t.Value.Data.(*Reference); ok && t.Value.Kind == ReferenceValue && ref.Referent != nil {
			return ref.Referent.ListString()
		}
		if t.Value.IsSet() {
			return t.Value.String()
		}
		return "()"
	}
	var b bytes.Buffer
	b.WriteString("(")
	for i, c := range t.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.ListString())
	}
	b.WriteString(")")
	return b.String()
}

func (t *Term) String() string {
	return t.ListString()
}

// Copy returns a shallow structural copy of t (new Term, new Children slice,
// same child pointers, same Value) — used where the binder/copy discipline
// (§4.7.1) requires a copy rather than a move.
func (t *Term) Copy() *Term {
	if t == nil {
		return nil
	}
	cp := &Term{Value: t.Value, Tags: t.Tags, Span: t.Span}
	if t.Children != nil {
		cp.Children = append([]*Term(nil), t.Children...)
	}
	return cp
}
