package eval

import (
	"strings"

	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// formalPrefix classifies a formal-tree symbol's binding discipline, read
// off its leading sigil (spec §4.7.1: unprefixed, `&`, `@`).
type formalPrefix int8

const (
	prefixPlain formalPrefix = iota
	prefixRef    // &name
	prefixList   // @name
)

func splitFormalSymbol(name string) (formalPrefix, string) {
	switch {
	case strings.HasPrefix(name, "&"):
		return prefixRef, name[1:]
	case strings.HasPrefix(name, "@"):
		return prefixList, name[1:]
	default:
		return prefixPlain, name
	}
}

// CheckParameterTree validates a formal parameter tree's well-formedness
// (§4.7.1): every leaf must be the empty list, the ignore token or a legal
// (non-empty, non-sigil-only) symbol name. Duplicates are permitted.
func CheckParameterTree(formal *term.Term) error {
	if formal == nil {
		return nil
	}
	if formal.IsLeaf() {
		if !formal.Value.IsSet() {
			return nil
		}
		sym, ok := formal.Value.Data.(*term.Symbol)
		if !ok {
			return errors.NewBadIdentifier("formal parameter leaf is not a symbol or ignore")
		}
		if sym.IsIgnore() {
			return nil
		}
		_, name := splitFormalSymbol(sym.Name)
		if name == "" {
			return errors.NewBadIdentifier("formal parameter symbol %q has no name after its sigil", sym.Name)
		}
		return nil
	}
	for _, child := range formal.Children {
		if err := CheckParameterTree(child); err != nil {
			return err
		}
	}
	return nil
}

// BindParameter structurally matches formal against operand, inserting
// bindings into e (§4.7.1). A trailing `. rest` dotted tail is modeled as a
// formal tree whose last child is tagged term.Sticky with a single rest
// symbol child, consuming all remaining operands as a list.
func BindParameter(e bindTarget, formal *term.Term, operand *term.Term) error {
	if formal == nil {
		return nil
	}
	if formal.IsLeaf() && !formal.Value.IsSet() {
		if operand != nil && operand.IsBranch() {
			return errors.NewParameterMismatch("expected the empty list, got %d operand(s)", operand.Length())
		}
		return nil
	}
	if formal.IsLeaf() {
		sym, ok := formal.Value.Data.(*term.Symbol)
		if !ok {
			return errors.NewParameterMismatch("formal parameter leaf is not a symbol")
		}
		if sym.IsIgnore() {
			return nil
		}
		prefix, name := splitFormalSymbol(sym.Name)
		switch prefix {
		case prefixPlain:
			bound := operand
			if !operand.IsMovable() {
				bound = operand.Copy()
			}
			return e.DefineOverwrite(name, bound)
		case prefixRef:
			return e.DefineOverwrite(name, term.PrepareCollapse(operand, nil))
		case prefixList:
			if !operand.IsBranch() && operand.Value.IsSet() {
				return errors.NewInvalidReference("parameter %q requires a list operand", name)
			}
			return e.DefineOverwrite(name, term.PrepareCollapse(operand, nil))
		}
		return nil
	}

	// formal is a branch: a (possibly dotted) parameter list.
	restIdx, restFormal := findDottedRest(formal)
	fixedLen := len(formal.Children)
	if restFormal != nil {
		fixedLen = restIdx
	}

	opChildren := []*term.Term{}
	if operand != nil {
		opChildren = operand.Children
	}
	if restFormal == nil && len(opChildren) != fixedLen {
		return errors.NewArityMismatch("expected %d operand(s), got %d", fixedLen, len(opChildren))
	}
	if restFormal != nil && len(opChildren) < fixedLen {
		return errors.NewArityMismatch("expected at least %d operand(s), got %d", fixedLen, len(opChildren))
	}
	for i := 0; i < fixedLen; i++ {
		if err := BindParameter(e, formal.Children[i], opChildren[i]); err != nil {
			return err
		}
	}
	if restFormal != nil {
		restOperand := &term.Term{Children: append([]*term.Term(nil), opChildren[fixedLen:]...)}
		if err := BindParameter(e, restFormal, restOperand); err != nil {
			return err
		}
	}
	return nil
}

// bindTarget is the minimal environment surface the binder needs. Kept
// narrow so eval doesn't need the concrete *env.Environment type name
// sprinkled through every binder code path. DefineOverwrite, not Define, is
// what formal binding uses — repeated formal names must overwrite, not error.
type bindTarget interface {
	Define(name string, t *term.Term) error
	DefineOverwrite(name string, t *term.Term) error
}

// findDottedRest looks for a trailing Sticky-tagged rest-symbol child,
// marking a dotted tail `. rest`, and returns its index and formal subtree.
func findDottedRest(formal *term.Term) (int, *term.Term) {
	n := len(formal.Children)
	if n == 0 {
		return 0, nil
	}
	last := formal.Children[n-1]
	if last.Tags.Has(term.Sticky) {
		return n - 1, last
	}
	return 0, nil
}
