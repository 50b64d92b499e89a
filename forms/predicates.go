package forms

import (
	"reflect"

	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/eval"
	"github.com/npillmayer/npla1/term"
)

/*
Predicates, the minimal numeric tower and equality primitives supplementing
the distilled forms list (see the companion specification document's
supplemented-features section): value-category introspection, type
predicates, `$binds?`, `+ - * / = < > <= >=`, and `eqv?`/`equal?`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func predicate1(name string, fn func(t *term.Term) bool) *eval.Combiner {
	return nativeApplicative(name, func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity(name, operands, 1, 1); err != nil {
			return nil, err
		}
		return Bool(fn(operands.First())), nil
	})
}

// typePredicate1 is predicate1 for predicates that classify a value's own
// kind rather than the reference it arrived through: it dereferences the
// operand first, since a bare variable read always evaluates to a reference
// (§4.2) and a type predicate asks about the referent, not the binding.
func typePredicate1(name string, fn func(t *term.Term) bool) *eval.Combiner {
	return predicate1(name, func(t *term.Term) bool { return fn(term.Deref(t)) })
}

// Value-category predicates (§4.1). These inspect the operand exactly as it
// arrived — lvalue?/rvalue?/unique? ask about the reference itself, so they
// must NOT dereference.
func LvalueP() *eval.Combiner { return predicate1("lvalue?", (*term.Term).IsLvalue) }
func RvalueP() *eval.Combiner {
	return predicate1("rvalue?", func(t *term.Term) bool { return !t.IsLvalue() })
}
func UniqueP() *eval.Combiner { return predicate1("unique?", (*term.Term).IsXvalue) }

// Type predicates.
func ListP() *eval.Combiner {
	return typePredicate1("list?", func(t *term.Term) bool { return t.IsBranch() || (t.IsLeaf() && !t.Value.IsSet()) })
}
func NullP() *eval.Combiner {
	return typePredicate1("null?", func(t *term.Term) bool { return t.IsLeaf() && !t.Value.IsSet() })
}
func PairP() *eval.Combiner {
	return typePredicate1("pair?", func(t *term.Term) bool { return t.IsBranch() })
}
func SymbolP() *eval.Combiner {
	return typePredicate1("symbol?", func(t *term.Term) bool { return t.Value.Kind == term.SymbolValue })
}
func EnvironmentP() *eval.Combiner {
	return typePredicate1("environment?", func(t *term.Term) bool {
		return t.Value.Kind == term.EnvironmentValue || t.Value.Kind == term.WeakEnvironmentValue
	})
}
func CombinerP() *eval.Combiner {
	return typePredicate1("combiner?", func(t *term.Term) bool { return t.Value.Kind == term.CombinerValue })
}
func OperativeP() *eval.Combiner {
	return typePredicate1("operative?", func(t *term.Term) bool {
		c, ok := eval.AsCombiner(t)
		return ok && c.IsOperative()
	})
}
func ApplicativeP() *eval.Combiner {
	return typePredicate1("applicative?", func(t *term.Term) bool {
		c, ok := eval.AsCombiner(t)
		return ok && c.IsApplicative()
	})
}
func InertP() *eval.Combiner {
	return typePredicate1("inert?", func(t *term.Term) bool { return t.Value.Kind == term.InertValue })
}
func IgnoreP() *eval.Combiner {
	return typePredicate1("ignore?", func(t *term.Term) bool {
		if t.Value.Kind == term.IgnoreValue {
			return true
		}
		sym, ok := t.Value.Data.(*term.Symbol)
		return ok && sym.IsIgnore()
	})
}

// BindsP implements `$binds? env sym…` (operative, per the original
// implementation's environment-introspection form): reports whether every
// named symbol resolves in env.
func BindsP() *eval.Combiner {
	return nativeOperative("$binds?", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("$binds?", operands, 1, -1); err != nil {
			return nil, err
		}
		envExpr, err := eval.Eval(ctx, operands.First())
		if err != nil {
			return nil, err
		}
		target, err := eval.EnvOf(envExpr)
		if err != nil {
			return nil, err
		}
		for _, s := range operands.Rest().Children {
			sym, ok := s.Value.Data.(*term.Symbol)
			if !ok {
				return nil, errors.NewBadIdentifier("$binds?: operand is not a symbol")
			}
			if !target.Binds(sym.Name) {
				return False, nil
			}
		}
		return True, nil
	})
}

// --- minimal numeric tower ----------------------------------------------

func asNumber(t *term.Term) (float64, error) {
	t = term.Deref(t)
	if t == nil || t.Value.Kind != term.Primitive {
		return 0, errors.NewTypeError("expected a number")
	}
	f, ok := t.Value.Data.(float64)
	if !ok {
		return 0, errors.NewTypeError("expected a number")
	}
	return f, nil
}

func numberTerm(f float64) *term.Term {
	return term.NewLeaf(term.Value{Kind: term.Primitive, Data: f})
}

func arith(name string, identity float64, op func(a, b float64) float64) *eval.Combiner {
	return nativeApplicative(name, func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		acc := identity
		if operands.Length() == 0 {
			return numberTerm(acc), nil
		}
		first, err := asNumber(operands.First())
		if err != nil {
			return nil, err
		}
		acc = first
		for _, x := range operands.Children[1:] {
			v, err := asNumber(x)
			if err != nil {
				return nil, err
			}
			acc = op(acc, v)
		}
		return numberTerm(acc), nil
	})
}

func Add() *eval.Combiner { return arith("+", 0, func(a, b float64) float64 { return a + b }) }
func Mul() *eval.Combiner { return arith("*", 1, func(a, b float64) float64 { return a * b }) }
func Sub() *eval.Combiner {
	return nativeApplicative("-", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("-", operands, 1, -1); err != nil {
			return nil, err
		}
		first, err := asNumber(operands.First())
		if err != nil {
			return nil, err
		}
		if operands.Length() == 1 {
			return numberTerm(-first), nil
		}
		acc := first
		for _, x := range operands.Children[1:] {
			v, err := asNumber(x)
			if err != nil {
				return nil, err
			}
			acc -= v
		}
		return numberTerm(acc), nil
	})
}
func Div() *eval.Combiner {
	return nativeApplicative("/", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("/", operands, 1, -1); err != nil {
			return nil, err
		}
		first, err := asNumber(operands.First())
		if err != nil {
			return nil, err
		}
		if operands.Length() == 1 {
			if first == 0 {
				return nil, errors.NewInvariantViolation("/: division by zero")
			}
			return numberTerm(1 / first), nil
		}
		acc := first
		for _, x := range operands.Children[1:] {
			v, err := asNumber(x)
			if err != nil {
				return nil, err
			}
			if v == 0 {
				return nil, errors.NewInvariantViolation("/: division by zero")
			}
			acc /= v
		}
		return numberTerm(acc), nil
	})
}

func compareChain(name string, cmp func(a, b float64) bool) *eval.Combiner {
	return nativeApplicative(name, func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity(name, operands, 1, -1); err != nil {
			return nil, err
		}
		prev, err := asNumber(operands.First())
		if err != nil {
			return nil, err
		}
		for _, x := range operands.Children[1:] {
			v, err := asNumber(x)
			if err != nil {
				return nil, err
			}
			if !cmp(prev, v) {
				return False, nil
			}
			prev = v
		}
		return True, nil
	})
}

func NumEq() *eval.Combiner { return compareChain("=", func(a, b float64) bool { return a == b }) }
func Lt() *eval.Combiner    { return compareChain("<", func(a, b float64) bool { return a < b }) }
func Gt() *eval.Combiner    { return compareChain(">", func(a, b float64) bool { return a > b }) }
func Le() *eval.Combiner    { return compareChain("<=", func(a, b float64) bool { return a <= b }) }
func Ge() *eval.Combiner    { return compareChain(">=", func(a, b float64) bool { return a >= b }) }

// --- equality ------------------------------------------------------------

// Eqv$ implements `eqv?` (applicative 2): identity equality — same symbol,
// same primitive value, same combiner/environment/opaque identity, or both
// the empty list.
func Eqv$() *eval.Combiner {
	return nativeApplicative("eqv?", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("eqv?", operands, 2, 2); err != nil {
			return nil, err
		}
		return Bool(eqv(operands.First(), nth(operands, 1))), nil
	})
}

func eqv(a, b *term.Term) bool {
	a, b = term.Deref(a), term.Deref(b)
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Value.Kind != b.Value.Kind {
		return false
	}
	switch a.Value.Kind {
	case term.NoValue:
		return a.IsLeaf() && b.IsLeaf()
	case term.SymbolValue:
		return a.Value.Data.(*term.Symbol) == b.Value.Data.(*term.Symbol)
	case term.Primitive:
		return a.Value.Data == b.Value.Data
	case term.InertValue, term.IgnoreValue:
		return true
	case term.CombinerValue, term.OpaqueValue:
		return a.Value.Data == b.Value.Data
	case term.EnvironmentValue, term.WeakEnvironmentValue:
		ea, errA := eval.EnvOf(a)
		eb, errB := eval.EnvOf(b)
		return errA == nil && errB == nil && ea == eb
	}
	return false
}

// Equal$ implements `equal?` (applicative 2): structural equality over list
// structure, falling back to eqv? at the leaves.
func Equal$() *eval.Combiner {
	return nativeApplicative("equal?", func(ctx *eval.Context, operands *term.Term) (*term.Term, error) {
		if err := requireArity("equal?", operands, 2, 2); err != nil {
			return nil, err
		}
		return Bool(equalTerm(operands.First(), nth(operands, 1))), nil
	})
}

func equalTerm(a, b *term.Term) bool {
	a, b = term.Deref(a), term.Deref(b)
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.IsBranch() || b.IsBranch() {
		if a.Length() != b.Length() {
			return false
		}
		for i := range a.Children {
			if !equalTerm(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	}
	if a.Value.Kind != b.Value.Kind {
		return false
	}
	if a.Value.Kind == term.Primitive {
		return reflect.DeepEqual(a.Value.Data, b.Value.Data)
	}
	return eqv(a, b)
}
