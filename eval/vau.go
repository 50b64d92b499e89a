package eval

import (
	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Vau is the operative-combiner handler of §4.6: captures a formal parameter
// tree, an optional dynamic-environment formal, a static parent designator
// fixed at construction time, a shared body, and a no-lift flag.
type Vau struct {
	OpName        string
	Formal        *term.Term // parameter tree, precedes CheckParameterTree
	DynEnvFormal  *term.Symbol
	StaticParent  env.Parent
	Body          *term.Term
	NoLift        bool
}

func (v *Vau) Name() string {
	if v.OpName == "" {
		return "vau"
	}
	return v.OpName
}

// EnvTerm wraps an owning environment handle as a term carrying EnvironmentValue.
func EnvTerm(e *env.Environment) *term.Term {
	return term.NewLeaf(term.Value{Kind: term.EnvironmentValue, Data: e})
}

// WeakEnvTerm wraps a weak environment reference as a term carrying
// WeakEnvironmentValue.
func WeakEnvTerm(ref *env.EnvRef) *term.Term {
	return term.NewLeaf(term.Value{Kind: term.WeakEnvironmentValue, Data: ref})
}

// EnvOf extracts the *env.Environment held (owning or locked-weak) by t. t is
// dereferenced first since an environment operand is routinely a bare
// variable read, which evaluates to a reference rather than the
// EnvironmentValue leaf directly (§4.2).
func EnvOf(t *term.Term) (*env.Environment, error) {
	t = term.Deref(t)
	if t == nil {
		return nil, errors.NewTypeError("expected an environment, got nothing")
	}
	switch t.Value.Kind {
	case term.EnvironmentValue:
		e, _ := t.Value.Data.(*env.Environment)
		return e, nil
	case term.WeakEnvironmentValue:
		ref, _ := t.Value.Data.(*env.EnvRef)
		return ref.Lock()
	}
	return nil, errors.NewTypeError("term does not carry an environment (kind %s)", t.Value.Kind)
}

// ParentFromEnvTerm converts a reduced operand into the env.Parent it
// designates for a freshly constructed vau (§4.6: "static parent expression
// value, either a single environment, a weak ref, or an environment-list").
func ParentFromEnvTerm(t *term.Term) (env.Parent, error) {
	t = term.Deref(t)
	if t == nil {
		return env.Parent{}, errors.NewTypeError("expected an environment expression, got nothing")
	}
	switch t.Value.Kind {
	case term.EnvironmentValue:
		e, _ := t.Value.Data.(*env.Environment)
		return env.Parent{Kind: env.SingleParent, Single: env.NewEnvRef(e)}, nil
	case term.WeakEnvironmentValue:
		ref, _ := t.Value.Data.(*env.EnvRef)
		return env.Parent{Kind: env.SingleParent, Single: ref}, nil
	}
	if t.IsBranch() {
		refs := make([]*env.EnvRef, 0, t.Length())
		for _, child := range t.Children {
			p, err := ParentFromEnvTerm(child)
			if err != nil {
				return env.Parent{}, err
			}
			refs = append(refs, p.Single)
		}
		return env.Parent{Kind: env.ListParent, List: refs}, nil
	}
	return env.Parent{}, errors.NewTypeError("term does not designate an environment or environment list")
}

// Call implements the vau call sequence of §4.6.
func (v *Vau) Call(ctx *Context, operands *term.Term) (*term.Term, *TailCall, error) {
	tracer().Debugf("vau %s: entering call", v.Name())

	newEnv := env.NewWithParent(v.Name()+"-frame", v.StaticParent)

	if v.DynEnvFormal != nil && !v.DynEnvFormal.IsIgnore() {
		callerRef := env.NewEnvRef(ctx.Env)
		if err := newEnv.Define(v.DynEnvFormal.Name, WeakEnvTerm(callerRef)); err != nil {
			return nil, nil, err
		}
	}

	if err := BindParameter(newEnv, v.Formal, operands); err != nil {
		return nil, nil, err
	}

	ctx.Env = newEnv
	return nil, &TailCall{Env: EnvTerm(newEnv), Body: v.Body}, nil
}

// VauCombiner builds the operative combiner value for a freshly-created vau.
func VauCombiner(v *Vau) *Combiner {
	return NewOperative(v)
}
