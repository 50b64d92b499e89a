package eval

import (
	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/term"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Resolver looks up name starting from e, returning the bound term and the
// environment that directly holds the binding. Contexts default to
// env.Resolve but may install a different callback (spec §3: "resolution
// callback (defaults to §4.2)").
type Resolver func(e *env.Environment, name string) (*term.Term, *env.Environment, error)

// Context is the per-evaluation-thread state threaded through every
// reduction (spec §3, "Context"). One Context belongs to exactly one
// cooperative thread of control; there is no shared mutable state between
// contexts (§5). The trampoline itself lives in Eval/ReduceOnce (§4.3,
// §4.4): each reduction step returns either a result or a *TailCall, and
// Eval loops on the latter in the same Go stack frame rather than driving a
// separate pushed-action stack.
type Context struct {
	Env        *env.Environment
	Resolve    Resolver
	LastStatus Status
	TCO        *TCOAction
}

// NewContext creates a context rooted at e, with the default resolver.
func NewContext(e *env.Environment) *Context {
	return &Context{
		Env:     e,
		Resolve: defaultResolve,
	}
}

func defaultResolve(e *env.Environment, name string) (*term.Term, *env.Environment, error) {
	entry, holder, err := env.Resolve(e, name)
	if err != nil {
		return nil, nil, err
	}
	t, _ := entry.(*term.Term)
	return t, holder, nil
}

// setStatus folds s, the outcome of the reduction step currently running,
// into ctx.LastStatus via the §3 combination rule, read back by Reduce once
// Eval's trampoline drains.
func (ctx *Context) setStatus(s Status) {
	ctx.LastStatus = Combine(ctx.LastStatus, s)
}
