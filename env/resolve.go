package env

import "github.com/npillmayer/npla1/errors"

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Resolve implements §4.2 name resolution: look up name in env's own
// bindings; on miss, recurse into env's parent designator (empty → fail;
// single → recurse; list → DFS left-to-right, first success wins). A list
// parent whose weak reference has gone dangling is skipped in favor of the
// remaining parents, the same way Environment.Parents() treats one; only a
// SingleParent's dangling reference is itself a hard failure, since there
// there is nothing left to fall back to.
//
// Returns the entry's environment (the one directly holding the binding,
// from which Get/Set can be performed), or an error if name is unbound
// anywhere in the chain (including when every list parent was dangling).
func Resolve(e *Environment, name string) (entry interface{}, holder *Environment, err error) {
	if e == nil {
		return nil, nil, errors.NewBadIdentifier("%q is unbound", name)
	}
	if v, found := e.bindings.Get(name); found {
		return v, e, nil
	}
	switch e.parent.Kind {
	case NoParent:
		return nil, nil, errors.NewBadIdentifier("%q is unbound", name)
	case SingleParent:
		p, lockErr := e.parent.Single.Lock()
		if lockErr != nil {
			return nil, nil, lockErr
		}
		return Resolve(p, name)
	case ListParent:
		for _, ref := range e.parent.List {
			p, lockErr := ref.Lock()
			if lockErr != nil {
				continue
			}
			if v, holdEnv, resolveErr := Resolve(p, name); resolveErr == nil {
				return v, holdEnv, nil
			}
		}
		return nil, nil, errors.NewBadIdentifier("%q is unbound", name)
	}
	return nil, nil, errors.NewBadIdentifier("%q is unbound", name)
}
