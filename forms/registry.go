package forms

import (
	"github.com/npillmayer/npla1/env"
	"github.com/npillmayer/npla1/eval"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// entry pairs a ground-environment symbol name with the combiner
// constructor that builds its value, mirroring the teacher's own
// name→constructor registration tables built at startup.
type entry struct {
	name string
	make func() *eval.Combiner
}

var registry = []entry{
	{"$if", If$}, {"$cond", Cond$}, {"$and?", And$}, {"$or?", Or$},
	{"$sequence", func() *eval.Combiner { return SequenceCombiner }},
	{"$when", When$}, {"$unless", Unless$}, {"quote", Quote$},

	{"$lambda", Lambda$}, {"$vau", Vau$}, {"$vau/e", VauE$},
	{"$def!", Def$}, {"$defrec!", DefRec$}, {"$set!", Set$}, {"$setrec!", SetRec$},

	{"eval", Eval$}, {"eval%", EvalPreserve$},
	{"wrap", Wrap$}, {"unwrap", Unwrap$}, {"apply", Apply$},

	{"cons", Cons$}, {"cons%", ConsPreserve$},
	{"first", First$}, {"rest", Rest$}, {"set-first!", SetFirst$},
	{"append", Append$}, {"list-concat", ListConcat$},
	{"map1", Map1$}, {"foldr1", FoldR1$}, {"accl", Accl$}, {"accr", Accr$},
	{"make-environment", MakeEnvironment$}, {"list", List$},

	{"make-encapsulation-type", MakeEncapsulationType$},

	{"lvalue?", LvalueP}, {"rvalue?", RvalueP}, {"unique?", UniqueP},
	{"list?", ListP}, {"null?", NullP}, {"pair?", PairP}, {"symbol?", SymbolP},
	{"environment?", EnvironmentP}, {"combiner?", CombinerP},
	{"operative?", OperativeP}, {"applicative?", ApplicativeP},
	{"inert?", InertP}, {"ignore?", IgnoreP},
	{"$binds?", BindsP},

	{"+", Add}, {"-", Sub}, {"*", Mul}, {"/", Div},
	{"=", NumEq}, {"<", Lt}, {">", Gt}, {"<=", Le}, {">=", Ge},

	{"eqv?", Eqv$}, {"equal?", Equal$},
}

// Populate installs every built-in combiner of the registry into ground,
// the way the teacher's parser bootstraps its operator table via repeated
// env.Def calls at startup (§6: "a registry for native combiners keyed by
// symbol").
func Populate(ground *env.Environment) error {
	for _, e := range registry {
		c := e.make()
		if err := ground.Define(e.name, eval.CombinerTerm(c)); err != nil {
			return err
		}
	}
	return nil
}

// Ground builds a fresh ground environment with every built-in defined and
// then frozen, so user code cannot accidentally shadow a primitive in the
// shared root (spec §3: "frozen: boolean; if true, defining... fails").
func Ground() (*env.Environment, error) {
	g := env.New("ground")
	if err := Populate(g); err != nil {
		return nil, err
	}
	g.Freeze()
	return g, nil
}
