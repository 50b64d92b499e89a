/*
Package npla1 is the core of an interpreter for NPLA1, a Kernel-style
applicative/operative Lisp dialect with first-class environments,
first-class operatives (fexprs), explicit move/copy reference semantics,
and proper tail calls (PTC) for unbounded recursion.

Package structure is as follows:

■ term: the tagged term tree, value slot and term-reference/tag system.

■ env: first-class environments, environment references and anchors.

■ eval: the context, trampolined TCO-action evaluator,
combiner dispatch, vau (operative) handling, the parameter binder and the
record compressor. Dispatch and the TCO trampoline are mutually recursive,
so they live in one package rather than two.

■ forms: the built-in special forms, encapsulation and the native
combiner registry.

■ reader: the lexer and S-expression reader feeding terms into the core.

■ repl: a read-eval-print driver built on top of reader and eval.

This root package holds only the small shared primitives (source spans)
used across all of the above.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package npla1
