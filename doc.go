/*
Package quex implements quoted expressions: program code held as data.

QuEx provides a small closed set of tree node kinds to represent captured,
unevaluated code, together with the algorithms that make such trees useful:
a generic fold/map walker, standardization of call arguments against a
declared signature, quasiquotation (building new trees from templates with
explicit substitution sites), and static-analysis passes like free-variable
detection.

Package structure is as follows:

■ quex: The base package contains the expression model (Constant, Symbol,
Call, ParameterList), structural equality, and the fold/map tree walker all
other packages build on.

■ stdcall: Package stdcall rewrites the arguments of a call into canonical
named form, given the formal signature of the callee.

■ quasi: Package quasi builds new expression trees from templates with
unquote and splice sites.

■ binding: Package binding provides scopes and symbol tables whose bindings
hold expressions; it serves as substitution environment for quasiquotation
and as scope accumulator for the analysis passes.

■ analysis: Package analysis implements read-only passes over expression
trees: free variables, assignment targets, call sites.

■ quexlang: Package quexlang is a small parser and deparser for a
prefix-call syntax, intended for test fixtures and interactive use.

Expressions are immutable once constructed; every transformation returns a
new tree. Folding the same expression from multiple goroutines is safe
without locking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package quex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quex.core'.
func tracer() tracing.Trace {
	return tracing.Select("quex.core")
}
