/*
Package stdcall rewrites the arguments of a call into canonical named form.

Given a call and the formal signature of its callee (a quex.ParamList), the
standardizer produces an equivalent call in which every argument is named by
the formal parameter it supplies a value for, listed in the signature's
declared order. Arguments no formal slot accounts for end up in the variadic
capture slot ("..."), if the signature declares one.

Argument names match a formal either exactly or as a unique proper prefix of
exactly one formal name. An exact match always wins, even when the supplied
name is at the same time a proper prefix of a second formal.

Standardization reports what the caller supplied, not what will execute:
formals with a default and no supplied value are omitted from the output
rather than materialized with the default.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stdcall

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/quex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quex.stdcall'.
func tracer() tracing.Trace {
	return tracing.Select("quex.stdcall")
}

// Standardize rewrites call into canonical named form, given the formal
// signature of the callee. It does not validate completeness: a formal
// without default which receives no value is simply absent from the output.
// Use StandardizeStrict for validation.
func Standardize(call *quex.Call, sig *quex.ParamList) (*quex.Call, error) {
	return standardize(call, sig, false)
}

// StandardizeStrict is Standardize plus completeness validation: a formal
// without default receiving no value fails with ErrMissingRequiredArgument,
// unless the signature declares a variadic capture.
func StandardizeStrict(call *quex.Call, sig *quex.ParamList) (*quex.Call, error) {
	return standardize(call, sig, true)
}

// residual is a supplied argument destined for the variadic capture,
// remembered together with its original position so the capture group keeps
// the caller's ordering.
type residual struct {
	pos int
	arg quex.Arg
}

func standardize(call *quex.Call, sig *quex.ParamList, strict bool) (*quex.Call, error) {
	if call == nil || sig == nil {
		return nil, fmt.Errorf("%w: nil call or signature", quex.ErrSignatureUnavailable)
	}
	formals := sig.Params
	vi := sig.Variadic()
	values := make([]quex.Expr, len(formals))
	filled := make([]bool, len(formals))
	var leftover []residual

	// Step 1: partition supplied arguments, preserving order within each group.
	var named, positional []residual
	for i, a := range call.Args {
		if a.IsNamed() {
			named = append(named, residual{pos: i, arg: a})
		} else {
			positional = append(positional, residual{pos: i, arg: a})
		}
	}

	// Step 2: match named arguments, exact first, then unique proper prefix.
	for _, n := range named {
		target := exactMatch(formals, vi, n.arg.Name)
		if target < 0 {
			var err error
			if target, err = prefixMatch(formals, filled, vi, n.arg.Name); err != nil {
				return nil, err
			}
		}
		if target < 0 {
			if vi < 0 {
				return nil, fmt.Errorf("%w: '%s'", quex.ErrTooManyArguments, n.arg.Name)
			}
			leftover = append(leftover, n) // destined for the variadic capture
			continue
		}
		if filled[target] {
			return nil, fmt.Errorf("%w: formal '%s' matched by multiple arguments",
				quex.ErrTooManyArguments, formals[target].Name)
		}
		filled[target] = true
		values[target] = n.arg.Value
	}

	// Step 3: consume positional arguments left to right. An empty-symbol
	// placeholder counts as supplied; its value stays the sentinel.
	next := 0
	for _, p := range positional {
		for next < len(formals) && (next == vi || filled[next]) {
			next++
		}
		if next >= len(formals) {
			if vi < 0 {
				return nil, fmt.Errorf("%w: argument %d", quex.ErrTooManyArguments, p.pos+1)
			}
			leftover = append(leftover, p)
			continue
		}
		filled[next] = true
		values[next] = p.arg.Value
	}
	sort.Slice(leftover, func(i, j int) bool { return leftover[i].pos < leftover[j].pos })

	// Steps 4 and 5: emit formals in declared order; unfilled formals are
	// omitted, the variadic slot expands to the residual group.
	out := &quex.Call{Head: call.Head}
	for j, f := range formals {
		if j == vi {
			for _, r := range leftover {
				out.Args = append(out.Args, r.arg)
			}
			continue
		}
		if !filled[j] {
			if strict && f.Default == nil && vi < 0 {
				return nil, fmt.Errorf("%w: '%s'", quex.ErrMissingRequiredArgument, f.Name)
			}
			continue
		}
		out.Args = append(out.Args, quex.NamedArg(f.Name, values[j]))
	}
	tracer().Debugf("standardized %v to %v", call, out)
	return out, nil
}

// exactMatch finds the formal whose name equals name. The variadic marker
// never matches by name.
func exactMatch(formals []quex.Param, vi int, name string) int {
	for j, f := range formals {
		if j == vi {
			continue
		}
		if f.Name == name {
			return j
		}
	}
	return -1
}

// prefixMatch attempts a unique proper-prefix match against the remaining
// unmatched formals. Formals behind a variadic marker are excluded: they can
// only be supplied by their full name. Zero matches leaves the argument
// unresolved (result -1); more than one fails.
func prefixMatch(formals []quex.Param, filled []bool, vi int, name string) (int, error) {
	limit := len(formals)
	if vi >= 0 {
		limit = vi
	}
	target := -1
	for j := 0; j < limit; j++ {
		if filled[j] || formals[j].Name == name {
			continue
		}
		if strings.HasPrefix(formals[j].Name, name) {
			if target >= 0 {
				return -1, fmt.Errorf("%w: '%s' (matches '%s' and '%s')",
					quex.ErrAmbiguousArgumentName, name, formals[target].Name, formals[j].Name)
			}
			target = j
		}
	}
	return target, nil
}
