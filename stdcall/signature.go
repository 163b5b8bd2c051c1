package stdcall

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/quex"
)

// SignatureResolver produces the formal signature for a callee expression.
// It is the host-specific half of call standardization: hosts with live
// introspection plug their own resolver in, tests use a TableResolver.
//
// A resolver fails with an error wrapping quex.ErrSignatureUnavailable if no
// signature can be produced, e.g. for opaque native callables.
type SignatureResolver interface {
	Signature(callee quex.Expr) (*quex.ParamList, error)
}

// ResolverFunc adapts a plain function to the SignatureResolver interface.
type ResolverFunc func(callee quex.Expr) (*quex.ParamList, error)

// Signature is part of the SignatureResolver interface.
func (f ResolverFunc) Signature(callee quex.Expr) (*quex.ParamList, error) {
	return f(callee)
}

// TableResolver resolves signatures for symbol-headed calls from a map of
// callable names.
type TableResolver map[string]*quex.ParamList

var _ SignatureResolver = TableResolver(nil)

// Signature is part of the SignatureResolver interface.
func (t TableResolver) Signature(callee quex.Expr) (*quex.ParamList, error) {
	sym, ok := callee.(*quex.Symbol)
	if !ok || sym.IsEmpty() {
		return nil, fmt.Errorf("%w: callee is no symbol", quex.ErrSignatureUnavailable)
	}
	sig, ok := t[sym.Name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", quex.ErrSignatureUnavailable, sym.Name)
	}
	return sig, nil
}

// StandardizeWith standardizes a call against the signature its head
// resolves to.
func StandardizeWith(call *quex.Call, r SignatureResolver) (*quex.Call, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: nil call", quex.ErrSignatureUnavailable)
	}
	sig, err := r.Signature(call.Head)
	if err != nil {
		return nil, err
	}
	return Standardize(call, sig)
}
