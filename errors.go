package quex

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "errors"

// The error taxonomy of this module. All conditions are reported to the
// caller; nothing is retried or silently substituted. Subpackages wrap these
// sentinels with context (the offending argument or parameter name), so
// clients test with errors.Is.
var (
	// ErrUnsupportedNodeKind signals a node outside the closed four-variant
	// set. It is fatal to the traversal that encountered it and indicates
	// malformed or foreign input, not a recoverable condition.
	ErrUnsupportedNodeKind = errors.New("unsupported expression node kind")

	// ErrAmbiguousArgumentName signals an argument name which is a proper
	// prefix of more than one formal parameter name.
	ErrAmbiguousArgumentName = errors.New("argument name matches more than one formal parameter")

	// ErrTooManyArguments signals an argument for which no formal parameter
	// slot is left.
	ErrTooManyArguments = errors.New("unused argument in call")

	// ErrMissingRequiredArgument signals a formal parameter without default
	// receiving no value (validating standardization only).
	ErrMissingRequiredArgument = errors.New("required argument missing from call")

	// ErrInvalidSpliceContext signals structural misuse of a substitution
	// marker: a splice site in a position which cannot absorb a sequence of
	// arguments, or a malformed unquote or splice site.
	ErrInvalidSpliceContext = errors.New("substitution marker in invalid context")

	// ErrInvalidUnquotedName signals a computed argument name which did not
	// resolve to a non-empty string.
	ErrInvalidUnquotedName = errors.New("unquoted argument name is not a non-empty string")

	// ErrSignatureUnavailable signals that no formal signature can be
	// produced for a callee.
	ErrSignatureUnavailable = errors.New("no signature available for callee")

	// ErrDepthLimitExceeded signals that a traversal hit a configured
	// recursion bound (see WithDepthLimit).
	ErrDepthLimitExceeded = errors.New("expression nesting exceeds depth limit")
)
