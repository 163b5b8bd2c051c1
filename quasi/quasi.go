/*
Package quasi implements quasiquotation over expression trees.

A template expression is copied structurally, except at explicitly marked
substitution sites. An unquote site — a call whose head is the unquote
marker symbol, with exactly one argument — is replaced by the value its
operand resolves to in the substitution environment. A splice site — a call
headed by the splice marker — resolves to a whole sequence of expressions,
which are spliced into the surrounding call's argument list in place:
splicing zero elements removes the slot, splicing many inserts all of them.

The definition marker computes the name half of a named argument from a
substitution instead of writing it literally:

    f(a, unquote(x), splice(rest), :=(n, 1))

Nothing outside marker sites is evaluated; untouched template parts are
deep-copied, so the result never shares nodes with the template.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package quasi

import (
	"fmt"

	"github.com/npillmayer/quex"
	"github.com/npillmayer/quex/binding"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quex.quasi'.
func tracer() tracing.Trace {
	return tracing.Select("quex.quasi")
}

// The distinguished marker symbols. A call headed by one of these is a
// substitution site, not an ordinary call.
const (
	UnquoteMarker = "unquote"
	SpliceMarker  = "splice"
	DefMarker     = ":="
)

// Unquote wraps an operand into a single-value unquote site.
func Unquote(e quex.Expr) *quex.Call {
	return quex.NewCall(quex.Sym(UnquoteMarker), quex.PosArg(e))
}

// Splice wraps an operand into a multi-value splice site.
func Splice(e quex.Expr) *quex.Call {
	return quex.NewCall(quex.Sym(SpliceMarker), quex.PosArg(e))
}

// DefName builds a name-position unquote site: the argument's name is
// computed from nameExpr, its value from value.
func DefName(nameExpr quex.Expr, value quex.Expr) *quex.Call {
	return quex.NewCall(quex.Sym(DefMarker), quex.PosArg(nameExpr), quex.PosArg(value))
}

func isMarker(e quex.Expr, marker string) (*quex.Call, bool) {
	c, ok := e.(*quex.Call)
	if !ok {
		return nil, false
	}
	head, ok := c.Head.(*quex.Symbol)
	if !ok || head.Name != marker {
		return nil, false
	}
	return c, true
}

// Expand builds a new expression from a template, resolving unquote, splice
// and definition sites against the substitution environment. The template is
// left untouched.
func Expand(template quex.Expr, env *binding.Scope) (quex.Expr, error) {
	return expand(template, env)
}

func expand(e quex.Expr, env *binding.Scope) (quex.Expr, error) {
	switch x := e.(type) {
	case *quex.Const, *quex.Symbol:
		return quex.Copy(x), nil
	case *quex.ParamList:
		return expandParamList(x, env)
	case *quex.Call:
		if c, ok := isMarker(x, UnquoteMarker); ok {
			return resolveUnquote(c, env)
		}
		if _, ok := isMarker(x, SpliceMarker); ok {
			// reached only where a single expression is expected
			return nil, fmt.Errorf("%w: splice cannot stand for a single value", quex.ErrInvalidSpliceContext)
		}
		return expandCall(x, env)
	}
	return nil, fmt.Errorf("%w: %T", quex.ErrUnsupportedNodeKind, e)
}

func expandCall(c *quex.Call, env *binding.Scope) (quex.Expr, error) {
	head, err := expand(c.Head, env) // an unquote head is fine, a splice head is not
	if err != nil {
		return nil, err
	}
	out := &quex.Call{Head: head}
	for _, a := range c.Args {
		if sp, ok := isMarker(a.Value, SpliceMarker); ok {
			if a.IsNamed() {
				return nil, fmt.Errorf("%w: splice site cannot carry an argument name", quex.ErrInvalidSpliceContext)
			}
			elems, err := resolveSplice(sp, env)
			if err != nil {
				return nil, err
			}
			tracer().Debugf("splicing %d element(s) into %v", len(elems), c.Head)
			for _, el := range elems {
				out.Args = append(out.Args, quex.PosArg(quex.Copy(el)))
			}
			continue
		}
		if def, ok := isMarker(a.Value, DefMarker); ok {
			arg, err := resolveDef(def, env)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, arg)
			continue
		}
		v, err := expand(a.Value, env)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, quex.Arg{Name: a.Name, Value: v})
	}
	return out, nil
}

func expandParamList(p *quex.ParamList, env *binding.Scope) (quex.Expr, error) {
	out := &quex.ParamList{Params: make([]quex.Param, len(p.Params))}
	for i, par := range p.Params {
		out.Params[i] = quex.Param{Name: par.Name}
		if par.Default == nil {
			continue
		}
		if _, ok := isMarker(par.Default, SpliceMarker); ok {
			// a default slot holds exactly one expression
			return nil, fmt.Errorf("%w: splice as parameter default", quex.ErrInvalidSpliceContext)
		}
		def, err := expand(par.Default, env)
		if err != nil {
			return nil, err
		}
		out.Params[i].Default = def
	}
	return out, nil
}

// resolveUnquote resolves a single-value unquote site. The operand is either
// a symbol, looked up in the substitution environment, or a constant, which
// stands for itself.
func resolveUnquote(c *quex.Call, env *binding.Scope) (quex.Expr, error) {
	op, err := markerOperand(c, UnquoteMarker)
	if err != nil {
		return nil, err
	}
	switch x := op.(type) {
	case *quex.Const:
		return quex.Copy(x), nil
	case *quex.Symbol:
		b, err := env.ResolveSymbol(x)
		if err != nil {
			return nil, err
		}
		if b.IsSeq() {
			return nil, fmt.Errorf("%w: sequence binding '%s' at single-value unquote site",
				quex.ErrInvalidSpliceContext, x.Name)
		}
		return quex.Copy(b.Value), nil
	}
	return nil, fmt.Errorf("%w: unquote operand must be a symbol or constant", quex.ErrInvalidSpliceContext)
}

// resolveSplice resolves a splice site to its sequence of expressions. The
// operand must be a symbol with a sequence binding.
func resolveSplice(c *quex.Call, env *binding.Scope) ([]quex.Expr, error) {
	op, err := markerOperand(c, SpliceMarker)
	if err != nil {
		return nil, err
	}
	sym, ok := op.(*quex.Symbol)
	if !ok {
		return nil, fmt.Errorf("%w: splice operand must be a symbol", quex.ErrInvalidSpliceContext)
	}
	b, err := env.ResolveSymbol(sym)
	if err != nil {
		return nil, err
	}
	if !b.IsSeq() {
		return nil, fmt.Errorf("%w: '%s' is not bound to a sequence", quex.ErrInvalidSpliceContext, sym.Name)
	}
	return b.Seq, nil
}

// resolveDef resolves a definition site to a named argument. The name
// operand must resolve to a non-empty string (or be a literal one).
func resolveDef(c *quex.Call, env *binding.Scope) (quex.Arg, error) {
	if len(c.Args) != 2 || c.Args[0].IsNamed() || c.Args[1].IsNamed() {
		return quex.Arg{}, fmt.Errorf("%w: definition marker takes a name and a value", quex.ErrInvalidUnquotedName)
	}
	nameExpr := c.Args[0].Value
	if uq, ok := isMarker(nameExpr, UnquoteMarker); ok {
		resolved, err := resolveUnquote(uq, env)
		if err != nil {
			return quex.Arg{}, err
		}
		nameExpr = resolved
	} else if sym, ok := nameExpr.(*quex.Symbol); ok {
		b, err := env.ResolveSymbol(sym)
		if err != nil {
			return quex.Arg{}, err
		}
		if b.IsSeq() {
			return quex.Arg{}, fmt.Errorf("%w: sequence binding '%s' as argument name",
				quex.ErrInvalidUnquotedName, sym.Name)
		}
		nameExpr = b.Value
	}
	name, ok := defName(nameExpr)
	if !ok {
		return quex.Arg{}, fmt.Errorf("%w: resolved to %v", quex.ErrInvalidUnquotedName, nameExpr)
	}
	value, err := expand(c.Args[1].Value, env)
	if err != nil {
		return quex.Arg{}, err
	}
	return quex.NamedArg(name, value), nil
}

// defName extracts a usable argument name: a non-empty string constant or a
// non-empty symbol.
func defName(e quex.Expr) (string, bool) {
	switch x := e.(type) {
	case *quex.Const:
		s, ok := x.Value.(string)
		return s, ok && s != ""
	case *quex.Symbol:
		return x.Name, !x.IsEmpty()
	}
	return "", false
}

// markerOperand checks marker-site arity: exactly one unnamed argument.
func markerOperand(c *quex.Call, marker string) (quex.Expr, error) {
	if len(c.Args) != 1 || c.Args[0].IsNamed() {
		return nil, fmt.Errorf("%w: %s takes exactly one argument", quex.ErrInvalidSpliceContext, marker)
	}
	return c.Args[0].Value, nil
}
