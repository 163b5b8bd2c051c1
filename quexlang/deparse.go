package quexlang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/quex"
)

// Deparse renders an expression tree in the syntax Parse accepts. For trees
// within that subset, Parse(Deparse(e)) is structurally equal to e. Deparse
// is a debugging and fixture tool, not part of the semantic core.
func Deparse(e quex.Expr) (string, error) {
	var b strings.Builder
	if err := deparse(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func deparse(b *strings.Builder, e quex.Expr) error {
	switch x := e.(type) {
	case *quex.Const:
		return deparseConst(b, x)
	case *quex.Symbol:
		b.WriteString(x.Name) // the empty symbol renders as nothing
		return nil
	case *quex.Call:
		return deparseCall(b, x)
	case *quex.ParamList:
		return deparseParams(b, x)
	}
	return fmt.Errorf("%w: %T", quex.ErrUnsupportedNodeKind, e)
}

func deparseConst(b *strings.Builder, c *quex.Const) error {
	switch v := c.Value.(type) {
	case nil:
		b.WriteString("NULL")
	case bool:
		if v {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		b.WriteByte('"')
		b.WriteString(v)
		b.WriteByte('"')
	default:
		return fmt.Errorf("cannot deparse constant of type %T", v)
	}
	return nil
}

func deparseCall(b *strings.Builder, c *quex.Call) error {
	if head, ok := c.Head.(*quex.Symbol); ok {
		switch {
		case head.Name == AssignOp && len(c.Args) == 2:
			if err := deparse(b, c.Args[0].Value); err != nil {
				return err
			}
			b.WriteString(" <- ")
			return deparse(b, c.Args[1].Value)
		case head.Name == BlockOp:
			b.WriteString("{ ")
			for i, a := range c.Args {
				if i > 0 {
					b.WriteString("; ")
				}
				if err := deparse(b, a.Value); err != nil {
					return err
				}
			}
			b.WriteString(" }")
			return nil
		case head.Name == FunctionOp && len(c.Args) == 2:
			if params, ok := c.Args[0].Value.(*quex.ParamList); ok {
				b.WriteString(FunctionOp)
				if err := deparseParams(b, params); err != nil {
					return err
				}
				b.WriteByte(' ')
				return deparse(b, c.Args[1].Value)
			}
		}
	}
	if err := deparse(b, c.Head); err != nil {
		return err
	}
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a.IsNamed() {
			b.WriteString(a.Name)
			b.WriteString(" = ")
		}
		if err := deparse(b, a.Value); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func deparseParams(b *strings.Builder, p *quex.ParamList) error {
	b.WriteByte('(')
	for i, par := range p.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(par.Name)
		if par.Default != nil {
			b.WriteString(" = ")
			if err := deparse(b, par.Default); err != nil {
				return err
			}
		}
	}
	b.WriteByte(')')
	return nil
}
