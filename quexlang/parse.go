/*
Package quexlang implements a minimal parser and deparser for expression
trees, covering a prefix-call syntax:

    f(a, b = 2, g(3), , z)      calls, named args, empty argument slots
    x <- f(1)                   assignment (right-associative)
    function(x, y = 1, ...) x   function definition with formal parameters
    { e1; e2 }                  block grouping

The parser exists for test fixtures and interactive use; it is not a general
source-language front end. Deparse is the inverse for the subset of syntax
the parser covers: Parse(Deparse(e)) reproduces e structurally.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package quexlang

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/quex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quex.lang'.
func tracer() tracing.Trace {
	return tracing.Select("quex.lang")
}

// Structural operator names the parser emits.
const (
	AssignOp   = "<-"       // assignment call head
	BlockOp    = "{"        // block call head
	FunctionOp = "function" // function-definition call head
)

// Parse parses an input string in prefix-call syntax into an expression
// tree.
func Parse(input string) (quex.Expr, error) {
	toks, err := scan(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %q as %v", input, e)
	return e, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(typ int) bool {
	if p.peek().typ == typ {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(typ int) error {
	t := p.peek()
	if t.typ != typ {
		return fmt.Errorf("expected %s at position %d, found %s",
			tokenName(typ), t.span[0], tokenName(t.typ))
	}
	p.next()
	return nil
}

// expr := term [ '<-' expr ]
func (p *parser) expr() (quex.Expr, error) {
	target, err := p.term()
	if err != nil {
		return nil, err
	}
	if !p.accept(tokArrow) {
		return target, nil
	}
	value, err := p.expr() // right-associative
	if err != nil {
		return nil, err
	}
	return quex.NewCall(quex.Sym(AssignOp), quex.PosArg(target), quex.PosArg(value)), nil
}

// term := atom { '(' args ')' }
func (p *parser) term() (quex.Expr, error) {
	e, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.accept('(') {
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		e = quex.NewCall(e, args...)
	}
	return e, nil
}

func (p *parser) atom() (quex.Expr, error) {
	t := p.next()
	switch t.typ {
	case tokNum:
		v, err := strconv.ParseFloat(t.lexeme, 64)
		if err != nil {
			return nil, fmt.Errorf("illegal number %q at position %d", t.lexeme, t.span[0])
		}
		return quex.Num(v), nil
	case tokString:
		return quex.Str(t.lexeme[1 : len(t.lexeme)-1]), nil
	case tokTrue:
		return quex.Bool(true), nil
	case tokFalse:
		return quex.Bool(false), nil
	case tokNull:
		return quex.Null(), nil
	case tokID:
		return quex.Sym(t.lexeme), nil
	case tokFunction:
		return p.function()
	case '{':
		return p.block()
	}
	return nil, fmt.Errorf("unexpected %s at position %d", tokenName(t.typ), t.span[0])
}

// function := 'function' '(' params ')' expr
// The result is a call of the function operator: its first argument is the
// parameter list, its second the body.
func (p *parser) function() (quex.Expr, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	params, err := p.params()
	if err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return quex.NewCall(quex.Sym(FunctionOp), quex.PosArg(params), quex.PosArg(body)), nil
}

// params := [ param (',' param)* ] ')' ; param := '...' | ID [ '=' expr ]
func (p *parser) params() (*quex.ParamList, error) {
	pl := quex.NewParamList()
	if p.accept(')') {
		return pl, nil
	}
	for {
		if p.accept(tokEllipsis) {
			pl.Params = append(pl.Params, quex.P(quex.VariadicName))
		} else {
			t := p.peek()
			if err := p.expect(tokID); err != nil {
				return nil, err
			}
			param := quex.P(t.lexeme)
			if p.accept('=') {
				def, err := p.expr()
				if err != nil {
					return nil, err
				}
				param.Default = def
			}
			pl.Params = append(pl.Params, param)
		}
		if p.accept(',') {
			continue
		}
		break
	}
	return pl, p.expect(')')
}

// args := [ arg (',' arg)* ] ')' ; arg := ID '=' expr | expr | empty
// An empty slot between commas (or a trailing comma) produces the empty
// symbol, the sentinel for a deliberately omitted argument.
func (p *parser) args() ([]quex.Arg, error) {
	var args []quex.Arg
	if p.accept(')') {
		return args, nil
	}
	for {
		switch p.peek().typ {
		case ',', ')':
			args = append(args, quex.PosArg(quex.EmptySym()))
		case tokID:
			// a name only if followed by '='
			if p.toks[p.pos+1].typ == '=' {
				name := p.next().lexeme
				p.next() // the '='
				v, err := p.expr()
				if err != nil {
					return nil, err
				}
				args = append(args, quex.NamedArg(name, v))
				break
			}
			fallthrough
		default:
			v, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, quex.PosArg(v))
		}
		if p.accept(',') {
			continue
		}
		break
	}
	return args, p.expect(')')
}

// block := '{' [ expr (';' expr)* [';'] ] '}'
func (p *parser) block() (quex.Expr, error) {
	blk := quex.NewCall(quex.Sym(BlockOp))
	if p.accept('}') {
		return blk, nil
	}
	for {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		blk.Args = append(blk.Args, quex.PosArg(e))
		if p.accept(';') {
			if p.peek().typ == '}' {
				break
			}
			continue
		}
		break
	}
	return blk, p.expect('}')
}
