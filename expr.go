package quex

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

	"github.com/cnf/structhash"
)

// Kind classifies expression nodes. The set of kinds is closed: every
// algorithm in this module switches exhaustively over these four variants.
type Kind int8

// The four node kinds of the expression model.
const (
	UndefinedKind Kind = iota
	ConstantKind       // self-evaluating literal
	SymbolKind         // reference to a binding by name
	CallKind           // application of a head to arguments
	ParamListKind      // formal parameters of a callable

	kindSentinel // must stay last; pinned by the walker's guard
)

func (k Kind) String() string {
	switch k {
	case ConstantKind:
		return "Constant"
	case SymbolKind:
		return "Symbol"
	case CallKind:
		return "Call"
	case ParamListKind:
		return "ParameterList"
	}
	return "Undefined"
}

// Expr is a node in a code-as-data tree. Expressions form strict trees:
// every subexpression has exactly one parent slot. If the same subexpression
// is needed twice, it is duplicated (see Copy), never aliased.
//
// Expressions are to be treated as immutable once constructed. All
// transformations in this module return new trees.
type Expr interface {
	Kind() Kind
	String() string
}

// --- Constants -------------------------------------------------------------

// Const is an atomic, self-evaluating literal: a number, string, boolean or
// the null marker. Constants are always leaves. Aggregates cannot be wrapped
// into a constant; they are represented as a Call to a constructor.
type Const struct {
	Value interface{} // float64 | string | bool | nil
}

// Num creates a numeric constant.
func Num(v float64) *Const {
	return &Const{Value: v}
}

// Str creates a string constant.
func Str(s string) *Const {
	return &Const{Value: s}
}

// Bool creates a boolean constant.
func Bool(b bool) *Const {
	return &Const{Value: b}
}

// Null creates the null/empty-value constant.
func Null() *Const {
	return &Const{}
}

// Kind is part of the Expr interface.
func (c *Const) Kind() Kind {
	return ConstantKind
}

// IsNull returns true for the null constant.
func (c *Const) IsNull() bool {
	return c.Value == nil
}

func (c *Const) String() string {
	switch v := c.Value.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	}
	return fmt.Sprintf("<illegal constant %v>", c.Value)
}

// --- Symbols ---------------------------------------------------------------

// Symbol is a reference to a binding, by name. The distinguished empty
// symbol (empty name) is a sentinel for a deliberately omitted argument;
// attempting to resolve it to a value is an error (see package binding).
type Symbol struct {
	Name string
}

// Sym creates a symbol. Sym("") yields the empty symbol, equivalent to
// EmptySym().
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// EmptySym creates the empty symbol, the sentinel for a missing argument.
func EmptySym() *Symbol {
	return &Symbol{}
}

// Kind is part of the Expr interface.
func (s *Symbol) Kind() Kind {
	return SymbolKind
}

// IsEmpty returns true for the empty symbol.
func (s *Symbol) IsEmpty() bool {
	return s.Name == ""
}

func (s *Symbol) String() string {
	if s.IsEmpty() {
		return "<empty>"
	}
	return s.Name
}

// --- Calls -----------------------------------------------------------------

// Arg is one argument of a Call: an expression with an optional name.
// Argument names need not be unique in raw form; only call standardization
// (package stdcall) establishes uniqueness.
type Arg struct {
	Name  string // "" means positional
	Value Expr
}

// PosArg creates an unnamed (positional) argument.
func PosArg(e Expr) Arg {
	return Arg{Value: e}
}

// NamedArg creates a named argument.
func NamedArg(name string, e Expr) Arg {
	return Arg{Name: name, Value: e}
}

// IsNamed returns true if the argument carries a name.
func (a Arg) IsNamed() bool {
	return a.Name != ""
}

// Call represents application of Head to Args. Head may be a Symbol or
// itself a Call (application of a returned function). Args preserve
// positional order even when some carry names.
type Call struct {
	Head Expr
	Args []Arg
}

// NewCall creates a call node.
func NewCall(head Expr, args ...Arg) *Call {
	return &Call{Head: head, Args: args}
}

// Kind is part of the Expr interface.
func (c *Call) Kind() Kind {
	return CallKind
}

// WithArg returns a new Call with argument slot i replaced by a. The
// receiver is left untouched; this is the replacement-counterpart of an
// in-place element assignment. Out-of-range i returns the receiver.
func (c *Call) WithArg(i int, a Arg) *Call {
	if i < 0 || i >= len(c.Args) {
		return c
	}
	args := make([]Arg, len(c.Args))
	copy(args, c.Args)
	args[i] = a
	return &Call{Head: c.Head, Args: args}
}

func (c *Call) String() string {
	var b strings.Builder
	b.WriteString(c.Head.String())
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a.IsNamed() {
			b.WriteString(a.Name)
			b.WriteString(" = ")
		}
		if a.Value != nil {
			b.WriteString(a.Value.String())
		}
	}
	b.WriteByte(')')
	return b.String()
}

// --- Parameter lists -------------------------------------------------------

// VariadicName is the formal-parameter name of a variadic capture slot.
const VariadicName = "..."

// Param is one formal parameter: a name with an optional default expression.
type Param struct {
	Name    string
	Default Expr // nil if the parameter has no default
}

// P creates a formal parameter without default.
func P(name string) Param {
	return Param{Name: name}
}

// PD creates a formal parameter with a default expression.
func PD(name string, def Expr) Param {
	return Param{Name: name, Default: def}
}

// ParamList represents a callable's formal signature: an ordered sequence of
// parameters with optional defaults. It is distinct from Call because it
// binds names rather than applying a function.
type ParamList struct {
	Params []Param
}

// NewParamList creates a parameter list node.
func NewParamList(params ...Param) *ParamList {
	return &ParamList{Params: params}
}

// Kind is part of the Expr interface.
func (p *ParamList) Kind() Kind {
	return ParamListKind
}

// Variadic returns the index of the variadic capture slot ("..."), or -1 if
// the signature has none.
func (p *ParamList) Variadic() int {
	for i, par := range p.Params {
		if par.Name == VariadicName {
			return i
		}
	}
	return -1
}

func (p *ParamList) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, par := range p.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(par.Name)
		if par.Default != nil {
			b.WriteString(" = ")
			b.WriteString(par.Default.String())
		}
	}
	b.WriteByte(')')
	return b.String()
}

// --- Structural equality ---------------------------------------------------

// Equal compares two expressions structurally: same kind and recursively
// equal fields. Argument names are compared exactly and order-sensitive.
// Equality is insensitive to the construction path of either tree.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Const:
		return x.Value == b.(*Const).Value
	case *Symbol:
		return x.Name == b.(*Symbol).Name
	case *Call:
		y := b.(*Call)
		if !Equal(x.Head, y.Head) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if x.Args[i].Name != y.Args[i].Name || !Equal(x.Args[i].Value, y.Args[i].Value) {
				return false
			}
		}
		return true
	case *ParamList:
		y := b.(*ParamList)
		if len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i].Name != y.Params[i].Name {
				return false
			}
			if !Equal(x.Params[i].Default, y.Params[i].Default) {
				return false
			}
		}
		return true
	}
	return false
}

// Copy returns a deep copy of an expression: structurally equal to the
// original, but without any shared subtree. Unknown node kinds are copied
// by reference, which callers will catch when folding (ErrUnsupportedNodeKind).
func Copy(e Expr) Expr {
	switch x := e.(type) {
	case nil:
		return nil
	case *Const:
		return &Const{Value: x.Value}
	case *Symbol:
		return &Symbol{Name: x.Name}
	case *Call:
		args := make([]Arg, len(x.Args))
		for i, a := range x.Args {
			args[i] = Arg{Name: a.Name, Value: Copy(a.Value)}
		}
		return &Call{Head: Copy(x.Head), Args: args}
	case *ParamList:
		params := make([]Param, len(x.Params))
		for i, p := range x.Params {
			params[i] = Param{Name: p.Name, Default: Copy(p.Default)}
		}
		return &ParamList{Params: params}
	}
	return e
}

// --- Fingerprints ----------------------------------------------------------

// fpnode is the exported shadow shape we feed to structhash.
type fpnode struct {
	Kind     string
	Name     string // argument or parameter name, if the node fills a named slot
	Value    interface{}
	Children []fpnode
}

func fingerprintNode(e Expr) fpnode {
	switch x := e.(type) {
	case nil:
		return fpnode{Kind: "nil"}
	case *Const:
		return fpnode{Kind: "const", Value: x.Value}
	case *Symbol:
		return fpnode{Kind: "symbol", Value: x.Name}
	case *Call:
		children := make([]fpnode, 0, len(x.Args)+1)
		children = append(children, fingerprintNode(x.Head))
		for _, a := range x.Args {
			n := fingerprintNode(a.Value)
			n.Name = a.Name
			children = append(children, n)
		}
		return fpnode{Kind: "call", Children: children}
	case *ParamList:
		children := make([]fpnode, 0, len(x.Params))
		for _, p := range x.Params {
			n := fingerprintNode(p.Default)
			n.Name = p.Name
			children = append(children, n)
		}
		return fpnode{Kind: "params", Children: children}
	}
	return fpnode{Kind: "foreign", Value: fmt.Sprintf("%T", e)}
}

// Fingerprint returns a structural hash of an expression. Structurally equal
// expressions share a fingerprint; it is suitable as a memoization key, not
// as a replacement for Equal.
func Fingerprint(e Expr) string {
	h, err := structhash.Hash(fingerprintNode(e), 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint expression: %v", err)
		return ""
	}
	return h
}
