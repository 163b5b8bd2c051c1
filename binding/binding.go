/*
Package binding implements scopes and symbol tables for expression trees.

Bindings associate names with (unevaluated) expressions. Scopes link back to
a parent scope, forming a tree; a ScopeStack treats such a tree as a stack
during static analysis. Package quasi uses a Scope as substitution
environment, package analysis uses a ScopeStack to track lexically bound
names.

A captured piece of code together with the scope it is to be re-evaluated in
is simply the pair (quex.Expr, *Scope); this package does not reach into any
ambient state.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package binding

import (
	"errors"
	"fmt"

	"github.com/npillmayer/quex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quex.binding'.
func tracer() tracing.Trace {
	return tracing.Select("quex.binding")
}

// ErrEmptySymbol signals an attempt to resolve the empty symbol, the
// sentinel for a deliberately omitted argument, to a value.
var ErrEmptySymbol = errors.New("the empty symbol does not resolve to a value")

// ErrUnbound signals a name which is bound in neither the queried scope nor
// any of its parents.
var ErrUnbound = errors.New("name is unbound")

// --- Bindings --------------------------------------------------------------

// Binding is the entry type stored in symbol tables. A binding holds either
// a single expression (Value) or a sequence of expressions (Seq); sequence
// bindings are what splice sites in package quasi substitute from.
type Binding struct {
	name  string
	Value quex.Expr
	Seq   []quex.Expr
}

// NewBinding creates a binding for a name, without a value yet.
func NewBinding(nm string) *Binding {
	return &Binding{name: nm}
}

// WithValue sets the expression a binding holds. Use as
//
//    b := NewBinding("x").WithValue(quex.Num(7))
//
func (b *Binding) WithValue(e quex.Expr) *Binding {
	b.Value = e
	b.Seq = nil
	return b
}

// WithSeq turns a binding into a sequence binding.
func (b *Binding) WithSeq(exprs ...quex.Expr) *Binding {
	b.Value = nil
	b.Seq = exprs
	if b.Seq == nil {
		b.Seq = []quex.Expr{} // a bound empty sequence is not an unbound one
	}
	return b
}

// Name gets the binding's name.
func (b *Binding) Name() string {
	return b.name
}

// IsSeq returns true for sequence bindings.
func (b *Binding) IsSeq() bool {
	return b.Seq != nil
}

// String is a debug Stringer for bindings.
func (b *Binding) String() string {
	if b.IsSeq() {
		return fmt.Sprintf("<binding '%s':seq[%d]>", b.name, len(b.Seq))
	}
	return fmt.Sprintf("<binding '%s':%v>", b.name, b.Value)
}

// === Symbol Tables =========================================================

// SymbolTable stores bindings with map-like semantics.
type SymbolTable struct {
	Table map[string]*Binding
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Table: make(map[string]*Binding)}
}

// Resolve checks for a binding in the symbol table. Returns a binding or nil.
func (t *SymbolTable) Resolve(name string) *Binding {
	return t.Table[name]
}

// ResolveOrDefine finds a binding in the table, inserting a new one if not
// found. Returns the binding and a flag signalling whether it had already
// been present.
func (t *SymbolTable) ResolveOrDefine(name string) (*Binding, bool) {
	if len(name) == 0 {
		return nil, false
	}
	if b := t.Resolve(name); b != nil {
		return b, true
	}
	b, _ := t.Define(name)
	return b, false
}

// Define creates a new binding to store into the symbol table. The name may
// not be empty. Overwrites an existing binding with this name, if any.
// Returns the new binding and the previously stored one (or nil).
func (t *SymbolTable) Define(name string) (*Binding, *Binding) {
	if len(name) == 0 {
		return nil, nil
	}
	b := NewBinding(name)
	old := t.Resolve(name)
	t.Table[name] = b
	return b, old
}

// Size counts the bindings in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each binding in the table, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Binding)) {
	for k, v := range t.Table {
		mapper(k, v)
	}
}

// === Scopes ================================================================

// Scope is a named scope which may contain bindings. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Bindings returns the symbol table of a scope.
func (s *Scope) Bindings() *SymbolTable {
	return s.symtab
}

// Def binds a name to an expression in this scope and returns the binding.
func (s *Scope) Def(name string, e quex.Expr) *Binding {
	b, _ := s.symtab.Define(name)
	if b == nil {
		return nil
	}
	return b.WithValue(e)
}

// DefSeq binds a name to a sequence of expressions in this scope.
func (s *Scope) DefSeq(name string, exprs ...quex.Expr) *Binding {
	b, _ := s.symtab.Define(name)
	if b == nil {
		return nil
	}
	return b.WithSeq(exprs...)
}

// Resolve finds a binding. Returns the binding (or nil) and a scope. The
// scope is the scope of the scope-tree path the binding was found in.
func (s *Scope) Resolve(name string) (*Binding, *Scope) {
	b := s.symtab.Resolve(name)
	if b != nil {
		return b, s
	}
	for s.Parent != nil {
		s = s.Parent
		if b = s.symtab.Resolve(name); b != nil {
			return b, s
		}
	}
	return nil, nil
}

// ResolveSymbol resolves a symbol node to the binding for its name,
// searching this scope and its parents. Resolving the empty symbol fails
// with ErrEmptySymbol, an unbound name with ErrUnbound.
func (s *Scope) ResolveSymbol(sym *quex.Symbol) (*Binding, error) {
	if sym == nil || sym.IsEmpty() {
		return nil, ErrEmptySymbol
	}
	b, _ := s.Resolve(sym.Name)
	if b == nil {
		tracer().Debugf("unable to resolve symbol '%s' in %s", sym.Name, s)
		return nil, fmt.Errorf("%w: '%s'", ErrUnbound, sym.Name)
	}
	return b, nil
}

// ---------------------------------------------------------------------------

// ScopeStack can be treated as a stack during static analysis, thus building
// a tree from scopes which are pushed and popped to/from the stack.
type ScopeStack struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (st *ScopeStack) Current() *Scope {
	if st.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return st.ScopeTOS
}

// Globals gets the outermost scope, containing global bindings.
func (st *ScopeStack) Globals() *Scope {
	if st.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return st.ScopeBase
}

// PushNewScope pushes a scope onto the stack of scopes.
func (st *ScopeStack) PushNewScope(nm string) *Scope {
	parent := st.ScopeTOS
	newsc := NewScope(nm, parent)
	if parent == nil { // the new scope is the global scope
		st.ScopeBase = newsc
	}
	st.ScopeTOS = newsc
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (st *ScopeStack) PopScope() *Scope {
	if st.ScopeTOS == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := st.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	st.ScopeTOS = sc.Parent
	return sc
}
