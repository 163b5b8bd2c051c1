/*
Package analysis implements read-only passes over expression trees.

All passes are stateless functions of an expression: free-variable
detection, assignment-target discovery, and call-site extraction. The passes
recognize a small set of structural operators — assignment, function
definition, block grouping — which is configurable, so hosts with different
spellings can reuse them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package analysis

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/quex"
	"github.com/npillmayer/quex/binding"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quex.analysis'.
func tracer() tracing.Trace {
	return tracing.Select("quex.analysis")
}

// Config names the structural operators the passes recognize. Heads listed
// here are treated as syntax, not as variable references.
type Config struct {
	AssignOps []string // binary assignment forms, target left
	FuncOp    string   // function-definition form: FuncOp(params, body…)
	BlockOps  []string // grouping forms, arguments are statements
}

// DefaultConfig recognizes the source syntax the test parser produces:
// "<-" and "=" assignments, "function" definitions, "{" blocks.
func DefaultConfig() Config {
	return Config{
		AssignOps: []string{"<-", "="},
		FuncOp:    "function",
		BlockOps:  []string{"{"},
	}
}

func (cfg Config) isAssignOp(name string) bool {
	for _, op := range cfg.AssignOps {
		if op == name {
			return true
		}
	}
	return false
}

func (cfg Config) isBlockOp(name string) bool {
	for _, op := range cfg.BlockOps {
		if op == name {
			return true
		}
	}
	return false
}

// assignment decomposes a recognized assignment call into target and value.
func (cfg Config) assignment(c *quex.Call) (target, value quex.Expr, ok bool) {
	head, isSym := c.Head.(*quex.Symbol)
	if !isSym || !cfg.isAssignOp(head.Name) || len(c.Args) != 2 {
		return nil, nil, false
	}
	return c.Args[0].Value, c.Args[1].Value, true
}

// --- Free variables --------------------------------------------------------

// FreeVars returns the sorted set of symbol names referenced in an
// expression which no enclosing parameter list or assignment binds. A name
// bound by an assignment is visible to subsequent siblings and their
// descendants, not retroactively to earlier ones; function parameters are
// visible inside the function only.
func FreeVars(e quex.Expr) ([]string, error) {
	return FreeVarsWith(DefaultConfig(), e)
}

// FreeVarsWith is FreeVars with a custom set of structural operators.
func FreeVarsWith(cfg Config, e quex.Expr) ([]string, error) {
	p := &freeVarsPass{cfg: cfg, free: treeset.NewWithStringComparator()}
	p.scopes.PushNewScope("globals")
	if err := p.visit(e); err != nil {
		return nil, err
	}
	names := make([]string, 0, p.free.Size())
	for _, v := range p.free.Values() {
		names = append(names, v.(string))
	}
	tracer().Debugf("free variables: %v", names)
	return names, nil
}

type freeVarsPass struct {
	cfg    Config
	scopes binding.ScopeStack
	free   *treeset.Set
}

func (p *freeVarsPass) bound(name string) bool {
	b, _ := p.scopes.Current().Resolve(name)
	return b != nil
}

func (p *freeVarsPass) reference(s *quex.Symbol) {
	if s.IsEmpty() || p.bound(s.Name) {
		return
	}
	p.free.Add(s.Name)
}

func (p *freeVarsPass) visit(e quex.Expr) error {
	switch x := e.(type) {
	case *quex.Const:
		return nil
	case *quex.Symbol:
		p.reference(x)
		return nil
	case *quex.ParamList:
		// the parameter names bind for the defaults too: a default may
		// reference a sibling parameter as well as the surrounding scope
		for _, par := range x.Params {
			if par.Name != quex.VariadicName {
				p.scopes.Current().Def(par.Name, nil)
			}
		}
		for _, par := range x.Params {
			if par.Default != nil {
				if err := p.visit(par.Default); err != nil {
					return err
				}
			}
		}
		return nil
	case *quex.Call:
		return p.visitCall(x)
	}
	return fmt.Errorf("%w: %T", quex.ErrUnsupportedNodeKind, e)
}

func (p *freeVarsPass) visitCall(c *quex.Call) error {
	if target, value, ok := p.cfg.assignment(c); ok {
		if sym, isSym := target.(*quex.Symbol); isSym && !sym.IsEmpty() {
			// target becomes bound after the value has been computed
			if err := p.visit(value); err != nil {
				return err
			}
			p.scopes.Current().Def(sym.Name, nil)
			return nil
		}
		// sub-assignment: the target is an expression, its symbols are uses
		if err := p.visit(target); err != nil {
			return err
		}
		return p.visit(value)
	}
	if head, isSym := c.Head.(*quex.Symbol); isSym {
		if head.Name == p.cfg.FuncOp {
			p.scopes.PushNewScope(p.cfg.FuncOp)
			defer p.scopes.PopScope()
			return p.visitArgs(c)
		}
		if p.cfg.isBlockOp(head.Name) {
			return p.visitArgs(c) // grouping head is syntax, not a reference
		}
		p.reference(head)
		return p.visitArgs(c)
	}
	if err := p.visit(c.Head); err != nil {
		return err
	}
	return p.visitArgs(c)
}

func (p *freeVarsPass) visitArgs(c *quex.Call) error {
	for _, a := range c.Args {
		if err := p.visit(a.Value); err != nil {
			return err
		}
	}
	return nil
}

// --- Assignment targets ----------------------------------------------------

// AssignTargets returns the names which are the direct target of a
// recognized assignment form anywhere in the tree, in first-occurrence
// order, duplicates eliminated. Only bare-symbol targets count; an
// assignment whose left side is itself a call (a property-set form) is
// excluded, though its operands are still searched for nested assignments.
func AssignTargets(e quex.Expr) ([]string, error) {
	return AssignTargetsWith(DefaultConfig(), e)
}

// AssignTargetsWith is AssignTargets with a custom set of structural
// operators.
func AssignTargetsWith(cfg Config, e quex.Expr) ([]string, error) {
	p := &assignPass{cfg: cfg, seen: make(map[string]bool)}
	if err := p.visit(e); err != nil {
		return nil, err
	}
	return p.targets, nil
}

type assignPass struct {
	cfg     Config
	seen    map[string]bool
	targets []string
}

func (p *assignPass) record(name string) {
	if p.seen[name] {
		return
	}
	p.seen[name] = true
	p.targets = append(p.targets, name)
}

func (p *assignPass) visit(e quex.Expr) error {
	switch x := e.(type) {
	case *quex.Const, *quex.Symbol:
		return nil
	case *quex.ParamList:
		for _, par := range x.Params {
			if par.Default != nil {
				if err := p.visit(par.Default); err != nil {
					return err
				}
			}
		}
		return nil
	case *quex.Call:
		if target, value, ok := p.cfg.assignment(x); ok {
			if sym, isSym := target.(*quex.Symbol); isSym && !sym.IsEmpty() {
				p.record(sym.Name)
			} else if err := p.visit(target); err != nil { // excluded, still searched
				return err
			}
			return p.visit(value)
		}
		if err := p.visit(x.Head); err != nil {
			return err
		}
		for _, a := range x.Args {
			if err := p.visit(a.Value); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %T", quex.ErrUnsupportedNodeKind, e)
}

// --- Call sites ------------------------------------------------------------

// CallSites returns every call node in the tree whose head is the symbol
// name, including occurrences nested inside arguments. Results appear in
// fold order, i.e. inner calls before the calls enclosing them.
func CallSites(e quex.Expr, name string) ([]*quex.Call, error) {
	sites := arraylist.New()
	v := quex.FoldVisitor{
		Call: func(c *quex.Call, head interface{}, args []interface{}) (interface{}, error) {
			if sym, ok := c.Head.(*quex.Symbol); ok && sym.Name == name {
				sites.Add(c)
			}
			return nil, nil
		},
	}
	if _, err := quex.Fold(e, v); err != nil {
		return nil, err
	}
	calls := make([]*quex.Call, 0, sites.Size())
	sites.Each(func(_ int, v interface{}) {
		calls = append(calls, v.(*quex.Call))
	})
	return calls, nil
}
