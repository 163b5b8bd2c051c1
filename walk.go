package quex

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// kindCount guards the walker's exhaustiveness: the switches below cover
// exactly the four kinds. Declaring a kind anywhere above the sentinel moves
// kindSentinel and breaks this.
const kindCount = 5

var _ = [1]int{}[int(kindSentinel)-kindCount]

// FoldVisitor supplies one callback per node kind for Fold. The two atomic
// kinds receive just the node; the two recursive kinds additionally receive
// the already-computed results for their children. A nil callback yields a
// nil result for nodes of that kind.
type FoldVisitor struct {
	Const  func(c *Const) (interface{}, error)
	Symbol func(s *Symbol) (interface{}, error)
	// Call receives the fold results for the head and for every argument
	// value, in call order (head first, then arguments left to right).
	Call func(c *Call, head interface{}, args []interface{}) (interface{}, error)
	// ParamList receives the fold results for the parameter defaults, in
	// declared order; entries without default are nil.
	ParamList func(p *ParamList, defaults []interface{}) (interface{}, error)
}

// WalkOption configures a traversal.
type WalkOption func(*walker)

// WithDepthLimit bounds the nesting depth a traversal will descend into.
// Exceeding the bound fails the traversal with ErrDepthLimitExceeded rather
// than overflowing the call stack. max ≤ 0 means unlimited (the default).
func WithDepthLimit(max int) WalkOption {
	return func(w *walker) {
		w.depthLimit = max
	}
}

type walker struct {
	depthLimit int
}

// Fold is a structural fold over an expression tree. Children are visited
// before their parent receives the results: for a Call the head first, then
// the arguments in order; for a ParameterList the defaults in declared
// order. A node outside the four-variant set fails the whole traversal with
// ErrUnsupportedNodeKind; the walker never silently skips a node.
func Fold(e Expr, v FoldVisitor, opts ...WalkOption) (interface{}, error) {
	w := walker{}
	for _, opt := range opts {
		opt(&w)
	}
	return w.fold(e, v, 0)
}

func (w walker) fold(e Expr, v FoldVisitor, depth int) (interface{}, error) {
	if w.depthLimit > 0 && depth > w.depthLimit {
		return nil, fmt.Errorf("%w (limit %d)", ErrDepthLimitExceeded, w.depthLimit)
	}
	switch x := e.(type) {
	case *Const:
		if v.Const == nil {
			return nil, nil
		}
		return v.Const(x)
	case *Symbol:
		if v.Symbol == nil {
			return nil, nil
		}
		return v.Symbol(x)
	case *Call:
		head, err := w.fold(x.Head, v, depth+1)
		if err != nil {
			return nil, err
		}
		args := make([]interface{}, len(x.Args))
		for i, a := range x.Args {
			if args[i], err = w.fold(a.Value, v, depth+1); err != nil {
				return nil, err
			}
		}
		if v.Call == nil {
			return nil, nil
		}
		return v.Call(x, head, args)
	case *ParamList:
		defaults := make([]interface{}, len(x.Params))
		for i, p := range x.Params {
			if p.Default == nil {
				continue
			}
			var err error
			if defaults[i], err = w.fold(p.Default, v, depth+1); err != nil {
				return nil, err
			}
		}
		if v.ParamList == nil {
			return nil, nil
		}
		return v.ParamList(x, defaults)
	}
	tracer().Errorf("fold over foreign node of type %T", e)
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedNodeKind, e)
}

// Mapper supplies per-kind rewriting callbacks for Map. Nil callbacks copy
// the node unchanged. The callbacks for the recursive kinds receive the
// original node and the reassembled node with already-mapped children;
// argument names, parameter names and ordering are preserved exactly in the
// reassembled node.
type Mapper struct {
	Const     func(c *Const) (Expr, error)
	Symbol    func(s *Symbol) (Expr, error)
	Call      func(orig *Call, mapped *Call) (Expr, error)
	ParamList func(orig *ParamList, mapped *ParamList) (Expr, error)
}

// Map rebuilds an expression tree bottom-up, applying the mapper's callbacks
// to every node. Mapping with an all-nil Mapper is the identity up to node
// identity: the result is structurally equal to, but does not share nodes
// with, the input.
func Map(e Expr, m Mapper, opts ...WalkOption) (Expr, error) {
	v := FoldVisitor{
		Const: func(c *Const) (interface{}, error) {
			if m.Const == nil {
				return Copy(c), nil
			}
			return m.Const(c)
		},
		Symbol: func(s *Symbol) (interface{}, error) {
			if m.Symbol == nil {
				return Copy(s), nil
			}
			return m.Symbol(s)
		},
		Call: func(c *Call, head interface{}, args []interface{}) (interface{}, error) {
			mapped := &Call{Head: head.(Expr), Args: make([]Arg, len(c.Args))}
			for i, a := range c.Args {
				mapped.Args[i] = Arg{Name: a.Name, Value: args[i].(Expr)}
			}
			if m.Call == nil {
				return mapped, nil
			}
			return m.Call(c, mapped)
		},
		ParamList: func(p *ParamList, defaults []interface{}) (interface{}, error) {
			mapped := &ParamList{Params: make([]Param, len(p.Params))}
			for i, par := range p.Params {
				mapped.Params[i] = Param{Name: par.Name}
				if defaults[i] != nil {
					mapped.Params[i].Default = defaults[i].(Expr)
				}
			}
			if m.ParamList == nil {
				return mapped, nil
			}
			return m.ParamList(p, mapped)
		},
	}
	r, err := Fold(e, v, opts...)
	if err != nil {
		return nil, err
	}
	return r.(Expr), nil
}

// --- Node sequences --------------------------------------------------------

// Node pairs an expression with its parent slot during a traversal.
type Node struct {
	Expr   Expr
	Parent Expr // nil for the root
}

// Nodes produces all nodes of an expression tree in pre-order (parent first,
// then for a Call the head followed by the arguments). The traversal uses an
// explicit work-stack, so arbitrarily deep trees will not overflow the call
// stack.
//
// Warning: the producing goroutine will leak if the client does not drain
// the channel.
func Nodes(e Expr) <-chan Node {
	if e == nil {
		return nil
	}
	channel := make(chan Node)
	go func(root Expr) {
		defer close(channel)
		stack := make([]Node, 0, 32)
		stack = append(stack, Node{Expr: root})
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			channel <- n
			// push children in reverse, so they pop in visiting order
			switch x := n.Expr.(type) {
			case *Call:
				for i := len(x.Args) - 1; i >= 0; i-- {
					if x.Args[i].Value != nil {
						stack = append(stack, Node{Expr: x.Args[i].Value, Parent: x})
					}
				}
				stack = append(stack, Node{Expr: x.Head, Parent: x})
			case *ParamList:
				for i := len(x.Params) - 1; i >= 0; i-- {
					if x.Params[i].Default != nil {
						stack = append(stack, Node{Expr: x.Params[i].Default, Parent: x})
					}
				}
			}
		}
	}(e)
	return channel
}
