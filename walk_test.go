package quex

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// f(a, g(b), y = 2) plus a signature with a default, touching all four kinds
func testTree() Expr {
	return NewCall(Sym("f"),
		PosArg(Sym("a")),
		PosArg(NewCall(Sym("g"), PosArg(Sym("b")))),
		NamedArg("y", Num(2)),
		PosArg(NewParamList(P("p"), PD("q", Num(1)))),
	)
}

func TestFoldCountsNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	count := FoldVisitor{
		Const:  func(c *Const) (interface{}, error) { return 1, nil },
		Symbol: func(s *Symbol) (interface{}, error) { return 1, nil },
		Call: func(c *Call, head interface{}, args []interface{}) (interface{}, error) {
			n := 1 + head.(int)
			for _, a := range args {
				n += a.(int)
			}
			return n, nil
		},
		ParamList: func(p *ParamList, defaults []interface{}) (interface{}, error) {
			n := 1
			for _, d := range defaults {
				if d != nil {
					n += d.(int)
				}
			}
			return n, nil
		},
	}
	r, err := Fold(testTree(), count)
	if err != nil {
		t.Fatalf("fold failed: %v", err)
	}
	// f a g b 2 + 2 calls + paramlist + default 1
	if r.(int) != 9 {
		t.Errorf("expected 9 nodes, counted %v", r)
	}
}

func TestFoldVisitsHeadBeforeArgs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	var seen []string
	v := FoldVisitor{
		Symbol: func(s *Symbol) (interface{}, error) {
			seen = append(seen, s.Name)
			return nil, nil
		},
	}
	if _, err := Fold(testTree(), v); err != nil {
		t.Fatalf("fold failed: %v", err)
	}
	expected := []string{"f", "a", "g", "b"}
	if len(seen) != len(expected) {
		t.Fatalf("expected symbols %v, saw %v", expected, seen)
	}
	for i, name := range expected {
		if seen[i] != name {
			t.Errorf("visit order: expected %v, saw %v", expected, seen)
			break
		}
	}
}

func TestMapIdentityLaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	tree := testTree()
	mapped, err := Map(tree, Mapper{})
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	if !Equal(tree, mapped) {
		t.Errorf("identity map should preserve structure: %v vs %v", tree, mapped)
	}
	if mapped == tree {
		t.Error("identity map should produce a new tree")
	}
}

func TestMapRenamesSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	mapped, err := Map(testTree(), Mapper{
		Symbol: func(s *Symbol) (Expr, error) {
			if s.Name == "a" {
				return Sym("z"), nil
			}
			return Copy(s), nil
		},
	})
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	call := mapped.(*Call)
	if !Equal(call.Args[0].Value, Sym("z")) {
		t.Errorf("expected first argument renamed to z, got %v", call.Args[0].Value)
	}
	if call.Args[2].Name != "y" {
		t.Error("argument names should be preserved by map")
	}
}

// alien is a node outside the closed kind set.
type alien struct{}

func (a alien) Kind() Kind     { return Kind(9) }
func (a alien) String() string { return "alien" }

func TestFoldRejectsForeignNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	tree := NewCall(Sym("f"), PosArg(alien{}))
	_, err := Fold(tree, FoldVisitor{})
	if !errors.Is(err, ErrUnsupportedNodeKind) {
		t.Errorf("expected ErrUnsupportedNodeKind, got %v", err)
	}
}

func TestDepthLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	deep := Expr(Sym("x"))
	for i := 0; i < 100; i++ {
		deep = NewCall(Sym("f"), PosArg(deep))
	}
	if _, err := Fold(deep, FoldVisitor{}); err != nil {
		t.Errorf("unbounded fold should succeed, got %v", err)
	}
	_, err := Fold(deep, FoldVisitor{}, WithDepthLimit(10))
	if !errors.Is(err, ErrDepthLimitExceeded) {
		t.Errorf("expected ErrDepthLimitExceeded, got %v", err)
	}
}

func TestNodesSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.core")
	defer teardown()
	//
	tree := testTree()
	var count int
	var first Expr
	for n := range Nodes(tree) {
		if first == nil {
			first = n.Expr
		}
		count++
	}
	if first != tree {
		t.Error("sequence should start at the root")
	}
	if count != 9 {
		t.Errorf("expected 9 nodes in sequence, got %d", count)
	}
}
