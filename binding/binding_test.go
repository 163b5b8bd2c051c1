package binding

import (
	"errors"
	"testing"

	"github.com/npillmayer/quex"
)

func TestNewSymbolTable(t *testing.T) {
	symtab := NewSymbolTable()
	if symtab == nil {
		t.Error("no symbol table created")
	}
}

func TestDefineAndResolve(t *testing.T) {
	symtab := NewSymbolTable()
	b, _ := symtab.Define("x")
	if b == nil {
		t.Fatal("no binding created")
	}
	b.WithValue(quex.Num(7))
	if r := symtab.Resolve("x"); r == nil || !quex.Equal(r.Value, quex.Num(7)) {
		t.Error("cannot find stored binding in table")
	}
}

func TestDefineOverwrites(t *testing.T) {
	symtab := NewSymbolTable()
	b, _ := symtab.Define("x")
	if _, old := symtab.Define("x"); old != b {
		t.Error("binding should have been replaced")
	}
}

func TestResolveOrDefine(t *testing.T) {
	symtab := NewSymbolTable()
	symtab.Define("x")
	if _, found := symtab.ResolveOrDefine("x"); !found {
		t.Error("cannot find stored binding in table")
	}
	if _, found := symtab.ResolveOrDefine("y"); found {
		t.Error("'y' should have been freshly created")
	}
	if symtab.Size() != 2 {
		t.Errorf("expected 2 bindings in table, got %d", symtab.Size())
	}
}

func TestEmptyNameRejected(t *testing.T) {
	symtab := NewSymbolTable()
	if b, _ := symtab.Define(""); b != nil {
		t.Error("the empty name must not be definable")
	}
}

func TestSeqBinding(t *testing.T) {
	sc := NewScope("test", nil)
	sc.DefSeq("args", quex.Num(1), quex.Num(2))
	b, _ := sc.Resolve("args")
	if b == nil || !b.IsSeq() || len(b.Seq) != 2 {
		t.Errorf("expected a 2-element sequence binding, got %v", b)
	}
	sc.DefSeq("none")
	if b, _ := sc.Resolve("none"); b == nil || !b.IsSeq() || len(b.Seq) != 0 {
		t.Error("an empty sequence binding is still a sequence binding")
	}
}

func TestScopeUpsearch(t *testing.T) {
	parent := NewScope("parent", nil)
	parent.Def("x", quex.Num(1))
	child := NewScope("child", parent)
	b, found := child.Resolve("x")
	if b == nil || found != parent {
		t.Error("binding should be found in the parent scope")
	}
}

func TestResolveSymbol(t *testing.T) {
	sc := NewScope("test", nil)
	sc.Def("x", quex.Num(1))
	if _, err := sc.ResolveSymbol(quex.Sym("x")); err != nil {
		t.Errorf("resolving a bound symbol failed: %v", err)
	}
	if _, err := sc.ResolveSymbol(quex.Sym("y")); !errors.Is(err, ErrUnbound) {
		t.Errorf("expected ErrUnbound, got %v", err)
	}
	if _, err := sc.ResolveSymbol(quex.EmptySym()); !errors.Is(err, ErrEmptySymbol) {
		t.Errorf("expected ErrEmptySymbol, got %v", err)
	}
}

func TestScopeStack(t *testing.T) {
	var st ScopeStack
	global := st.PushNewScope("globals")
	if st.Globals() != global || st.Current() != global {
		t.Error("first pushed scope should be base and TOS")
	}
	inner := st.PushNewScope("inner")
	if st.Current() != inner || inner.Parent != global {
		t.Error("pushed scope should link back to its parent")
	}
	st.PopScope()
	if st.Current() != global {
		t.Error("pop should restore the parent scope")
	}
}
