package quex

import (
	"testing"
)

func TestEqualInsensitiveToConstructionPath(t *testing.T) {
	a := NewCall(Sym("f"), PosArg(Num(1)), NamedArg("y", Num(2)))
	b := NewCall(Sym("f"), NamedArg("y", Num(0)))
	b.Args = append([]Arg{PosArg(Num(1))}, b.Args...)
	b = b.WithArg(1, NamedArg("y", Num(2)))
	if !Equal(a, b) {
		t.Errorf("expected %v and %v to be equal", a, b)
	}
}

func TestEqualIsOrderSensitive(t *testing.T) {
	a := NewCall(Sym("f"), NamedArg("x", Num(1)), NamedArg("y", Num(2)))
	b := NewCall(Sym("f"), NamedArg("y", Num(2)), NamedArg("x", Num(1)))
	if Equal(a, b) {
		t.Errorf("argument order should matter for equality")
	}
}

func TestEqualKindMismatch(t *testing.T) {
	if Equal(Sym("x"), Str("x")) {
		t.Errorf("symbol and string constant should not be equal")
	}
}

func TestEmptySymbol(t *testing.T) {
	e := EmptySym()
	if !e.IsEmpty() {
		t.Error("empty symbol should report IsEmpty")
	}
	if !Equal(e, Sym("")) {
		t.Error("Sym(\"\") should be the empty symbol")
	}
	if Equal(e, Sym("x")) {
		t.Error("empty symbol should not equal a named symbol")
	}
}

func TestParamListVariadic(t *testing.T) {
	sig := NewParamList(P("x"), PD("y", Num(1)), P(VariadicName))
	if sig.Variadic() != 2 {
		t.Errorf("variadic slot expected at 2, got %d", sig.Variadic())
	}
	if NewParamList(P("x")).Variadic() != -1 {
		t.Error("signature without '...' should report -1")
	}
}

func TestCopyIsDeep(t *testing.T) {
	orig := NewCall(Sym("f"), PosArg(NewCall(Sym("g"), PosArg(Num(1)))))
	dup := Copy(orig).(*Call)
	if !Equal(orig, dup) {
		t.Fatalf("copy %v should equal original %v", dup, orig)
	}
	if dup == orig || dup.Args[0].Value == orig.Args[0].Value {
		t.Error("copy should not share nodes with the original")
	}
}

func TestWithArgLeavesReceiverUntouched(t *testing.T) {
	orig := NewCall(Sym("f"), PosArg(Num(1)), PosArg(Num(2)))
	repl := orig.WithArg(1, NamedArg("y", Num(9)))
	if Equal(orig, repl) {
		t.Error("replacement should differ from the original")
	}
	if orig.Args[1].Name != "" || !Equal(orig.Args[1].Value, Num(2)) {
		t.Errorf("original call was mutated: %v", orig)
	}
	if repl.Args[1].Name != "y" || !Equal(repl.Args[1].Value, Num(9)) {
		t.Errorf("replacement slot not set: %v", repl)
	}
}

func TestFingerprint(t *testing.T) {
	a := NewCall(Sym("f"), NamedArg("x", Num(1)))
	b := NewCall(Sym("f"), NamedArg("x", Num(1)))
	c := NewCall(Sym("f"), PosArg(Num(1)))
	if Fingerprint(a) == "" {
		t.Fatal("fingerprint should not be empty")
	}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("structurally equal expressions should share a fingerprint")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("named and positional argument should fingerprint differently")
	}
}
