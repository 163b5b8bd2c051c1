package stdcall

import (
	"errors"
	"testing"

	"github.com/npillmayer/quex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestStandardizeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"), quex.P("y"), quex.P(quex.VariadicName))
	call := quex.NewCall(quex.Sym("f"),
		quex.NamedArg("y", quex.Num(2)), quex.PosArg(quex.Num(1)), quex.PosArg(quex.Num(3)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	expected := quex.NewCall(quex.Sym("f"),
		quex.NamedArg("x", quex.Num(1)), quex.NamedArg("y", quex.Num(2)), quex.PosArg(quex.Num(3)))
	if !quex.Equal(std, expected) {
		t.Errorf("expected %v, got %v", expected, std)
	}
}

func TestStandardizeIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"), quex.P("y"), quex.P(quex.VariadicName))
	call := quex.NewCall(quex.Sym("f"),
		quex.NamedArg("x", quex.Num(1)), quex.NamedArg("y", quex.Num(2)), quex.PosArg(quex.Num(3)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	if !quex.Equal(std, call) {
		t.Errorf("standardizing a standardized call changed it: %v vs %v", std, call)
	}
}

func TestPrefixMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("recursive"), quex.P(quex.VariadicName))
	call := quex.NewCall(quex.Sym("f"), quex.NamedArg("rec", quex.Bool(true)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	if len(std.Args) != 1 || std.Args[0].Name != "recursive" {
		t.Errorf("expected 'rec' resolved to 'recursive', got %v", std)
	}
	// a second formal sharing the prefix makes the same call ambiguous
	sig = quex.NewParamList(quex.P("recursive"), quex.P("recode"), quex.P(quex.VariadicName))
	if _, err = Standardize(call, sig); !errors.Is(err, quex.ErrAmbiguousArgumentName) {
		t.Errorf("expected ErrAmbiguousArgumentName, got %v", err)
	}
}

func TestExactMatchBeatsPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("rec"), quex.P("recursive"))
	call := quex.NewCall(quex.Sym("f"), quex.NamedArg("rec", quex.Num(1)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	if len(std.Args) != 1 || std.Args[0].Name != "rec" {
		t.Errorf("exact match should win over prefix match, got %v", std)
	}
}

func TestEmptySlotCountsAsSupplied(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"), quex.P("y"), quex.P("z"))
	call := quex.NewCall(quex.Sym("f"),
		quex.PosArg(quex.Num(1)), quex.PosArg(quex.EmptySym()), quex.PosArg(quex.Num(3)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	if len(std.Args) != 3 || std.Args[1].Name != "y" {
		t.Fatalf("empty slot should fill 'y', got %v", std)
	}
	if sym, ok := std.Args[1].Value.(*quex.Symbol); !ok || !sym.IsEmpty() {
		t.Errorf("the value of 'y' should stay the missing-argument sentinel")
	}
}

func TestTooManyArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"))
	call := quex.NewCall(quex.Sym("f"), quex.PosArg(quex.Num(1)), quex.PosArg(quex.Num(2)))
	if _, err := Standardize(call, sig); !errors.Is(err, quex.ErrTooManyArguments) {
		t.Errorf("expected ErrTooManyArguments, got %v", err)
	}
	call = quex.NewCall(quex.Sym("f"), quex.NamedArg("q", quex.Num(1)))
	if _, err := Standardize(call, sig); !errors.Is(err, quex.ErrTooManyArguments) {
		t.Errorf("expected ErrTooManyArguments for unused name, got %v", err)
	}
}

func TestFormalMatchedTwice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"))
	call := quex.NewCall(quex.Sym("f"),
		quex.NamedArg("x", quex.Num(1)), quex.NamedArg("x", quex.Num(2)))
	if _, err := Standardize(call, sig); !errors.Is(err, quex.ErrTooManyArguments) {
		t.Errorf("expected error for doubly supplied formal, got %v", err)
	}
}

func TestDefaultsAreNotMaterialized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"), quex.PD("y", quex.Num(2)))
	call := quex.NewCall(quex.Sym("f"), quex.PosArg(quex.Num(1)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	if len(std.Args) != 1 || std.Args[0].Name != "x" {
		t.Errorf("defaulted 'y' should be omitted, got %v", std)
	}
}

func TestMissingRequiredArgument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"), quex.P("y"))
	call := quex.NewCall(quex.Sym("f"), quex.PosArg(quex.Num(1)))
	if std, err := Standardize(call, sig); err != nil || len(std.Args) != 1 {
		t.Errorf("non-validating mode should leave 'y' absent, got %v / %v", std, err)
	}
	if _, err := StandardizeStrict(call, sig); !errors.Is(err, quex.ErrMissingRequiredArgument) {
		t.Errorf("expected ErrMissingRequiredArgument, got %v", err)
	}
}

func TestNamedArgFallsIntoVariadic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	sig := quex.NewParamList(quex.P("x"), quex.P(quex.VariadicName))
	call := quex.NewCall(quex.Sym("f"),
		quex.NamedArg("quiet", quex.Bool(true)), quex.PosArg(quex.Num(1)), quex.PosArg(quex.Num(7)))
	std, err := Standardize(call, sig)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	expected := quex.NewCall(quex.Sym("f"),
		quex.NamedArg("x", quex.Num(1)),
		quex.NamedArg("quiet", quex.Bool(true)), quex.PosArg(quex.Num(7)))
	if !quex.Equal(std, expected) {
		t.Errorf("expected %v, got %v", expected, std)
	}
}

func TestTableResolver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "quex.stdcall")
	defer teardown()
	//
	r := TableResolver{
		"paste": quex.NewParamList(quex.P(quex.VariadicName), quex.PD("sep", quex.Str(" "))),
	}
	call := quex.NewCall(quex.Sym("paste"), quex.PosArg(quex.Str("a")), quex.NamedArg("sep", quex.Str("")))
	std, err := StandardizeWith(call, r)
	if err != nil {
		t.Fatalf("standardize failed: %v", err)
	}
	if len(std.Args) != 2 || std.Args[1].Name != "sep" {
		t.Errorf("unexpected standardized call %v", std)
	}
	unknown := quex.NewCall(quex.Sym("nope"))
	if _, err := StandardizeWith(unknown, r); !errors.Is(err, quex.ErrSignatureUnavailable) {
		t.Errorf("expected ErrSignatureUnavailable, got %v", err)
	}
}
