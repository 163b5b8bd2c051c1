package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/quex"
	"github.com/npillmayer/quex/analysis"
	"github.com/npillmayer/quex/binding"
	"github.com/npillmayer/quex/quasi"
	"github.com/npillmayer/quex/quexlang"
	"github.com/npillmayer/quex/stdcall"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'quex.repl'.
func tracer() tracing.Trace {
	return tracing.Select("quex.repl")
}

// main() starts an interactive CLI ("Q.REPL") where users may enter
// expressions in prefix-call syntax. Entered expressions are parsed, deparsed
// back and displayed as a tree. A handful of commands apply the expression
// operations to the input: call standardization, quasiquote expansion,
// free-variable and assignment analysis.
//
// Q.REPL is intended as a sandbox for experiments with expression trees
// during metaprogramming-tool development.
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to QREPL") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.New("qrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl: repl,
		env:  binding.NewScope("qrepl", nil),
		sigs: stdcall.TableResolver{},
	}
	//
	// load an init file and start receiving commands / expressions
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lastInput string
	repl      *readline.Instance
	env       *binding.Scope        // bindings for quasiquote expansion
	sigs      stdcall.TableResolver // signatures for call standardization
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: "+err.Error(), lineno)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	intp.env.Def("a", quex.Num(7)) // pre-set for debugging purposes
	intp.env.DefSeq("xs", quex.Num(1), quex.Num(2))
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval interprets a command line. The first word may be a command; anything
// else is parsed as an expression and displayed.
//
// Commands:
//
//	sig f function(x, y = 1, ...) NULL   register a signature for f
//	std f(y = 2, 1, 3)                   standardize against registered signatures
//	let n expr                           bind n for quasiquote expansion
//	seq n f(e1, e2, …)                   bind n to the argument sequence
//	quasi template                       expand unquote/splice markers
//	free expr                            free variables
//	targets expr                         assignment targets
//	calls f expr                         call sites of f
//	quit
//
func (intp *Intp) Eval(line string) (bool, error) {
	intp.lastInput = line
	cmd, rest := splitCommand(line)
	switch cmd {
	case "quit":
		return true, nil
	case "sig":
		return false, intp.defineSignature(rest)
	case "std":
		return false, intp.standardize(rest)
	case "let":
		return false, intp.define(rest, false)
	case "seq":
		return false, intp.define(rest, true)
	case "quasi":
		return false, intp.expand(rest)
	case "free":
		return false, intp.analyze(rest, analysis.FreeVars, "free")
	case "targets":
		return false, intp.analyze(rest, analysis.AssignTargets, "targets")
	case "calls":
		return false, intp.callSites(rest)
	}
	e, err := quexlang.Parse(line)
	if err != nil {
		return false, err
	}
	return false, intp.display(e)
}

func splitCommand(line string) (cmd string, rest string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 2 {
		return parts[0], strings.TrimSpace(parts[1])
	}
	return parts[0], ""
}

// display prints the deparsed form of an expression and renders its tree.
func (intp *Intp) display(e quex.Expr) error {
	src, err := quexlang.Deparse(e)
	if err != nil {
		return err
	}
	pterm.Info.Println(src)
	ll := leveledExpr(e, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
	return nil
}

// leveledExpr flattens an expression tree into a leveled list for pterm's
// tree renderer.
func leveledExpr(e quex.Expr, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch x := e.(type) {
	case *quex.Call:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "call"})
		ll = leveledExpr(x.Head, ll, level+1)
		for _, a := range x.Args {
			if a.IsNamed() {
				ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: a.Name + " ="})
				ll = leveledExpr(a.Value, ll, level+2)
			} else {
				ll = leveledExpr(a.Value, ll, level+1)
			}
		}
	case *quex.ParamList:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "params"})
		for _, p := range x.Params {
			ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: p.Name})
			if p.Default != nil {
				ll = leveledExpr(p.Default, ll, level+2)
			}
		}
	default:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: e.String()})
	}
	return ll
}

// defineSignature registers the parameter list of a function definition as
// the signature for a name: `sig f function(x, y = 1, ...) NULL`.
func (intp *Intp) defineSignature(rest string) error {
	name, src := splitCommand(rest)
	if name == "" || src == "" {
		return fmt.Errorf("usage: sig <name> <function definition>")
	}
	e, err := quexlang.Parse(src)
	if err != nil {
		return err
	}
	fn, ok := e.(*quex.Call)
	if !ok || len(fn.Args) != 2 {
		return fmt.Errorf("expected a function definition, got %v", e)
	}
	params, ok := fn.Args[0].Value.(*quex.ParamList)
	if !ok {
		return fmt.Errorf("expected a function definition, got %v", e)
	}
	intp.sigs[name] = params
	pterm.Info.Println("signature of " + name + " registered")
	return nil
}

func (intp *Intp) standardize(rest string) error {
	e, err := quexlang.Parse(rest)
	if err != nil {
		return err
	}
	call, ok := e.(*quex.Call)
	if !ok {
		return fmt.Errorf("expected a call, got %v", e)
	}
	std, err := stdcall.StandardizeWith(call, intp.sigs)
	if err != nil {
		return err
	}
	return intp.display(std)
}

func (intp *Intp) define(rest string, asSeq bool) error {
	name, src := splitCommand(rest)
	if name == "" || src == "" {
		return fmt.Errorf("usage: let|seq <name> <expression>")
	}
	e, err := quexlang.Parse(src)
	if err != nil {
		return err
	}
	if !asSeq {
		intp.env.Def(name, e)
		pterm.Info.Println(name + " bound")
		return nil
	}
	call, ok := e.(*quex.Call)
	if !ok {
		return fmt.Errorf("expected a call whose arguments become the sequence")
	}
	exprs := make([]quex.Expr, len(call.Args))
	for i, a := range call.Args {
		exprs[i] = a.Value
	}
	intp.env.DefSeq(name, exprs...)
	pterm.Info.Println(fmt.Sprintf("%s bound to a sequence of %d", name, len(exprs)))
	return nil
}

func (intp *Intp) expand(rest string) error {
	template, err := quexlang.Parse(rest)
	if err != nil {
		return err
	}
	expanded, err := quasi.Expand(template, intp.env)
	if err != nil {
		return err
	}
	return intp.display(expanded)
}

func (intp *Intp) analyze(rest string, pass func(quex.Expr) ([]string, error), label string) error {
	e, err := quexlang.Parse(rest)
	if err != nil {
		return err
	}
	names, err := pass(e)
	if err != nil {
		return err
	}
	pterm.Info.Println(label + ": " + strings.Join(names, ", "))
	return nil
}

func (intp *Intp) callSites(rest string) error {
	name, src := splitCommand(rest)
	if name == "" || src == "" {
		return fmt.Errorf("usage: calls <name> <expression>")
	}
	e, err := quexlang.Parse(src)
	if err != nil {
		return err
	}
	sites, err := analysis.CallSites(e, name)
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%d call site(s) of %s", len(sites), name))
	for _, c := range sites {
		src, err := quexlang.Deparse(c)
		if err != nil {
			return err
		}
		pterm.Info.Println(src)
	}
	return nil
}
