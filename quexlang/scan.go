package quexlang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types for the prefix-call syntax. Single-character literals scan as
// their character value.
const (
	tokEOF = -1

	tokID       = 257 + iota // identifier
	tokNum                   // number literal
	tokString                // string literal
	tokArrow                 // <-
	tokEllipsis              // ...
	tokTrue                  // TRUE
	tokFalse                 // FALSE
	tokNull                  // NULL
	tokFunction              // function
)

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", "{", "}", ",", "=", ";"}

// The keyword tokens; keywords are case-sensitive
var keywords = map[string]int{
	"TRUE":     tokTrue,
	"FALSE":    tokFalse,
	"NULL":     tokNull,
	"function": tokFunction,
}

// token is a scanned input token: type, lexeme, input span.
type token struct {
	typ    int
	lexeme string
	span   [2]int // start position and position just behind the end
}

func tokenName(typ int) string {
	switch typ {
	case tokEOF:
		return "end of input"
	case tokID:
		return "identifier"
	case tokNum:
		return "number"
	case tokString:
		return "string"
	case tokArrow:
		return "'<-'"
	case tokEllipsis:
		return "'...'"
	case tokTrue, tokFalse, tokNull:
		return "constant"
	case tokFunction:
		return "'function'"
	}
	return "'" + string(rune(typ)) + "'"
}

var lexer *lexmachine.Lexer
var lexerErr error

var initOnce sync.Once // monitors one-time compilation of the lexer DFA

// initLexer compiles the lexmachine DFA for the prefix-call syntax. Pattern
// order matters: keywords and multi-character operators are added before the
// identifier rule, so same-length matches resolve to them.
func initLexer() {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`#[^\n]*\n?`), skip) // comments
		lexer.Add([]byte(`\"[^"]*\"`), makeToken(tokString))
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), makeToken(tokNum))
		lexer.Add([]byte(`\.\.\.`), makeToken(tokEllipsis))
		lexer.Add([]byte(`<\-`), makeToken(tokArrow))
		for kw, id := range keywords {
			lexer.Add([]byte(kw), makeToken(id))
		}
		lexer.Add([]byte(`[a-zA-Z][a-zA-Z0-9._]*`), makeToken(tokID))
		for _, lit := range literals {
			lexer.Add([]byte(`\`+lit), makeToken(int(lit[0])))
		}
		lexerErr = lexer.Compile()
		if lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
}

// skip is a scanner action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a scanner action which wraps a scanned match into a token.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return token{
			typ:    id,
			lexeme: string(m.Bytes),
			span:   [2]int{m.TC, m.TC + len(m.Bytes)},
		}, nil
	}
}

// scan tokenizes the complete input up front. The parser operates on the
// resulting slice; a trailing tokEOF is always present.
func scan(input string) ([]token, error) {
	initLexer()
	if lexerErr != nil {
		return nil, lexerErr
	}
	s, err := lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var toks []token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			return nil, err
		}
		if tok == nil { // skipped match
			continue
		}
		toks = append(toks, tok.(token))
	}
	toks = append(toks, token{typ: tokEOF, span: [2]int{len(input), len(input)}})
	return toks, nil
}
