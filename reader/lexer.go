/*
Package reader implements the lexical scanner and S-expression parser that
feed source text into the core's term representation (§6: "a lexer
producing token sequences and an S-expression parser producing a term
tree"). Both are external collaborators per the specification's scope, kept
here rather than in package term so the core itself never depends on a
concrete lexer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reader

import (
	"sync"

	"github.com/npillmayer/npla1"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func tracer() tracing.Trace {
	return tracing.Select("npla1.reader")
}

// TokKind classifies a lexed token.
type TokKind int

const (
	EOF TokKind = iota
	LParen
	RParen
	Dot
	Quote
	Ident
	Number
	String
)

func (k TokKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case LParen:
		return "("
	case RParen:
		return ")"
	case Dot:
		return "."
	case Quote:
		return "'"
	case Ident:
		return "ID"
	case Number:
		return "NUM"
	case String:
		return "STRING"
	}
	return "?"
}

// Token is one lexed unit of source, carrying its kind, raw lexeme and
// source span.
type Token struct {
	Kind   TokKind
	Lexeme string
	Span   npla1.Span
}

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexErr    error
)

func makeToken(kind TokKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{Kind: kind, Lexeme: string(m.Bytes), Span: npla1.Span{uint64(m.TC), uint64(m.TC + len(m.Bytes))}}, nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func buildLexer() (*lexmachine.Lexer, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(`;[^\n]*\n?`), skip)
	lx.Add([]byte(`( |\t|\n|\r)+`), skip)
	lx.Add([]byte(`\(`), makeToken(LParen))
	lx.Add([]byte(`\[`), makeToken(LParen))
	lx.Add([]byte(`\)`), makeToken(RParen))
	lx.Add([]byte(`\]`), makeToken(RParen))
	lx.Add([]byte(`\.`), makeToken(Dot))
	lx.Add([]byte(`'`), makeToken(Quote))
	lx.Add([]byte(`\"[^"]*\"`), makeToken(String))
	lx.Add([]byte(`[\+\-]?[0-9]+(\.[0-9]+)?`), makeToken(Number))
	lx.Add([]byte(`[#&@]?([a-zA-Z]|[\-\+\*/<>=!\?\$%])([a-zA-Z0-9]|[\-\+\*/<>=!\?\$%])*`), makeToken(Ident))
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return lx, nil
}

// sharedLexer returns the package-wide compiled lexmachine DFA, built once.
func sharedLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer, lexErr = buildLexer()
	})
	return lexer, lexErr
}

// Lexer tokenizes one source buffer, driving a lexmachine scanner instance.
type Lexer struct {
	scanner *lexmachine.Scanner
}

// NewLexer compiles (once, package-wide) the token DFA and creates a scanner
// bound to src.
func NewLexer(src string) (*Lexer, error) {
	lx, err := sharedLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}
	return &Lexer{scanner: s}, nil
}

// Next returns the next token, or an EOF-kind token at end of input.
func (l *Lexer) Next() (Token, error) {
	tok, err, eof := l.scanner.Next()
	if err != nil {
		return Token{}, err
	}
	if eof {
		return Token{Kind: EOF}, nil
	}
	t := tok.(Token)
	tracer().Debugf("token %s %q", t.Kind, t.Lexeme)
	return t, nil
}
