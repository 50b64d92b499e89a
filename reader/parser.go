package reader

import (
	"strconv"
	"strings"

	"github.com/npillmayer/npla1/errors"
	"github.com/npillmayer/npla1/term"
)

/*
The S-expression reader: a hand-written recursive-descent parser over the
lexer's token stream, producing term.Term trees directly (no separate parse
tree, no grammar engine). Kernel's surface syntax is small enough that a
table-driven or LR parser would only add ceremony; the reader mirrors the way
the teacher's own REPL front end reads a line at a time rather than routing
through its general parsing machinery.

A formal parameter's `. rest` dotted tail (§4.7.1) is represented the same
way package eval's binder expects it: the last child of the enclosing list is
tagged term.Sticky and holds the rest sub-formal directly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Reader reads successive data from one source buffer.
type Reader struct {
	lex  *Lexer
	peek *Token
}

// NewReader creates a reader over src.
func NewReader(src string) (*Reader, error) {
	lx, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	return &Reader{lex: lx}, nil
}

func (r *Reader) next() (Token, error) {
	if r.peek != nil {
		t := *r.peek
		r.peek = nil
		return t, nil
	}
	return r.lex.Next()
}

func (r *Reader) peekTok() (Token, error) {
	if r.peek == nil {
		t, err := r.lex.Next()
		if err != nil {
			return Token{}, err
		}
		r.peek = &t
	}
	return *r.peek, nil
}

// AtEOF reports whether the reader has no more data to offer.
func (r *Reader) AtEOF() (bool, error) {
	t, err := r.peekTok()
	if err != nil {
		return false, err
	}
	return t.Kind == EOF, nil
}

// Read parses and returns the next top-level datum. It returns (nil, nil) at
// end of input.
func (r *Reader) Read() (*term.Term, error) {
	tok, err := r.next()
	if err != nil {
		return nil, err
	}
	return r.readFrom(tok)
}

// ReadAll parses every datum in src.
func ReadAll(src string) ([]*term.Term, error) {
	rd, err := NewReader(src)
	if err != nil {
		return nil, err
	}
	var out []*term.Term
	for {
		t, err := rd.Read()
		if err != nil {
			return nil, err
		}
		if t == nil {
			eof, err := rd.AtEOF()
			if err != nil {
				return nil, err
			}
			if eof {
				break
			}
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Reader) readFrom(tok Token) (*term.Term, error) {
	switch tok.Kind {
	case EOF:
		return nil, nil
	case LParen:
		return r.readList(tok)
	case RParen:
		return nil, errors.NewInvalidSyntax("unexpected %q at %s", tok.Lexeme, tok.Span)
	case Dot:
		return nil, errors.NewInvalidSyntax("unexpected %q at %s", tok.Lexeme, tok.Span)
	case Quote:
		datum, err := r.Read()
		if err != nil {
			return nil, err
		}
		if datum == nil {
			return nil, errors.NewInvalidSyntax("dangling %q at %s", tok.Lexeme, tok.Span)
		}
		q := &term.Term{Children: []*term.Term{
			term.NewLeaf(term.Value{Kind: term.SymbolValue, Data: term.Intern("quote")}),
			datum,
		}}
		q.Span = tok.Span.Extend(datum.Span)
		return q, nil
	case String:
		s := strings.Trim(tok.Lexeme, `"`)
		t := term.NewLeaf(term.Value{Kind: term.Primitive, Data: s})
		t.Span = tok.Span
		return t, nil
	case Number:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, errors.NewInvalidSyntax("malformed number %q at byte %d (length %d)", tok.Lexeme, tok.Span.From(), tok.Span.Len())
		}
		t := term.NewLeaf(term.Value{Kind: term.Primitive, Data: f})
		t.Span = tok.Span
		return t, nil
	case Ident:
		t := atomFor(tok.Lexeme)
		t.Span = tok.Span
		return t, nil
	}
	return nil, errors.NewInvalidSyntax("unrecognized token %q at %s", tok.Lexeme, tok.Span)
}

// atomFor classifies an identifier-shaped lexeme into one of the code
// literals (#t, #f, #inert, #ignore) or an interned symbol (spec §3's
// lexeme categories, read directly rather than via a table lookup).
func atomFor(lexeme string) *term.Term {
	switch lexeme {
	case "#t":
		return term.NewLeaf(term.Value{Kind: term.Primitive, Data: true})
	case "#f":
		return term.NewLeaf(term.Value{Kind: term.Primitive, Data: false})
	case "#inert":
		return term.NewLeaf(term.Value{Kind: term.InertValue})
	case "#ignore":
		return term.NewLeaf(term.Value{Kind: term.IgnoreValue, Data: term.IgnoreSymbol})
	}
	return term.NewLeaf(term.Value{Kind: term.SymbolValue, Data: term.Intern(lexeme)})
}

// readList parses the children of a list after its opening paren/bracket has
// already been consumed, including an optional `. rest` dotted tail. The
// list term's own Span is built up by Extend-ing over the open token, every
// child read, and whichever token closes it, so a list covers exactly the
// source range its surface syntax occupies rather than being left zero-span.
func (r *Reader) readList(open Token) (*term.Term, error) {
	span := open.Span
	var children []*term.Term
	for {
		tok, err := r.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case EOF:
			return nil, errors.NewInvalidSyntax("unexpected end of input inside list")
		case RParen:
			span = span.Extend(tok.Span)
			return &term.Term{Children: children, Span: span}, nil
		case Dot:
			rest, err := r.Read()
			if err != nil {
				return nil, err
			}
			if rest == nil {
				return nil, errors.NewInvalidSyntax("dangling %q before end of input", tok.Lexeme)
			}
			closeTok, err := r.next()
			if err != nil {
				return nil, err
			}
			if closeTok.Kind != RParen {
				return nil, errors.NewInvalidSyntax("expected %q after dotted tail, got %q", ")", closeTok.Lexeme)
			}
			rest.Tags = rest.Tags.With(term.Sticky)
			children = append(children, rest)
			span = span.Extend(rest.Span).Extend(closeTok.Span)
			return &term.Term{Children: children, Span: span}, nil
		default:
			child, err := r.readFrom(tok)
			if err != nil {
				return nil, err
			}
			if child == nil {
				return nil, errors.NewInvalidSyntax("unexpected end of input inside list")
			}
			span = span.Extend(child.Span)
			children = append(children, child)
		}
	}
}
