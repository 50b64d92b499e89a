package term

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strconv"
	"sync"
)

// LexemeCategory classifies a symbol token's lexeme (spec §3: "Categories:
// symbol, code literal, data literal, extended literal"). Classification is
// a pure function of the lexeme, never cached on the token itself.
type LexemeCategory int8

const (
	// CatSymbol is an ordinary identifier.
	CatSymbol LexemeCategory = iota
	// CatCodeLiteral is a self-evaluating keyword constant: #t, #f, #inert, #ignore.
	CatCodeLiteral
	// CatDataLiteral is a quoted datum written directly, e.g. a string literal.
	CatDataLiteral
	// CatExtendedLiteral is a number or another "#…" extended literal form.
	CatExtendedLiteral
)

// CategorizeLexeme classifies a raw lexeme into one of the symbol token
// categories. It never consults any table besides the lexeme's own shape.
func CategorizeLexeme(lexeme string) LexemeCategory {
	if lexeme == "" {
		return CatSymbol
	}
	switch lexeme {
	case "#t", "#f", "#inert", "#ignore":
		return CatCodeLiteral
	}
	if lexeme[0] == '"' {
		return CatDataLiteral
	}
	if lexeme[0] == '#' {
		return CatExtendedLiteral
	}
	if _, err := strconv.ParseFloat(lexeme, 64); err == nil {
		return CatExtendedLiteral
	}
	return CatSymbol
}

// Symbol is an interned string token. It carries only the lexeme — no cached
// type, per spec §3 — plus an optional direct Value slot for recording a
// bound value in place. No code in this module sets it.
type Symbol struct {
	Name  string
	Value *Term // nil unless a caller sets it
}

func (s *Symbol) String() string {
	if s == nil {
		return "#ignore"
	}
	return s.Name
}

// Category classifies this symbol's own name.
func (s *Symbol) Category() LexemeCategory {
	return CategorizeLexeme(s.Name)
}

// --- Interning table ---------------------------------------------------

// Interner holds one canonical *Symbol per distinct name. Symbols compare by
// pointer identity once interned, matching Kernel's symbol-identity
// semantics (two reads of the same name yield the same symbol object).
type Interner struct {
	mu    sync.Mutex
	table map[string]*Symbol
}

// NewInterner creates an empty interning table.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]*Symbol)}
}

// Intern returns the canonical *Symbol for name, creating it on first use.
func (in *Interner) Intern(name string) *Symbol {
	in.mu.Lock()
	defer in.mu.Unlock()
	if sym, ok := in.table[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name}
	in.table[name] = sym
	return sym
}

// globalInterner backs the package-level Intern convenience function, for
// callers (mainly the reader) that don't need a private interning scope.
var globalInterner = NewInterner()

// Intern interns name in the shared global table.
func Intern(name string) *Symbol {
	return globalInterner.Intern(name)
}

// IgnoreSymbol is the distinguished "#ignore" formal-parameter placeholder.
var IgnoreSymbol = Intern("#ignore")

// IsIgnore reports whether sym is the ignore placeholder.
func (s *Symbol) IsIgnore() bool {
	return s == IgnoreSymbol
}
