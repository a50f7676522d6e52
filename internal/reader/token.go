package reader

import "lambdatron.dev/lambdatron/internal/value"

// TokenKind enumerates the token kinds produced by the lexer (spec.md
// §4.1). HashBrace and HashParen are dispatch-macro lead tokens (`#{` and
// `#(`) feeding the set-literal and anonymous-function reader macros
// (SPEC_FULL.md §C).
type TokenKind int

const (
	EOF TokenKind = iota
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Quote
	Backtick
	Tilde
	TildeAt
	At
	HashBrace
	HashParen
	NilLit
	BoolLit
	NumLit
	StrLit
	CharLit
	RegexLit
	KeywordTok
	Ident
	SpecialTok
)

// Token is one lexed unit of source text.
type Token struct {
	Kind TokenKind
	// Text holds: the symbol/special-form name for Ident/SpecialTok, the
	// keyword name (without leading ':') for KeywordTok, the decoded
	// contents for StrLit/RegexLit, and the raw literal for NumLit (the
	// lexer also parses it eagerly into IntVal/FloatVal).
	Text string
	// BoolVal is meaningful only when Kind == BoolLit.
	BoolVal bool
	// CharVal is meaningful only when Kind == CharLit.
	CharVal rune
	// NumIsFloat is meaningful only when Kind == NumLit: true if the
	// literal contains a decimal point or exponent, or overflowed an
	// int64, per spec.md §4.8's parse-order rule.
	NumIsFloat bool
	IntVal     int64
	FloatVal   float64
	// Special is meaningful only when Kind == SpecialTok.
	Special value.SpecialTag
	Line    int
	Col     int
}
