package reader

import (
	"io"
	"strings"

	"lambdatron.dev/lambdatron/internal/intern"
	"lambdatron.dev/lambdatron/internal/value"
)

// Marker symbol names the parser uses for reader-macro placeholder forms,
// lowered by the expander (expand.go) into their canonical shapes
// (spec.md §4.2, §4.3). quote itself needs no marker: it tokenizes straight
// to a Special (see lexer.go's scanLexeme), matching how the other eleven
// named special forms reach the parser.
const (
	markerSyntaxQ   = "syntax-quote"
	markerUnquote   = "unquote"
	markerUnquoteAt = "unquote-splicing"
	markerDeref     = "deref"
	markerAnonFn    = "fn*anon"
)

// Parser converts a Token stream into a Value tree (spec.md §4.2).
// Grounded on the teacher's nested, depth-tracked scan functions in
// internal/eval/eval.go (e.g. evalBodyForDeferredStore), generalized here
// into ordinary recursive descent over real nested bracket structure
// instead of losp's flat, linear ◆-terminated operators.
type Parser struct {
	lex   *Lexer
	store *intern.Store
}

// NewParser creates a Parser reading tokens from lex, interning symbols and
// keywords into store.
func NewParser(lex *Lexer, store *intern.Store) *Parser {
	return &Parser{lex: lex, store: store}
}

// ParseForm reads one top-level form. Returns io.EOF (wrapping nothing;
// compare with errors.Is) when the input is exhausted with no partial form
// pending.
func (p *Parser) ParseForm() (value.Value, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == EOF {
		return nil, io.EOF
	}
	return p.parseFrom(tok)
}

// ParseAll reads every top-level form in the input.
func (p *Parser) ParseAll() ([]value.Value, error) {
	var forms []value.Value
	for {
		v, err := p.ParseForm()
		if err == io.EOF {
			return forms, nil
		}
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
}

func (p *Parser) parseFrom(tok Token) (value.Value, error) {
	switch tok.Kind {
	case EOF:
		return nil, newReadError(UnfinishedForm, tok.Line, tok.Col, "unexpected EOF")
	case NilLit:
		return value.Nil{}, nil
	case BoolLit:
		return value.Bool(tok.BoolVal), nil
	case NumLit:
		if tok.NumIsFloat {
			return value.Float(tok.FloatVal), nil
		}
		return value.Int(tok.IntVal), nil
	case CharLit:
		return value.Char(tok.CharVal), nil
	case StrLit:
		return value.Str(tok.Text), nil
	case RegexLit:
		re, err := value.NewRegex(tok.Text)
		if err != nil {
			return nil, newReadError(InvalidRegex, tok.Line, tok.Col, err.Error())
		}
		return re, nil
	case KeywordTok:
		ns, name := splitQualified(tok.Text)
		return value.NewKeyword(p.store, ns, name), nil
	case SpecialTok:
		return value.Special{Tag: tok.Special}, nil
	case Ident:
		ns, name := splitQualified(tok.Text)
		return value.NewSymbol(p.store, ns, name), nil
	case LParen:
		return p.parseSeq(RParen, tok.Line, tok.Col)
	case LBracket:
		return p.parseVector(tok.Line, tok.Col)
	case LBrace:
		return p.parseMap(tok.Line, tok.Col)
	case HashBrace:
		return p.parseSet(tok.Line, tok.Col)
	case HashParen:
		return p.parseAnonFn(tok.Line, tok.Col)
	case Quote:
		return p.parseQuoted(value.Special{Tag: value.SpecialQuote}, tok.Line, tok.Col)
	case Backtick:
		return p.parseQuoted(value.NewSymbol(p.store, "", markerSyntaxQ), tok.Line, tok.Col)
	case Tilde:
		return p.parseQuoted(value.NewSymbol(p.store, "", markerUnquote), tok.Line, tok.Col)
	case TildeAt:
		return p.parseQuoted(value.NewSymbol(p.store, "", markerUnquoteAt), tok.Line, tok.Col)
	case At:
		return p.parseQuoted(value.NewSymbol(p.store, "", markerDeref), tok.Line, tok.Col)
	case RParen, RBracket, RBrace:
		return nil, newReadError(MismatchedDelimiter, tok.Line, tok.Col, "unexpected closing delimiter")
	}
	return nil, newReadError(UnfinishedForm, tok.Line, tok.Col, "unrecognized token")
}

func (p *Parser) parseQuoted(head value.Value, line, col int) (value.Value, error) {
	inner, err := p.ParseForm()
	if err == io.EOF {
		return nil, newReadError(UnfinishedForm, line, col, "reader macro missing its form")
	}
	if err != nil {
		return nil, err
	}
	return value.SeqFromSlice([]value.Value{head, inner}), nil
}

func (p *Parser) parseSeq(closer TokenKind, line, col int) (value.Value, error) {
	var items []value.Value
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return nil, newReadError(UnfinishedForm, line, col, "unterminated list starting here")
		}
		if tok.Kind == closer {
			return value.SeqFromSlice(items), nil
		}
		if isCloser(tok.Kind) {
			return nil, newReadError(MismatchedDelimiter, tok.Line, tok.Col, "mismatched closing delimiter")
		}
		v, err := p.parseFrom(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *Parser) parseVector(line, col int) (value.Value, error) {
	var items []value.Value
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return nil, newReadError(UnfinishedForm, line, col, "unterminated vector starting here")
		}
		if tok.Kind == RBracket {
			return value.NewVector(items), nil
		}
		if isCloser(tok.Kind) {
			return nil, newReadError(MismatchedDelimiter, tok.Line, tok.Col, "mismatched closing delimiter")
		}
		v, err := p.parseFrom(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *Parser) parseSet(line, col int) (value.Value, error) {
	var items []value.Value
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return nil, newReadError(UnfinishedForm, line, col, "unterminated set starting here")
		}
		if tok.Kind == RBrace {
			return value.NewSet(items), nil
		}
		if isCloser(tok.Kind) {
			return nil, newReadError(MismatchedDelimiter, tok.Line, tok.Col, "mismatched closing delimiter")
		}
		v, err := p.parseFrom(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *Parser) parseMap(line, col int) (value.Value, error) {
	var items []value.Value
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return nil, newReadError(UnfinishedForm, line, col, "unterminated map starting here")
		}
		if tok.Kind == RBrace {
			if len(items)%2 != 0 {
				return nil, newReadError(MapKVMismatch, line, col, "odd number of forms in map literal")
			}
			return value.NewMapFromFlat(items), nil
		}
		if isCloser(tok.Kind) {
			return nil, newReadError(MismatchedDelimiter, tok.Line, tok.Col, "mismatched closing delimiter")
		}
		v, err := p.parseFrom(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

// parseAnonFn reads #(...) into a marker form (fn*anon content), where
// content is the whole parenthesized body as a single nested list, lowered
// by the reader expander into an ordinary fn special form with %, %1..%9,
// %& positional parameters (SPEC_FULL.md §C). content must stay a single
// element — #(+ %1 %2) is one call expression, not three body forms.
func (p *Parser) parseAnonFn(line, col int) (value.Value, error) {
	content, err := p.parseSeq(RParen, line, col)
	if err != nil {
		return nil, err
	}
	sym := value.NewSymbol(p.store, "", markerAnonFn)
	return value.SeqFromSlice([]value.Value{sym, content}), nil
}

func isCloser(k TokenKind) bool {
	return k == RParen || k == RBracket || k == RBrace
}

// splitQualified splits "ns/name" at the first '/' into ("ns", "name"); it
// returns ("", text) if text has no '/' or its first '/' is the first or
// last character. A bare "/" is the division symbol, not a namespace
// separator.
func splitQualified(text string) (ns, name string) {
	if text == "/" {
		return "", text
	}
	idx := strings.IndexByte(text, '/')
	if idx <= 0 || idx >= len(text)-1 {
		return "", text
	}
	return text[:idx], text[idx+1:]
}
