// Package lexer turns tlang source into a flat token stream.
//
// The source is normalized first (see Normalize), then consumed left to
// right: whitespace is skipped and the first rule of an ordered table that
// matches at the cursor produces a token. Punctuation and list brackets are
// tried only after every rule has failed.
package lexer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsegab/tlang/diag"
	"github.com/tsegab/tlang/token"
)

// rule matches at the start of rest and returns the consumed length and the
// token literal. A zero length means no match.
type rule struct {
	name  string
	kind  token.Kind
	skip  bool
	match func(rest string) (n int, lit string)
}

func pattern(expr string, group int) func(string) (int, string) {
	re := regexp.MustCompile(`^(?:` + expr + `)`)
	return func(rest string) (int, string) {
		m := re.FindStringSubmatchIndex(rest)
		if m == nil {
			return 0, ""
		}
		return m[1], rest[m[2*group]:m[2*group+1]]
	}
}

func literal(op string) func(string) (int, string) {
	return func(rest string) (int, string) {
		if strings.HasPrefix(rest, op) {
			return len(op), op
		}
		return 0, ""
	}
}

// word reads a run of identifier characters. The keyword table decides the
// kind afterwards, so a keyword prefix of a longer word stays an identifier.
func word(rest string) (int, string) {
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !isWordRune(r) {
			break
		}
		n += size
	}
	return n, rest[:n]
}

// rules is ordered: comments, numbers and words come before operators, and
// two-character operators before their one-character prefixes.
var rules = []rule{
	{name: "block comment", skip: true, match: pattern(`~~[\s\S]*?~~`, 0)},
	{name: "line comment", skip: true, match: pattern(`#[^\n]*`, 0)},
	{name: "number", kind: token.NUMBER, match: pattern(`[0-9]+`, 0)},
	{name: "word", kind: token.IDENT, match: word},
	{name: "eq", kind: token.EQ, match: literal("==")},
	{name: "neq", kind: token.NEQ, match: literal("!=")},
	{name: "gte", kind: token.GTE, match: literal(">=")},
	{name: "lte", kind: token.LTE, match: literal("<=")},
	{name: "and", kind: token.AND, match: literal("&&")},
	{name: "or", kind: token.OR, match: literal("||")},
	{name: "plus", kind: token.PLUS, match: literal("+")},
	{name: "minus", kind: token.MINUS, match: literal("-")},
	{name: "mult", kind: token.MULT, match: literal("*")},
	{name: "div", kind: token.DIV, match: literal("/")},
	{name: "gt", kind: token.GT, match: literal(">")},
	{name: "lt", kind: token.LT, match: literal("<")},
	{name: "assign", kind: token.ASSIGN, match: literal("=")},
	{name: "double string", kind: token.STRING, match: pattern(`"([^"\n]*)"`, 1)},
	{name: "single string", kind: token.STRING, match: pattern(`'([^'\n]*)'`, 1)},
}

// Tokenize normalizes src and splits it into tokens. Token offsets refer to
// the normalized text.
func Tokenize(src string) ([]token.Token, error) {
	return Scan(Normalize(src))
}

// Scan tokenizes text that has already been normalized. It stops at the
// first character no rule accepts and returns a *diag.LexError.
func Scan(src string) ([]token.Token, error) {
	var toks []token.Token
	i := 0
	for {
		i = skipSpace(src, i)
		if i >= len(src) {
			return toks, nil
		}
		rest := src[i:]

		if tok, n, ok := matchRule(rest); ok {
			if tok.Kind != token.EOF {
				tok.Pos = i
				toks = append(toks, tok)
			}
			i += n
			continue
		}
		if k, ok := token.Punct[rest[0]]; ok {
			toks = append(toks, token.Token{Kind: k, Lit: rest[:1], Pos: i})
			i++
			continue
		}
		if k, ok := token.ListBrackets[rest[0]]; ok {
			toks = append(toks, token.Token{Kind: k, Lit: rest[:1], Pos: i})
			i++
			continue
		}

		r, _ := utf8.DecodeRuneInString(rest)
		pos := diag.NewLocator("", src).Position(i)
		return nil, &diag.LexError{Char: r, Offset: i, Line: pos.Line, Col: pos.Column}
	}
}

// matchRule returns the token of the first matching rule. Skipped rules
// return a token of kind EOF.
func matchRule(rest string) (token.Token, int, bool) {
	for _, r := range rules {
		n, lit := r.match(rest)
		if n == 0 {
			continue
		}
		if r.skip {
			return token.Token{Kind: token.EOF}, n, true
		}
		kind := r.kind
		if kind == token.IDENT {
			kind = token.Lookup(lit)
		}
		return token.Token{Kind: kind, Lit: lit}, n, true
	}
	return token.Token{}, 0, false
}

func skipSpace(src string, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
