// Package token defines the lexical units shared by the tlang lexer and
// parser, together with the keyword tables of both keyword scripts.
package token

import "fmt"

// Kind classifies a token.
type Kind int

const (
	// EOF is never produced by the lexer. The parser reports it as the
	// found kind when the token stream ends early.
	EOF Kind = iota

	NUMBER
	STRING
	IDENT

	// keywords
	IF
	ELSEIF
	ELSE
	WHILE
	FOR
	FROM
	TO
	FUN
	PRINT
	INPUT
	CLASS
	IMPORT
	AS

	// operators
	PLUS
	MINUS
	MULT
	DIV
	EQ
	NEQ
	GTE
	LTE
	GT
	LT
	AND
	OR
	ASSIGN

	// punctuation
	SEMICOLON
	COMMA
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	DOT
)

var kindNames = [...]string{
	EOF:       "EOF",
	NUMBER:    "NUMBER",
	STRING:    "STRING",
	IDENT:     "IDENTIFIER",
	IF:        "IF",
	ELSEIF:    "ELSEIF",
	ELSE:      "ELSE",
	WHILE:     "WHILE",
	FOR:       "FOR",
	FROM:      "FROM",
	TO:        "TO",
	FUN:       "FUN",
	PRINT:     "PRINT",
	INPUT:     "INPUT",
	CLASS:     "CLASS",
	IMPORT:    "IMPORT",
	AS:        "AS",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	MULT:      "MULT",
	DIV:       "DIV",
	EQ:        "EQ",
	NEQ:       "NEQ",
	GTE:       "GTE",
	LTE:       "LTE",
	GT:        "GT",
	LT:        "LT",
	AND:       "AND",
	OR:        "OR",
	ASSIGN:    "EQUAL",
	SEMICOLON: "SEMICOLON",
	COMMA:     "COMMA",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACKET",
	RBRACE:    "RBRACKET",
	LBRACKET:  "SLBRACKET",
	RBRACKET:  "SRBRACKET",
	DOT:       "DOT",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the keyword kinds.
func (k Kind) IsKeyword() bool { return k >= IF && k <= AS }

// Token is a classified lexical unit. Pos is the byte offset of the token
// in the normalized source and is only consulted when reporting errors.
type Token struct {
	Kind Kind
	Lit  string
	Pos  int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lit)
}

// Keywords maps every keyword spelling of both scripts to its kind.
var Keywords = map[string]Kind{
	"if":     IF,
	"elif":   ELSEIF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"from":   FROM,
	"to":     TO,
	"fun":    FUN,
	"out":    PRINT,
	"input":  INPUT,
	"class":  CLASS,
	"import": IMPORT,
	"as":     AS,

	"ከሆነ":  IF,
	"ካልሆነ": ELSEIF,
	"ሌላ":   ELSE,
	"እያለ":  WHILE,
	"ለ":    FOR,
	"ከ":    FROM,
	"እስከ":  TO,
	"ተግባር": FUN,
	"አሳይ":  PRINT,
	"ጠይቅ":  INPUT,
	"ክፍል":  CLASS,
	"አስገባ": IMPORT,
	"እንደ":  AS,
}

// Lookup classifies a word as a keyword or an identifier.
func Lookup(word string) Kind {
	if k, ok := Keywords[word]; ok {
		return k
	}
	return IDENT
}

// Punct is consulted after the rule table fails.
var Punct = map[byte]Kind{
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
	'{': LBRACE,
	'}': RBRACE,
	'.': DOT,
}

// ListBrackets is consulted last.
var ListBrackets = map[byte]Kind{
	'[': LBRACKET,
	']': RBRACKET,
}
