package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsegab/tlang/scanner"
)

// quotes rewrites typographic quote and guillemet variants. It runs before
// span tracking, so the rewritten quotes delimit strings.
var quotes = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
	"‹", "<", "›", ">",
	"«", "<<", "»", ">>",
)

// words are replaced only when they stand alone.
var words = []struct{ from, to string }{
	{"እና", "&&"},
	{"ወይም", "||"},
}

// Normalize returns src in the form the tokenizer expects: NFKC, ASCII
// quotes, and Ethiopic punctuation and conjunctions spelled with their
// ASCII operators. Code outside string literals and comments is the only
// text the punctuation and word substitutions touch.
func Normalize(src string) string {
	src = quotes.Replace(norm.NFKC.String(src))

	var b strings.Builder
	b.Grow(len(src))
	sc := scanner.New(src)
	for {
		ch, ok := sc.Next()
		if !ok {
			break
		}
		pos := sc.Pos()
		if !sc.InCode() {
			end := sc.SpanEnd()
			b.WriteString(src[pos:end])
			sc.Skip(end - pos - 1)
			continue
		}
		if ch < utf8.RuneSelf {
			b.WriteByte(ch)
			continue
		}

		r, size := utf8.DecodeRuneInString(src[pos:])
		switch r {
		case '።':
			b.WriteByte(';')
		case '፣':
			b.WriteByte(',')
		case '\u00ad': // soft hyphen
		default:
			if from, to, ok := wordAt(src, pos); ok {
				b.WriteString(to)
				size = len(from)
				break
			}
			b.WriteString(src[pos : pos+size])
		}
		sc.Skip(size - 1)
	}
	return b.String()
}

func wordAt(src string, i int) (string, string, bool) {
	for _, w := range words {
		if !strings.HasPrefix(src[i:], w.from) {
			continue
		}
		if prev, _ := utf8.DecodeLastRuneInString(src[:i]); i > 0 && isWordRune(prev) {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(src[i+len(w.from):]); i+len(w.from) < len(src) && isWordRune(next) {
			continue
		}
		return w.from, w.to, true
	}
	return "", "", false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
