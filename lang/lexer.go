package lang

import (
	"iter"
	"strings"
	"unicode"
)

// textPunct lists the punctuation that may continue a text run.
const textPunct = "{}!@-_:.&;,"

func continuesText(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		strings.ContainsRune(textPunct, r)
}

// Tokenize splits src into tokens. It never fails; every rune is either
// skipped whitespace or part of exactly one token.
func Tokenize(src string) []Token {
	var tokens []Token

	for tok := range Tokens(src) {
		tokens = append(tokens, tok)
	}

	return tokens
}

// Tokens returns an iterator over the tokens of src.
func Tokens(src string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		r := newReader(src)

		for !r.eof() {
			if unicode.IsSpace(r.peek()) {
				r.advance()

				continue
			}

			if !yield(lex(r)) {
				return
			}
		}
	}
}

// lex reads the token starting at the current non-space rune.
func lex(r *reader) Token {
	tok := Token{Position: r.position()}

	switch ch := r.advance(); ch {
	case '<':
		tok.Kind = LessThan
		if r.peek() == '/' {
			r.advance()

			tok.Kind = CloseSlash
		}

	case '>':
		tok.Kind = GreaterThan

	case '=':
		tok.Kind = Equals

	case '\'', '"':
		tok.Kind, tok.Text = Quote, string(ch)

	default:
		var sb strings.Builder

		sb.WriteRune(ch)

		for !r.eof() && continuesText(r.peek()) {
			sb.WriteRune(r.advance())
		}

		tok.Kind, tok.Text = Text, sb.String()
	}

	return tok
}
