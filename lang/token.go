package lang

import (
	"strconv"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind uint8

const (
	LessThan    TokenKind = iota // <
	GreaterThan                  // >
	CloseSlash                   // </
	Equals                       // =
	Quote                        // ' or "
	Text                         // any other run
)

func (k TokenKind) String() string {
	switch k {
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case CloseSlash:
		return "</"
	case Equals:
		return "="
	case Quote:
		return "quote"
	case Text:
		return "text"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one lexical unit with the position of its first rune.
type Token struct {
	Position
	Kind TokenKind
	// Text holds the run for Text tokens and the quote rune for Quote.
	Text string
}

// String returns the token as it would appear in diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Text:
		return strconv.Quote(t.Text)
	case Quote:
		if t.Text != "" {
			return t.Text
		}

		return `"`
	default:
		return t.Kind.String()
	}
}

// width returns the number of runes the token spans in source.
func (t Token) width() int {
	switch t.Kind {
	case Text:
		return utf8.RuneCountInString(t.Text)
	case CloseSlash:
		return 2
	default:
		return 1
	}
}
