package lang

import (
	"strconv"
	"unicode/utf8"
)

// Position identifies a location in template source. Line and Column are
// 1-based; Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether p refers to a source location.
func (p Position) IsValid() bool { return p.Line > 0 }

// reader is a forward-only rune cursor.
type reader struct {
	src  string
	pos  int
	line int
	col  int
}

func newReader(src string) *reader {
	return &reader{src: src, line: 1, col: 1}
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune {
	if r.eof() {
		return utf8.RuneError
	}

	ch, _ := utf8.DecodeRuneInString(r.src[r.pos:])

	return ch
}

func (r *reader) advance() rune {
	if r.eof() {
		return utf8.RuneError
	}

	ch, size := utf8.DecodeRuneInString(r.src[r.pos:])

	r.pos += size
	if ch == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}

	return ch
}

func (r *reader) position() Position {
	return Position{Offset: r.pos, Line: r.line, Column: r.col}
}
