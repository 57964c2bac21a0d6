package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Parse builds a tree from tokens. A template has exactly one root: either
// a run of text or one element.
func Parse(tokens []Token, opts ...Option) (Node, error) {
	o := makeOptions(opts...)

	p := &parser{tokens: tokens, maxDepth: o.maxDepth}

	if p.eof() {
		return nil, p.errorf(ErrUnexpectedEOF, "", "")
	}

	root, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, p.errorf(ErrUnexpectedToken, "end of input", p.peek().String())
	}

	return root, nil
}

// ParseString tokenizes and parses src.
func ParseString(ctx context.Context, src string, opts ...Option) (Node, error) {
	o := makeOptions(opts...)

	tokens := Tokenize(src)

	o.logger.TraceContext(ctx, "tokenize",
		slog.Int("source_bytes", len(src)),
		slog.Int("tokens", len(tokens)),
	)

	root, err := Parse(tokens, opts...)
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, withSource(err, src)
	}

	o.logger.TraceContext(ctx, "parse complete", slog.Int("nodes", countNodes(root)))

	return root, nil
}

type parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
	// last is the most recently consumed token, used to position errors
	// at end of input.
	last Token
}

func (p *parser) eof() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() Token {
	if p.eof() {
		return Token{}
	}

	return p.tokens[p.pos]
}

func (p *parser) next() (Token, bool) {
	if p.eof() {
		return Token{}, false
	}

	p.last = p.tokens[p.pos]
	p.pos++

	return p.last, true
}

// errorf builds a ParseError at the current token, or just past the last
// token at end of input.
func (p *parser) errorf(kind ErrorKind, expected, found string) *ParseError {
	e := &ParseError{Kind: kind, Expected: expected, Found: found}

	if tok := p.peek(); !p.eof() {
		e.Position = tok.Position
		e.Token = tok.String()
	} else if p.last.IsValid() {
		e.Position = p.last.Position
		e.Column += p.last.width()
	}

	return e
}

// parseNode parses one child: a text run or an element.
func (p *parser) parseNode() (Node, error) {
	switch tok := p.peek(); {
	case p.eof():
		return nil, p.errorf(ErrUnexpectedEOF, "", "")
	case tok.Kind == Text:
		return p.parseText(), nil
	case tok.Kind == LessThan:
		return p.parseElement()
	default:
		return nil, p.errorf(ErrUnexpectedToken, "text or <", tok.String())
	}
}

// parseText joins a run of text tokens. Tokens that touch in source are
// concatenated; skipped whitespace between tokens becomes one space.
func (p *parser) parseText() *TextNode {
	first, _ := p.next()
	prev := first

	var sb strings.Builder

	sb.WriteString(first.Text)

	for !p.eof() && p.peek().Kind == Text {
		tok, _ := p.next()
		if prev.Offset+len(prev.Text) != tok.Offset {
			sb.WriteByte(' ')
		}

		sb.WriteString(tok.Text)
		prev = tok
	}

	return &TextNode{Value: sb.String(), Position: first.Position}
}

func (p *parser) parseElement() (Node, error) {
	open, _ := p.next()

	if p.depth >= p.maxDepth {
		return nil, &ParseError{
			Kind:     ErrMaxDepth,
			Position: open.Position,
			Token:    open.String(),
		}
	}

	p.depth++
	defer func() { p.depth-- }()

	name := p.peek()
	if p.eof() || name.Kind != Text {
		return nil, p.errorf(ErrMissingTagName, "tag name", foundOf(p))
	}

	p.next()

	el := &Element{Tag: name.Text, Position: open.Position}

	if err := p.parseAttrs(el); err != nil {
		return nil, err
	}

	for {
		if p.eof() {
			return nil, p.unclosed(el)
		}

		if p.peek().Kind == CloseSlash {
			break
		}

		child, err := p.parseNode()
		if err != nil {
			return nil, err
		}

		el.Children = append(el.Children, child)
	}

	return el, p.parseClose(el)
}

// parseAttrs consumes attributes up to and including '>'.
func (p *parser) parseAttrs(el *Element) error {
	for {
		tok, ok := p.next()
		if !ok {
			return p.unclosed(el)
		}

		switch tok.Kind {
		case GreaterThan:
			return nil

		case Text:
			value, err := p.parseAttrValue(el, tok.Text)
			if err != nil {
				return err
			}

			el.Attrs = el.Attrs.Set(tok.Text, value)

		case Equals:
			p.pos--

			e := p.errorf(ErrMissingAttrName, "attribute name", tok.String())
			e.Tag = el.Tag

			return e

		default:
			p.pos--

			e := p.errorf(ErrUnexpectedToken, "attribute or >", tok.String())
			e.Tag = el.Tag

			return e
		}
	}
}

// parseAttrValue parses '=' Quote Text* Quote after an attribute name.
func (p *parser) parseAttrValue(el *Element, name string) (string, error) {
	fail := func(kind ErrorKind, expected string) (string, error) {
		e := p.errorf(kind, expected, foundOf(p))
		e.Tag, e.Attr = el.Tag, name

		return "", e
	}

	if p.eof() {
		return "", p.unclosed(el)
	}

	if p.peek().Kind != Equals {
		return fail(ErrMissingEquals, "=")
	}

	p.next()

	if p.eof() || p.peek().Kind != Quote {
		return fail(ErrMissingQuote, "quote")
	}

	p.next()

	var parts []string

	for {
		if p.eof() || (p.peek().Kind != Text && p.peek().Kind != Quote) {
			return fail(ErrUnterminatedValue, "quote")
		}

		tok, _ := p.next()
		if tok.Kind == Quote {
			return strings.Join(parts, " "), nil
		}

		parts = append(parts, tok.Text)
	}
}

// parseClose consumes '</' Name '>' for el.
func (p *parser) parseClose(el *Element) error {
	p.next() // </

	name := p.peek()
	if p.eof() {
		return p.unclosed(el)
	}

	if name.Kind != Text || name.Text != el.Tag {
		e := p.errorf(ErrMismatchedClose, el.Tag, foundOf(p))
		if name.Kind == Text {
			e.Found = name.Text
		}

		e.Tag = el.Tag

		return e
	}

	p.next()

	if p.eof() {
		return p.unclosed(el)
	}

	if p.peek().Kind != GreaterThan {
		e := p.errorf(ErrUnexpectedToken, ">", p.peek().String())
		e.Tag = el.Tag

		return e
	}

	p.next()

	return nil
}

func (p *parser) unclosed(el *Element) *ParseError {
	return &ParseError{
		Kind:     ErrUnclosedTag,
		Position: el.Position,
		Token:    "<" + el.Tag,
		Tag:      el.Tag,
	}
}

func foundOf(p *parser) string {
	if p.eof() {
		return ""
	}

	return p.peek().String()
}

func countNodes(n Node) int {
	count := 0

	Walk(n, func(Node, int) bool { count++; return true })

	return count
}
