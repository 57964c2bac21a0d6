package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Sentinel errors. Every [*ParseError] matches [ErrParse] and every
// [*DirectiveError] matches [ErrDirective] under [errors.Is].
var (
	ErrParse     = NewError("parse error")
	ErrDirective = NewError("directive error")
	ErrReadInput = NewError("read input")
)

// Error is an error with optional structured logging attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error, wrapping it if needed.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a sentinel with the same message, so values
// derived through [Error.Wrap] and [Error.With] still match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg != "" && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append(append([]slog.Attr(nil), e.attrs...), attrs...),
	}
}

// ErrorKind classifies a [*ParseError]. Each kind is itself an error, so
// callers can test for one with [errors.Is]:
//
//	if errors.Is(err, lang.ErrUnclosedTag) { ... }
type ErrorKind uint8

const (
	ErrUnexpectedEOF ErrorKind = iota + 1
	ErrUnexpectedToken
	ErrMissingTagName
	ErrMissingAttrName
	ErrMissingEquals
	ErrMissingQuote
	ErrUnterminatedValue
	ErrMismatchedClose
	ErrUnclosedTag
	ErrMaxDepth
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrMissingTagName:
		return "missing tag name"
	case ErrMissingAttrName:
		return "missing attribute name"
	case ErrMissingEquals:
		return "missing '=' after attribute name"
	case ErrMissingQuote:
		return "missing quote before attribute value"
	case ErrUnterminatedValue:
		return "unterminated attribute value"
	case ErrMismatchedClose:
		return "mismatched closing tag"
	case ErrUnclosedTag:
		return "unclosed tag"
	case ErrMaxDepth:
		return "maximum nesting depth exceeded"
	default:
		return "parse error " + strconv.Itoa(int(k))
	}
}

// ParseError reports a grammar violation at a source position.
type ParseError struct {
	Kind ErrorKind
	Position
	// Token is the offending token as written, or empty at end of input.
	Token string
	// Tag is the element being parsed, if any.
	Tag string
	// Attr is the attribute being parsed, if any.
	Attr     string
	Expected string
	Found    string

	source string
}

func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString("parse error")

	if e.Position.IsValid() {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(e.Line))
		sb.WriteString(", column ")
		sb.WriteString(strconv.Itoa(e.Column))
	}

	sb.WriteString(": ")
	sb.WriteString(e.Kind.Error())

	switch {
	case e.Kind == ErrUnclosedTag:
		sb.WriteString(" <" + e.Tag + ">")

	case e.Expected != "" || e.Found != "":
		sb.WriteString(": expected ")
		sb.WriteString(orEOF(e.Expected))
		sb.WriteString(", found ")
		sb.WriteString(orEOF(e.Found))

	case e.Token != "":
		sb.WriteString(" ")
		sb.WriteString(e.Token)
	}

	if e.Attr != "" {
		sb.WriteString(" in attribute " + strconv.Quote(e.Attr))
	}

	return sb.String()
}

func orEOF(s string) string {
	if s == "" {
		return "end of input"
	}

	return s
}

// Unwrap lets errors.Is match both [ErrParse] and e.Kind.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Kind} }

func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Kind.Error()),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
	}

	for _, kv := range [...][2]string{
		{"token", e.Token},
		{"tag", e.Tag},
		{"attr", e.Attr},
		{"expected", e.Expected},
		{"found", e.Found},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}

	return slog.GroupValue(attrs...)
}

// Snippet returns the offending source line with a caret under the error
// column, or "" when the source is unknown.
func (e *ParseError) Snippet() string {
	if e.source == "" || !e.Position.IsValid() {
		return ""
	}

	lines := strings.Split(e.source, "\n")
	if e.Line > len(lines) {
		return ""
	}

	num := strconv.Itoa(e.Line)

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(num)
	sb.WriteString(" | ")
	sb.WriteString(lines[e.Line-1])
	sb.WriteByte('\n')
	// 2 leading spaces + " | "
	sb.WriteString(strings.Repeat(" ", len(num)+5+max(e.Column-1, 0)))
	sb.WriteString("^\n")

	return sb.String()
}

// withSource attaches source text for [ParseError.Snippet].
func withSource(err error, src string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.source = src
	}

	return err
}

// DirectiveError reports a misconfigured repetition directive.
type DirectiveError struct {
	Tag string
	Position
	Reason string
	// Children is the number of children the directive had.
	Children int
}

func (e *DirectiveError) Error() string {
	var sb strings.Builder

	sb.WriteString("directive <" + e.Tag + ">")

	if e.Position.IsValid() {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(e.Line))
		sb.WriteString(", column ")
		sb.WriteString(strconv.Itoa(e.Column))
	}

	sb.WriteString(": ")
	sb.WriteString(e.Reason)

	return sb.String()
}

func (e *DirectiveError) Unwrap() error { return ErrDirective }

func (e *DirectiveError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Reason),
		slog.String("tag", e.Tag),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.Int("children", e.Children),
	)
}
