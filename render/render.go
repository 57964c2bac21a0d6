// Package render serializes evaluated template trees to HTML.
//
// Text is HTML-escaped; attribute values are quoted and escaped. Elements
// are written in document order with attributes in source order. Void
// elements such as br and img are written without a closing tag and cannot
// hold content; rendering one that has children fails with a
// [*VoidContentError] instead of dropping them.
package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	g "maragu.dev/gomponents"

	"github.com/ardnew/slab/lang"
)

// ErrVoidContent is matched by every [*VoidContentError].
var ErrVoidContent = errors.New("void element has content")

// voidTags are the elements gomponents writes without content or closing
// tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true, "track": true,
	"wbr": true,
}

// VoidContentError reports a void element with children.
type VoidContentError struct {
	Tag      string
	Position lang.Position
	Children int
}

func (e *VoidContentError) Error() string {
	msg := "<" + e.Tag + ">"
	if e.Position.IsValid() {
		msg += " at " + e.Position.String()
	}

	return msg + ": " + ErrVoidContent.Error()
}

func (e *VoidContentError) Unwrap() error { return ErrVoidContent }

// checkVoid returns an error for the first void element in n with children.
func checkVoid(n lang.Node) error {
	var err error

	lang.Walk(n, func(n lang.Node, _ int) bool {
		if err != nil {
			return false
		}

		if e, ok := n.(*lang.Element); ok && voidTags[e.Tag] && len(e.Children) > 0 {
			err = &VoidContentError{Tag: e.Tag, Position: e.Position, Children: len(e.Children)}

			return false
		}

		return true
	})

	return err
}

// Node converts n into a gomponents node.
func Node(n lang.Node) g.Node {
	switch n := n.(type) {
	case *lang.TextNode:
		return g.Text(n.Value)

	case *lang.Element:
		children := make([]g.Node, 0, len(n.Attrs)+len(n.Children))

		for _, a := range n.Attrs {
			children = append(children, g.Attr(a.Name, a.Value))
		}

		for _, c := range n.Children {
			if gn := Node(c); gn != nil {
				children = append(children, gn)
			}
		}

		return g.El(n.Tag, children...)

	default:
		return nil
	}
}

// HTML writes n to w as HTML.
func HTML(w io.Writer, n lang.Node) error {
	if err := checkVoid(n); err != nil {
		return err
	}

	gn := Node(n)
	if gn == nil {
		return nil
	}

	return gn.Render(w)
}

// String returns n as HTML.
func String(n lang.Node) (string, error) {
	var buf bytes.Buffer

	if err := HTML(&buf, n); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// WriteFile renders n and replaces path with the result atomically. The
// parent directory is created if needed.
func WriteFile(path string, n lang.Node) error {
	var buf bytes.Buffer

	if err := HTML(&buf, n); err != nil {
		return err
	}

	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return atomic.WriteFile(path, &buf)
}
