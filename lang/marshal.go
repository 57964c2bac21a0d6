package lang

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToNative converts n into maps and slices suitable for generic encoders.
// Text becomes a string; an element becomes
//
//	{"tag": ..., "attributes": [{"name": ..., "value": ...}], "children": [...]}
//
// with empty attributes and children omitted.
func ToNative(n Node) any {
	switch n := n.(type) {
	case *TextNode:
		return n.Value

	case *Element:
		m := map[string]any{"tag": n.Tag}

		if len(n.Attrs) > 0 {
			attrs := make([]any, len(n.Attrs))
			for i, a := range n.Attrs {
				attrs[i] = map[string]any{"name": a.Name, "value": a.Value}
			}

			m["attributes"] = attrs
		}

		if len(n.Children) > 0 {
			children := make([]any, len(n.Children))
			for i, c := range n.Children {
				children[i] = ToNative(c)
			}

			m["children"] = children
		}

		return m

	default:
		return nil
	}
}

// FormatJSON writes n as JSON. A positive indent pretty-prints.
func FormatJSON(w io.Writer, n Node, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(ToNative(n))
}

// FormatYAML writes n as YAML. A zero indent selects flow style.
func FormatYAML(w io.Writer, n Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	b, err := yaml.MarshalWithOptions(ToNative(n), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}
