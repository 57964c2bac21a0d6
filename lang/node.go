package lang

import "slices"

// Node is either a [*TextNode] or an [*Element].
type Node interface {
	// Pos returns the source position the node was parsed from. Nodes built
	// by the evaluator carry the position of the template node they came
	// from.
	Pos() Position

	node()
}

// TextNode is literal character data.
type TextNode struct {
	Value    string
	Position Position
}

// Element is a tag with ordered attributes and owned children.
type Element struct {
	Tag      string
	Attrs    Attrs
	Children []Node
	Position Position
}

func (t *TextNode) Pos() Position { return t.Position }
func (e *Element) Pos() Position  { return e.Position }

func (*TextNode) node() {}
func (*Element) node()  {}

// NewText returns a text node without source position.
func NewText(value string) *TextNode { return &TextNode{Value: value} }

// NewElement returns an element without source position.
func NewElement(tag string, attrs Attrs, children ...Node) *Element {
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

// Attr is one name="value" pair.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list with unique names.
type Attrs []Attr

// Get returns the value of the attribute named name.
func (a Attrs) Get(name string) (string, bool) {
	if i := a.index(name); i >= 0 {
		return a[i].Value, true
	}

	return "", false
}

// Has reports whether an attribute named name exists.
func (a Attrs) Has(name string) bool { return a.index(name) >= 0 }

// Set returns a copy of a with name set to value. An existing attribute
// keeps its position; a new one is appended.
func (a Attrs) Set(name, value string) Attrs {
	out := slices.Clone(a)

	if i := out.index(name); i >= 0 {
		out[i].Value = value

		return out
	}

	return append(out, Attr{Name: name, Value: value})
}

// Without returns a copy of a with the named attributes removed.
func (a Attrs) Without(names ...string) Attrs {
	out := make(Attrs, 0, len(a))

	for _, attr := range a {
		if !slices.Contains(names, attr.Name) {
			out = append(out, attr)
		}
	}

	return out
}

// Names returns the attribute names in order.
func (a Attrs) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}

	return names
}

func (a Attrs) index(name string) int {
	return slices.IndexFunc(a, func(attr Attr) bool { return attr.Name == name })
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *TextNode:
		c := *n

		return &c

	case *Element:
		c := *n
		c.Attrs = slices.Clone(n.Attrs)

		if n.Children != nil {
			c.Children = make([]Node, len(n.Children))
			for i, child := range n.Children {
				c.Children[i] = Clone(child)
			}
		}

		return &c

	default:
		return nil
	}
}

// Equal reports whether a and b are structurally identical. Source
// positions are ignored.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *TextNode:
		b, ok := b.(*TextNode)

		return ok && a.Value == b.Value

	case *Element:
		b, ok := b.(*Element)
		if !ok || a.Tag != b.Tag || len(a.Children) != len(b.Children) {
			return false
		}

		if !slices.Equal(a.Attrs, b.Attrs) {
			return false
		}

		for i := range a.Children {
			if !Equal(a.Children[i], b.Children[i]) {
				return false
			}
		}

		return true

	default:
		return a == nil && b == nil
	}
}

// Walk calls fn for n and each of its descendants in document order,
// passing the depth of each node. Returning false from fn skips the
// children of that node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	var walk func(Node, int)

	walk = func(n Node, depth int) {
		if n == nil || !fn(n, depth) {
			return
		}

		if e, ok := n.(*Element); ok {
			for _, child := range e.Children {
				walk(child, depth+1)
			}
		}
	}

	walk(n, 0)
}
