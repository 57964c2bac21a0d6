package lang

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Print writes an indented outline of n to w, one node per line.
//
//	<ul class="names">
//	  <li>
//	    "Ann"
func Print(w io.Writer, n Node) error {
	return PrintIndent(w, n, 2)
}

// PrintIndent is [Print] with a custom indent width.
func PrintIndent(w io.Writer, n Node, indent int) error {
	bw := bufio.NewWriter(w)

	Walk(n, func(n Node, depth int) bool {
		bw.WriteString(strings.Repeat(" ", depth*max(indent, 0)))

		switch n := n.(type) {
		case *TextNode:
			bw.WriteString(strconv.Quote(n.Value))

		case *Element:
			bw.WriteString("<" + n.Tag)

			for _, a := range n.Attrs {
				bw.WriteString(" " + a.Name + "=" + strconv.Quote(a.Value))
			}

			bw.WriteString(">")
		}

		bw.WriteByte('\n')

		return true
	})

	return bw.Flush()
}

// String returns the outline of n as written by [Print].
func String(n Node) string {
	var sb strings.Builder

	_ = Print(&sb, n)

	return sb.String()
}
