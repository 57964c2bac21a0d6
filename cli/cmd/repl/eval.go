package repl

import (
	"context"
	"regexp"
	"strings"

	"github.com/ardnew/slab/lang"
	"github.com/ardnew/slab/render"
	"github.com/ardnew/slab/scope"
)

var pathPattern = regexp.MustCompile(`^[\w-]+(?:\.[\w-]+)*$`)

// document is the template and data being explored.
type document struct {
	template string
	data     scope.Value
}

// evaluate interprets one line of input against data. Text containing
// placeholders is resolved as template text, a dot path that exists in data
// yields its value, and anything else is an expr-lang expression.
func evaluate(data scope.Value, input string) (string, error) {
	if len(lang.Placeholders(input)) > 0 {
		return lang.Resolve(input, scope.NewEnv(data)), nil
	}

	if pathPattern.MatchString(input) {
		if v, ok := data.Lookup(input); ok {
			return v.String(), nil
		}
	}

	v, err := data.Query(input)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}

func execute(ctx context.Context, doc document, opts []lang.Option) (lang.Node, error) {
	root, err := lang.ParseString(ctx, doc.template, opts...)
	if err != nil {
		return nil, err
	}

	return lang.Evaluate(ctx, root, doc.data, opts...)
}

// renderHTML returns the rendered markup of doc.
func renderHTML(ctx context.Context, doc document, opts []lang.Option) (string, error) {
	n, err := execute(ctx, doc, opts)
	if err != nil {
		return "", err
	}

	return render.String(n)
}

// renderTree returns the outline of the evaluated tree of doc.
func renderTree(ctx context.Context, doc document, opts []lang.Option) (string, error) {
	n, err := execute(ctx, doc, opts)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(lang.String(n), "\n"), nil
}

const previewWidth = 40

// listPaths lists the object paths of data starting with prefix, each with a
// short preview of its value.
func listPaths(data scope.Value, prefix string) string {
	var b strings.Builder

	for _, p := range data.Paths() {
		if !strings.HasPrefix(p, prefix) {
			continue
		}

		v, _ := data.Lookup(p)

		b.WriteString("  " + p + " " + hintStyle.Render(preview(v)) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func preview(v scope.Value) string {
	switch v.Kind() {
	case scope.Object:
		return "{ " + scope.FormatNumber(float64(v.Len())) + " members }"
	case scope.Array:
		return "[ " + scope.FormatNumber(float64(v.Len())) + " items ]"
	}

	s := v.String()
	if len(s) > previewWidth {
		return s[:previewWidth-3] + "..."
	}

	return s
}
