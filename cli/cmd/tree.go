package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/slab/lang"
)

// Tree output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Tree prints the parsed tree of a template, or with --eval the tree
// produced by evaluating it.
type Tree struct {
	Input  `embed:""`
	Engine `embed:""`

	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                          help:"Indent width."             short:"i"`
	Eval   bool   `                                     help:"Print the evaluated tree." short:"e"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := t.load(ctx)
	if err != nil {
		return err
	}

	var n lang.Node

	if t.Eval {
		n, err = t.compile(ctx, doc)
	} else {
		n, err = lang.ParseString(ctx, doc.template, t.options()...)
		if err != nil {
			err = ErrCompile.Wrap(err).With(slog.String("file", doc.name))
		}
	}

	if err != nil {
		report(ctx, err)

		return err
	}

	w := stdout(ctx)

	switch t.Format {
	case formatJSON:
		err = lang.FormatJSON(w, n, t.Indent)
	case formatYAML:
		err = lang.FormatYAML(w, n, t.Indent)
	default:
		err = lang.PrintIndent(w, n, t.Indent)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", t.Format))
	}

	return nil
}
