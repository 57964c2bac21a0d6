package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/slab/log"
	"github.com/ardnew/slab/render"
)

// Compile renders a template document to HTML.
type Compile struct {
	Input  `embed:""`
	Engine `embed:""`

	Output string `help:"Output file, or '-' for stdout. The file is replaced atomically." placeholder:"FILE" short:"o" default:"-"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := c.load(ctx)
	if err != nil {
		return err
	}

	n, err := c.compile(ctx, doc)
	if err != nil {
		report(ctx, err)

		return err
	}

	if c.Output == "" || c.Output == stdinSource {
		w := stdout(ctx)

		if err := render.HTML(w, n); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		_, err = io.WriteString(w, "\n")

		return err
	}

	if err := render.WriteFile(c.Output, n); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", c.Output))
	}

	log.DebugContext(ctx, "compiled template",
		append(doc.attrs(), slog.String("output", c.Output))...,
	)

	return nil
}
