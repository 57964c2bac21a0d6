package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/slab/scope"
)

// Query evaluates an expr-lang expression with the data document as its
// environment. Object members are variables; other documents are bound to
// the variable data.
type Query struct {
	Input `embed:""`

	Expr   string `arg:""                                help:"Expression to evaluate." name:"expr"`
	Format string `default:"json" enum:"json,yaml,text" help:"Result format (${enum})." short:"f"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := q.load(ctx)
	if err != nil {
		return err
	}

	result, err := doc.data.Query(q.Expr)
	if err != nil {
		return ErrQuery.Wrap(err).With(
			slog.String("expr", q.Expr),
			slog.String("data", doc.dataFrom),
		)
	}

	w := stdout(ctx)

	switch q.Format {
	case formatYAML:
		b, err := scope.EncodeYAML(result)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(b)

		return err

	case formatText:
		if s, ok := result.Text(); ok {
			_, err = fmt.Fprintln(w, s)

			return err
		}

		fallthrough

	default:
		_, err = fmt.Fprintln(w, result.String())

		return err
	}
}
