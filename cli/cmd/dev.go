package cmd

import (
	"context"

	"github.com/ardnew/slab/log"
	"github.com/ardnew/slab/serve"
)

// Dev serves a template document over HTTP, reloading it on every request.
type Dev struct {
	Input  `embed:""`
	Engine `embed:""`

	Addr string `default:"127.0.0.1:3030" help:"Listen address."`
}

// Run executes the dev command. It returns when ctx is cancelled.
func (d *Dev) Run(ctx context.Context) error {
	if d.fromStdin() {
		return ErrStdinTemplate
	}

	srv := serve.New(
		serve.SourceFunc(d.source()),
		serve.WithLogger(log.Default()),
		serve.WithLangOptions(d.options()...),
	)

	return srv.ListenAndServe(ctx, d.Addr)
}
