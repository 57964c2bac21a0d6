package cmd

import (
	"context"

	"github.com/ardnew/slab/cli/cmd/repl"
	"github.com/ardnew/slab/log"
)

// Repl explores the data of a template document interactively.
type Repl struct {
	Input  `embed:""`
	Engine `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if r.fromStdin() {
		return ErrStdinTemplate
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, repl.Session{
		Path:     r.Template,
		Load:     r.source(),
		Options:  r.options(),
		CacheDir: cacheDir,
		Logger:   log.Default(),
	})
}
