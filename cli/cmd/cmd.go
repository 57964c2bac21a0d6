package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	stdioKey struct{}
	stdio    struct {
		in       io.Reader
		out, err io.Writer
	}
)

// WithStdio returns a new context.Context whose commands read standard input
// from in and write to out and errw. Nil streams keep the process defaults.
func WithStdio(
	ctx context.Context,
	in io.Reader,
	out, errw io.Writer,
) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdio{in: in, out: out, err: errw})
}

func stdioFrom(ctx context.Context) stdio {
	s, _ := ctx.Value(stdioKey{}).(stdio)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	if s.err == nil {
		s.err = os.Stderr
	}

	return s
}

func stdin(ctx context.Context) io.Reader  { return stdioFrom(ctx).in }
func stdout(ctx context.Context) io.Writer { return stdioFrom(ctx).out }
func stderr(ctx context.Context) io.Writer { return stdioFrom(ctx).err }
