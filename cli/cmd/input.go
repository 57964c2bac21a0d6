package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/readahead"

	"github.com/ardnew/slab/lang"
	"github.com/ardnew/slab/log"
	"github.com/ardnew/slab/scope"
	"github.com/ardnew/slab/section"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Data sources reported by [document.dataFrom].
const (
	dataFromFile    = "file"
	dataFromPreview = "preview"
	dataFromNone    = "none"
)

// Input selects a template document and the data it is rendered with.
//
// Data comes from the --data file if given, else from the document's
// slk-previewdata region, else it is an empty object.
type Input struct {
	Template string `default:"-" help:"Template document, or '-' for stdin."                       placeholder:"FILE" short:"t"`
	Data     string `           help:"Data document (JSON, or YAML by .yaml/.yml extension)." placeholder:"FILE" short:"d" type:"existingfile"`
}

// Engine holds the parser and evaluator limits.
type Engine struct {
	MaxDepth    int `default:"256" help:"Maximum element nesting depth."`
	Concurrency int `default:"1"   help:"Directive iterations evaluated in parallel."`
}

func (e Engine) options() []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(e.MaxDepth),
		lang.WithConcurrency(e.Concurrency),
	}
}

// document is a loaded template and its data.
type document struct {
	name     string
	template string
	data     scope.Value
	dataFrom string
}

func (d document) attrs() []slog.Attr {
	return []slog.Attr{
		slog.String("template", d.name),
		slog.String("data", d.dataFrom),
	}
}

func (in Input) name() string {
	if in.fromStdin() {
		return "<stdin>"
	}

	return in.Template
}

func (in Input) read(ctx context.Context) ([]byte, error) {
	if in.fromStdin() {
		ra := readahead.NewReader(stdin(ctx))
		defer ra.Close()

		return io.ReadAll(ra)
	}

	return os.ReadFile(in.Template)
}

func (in Input) load(ctx context.Context) (document, error) {
	doc := document{name: in.name()}

	raw, err := in.read(ctx)
	if err != nil {
		return doc, ErrReadTemplate.Wrap(err).
			With(slog.String("file", doc.name))
	}

	parts := section.Split(string(raw))
	if parts.Template == "" {
		return doc, ErrNoTemplate.With(slog.String("file", doc.name))
	}

	doc.template = parts.Template

	switch {
	case in.Data != "":
		b, err := os.ReadFile(in.Data)
		if err != nil {
			return doc, ErrReadData.Wrap(err).
				With(slog.String("file", in.Data))
		}

		doc.data, err = scope.Decode(in.Data, b)
		if err != nil {
			return doc, ErrDecodeData.Wrap(err).
				With(slog.String("file", in.Data))
		}

		doc.dataFrom = dataFromFile

	case parts.HasData:
		doc.data, err = scope.Decode(section.PreviewData+".json", []byte(parts.Data))
		if err != nil {
			return doc, ErrDecodeData.Wrap(err).
				With(slog.String("file", doc.name), slog.String("section", section.PreviewData))
		}

		doc.dataFrom = dataFromPreview

	default:
		doc.data = scope.ObjectOf()
		doc.dataFrom = dataFromNone
	}

	log.TraceContext(ctx, "loaded document", doc.attrs()...)

	return doc, nil
}

// compile parses and evaluates d.
func (e Engine) compile(ctx context.Context, d document) (lang.Node, error) {
	tmpl, err := lang.Compile(ctx, d.template, e.options()...)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("file", d.name))
	}

	n, err := tmpl.Execute(ctx, d.data)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("file", d.name))
	}

	return n, nil
}

// report writes a source excerpt for parse errors to the command's stderr.
func report(ctx context.Context, err error) {
	var pe *lang.ParseError
	if !errors.As(err, &pe) {
		return
	}

	if snippet := pe.Snippet(); snippet != "" {
		fmt.Fprintln(stderr(ctx), snippet)
	}
}

// source returns a loader that re-reads the document on every call.
func (in Input) source() func(context.Context) (string, scope.Value, error) {
	return func(ctx context.Context) (string, scope.Value, error) {
		d, err := in.load(ctx)

		return d.template, d.data, err
	}
}

func (in Input) fromStdin() bool {
	return in.Template == "" || in.Template == stdinSource
}
