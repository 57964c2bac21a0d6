package lang

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/slab/log"
	"github.com/ardnew/slab/scope"
)

// Directive names.
const (
	// DirectiveTag marks an element whose single child is repeated once per
	// element of an array.
	DirectiveTag = "slk-each"
	// DataAttr names the directive attribute holding the array path.
	DataAttr = "data"
	// AsAttr names the directive attribute holding the item binding name.
	AsAttr = "as"
	// WrapperTag is the tag of the element that replaces an expanded
	// directive.
	WrapperTag = "div"
)

// Evaluate renders n against data and returns a new tree. n is not
// modified.
func Evaluate(ctx context.Context, n Node, data scope.Value, opts ...Option) (Node, error) {
	return EvaluateEnv(ctx, n, scope.NewEnv(data), opts...)
}

// EvaluateEnv is [Evaluate] with a prepared scope chain.
func EvaluateEnv(ctx context.Context, n Node, env *scope.Env, opts ...Option) (Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	o := makeOptions(opts...)

	ev := &evaluator{logger: o.logger, concurrency: o.concurrency}

	out, err := ev.eval(ctx, n, env)
	if err != nil {
		return nil, err
	}

	return out, nil
}

type evaluator struct {
	logger      log.Logger
	concurrency int
}

func (ev *evaluator) eval(ctx context.Context, n Node, env *scope.Env) (Node, error) {
	switch n := n.(type) {
	case *TextNode:
		return &TextNode{
			Value:    ev.resolve(ctx, n.Value, env),
			Position: n.Position,
		}, nil

	case *Element:
		if n.Tag == DirectiveTag {
			return ev.expand(ctx, n, env)
		}

		return ev.element(ctx, n, env)

	default:
		return nil, nil
	}
}

func (ev *evaluator) element(ctx context.Context, el *Element, env *scope.Env) (*Element, error) {
	out := &Element{
		Tag:      el.Tag,
		Attrs:    ev.resolveAttrs(ctx, el.Attrs, env),
		Position: el.Position,
	}

	if len(el.Children) > 0 {
		out.Children = make([]Node, len(el.Children))

		for i, child := range el.Children {
			c, err := ev.eval(ctx, child, env)
			if err != nil {
				return nil, err
			}

			out.Children[i] = c
		}
	}

	return out, nil
}

func (ev *evaluator) resolveAttrs(ctx context.Context, attrs Attrs, env *scope.Env) Attrs {
	if attrs == nil {
		return nil
	}

	out := make(Attrs, len(attrs))
	for i, a := range attrs {
		out[i] = Attr{Name: a.Name, Value: ev.resolve(ctx, a.Value, env)}
	}

	return out
}

func (ev *evaluator) resolve(ctx context.Context, s string, env *scope.Env) string {
	out, missed := resolve(s, env)

	for _, path := range missed {
		ev.logger.TraceContext(ctx, "placeholder unresolved",
			slog.String("path", path),
		)
	}

	return out
}

// expand evaluates a directive element.
func (ev *evaluator) expand(ctx context.Context, el *Element, env *scope.Env) (Node, error) {
	if len(el.Children) > 1 {
		return nil, &DirectiveError{
			Tag:      el.Tag,
			Position: el.Position,
			Reason:   "more than one child",
			Children: len(el.Children),
		}
	}

	dataAttr, _ := el.Attrs.Get(DataAttr)
	asAttr, _ := el.Attrs.Get(AsAttr)
	path, name := stripMarker(dataAttr), stripMarker(asAttr)

	// A missing or empty path or name resolves to nothing, and the output
	// of a pass-through has neither attribute.
	var (
		items scope.Value
		ok    bool
	)

	if path != "" && name != "" {
		items, ok = env.Lookup(path)
	}

	if !ok || items.Kind() != scope.Array {
		ev.logger.TraceContext(ctx, "directive passthrough",
			slog.String("path", path),
			slog.String("as", name),
			slog.Bool("found", ok),
			slog.String("kind", items.Kind().String()),
		)

		out, _ := Clone(el).(*Element)
		out.Attrs = out.Attrs.Without(DataAttr, AsAttr)

		return out, nil
	}

	if len(el.Children) == 0 {
		return Clone(el), nil
	}

	ev.logger.TraceContext(ctx, "directive expand",
		slog.String("path", path),
		slog.String("as", name),
		slog.Int("items", items.Len()),
	)

	children, err := ev.iterate(ctx, el.Children[0], env, name, items)
	if err != nil {
		return nil, err
	}

	return &Element{
		Tag:      WrapperTag,
		Attrs:    ev.resolveAttrs(ctx, el.Attrs.Without(DataAttr, AsAttr), env),
		Children: children,
		Position: el.Position,
	}, nil
}

// iterate evaluates tmpl once per element of items with the element bound
// to name. Results are in array order regardless of concurrency.
func (ev *evaluator) iterate(
	ctx context.Context,
	tmpl Node,
	env *scope.Env,
	name string,
	items scope.Value,
) ([]Node, error) {
	out := make([]Node, items.Len())

	if ev.concurrency <= 1 || len(out) <= 1 {
		for i, item := range items.Elems() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			n, err := ev.eval(ctx, tmpl, env.Bind(name, item))
			if err != nil {
				return nil, err
			}

			out[i] = n
		}

		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ev.concurrency)

	for i, item := range items.Elems() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			n, err := ev.eval(gctx, tmpl, env.Bind(name, item))
			if err != nil {
				return err
			}

			out[i] = n

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
