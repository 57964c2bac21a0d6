package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/slab/scope"
)

// cache maps a source hash and parse options to a *state.
var cache sync.Map

type state struct {
	once sync.Once
	root Node
	err  error
}

// Template is a parsed template that can be executed any number of times,
// concurrently if desired.
type Template struct {
	root Node
	hash uint64
	opts []Option
}

// Root returns the parsed tree. It is shared between all users of the
// template and must not be modified.
func (t *Template) Root() Node { return t.root }

// Hash returns the xxh3 hash of the template source.
func (t *Template) Hash() uint64 { return t.hash }

// Execute evaluates the template against data. Options given here are
// applied after those given to [Compile].
func (t *Template) Execute(ctx context.Context, data scope.Value, opts ...Option) (Node, error) {
	return Evaluate(ctx, t.root, data, append(t.opts[:len(t.opts):len(t.opts)], opts...)...)
}

// Compile parses src, reusing an earlier parse of identical source with the
// same options.
func Compile(ctx context.Context, src string, opts ...Option) (*Template, error) {
	o := makeOptions(opts...)

	hash := xxh3.HashString(src)
	key := strconv.FormatUint(hash, 36) + ":" + o.key()

	value, hit := cache.LoadOrStore(key, new(state))
	st, _ := value.(*state)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit),
	)

	st.once.Do(func() {
		st.root, st.err = ParseString(ctx, src, opts...)
	})

	if st.err != nil {
		return nil, st.err
	}

	return &Template{root: st.root, hash: hash, opts: opts}, nil
}

// ParseReader reads a template from r and compiles it.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Template, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	return Compile(ctx, string(data), opts...)
}

// ClearCache drops every cached parse.
func ClearCache() {
	cache.Clear()
}

// CacheSize returns the number of cached parses. The cache is never
// evicted, so long-running callers that reload sources should use
// [ParseString] and [Evaluate] instead of [Compile].
func CacheSize() int {
	n := 0

	cache.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
