package lang

import (
	"strconv"

	"github.com/ardnew/slab/log"
)

const (
	// DefaultMaxDepth bounds element nesting during parsing.
	DefaultMaxDepth = 256
	// DefaultConcurrency evaluates directive iterations serially.
	DefaultConcurrency = 1
)

// options configures parsing and evaluation.
type options struct {
	logger      log.Logger
	maxDepth    int
	concurrency int
}

// Option configures [Parse], [Evaluate] and [Compile].
type Option func(*options)

func makeOptions(opts ...Option) options {
	o := options{
		maxDepth:    DefaultMaxDepth,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// key identifies the options that affect a parse result.
func (o options) key() string { return strconv.Itoa(o.maxDepth) }

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxDepth limits element nesting. Values below 1 select
// [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithConcurrency sets how many iterations of one directive may be evaluated
// at the same time. Values below 1 select serial evaluation. Output order is
// unaffected.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = max(n, 1) }
}
