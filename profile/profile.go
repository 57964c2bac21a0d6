package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. Empty disables profiling.
	Mode string
	// Path is the output directory. Empty uses a temporary directory.
	Path string
	// Quiet suppresses the profiler's own log lines.
	Quiet bool
}

// Option modifies a [Profiler].
type Option func(Profiler) Profiler

// New returns a Profiler with opts applied.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

func WithMode(mode string) Option {
	return func(p Profiler) Profiler { p.Mode = mode; return p }
}

func WithPath(path string) Option {
	return func(p Profiler) Profiler { p.Path = path; return p }
}

func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler { p.Quiet = quiet; return p }
}

// Start begins profiling. An empty or unsupported mode, or a build without
// the pprof tag, yields a no-op. Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
