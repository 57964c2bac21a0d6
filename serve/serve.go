// Package serve implements the slab development server.
//
// Every request reloads the template and its data, so edits show up on the
// next page refresh. Routes:
//
//	GET /      the rendered page (text/html)
//	GET /tree  the evaluated tree (application/json)
package serve

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ardnew/slab/lang"
	"github.com/ardnew/slab/log"
	"github.com/ardnew/slab/render"
	"github.com/ardnew/slab/scope"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:3030"

const shutdownTimeout = 5 * time.Second

// Source loads the current template source and data.
type Source interface {
	Load(ctx context.Context) (template string, data scope.Value, err error)
}

// SourceFunc adapts a function to [Source].
type SourceFunc func(ctx context.Context) (string, scope.Value, error)

func (f SourceFunc) Load(ctx context.Context) (string, scope.Value, error) { return f(ctx) }

// Server renders a [Source] on demand.
type Server struct {
	source   Source
	logger   log.Logger
	langOpts []lang.Option
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithLangOptions sets options passed to [lang.Compile] and
// [lang.Template.Execute].
func WithLangOptions(opts ...lang.Option) Option {
	return func(s *Server) { s.langOpts = append(s.langOpts, opts...) }
}

// New returns a server for src.
func New(src Source, opts ...Option) *Server {
	s := &Server{source: src}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// RegisterRoutes adds the server routes to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /tree", s.handleTree)
}

// Handler returns a handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	return mux
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a shutdown caused by ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.logger.InfoContext(ctx, "dev server listening",
		slog.String("url", "http://"+ln.Addr().String()),
	)

	errc := make(chan error, 1)

	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		s.logger.InfoContext(ctx, "dev server shutting down")

		if err := srv.Shutdown(sctx); err != nil {
			return err
		}

		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// Render loads, parses and evaluates the source. Every edit produces a new
// source, so parses bypass the template cache.
func (s *Server) Render(ctx context.Context) (lang.Node, error) {
	src, data, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	root, err := lang.ParseString(ctx, src, s.langOpts...)
	if err != nil {
		return nil, err
	}

	return lang.Evaluate(ctx, root, data, s.langOpts...)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, err := s.Render(r.Context())
	if err != nil {
		s.fail(w, r, err)

		return
	}

	var buf bytes.Buffer

	if err := render.HTML(&buf, n); err != nil {
		s.fail(w, r, err)

		return
	}

	setNoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)

	s.logger.DebugContext(r.Context(), "served page",
		slog.String("path", r.URL.Path),
		slog.Duration("elapsed", time.Since(start)),
	)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	n, err := s.Render(r.Context())
	if err != nil {
		s.fail(w, r, err)

		return
	}

	var buf bytes.Buffer

	if err := lang.FormatJSON(&buf, n, 2); err != nil {
		s.fail(w, r, err)

		return
	}

	setNoCache(w)
	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "render failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	msg := err.Error()

	var pe *lang.ParseError
	if errors.As(err, &pe) {
		if snippet := pe.Snippet(); snippet != "" {
			msg += "\n\n" + snippet
		}
	}

	setNoCache(w)
	http.Error(w, msg, http.StatusInternalServerError)
}

func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
