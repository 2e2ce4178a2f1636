// Package server exposes the generator over HTTP.
//
// Every request to a graph route runs a fresh generation with the server's
// options, so reloading the page shows a new graph. A seed query parameter
// pins the run:
//
//	GET /                 animated HTML document
//	GET /graph.json       JSON export
//	GET /graph.svg        node-link diagram
//	GET /metrics          Prometheus metrics
//	GET /healthz          liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mlerrors "github.com/matzehuels/multilayer/pkg/errors"
	"github.com/matzehuels/multilayer/pkg/observability"
	"github.com/matzehuels/multilayer/pkg/pipeline"
)

// RunIDHeader carries the pipeline run ID on graph responses.
const RunIDHeader = "X-Run-ID"

const shutdownTimeout = 5 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
}

// Server serves generated graphs.
type Server struct {
	runner   *pipeline.Runner
	opts     pipeline.Options
	gatherer prometheus.Gatherer
	logger   *log.Logger
	router   chi.Router
}

// New builds a server that generates with opts. Metrics are served from
// gatherer; a nil gatherer disables the /metrics route.
func New(runner *pipeline.Runner, opts pipeline.Options, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		runner:   runner,
		opts:     opts,
		gatherer: gatherer,
		logger:   runner.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.graph(pipeline.FormatHTML))
	r.Get("/graph.json", s.graph(pipeline.FormatJSON))
	r.Get("/graph.svg", s.graph(pipeline.FormatSVG))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// instrument reports every request to the registered HTTP hooks, labelled
// by route pattern rather than raw path. Requests that match no route share
// the "unmatched" label.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}

func (s *Server) graph(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.opts
		opts.Formats = []string{format}

		if v := r.URL.Query().Get("seed"); v != "" {
			seed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				http.Error(w, "seed must be an unsigned integer", http.StatusBadRequest)
				return
			}
			opts.Seed = seed
		}

		res, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.logger.Error("generation failed", "format", format, "err", err)
			http.Error(w, mlerrors.UserMessage(err), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set(RunIDHeader, res.RunID)
		w.Header().Set("X-Seed", strconv.FormatUint(res.Stats.Seed, 10))
		_, _ = w.Write(res.Artifacts[format])
	}
}

func statusFor(err error) int {
	switch mlerrors.GetCode(err) {
	case mlerrors.ErrCodeInvalidConfig, mlerrors.ErrCodeInvalidFormat, mlerrors.ErrCodeInvalidLayout:
		return http.StatusBadRequest
	case mlerrors.ErrCodeInfeasibleLayer:
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.Canceled) {
		return 499
	}
	return http.StatusInternalServerError
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
