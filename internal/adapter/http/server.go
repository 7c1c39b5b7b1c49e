// Package http exposes the cleaned dataset to the presentation layer as a
// read-only JSON API, plus health, readiness, and metrics endpoints.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"

	"github.com/openairlab/air-quality-service/internal/domain"
	"github.com/openairlab/air-quality-service/internal/loader"
	"github.com/openairlab/air-quality-service/internal/observability"
)

// Loader provides the cleaned dataset for a source path.
type Loader interface {
	Load(path string) (*loader.Result, error)
}

// LoaderFunc adapts a plain load function to the Loader interface.
type LoaderFunc func(path string) (*loader.Result, error)

func (f LoaderFunc) Load(path string) (*loader.Result, error) { return f(path) }

// StatusReporter is implemented by caching loaders that can describe their
// cached sources.
type StatusReporter interface {
	Status() []loader.Status
}

// Server serves the dashboard API over one configured source file.
type Server struct {
	httpServer *http.Server
	loader     Loader
	dataPath   string
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// NewServer creates the API server. The dataset is loaded on demand per
// request; handlers never mutate the loader's result.
func NewServer(addr, dataPath string, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		loader:   l,
		dataPath: dataPath,
		logger:   logger,
		metrics:  metrics,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/observations", s.handleObservations)
		r.Get("/summary", s.handleSummary)
		r.Get("/status", s.handleStatus)
		r.Get("/fields/{field}/stats", s.handleFieldStats)
		r.Get("/fields/{field}/daily", s.handleDailyAverages)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{
			"status": "not ready",
			"error":  "dataset has not been loaded yet",
		})
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ready"})
}

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadDataset(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	from, err := parseTimeParam(q.Get("from"))
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid from: %v", err))
		return
	}
	to, err := parseTimeParam(q.Get("to"))
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid to: %v", err))
		return
	}

	ds := res.Dataset.FilterByRange(from, to)

	if raw := q.Get("fields"); raw != "" {
		fields := make([]domain.Field, 0)
		for _, name := range strings.Split(raw, ",") {
			f, known := domain.ParseField(strings.TrimSpace(name))
			if !known {
				s.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown field %q", name))
				return
			}
			fields = append(fields, f)
		}
		ds = ds.Select(fields)
	}

	total := len(ds)
	offset := cast.ToInt(q.Get("offset"))
	limit := cast.ToInt(q.Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if offset > len(ds) {
		offset = len(ds)
	}
	ds = ds[offset:]
	if limit > 0 && limit < len(ds) {
		ds = ds[:limit]
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"total":        total,
		"count":        len(ds),
		"observations": ds,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadDataset(w, r)
	if !ok {
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, res.Dataset.Summary())
}

func (s *Server) handleFieldStats(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadDataset(w, r)
	if !ok {
		return
	}
	field, ok := s.fieldParam(w, r)
	if !ok {
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"field": field,
		"stats": res.Dataset.Stats(field),
	})
}

func (s *Server) handleDailyAverages(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadDataset(w, r)
	if !ok {
		return
	}
	field, ok := s.fieldParam(w, r)
	if !ok {
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"field": field,
		"daily": res.Dataset.DailyAverages(field),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sources := []loader.Status{}
	reporter, cached := s.loader.(StatusReporter)
	if cached {
		sources = reporter.Status()
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"cache_enabled": cached,
		"sources":       sources,
	})
}

// Warm performs one load outside any request so readiness reflects a real
// load before traffic arrives.
func (s *Server) Warm() (*loader.Result, error) {
	return s.load()
}

// loadDataset fetches the dataset for a request. Returns false after
// writing an error response.
func (s *Server) loadDataset(w http.ResponseWriter, r *http.Request) (*loader.Result, bool) {
	res, err := s.load()
	if err != nil {
		s.logger.Error("dataset load failed", "error", err, "path", s.dataPath)
		s.renderError(w, r, http.StatusInternalServerError, "dataset unavailable")
		return nil, false
	}
	return res, true
}

// load runs the loader, records load metrics, and flips the readiness gate
// on first success.
func (s *Server) load() (*loader.Result, error) {
	start := time.Now()
	res, err := s.loader.Load(s.dataPath)
	if err != nil {
		s.metrics.LoadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.metrics.LoadsTotal.WithLabelValues("success").Inc()
	s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	s.metrics.DatasetRows.Set(float64(len(res.Dataset)))
	s.metrics.SkippedRows.Set(float64(len(res.Skipped)))
	for _, f := range domain.Fields {
		missing := 0
		for _, obs := range res.Dataset {
			if _, present := obs.Value(f); !present {
				missing++
			}
		}
		s.metrics.MissingValues.WithLabelValues(string(f)).Set(float64(missing))
	}

	s.ready.Store(true)
	return res, nil
}

func (s *Server) fieldParam(w http.ResponseWriter, r *http.Request) (domain.Field, bool) {
	name := chi.URLParam(r, "field")
	field, known := domain.ParseField(name)
	if !known {
		s.renderError(w, r, http.StatusNotFound, fmt.Sprintf("unknown field %q", name))
		return "", false
	}
	return field, true
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

// parseTimeParam accepts RFC 3339 timestamps or bare dates (2004-03-10).
func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or YYYY-MM-DD, got %q", raw)
	}
	return t, nil
}
