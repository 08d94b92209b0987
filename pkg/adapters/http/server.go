package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/pendant/internal/logging"
	"github.com/aretw0/pendant/internal/presentation/graph"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Device is the part of pendant.Device the bench API drives.
type Device interface {
	Behaviours() []string
	Table(name string) (*domain.SequenceTable, error)
	Run(ctx context.Context, name string) (*domain.Report, error)
	Report(ctx context.Context, id string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
}

// Server serves the bench API.
type Server struct {
	Device  Device
	Metrics http.Handler
	Version string
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the device.
func NewHandler(dev Device, opts ...Option) http.Handler {
	s := &Server{Device: dev, Version: "dev", Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/behaviours", s.ListBehaviours)
	r.Get("/behaviours/{name}/graph", s.Graph)
	r.Post("/behaviours/{name}/runs", s.StartRun)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "pendant-http",
		"version": s.Version,
	})
}

// ListBehaviours handles GET /behaviours.
func (s *Server) ListBehaviours(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Device.Behaviours())
}

// Graph handles GET /behaviours/{name}/graph. With ?run=<id> the steps visited by that run are
// highlighted.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	table, err := s.Device.Table(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("run"); id != "" {
		report, err := s.Device.Report(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = overlayFor(report)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(table, overlay)))
}

// StartRun handles POST /behaviours/{name}/runs. The run completes before the response.
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	report, err := s.Device.Run(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, report)
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Device.Reports(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	report, err := s.Device.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func overlayFor(report *domain.Report) *graph.GraphOverlay {
	overlay := &graph.GraphOverlay{VisitedSteps: report.Visited}
	if n := len(report.Visited); n > 0 {
		overlay.CurrentStep = report.Visited[n-1]
	}
	if report.Failure != nil {
		overlay.CurrentStep = report.Failure.Step
		overlay.Failed = true
	}
	return overlay
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownBehaviour), errors.Is(err, domain.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	default:
		s.Logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
