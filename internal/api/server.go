package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/dgallion1/billdigest/internal/config"
	"github.com/dgallion1/billdigest/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for billdigest.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	metrics *Metrics
	log     *slog.Logger
	cfg     config.Config

	// folderMu guards the batch folders: finalize writes, preview and summary read.
	folderMu sync.RWMutex
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner:  runner,
		metrics: NewMetrics(),
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/batches/{period}", s.handlePreview)
		r.Get("/api/batches/{period}/summary", s.handleSummary)
		r.Post("/api/batches/{period}/finalize", s.handleFinalize)

		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
