// Package api exposes the structuring pipeline and document store over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmaycock/structdoc/internal/config"
	"github.com/dmaycock/structdoc/internal/pipeline"
	"github.com/dmaycock/structdoc/internal/store"
)

// Server is the HTTP API server for structdoc.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        st,
		log:          log,
		cfg:          cfg,
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

		r.Post("/api/structure", s.handleStructure)
		r.Get("/api/structure/{jobID}/status", s.handleStructureStatus)
		r.Post("/api/structure/batch", s.handleBatchStructure)
		r.Get("/api/stats/processing", s.handleProcessingStats)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Get("/api/documents/{docID}/summary", s.handleDocumentSummary)
		r.Get("/api/documents/{docID}/sections/{name}", s.handleDocumentSection)
		r.Get("/api/documents/{docID}/chunks", s.handleDocumentChunks)
		r.Get("/api/documents/{docID}/view", s.handleDocumentView)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
